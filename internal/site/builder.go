// Package site orchestrates the full build: output preparation, asset and
// image copies, generated static assets, page rendering, the PDF resume, and
// the SEO files. The pipeline is linear and fail-fast; only the optional
// images copy may degrade to a warning.
package site

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/abigaelawino/portfolio/internal/config"
	"github.com/abigaelawino/portfolio/internal/content"
	"github.com/abigaelawino/portfolio/internal/htmldoc"
	"github.com/abigaelawino/portfolio/internal/metrics"
)

// Builder runs site builds for one configuration.
type Builder struct {
	cfg       *config.Config
	assembler *htmldoc.Assembler
	recorder  metrics.Recorder
	now       func() time.Time
	index     *content.Index
	output    string
}

// New creates a builder writing into outputDir (the configured output path
// when empty).
func New(cfg *config.Config, outputDir string) *Builder {
	if outputDir == "" {
		outputDir = cfg.Paths.Output
	}
	return &Builder{
		cfg:       cfg,
		assembler: htmldoc.New(cfg.Site.URL, cfg.Site.Name, cfg.Analytics.Domain, cfg.Analytics.Host),
		recorder:  metrics.NoopRecorder{},
		now:       time.Now,
		output:    filepath.Clean(outputDir),
	}
}

// SetRecorder injects a metrics recorder. Returns the builder for chaining.
func (b *Builder) SetRecorder(r metrics.Recorder) *Builder {
	if r == nil {
		r = metrics.NoopRecorder{}
	}
	b.recorder = r
	return b
}

// SetClock injects the current-date resolver used for the sitemap lastmod.
func (b *Builder) SetClock(now func() time.Time) *Builder {
	if now != nil {
		b.now = now
	}
	return b
}

// SetNonceSource injects the document nonce generator (tests only).
func (b *Builder) SetNonceSource(fn func() (string, error)) *Builder {
	b.assembler.NonceSource = fn
	return b
}

func (b *Builder) outputDir() string { return b.output }

// Build runs the full pipeline and returns the build report. The report is
// also returned on failure, carrying whatever stages completed.
func (b *Builder) Build(ctx context.Context) (*Report, error) {
	report := newReport()
	slog.Info("Starting site build",
		"build_id", report.ID,
		"output", b.output,
		"analytics", b.cfg.AnalyticsEnabled())

	idx, err := content.Load(b.cfg.Paths.Content)
	if err != nil {
		report.Errors = append(report.Errors, err.Error())
		report.deriveOutcome()
		report.finish()
		return report, fmt.Errorf("load content index: %w", err)
	}
	b.index = idx

	bs := &buildState{builder: b, report: report}
	if err := runStages(ctx, bs, buildStages()); err != nil {
		report.deriveOutcome()
		report.finish()
		b.recordBuild(report)
		return report, err
	}

	report.OutputBytes = treeSize(b.output)
	report.deriveOutcome()
	report.finish()

	// Best effort: a missing report never fails a completed build.
	if err := report.Persist(b.output); err != nil {
		slog.Warn("Failed to persist build report", "error", err)
	}
	b.recordBuild(report)

	slog.Info("Site build completed",
		"build_id", report.ID,
		"pages", report.RenderedPages,
		"outcome", string(report.Outcome),
		"duration", report.Duration().Round(time.Millisecond))
	return report, nil
}

func (b *Builder) recordBuild(report *Report) {
	b.recorder.ObserveBuildDuration(report.Duration())
	b.recorder.IncBuildOutcome(string(report.Outcome))
	b.recorder.SetPagesRendered(report.RenderedPages)
}

// treeSize sums file sizes under root; used for the report only.
func treeSize(root string) int64 {
	var total int64
	_ = filepath.WalkDir(root, func(_ string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		if info, err := d.Info(); err == nil {
			total += info.Size()
		}
		return nil
	})
	return total
}
