package site

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/abigaelawino/portfolio/internal/assets"
	"github.com/abigaelawino/portfolio/internal/htmldoc"
	"github.com/abigaelawino/portfolio/internal/metrics"
	"github.com/abigaelawino/portfolio/internal/pages"
	"github.com/abigaelawino/portfolio/internal/pdfenc"
	"github.com/abigaelawino/portfolio/internal/pngenc"
	"github.com/abigaelawino/portfolio/internal/seo"
)

// Stage names, in execution order.
const (
	StagePrepareOutput = "prepare_output"
	StageCopyAssets    = "copy_assets"
	StageCopyImages    = "copy_images"
	StageStaticAssets  = "static_assets"
	StageRenderPages   = "render_pages"
	StageRenderResume  = "render_resume"
	StageSEOFiles      = "seo_files"
)

// Stage is a discrete unit of work in the site build.
type Stage func(ctx context.Context, bs *buildState) error

// StageErrorKind categorizes structured stage errors.
type StageErrorKind string

const (
	StageErrorFatal    StageErrorKind = "fatal"    // build must abort
	StageErrorWarning  StageErrorKind = "warning"  // record and continue
	StageErrorCanceled StageErrorKind = "canceled" // context cancellation
)

// StageError carries the category and underlying cause of a stage failure.
type StageError struct {
	Kind  StageErrorKind
	Stage string
	Err   error
}

func (e *StageError) Error() string { return fmt.Sprintf("%s stage %s: %v", e.Kind, e.Stage, e.Err) }
func (e *StageError) Unwrap() error { return e.Err }

func newFatalStageError(stage string, err error) *StageError {
	return &StageError{Kind: StageErrorFatal, Stage: stage, Err: err}
}
func newWarnStageError(stage string, err error) *StageError {
	return &StageError{Kind: StageErrorWarning, Stage: stage, Err: err}
}
func newCanceledStageError(stage string, err error) *StageError {
	return &StageError{Kind: StageErrorCanceled, Stage: stage, Err: err}
}

// buildState carries mutable state across stages.
type buildState struct {
	builder *Builder
	report  *Report
}

type namedStage struct {
	name string
	fn   Stage
}

// buildStages returns the linear pipeline. Only the images copy may continue
// past a failure; everything else is fail-fast.
func buildStages() []namedStage {
	return []namedStage{
		{StagePrepareOutput, stagePrepareOutput},
		{StageCopyAssets, stageCopyAssets},
		{StageCopyImages, stageCopyImages},
		{StageStaticAssets, stageStaticAssets},
		{StageRenderPages, stageRenderPages},
		{StageRenderResume, stageRenderResume},
		{StageSEOFiles, stageSEOFiles},
	}
}

// runStages executes stages in order, recording timing and classification,
// stopping on the first fatal or canceled error.
func runStages(ctx context.Context, bs *buildState, stages []namedStage) error {
	rec := bs.builder.recorder
	for _, st := range stages {
		select {
		case <-ctx.Done():
			se := newCanceledStageError(st.name, ctx.Err())
			bs.report.Errors = append(bs.report.Errors, se.Error())
			bs.report.StageResults[st.name] = string(se.Kind)
			rec.IncStageResult(st.name, metrics.ResultCanceled)
			return se
		default:
		}
		t0 := time.Now()
		err := st.fn(ctx, bs)
		dur := time.Since(t0)
		bs.report.StageDurations[st.name] = dur
		rec.ObserveStageDuration(st.name, dur)
		if err == nil {
			bs.report.StageResults[st.name] = "success"
			rec.IncStageResult(st.name, metrics.ResultSuccess)
			continue
		}
		var se *StageError
		if !errors.As(err, &se) {
			se = newFatalStageError(st.name, err)
		}
		bs.report.StageResults[st.name] = string(se.Kind)
		switch se.Kind {
		case StageErrorWarning:
			bs.report.Warnings = append(bs.report.Warnings, se.Error())
			rec.IncStageResult(st.name, metrics.ResultWarning)
		case StageErrorCanceled:
			bs.report.Errors = append(bs.report.Errors, se.Error())
			rec.IncStageResult(st.name, metrics.ResultCanceled)
			return se
		default:
			bs.report.Errors = append(bs.report.Errors, se.Error())
			rec.IncStageResult(st.name, metrics.ResultFatal)
			return se
		}
	}
	return nil
}

// stagePrepareOutput deletes any previous output tree and recreates the root
// plus the assets directory. Idempotent regeneration, not incremental.
func stagePrepareOutput(_ context.Context, bs *buildState) error {
	out := bs.builder.outputDir()
	if err := os.RemoveAll(out); err != nil {
		return fmt.Errorf("clear output directory: %w", err)
	}
	if err := os.MkdirAll(filepath.Join(out, "assets"), 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	return nil
}

// stageCopyAssets mirrors the required assets source directory. Failure here
// is fatal: a site without its stylesheet and scripts is not servable.
func stageCopyAssets(_ context.Context, bs *buildState) error {
	cfg := bs.builder.cfg
	if err := assets.CopyDir(cfg.Paths.Assets, filepath.Join(bs.builder.outputDir(), "assets")); err != nil {
		return fmt.Errorf("copy assets: %w", err)
	}
	return nil
}

// stageCopyImages mirrors the optional images directory. Absence is the one
// tolerated failure in the pipeline; not every deployment ships extra images.
func stageCopyImages(_ context.Context, bs *buildState) error {
	cfg := bs.builder.cfg
	if _, err := os.Stat(cfg.Paths.Images); os.IsNotExist(err) {
		return newWarnStageError(StageCopyImages, fmt.Errorf("images directory %s absent", cfg.Paths.Images))
	}
	if err := assets.CopyImages(cfg.Paths.Images, filepath.Join(bs.builder.outputDir(), "images")); err != nil {
		return fmt.Errorf("copy images: %w", err)
	}
	return nil
}

// stageStaticAssets writes the generated Open Graph image and the shared CSS
// bundle.
func stageStaticAssets(_ context.Context, bs *buildState) error {
	assetsDir := filepath.Join(bs.builder.outputDir(), "assets")
	og := pngenc.EncodeDefaultImage(1200, 630)
	if err := os.WriteFile(filepath.Join(assetsDir, "og.png"), og, 0o644); err != nil {
		return fmt.Errorf("write og image: %w", err)
	}
	if err := os.WriteFile(filepath.Join(assetsDir, "shell.css"), []byte(shellCSS), 0o644); err != nil {
		return fmt.Errorf("write stylesheet: %w", err)
	}
	return nil
}

// stageRenderPages renders and writes the six fixed page routes.
func stageRenderPages(ctx context.Context, bs *buildState) error {
	for _, route := range Routes() {
		select {
		case <-ctx.Done():
			return newCanceledStageError(StageRenderPages, ctx.Err())
		default:
		}
		if err := bs.builder.writeRoute(route, bs); err != nil {
			return err
		}
	}
	return nil
}

// stageRenderResume writes the resume page and the PDF asset.
func stageRenderResume(_ context.Context, bs *buildState) error {
	if err := bs.builder.writeRoute(ResumeRoute(), bs); err != nil {
		return err
	}
	pdf := pdfenc.EncodeSimplePDF(pages.ResumeLines())
	target := filepath.Join(bs.builder.outputDir(), filepath.FromSlash(ResumePDFPath))
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("create resume directory: %w", err)
	}
	if err := os.WriteFile(target, pdf, 0o644); err != nil {
		return fmt.Errorf("write resume pdf: %w", err)
	}
	return nil
}

// stageSEOFiles writes sitemap.xml and robots.txt.
func stageSEOFiles(_ context.Context, bs *buildState) error {
	b := bs.builder
	sitemap, err := seo.BuildSitemapXML(b.cfg.Site.URL, SitemapPaths(), b.now())
	if err != nil {
		return err
	}
	out := b.outputDir()
	if err := os.WriteFile(filepath.Join(out, "sitemap.xml"), []byte(sitemap), 0o644); err != nil {
		return fmt.Errorf("write sitemap: %w", err)
	}
	robots := seo.BuildRobotsTxt(b.cfg.Site.URL, true)
	if err := os.WriteFile(filepath.Join(out, "robots.txt"), []byte(robots), 0o644); err != nil {
		return fmt.Errorf("write robots: %w", err)
	}
	return nil
}

// writeRoute renders one route's body, assembles the document, and writes it,
// creating parent directories as needed.
func (b *Builder) writeRoute(route Route, bs *buildState) error {
	body, err := route.Render(bs.builder.index)
	if err != nil {
		return fmt.Errorf("render %s: %w", route.Path, err)
	}
	doc, err := b.assembler.AssembleDocument(htmldoc.PageSpec{
		Path:        route.Path,
		Title:       route.Title,
		Description: route.Description,
		Body:        body,
		Robots:      route.Robots,
	}, RoutePathname(route.Path))
	if err != nil {
		return fmt.Errorf("assemble %s: %w", route.Path, err)
	}
	target := filepath.Join(b.outputDir(), filepath.FromSlash(route.Path))
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("create directory for %s: %w", route.Path, err)
	}
	if err := os.WriteFile(target, []byte(doc), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", route.Path, err)
	}
	bs.report.RenderedPages++
	return nil
}
