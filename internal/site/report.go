package site

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// BuildOutcome is the final classification of one build run.
type BuildOutcome string

const (
	OutcomeSuccess  BuildOutcome = "success"
	OutcomeWarning  BuildOutcome = "warning"
	OutcomeFailed   BuildOutcome = "failed"
	OutcomeCanceled BuildOutcome = "canceled"
)

// Report captures per-stage timings and the overall result of a build. It is
// persisted into the output tree as build-report.json (best effort).
type Report struct {
	ID             string                   `json:"id"`
	Start          time.Time                `json:"start"`
	End            time.Time                `json:"end"`
	Outcome        BuildOutcome             `json:"outcome"`
	StageDurations map[string]time.Duration `json:"stage_durations"`
	StageResults   map[string]string        `json:"stage_results"`
	RenderedPages  int                      `json:"rendered_pages"`
	OutputBytes    int64                    `json:"output_bytes"`
	Warnings       []string                 `json:"warnings,omitempty"`
	Errors         []string                 `json:"errors,omitempty"`
}

func newReport() *Report {
	return &Report{
		ID:             uuid.NewString(),
		Start:          time.Now(),
		StageDurations: make(map[string]time.Duration),
		StageResults:   make(map[string]string),
	}
}

// deriveOutcome classifies the run from recorded stage results, errors, and
// warnings.
func (r *Report) deriveOutcome() {
	for _, kind := range r.StageResults {
		if kind == string(StageErrorCanceled) {
			r.Outcome = OutcomeCanceled
			return
		}
	}
	switch {
	case len(r.Errors) > 0:
		r.Outcome = OutcomeFailed
	case len(r.Warnings) > 0:
		r.Outcome = OutcomeWarning
	default:
		r.Outcome = OutcomeSuccess
	}
}

func (r *Report) finish() { r.End = time.Now() }

// Duration returns the wall-clock build time.
func (r *Report) Duration() time.Duration { return r.End.Sub(r.Start) }

// Summary returns a one-line human description for logs and history listings.
func (r *Report) Summary() string {
	return fmt.Sprintf("outcome=%s pages=%d bytes=%d duration=%s",
		r.Outcome, r.RenderedPages, r.OutputBytes, r.Duration().Round(time.Millisecond))
}

// Persist writes the report as JSON inside dir.
func (r *Report) Persist(dir string) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	path := filepath.Join(dir, "build-report.json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}
