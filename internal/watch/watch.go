// Package watch rebuilds the site when source files change and serves the
// output locally for preview.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-co-op/gocron/v2"

	"github.com/abigaelawino/portfolio/internal/config"
	"github.com/abigaelawino/portfolio/internal/metrics"
	"github.com/abigaelawino/portfolio/internal/site"
)

// Options controls the watch runner.
type Options struct {
	// Port for the local preview server. Zero disables serving.
	Port int
	// Interval between unconditional periodic rebuilds. Zero disables them.
	Interval time.Duration
	// Debounce delay between a file event and the rebuild it triggers.
	Debounce time.Duration
}

const defaultDebounce = 300 * time.Millisecond

// Run builds once, then keeps rebuilding on changes to the assets, images,
// and content directories until ctx is canceled.
func Run(ctx context.Context, cfg *config.Config, opts Options) error {
	if opts.Debounce <= 0 {
		opts.Debounce = defaultDebounce
	}

	recorder := metrics.NewPrometheusRecorder(nil)
	builder := site.New(cfg, "").SetRecorder(recorder)

	rebuild := func() {
		report, err := builder.Build(ctx)
		if err != nil {
			slog.Warn("rebuild failed", "error", err)
			return
		}
		slog.Info("site rebuilt", "outcome", report.Outcome, "pages", report.RenderedPages, "duration", report.Duration())
	}

	// Initial build so the preview server has something to serve.
	rebuild()

	var server *previewServer
	if opts.Port > 0 {
		server = newPreviewServer(cfg.Paths.Output, recorder, opts.Port)
		server.start()
		defer server.stop()
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create file watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	for _, dir := range []string{cfg.Paths.Assets, cfg.Paths.Images, cfg.Paths.Content} {
		if _, statErr := os.Stat(dir); statErr != nil {
			continue
		}
		if err := addDirsRecursive(watcher, dir); err != nil {
			return err
		}
	}

	rebuildReq, trigger := newDebouncer(opts.Debounce)

	go rebuildWorker(ctx, rebuildReq, rebuild)

	if opts.Interval > 0 {
		scheduler, err := gocron.NewScheduler()
		if err != nil {
			return fmt.Errorf("create scheduler: %w", err)
		}
		_, err = scheduler.NewJob(
			gocron.DurationJob(opts.Interval),
			gocron.NewTask(func() {
				select {
				case rebuildReq <- struct{}{}:
				default:
				}
			}),
			gocron.WithName("periodic-rebuild"),
		)
		if err != nil {
			return fmt.Errorf("create periodic rebuild job: %w", err)
		}
		scheduler.Start()
		defer func() { _ = scheduler.Shutdown() }()
	}

	slog.Info("watching for changes",
		"assets", cfg.Paths.Assets,
		"images", cfg.Paths.Images,
		"content", cfg.Paths.Content)

	for {
		select {
		case <-ctx.Done():
			slog.Info("stopping watch mode")
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			handleFileEvent(watcher, ev, trigger)
		case werr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Warn("watcher error", "error", werr)
		}
	}
}

// newDebouncer returns a request channel and a trigger that collapses bursts
// of calls into a single request after delay.
func newDebouncer(delay time.Duration) (chan struct{}, func()) {
	var mu sync.Mutex
	var timer *time.Timer
	req := make(chan struct{}, 1)

	trigger := func() {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(delay, func() {
			select {
			case req <- struct{}{}:
			default:
			}
		})
	}
	return req, trigger
}

// rebuildWorker serializes rebuilds. A request arriving mid-build queues one
// follow-up instead of stacking.
func rebuildWorker(ctx context.Context, req chan struct{}, rebuild func()) {
	var mu sync.Mutex
	running := false
	pending := false

	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-req:
			if !ok {
				return
			}
			mu.Lock()
			if running {
				pending = true
				mu.Unlock()
				continue
			}
			running = true
			mu.Unlock()

			rebuild()

			mu.Lock()
			running = false
			if pending {
				pending = false
				mu.Unlock()
				select {
				case req <- struct{}{}:
				default:
				}
			} else {
				mu.Unlock()
			}
		}
	}
}

func handleFileEvent(watcher *fsnotify.Watcher, ev fsnotify.Event, trigger func()) {
	if shouldIgnoreEvent(ev.Name) {
		return
	}
	if ev.Op&fsnotify.Create == fsnotify.Create {
		if fi, err := os.Stat(ev.Name); err == nil && fi.IsDir() {
			_ = addDirsRecursive(watcher, ev.Name)
		}
	}
	slog.Debug("file change detected", "path", ev.Name, "op", ev.Op.String())
	trigger()
}

func addDirsRecursive(w *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if err := w.Add(path); err != nil {
				slog.Warn("watch add failed", "dir", path, "error", err)
			}
		}
		return nil
	})
}

// shouldIgnoreEvent filters out hidden files and editor temp/swap files.
func shouldIgnoreEvent(path string) bool {
	base := filepath.Base(path)
	if strings.HasPrefix(base, ".") {
		return true
	}
	if strings.HasSuffix(base, "~") ||
		strings.HasSuffix(base, ".swp") ||
		strings.HasSuffix(base, ".swx") ||
		strings.HasPrefix(base, "#") && strings.HasSuffix(base, "#") {
		return true
	}
	return base == "Thumbs.db"
}
