package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"

	"github.com/abigaelawino/portfolio/internal/config"
	"github.com/abigaelawino/portfolio/internal/history"
	"github.com/abigaelawino/portfolio/internal/site"
	"github.com/abigaelawino/portfolio/internal/version"
	"github.com/abigaelawino/portfolio/internal/watch"
)

var CLI struct {
	Config  string `short:"c" help:"Configuration file path" default:"site.yaml"`
	Verbose bool   `short:"v" help:"Enable verbose logging"`

	Build struct {
		Output string `short:"o" help:"Output directory (overrides configuration)"`
	} `cmd:"" help:"Build the site into the output directory"`

	Watch struct {
		Port     int           `short:"p" help:"Local preview server port" default:"8080"`
		Interval time.Duration `help:"Periodic rebuild interval (0 disables)" default:"0"`
	} `cmd:"" help:"Rebuild on file changes and serve a local preview"`

	History struct {
		Limit int `short:"n" help:"Number of builds to show" default:"10"`
	} `cmd:"" help:"Show recent builds from the history database"`

	Clean struct {
		History bool `help:"Also remove the build history database"`
	} `cmd:"" help:"Remove the output directory"`

	Init struct {
		Force bool `help:"Overwrite existing configuration file"`
	} `cmd:"" help:"Initialize a new configuration file"`

	Version struct{} `cmd:"" help:"Print version information"`
}

func main() {
	ctx := kong.Parse(&CLI)

	logLevel := slog.LevelInfo
	if CLI.Verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	switch ctx.Command() {
	case "build":
		cfg, err := config.Load(CLI.Config)
		if err != nil {
			slog.Error("Failed to load configuration", "error", err)
			os.Exit(1)
		}
		if err := runBuild(cfg, CLI.Build.Output); err != nil {
			slog.Error("Build failed", "error", err)
			os.Exit(1)
		}
	case "watch":
		cfg, err := config.Load(CLI.Config)
		if err != nil {
			slog.Error("Failed to load configuration", "error", err)
			os.Exit(1)
		}
		if err := runWatch(cfg); err != nil {
			slog.Error("Watch failed", "error", err)
			os.Exit(1)
		}
	case "history":
		cfg, err := config.Load(CLI.Config)
		if err != nil {
			slog.Error("Failed to load configuration", "error", err)
			os.Exit(1)
		}
		if err := runHistory(cfg, CLI.History.Limit); err != nil {
			slog.Error("History failed", "error", err)
			os.Exit(1)
		}
	case "clean":
		cfg, err := config.Load(CLI.Config)
		if err != nil {
			slog.Error("Failed to load configuration", "error", err)
			os.Exit(1)
		}
		if err := runClean(cfg); err != nil {
			slog.Error("Clean failed", "error", err)
			os.Exit(1)
		}
	case "init":
		if err := config.Init(CLI.Config, CLI.Init.Force); err != nil {
			slog.Error("Init failed", "error", err)
			os.Exit(1)
		}
		slog.Info("Configuration written", "path", CLI.Config)
	case "version":
		fmt.Printf("sitegen %s (commit %s, built %s)\n", version.Version, version.GitCommit, version.BuildTime)
	}
}

func runBuild(cfg *config.Config, outputDir string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	builder := site.New(cfg, outputDir)
	report, err := builder.Build(ctx)
	if report != nil {
		recordHistory(cfg, report)
	}
	if err != nil {
		return err
	}
	slog.Info("Build report", "summary", report.Summary())
	return nil
}

// recordHistory appends the build to the local history database. Best effort;
// a broken database never fails a build.
func recordHistory(cfg *config.Config, report *site.Report) {
	if cfg.History.Path == "" {
		return
	}
	store, err := history.Open(cfg.History.Path)
	if err != nil {
		slog.Warn("Failed to open history database", "error", err)
		return
	}
	defer store.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	err = store.Append(ctx, history.Entry{
		ID:          report.ID,
		StartedAt:   report.Start,
		Duration:    report.Duration(),
		Outcome:     string(report.Outcome),
		Pages:       report.RenderedPages,
		OutputBytes: report.OutputBytes,
	})
	if err != nil {
		slog.Warn("Failed to record build history", "error", err)
	}
}

func runWatch(cfg *config.Config) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	return watch.Run(ctx, cfg, watch.Options{
		Port:     CLI.Watch.Port,
		Interval: CLI.Watch.Interval,
	})
}

func runHistory(cfg *config.Config, limit int) error {
	store, err := history.Open(cfg.History.Path)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	entries, err := store.Recent(ctx, limit)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("no builds recorded")
		return nil
	}
	for _, e := range entries {
		fmt.Printf("%s  %-8s  pages=%-3d  %8d bytes  %s  %s\n",
			e.StartedAt.Format(time.RFC3339), e.Outcome, e.Pages, e.OutputBytes,
			e.Duration.Round(time.Millisecond), e.ID)
	}
	return nil
}

func runClean(cfg *config.Config) error {
	slog.Info("Removing output directory", "path", cfg.Paths.Output)
	if err := os.RemoveAll(cfg.Paths.Output); err != nil {
		return err
	}
	if CLI.Clean.History && cfg.History.Path != "" {
		slog.Info("Removing history database", "path", cfg.History.Path)
		return os.RemoveAll(cfg.History.Path)
	}
	return nil
}
