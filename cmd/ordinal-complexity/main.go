// Command ordinal-complexity measures the ordinal-pattern permutation entropy
// and statistical complexity of every image under a path.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/google/uuid"

	"ordinal-complexity/internal/algorithms/permutation"
	"ordinal-complexity/internal/config"
	"ordinal-complexity/internal/debug/timing"
	"ordinal-complexity/internal/logger"
	"ordinal-complexity/internal/models"
	"ordinal-complexity/internal/pipeline"
	"ordinal-complexity/internal/pipeline/stages"
	"ordinal-complexity/internal/report"
	"ordinal-complexity/internal/services"
	"ordinal-complexity/internal/shutdown"
	"ordinal-complexity/internal/version"
)

const (
	exitOK        = 0
	exitFailure   = 1
	exitUsage     = 2
	exitCancelled = 130
)

// Application wires one batch run.
type Application struct {
	cfg         config.Config
	runID       string
	logger      logger.Logger
	timing      *timing.Tracker
	processor   *stages.Processor
	coordinator *pipeline.Coordinator
	shutdown    *shutdown.Manager
	stdout      io.Writer
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	cfg, showVersion, err := parseArgs(args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return exitOK
	}
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return exitUsage
	}
	if showVersion {
		fmt.Fprintln(stdout, version.String())
		return exitOK
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return exitUsage
	}

	app, err := NewApplication(context.Background(), cfg, stdout, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return exitUsage
	}
	defer app.shutdown.Shutdown()

	if err := app.Run(); err != nil {
		if errors.Is(err, context.Canceled) {
			return exitCancelled
		}
		app.logger.Error("Application", err, nil)
		return exitFailure
	}
	return exitOK
}

func NewApplication(ctx context.Context, cfg config.Config, stdout, stderr io.Writer) (*Application, error) {
	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	base, err := logger.New(cfg.LogFormat, level, stderr)
	if err != nil {
		return nil, err
	}

	runID := uuid.NewString()
	appLogger := base.With("run_id", runID)

	tracker := timing.NewTracker()
	service := services.NewProcessingService(permutation.Shared, appLogger, tracker)

	processor, err := stages.NewProcessor(cfg, service, appLogger, tracker)
	if err != nil {
		return nil, err
	}

	shutdownMgr := shutdown.NewManager(ctx, appLogger)
	shutdownMgr.Register(shutdown.Func(processor.Close))
	shutdownMgr.Listen()

	appLogger.Info("Application", "run configured", map[string]interface{}{
		"version":      version.Version,
		"path":         cfg.Path,
		"mask_mode":    cfg.MaskMode,
		"template":     cfg.TemplateName,
		"window":       fmt.Sprintf("%dx%d", cfg.DX, cfg.DY),
		"include":      cfg.Include,
		"workers":      cfg.Workers,
		"tile_workers": cfg.TileWorkers,
		"num_cpu":      runtime.NumCPU(),
	})

	return &Application{
		cfg:         cfg,
		runID:       runID,
		logger:      appLogger,
		timing:      tracker,
		processor:   processor,
		coordinator: pipeline.NewCoordinator(processor, appLogger, tracker, cfg.Workers),
		shutdown:    shutdownMgr,
		stdout:      stdout,
	}, nil
}

func (app *Application) Run() error {
	files, err := pipeline.DiscoverImages(app.cfg.Path)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		app.logger.Warning("Application", "no image files found", map[string]interface{}{
			"path": app.cfg.Path,
		})
	}

	results, runErr := app.coordinator.Run(app.shutdown.Context(), files, report.NewConsole(app.stdout))

	if app.cfg.SaveCSV != "" {
		if err := report.SaveCSV(app.cfg.SaveCSV, results, app.runID); err != nil {
			return fmt.Errorf("failed to save CSV: %w", err)
		}
		fmt.Fprintf(app.stdout, "saved → %s\n", app.cfg.SaveCSV)
	}

	stats := models.Summarize(results)
	fields := map[string]interface{}{
		"files":       stats.Total,
		"succeeded":   stats.Succeeded,
		"failed":      stats.Failed,
		"degenerate":  stats.Degenerate,
		"avg_file_ms": stats.AverageTime.Milliseconds(),
	}
	for k, v := range app.timing.Summary() {
		fields[k] = v
	}
	app.logger.Info("Application", "run finished", fields)

	return runErr
}
