package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/mattn/go-colorable"
	"github.com/okian/scoretable/internal/adapters/render"
	"github.com/okian/scoretable/internal/adapters/source"
	app "github.com/okian/scoretable/internal/app"
	"github.com/okian/scoretable/internal/config"
	"github.com/okian/scoretable/pkg/logger"
	"github.com/okian/scoretable/pkg/metrics"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Logger isn't configured yet, so early failures go straight to stderr.
	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return 1
	}

	// Load configuration (defaults -> .env -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return 1
	}

	if err := logger.Init(logger.WithFormat(cfg.LogFormat)); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return 1
	}
	defer func() { _ = logger.Sync() }()

	loggerInstance := logger.Get()
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		loggerInstance.Warn(ctx, "invalid log_level; falling back to warn", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("warn")
	}

	// Styling is decided on the real stdout; writes go through colorable so
	// escape codes also work on legacy Windows consoles.
	styler := render.SelectStyler(cfg.Color, os.Stdout)
	return execute(ctx, cfg, colorable.NewColorable(os.Stdout), styler, loggerInstance)
}

// execute runs the pipeline and reports the outcome on out. Every failure
// maps to exit status 1.
func execute(ctx context.Context, cfg *config.Config, out io.Writer, styler render.Styler, lg logger.Logger) int {
	svc, err := newService(cfg, out, styler, lg)
	if err != nil {
		report(out, cfg.InputPath, err)
		return 1
	}

	_, runErr := svc.Run(ctx, cfg.InputPath)

	if cfg.MetricsFile != "" {
		if err := metrics.WriteTextfile(cfg.MetricsFile); err != nil {
			lg.Warn(ctx, "metrics textfile not written", logger.String("path", cfg.MetricsFile), logger.Error(err))
		}
	}

	if runErr != nil {
		report(out, cfg.InputPath, runErr)
		return 1
	}
	return 0
}

func newService(cfg *config.Config, out io.Writer, styler render.Styler, lg logger.Logger) (*app.Service, error) {
	table, err := render.NewTable(
		render.WithWidths(cfg.NameWidth, cfg.AverageWidth, cfg.MaxWidth, cfg.MinWidth),
		render.WithStyler(styler),
		render.WithLabels(render.LabelsFor(cfg.Lang)),
	)
	if err != nil {
		return nil, err
	}

	loader := source.New(
		source.WithNameField(cfg.NameField),
		source.WithScoreField(cfg.ScoreField),
		source.WithDelimiter(cfg.DelimiterRune()),
		source.WithSheet(cfg.Sheet),
		source.WithLogger(lg.Named("source")),
	)

	return app.New(
		app.WithLogger(lg),
		app.WithLoader(loader),
		app.WithRenderer(table),
		app.WithOutput(out),
		app.WithMetrics(metrics.Default()),
	), nil
}

// report prints the user-facing message for err. A missing input file gets
// its own message; everything else shares one generic form.
func report(w io.Writer, path string, err error) {
	if errors.Is(err, source.ErrNotFound) {
		fmt.Fprintf(w, "Error: file '%s' not found.\n", path)
		fmt.Fprintln(w, "Make sure the file is in the working directory.")
		return
	}
	fmt.Fprintf(w, "An error occurred: %v\n", err)
}
