// Package service runs the score table pipeline: load, aggregate,
// summarize and render.
package service

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/okian/scoretable/internal/adapters/render"
	"github.com/okian/scoretable/internal/adapters/source"
	"github.com/okian/scoretable/internal/domain/model"
	"github.com/okian/scoretable/internal/domain/stats"
	"github.com/okian/scoretable/internal/domain/types"
	"github.com/okian/scoretable/pkg/logger"
	"github.com/okian/scoretable/pkg/metrics"
)

// Loader reads records from a path.
type Loader interface {
	Load(ctx context.Context, path string) ([]model.Record, error)
}

// Renderer prints the statistics table.
type Renderer interface {
	Render(w io.Writer, set stats.Set, ext model.GlobalExtremes) (render.Summary, error)
}

// Report describes a finished run.
type Report struct {
	RunID        string
	Records      int
	Participants int
	Extremes     model.GlobalExtremes
	Rows         render.Summary
}

// Service sequences the pipeline stages and prints progress between them.
type Service struct {
	loader   Loader
	renderer Renderer
	out      io.Writer
	metrics  *metrics.Manager
	logger   logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLoader sets the record loader.
func WithLoader(l Loader) Option {
	return func(s *Service) {
		if l != nil {
			s.loader = l
		}
	}
}

// WithRenderer sets the table renderer.
func WithRenderer(r Renderer) Option {
	return func(s *Service) {
		if r != nil {
			s.renderer = r
		}
	}
}

// WithOutput sets where progress messages and the table are written.
func WithOutput(w io.Writer) Option {
	return func(s *Service) {
		if w != nil {
			s.out = w
		}
	}
}

// WithMetrics sets the metrics manager.
func WithMetrics(m *metrics.Manager) Option {
	return func(s *Service) {
		if m != nil {
			s.metrics = m
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New constructs a Service. Without options it loads with the default
// column names and renders an unstyled table to stdout.
func New(opts ...Option) *Service {
	s := &Service{
		loader:  source.New(),
		out:     os.Stdout,
		metrics: metrics.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.renderer == nil {
		// Default widths are always valid.
		table, _ := render.NewTable()
		s.renderer = table
	}
	return s
}

// Run executes the pipeline for path. Nothing is rendered when an earlier
// stage fails; the returned error is wrapped with the failing stage.
func (s *Service) Run(ctx context.Context, path string) (Report, error) {
	if s.logger == nil {
		s.logger = logger.Get()
	}
	rep := Report{RunID: uuid.NewString()}
	log := s.logger.With(logger.String("run_id", rep.RunID))
	log.Info(ctx, "pipeline started", logger.String("path", path))

	if err := s.say("Loading score file..."); err != nil {
		return rep, err
	}
	var recs []model.Record
	err := s.stage(ctx, log, metrics.StageLoad, func() error {
		var err error
		recs, err = s.loader.Load(ctx, path)
		return err
	})
	if err != nil {
		return rep, err
	}
	rep.Records = len(recs)
	s.metrics.RecordRecordsLoaded(len(recs))
	if err := s.say(fmt.Sprintf("Loaded %d records.", len(recs))); err != nil {
		return rep, err
	}

	if err := s.say("Calculating statistics..."); err != nil {
		return rep, err
	}
	var set stats.Set
	err = s.stage(ctx, log, metrics.StageAggregate, func() error {
		set = stats.Aggregate(recs)
		return nil
	})
	if err != nil {
		return rep, err
	}
	rep.Participants = len(set)
	s.metrics.UpdateParticipants(len(set))
	if err := s.say(fmt.Sprintf("Calculated statistics for %d participants.", len(set))); err != nil {
		return rep, err
	}

	err = s.stage(ctx, log, metrics.StageExtremes, func() error {
		var err error
		rep.Extremes, err = stats.FindExtremes(set)
		return err
	})
	if err != nil {
		return rep, err
	}

	err = s.stage(ctx, log, metrics.StageRender, func() error {
		var err error
		rep.Rows, err = s.renderer.Render(s.out, set, rep.Extremes)
		return err
	})
	if err != nil {
		return rep, err
	}
	s.metrics.UpdateRowsEmphasized(types.EmphasisHigh.String(), rep.Rows.High)
	s.metrics.UpdateRowsEmphasized(types.EmphasisLow.String(), rep.Rows.Low)
	s.metrics.UpdateRowsEmphasized(types.EmphasisNone.String(), rep.Rows.Rows-rep.Rows.High-rep.Rows.Low)

	log.Info(ctx, "pipeline finished",
		logger.Int("records", rep.Records),
		logger.Int("participants", rep.Participants),
		logger.Float64("max_average", rep.Extremes.MaxAverage),
		logger.Float64("min_average", rep.Extremes.MinAverage),
		logger.Bool("tied", rep.Extremes.Tied()),
	)
	return rep, nil
}

// stage times fn, records its outcome and wraps any error with the stage name.
func (s *Service) stage(ctx context.Context, log logger.Logger, name string, fn func() error) error {
	if err := ctx.Err(); err != nil {
		s.metrics.RecordError(name)
		return fmt.Errorf("%s: %w", name, err)
	}

	start := time.Now()
	err := fn()
	elapsed := time.Since(start)
	s.metrics.ObserveStage(name, elapsed)

	if err != nil {
		s.metrics.RecordError(name)
		log.Error(ctx, "stage failed", logger.String("stage", name), logger.Duration("elapsed", elapsed), logger.Error(err))
		return fmt.Errorf("%s: %w", name, err)
	}
	log.Debug(ctx, "stage finished", logger.String("stage", name), logger.Duration("elapsed", elapsed))
	return nil
}

func (s *Service) say(msg string) error {
	_, err := fmt.Fprintln(s.out, msg)
	return err
}
