package experiment

import (
	"context"
	"log/slog"
	"math"

	"github.com/san-kum/episim/internal/epidemic"
	"github.com/san-kum/episim/internal/logging"
	"github.com/san-kum/episim/internal/metrics"
)

// Runner hides the state type of a configured model.
type Runner interface {
	Model() string
	Labels() []string
	Config() epidemic.Config
	R0() float64
	Run(ctx context.Context) (*epidemic.Record, error)
	Ensemble(ctx context.Context, runs, workers int) ([]*epidemic.Record, error)
}

type reproducer interface {
	R0() float64
}

type job[S epidemic.State] struct {
	dyn    epidemic.Dynamics[S]
	x0     S
	cfg    epidemic.Config
	logger *slog.Logger
}

func newJob[S epidemic.State](dyn epidemic.Dynamics[S], x0 S, cfg epidemic.Config, logger *slog.Logger) *job[S] {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &job[S]{dyn: dyn, x0: x0, cfg: cfg, logger: logger}
}

func (j *job[S]) Model() string           { return j.dyn.Name() }
func (j *job[S]) Labels() []string        { return j.x0.Labels() }
func (j *job[S]) Config() epidemic.Config { return j.cfg }

func (j *job[S]) R0() float64 {
	if r, ok := j.dyn.(reproducer); ok {
		return r.R0()
	}
	return math.NaN()
}

func (j *job[S]) Run(ctx context.Context) (*epidemic.Record, error) {
	sim, err := epidemic.New(j.dyn, j.x0, j.cfg)
	if err != nil {
		return nil, err
	}
	sim.SetLogger(j.logger)
	for _, m := range metrics.Default(j.x0.Labels()) {
		sim.AddMetric(m)
	}
	sim.AddObserver(logging.NewStepLogger(j.logger, j.dyn.Name()))

	traj, err := sim.Run(ctx)
	if err != nil {
		return nil, err
	}
	return traj.Record(), nil
}

func (j *job[S]) Ensemble(ctx context.Context, runs, workers int) ([]*epidemic.Record, error) {
	labels := j.x0.Labels()
	steps := logging.NewStepLogger(j.logger, j.dyn.Name())
	trajs, err := epidemic.NewEnsemble(j.dyn, j.x0, j.cfg, runs).
		WithMetrics(func() []epidemic.Metric { return metrics.Default(labels) }).
		WithObservers(func() []epidemic.Observer { return []epidemic.Observer{steps} }).
		WithLogger(j.logger).
		Run(ctx, workers)
	if err != nil {
		return nil, err
	}

	records := make([]*epidemic.Record, len(trajs))
	for i, traj := range trajs {
		records[i] = traj.Record()
	}
	return records, nil
}
