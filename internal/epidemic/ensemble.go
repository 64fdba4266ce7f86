package epidemic

import (
	"context"
	"log/slog"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Ensemble repeats one configuration over consecutive seeds. Run i uses
// seed cfg.Seed+i on a simulator of its own.
type Ensemble[S State] struct {
	dyn     Dynamics[S]
	x0      S
	cfg     Config
	numRuns int
	metrics   func() []Metric
	observers func() []Observer
	logger    *slog.Logger
}

func NewEnsemble[S State](dyn Dynamics[S], x0 S, cfg Config, numRuns int) *Ensemble[S] {
	return &Ensemble[S]{dyn: dyn, x0: x0, cfg: cfg, numRuns: numRuns}
}

// WithMetrics sets a factory that builds fresh metrics for every run.
func (e *Ensemble[S]) WithMetrics(fn func() []Metric) *Ensemble[S] {
	e.metrics = fn
	return e
}

// WithObservers sets a factory for the observers attached to every run.
// Runs execute concurrently, so shared observers must be safe for that.
func (e *Ensemble[S]) WithObservers(fn func() []Observer) *Ensemble[S] {
	e.observers = fn
	return e
}

func (e *Ensemble[S]) WithLogger(l *slog.Logger) *Ensemble[S] {
	e.logger = l
	return e
}

// Run executes the repetitions on at most workers goroutines (GOMAXPROCS
// when workers <= 0). Results are in seed order. The first failure cancels
// the remaining runs.
func (e *Ensemble[S]) Run(ctx context.Context, workers int) ([]*Trajectory[S], error) {
	if e.numRuns <= 0 {
		return nil, &ParameterError{Field: "runs", Value: float64(e.numRuns), Reason: "must be positive"}
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	results := make([]*Trajectory[S], e.numRuns)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := 0; i < e.numRuns; i++ {
		g.Go(func() error {
			cfg := e.cfg
			cfg.Seed = e.cfg.Seed + int64(i)

			s, err := New(e.dyn, e.x0, cfg)
			if err != nil {
				return err
			}
			s.SetLogger(e.logger)
			if e.metrics != nil {
				for _, m := range e.metrics() {
					s.AddMetric(m)
				}
			}
			if e.observers != nil {
				for _, o := range e.observers() {
					s.AddObserver(o)
				}
			}

			traj, err := s.Run(ctx)
			if err != nil {
				return err
			}
			results[i] = traj
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
