package epidemic

import (
	"context"
	"log/slog"
)

type Simulator[S State] struct {
	dyn        Dynamics[S]
	cfg        Config
	sampler    *Sampler
	x          S
	t          float64
	population int64
	traj       *Trajectory[S]
	metrics    []Metric
	observers  []Observer
	logger     *slog.Logger
	err        error
}

// New validates the run configuration, the parameter set and the initial
// vector, and records x0 as the first trajectory entry.
func New[S State](dyn Dynamics[S], x0 S, cfg Config) (*Simulator[S], error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := dyn.Validate(); err != nil {
		return nil, err
	}
	labels, counts := x0.Labels(), x0.Counts()
	for i, v := range counts {
		if v < 0 {
			return nil, &ParameterError{Field: "initial." + labels[i], Value: float64(v), Reason: "count must be non-negative"}
		}
	}

	capacity := cfg.MaxSteps + 1
	if capacity > 4096 {
		capacity = 4096
	}
	traj := &Trajectory[S]{
		Model:   dyn.Name(),
		Times:   make([]float64, 0, capacity),
		States:  make([]S, 0, capacity),
		Metrics: make(map[string]float64),
	}
	traj.Times = append(traj.Times, 0)
	traj.States = append(traj.States, x0)

	return &Simulator[S]{
		dyn:        dyn,
		cfg:        cfg,
		sampler:    NewSampler(cfg.Seed, cfg.Distribution),
		x:          x0,
		population: x0.Population(),
		traj:       traj,
		metrics:    make([]Metric, 0),
		observers:  make([]Observer, 0),
		logger:     slog.New(slog.DiscardHandler),
	}, nil
}

// AddMetric resets m and feeds it the current vector.
func (s *Simulator[S]) AddMetric(m Metric) {
	m.Reset()
	m.Observe(s.x, s.t)
	s.metrics = append(s.metrics, m)
}

func (s *Simulator[S]) AddObserver(o Observer) { s.observers = append(s.observers, o) }

func (s *Simulator[S]) SetLogger(l *slog.Logger) {
	if l != nil {
		s.logger = l
	}
}

func (s *Simulator[S]) State() S          { return s.x }
func (s *Simulator[S]) Time() float64     { return s.t }
func (s *Simulator[S]) Steps() int        { return s.traj.Steps }
func (s *Simulator[S]) Config() Config    { return s.cfg }
func (s *Simulator[S]) Sampler() *Sampler { return s.sampler }

// Done reports whether Run would stop: the step horizon is reached or, with
// StopOnExtinction, no infectious-type compartment is occupied.
func (s *Simulator[S]) Done() bool {
	if s.traj.Steps >= s.cfg.MaxSteps {
		return true
	}
	return s.cfg.StopOnExtinction && s.x.Infectious() == 0
}

// Step advances the vector by one dt and appends it to the trajectory.
// After a failed step the simulator keeps returning the same error.
func (s *Simulator[S]) Step() (S, error) {
	if s.err != nil {
		return s.x, s.err
	}

	next := s.dyn.Step(s.x, s.t, s.cfg.Dt, s.sampler)
	t := float64(s.traj.Steps+1) * s.cfg.Dt

	if err := s.check(next, t); err != nil {
		s.err = err
		s.logger.Error("step rejected", "model", s.dyn.Name(), "step", s.traj.Steps+1, "err", err)
		return s.x, err
	}

	s.x = next
	s.t = t
	s.traj.Steps++
	s.traj.Times = append(s.traj.Times, t)
	s.traj.States = append(s.traj.States, next)

	for _, m := range s.metrics {
		m.Observe(next, t)
	}
	for _, obs := range s.observers {
		obs.OnStep(next, t)
	}

	return next, nil
}

// Run steps until Done and returns the trajectory. On error no trajectory
// is returned.
func (s *Simulator[S]) Run(ctx context.Context) (*Trajectory[S], error) {
	s.logger.Debug("run start",
		"model", s.dyn.Name(),
		"seed", s.cfg.Seed,
		"dt", s.cfg.Dt,
		"max_steps", s.cfg.MaxSteps,
		"distribution", s.cfg.Distribution.String(),
		"population", s.population)

	for !s.Done() {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		if _, err := s.Step(); err != nil {
			return nil, err
		}
	}

	traj := s.Trajectory()
	s.logger.Debug("run finished",
		"model", s.dyn.Name(),
		"steps", traj.Steps,
		"t", s.t,
		"infectious", s.x.Infectious())
	return traj, nil
}

// Trajectory returns the history so far with current metric values.
func (s *Simulator[S]) Trajectory() *Trajectory[S] {
	for _, m := range s.metrics {
		s.traj.Metrics[m.Name()] = m.Value()
	}
	if s.cfg.Distribution == Poisson {
		s.traj.Metrics["clipped_draws"] = float64(s.sampler.Clipped())
	}
	return s.traj
}

func (s *Simulator[S]) check(x S, t float64) error {
	labels, counts := x.Labels(), x.Counts()
	for i, v := range counts {
		if v < 0 {
			return &InvariantError{Step: s.traj.Steps + 1, Time: t, Label: labels[i], Value: v, Reason: "negative count"}
		}
	}
	if p := x.Population(); p != s.population {
		return &InvariantError{Step: s.traj.Steps + 1, Time: t, Label: "population", Value: p, Reason: "population not conserved"}
	}
	return nil
}
