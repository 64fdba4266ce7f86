package epidemic

import (
	"fmt"
	"strings"
)

// State is a compartment vector. Implementations are small value structs
// with one named field per compartment.
type State interface {
	// Labels names the entries of Counts, in order.
	Labels() []string
	Counts() []int64
	// Population is the conserved total. Counters that are not
	// compartments (cumulative cases) are excluded.
	Population() int64
	// Infectious sums the infectious-type compartments (exposed and
	// infected). A run is extinct when it is zero.
	Infectious() int64
}

// Dynamics holds a parameter set and the transition rules of one variant.
type Dynamics[S State] interface {
	Name() string
	Validate() error
	Step(x S, t, dt float64, s *Sampler) S
}

type Metric interface {
	Name() string
	Observe(x State, t float64)
	Value() float64
	Reset()
}

type Observer interface {
	OnStep(x State, t float64)
}

// Count looks up a compartment by label.
func Count(x State, label string) (int64, bool) {
	for i, l := range x.Labels() {
		if l == label {
			return x.Counts()[i], true
		}
	}
	return 0, false
}

type Distribution int

const (
	Binomial Distribution = iota
	Poisson
)

func (d Distribution) String() string {
	switch d {
	case Binomial:
		return "binomial"
	case Poisson:
		return "poisson"
	default:
		return fmt.Sprintf("distribution(%d)", int(d))
	}
}

func ParseDistribution(s string) (Distribution, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "binomial":
		return Binomial, nil
	case "poisson":
		return Poisson, nil
	default:
		return Binomial, fmt.Errorf("unknown distribution: %s", s)
	}
}

type Config struct {
	Dt               float64
	MaxSteps         int
	Seed             int64
	Distribution     Distribution
	StopOnExtinction bool
}

func DefaultConfig() Config {
	return Config{
		Dt:               1.0,
		MaxSteps:         365,
		Distribution:     Binomial,
		StopOnExtinction: true,
	}
}

func (c Config) Validate() error {
	if c.Dt <= 0 {
		return &ParameterError{Field: "dt", Value: c.Dt, Reason: "must be positive"}
	}
	if c.MaxSteps <= 0 {
		return &ParameterError{Field: "max_steps", Value: float64(c.MaxSteps), Reason: "must be positive"}
	}
	if c.Distribution != Binomial && c.Distribution != Poisson {
		return &ParameterError{Field: "distribution", Value: float64(c.Distribution), Reason: "unknown distribution"}
	}
	return nil
}

// Trajectory is the time-ordered record of one run. States[0] is the
// initial vector at Times[0] = 0.
type Trajectory[S State] struct {
	Model   string
	Times   []float64
	States  []S
	Steps   int
	Metrics map[string]float64
}

func (t *Trajectory[S]) Final() S {
	return t.States[len(t.States)-1]
}

// Record flattens the trajectory into label-indexed rows for storage.
func (t *Trajectory[S]) Record() *Record {
	r := &Record{
		Model:   t.Model,
		Times:   append([]float64(nil), t.Times...),
		Counts:  make([][]int64, len(t.States)),
		Steps:   t.Steps,
		Metrics: make(map[string]float64, len(t.Metrics)),
	}
	for i, x := range t.States {
		if i == 0 {
			r.Labels = x.Labels()
		}
		r.Counts[i] = x.Counts()
	}
	for k, v := range t.Metrics {
		r.Metrics[k] = v
	}
	return r
}

// Record is the variant-independent form of a trajectory.
type Record struct {
	Model   string
	Labels  []string
	Times   []float64
	Counts  [][]int64
	Steps   int
	Metrics map[string]float64
}

// Series returns the column for label, or nil if the model has no such
// compartment.
func (r *Record) Series(label string) []int64 {
	col := -1
	for i, l := range r.Labels {
		if l == label {
			col = i
			break
		}
	}
	if col < 0 {
		return nil
	}
	out := make([]int64, len(r.Counts))
	for i, row := range r.Counts {
		out[i] = row[col]
	}
	return out
}
