package models

import (
	"errors"

	"github.com/san-kum/episim/internal/epidemic"
)

// SIRD splits removals from I between recovery and death. The dead no
// longer mix.
type SIRD struct {
	Transmission float64
	Recovery     float64
	Mortality    float64
}

func NewSIRD() *SIRD {
	return &SIRD{
		Transmission: 0.3,
		Recovery:     0.1,
		Mortality:    0.01,
	}
}

func (m *SIRD) Name() string { return "sird" }

func (m *SIRD) Validate() error {
	return errors.Join(
		epidemic.CheckRate("transmission", m.Transmission),
		epidemic.CheckRate("recovery", m.Recovery),
		epidemic.CheckRate("mortality", m.Mortality),
	)
}

func (m *SIRD) R0() float64 { return reproduction(m.Transmission, m.Recovery, m.Mortality) }

// FatalityRatio is the share of removals that end in death.
func (m *SIRD) FatalityRatio() float64 {
	if m.Recovery+m.Mortality == 0 {
		return 0
	}
	return m.Mortality / (m.Recovery + m.Mortality)
}

func (m *SIRD) Step(x SIRDState, t, dt float64, s *epidemic.Sampler) SIRDState {
	inf := infections(s, x.S, x.I, x.living(), m.Transmission, dt)
	rec, dead := removals(s, x.I, m.Recovery, m.Mortality, dt)

	return SIRDState{
		S: x.S - inf,
		I: x.I + inf - rec - dead,
		R: x.R + rec,
		D: x.D + dead,
	}
}
