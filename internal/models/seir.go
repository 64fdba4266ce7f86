package models

import (
	"errors"

	"github.com/san-kum/episim/internal/epidemic"
)

// SEIR adds a latent compartment: infected individuals incubate in E
// before they become infectious.
type SEIR struct {
	Transmission float64
	Incubation   float64
	Recovery     float64
}

func NewSEIR() *SEIR {
	return &SEIR{
		Transmission: 0.5,
		Incubation:   0.2,
		Recovery:     0.1,
	}
}

func (m *SEIR) Name() string { return "seir" }

func (m *SEIR) Validate() error {
	return errors.Join(
		epidemic.CheckRate("transmission", m.Transmission),
		epidemic.CheckRate("incubation", m.Incubation),
		epidemic.CheckRate("recovery", m.Recovery),
	)
}

func (m *SEIR) R0() float64 { return reproduction(m.Transmission, m.Recovery, 0) }

func (m *SEIR) Step(x SEIRState, t, dt float64, s *epidemic.Sampler) SEIRState {
	exp := infections(s, x.S, x.I, x.Population(), m.Transmission, dt)
	inc := s.Transfer(x.E, m.Incubation, dt)
	rec := s.Transfer(x.I, m.Recovery, dt)

	return SEIRState{
		S: x.S - exp,
		E: x.E + exp - inc,
		I: x.I + inc - rec,
		R: x.R + rec,
	}
}
