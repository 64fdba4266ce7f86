package models

import (
	"errors"

	"github.com/san-kum/episim/internal/epidemic"
)

// Plague is an SEIRD model with a cumulative case count. The default
// parameters describe a short incubation and a high case fatality.
type Plague struct {
	Transmission float64
	Incubation   float64
	Recovery     float64
	Mortality    float64
	Intervention *Intervention
}

func NewPlague() *Plague {
	return &Plague{
		Transmission: 0.45,
		Incubation:   0.25,
		Recovery:     0.1,
		Mortality:    0.125,
	}
}

func (m *Plague) Name() string { return "plague" }

func (m *Plague) Validate() error {
	return errors.Join(
		epidemic.CheckRate("transmission", m.Transmission),
		epidemic.CheckRate("incubation", m.Incubation),
		epidemic.CheckRate("recovery", m.Recovery),
		epidemic.CheckRate("mortality", m.Mortality),
		m.Intervention.validate(),
	)
}

func (m *Plague) R0() float64 { return reproduction(m.Transmission, m.Recovery, m.Mortality) }

func (m *Plague) Step(x PlagueState, t, dt float64, s *epidemic.Sampler) PlagueState {
	beta := m.Intervention.transmission(m.Transmission, t)

	exp := infections(s, x.S, x.I, x.living(), beta, dt)
	inc := s.Transfer(x.E, m.Incubation, dt)
	rec, dead := removals(s, x.I, m.Recovery, m.Mortality, dt)

	return PlagueState{
		S: x.S - exp,
		E: x.E + exp - inc,
		I: x.I + inc - rec - dead,
		R: x.R + rec,
		D: x.D + dead,
		C: x.C + inc,
	}
}
