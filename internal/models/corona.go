package models

import (
	"errors"

	"github.com/san-kum/episim/internal/epidemic"
)

// Corona is an SEIRD model for the Covid-19 case study. An Intervention
// lowers transmission from a given day; Waning and Vaccination are off by
// default.
type Corona struct {
	Transmission float64
	Incubation   float64
	Recovery     float64
	Mortality    float64
	Waning       float64
	Intervention *Intervention
	Vaccination  *Vaccination
}

func NewCorona() *Corona {
	return &Corona{
		Transmission: 0.5,
		Incubation:   1 / 5.2,
		Recovery:     0.1,
		Mortality:    0.002,
	}
}

func (m *Corona) Name() string { return "corona" }

func (m *Corona) Validate() error {
	return errors.Join(
		epidemic.CheckRate("transmission", m.Transmission),
		epidemic.CheckRate("incubation", m.Incubation),
		epidemic.CheckRate("recovery", m.Recovery),
		epidemic.CheckRate("mortality", m.Mortality),
		epidemic.CheckRate("waning", m.Waning),
		m.Intervention.validate(),
		m.Vaccination.validate(),
	)
}

func (m *Corona) R0() float64 { return reproduction(m.Transmission, m.Recovery, m.Mortality) }

func (m *Corona) Step(x CoronaState, t, dt float64, s *epidemic.Sampler) CoronaState {
	beta := m.Intervention.transmission(m.Transmission, t)

	exp := infections(s, x.S, x.I, x.living(), beta, dt)
	inc := s.Transfer(x.E, m.Incubation, dt)
	rec, dead := removals(s, x.I, m.Recovery, m.Mortality, dt)
	wan := s.Transfer(x.R, m.Waning, dt)
	vac := vaccinate(m.Vaccination, t, dt, x.S-exp, x.I)

	return CoronaState{
		S: x.S - exp - vac + wan,
		E: x.E + exp - inc,
		I: x.I + inc - rec - dead,
		R: x.R + rec + vac - wan,
		D: x.D + dead,
	}
}
