package models

import (
	"errors"

	"github.com/san-kum/episim/internal/epidemic"
)

// Ebola is an SEIRSD model with a cumulative case count. Immunity wanes at
// rate Waning; an Intervention models isolation and safe burials.
type Ebola struct {
	Transmission float64
	Incubation   float64
	Recovery     float64
	Mortality    float64
	Waning       float64
	Intervention *Intervention
}

func NewEbola() *Ebola {
	return &Ebola{
		Transmission: 0.3,
		Incubation:   0.1,
		Recovery:     0.07,
		Mortality:    0.07,
		Waning:       1.0 / 180,
	}
}

func (m *Ebola) Name() string { return "ebola" }

func (m *Ebola) Validate() error {
	return errors.Join(
		epidemic.CheckRate("transmission", m.Transmission),
		epidemic.CheckRate("incubation", m.Incubation),
		epidemic.CheckRate("recovery", m.Recovery),
		epidemic.CheckRate("mortality", m.Mortality),
		epidemic.CheckRate("waning", m.Waning),
		m.Intervention.validate(),
	)
}

func (m *Ebola) R0() float64 { return reproduction(m.Transmission, m.Recovery, m.Mortality) }

func (m *Ebola) Step(x EbolaState, t, dt float64, s *epidemic.Sampler) EbolaState {
	beta := m.Intervention.transmission(m.Transmission, t)

	exp := infections(s, x.S, x.I, x.living(), beta, dt)
	inc := s.Transfer(x.E, m.Incubation, dt)
	rec, dead := removals(s, x.I, m.Recovery, m.Mortality, dt)
	wan := s.Transfer(x.R, m.Waning, dt)

	return EbolaState{
		S: x.S - exp + wan,
		E: x.E + exp - inc,
		I: x.I + inc - rec - dead,
		R: x.R + rec - wan,
		D: x.D + dead,
		C: x.C + inc,
	}
}
