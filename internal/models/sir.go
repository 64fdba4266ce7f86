package models

import (
	"errors"

	"github.com/san-kum/episim/internal/epidemic"
)

// SIR is the susceptible-infected-recovered model with an optional
// vaccination campaign.
type SIR struct {
	Transmission float64
	Recovery     float64
	Vaccination  *Vaccination
}

func NewSIR() *SIR {
	return &SIR{
		Transmission: 0.3,
		Recovery:     0.1,
	}
}

func (m *SIR) Name() string { return "sir" }

func (m *SIR) Validate() error {
	return errors.Join(
		epidemic.CheckRate("transmission", m.Transmission),
		epidemic.CheckRate("recovery", m.Recovery),
		m.Vaccination.validate(),
	)
}

func (m *SIR) R0() float64 { return reproduction(m.Transmission, m.Recovery, 0) }

func (m *SIR) Step(x SIRState, t, dt float64, s *epidemic.Sampler) SIRState {
	inf := infections(s, x.S, x.I, x.Population(), m.Transmission, dt)
	rec := s.Transfer(x.I, m.Recovery, dt)
	vac := vaccinate(m.Vaccination, t, dt, x.S-inf, x.I)

	return SIRState{
		S: x.S - inf - vac,
		I: x.I + inf - rec,
		R: x.R + rec + vac,
	}
}

// SIRS adds loss of immunity: recovered individuals return to the
// susceptible pool at rate Waning.
type SIRS struct {
	Transmission float64
	Recovery     float64
	Waning       float64
}

func NewSIRS() *SIRS {
	return &SIRS{
		Transmission: 0.3,
		Recovery:     0.1,
		Waning:       1.0 / 30,
	}
}

func (m *SIRS) Name() string { return "sirs" }

func (m *SIRS) Validate() error {
	return errors.Join(
		epidemic.CheckRate("transmission", m.Transmission),
		epidemic.CheckRate("recovery", m.Recovery),
		epidemic.CheckRate("waning", m.Waning),
	)
}

func (m *SIRS) R0() float64 { return reproduction(m.Transmission, m.Recovery, 0) }

func (m *SIRS) Step(x SIRState, t, dt float64, s *epidemic.Sampler) SIRState {
	inf := infections(s, x.S, x.I, x.Population(), m.Transmission, dt)
	rec := s.Transfer(x.I, m.Recovery, dt)
	wan := s.Transfer(x.R, m.Waning, dt)

	return SIRState{
		S: x.S - inf + wan,
		I: x.I + inf - rec,
		R: x.R + rec - wan,
	}
}
