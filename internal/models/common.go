package models

import (
	"errors"
	"math"

	"github.com/san-kum/episim/internal/epidemic"
)

// Intervention replaces the transmission rate from Time on (lockdown,
// isolation, burial practices).
type Intervention struct {
	Time         float64
	Transmission float64
}

func (iv *Intervention) validate() error {
	if iv == nil {
		return nil
	}
	var errTime error
	if math.IsNaN(iv.Time) || iv.Time < 0 {
		errTime = &epidemic.ParameterError{Field: "intervention.time", Value: iv.Time, Reason: "must be non-negative"}
	}
	return errors.Join(errTime, epidemic.CheckRate("intervention.transmission", iv.Transmission))
}

// transmission is the rate in effect at t.
func (iv *Intervention) transmission(base, t float64) float64 {
	if iv != nil && t >= iv.Time {
		return iv.Transmission
	}
	return base
}

// Vaccination moves susceptibles straight to recovered once Start is
// reached, at Base+Ramp*(t-Start) doses per unit time, capped at Cap when
// Cap > 0. Doses are only given while someone is infected.
type Vaccination struct {
	Start float64
	Base  float64
	Ramp  float64
	Cap   float64
}

func (v *Vaccination) validate() error {
	if v == nil {
		return nil
	}
	var errStart error
	if math.IsNaN(v.Start) || math.IsInf(v.Start, 0) || v.Start < 0 {
		errStart = &epidemic.ParameterError{Field: "vaccination.start", Value: v.Start, Reason: "must be a finite non-negative time"}
	}
	return errors.Join(
		errStart,
		epidemic.CheckRate("vaccination.base", v.Base),
		epidemic.CheckRate("vaccination.ramp", v.Ramp),
		epidemic.CheckRate("vaccination.cap", v.Cap),
	)
}

// scheduled is the cumulative number of doses due by time t.
func (v *Vaccination) scheduled(t float64) float64 {
	tau := t - v.Start
	if tau <= 0 {
		return 0
	}
	if v.Cap > 0 {
		if v.Base >= v.Cap {
			return v.Cap * tau
		}
		if v.Ramp > 0 {
			if tc := (v.Cap - v.Base) / v.Ramp; tau > tc {
				return v.Base*tc + v.Ramp*tc*tc/2 + v.Cap*(tau-tc)
			}
		}
	}
	return v.Base*tau + v.Ramp*tau*tau/2
}

// Doses returns the whole doses that fall due in [t, t+dt). Fractions carry
// over to later steps, so the total does not depend on the step size.
// Schedules beyond the int64 range saturate.
func (v *Vaccination) Doses(t, dt float64) int64 {
	if v == nil || dt <= 0 {
		return 0
	}
	d := wholeDoses(v.scheduled(t+dt)) - wholeDoses(v.scheduled(t))
	switch {
	case math.IsNaN(d) || d >= math.MaxInt64:
		return math.MaxInt64
	case d <= 0:
		return 0
	}
	return int64(d)
}

// wholeDoses floors a cumulative schedule. The slack absorbs rounding in
// step times that land on a dose boundary.
func wholeDoses(x float64) float64 {
	return math.Floor(x + 1e-9*math.Max(1, x))
}

// vaccinate bounds the scheduled doses by the susceptibles left after
// infections were drawn.
func vaccinate(v *Vaccination, t, dt float64, available, infected int64) int64 {
	if infected <= 0 || available <= 0 {
		return 0
	}
	return min(v.Doses(t, dt), available)
}

// infections draws new infections among susceptible individuals.
func infections(s *epidemic.Sampler, susceptible, infected, living int64, beta, dt float64) int64 {
	if infected <= 0 || living <= 0 {
		return 0
	}
	return s.Transfer(susceptible, beta*float64(infected)/float64(living), dt)
}

// removals draws departures from the infected compartment under competing
// recovery and mortality hazards.
func removals(s *epidemic.Sampler, infected int64, recovery, mortality, dt float64) (recovered, dead int64) {
	out := s.Transfer(infected, recovery+mortality, dt)
	if out == 0 {
		return 0, 0
	}
	dead = s.Split(out, mortality/(recovery+mortality))
	return out - dead, dead
}

// reproduction is the basic reproduction number beta/(gamma+mu).
func reproduction(beta, recovery, mortality float64) float64 {
	if beta == 0 {
		return 0
	}
	if recovery+mortality == 0 {
		return math.Inf(1)
	}
	return beta / (recovery + mortality)
}
