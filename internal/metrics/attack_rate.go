package metrics

import "github.com/san-kum/episim/internal/epidemic"

// AttackRate is the share of the initial susceptibles that left S. With
// waning immunity individuals can return to S, so the value can shrink
// over a run.
type AttackRate struct {
	name    string
	initial int64
	current int64
	samples int
}

func NewAttackRate() *AttackRate {
	return &AttackRate{name: "attack_rate"}
}

func (a *AttackRate) Name() string { return a.name }

func (a *AttackRate) Observe(x epidemic.State, t float64) {
	s, ok := epidemic.Count(x, "S")
	if !ok {
		return
	}
	if a.samples == 0 {
		a.initial = s
	}
	a.current = s
	a.samples++
}

func (a *AttackRate) Value() float64 {
	if a.initial == 0 {
		return 0
	}
	return 1 - float64(a.current)/float64(a.initial)
}

func (a *AttackRate) Reset() {
	a.initial = 0
	a.current = 0
	a.samples = 0
}
