package metrics

import "github.com/san-kum/episim/internal/epidemic"

// PeakInfectious tracks the largest exposed+infected count seen.
type PeakInfectious struct {
	name string
	peak int64
}

func NewPeakInfectious() *PeakInfectious {
	return &PeakInfectious{name: "peak_infectious"}
}

func (p *PeakInfectious) Name() string { return p.name }

func (p *PeakInfectious) Observe(x epidemic.State, t float64) {
	if n := x.Infectious(); n > p.peak {
		p.peak = n
	}
}

func (p *PeakInfectious) Value() float64 { return float64(p.peak) }

func (p *PeakInfectious) Reset() { p.peak = 0 }

// PeakTime is the first time the infectious count reached its maximum.
type PeakTime struct {
	name    string
	peak    int64
	time    float64
	samples int
}

func NewPeakTime() *PeakTime {
	return &PeakTime{name: "peak_time"}
}

func (p *PeakTime) Name() string { return p.name }

func (p *PeakTime) Observe(x epidemic.State, t float64) {
	n := x.Infectious()
	if p.samples == 0 || n > p.peak {
		p.peak = n
		p.time = t
	}
	p.samples++
}

func (p *PeakTime) Value() float64 { return p.time }

func (p *PeakTime) Reset() {
	p.peak = 0
	p.time = 0
	p.samples = 0
}

// Duration is the last time at which anyone was exposed or infected.
type Duration struct {
	name string
	last float64
}

func NewDuration() *Duration {
	return &Duration{name: "duration"}
}

func (d *Duration) Name() string { return d.name }

func (d *Duration) Observe(x epidemic.State, t float64) {
	if x.Infectious() > 0 {
		d.last = t
	}
}

func (d *Duration) Value() float64 { return d.last }

func (d *Duration) Reset() { d.last = 0 }
