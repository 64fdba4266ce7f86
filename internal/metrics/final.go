package metrics

import "github.com/san-kum/episim/internal/epidemic"

// FinalCount reports the last observed value of one compartment, named
// final_<label>.
type FinalCount struct {
	name  string
	label string
	value int64
}

func NewFinalCount(label string) *FinalCount {
	return &FinalCount{name: "final_" + label, label: label}
}

func (f *FinalCount) Name() string { return f.name }

func (f *FinalCount) Observe(x epidemic.State, t float64) {
	if v, ok := epidemic.Count(x, f.label); ok {
		f.value = v
	}
}

func (f *FinalCount) Value() float64 { return float64(f.value) }

func (f *FinalCount) Reset() { f.value = 0 }

// Default returns the metric set for a model with the given labels.
func Default(labels []string) []epidemic.Metric {
	ms := []epidemic.Metric{
		NewPeakInfectious(),
		NewPeakTime(),
		NewDuration(),
		NewAttackRate(),
	}
	for _, l := range labels {
		if l == "R" || l == "D" || l == "C" {
			ms = append(ms, NewFinalCount(l))
		}
	}
	return ms
}
