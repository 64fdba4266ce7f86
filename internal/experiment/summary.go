package experiment

import (
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/episim/internal/epidemic"
)

// Stats summarizes one metric over the runs of an ensemble.
type Stats struct {
	N      int
	Mean   float64
	StdDev float64
	Min    float64
	Max    float64
}

// Summarize collects every metric reported by at least one record.
func Summarize(records []*epidemic.Record) map[string]Stats {
	samples := make(map[string][]float64)
	for _, r := range records {
		for name, v := range r.Metrics {
			samples[name] = append(samples[name], v)
		}
	}

	out := make(map[string]Stats, len(samples))
	for name, xs := range samples {
		s := Stats{N: len(xs), Min: floats.Min(xs), Max: floats.Max(xs)}
		if len(xs) > 1 {
			s.Mean, s.StdDev = stat.MeanStdDev(xs, nil)
		} else {
			s.Mean = xs[0]
		}
		out[name] = s
	}
	return out
}

// MetricNames returns the keys of a summary in sorted order.
func MetricNames(summary map[string]Stats) []string {
	names := make([]string, 0, len(summary))
	for name := range summary {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
