package epidemic

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

// Sampler draws transition counts for one run. It is not safe for
// concurrent use; every Simulator owns its own.
type Sampler struct {
	rng     *rand.Rand
	dist    Distribution
	clipped int
}

func NewSampler(seed int64, dist Distribution) *Sampler {
	return &Sampler{
		rng:  rand.New(rand.NewPCG(uint64(seed), uint64(seed)^0x9e3779b97f4a7c15)),
		dist: dist,
	}
}

// TransitionProbability converts a hazard rate into the probability that
// one individual leaves within dt.
func TransitionProbability(rate, dt float64) float64 {
	if rate <= 0 || dt <= 0 {
		return 0
	}
	return -math.Expm1(-rate * dt)
}

// Transfer draws how many of n individuals leave a compartment with hazard
// rate during dt. The result is always in [0, n].
func (s *Sampler) Transfer(n int64, rate, dt float64) int64 {
	if n <= 0 || rate <= 0 || dt <= 0 {
		return 0
	}
	if s.dist == Poisson {
		return s.clip(s.Poisson(rate*float64(n)*dt), n)
	}
	return s.Binomial(n, TransitionProbability(rate, dt))
}

// Split divides n individuals between two outcomes; the returned count
// takes the outcome with probability p.
func (s *Sampler) Split(n int64, p float64) int64 {
	return s.Binomial(n, p)
}

func (s *Sampler) Binomial(n int64, p float64) int64 {
	switch {
	case n <= 0 || p <= 0 || math.IsNaN(p):
		return 0
	case p >= 1:
		return n
	}
	k := int64(distuv.Binomial{N: float64(n), P: p, Src: s.rng}.Rand())
	return s.clip(k, n)
}

func (s *Sampler) Poisson(mean float64) int64 {
	if mean <= 0 || math.IsNaN(mean) {
		return 0
	}
	return int64(distuv.Poisson{Lambda: mean, Src: s.rng}.Rand())
}

// Clipped counts the draws that exceeded their source compartment and were
// cut back to it.
func (s *Sampler) Clipped() int {
	return s.clipped
}

func (s *Sampler) clip(k, n int64) int64 {
	if k > n {
		s.clipped++
		return n
	}
	if k < 0 {
		return 0
	}
	return k
}
