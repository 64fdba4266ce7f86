package models_test

import (
	"context"
	"errors"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/episim/internal/epidemic"
	"github.com/san-kum/episim/internal/models"
)

var _ = Describe("SIR", func() {
	It("never raises the susceptible count from S=999, I=1", func() {
		for seed := int64(1); seed <= 20; seed++ {
			m := &models.SIR{Transmission: 0.3, Recovery: 0.1}
			cfg := epidemic.DefaultConfig()
			cfg.Seed = seed

			sim, err := epidemic.New[models.SIRState](m, models.SIRState{S: 999, I: 1}, cfg)
			Expect(err).NotTo(HaveOccurred())

			x, err := sim.Step()
			Expect(err).NotTo(HaveOccurred())
			Expect(x.S).To(BeNumerically("<=", 999))
			Expect(x.I + x.R).To(BeNumerically(">=", 1))
			Expect(x.Population()).To(BeEquivalentTo(1000))

			traj, err := sim.Run(context.Background())
			Expect(err).NotTo(HaveOccurred())
			for i := 1; i < len(traj.States); i++ {
				Expect(traj.States[i].S).To(BeNumerically("<=", traj.States[i-1].S))
				Expect(traj.States[i].R).To(BeNumerically(">=", traj.States[i-1].R))
			}
		}
	})

	It("vaccinates on schedule while infection persists", func() {
		m := &models.SIR{Vaccination: &models.Vaccination{Start: 2, Base: 10}}
		cfg := epidemic.DefaultConfig()
		cfg.MaxSteps = 6

		traj := simulate[models.SIRState](m, models.SIRState{S: 100, I: 1}, cfg)
		Expect(traj.Final()).To(Equal(models.SIRState{S: 60, I: 1, R: 40}))
	})

	It("reports R0 as transmission over recovery", func() {
		Expect(models.NewSIR().R0()).To(BeNumerically("~", 3.0, 1e-12))
		Expect((&models.SIR{}).R0()).To(BeZero())
		Expect((&models.SIR{Transmission: 1}).R0()).To(Equal(math.Inf(1)))
	})

	It("rejects negative rates", func() {
		m := models.NewSIR()
		m.Recovery = -0.1
		Expect(m.Validate()).To(MatchError(epidemic.ErrInvalidParameter))

		m = models.NewSIR()
		m.Vaccination = &models.Vaccination{Base: math.NaN()}
		Expect(m.Validate()).To(MatchError(epidemic.ErrInvalidParameter))
	})
})

var _ = Describe("SIRS", func() {
	It("returns recovered individuals to the susceptible pool", func() {
		m := &models.SIRS{Waning: 2}
		cfg := epidemic.DefaultConfig()
		cfg.StopOnExtinction = false
		cfg.MaxSteps = 1

		sim, err := epidemic.New[models.SIRState](m, models.SIRState{R: 100}, cfg)
		Expect(err).NotTo(HaveOccurred())
		x, err := sim.Step()
		Expect(err).NotTo(HaveOccurred())
		Expect(x.S).To(BeNumerically(">", 0))
		Expect(x.S + x.R).To(BeEquivalentTo(100))
	})
})

var _ = Describe("SIRD", func() {
	It("accumulates deaths monotonically", func() {
		m := &models.SIRD{Transmission: 0.4, Recovery: 0.05, Mortality: 0.05}
		traj := simulate[models.SIRDState](m, models.SIRDState{S: 1900, I: 100}, config(4, epidemic.Binomial))
		for i := 1; i < len(traj.States); i++ {
			Expect(traj.States[i].D).To(BeNumerically(">=", traj.States[i-1].D))
		}
		Expect(traj.Final().D).To(BeNumerically(">", 0))
	})

	It("derives the fatality ratio from the competing rates", func() {
		Expect((&models.SIRD{Recovery: 0.3, Mortality: 0.1}).FatalityRatio()).To(BeNumerically("~", 0.25, 1e-12))
		Expect((&models.SIRD{}).FatalityRatio()).To(BeZero())
	})
})

var _ = Describe("SEIR", func() {
	It("passes every infection through the exposed compartment", func() {
		m := &models.SEIR{Transmission: 0.8, Incubation: 0.3, Recovery: 0.2}
		cfg := config(11, epidemic.Binomial)
		sim, err := epidemic.New[models.SEIRState](m, models.SEIRState{S: 995, E: 5}, cfg)
		Expect(err).NotTo(HaveOccurred())

		prev := sim.State()
		for !sim.Done() {
			x, err := sim.Step()
			Expect(err).NotTo(HaveOccurred())
			// I can only grow by what left E.
			Expect(x.I - prev.I + (x.R - prev.R)).To(BeNumerically("<=", prev.E))
			prev = x
		}
	})
})

var _ = Describe("Corona", func() {
	It("stops new exposures once the intervention removes transmission", func() {
		m := models.NewCorona()
		m.Intervention = &models.Intervention{Time: 0, Transmission: 0}
		traj := simulate[models.CoronaState](m, models.CoronaState{S: 1000, E: 10, I: 10}, config(5, epidemic.Binomial))
		for _, x := range traj.States {
			Expect(x.S).To(BeEquivalentTo(1000))
		}
		Expect(traj.Final().Infectious()).To(BeZero())
	})

	It("infects fewer people with an early intervention", func() {
		attack := func(iv *models.Intervention) float64 {
			total := 0.0
			for seed := int64(1); seed <= 10; seed++ {
				m := models.NewCorona()
				m.Intervention = iv
				traj := simulate[models.CoronaState](m, models.CoronaState{S: 9950, E: 50}, config(seed, epidemic.Binomial))
				total += float64(9950 - traj.Final().S)
			}
			return total
		}
		Expect(attack(&models.Intervention{Time: 5, Transmission: 0.05})).To(BeNumerically("<", attack(nil)))
	})

	It("moves vaccinated susceptibles to recovered", func() {
		m := &models.Corona{Vaccination: &models.Vaccination{Base: 5}}
		cfg := epidemic.DefaultConfig()
		cfg.MaxSteps = 4
		traj := simulate[models.CoronaState](m, models.CoronaState{S: 50, I: 1}, cfg)
		Expect(traj.Final()).To(Equal(models.CoronaState{S: 30, I: 1, R: 20}))
	})
})

var _ = Describe("Ebola", func() {
	It("counts every completed incubation as a case", func() {
		m := models.NewEbola()
		m.Waning = 0
		x0 := models.EbolaState{S: 2990, E: 10, C: 3}
		traj := simulate[models.EbolaState](m, x0, config(8, epidemic.Binomial))
		for _, x := range traj.States {
			Expect(x.C).To(Equal(x0.C + (x0.S - x.S) + (x0.E - x.E)))
		}
	})

	It("keeps the case counter out of the population", func() {
		x := models.EbolaState{S: 1, E: 2, I: 3, R: 4, D: 5, C: 100}
		Expect(x.Population()).To(BeEquivalentTo(15))
		Expect(x.Infectious()).To(BeEquivalentTo(5))
		Expect(x.Labels()).To(Equal([]string{"S", "E", "I", "R", "D", "C"}))
	})
})

var _ = Describe("Plague", func() {
	It("counts every completed incubation as a case", func() {
		x0 := models.PlagueState{S: 1990, E: 10}
		traj := simulate[models.PlagueState](models.NewPlague(), x0, config(13, epidemic.Poisson))
		for _, x := range traj.States {
			Expect(x.C).To(Equal((x0.S - x.S) + (x0.E - x.E)))
		}
	})

	It("rejects an intervention before time zero", func() {
		m := models.NewPlague()
		m.Intervention = &models.Intervention{Time: -1, Transmission: 0.1}
		Expect(m.Validate()).To(MatchError(epidemic.ErrInvalidParameter))
	})
})

var _ = Describe("Vaccination", func() {
	DescribeTable("doses per step",
		func(v *models.Vaccination, t, dt float64, want int64) {
			Expect(v.Doses(t, dt)).To(Equal(want))
		},
		Entry("nil campaign", (*models.Vaccination)(nil), 10.0, 1.0, int64(0)),
		Entry("before start", &models.Vaccination{Start: 5, Base: 10}, 4.0, 1.0, int64(0)),
		Entry("at start", &models.Vaccination{Start: 5, Base: 10}, 5.0, 1.0, int64(10)),
		Entry("straddling start", &models.Vaccination{Start: 5, Base: 10}, 4.5, 1.0, int64(5)),
		Entry("ramping", &models.Vaccination{Start: 0, Base: 10, Ramp: 1000}, 2.0, 1.0, int64(2510)),
		Entry("capped", &models.Vaccination{Start: 0, Base: 10, Ramp: 1000, Cap: 2500}, 5.0, 1.0, int64(2500)),
		Entry("first half step", &models.Vaccination{Base: 9}, 0.0, 0.5, int64(4)),
		Entry("second half step", &models.Vaccination{Base: 9}, 0.5, 0.5, int64(5)),
		Entry("beyond int64", &models.Vaccination{Base: 1e19}, 0.0, 1.0, int64(math.MaxInt64)),
		Entry("infinite schedule", &models.Vaccination{Base: 1e308, Ramp: 1e308}, 1e10, 1.0, int64(math.MaxInt64)),
	)

	It("delivers the daily rate regardless of the step size", func() {
		for _, dt := range []float64{1, 0.5, 0.25, 0.1, 0.01} {
			v := &models.Vaccination{Start: 1, Base: 9, Ramp: 2}
			steps := int(math.Round(5 / dt))
			var total int64
			for k := 0; k < steps; k++ {
				total += v.Doses(float64(k)*dt, dt)
			}
			// 9*4 + 2*4*4/2 doses between day 1 and day 5.
			Expect(total).To(BeEquivalentTo(52), "dt=%v", dt)
		}
	})

	It("vaccinates with sub-day steps", func() {
		m := &models.SIR{Vaccination: &models.Vaccination{Base: 9}}
		cfg := epidemic.DefaultConfig()
		cfg.Dt = 0.1
		cfg.MaxSteps = 100

		traj := simulate[models.SIRState](m, models.SIRState{S: 1000, I: 1}, cfg)
		Expect(traj.Steps).To(Equal(100))
		Expect(traj.Final()).To(Equal(models.SIRState{S: 910, I: 1, R: 90}))
	})

	It("bounds an oversized schedule by the susceptibles left", func() {
		m := &models.SIR{Vaccination: &models.Vaccination{Base: 1e19}}
		cfg := epidemic.DefaultConfig()
		cfg.MaxSteps = 3

		sim, err := epidemic.New[models.SIRState](m, models.SIRState{S: 100, I: 1, R: 50}, cfg)
		Expect(err).NotTo(HaveOccurred())
		traj, err := sim.Run(context.Background())
		Expect(err).NotTo(HaveOccurred())
		Expect(traj.States[1]).To(Equal(models.SIRState{S: 0, I: 1, R: 150}))
	})

	It("rejects a start time that is not a finite non-negative time", func() {
		for _, start := range []float64{-1, math.NaN(), math.Inf(1)} {
			m := models.NewSIR()
			m.Vaccination = &models.Vaccination{Start: start, Base: 10}
			err := m.Validate()
			Expect(err).To(MatchError(epidemic.ErrInvalidParameter))

			var pe *epidemic.ParameterError
			Expect(errors.As(err, &pe)).To(BeTrue())
			Expect(pe.Field).To(Equal("vaccination.start"))
			Expect(pe.Reason).NotTo(ContainSubstring("rate"))
		}
	})
})
