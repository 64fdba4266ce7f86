package models_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/episim/internal/epidemic"
	"github.com/san-kum/episim/internal/models"
)

func simulate[S epidemic.State](dyn epidemic.Dynamics[S], x0 S, cfg epidemic.Config) *epidemic.Trajectory[S] {
	GinkgoHelper()
	sim, err := epidemic.New(dyn, x0, cfg)
	Expect(err).NotTo(HaveOccurred())
	traj, err := sim.Run(context.Background())
	Expect(err).NotTo(HaveOccurred())
	return traj
}

func config(seed int64, dist epidemic.Distribution) epidemic.Config {
	cfg := epidemic.DefaultConfig()
	cfg.Seed = seed
	cfg.Distribution = dist
	cfg.MaxSteps = 200
	return cfg
}

// describeInvariants registers the properties every variant must satisfy.
func describeInvariants[S epidemic.State](name string, dyn func() epidemic.Dynamics[S], zero epidemic.Dynamics[S], x0 S) {
	Describe(name, func() {
		for _, dist := range []epidemic.Distribution{epidemic.Binomial, epidemic.Poisson} {
			Context("with "+dist.String()+" draws", func() {
				It("keeps every count non-negative and conserves the population", func() {
					for seed := int64(1); seed <= 5; seed++ {
						traj := simulate(dyn(), x0, config(seed, dist))
						for _, x := range traj.States {
							for _, v := range x.Counts() {
								Expect(v).To(BeNumerically(">=", 0))
							}
							Expect(x.Population()).To(Equal(x0.Population()))
						}
					}
				})

				It("stops at extinction or at the step horizon", func() {
					cfg := config(3, dist)
					traj := simulate(dyn(), x0, cfg)
					Expect(traj.Steps).To(BeNumerically("<=", cfg.MaxSteps))
					Expect(traj.States).To(HaveLen(traj.Steps + 1))
					if traj.Steps < cfg.MaxSteps {
						Expect(traj.Final().Infectious()).To(BeZero())
					}
				})

				It("reproduces the trajectory for a fixed seed", func() {
					a := simulate(dyn(), x0, config(42, dist))
					b := simulate(dyn(), x0, config(42, dist))
					Expect(a.States).To(Equal(b.States))
					Expect(a.Times).To(Equal(b.Times))
				})
			})
		}

		It("leaves the initial vector unchanged when every rate is zero", func() {
			cfg := config(9, epidemic.Binomial)
			cfg.MaxSteps = 30
			traj := simulate(zero, x0, cfg)
			Expect(traj.Steps).To(Equal(30))
			for _, x := range traj.States {
				Expect(x).To(Equal(x0))
			}
		})

		It("rejects a negative initial count", func() {
			_, err := epidemic.New(dyn(), negate(x0), epidemic.DefaultConfig())
			Expect(err).To(MatchError(epidemic.ErrInvalidParameter))
		})
	})
}

// negate flips the sign of the first compartment.
func negate[S epidemic.State](x S) S {
	var out any
	switch v := any(x).(type) {
	case models.SIRState:
		v.S = -1
		out = v
	case models.SIRDState:
		v.S = -1
		out = v
	case models.SEIRState:
		v.S = -1
		out = v
	case models.CoronaState:
		v.S = -1
		out = v
	case models.EbolaState:
		v.S = -1
		out = v
	case models.PlagueState:
		v.S = -1
		out = v
	default:
		Fail("unknown state type")
	}
	return out.(S)
}

var _ = Describe("Model invariants", func() {
	describeInvariants("SIR",
		func() epidemic.Dynamics[models.SIRState] { return models.NewSIR() },
		&models.SIR{},
		models.SIRState{S: 990, I: 10})

	describeInvariants("SIR with vaccination",
		func() epidemic.Dynamics[models.SIRState] {
			m := models.NewSIR()
			m.Vaccination = &models.Vaccination{Start: 5, Base: 10, Ramp: 100, Cap: 250}
			return m
		},
		&models.SIR{},
		models.SIRState{S: 4990, I: 10})

	describeInvariants("SIRS",
		func() epidemic.Dynamics[models.SIRState] { return models.NewSIRS() },
		&models.SIRS{},
		models.SIRState{S: 990, I: 10})

	describeInvariants("SIRD",
		func() epidemic.Dynamics[models.SIRDState] { return models.NewSIRD() },
		&models.SIRD{},
		models.SIRDState{S: 990, I: 10})

	describeInvariants("SEIR",
		func() epidemic.Dynamics[models.SEIRState] { return models.NewSEIR() },
		&models.SEIR{},
		models.SEIRState{S: 995, E: 5})

	describeInvariants("Corona",
		func() epidemic.Dynamics[models.CoronaState] {
			m := models.NewCorona()
			m.Intervention = &models.Intervention{Time: 20, Transmission: 0.15}
			return m
		},
		&models.Corona{},
		models.CoronaState{S: 9990, E: 10})

	describeInvariants("Ebola",
		func() epidemic.Dynamics[models.EbolaState] { return models.NewEbola() },
		&models.Ebola{},
		models.EbolaState{S: 4995, E: 5})

	describeInvariants("Plague",
		func() epidemic.Dynamics[models.PlagueState] { return models.NewPlague() },
		&models.Plague{},
		models.PlagueState{S: 1990, E: 10})
})
