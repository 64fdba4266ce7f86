// Package epidemic provides the stochastic core for compartmental epidemic
// models.
//
// The package defines the primitives shared by every model variant:
//
//   - [State]: a named-field compartment vector (one struct per variant)
//   - [Dynamics]: the transition rules of a variant, one step at a time
//   - [Sampler]: the per-run random source drawing transition counts
//   - [Simulator]: owns one run and records its [Trajectory]
//   - [Ensemble]: repeated runs over consecutive seeds
//
// Transitions are drawn as a chain binomial: every flow out of a compartment
// of size n under rate r is Binomial(n, 1-exp(-r*dt)). A Poisson mode is
// available; its draws are clipped to the source compartment.
//
// # Example
//
//	dyn := models.NewSIR(models.SIRParams{Transmission: 0.3, Recovery: 0.1})
//	s, _ := epidemic.New(dyn, models.SIRState{S: 999, I: 1}, epidemic.DefaultConfig())
//	traj, _ := s.Run(ctx)
//
// # Thread Safety
//
// Simulator instances are NOT thread-safe. For parallel repetitions,
// use the [Ensemble] type which gives every run its own simulator.
package epidemic
