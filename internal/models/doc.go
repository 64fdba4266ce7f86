// Package models implements the compartmental model variants on top of
// package epidemic.
//
// Each variant pairs a parameter struct (which implements
// epidemic.Dynamics) with a named-field state struct:
//
//   - [SIR], [SIRS]: [SIRState]
//   - [SIRD]: [SIRDState]
//   - [SEIR]: [SEIRState]
//   - [Corona]: [CoronaState]
//   - [Ebola]: [EbolaState]
//   - [Plague]: [PlagueState]
//
// Rates are per unit of simulated time (days in the presets). The force of
// infection is Transmission * I / N with N the living population.
package models
