package experiment

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/san-kum/episim/internal/config"
	"github.com/san-kum/episim/internal/epidemic"
	"github.com/san-kum/episim/internal/models"
)

type builder func(cfg *config.Config, sim epidemic.Config, logger *slog.Logger) Runner

type entry struct {
	description string
	build       builder
}

type Registry struct {
	models map[string]entry
	logger *slog.Logger
}

func NewRegistry() *Registry {
	r := &Registry{
		models: make(map[string]entry),
	}

	r.models["sir"] = entry{
		description: "susceptible-infected-recovered, optional vaccination",
		build: func(c *config.Config, sim epidemic.Config, l *slog.Logger) Runner {
			dyn := &models.SIR{
				Transmission: c.Rates.Transmission,
				Recovery:     c.Rates.Recovery,
				Vaccination:  vaccination(c),
			}
			x0 := models.SIRState{S: c.Initial.S, I: c.Initial.I, R: c.Initial.R}
			return newJob[models.SIRState](dyn, x0, sim, l)
		},
	}
	r.models["sirs"] = entry{
		description: "SIR with waning immunity",
		build: func(c *config.Config, sim epidemic.Config, l *slog.Logger) Runner {
			dyn := &models.SIRS{
				Transmission: c.Rates.Transmission,
				Recovery:     c.Rates.Recovery,
				Waning:       c.Rates.Waning,
			}
			x0 := models.SIRState{S: c.Initial.S, I: c.Initial.I, R: c.Initial.R}
			return newJob[models.SIRState](dyn, x0, sim, l)
		},
	}
	r.models["sird"] = entry{
		description: "SIR with deaths",
		build: func(c *config.Config, sim epidemic.Config, l *slog.Logger) Runner {
			dyn := &models.SIRD{
				Transmission: c.Rates.Transmission,
				Recovery:     c.Rates.Recovery,
				Mortality:    c.Rates.Mortality,
			}
			x0 := models.SIRDState{S: c.Initial.S, I: c.Initial.I, R: c.Initial.R, D: c.Initial.D}
			return newJob[models.SIRDState](dyn, x0, sim, l)
		},
	}
	r.models["seir"] = entry{
		description: "SIR with a latent exposed compartment",
		build: func(c *config.Config, sim epidemic.Config, l *slog.Logger) Runner {
			dyn := &models.SEIR{
				Transmission: c.Rates.Transmission,
				Incubation:   c.Rates.Incubation,
				Recovery:     c.Rates.Recovery,
			}
			x0 := models.SEIRState{S: c.Initial.S, E: c.Initial.E, I: c.Initial.I, R: c.Initial.R}
			return newJob[models.SEIRState](dyn, x0, sim, l)
		},
	}
	r.models["corona"] = entry{
		description: "Covid-19 SEIRD with intervention, waning and vaccination",
		build: func(c *config.Config, sim epidemic.Config, l *slog.Logger) Runner {
			dyn := &models.Corona{
				Transmission: c.Rates.Transmission,
				Incubation:   c.Rates.Incubation,
				Recovery:     c.Rates.Recovery,
				Mortality:    c.Rates.Mortality,
				Waning:       c.Rates.Waning,
				Intervention: intervention(c),
				Vaccination:  vaccination(c),
			}
			x0 := models.CoronaState{S: c.Initial.S, E: c.Initial.E, I: c.Initial.I, R: c.Initial.R, D: c.Initial.D}
			return newJob[models.CoronaState](dyn, x0, sim, l)
		},
	}
	r.models["ebola"] = entry{
		description: "Ebola SEIRSD with case count and intervention",
		build: func(c *config.Config, sim epidemic.Config, l *slog.Logger) Runner {
			dyn := &models.Ebola{
				Transmission: c.Rates.Transmission,
				Incubation:   c.Rates.Incubation,
				Recovery:     c.Rates.Recovery,
				Mortality:    c.Rates.Mortality,
				Waning:       c.Rates.Waning,
				Intervention: intervention(c),
			}
			x0 := models.EbolaState{S: c.Initial.S, E: c.Initial.E, I: c.Initial.I, R: c.Initial.R, D: c.Initial.D, C: c.Initial.C}
			return newJob[models.EbolaState](dyn, x0, sim, l)
		},
	}
	r.models["plague"] = entry{
		description: "plague SEIRD with case count and intervention",
		build: func(c *config.Config, sim epidemic.Config, l *slog.Logger) Runner {
			dyn := &models.Plague{
				Transmission: c.Rates.Transmission,
				Incubation:   c.Rates.Incubation,
				Recovery:     c.Rates.Recovery,
				Mortality:    c.Rates.Mortality,
				Intervention: intervention(c),
			}
			x0 := models.PlagueState{S: c.Initial.S, E: c.Initial.E, I: c.Initial.I, R: c.Initial.R, D: c.Initial.D, C: c.Initial.C}
			return newJob[models.PlagueState](dyn, x0, sim, l)
		},
	}

	return r
}

// SetLogger makes built runners log through l.
func (r *Registry) SetLogger(l *slog.Logger) { r.logger = l }

// Build maps a configuration onto its model. Parameter validation happens
// when the runner starts a simulation.
func (r *Registry) Build(cfg *config.Config) (Runner, error) {
	e, ok := r.models[cfg.Model]
	if !ok {
		return nil, fmt.Errorf("unknown model: %s", cfg.Model)
	}
	sim, err := cfg.Simulation()
	if err != nil {
		return nil, err
	}
	return e.build(cfg, sim, r.logger), nil
}

func (r *Registry) Describe(name string) (string, error) {
	e, ok := r.models[name]
	if !ok {
		return "", fmt.Errorf("unknown model: %s", name)
	}
	return e.description, nil
}

func (r *Registry) ListModels() []string {
	names := make([]string, 0, len(r.models))
	for name := range r.models {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func intervention(c *config.Config) *models.Intervention {
	if c.Intervention == nil {
		return nil
	}
	return &models.Intervention{Time: c.Intervention.Time, Transmission: c.Intervention.Transmission}
}

func vaccination(c *config.Config) *models.Vaccination {
	if c.Vaccination == nil {
		return nil
	}
	return &models.Vaccination{
		Start: c.Vaccination.Start,
		Base:  c.Vaccination.Base,
		Ramp:  c.Vaccination.Ramp,
		Cap:   c.Vaccination.Cap,
	}
}
