package config

import "sort"

func run(model string, steps int, init InitialConfig, rates RatesConfig) *Config {
	return &Config{
		Model:            model,
		Dt:               DefaultDt,
		MaxSteps:         steps,
		Distribution:     "binomial",
		StopOnExtinction: true,
		Initial:          init,
		Rates:            rates,
	}
}

func withIntervention(c *Config, time, transmission float64) *Config {
	c.Intervention = &InterventionConfig{Time: time, Transmission: transmission}
	return c
}

func withVaccination(c *Config, v VaccinationConfig) *Config {
	c.Vaccination = &v
	return c
}

var Presets = map[string]map[string]*Config{
	"sir": {
		"default": run("sir", 365,
			InitialConfig{S: 999, I: 1},
			RatesConfig{Transmission: 0.3, Recovery: 0.1}),
		"large": run("sir", 365,
			InitialConfig{S: 99_990, I: 10},
			RatesConfig{Transmission: 0.5, Recovery: 0.1}),
		"vaccination": withVaccination(run("sir", 365,
			InitialConfig{S: 99_990, I: 10},
			RatesConfig{Transmission: 0.4, Recovery: 0.2}),
			VaccinationConfig{Start: 4, Base: 10, Ramp: 1000}),
	},
	"sirs": {
		"default": run("sirs", 730,
			InitialConfig{S: 990, I: 10},
			RatesConfig{Transmission: 0.3, Recovery: 0.1, Waning: 1.0 / 30}),
		"endemic": run("sirs", 1460,
			InitialConfig{S: 99_990, I: 10},
			RatesConfig{Transmission: 0.4, Recovery: 0.2, Waning: 1.0 / 8}),
	},
	"sird": {
		"default": run("sird", 365,
			InitialConfig{S: 99_990, I: 10},
			RatesConfig{Transmission: 0.4, Recovery: 0.1, Mortality: 0.01}),
		"lethal": run("sird", 365,
			InitialConfig{S: 99_990, I: 10},
			RatesConfig{Transmission: 0.4, Recovery: 0.1, Mortality: 0.1}),
	},
	"seir": {
		"default": run("seir", 365,
			InitialConfig{S: 99_997, E: 3},
			RatesConfig{Transmission: 0.6, Incubation: 0.2, Recovery: 0.2}),
		"slow": run("seir", 730,
			InitialConfig{S: 99_997, E: 3},
			RatesConfig{Transmission: 0.3, Incubation: 1.0 / 9, Recovery: 0.2}),
	},
	"corona": {
		"default": run("corona", 365,
			InitialConfig{S: 999_990, E: 10},
			RatesConfig{Transmission: 0.5, Incubation: 1 / 5.2, Recovery: 0.1, Mortality: 0.002}),
		"lockdown": withIntervention(run("corona", 365,
			InitialConfig{S: 999_990, E: 10},
			RatesConfig{Transmission: 0.5, Incubation: 1 / 5.2, Recovery: 0.1, Mortality: 0.002}),
			40, 0.15),
		"reinfection": run("corona", 730,
			InitialConfig{S: 999_990, E: 10},
			RatesConfig{Transmission: 0.5, Incubation: 1 / 5.2, Recovery: 0.1, Mortality: 0.002, Waning: 1.0 / 180}),
		"vaccination": withVaccination(run("corona", 150,
			InitialConfig{S: 99_995, E: 5},
			RatesConfig{Transmission: 1, Incubation: 0.2, Recovery: 0.2, Mortality: 0.01, Waning: 1.0 / 30}),
			VaccinationConfig{Start: 100, Ramp: 250, Cap: 2500}),
	},
	"ebola": {
		"default": run("ebola", 730,
			InitialConfig{S: 99_995, E: 5},
			RatesConfig{Transmission: 0.3, Incubation: 0.1, Recovery: 0.07, Mortality: 0.07, Waning: 1.0 / 180}),
		"isolation": withIntervention(run("ebola", 730,
			InitialConfig{S: 99_995, E: 5},
			RatesConfig{Transmission: 0.3, Incubation: 0.1, Recovery: 0.07, Mortality: 0.07, Waning: 1.0 / 180}),
			60, 0.1),
	},
	"plague": {
		"default": run("plague", 365,
			InitialConfig{S: 49_990, E: 10},
			RatesConfig{Transmission: 0.45, Incubation: 0.25, Recovery: 0.1, Mortality: 0.125}),
		"quarantine": withIntervention(run("plague", 365,
			InitialConfig{S: 49_990, E: 10},
			RatesConfig{Transmission: 0.45, Incubation: 0.25, Recovery: 0.1, Mortality: 0.125}),
			20, 0.05),
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(model, preset string) *Config {
	modelPresets, ok := Presets[model]
	if !ok {
		return nil
	}
	cfg, ok := modelPresets[preset]
	if !ok {
		return nil
	}
	return cfg.Clone()
}

func ListPresets(model string) []string {
	modelPresets, ok := Presets[model]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(modelPresets))
	for name := range modelPresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
