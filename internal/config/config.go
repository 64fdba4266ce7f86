package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/episim/internal/epidemic"
)

const (
	DefaultModel    = "sir"
	DefaultDt       = 1.0
	DefaultMaxSteps = 365
	DefaultPreset   = "default"
)

type Config struct {
	Model            string              `yaml:"model"`
	Dt               float64             `yaml:"dt"`
	MaxSteps         int                 `yaml:"max_steps"`
	Seed             int64               `yaml:"seed"`
	Distribution     string              `yaml:"distribution"`
	StopOnExtinction bool                `yaml:"stop_on_extinction"`
	Initial          InitialConfig       `yaml:"initial"`
	Rates            RatesConfig         `yaml:"rates"`
	Intervention     *InterventionConfig `yaml:"intervention,omitempty"`
	Vaccination      *VaccinationConfig  `yaml:"vaccination,omitempty"`
}

// InitialConfig holds the initial compartment counts. Compartments a model
// does not have are ignored.
type InitialConfig struct {
	S int64 `yaml:"s"`
	E int64 `yaml:"e"`
	I int64 `yaml:"i"`
	R int64 `yaml:"r"`
	D int64 `yaml:"d"`
	C int64 `yaml:"c"`
}

type RatesConfig struct {
	Transmission float64 `yaml:"transmission"`
	Incubation   float64 `yaml:"incubation"`
	Recovery     float64 `yaml:"recovery"`
	Mortality    float64 `yaml:"mortality"`
	Waning       float64 `yaml:"waning"`
}

type InterventionConfig struct {
	Time         float64 `yaml:"time"`
	Transmission float64 `yaml:"transmission"`
}

type VaccinationConfig struct {
	Start float64 `yaml:"start"`
	Base  float64 `yaml:"base"`
	Ramp  float64 `yaml:"ramp"`
	Cap   float64 `yaml:"cap"`
}

func DefaultConfig() *Config {
	return Defaults(DefaultModel)
}

// Defaults returns the default preset of model, or a bare configuration
// carrying only the run settings when the model has no presets.
func Defaults(model string) *Config {
	if cfg := GetPreset(model, DefaultPreset); cfg != nil {
		return cfg
	}
	return &Config{
		Model:            model,
		Dt:               DefaultDt,
		MaxSteps:         DefaultMaxSteps,
		Distribution:     epidemic.Binomial.String(),
		StopOnExtinction: true,
	}
}

// Load reads a YAML file on top of the defaults of the model it names.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var head struct {
		Model string `yaml:"model"`
	}
	if err := yaml.Unmarshal(data, &head); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if head.Model == "" {
		head.Model = DefaultModel
	}

	cfg := Defaults(head.Model)
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Simulation converts the run settings for the simulator.
func (c *Config) Simulation() (epidemic.Config, error) {
	dist, err := epidemic.ParseDistribution(c.Distribution)
	if err != nil {
		return epidemic.Config{}, err
	}
	return epidemic.Config{
		Dt:               c.Dt,
		MaxSteps:         c.MaxSteps,
		Seed:             c.Seed,
		Distribution:     dist,
		StopOnExtinction: c.StopOnExtinction,
	}, nil
}

func (c *Config) Clone() *Config {
	out := *c
	if c.Intervention != nil {
		iv := *c.Intervention
		out.Intervention = &iv
	}
	if c.Vaccination != nil {
		v := *c.Vaccination
		out.Vaccination = &v
	}
	return &out
}

// Params flattens the rate settings for run metadata.
func (c *Config) Params() map[string]float64 {
	p := map[string]float64{
		"transmission": c.Rates.Transmission,
		"incubation":   c.Rates.Incubation,
		"recovery":     c.Rates.Recovery,
		"mortality":    c.Rates.Mortality,
		"waning":       c.Rates.Waning,
	}
	if c.Intervention != nil {
		p["intervention.time"] = c.Intervention.Time
		p["intervention.transmission"] = c.Intervention.Transmission
	}
	if c.Vaccination != nil {
		p["vaccination.start"] = c.Vaccination.Start
		p["vaccination.base"] = c.Vaccination.Base
		p["vaccination.ramp"] = c.Vaccination.Ramp
		p["vaccination.cap"] = c.Vaccination.Cap
	}
	return p
}
