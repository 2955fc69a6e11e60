// Package config holds the user-editable parameters of a simulation run
// and their yaml serialization. Malformed configurations are rejected here,
// before any value reaches the controller or the driver.
package config

import (
	"fmt"
	"math/rand"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/thermosim/internal/control"
	"github.com/san-kum/thermosim/internal/sim"
	"github.com/san-kum/thermosim/internal/thermal"
)

const (
	DefaultKp       = 10.0
	DefaultKi       = 0.5
	DefaultTs       = 1.0
	DefaultSteps    = 240
	DefaultSetpoint = 26.0
	DefaultInitial  = 20.0
	DefaultAmbient  = 20.0
)

type Config struct {
	Controller ControllerConfig `yaml:"controller"`
	Plant      PlantConfig      `yaml:"plant"`
	Scenario   ScenarioConfig   `yaml:"scenario"`
}

type ControllerConfig struct {
	Kp   float64 `yaml:"kp"`
	Ki   float64 `yaml:"ki"`
	Ts   float64 `yaml:"ts"`
	UMin float64 `yaml:"u_min"`
	UMax float64 `yaml:"u_max"`
}

type PlantConfig struct {
	Alpha float64 `yaml:"alpha"`
	Beta  float64 `yaml:"beta"`
}

// ScenarioConfig describes one run: the target, the starting point, the
// ambient environment and an optional scheduled ambient step. A negative
// AmbientStepAt disables the step event.
type ScenarioConfig struct {
	Setpoint      float64 `yaml:"setpoint"`
	Initial       float64 `yaml:"initial"`
	Ambient       float64 `yaml:"ambient"`
	AmbientStepAt int     `yaml:"ambient_step_at"`
	AmbientStepTo float64 `yaml:"ambient_step_to"`
	Steps         int     `yaml:"steps"`
	NoiseStd      float64 `yaml:"noise_std"`
	Seed          int64   `yaml:"seed"`
}

func Default() *Config {
	return &Config{
		Controller: ControllerConfig{
			Kp:   DefaultKp,
			Ki:   DefaultKi,
			Ts:   DefaultTs,
			UMin: control.DefaultUMin,
			UMax: control.DefaultUMax,
		},
		Plant: PlantConfig{
			Alpha: thermal.DefaultAlpha,
			Beta:  thermal.DefaultBeta,
		},
		Scenario: ScenarioConfig{
			Setpoint:      DefaultSetpoint,
			Initial:       DefaultInitial,
			Ambient:       DefaultAmbient,
			AmbientStepAt: 120,
			AmbientStepTo: 24.0,
			Steps:         DefaultSteps,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
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

func (c *Config) Validate() error {
	if c.Controller.Ts <= 0 {
		return fmt.Errorf("config: ts must be positive, got %g", c.Controller.Ts)
	}
	if c.Controller.UMin > c.Controller.UMax {
		return fmt.Errorf("config: output bounds inverted [%g, %g]", c.Controller.UMin, c.Controller.UMax)
	}
	if c.Plant.Alpha <= 0 || c.Plant.Alpha > 1 {
		return fmt.Errorf("config: alpha must be in (0, 1], got %g", c.Plant.Alpha)
	}
	if c.Scenario.Steps <= 0 {
		return fmt.Errorf("config: steps must be positive, got %d", c.Scenario.Steps)
	}
	if c.Scenario.NoiseStd < 0 {
		return fmt.Errorf("config: noise_std must be non-negative, got %g", c.Scenario.NoiseStd)
	}
	return nil
}

// NewController builds the PI controller described by the configuration.
func (c *Config) NewController() (*control.PI, error) {
	return control.New(c.Controller.Kp, c.Controller.Ki, c.Controller.Ts,
		control.WithBounds(c.Controller.UMin, c.Controller.UMax))
}

// RunConfig translates the configuration into driver parameters.
func (c *Config) RunConfig() sim.RunConfig {
	ambient := thermal.AmbientSchedule{Initial: c.Scenario.Ambient}
	if c.Scenario.AmbientStepAt >= 0 {
		ambient.Step = &thermal.AmbientStep{
			At:    c.Scenario.AmbientStepAt,
			Value: c.Scenario.AmbientStepTo,
		}
	}
	return sim.RunConfig{
		Steps:    c.Scenario.Steps,
		Ts:       c.Controller.Ts,
		Setpoint: c.Scenario.Setpoint,
		Initial:  c.Scenario.Initial,
		Alpha:    c.Plant.Alpha,
		Beta:     c.Plant.Beta,
		Ambient:  ambient,
		UMin:     c.Controller.UMin,
		UMax:     c.Controller.UMax,
	}
}

// NoiseSource builds the disturbance generator for the configured noise
// level, seeded from the scenario. Returns nil when noise is disabled so
// the driver skips sampling entirely.
func (c *Config) NoiseSource() sim.NoiseSource {
	if c.Scenario.NoiseStd <= 0 {
		return nil
	}
	return sim.NewGaussian(c.Scenario.NoiseStd, rand.New(rand.NewSource(c.Scenario.Seed)))
}
