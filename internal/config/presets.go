package config

import "sort"

// Presets are ready-made scenarios for the CLI and the TUI.
var presets = map[string]func() *Config{
	// The classroom thermostat demo: PI control with an ambient step
	// halfway through the run.
	"baseline": Default,

	// Proportional control only; settles with a visible steady-state error.
	"p-only": func() *Config {
		cfg := Default()
		cfg.Controller.Ki = 0
		return cfg
	},

	// Tight actuator bounds so the output saturates early in the run and
	// the conditional-integration rule is doing real work.
	"windup": func() *Config {
		cfg := Default()
		cfg.Controller.UMin = -8
		cfg.Controller.UMax = 8
		cfg.Scenario.Setpoint = 30.0
		return cfg
	},

	// Baseline with process noise; seed it for reproducible runs.
	"noisy": func() *Config {
		cfg := Default()
		cfg.Scenario.NoiseStd = 0.1
		cfg.Scenario.Seed = 1
		return cfg
	},
}

func GetPreset(name string) *Config {
	fn, ok := presets[name]
	if !ok {
		return nil
	}
	return fn()
}

func ListPresets() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
