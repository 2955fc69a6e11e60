package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 10.0, cfg.Controller.Kp)
	assert.Equal(t, 240, cfg.Scenario.Steps)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero ts", func(c *Config) { c.Controller.Ts = 0 }},
		{"inverted bounds", func(c *Config) { c.Controller.UMin, c.Controller.UMax = 5, -5 }},
		{"alpha too large", func(c *Config) { c.Plant.Alpha = 2 }},
		{"alpha zero", func(c *Config) { c.Plant.Alpha = 0 }},
		{"zero steps", func(c *Config) { c.Scenario.Steps = 0 }},
		{"negative noise", func(c *Config) { c.Scenario.NoiseStd = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg := Default()
	cfg.Controller.Kp = 3.5
	cfg.Scenario.Setpoint = 22.0
	cfg.Scenario.AmbientStepAt = -1

	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoadRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("controller:\n  ts: -1\n"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("controller: [not a map"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestPresets(t *testing.T) {
	for _, name := range ListPresets() {
		cfg := GetPreset(name)
		require.NotNil(t, cfg, "preset %s", name)
		assert.NoError(t, cfg.Validate(), "preset %s", name)
	}

	assert.Nil(t, GetPreset("nonexistent"))
	assert.Equal(t, 0.0, GetPreset("p-only").Controller.Ki)
}

func TestRunConfigTranslation(t *testing.T) {
	cfg := Default()
	rc := cfg.RunConfig()

	require.NotNil(t, rc.Ambient.Step)
	assert.Equal(t, 120, rc.Ambient.Step.At)
	assert.Equal(t, 24.0, rc.Ambient.Step.Value)
	assert.Equal(t, 240, rc.Steps)

	cfg.Scenario.AmbientStepAt = -1
	assert.Nil(t, cfg.RunConfig().Ambient.Step)
}

func TestNoiseSource(t *testing.T) {
	cfg := Default()
	assert.Nil(t, cfg.NoiseSource())

	cfg.Scenario.NoiseStd = 0.5
	cfg.Scenario.Seed = 7
	require.NotNil(t, cfg.NoiseSource())
}

func TestNewController(t *testing.T) {
	cfg := Default()
	ctrl, err := cfg.NewController()
	require.NoError(t, err)
	assert.Equal(t, cfg.Controller.Kp, ctrl.Kp)
	assert.Equal(t, cfg.Controller.UMax, ctrl.UMax)
}
