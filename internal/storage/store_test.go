package storage

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/thermosim/internal/config"
	"github.com/san-kum/thermosim/internal/sim"
)

func sampleResult(t *testing.T) *sim.Result {
	t.Helper()
	cfg := config.Default()
	cfg.Scenario.Steps = 20

	ctrl, err := cfg.NewController()
	require.NoError(t, err)

	res, err := sim.NewDriver().Run(ctrl, cfg.NoiseSource(), cfg.RunConfig())
	require.NoError(t, err)
	return res
}

func TestSaveLoadRoundTrip(t *testing.T) {
	st := New(t.TempDir())
	require.NoError(t, st.Init())

	cfg := config.Default()
	cfg.Scenario.Steps = 20
	res := sampleResult(t)
	res.Metrics["control_effort"] = 12.5

	runID, err := st.Save("pi", cfg, res)
	require.NoError(t, err)

	meta, err := st.Load(runID)
	require.NoError(t, err)
	assert.Equal(t, "pi", meta.Label)
	assert.Equal(t, 20, meta.Steps)
	assert.Equal(t, 1.0, meta.Ts)
	assert.Equal(t, 12.5, meta.Metrics["control_effort"])
	assert.Equal(t, cfg.Controller.Kp, meta.Config.Controller.Kp)

	loaded, err := st.LoadSeries(runID)
	require.NoError(t, err)
	require.Len(t, loaded.Temps, len(res.Temps))
	require.Len(t, loaded.Controls, len(res.Controls))
	for i := range res.Temps {
		assert.InDelta(t, res.Temps[i], loaded.Temps[i], 1e-6)
		assert.InDelta(t, res.Integrals[i], loaded.Integrals[i], 1e-6)
	}
	for i := range res.Controls {
		assert.InDelta(t, res.Controls[i], loaded.Controls[i], 1e-6)
		assert.InDelta(t, res.Errors[i], loaded.Errors[i], 1e-6)
	}
}

func TestList(t *testing.T) {
	st := New(t.TempDir())
	require.NoError(t, st.Init())

	runs, err := st.List()
	require.NoError(t, err)
	assert.Empty(t, runs)

	cfg := config.Default()
	cfg.Scenario.Steps = 20
	res := sampleResult(t)

	_, err = st.Save("p", cfg, res)
	require.NoError(t, err)
	_, err = st.Save("pi", cfg, res)
	require.NoError(t, err)

	runs, err = st.List()
	require.NoError(t, err)
	assert.Len(t, runs, 2)
}

func TestListMissingDir(t *testing.T) {
	st := New("/nonexistent/thermosim-test")
	runs, err := st.List()
	require.NoError(t, err)
	assert.Empty(t, runs)
}

func TestLoadUnknownRun(t *testing.T) {
	st := New(t.TempDir())
	require.NoError(t, st.Init())

	_, err := st.Load("missing_run")
	assert.Error(t, err)
}

func TestExportJSON(t *testing.T) {
	res := sampleResult(t)
	meta := &RunMetadata{ID: "pi_1", Label: "pi"}

	var buf bytes.Buffer
	require.NoError(t, ExportJSON(&buf, meta, res))

	var data ExportData
	require.NoError(t, json.Unmarshal(buf.Bytes(), &data))
	assert.Equal(t, "pi_1", data.ID)
	assert.Equal(t, res.Steps(), data.Steps)
	assert.Len(t, data.Temps, res.Steps()+1)
	assert.Len(t, data.Controls, res.Steps())
}
