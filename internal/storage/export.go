package storage

import (
	"encoding/json"
	"io"

	"github.com/san-kum/thermosim/internal/sim"
)

// ExportData is the external JSON shape of a saved run, consumed by
// plotting and reporting tools outside this repository.
type ExportData struct {
	ID        string             `json:"id"`
	Label     string             `json:"label"`
	Ts        float64            `json:"ts"`
	Steps     int                `json:"steps"`
	Times     []float64          `json:"times"`
	Temps     []float64          `json:"temps"`
	Setpoints []float64          `json:"setpoints"`
	Ambients  []float64          `json:"ambients"`
	Integrals []float64          `json:"integrals"`
	Controls  []float64          `json:"controls"`
	Errors    []float64          `json:"errors"`
	Metrics   map[string]float64 `json:"metrics"`
}

func ExportJSON(w io.Writer, meta *RunMetadata, res *sim.Result) error {
	data := ExportData{
		ID:        meta.ID,
		Label:     meta.Label,
		Ts:        res.Ts,
		Steps:     res.Steps(),
		Times:     res.Times,
		Temps:     res.Temps,
		Setpoints: res.Setpoints,
		Ambients:  res.Ambients,
		Integrals: res.Integrals,
		Controls:  res.Controls,
		Errors:    res.Errors,
		Metrics:   res.Metrics,
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}
