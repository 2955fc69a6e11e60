// Package storage persists simulation runs as a per-run directory holding
// metadata and the recorded time series.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/san-kum/thermosim/internal/config"
	"github.com/san-kum/thermosim/internal/sim"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID        string             `json:"id"`
	Label     string             `json:"label"`
	Timestamp time.Time          `json:"timestamp"`
	Config    *config.Config     `json:"config"`
	Steps     int                `json:"steps"`
	Ts        float64            `json:"ts"`
	Metrics   map[string]float64 `json:"metrics"`
}

// Save writes metadata.json and series.csv for one run and returns the
// generated run id.
func (s *Store) Save(label string, cfg *config.Config, res *sim.Result) (string, error) {
	runID := fmt.Sprintf("%s_%d", label, time.Now().UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Label:     label,
		Timestamp: time.Now(),
		Config:    cfg,
		Steps:     res.Steps(),
		Ts:        res.Ts,
		Metrics:   res.Metrics,
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "series.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	header := []string{"time", "temp", "setpoint", "ambient", "integral", "control", "error"}
	if err := w.Write(header); err != nil {
		return "", err
	}

	// Control/error describe transitions, so the final sample row leaves
	// those columns empty.
	for i := range res.Times {
		row := []string{
			formatFloat(res.Times[i]),
			formatFloat(res.Temps[i]),
			formatFloat(res.Setpoints[i]),
			formatFloat(res.Ambients[i]),
			formatFloat(res.Integrals[i]),
			"",
			"",
		}
		if i < len(res.Controls) {
			row[5] = formatFloat(res.Controls[i])
			row[6] = formatFloat(res.Errors[i])
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	return runID, nil
}

func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadSeries reconstructs the recorded sequences of a saved run.
func (s *Store) LoadSeries(runID string) (*sim.Result, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(filepath.Join(s.baseDir, runID, "series.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("storage: run %s has no samples", runID)
	}

	n := len(records) - 1
	res := &sim.Result{
		Ts:        meta.Ts,
		Times:     make([]float64, 0, n),
		Temps:     make([]float64, 0, n),
		Setpoints: make([]float64, 0, n),
		Ambients:  make([]float64, 0, n),
		Integrals: make([]float64, 0, n),
		Controls:  make([]float64, 0, n-1),
		Errors:    make([]float64, 0, n-1),
		Metrics:   meta.Metrics,
	}

	for _, record := range records[1:] {
		if len(record) < 7 {
			return nil, fmt.Errorf("storage: run %s has a malformed series row", runID)
		}
		vals := make([]float64, 5)
		for j := 0; j < 5; j++ {
			v, err := strconv.ParseFloat(record[j], 64)
			if err != nil {
				return nil, fmt.Errorf("storage: run %s: %w", runID, err)
			}
			vals[j] = v
		}
		res.Times = append(res.Times, vals[0])
		res.Temps = append(res.Temps, vals[1])
		res.Setpoints = append(res.Setpoints, vals[2])
		res.Ambients = append(res.Ambients, vals[3])
		res.Integrals = append(res.Integrals, vals[4])

		if record[5] == "" {
			continue
		}
		u, err := strconv.ParseFloat(record[5], 64)
		if err != nil {
			return nil, fmt.Errorf("storage: run %s: %w", runID, err)
		}
		e, err := strconv.ParseFloat(record[6], 64)
		if err != nil {
			return nil, fmt.Errorf("storage: run %s: %w", runID, err)
		}
		res.Controls = append(res.Controls, u)
		res.Errors = append(res.Errors, e)
	}

	return res, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}
