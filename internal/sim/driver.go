// Package sim steps the thermal plant under PI control and collects the
// resulting trajectories. A run is synchronous and atomic: it mutates only
// the controller it is handed and always completes in O(Steps).
package sim

import (
	"errors"
	"fmt"

	"github.com/san-kum/thermosim/internal/control"
	"github.com/san-kum/thermosim/internal/thermal"
)

// ErrInvalidRunConfig indicates a run configuration defect, rejected
// before the first sample.
var ErrInvalidRunConfig = errors.New("sim: invalid run configuration")

// RunConfig describes one simulation run. Ts is the time axis of the
// recorded sequences; the controller integrates with its own sample
// period, which callers normally keep equal to this one.
type RunConfig struct {
	Steps    int
	Ts       float64
	Setpoint float64
	Initial  float64
	Alpha    float64
	Beta     float64
	Ambient  thermal.AmbientSchedule
	UMin     float64
	UMax     float64
}

func (cfg RunConfig) validate() error {
	if cfg.Steps <= 0 {
		return fmt.Errorf("%w: steps must be positive, got %d", ErrInvalidRunConfig, cfg.Steps)
	}
	if cfg.Ts <= 0 {
		return fmt.Errorf("%w: ts must be positive, got %g", ErrInvalidRunConfig, cfg.Ts)
	}
	if err := cfg.Ambient.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRunConfig, err)
	}
	return nil
}

// Driver advances a plant model step by step, feeding it the controller's
// output and collecting the trajectories.
type Driver struct {
	metrics []Metric
}

func NewDriver() *Driver {
	return &Driver{metrics: make([]Metric, 0)}
}

func (d *Driver) AddMetric(m Metric) { d.metrics = append(d.metrics, m) }

// Run applies the configured bounds to the controller, resets it, and
// steps the closed loop cfg.Steps times. Deterministic for a nil noise
// source or a fixed seed.
func (d *Driver) Run(ctrl *control.PI, noise NoiseSource, cfg RunConfig) (*Result, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	room, err := thermal.NewRoom(cfg.Alpha, cfg.Beta)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRunConfig, err)
	}
	if err := ctrl.SetBounds(cfg.UMin, cfg.UMax); err != nil {
		return nil, err
	}

	// Every run starts from a clean integral state, regardless of what the
	// controller instance was used for before.
	ctrl.Reset(0)

	for _, m := range d.metrics {
		m.Reset()
	}

	res := &Result{
		Ts:        cfg.Ts,
		Times:     make([]float64, 0, cfg.Steps+1),
		Temps:     make([]float64, 0, cfg.Steps+1),
		Setpoints: make([]float64, 0, cfg.Steps+1),
		Ambients:  make([]float64, 0, cfg.Steps+1),
		Integrals: make([]float64, 0, cfg.Steps+1),
		Controls:  make([]float64, 0, cfg.Steps),
		Errors:    make([]float64, 0, cfg.Steps),
		Metrics:   make(map[string]float64),
	}

	res.Times = append(res.Times, 0)
	res.Temps = append(res.Temps, cfg.Initial)
	res.Setpoints = append(res.Setpoints, cfg.Setpoint)
	res.Ambients = append(res.Ambients, cfg.Ambient.Initial)
	res.Integrals = append(res.Integrals, ctrl.Integral())

	y := cfg.Initial
	for k := 0; k < cfg.Steps; k++ {
		ambient := cfg.Ambient.At(k)

		u, err := ctrl.Step(cfg.Setpoint, y)
		if err != nil {
			return nil, err
		}

		// Recomputed instead of read back from the controller. Both use the
		// same pre-step measurement, so the two values coincide today; a
		// filtered measurement or derivative term added to one side would
		// break that, which is why this is not deduplicated.
		e := cfg.Setpoint - y

		var w float64
		if noise != nil {
			w = noise.Sample()
		}

		next := room.Step(y, ambient, u, w)

		for _, m := range d.metrics {
			m.Observe(y, u, e, float64(k)*cfg.Ts)
		}

		res.Controls = append(res.Controls, u)
		res.Errors = append(res.Errors, e)
		res.Integrals = append(res.Integrals, ctrl.Integral())
		res.Temps = append(res.Temps, next)
		res.Ambients = append(res.Ambients, ambient)
		res.Setpoints = append(res.Setpoints, cfg.Setpoint)
		res.Times = append(res.Times, float64(k+1)*cfg.Ts)

		y = next
	}

	for _, m := range d.metrics {
		res.Metrics[m.Name()] = m.Value()
	}

	return res, nil
}
