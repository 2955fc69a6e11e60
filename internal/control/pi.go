package control

import (
	"fmt"
	"math"
)

// Default actuator output bounds, in percent of full power.
const (
	DefaultUMin = -100.0
	DefaultUMax = 100.0
)

// PI is a discrete-time proportional-integral controller with output
// clamping and conditional-integration anti-windup. Gains and bounds are
// plain fields and may be reassigned between steps; changing bounds does
// not re-clamp the accumulated integral, only the next Step re-evaluates
// saturation.
type PI struct {
	Kp   float64 // proportional gain
	Ki   float64 // integral gain
	Ts   float64 // sample period, seconds
	UMin float64 // lower output bound
	UMax float64 // upper output bound

	integral   float64
	lastOutput float64
}

// Option configures a PI at construction time.
type Option func(*PI)

// WithBounds overrides the default output bounds.
func WithBounds(min, max float64) Option {
	return func(c *PI) {
		c.UMin = min
		c.UMax = max
	}
}

// New builds a PI controller with the given gains and sample period.
// A non-positive sample period or inverted bounds fail with
// ErrInvalidConfig.
func New(kp, ki, ts float64, opts ...Option) (*PI, error) {
	c := &PI{
		Kp:   kp,
		Ki:   ki,
		Ts:   ts,
		UMin: DefaultUMin,
		UMax: DefaultUMax,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.Ts <= 0 {
		return nil, fmt.Errorf("%w: sample period must be positive, got %g", ErrInvalidConfig, c.Ts)
	}
	if c.UMin > c.UMax {
		return nil, fmt.Errorf("%w: output bounds inverted [%g, %g]", ErrInvalidConfig, c.UMin, c.UMax)
	}
	return c, nil
}

// Step advances the controller by one sample period and returns the
// bounded control output. The only state it mutates is the integral
// accumulator and the last-output record.
//
// The candidate integral is committed unless the raw output is clamped
// AND the error keeps pushing it further into the same bound. Discarding
// the candidate in that case keeps the accumulator from winding up behind
// the saturation, so the output moves off the bound within one sample
// once the error reverses.
func (c *PI) Step(setpoint, measurement float64) (float64, error) {
	if !isFinite(setpoint) || !isFinite(measurement) {
		return 0, fmt.Errorf("%w: setpoint=%g measurement=%g", ErrNonFiniteInput, setpoint, measurement)
	}

	e := setpoint - measurement
	iTry := c.integral + c.Ki*c.Ts*e
	uRaw := c.Kp*e + iTry
	uSat := clamp(uRaw, c.UMin, c.UMax)

	saturated := uRaw != uSat
	pushingDeeper := (uRaw > uSat && e > 0) || (uRaw < uSat && e < 0)
	if !(saturated && pushingDeeper) {
		c.integral = iTry
	}

	c.lastOutput = uSat
	return uSat, nil
}

// Reset clears the integral accumulator to i0 and the last output to zero.
// Used between independent runs; never called implicitly.
func (c *PI) Reset(i0 float64) {
	c.integral = i0
	c.lastOutput = 0
}

// SetBounds replaces the output bounds, rejecting an inverted range.
func (c *PI) SetBounds(min, max float64) error {
	if min > max {
		return fmt.Errorf("%w: output bounds inverted [%g, %g]", ErrInvalidConfig, min, max)
	}
	c.UMin = min
	c.UMax = max
	return nil
}

// Integral returns the current integral accumulator.
func (c *PI) Integral() float64 { return c.integral }

// LastOutput returns the most recent bounded output. It is recorded for
// inspection only and never feeds back into the control law.
func (c *PI) LastOutput() float64 { return c.lastOutput }

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
