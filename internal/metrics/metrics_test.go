package metrics

import (
	"math"
	"testing"
)

func TestControlEffort(t *testing.T) {
	m := NewControlEffort()
	if m.Value() != 0 {
		t.Errorf("empty metric should be 0, got %g", m.Value())
	}

	m.Observe(0, 4.0, 0, 0)
	m.Observe(0, -2.0, 0, 1)
	if m.Value() != 3.0 {
		t.Errorf("expected mean |u| = 3, got %g", m.Value())
	}

	m.Reset()
	if m.Value() != 0 {
		t.Errorf("reset should clear the metric, got %g", m.Value())
	}
}

func TestSteadyStateErrorWindow(t *testing.T) {
	m := NewSteadyStateError(3)

	// Early transient errors must fall out of the window.
	for _, e := range []float64{10, -8, 1, 1, -1} {
		m.Observe(0, 0, e, 0)
	}
	if m.Value() != 1.0 {
		t.Errorf("expected trailing mean 1.0, got %g", m.Value())
	}
}

func TestSteadyStateErrorPartialWindow(t *testing.T) {
	m := NewSteadyStateError(10)
	m.Observe(0, 0, 2.0, 0)
	m.Observe(0, 0, -4.0, 1)
	if m.Value() != 3.0 {
		t.Errorf("expected mean over observed samples 3.0, got %g", m.Value())
	}
}

func TestOvershoot(t *testing.T) {
	m := NewOvershoot(26.0, 20.0)
	for _, y := range []float64{20, 24, 26.8, 26.2, 26.0} {
		m.Observe(y, 0, 26.0-y, 0)
	}
	if math.Abs(m.Value()-0.8) > 1e-12 {
		t.Errorf("expected overshoot 0.8, got %g", m.Value())
	}

	// Approaching from above: excursions below the setpoint count.
	m = NewOvershoot(20.0, 26.0)
	for _, y := range []float64{26, 21, 19.5, 20.2} {
		m.Observe(y, 0, 20.0-y, 0)
	}
	if math.Abs(m.Value()-0.5) > 1e-12 {
		t.Errorf("expected overshoot 0.5, got %g", m.Value())
	}
}

func TestSettlingTime(t *testing.T) {
	m := NewSettlingTime(0.05)
	errs := []float64{6, 3, 1, 0.2, 0.04, 0.06, 0.01, 0.02}
	for i, e := range errs {
		m.Observe(0, 0, e, float64(i))
	}
	if m.Value() != 5.0 {
		t.Errorf("expected settling time 5, got %g", m.Value())
	}
}
