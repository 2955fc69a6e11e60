package metrics

import "math"

// SteadyStateError is the mean absolute tracking error over the trailing
// window of a run.
type SteadyStateError struct {
	window []float64
	next   int
	filled bool
}

func NewSteadyStateError(window int) *SteadyStateError {
	if window < 1 {
		window = 1
	}
	return &SteadyStateError{window: make([]float64, window)}
}

func (s *SteadyStateError) Name() string { return "steady_state_error" }

func (s *SteadyStateError) Observe(temp, control, err, t float64) {
	s.window[s.next] = math.Abs(err)
	s.next++
	if s.next == len(s.window) {
		s.next = 0
		s.filled = true
	}
}

func (s *SteadyStateError) Value() float64 {
	n := len(s.window)
	if !s.filled {
		n = s.next
	}
	if n == 0 {
		return 0
	}
	sum := 0.0
	for i := 0; i < n; i++ {
		sum += s.window[i]
	}
	return sum / float64(n)
}

func (s *SteadyStateError) Reset() {
	s.next = 0
	s.filled = false
}

// Overshoot is the largest excursion of the measured value past the
// setpoint, in the direction of approach.
type Overshoot struct {
	setpoint  float64
	direction float64
	peak      float64
}

// NewOvershoot derives the approach direction from the setpoint and the
// initial value; a run starting on the setpoint reports zero.
func NewOvershoot(setpoint, initial float64) *Overshoot {
	dir := 1.0
	if initial > setpoint {
		dir = -1.0
	}
	return &Overshoot{setpoint: setpoint, direction: dir}
}

func (o *Overshoot) Name() string { return "overshoot" }

func (o *Overshoot) Observe(temp, control, err, t float64) {
	if exc := (temp - o.setpoint) * o.direction; exc > o.peak {
		o.peak = exc
	}
}

func (o *Overshoot) Value() float64 { return o.peak }

func (o *Overshoot) Reset() { o.peak = 0 }

// SettlingTime is the last time the tracking error exceeded the tolerance;
// past that point the run stayed settled.
type SettlingTime struct {
	tolerance float64
	last      float64
}

func NewSettlingTime(tolerance float64) *SettlingTime {
	return &SettlingTime{tolerance: tolerance}
}

func (s *SettlingTime) Name() string { return "settling_time" }

func (s *SettlingTime) Observe(temp, control, err, t float64) {
	if math.Abs(err) > s.tolerance {
		s.last = t
	}
}

func (s *SettlingTime) Value() float64 { return s.last }

func (s *SettlingTime) Reset() { s.last = 0 }
