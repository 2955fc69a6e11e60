// Package metrics reduces simulation trajectories to scalar figures of
// merit, observed one step at a time.
package metrics

import "math"

// ControlEffort is the mean absolute actuator output over a run.
type ControlEffort struct {
	sum     float64
	samples int
}

func NewControlEffort() *ControlEffort {
	return &ControlEffort{}
}

func (c *ControlEffort) Name() string { return "control_effort" }

func (c *ControlEffort) Observe(temp, control, err, t float64) {
	c.sum += math.Abs(control)
	c.samples++
}

func (c *ControlEffort) Value() float64 {
	if c.samples == 0 {
		return 0
	}
	return c.sum / float64(c.samples)
}

func (c *ControlEffort) Reset() {
	c.sum = 0
	c.samples = 0
}
