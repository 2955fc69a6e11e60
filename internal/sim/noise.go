package sim

import "math/rand"

// NoiseSource supplies one additive disturbance sample per step. The
// driver never owns or seeds the source; reproducible runs come from
// seeding it externally. A nil source means no disturbance.
type NoiseSource interface {
	Sample() float64
}

// Gaussian draws zero-mean normal samples with a fixed standard deviation.
type Gaussian struct {
	Std float64
	rng *rand.Rand
}

func NewGaussian(std float64, rng *rand.Rand) *Gaussian {
	return &Gaussian{Std: std, rng: rng}
}

func (g *Gaussian) Sample() float64 {
	if g.Std <= 0 {
		return 0
	}
	return g.rng.NormFloat64() * g.Std
}
