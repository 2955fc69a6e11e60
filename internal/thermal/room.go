// Package thermal models the controlled plant: a first-order thermal
// system exchanging heat with an ambient environment, advanced with an
// explicit-Euler update each sample period.
package thermal

import (
	"errors"
	"fmt"
)

// Default plant coefficients for the room model.
const (
	DefaultAlpha = 0.2
	DefaultBeta  = 0.5
)

// ErrUnstableAlpha indicates a response-speed coefficient outside (0, 1],
// for which the explicit-Euler update is not stable.
var ErrUnstableAlpha = errors.New("thermal: alpha outside (0, 1]")

// Room is a first-order thermal plant. Alpha sets how quickly the
// temperature moves, Beta how strongly the actuator output forces it.
type Room struct {
	Alpha float64
	Beta  float64
}

func NewRoom(alpha, beta float64) (*Room, error) {
	if alpha <= 0 || alpha > 1 {
		return nil, fmt.Errorf("%w: got %g", ErrUnstableAlpha, alpha)
	}
	return &Room{Alpha: alpha, Beta: beta}, nil
}

// Step advances the plant by one sample: passive heat exchange toward
// ambient plus the actuator forcing term, plus an additive disturbance.
func (r *Room) Step(temp, ambient, u, noise float64) float64 {
	return temp + r.Alpha*(-(temp-ambient)+r.Beta*u) + noise
}

// Equilibrium returns the temperature the plant settles at under a
// constant control input and ambient value.
func (r *Room) Equilibrium(ambient, u float64) float64 {
	return ambient + r.Beta*u
}
