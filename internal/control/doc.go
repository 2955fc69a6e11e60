// Package control implements the discrete-time PI controller that drives
// the thermal plant simulation.
//
//   - [PI]: proportional-integral controller with output clamping and
//     conditional-integration anti-windup
//
// # Usage
//
//	ctrl, err := control.New(10.0, 0.5, 1.0) // Kp, Ki, Ts
//	u, err := ctrl.Step(26.0, measured)      // one sample period
//
// A PI instance is owned by a single control loop. Step mutates the
// integral accumulator in place; concurrent stepping from multiple
// goroutines needs external synchronization.
package control
