package thermal

import (
	"errors"
	"math"
	"testing"
)

func TestRoomStep(t *testing.T) {
	room, err := NewRoom(0.2, 0.5)
	if err != nil {
		t.Fatalf("new room failed: %v", err)
	}

	// 20 + 0.2*(-(20-20) + 0.5*10) = 21
	next := room.Step(20.0, 20.0, 10.0, 0)
	if math.Abs(next-21.0) > 1e-12 {
		t.Errorf("expected 21.0, got %g", next)
	}

	// Passive decay toward ambient with no control input.
	next = room.Step(30.0, 20.0, 0, 0)
	if math.Abs(next-28.0) > 1e-12 {
		t.Errorf("expected 28.0, got %g", next)
	}

	// Disturbance is purely additive.
	next = room.Step(20.0, 20.0, 0, 0.7)
	if math.Abs(next-20.7) > 1e-12 {
		t.Errorf("expected 20.7, got %g", next)
	}
}

func TestRoomAlphaBounds(t *testing.T) {
	for _, alpha := range []float64{0, -0.1, 1.5} {
		if _, err := NewRoom(alpha, 0.5); !errors.Is(err, ErrUnstableAlpha) {
			t.Errorf("alpha=%g: expected ErrUnstableAlpha, got %v", alpha, err)
		}
	}
	if _, err := NewRoom(1.0, 0.5); err != nil {
		t.Errorf("alpha=1 is valid, got %v", err)
	}
}

func TestEquilibrium(t *testing.T) {
	room, _ := NewRoom(0.2, 0.5)
	eq := room.Equilibrium(20.0, 12.0)
	if eq != 26.0 {
		t.Errorf("expected 26.0, got %g", eq)
	}

	// The plant update is a fixed point at the equilibrium.
	if next := room.Step(eq, 20.0, 12.0, 0); math.Abs(next-eq) > 1e-12 {
		t.Errorf("equilibrium is not a fixed point: %g -> %g", eq, next)
	}
}

func TestAmbientSchedule(t *testing.T) {
	s := AmbientSchedule{Initial: 20.0}
	for _, k := range []int{0, 10, 1000} {
		if got := s.At(k); got != 20.0 {
			t.Errorf("step %d: expected 20, got %g", k, got)
		}
	}

	s = AmbientSchedule{Initial: 20.0, Step: &AmbientStep{At: 120, Value: 24.0}}
	if got := s.At(119); got != 20.0 {
		t.Errorf("before the step: expected 20, got %g", got)
	}
	// Permanent from the trigger index onward.
	for _, k := range []int{120, 121, 500} {
		if got := s.At(k); got != 24.0 {
			t.Errorf("step %d: expected 24, got %g", k, got)
		}
	}
}

func TestAmbientScheduleValidate(t *testing.T) {
	s := AmbientSchedule{Initial: 20.0, Step: &AmbientStep{At: -1, Value: 24.0}}
	if err := s.Validate(); err == nil {
		t.Error("expected error for negative step index")
	}
	if err := (AmbientSchedule{Initial: 20.0}).Validate(); err != nil {
		t.Errorf("plain schedule should validate, got %v", err)
	}
}
