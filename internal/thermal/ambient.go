package thermal

import "fmt"

// AmbientStep is a scheduled, one-time change of the ambient value at a
// known step index, e.g. the sun hitting the room at noon.
type AmbientStep struct {
	At    int
	Value float64
}

// AmbientSchedule yields the ambient value for each discrete step. A
// configured step change is permanent from its index onward.
type AmbientSchedule struct {
	Initial float64
	Step    *AmbientStep
}

func (s AmbientSchedule) Validate() error {
	if s.Step != nil && s.Step.At < 0 {
		return fmt.Errorf("thermal: ambient step index must be non-negative, got %d", s.Step.At)
	}
	return nil
}

// At returns the ambient value in effect during step k.
func (s AmbientSchedule) At(k int) float64 {
	if s.Step != nil && k >= s.Step.At {
		return s.Step.Value
	}
	return s.Initial
}
