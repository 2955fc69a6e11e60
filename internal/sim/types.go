package sim

// Result holds the aligned per-sample sequences of one simulation run.
//
// The state sequences (Times, Temps, Setpoints, Ambients, Integrals)
// describe samples and have Steps()+1 entries; Controls and Errors
// describe transitions between samples and have Steps() entries. Consumers
// must tolerate this off-by-one by construction.
type Result struct {
	Ts float64

	Times     []float64
	Temps     []float64
	Setpoints []float64
	Ambients  []float64
	Integrals []float64

	Controls []float64
	Errors   []float64

	Metrics map[string]float64
}

// Steps returns the number of transitions taken.
func (r *Result) Steps() int { return len(r.Controls) }

// FinalTemp returns the last measured value.
func (r *Result) FinalTemp() float64 { return r.Temps[len(r.Temps)-1] }

// FinalError returns the tracking error at the end of the run, computed
// from the final sample rather than the last transition.
func (r *Result) FinalError() float64 {
	return r.Setpoints[len(r.Setpoints)-1] - r.FinalTemp()
}

// Metric observes each simulation step and reduces it to a single number,
// collected into Result.Metrics at the end of a run.
type Metric interface {
	Name() string
	Observe(temp, control, err, t float64)
	Value() float64
	Reset()
}
