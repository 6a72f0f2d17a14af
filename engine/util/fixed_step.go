package util

// FixedStep turns variable frame times into a whole number of simulation steps of equal length.
type FixedStep struct {
	step     float64
	maxSteps int
	pending  float64
	steps    int64
}

// NewFixedStep creates a clock advancing in steps of step seconds. At most maxSteps are
// returned per Advance so a long stall does not freeze the loop catching up.
func NewFixedStep(step float64, maxSteps int) *FixedStep {
	if step <= 0 {
		panic("util: fixed step must be positive")
	}
	return &FixedStep{step: step, maxSteps: maxSteps}
}

// Advance adds elapsed seconds and returns how many steps are due now.
func (f *FixedStep) Advance(elapsed float64) int {
	if elapsed > 0 {
		f.pending += elapsed
	}
	due := int(f.pending / f.step)
	if f.maxSteps > 0 && due > f.maxSteps {
		due = f.maxSteps
		f.pending = 0
	} else {
		f.pending -= float64(due) * f.step
	}
	return due
}

// Next counts one step and returns the simulation time at its end.
func (f *FixedStep) Next() float64 {
	f.steps++
	return f.Now()
}

// Now is the simulation time after the steps taken so far.
func (f *FixedStep) Now() float64 {
	return float64(f.steps) * f.step
}

func (f *FixedStep) Step() float64 {
	return f.step
}
