package util

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// TimerState accumulates the durations of one named section, in milliseconds.
type TimerState struct {
	name         string
	lastDuration float64

	totalDuration  float64
	executionCount int64

	minDuration float64
	maxDuration float64
}

func newTimerState(name string) *TimerState {
	return &TimerState{
		name:        name,
		minDuration: math.MaxFloat64,
		maxDuration: 0,
	}
}

func (t *TimerState) Average() float64 {
	if t.executionCount == 0 {
		return 0
	}
	return t.totalDuration / float64(t.executionCount)
}

func (t *TimerState) Last() float64 {
	return t.lastDuration
}

func (t *TimerState) Count() int64 {
	return t.executionCount
}

func (t *TimerState) record(durationInMS float64) {
	t.lastDuration = durationInMS
	t.totalDuration += durationInMS
	t.executionCount++
	t.minDuration = math.Min(t.minDuration, durationInMS)
	t.maxDuration = math.Max(t.maxDuration, durationInMS)
}

func (t *TimerState) String() string {
	if t.executionCount == 0 {
		return fmt.Sprintf("%s: no samples", t.name)
	}
	return fmt.Sprintf("%s last: %.2fms, avg: %.2fms, min: %.2fms, max: %.2fms", t.name, t.lastDuration, t.Average(), t.minDuration, t.maxDuration)
}

// Timer measures named sections of the frame, e.g. "update" and "render".
type Timer struct {
	states     map[string]*TimerState
	timerNames []string
}

func NewTimer() *Timer {
	return &Timer{
		states: make(map[string]*TimerState),
	}
}

func (t *Timer) GetState(name string) *TimerState {
	return t.states[name]
}

func (t *Timer) Reset() {
	for name := range t.states {
		t.states[name] = newTimerState(name)
	}
}

func (t *Timer) String() string {
	lines := make([]string, 0, len(t.timerNames))
	for _, name := range t.timerNames {
		lines = append(lines, t.states[name].String())
	}
	return strings.Join(lines, "\n")
}

// Start begins measuring the named section. Call the returned func to stop; it returns
// the measured duration in milliseconds.
func (t *Timer) Start(name string) func() float64 {
	state, ok := t.states[name]
	if !ok {
		t.timerNames = append(t.timerNames, name)
		state = newTimerState(name)
		t.states[name] = state
	}
	start := time.Now()
	return func() float64 {
		durationInMS := float64(time.Since(start).Microseconds()) / 1000.0
		state.record(durationInMS)
		return durationInMS
	}
}
