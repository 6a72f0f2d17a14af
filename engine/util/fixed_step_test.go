package util

import "testing"

func TestFixedStepAccumulates(t *testing.T) {
	clock := NewFixedStep(0.25, 0)
	if due := clock.Advance(0.125); due != 0 {
		t.Errorf("expected no step yet, got %d", due)
	}
	if due := clock.Advance(0.125); due != 1 {
		t.Errorf("expected one step at 0.25s, got %d", due)
	}
	if due := clock.Advance(0.5); due != 2 {
		t.Errorf("expected two steps, got %d", due)
	}
	for i := 0; i < 3; i++ {
		clock.Next()
	}
	if clock.Now() != 0.75 {
		t.Errorf("expected 0.75s, got %v", clock.Now())
	}
}

func TestFixedStepCapsCatchUp(t *testing.T) {
	clock := NewFixedStep(0.5, 4)
	if due := clock.Advance(10); due != 4 {
		t.Errorf("expected the cap of 4 steps, got %d", due)
	}
	if due := clock.Advance(0); due != 0 {
		t.Errorf("expected the backlog to be dropped, got %d", due)
	}
	if due := clock.Advance(-1); due != 0 {
		t.Errorf("negative time produced %d steps", due)
	}
}
