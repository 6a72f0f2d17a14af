package game

import "testing"

func TestSummary(t *testing.T) {
	w, err := NewWorldFromLevel(testLevel(), DefaultDefinitions())
	if err != nil {
		t.Fatal(err)
	}
	summary := w.Summary()
	if len(summary) != 2 || summary[0].Faction != "blue" || summary[1].Faction != "red" {
		t.Fatalf("unexpected factions: %+v", summary)
	}
	blue, red := summary[0], summary[1]
	if blue.Units["worker"] != 1 || blue.UnitCount() != 1 || blue.Structures != 1 || blue.UnbuiltSites != 0 {
		t.Errorf("blue summary: %+v", blue)
	}
	if red.Units["soldier"] != 1 || red.Structures != 1 || red.UnbuiltSites != 1 {
		t.Errorf("red summary: %+v", red)
	}
	if blue.TotalUnitHealth != 40 {
		t.Errorf("expected the worker's 40 health, got %v", blue.TotalUnitHealth)
	}
}
