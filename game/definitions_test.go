package game

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const testDefinitions = `{
  "units": [
    {"id": "scout", "name": "Scout", "texture": "scout.png", "health": 30, "speed": 4,
     "power": 3, "attackRange": 1, "attackPeriod": 0.5, "sightRange": 7}
  ],
  "structures": [
    {"id": "camp", "name": "Camp", "health": 120, "buildTime": 15,
     "spawner": {"unit": "scout", "period": 8}},
    {"id": "tower", "name": "Tower", "health": 90, "buildTime": 5,
     "turret": {"power": 4, "range": 2.5, "firePeriod": 0.75}}
  ]
}`

func TestParseDefinitions(t *testing.T) {
	defs, err := ParseDefinitions(strings.NewReader(testDefinitions))
	if err != nil {
		t.Fatal(err)
	}
	scout, ok := defs.Unit("scout")
	if !ok {
		t.Fatal("scout missing")
	}
	if scout.Speed != 4 || scout.AttackPeriod != 0.5 || scout.MaxHealth != 30 {
		t.Errorf("unexpected stats %+v", scout.UnitStats)
	}
	camp, ok := defs.Structure("camp")
	if !ok || camp.Spawner == nil || camp.Spawner.Unit != "scout" || camp.Spawner.Period != 8 {
		t.Errorf("unexpected camp %+v", camp)
	}
	tower, ok := defs.Structure("tower")
	if !ok || tower.Turret == nil || tower.Turret.Range != 2.5 {
		t.Errorf("unexpected tower %+v", tower)
	}
	if _, ok := defs.Unit("camp"); ok {
		t.Error("structure id resolved as unit")
	}
}

func TestParseDefinitionsRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		json string
	}{
		{"syntax", `{"units": [`},
		{"missing id", `{"units": [{"health": 10}]}`},
		{"duplicate", `{"units": [{"id": "a", "health": 1}, {"id": "a", "health": 1}]}`},
		{"no health", `{"units": [{"id": "a"}]}`},
		{"unknown spawn", `{"structures": [{"id": "s", "health": 1, "spawner": {"unit": "ghost", "period": 1}}]}`},
		{"zero period", `{"units": [{"id": "a", "health": 1}], "structures": [{"id": "s", "health": 1, "spawner": {"unit": "a", "period": 0}}]}`},
	}
	for _, tt := range tests {
		if _, err := ParseDefinitions(strings.NewReader(tt.json)); err == nil {
			t.Errorf("%s: expected an error", tt.name)
		}
	}
}

func TestLoadDefinitions(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "defs.json")
	if err := os.WriteFile(file, []byte(testDefinitions), 0o644); err != nil {
		t.Fatal(err)
	}
	defs, err := LoadDefinitions(file)
	if err != nil {
		t.Fatal(err)
	}
	if len(defs.Units) != 1 || len(defs.Structures) != 2 {
		t.Errorf("unexpected counts %d/%d", len(defs.Units), len(defs.Structures))
	}
	if _, err := LoadDefinitions(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("expected an error for a missing file")
	}
}

func TestDefaultDefinitions(t *testing.T) {
	defs := DefaultDefinitions()
	for _, id := range []string{"worker", "soldier"} {
		if _, ok := defs.Unit(id); !ok {
			t.Errorf("unit %s missing", id)
		}
	}
	for _, id := range []string{"base", "barracks", "turret"} {
		if _, ok := defs.Structure(id); !ok {
			t.Errorf("structure %s missing", id)
		}
	}
}

func TestWorldDefendRadiusAppliesToLevelUnits(t *testing.T) {
	defs, err := ParseDefinitions(strings.NewReader(testDefinitions))
	if err != nil {
		t.Fatal(err)
	}
	level := &LevelFile{
		Name:   "field",
		Width:  4,
		Height: 4,
		Tiles:  make([]byte, 16),
		Units:  []UnitPlacement{{Template: "scout", Faction: "blue", X: 1, Y: 1}},
	}
	w, err := NewWorldFromLevel(level, defs, WithDefendRadius(7))
	if err != nil {
		t.Fatal(err)
	}
	scout := w.Units()[0]
	if scout.DefendRadius != 7 {
		t.Errorf("expected the configured defend radius 7, got %v", scout.DefendRadius)
	}
	w.Tick(0.1)
	head, ok := scout.CurrentAction(w.Arena())
	if !ok || head.Kind != ActionIdleDefend || head.Data.(*IdleDefendData).Radius != 7 {
		t.Errorf("expected an IdleDefend with radius 7, got %+v", head)
	}
}
