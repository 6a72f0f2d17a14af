package game

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
)

type countingSpawner struct {
	spawned  []*Unit
	commands map[EntityID][]Action
	fail     bool
}

func (s *countingSpawner) SpawnUnit(template string, faction Faction, near [2]int) (*Unit, error) {
	if s.fail {
		return nil, errors.New("no room")
	}
	unit := NewUnit(template, template, faction, TileCenter(near), UnitStats{MaxHealth: 10})
	unit.ID = EntityID(len(s.spawned) + 1)
	s.spawned = append(s.spawned, unit)
	return unit, nil
}

func (s *countingSpawner) Command(unitID EntityID, actions ...Action) bool {
	if s.commands == nil {
		s.commands = make(map[EntityID][]Action)
	}
	s.commands[unitID] = actions
	return true
}

func newTestSpawner(built bool) *Spawner {
	structure := NewStructure("barracks", "barracks", "blue", [2]int{2, 2}, StructureStats{MaxHealth: 100, BuildTime: 10}, built)
	return NewSpawner(structure, "soldier", 10)
}

func TestSpawnerPeriod(t *testing.T) {
	spawner := newTestSpawner(true)
	units := &countingSpawner{}

	tests := []struct {
		now   float64
		spawn bool
	}{
		{0, true},
		{5, false},
		{9.99, false},
		{11, true},
		{20, false},
		{21, true},
	}
	for _, tt := range tests {
		_, spawned := spawner.Update(tt.now, units)
		if spawned != tt.spawn {
			t.Errorf("Update(%v): expected spawn %v, got %v", tt.now, tt.spawn, spawned)
		}
	}
	if len(units.spawned) != 3 {
		t.Errorf("expected 3 units, got %d", len(units.spawned))
	}
	if spawner.LastSpawned() != 3 {
		t.Errorf("expected the last spawned id to be 3, got %d", spawner.LastSpawned())
	}
	if spawner.LastSpawnTime() != 21 {
		t.Errorf("expected the last spawn at 21, got %v", spawner.LastSpawnTime())
	}
}

func TestSpawnerSpawnsOncePerCall(t *testing.T) {
	spawner := newTestSpawner(true)
	units := &countingSpawner{}
	spawner.Update(0, units)
	// a long gap still yields a single unit
	spawner.Update(100, units)
	if len(units.spawned) != 2 {
		t.Errorf("expected 2 units, got %d", len(units.spawned))
	}
}

func TestUnbuiltSpawnerIsIdle(t *testing.T) {
	spawner := newTestSpawner(false)
	units := &countingSpawner{}
	if _, spawned := spawner.Update(0, units); spawned {
		t.Error("unbuilt spawner produced a unit")
	}
}

func TestSpawnerRetriesAfterFailure(t *testing.T) {
	spawner := newTestSpawner(true)
	units := &countingSpawner{fail: true}
	if _, spawned := spawner.Update(0, units); spawned {
		t.Fatal("spawn should have failed")
	}
	units.fail = false
	if _, spawned := spawner.Update(5, units); spawned {
		t.Error("failed spawn should wait for the next period")
	}
	if _, spawned := spawner.Update(10, units); !spawned {
		t.Error("expected a spawn once the period passed")
	}
}

func TestSpawnerSendsUnitsToRallyPoint(t *testing.T) {
	spawner := newTestSpawner(true)
	spawner.SetRallyPoint(mgl32.Vec3{7.5, 7.5, 0})
	units := &countingSpawner{}

	unit, _ := spawner.Update(0, units)

	orders := units.commands[unit.ID]
	if len(orders) != 1 || orders[0].Kind != ActionMove {
		t.Fatalf("expected one move order, got %v", orders)
	}
	if dest := orders[0].Data.(*MoveData).Destination; dest != (mgl32.Vec3{7.5, 7.5, 0}) {
		t.Errorf("expected the rally point, got %v", dest)
	}
}

func TestWorldAdmitsSpawnedUnitsAfterTick(t *testing.T) {
	w := newTestWorld(t, 10, 10)
	barracks, err := w.PlaceStructure("barracks", "blue", [2]int{5, 5}, true)
	if err != nil {
		t.Fatal(err)
	}
	spawner, ok := w.SpawnerByID(barracks.ID)
	if !ok {
		t.Fatal("barracks has no spawner")
	}
	spawner.SetRallyPoint(mgl32.Vec3{1.5, 1.5, 0})

	w.Tick(0)

	units := w.Units()
	if len(units) != 1 {
		t.Fatalf("expected 1 unit, got %d", len(units))
	}
	soldier := units[0]
	if soldier.ID != spawner.LastSpawned() || soldier.Template != "soldier" {
		t.Errorf("unexpected unit %s (%d)", soldier.Template, soldier.ID)
	}
	if d := soldier.DistanceTo(barracks.GetPosition()); d > 1.5 {
		t.Errorf("spawned %v away from the barracks", d)
	}
	head, ok := soldier.CurrentAction(w.Arena())
	if !ok || head.Kind != ActionMove {
		t.Errorf("expected the rally order at the head, got %v", head)
	}

	w.Tick(5)
	if len(w.Units()) != 1 {
		t.Errorf("spawned again before the period passed")
	}
	w.Tick(10)
	if len(w.Units()) != 2 {
		t.Errorf("expected a second unit after the period")
	}
}
