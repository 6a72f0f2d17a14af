package game

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/memmaker/outpost/engine/util"
)

// UnitSpawner creates units. The World implements it; the created unit is owned by the World.
type UnitSpawner interface {
	SpawnUnit(template string, faction Faction, near [2]int) (*Unit, error)
	Command(unitID EntityID, actions ...Action) bool
}

// Spawner is a structure that produces a unit of its template every PeriodSec seconds.
type Spawner struct {
	*Structure
	UnitTemplate string
	PeriodSec    float64
	// RallyPoint, when set, is where new units are sent.
	RallyPoint *mgl32.Vec3

	lastSpawnTime  float64
	firstSpawnDone bool
	lastSpawned    EntityID
}

func NewSpawner(structure *Structure, unitTemplate string, periodSec float64) *Spawner {
	return &Spawner{
		Structure:    structure,
		UnitTemplate: unitTemplate,
		PeriodSec:    periodSec,
	}
}

// Update spawns at most one unit: on the first call, then whenever PeriodSec has passed since
// the last spawn. A failed spawn is logged and tried again once the next period has passed.
func (s *Spawner) Update(now float64, spawner UnitSpawner) (*Unit, bool) {
	if !s.IsBuilt() || s.IsDestroyed() {
		return nil, false
	}
	if s.firstSpawnDone && now-s.lastSpawnTime < s.PeriodSec {
		return nil, false
	}
	s.lastSpawnTime = now
	s.firstSpawnDone = true

	unit, err := spawner.SpawnUnit(s.UnitTemplate, s.Faction, s.Tile())
	if err != nil {
		util.LogSpawnWarning(fmt.Sprintf("[Spawner] %s: %v", s.GetName(), err))
		return nil, false
	}
	s.lastSpawned = unit.ID
	util.LogSpawnInfo(fmt.Sprintf("[Spawner] %s spawned %s at %v", s.GetName(), unit.GetName(), unit.GetPosition()))
	if s.RallyPoint != nil {
		spawner.Command(unit.ID, NewMoveAction(*s.RallyPoint))
	}
	return unit, true
}

// LastSpawned is the id of the most recent unit. It may no longer exist.
func (s *Spawner) LastSpawned() EntityID {
	return s.lastSpawned
}

func (s *Spawner) LastSpawnTime() float64 {
	return s.lastSpawnTime
}

func (s *Spawner) SetRallyPoint(p mgl32.Vec3) {
	s.RallyPoint = &p
}
