package game

import (
	"github.com/go-gl/mathgl/mgl32"
)

// StructureStats are the numbers a structure template defines.
type StructureStats struct {
	MaxHealth float32 `json:"health"`
	// BuildTime is the work in worker-seconds a structure needs from zero to built.
	BuildTime float32 `json:"buildTime"`
}

// Structure is a stationary entity occupying one tile. It starts unbuilt unless placed complete.
type Structure struct {
	Body
	BuildTime     float32
	buildProgress float32
	tile          [2]int
}

// NewStructure places a structure at the center of tile. A built structure starts at full health,
// an unbuilt one at the least health that keeps it standing.
func NewStructure(name, template string, faction Faction, tile [2]int, stats StructureStats, built bool) *Structure {
	s := &Structure{
		Body:      newBody(name, template, faction, TileCenter(tile), stats.MaxHealth),
		BuildTime: stats.BuildTime,
		tile:      tile,
	}
	if built || s.BuildTime <= 0 {
		s.buildProgress = 1
		return s
	}
	s.SetHealth(min(1, s.GetMaxHealth()))
	return s
}

func (s *Structure) Tile() [2]int {
	return s.tile
}

func (s *Structure) BuildProgress() float32 {
	return s.buildProgress
}

func (s *Structure) IsBuilt() bool {
	return s.buildProgress >= 1
}

func (s *Structure) IsDestroyed() bool {
	return s.IsDead()
}

// IsComplete is true for a built structure at full health.
func (s *Structure) IsComplete() bool {
	return s.IsBuilt() && s.GetHealth() >= s.GetMaxHealth()
}

// Construct adds work seconds of construction. Health grows with the progress.
func (s *Structure) Construct(work float32) {
	if s.IsBuilt() || s.IsDestroyed() || work <= 0 {
		return
	}
	step := work / s.BuildTime
	if s.buildProgress+step > 1 {
		step = 1 - s.buildProgress
	}
	s.buildProgress += step
	s.SetHealth(s.GetHealth() + step*s.GetMaxHealth())
}

// Repair restores amount health on a built structure.
func (s *Structure) Repair(amount float32) {
	if !s.IsBuilt() || s.IsDestroyed() || amount <= 0 {
		return
	}
	s.SetHealth(s.GetHealth() + amount)
}

// TileCenter is the world position in the middle of tile.
func TileCenter(tile [2]int) mgl32.Vec3 {
	return mgl32.Vec3{float32(tile[0]) + 0.5, float32(tile[1]) + 0.5, 0}
}

// TileAt returns the tile covering pos.
func TileAt(pos mgl32.Vec3) [2]int {
	return [2]int{floorInt(pos.X()), floorInt(pos.Y())}
}

func floorInt(v float32) int {
	i := int(v)
	if float32(i) > v {
		i--
	}
	return i
}
