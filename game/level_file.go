package game

import (
	"compress/gzip"
	"fmt"
	"os"

	"github.com/Tnze/go-mc/nbt"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/memmaker/outpost/engine/util"
	"github.com/pkg/errors"
)

// LevelFile is the on-disk form of a level: a gzip compressed NBT compound.
type LevelFile struct {
	Name       string               `nbt:"name"`
	Width      int32                `nbt:"width"`
	Height     int32                `nbt:"height"`
	Tiles      []byte               `nbt:"tiles"`
	Structures []StructurePlacement `nbt:"structures"`
	Units      []UnitPlacement      `nbt:"units"`
}

type StructurePlacement struct {
	Template string `nbt:"template"`
	Faction  string `nbt:"faction"`
	X        int32  `nbt:"x"`
	Y        int32  `nbt:"y"`
	// Built and HasRally are 0 or 1.
	Built    byte    `nbt:"built"`
	HasRally byte    `nbt:"has_rally"`
	RallyX   float32 `nbt:"rally_x"`
	RallyY   float32 `nbt:"rally_y"`
}

// UnitPlacement puts a unit on a tile. Stance "attack" starts it with an IdleAttack order,
// "build" sends it to the closest unfinished structure of its faction, anything else leaves it
// to defend its spot.
type UnitPlacement struct {
	Template string `nbt:"template"`
	Faction  string `nbt:"faction"`
	X        int32  `nbt:"x"`
	Y        int32  `nbt:"y"`
	Stance   string `nbt:"stance"`
}

const (
	StanceAttack = "attack"
	StanceBuild  = "build"
)

func LoadLevel(filename string) (*LevelFile, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, errors.Wrap(err, "opening level")
	}
	defer file.Close()
	gzipReader, err := gzip.NewReader(file)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", filename)
	}
	defer gzipReader.Close()
	var level LevelFile
	if _, err = nbt.NewDecoder(gzipReader).Decode(&level); err != nil {
		return nil, errors.Wrapf(err, "decoding %s", filename)
	}
	if err = level.validate(); err != nil {
		return nil, errors.Wrapf(err, "invalid level %s", filename)
	}
	util.LogIOInfo(fmt.Sprintf("[Level] loaded %s (%dx%d, %d structures, %d units)", level.Name, level.Width, level.Height, len(level.Structures), len(level.Units)))
	return &level, nil
}

func SaveLevel(filename string, level *LevelFile) error {
	if err := level.validate(); err != nil {
		return errors.Wrap(err, "refusing to save")
	}
	file, err := os.Create(filename)
	if err != nil {
		return errors.Wrap(err, "creating level")
	}
	defer file.Close()
	gzipWriter := gzip.NewWriter(file)
	if err = nbt.NewEncoder(gzipWriter).Encode(*level, ""); err != nil {
		return errors.Wrapf(err, "encoding %s", filename)
	}
	if err = gzipWriter.Close(); err != nil {
		return errors.Wrapf(err, "writing %s", filename)
	}
	return nil
}

// MaxLevelSide bounds the width and height of a level.
const MaxLevelSide = 1024

func (l *LevelFile) validate() error {
	if l.Width <= 0 || l.Height <= 0 || l.Width > MaxLevelSide || l.Height > MaxLevelSide {
		return errors.Errorf("invalid size %dx%d", l.Width, l.Height)
	}
	tiles := int(l.Width) * int(l.Height)
	if len(l.Tiles) != tiles {
		return errors.Errorf("expected %d tiles, got %d", tiles, len(l.Tiles))
	}
	return nil
}

// NewWorldFromLevel builds the grid of level and places its structures and units.
func NewWorldFromLevel(level *LevelFile, defs *Definitions, opts ...WorldOption) (*World, error) {
	if err := level.validate(); err != nil {
		return nil, err
	}
	grid := NewGrid(int(level.Width), int(level.Height))
	for i, tile := range level.Tiles {
		if Terrain(tile) != TerrainGround {
			grid.SetTerrain([2]int{i % int(level.Width), i / int(level.Width)}, Terrain(tile))
		}
	}
	world := NewWorld(grid, defs, opts...)
	if err := world.Populate(level); err != nil {
		return nil, err
	}
	return world, nil
}

// Populate places the structures and units of level into the world.
func (w *World) Populate(level *LevelFile) error {
	for _, p := range level.Structures {
		tile := [2]int{int(p.X), int(p.Y)}
		structure, err := w.PlaceStructure(p.Template, Faction(p.Faction), tile, p.Built != 0)
		if err != nil {
			return errors.Wrapf(err, "placing %s", p.Template)
		}
		if spawner, ok := w.SpawnerByID(structure.ID); ok && p.HasRally != 0 {
			spawner.SetRallyPoint(mgl32.Vec3{p.RallyX, p.RallyY, 0})
		}
	}
	for _, p := range level.Units {
		tile := [2]int{int(p.X), int(p.Y)}
		unit, err := w.SpawnUnit(p.Template, Faction(p.Faction), tile)
		if err != nil {
			return errors.Wrapf(err, "placing %s", p.Template)
		}
		switch p.Stance {
		case StanceAttack:
			w.Command(unit.ID, NewIdleAttackAction())
		case StanceBuild:
			if site, ok := w.closestBuildSite(unit); ok {
				w.Command(unit.ID, NewBuildOrRepairAction(site.ID))
			}
		}
	}
	return nil
}

func (w *World) closestBuildSite(unit *Unit) (*Structure, bool) {
	var best *Structure
	for _, structure := range w.Structures() {
		if structure.Faction != unit.Faction || structure.IsComplete() {
			continue
		}
		if best == nil || unit.DistanceTo(structure.GetPosition()) < unit.DistanceTo(best.GetPosition()) {
			best = structure
		}
	}
	return best, best != nil
}

// Snapshot captures terrain and entities in level file form. Orders are reduced to the
// stance they started from.
func (w *World) Snapshot(name string) *LevelFile {
	level := &LevelFile{
		Name:   name,
		Width:  int32(w.grid.Width()),
		Height: int32(w.grid.Height()),
		Tiles:  make([]byte, w.grid.Width()*w.grid.Height()),
	}
	for y := 0; y < w.grid.Height(); y++ {
		for x := 0; x < w.grid.Width(); x++ {
			level.Tiles[y*w.grid.Width()+x] = byte(w.grid.Terrain([2]int{x, y}))
		}
	}
	for _, structure := range w.Structures() {
		tile := structure.Tile()
		p := StructurePlacement{
			Template: structure.Template,
			Faction:  string(structure.Faction),
			X:        int32(tile[0]),
			Y:        int32(tile[1]),
		}
		if structure.IsBuilt() {
			p.Built = 1
		}
		if spawner, ok := w.SpawnerByID(structure.ID); ok && spawner.RallyPoint != nil {
			p.HasRally = 1
			p.RallyX, p.RallyY = spawner.RallyPoint.X(), spawner.RallyPoint.Y()
		}
		level.Structures = append(level.Structures, p)
	}
	for _, unit := range w.Units() {
		tile := TileAt(unit.GetPosition())
		p := UnitPlacement{
			Template: unit.Template,
			Faction:  string(unit.Faction),
			X:        int32(tile[0]),
			Y:        int32(tile[1]),
		}
		if action, ok := unit.CurrentAction(w.arena); ok {
			switch action.Kind {
			case ActionIdleAttack:
				p.Stance = StanceAttack
			case ActionBuildOrRepair:
				p.Stance = StanceBuild
			}
		}
		level.Units = append(level.Units, p)
	}
	return level
}
