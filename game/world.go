package game

import (
	"fmt"
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/memmaker/outpost/config"
	"github.com/memmaker/outpost/engine/sprite"
	"github.com/memmaker/outpost/engine/util"
	"github.com/pkg/errors"
)

// SpriteFactory creates the render object of a new entity.
type SpriteFactory interface {
	NewSprite(texture string, faction Faction) *sprite.GLObject
}

// World owns every entity of a running level and is the Level the actions execute against.
// Entities are removed and admitted between ticks, never during one.
type World struct {
	grid  *Grid
	defs  *Definitions
	arena *ActionArena

	units      map[EntityID]*Unit
	structures map[EntityID]*Structure
	spawners   map[EntityID]*Spawner
	turrets    map[EntityID]*Turret
	pending    []*Unit

	sprites SpriteFactory
	nextID  EntityID
	now     float64
	ticking bool

	// DefaultDefendRadius applies to unit templates without a defend radius.
	DefaultDefendRadius float32
}

// WorldOption adjusts a World before any entity is created.
type WorldOption func(*World)

// WithDefendRadius sets the defend radius of unit templates that define none.
func WithDefendRadius(radius float32) WorldOption {
	return func(w *World) {
		w.DefaultDefendRadius = radius
	}
}

func NewWorld(grid *Grid, defs *Definitions, opts ...WorldOption) *World {
	w := &World{
		grid:                grid,
		defs:                defs,
		arena:               NewActionArena(),
		units:               make(map[EntityID]*Unit),
		structures:          make(map[EntityID]*Structure),
		spawners:            make(map[EntityID]*Spawner),
		turrets:             make(map[EntityID]*Turret),
		DefaultDefendRadius: config.Default().DefaultDefendRadius,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// SetSpriteFactory sets the factory for new entities and gives existing ones without a sprite
// theirs.
func (w *World) SetSpriteFactory(factory SpriteFactory) {
	w.sprites = factory
	for _, structure := range w.Structures() {
		if def, ok := w.defs.Structure(structure.Template); ok && structure.GetSprite() == nil {
			structure.SetSprite(factory.NewSprite(def.Texture, structure.Faction))
		}
	}
	for _, unit := range w.Units() {
		if def, ok := w.defs.Unit(unit.Template); ok && unit.GetSprite() == nil {
			unit.SetSprite(factory.NewSprite(def.Texture, unit.Faction))
		}
	}
}

func (w *World) Grid() *Grid {
	return w.grid
}

func (w *World) Definitions() *Definitions {
	return w.defs
}

func (w *World) Arena() *ActionArena {
	return w.arena
}

func (w *World) Now() float64 {
	return w.now
}

func (w *World) newID() EntityID {
	w.nextID++
	return w.nextID
}

// SpawnUnit creates a unit of template on the free tile closest to near. During a tick the
// unit joins the world when the tick ends.
func (w *World) SpawnUnit(template string, faction Faction, near [2]int) (*Unit, error) {
	def, ok := w.defs.Unit(template)
	if !ok {
		return nil, errors.Errorf("unknown unit template %q", template)
	}
	tile, ok := w.grid.NearestFreeTile(near, config.SpawnSearchCost, w.tileHasUnit)
	if !ok {
		return nil, errors.Errorf("no free tile near %v for %s", near, template)
	}
	stats := def.UnitStats
	if stats.DefendRadius <= 0 {
		stats.DefendRadius = w.DefaultDefendRadius
	}
	id := w.newID()
	unit := NewUnit(fmt.Sprintf("%s-%d", def.Name, id), def.ID, faction, TileCenter(tile), stats)
	unit.ID = id
	if w.sprites != nil {
		unit.SetSprite(w.sprites.NewSprite(def.Texture, faction))
	}
	if w.ticking {
		w.pending = append(w.pending, unit)
	} else {
		w.units[id] = unit
	}
	util.LogGameDebug(fmt.Sprintf("[World] spawned %s (%s) at %v", unit.GetName(), faction, tile))
	return unit, nil
}

// PlaceStructure puts a structure of template on tile. Templates with a spawner or turret
// section get the matching behavior.
func (w *World) PlaceStructure(template string, faction Faction, tile [2]int, built bool) (*Structure, error) {
	def, ok := w.defs.Structure(template)
	if !ok {
		return nil, errors.Errorf("unknown structure template %q", template)
	}
	if !w.grid.IsWalkable(tile) {
		return nil, errors.Errorf("tile %v is not free for %s", tile, template)
	}
	if w.tileHasUnit(tile) {
		return nil, errors.Errorf("tile %v is occupied by a unit", tile)
	}
	id := w.newID()
	structure := NewStructure(fmt.Sprintf("%s-%d", def.Name, id), def.ID, faction, tile, def.StructureStats, built)
	structure.ID = id
	if w.sprites != nil {
		structure.SetSprite(w.sprites.NewSprite(def.Texture, faction))
	}
	w.structures[id] = structure
	w.grid.SetBlocked(tile, true)
	if def.Spawner != nil {
		w.spawners[id] = NewSpawner(structure, def.Spawner.Unit, def.Spawner.Period)
	}
	if def.Turret != nil {
		w.turrets[id] = NewTurret(structure, def.Turret.Power, def.Turret.Range, def.Turret.FirePeriod)
	}
	util.LogGameDebug(fmt.Sprintf("[World] placed %s (%s) at %v, built: %v", structure.GetName(), faction, tile, structure.IsBuilt()))
	return structure, nil
}

func (w *World) tileHasUnit(tile [2]int) bool {
	for _, unit := range w.units {
		if !unit.IsDead() && TileAt(unit.GetPosition()) == tile {
			return true
		}
	}
	for _, unit := range w.pending {
		if TileAt(unit.GetPosition()) == tile {
			return true
		}
	}
	return false
}

func (w *World) lookupUnit(id EntityID) (*Unit, bool) {
	if unit, ok := w.units[id]; ok {
		return unit, true
	}
	for _, unit := range w.pending {
		if unit.ID == id {
			return unit, true
		}
	}
	return nil, false
}

// Command replaces the orders of a unit. It reports false for unknown units.
func (w *World) Command(unitID EntityID, actions ...Action) bool {
	unit, ok := w.lookupUnit(unitID)
	if !ok {
		return false
	}
	unit.Command(w.arena, w.now, actions...)
	return true
}

// Enqueue appends an order behind the current ones.
func (w *World) Enqueue(unitID EntityID, action Action) bool {
	unit, ok := w.lookupUnit(unitID)
	if !ok {
		return false
	}
	unit.Enqueue(w.arena, w.now, action)
	return true
}

func (w *World) UnitByID(id EntityID) (*Unit, bool) {
	unit, ok := w.units[id]
	return unit, ok
}

func (w *World) StructureByID(id EntityID) (*Structure, bool) {
	structure, ok := w.structures[id]
	return structure, ok
}

func (w *World) SpawnerByID(id EntityID) (*Spawner, bool) {
	spawner, ok := w.spawners[id]
	return spawner, ok
}

func (w *World) TurretByID(id EntityID) (*Turret, bool) {
	turret, ok := w.turrets[id]
	return turret, ok
}

func (w *World) IsTraversable(pos mgl32.Vec3) bool {
	return w.grid.IsTraversable(pos)
}

func (w *World) NextWaypoint(from, to mgl32.Vec3) (mgl32.Vec3, bool) {
	return w.grid.NextWaypoint(from, to)
}

// NearestEnemy returns the closest living unit hostile to of within radius of center.
// Equal distances go to the lower id.
func (w *World) NearestEnemy(of *Unit, center mgl32.Vec3, radius float32) (*Unit, bool) {
	var best *Unit
	bestDist := float32(math.MaxFloat32)
	for _, unit := range w.Units() {
		if unit.IsDead() || !unit.IsEnemyOf(of.Faction) {
			continue
		}
		d := unit.DistanceTo(center)
		if d > radius || d >= bestDist {
			continue
		}
		best, bestDist = unit, d
	}
	return best, best != nil
}

// Units returns the admitted units ordered by id.
func (w *World) Units() []*Unit {
	units := make([]*Unit, 0, len(w.units))
	for _, unit := range w.units {
		units = append(units, unit)
	}
	sort.Slice(units, func(i, j int) bool { return units[i].ID < units[j].ID })
	return units
}

// Structures returns the structures ordered by id.
func (w *World) Structures() []*Structure {
	structures := make([]*Structure, 0, len(w.structures))
	for _, structure := range w.structures {
		structures = append(structures, structure)
	}
	sort.Slice(structures, func(i, j int) bool { return structures[i].ID < structures[j].ID })
	return structures
}

func (w *World) Spawners() []*Spawner {
	spawners := make([]*Spawner, 0, len(w.spawners))
	for _, spawner := range w.spawners {
		spawners = append(spawners, spawner)
	}
	sort.Slice(spawners, func(i, j int) bool { return spawners[i].ID < spawners[j].ID })
	return spawners
}

func (w *World) Turrets() []*Turret {
	turrets := make([]*Turret, 0, len(w.turrets))
	for _, turret := range w.turrets {
		turrets = append(turrets, turret)
	}
	sort.Slice(turrets, func(i, j int) bool { return turrets[i].ID < turrets[j].ID })
	return turrets
}

// EnemiesOf returns the living units not of faction, ordered by id.
func (w *World) EnemiesOf(faction Faction) []*Unit {
	var enemies []*Unit
	for _, unit := range w.Units() {
		if !unit.IsDead() && unit.IsEnemyOf(faction) {
			enemies = append(enemies, unit)
		}
	}
	return enemies
}

// Tick advances the world to now: spawners, then turrets, then every unit's head action.
// Dead units and destroyed structures leave the world afterwards, spawned units join.
func (w *World) Tick(now float64) {
	w.now = now
	w.ticking = true
	for _, spawner := range w.Spawners() {
		spawner.Update(now, w)
	}
	for _, turret := range w.Turrets() {
		turret.Update(now, w.EnemiesOf(turret.Faction))
	}
	for _, unit := range w.Units() {
		unit.Update(now, w, w.arena)
	}
	w.ticking = false
	w.cleanup()
}

func (w *World) cleanup() {
	for id, unit := range w.units {
		if !unit.IsDead() {
			continue
		}
		unit.ClearOrders(w.arena)
		delete(w.units, id)
		util.LogGameInfo(fmt.Sprintf("[World] %s died", unit.GetName()))
	}
	for id, structure := range w.structures {
		if !structure.IsDestroyed() {
			continue
		}
		w.grid.SetBlocked(structure.Tile(), false)
		delete(w.structures, id)
		delete(w.spawners, id)
		delete(w.turrets, id)
		util.LogGameInfo(fmt.Sprintf("[World] %s was destroyed", structure.GetName()))
	}
	for _, unit := range w.pending {
		w.units[unit.ID] = unit
	}
	w.pending = w.pending[:0]
}

// Render draws every entity that has a sprite, structures below units. Positions are scaled
// from tiles to pixels.
func (w *World) Render(ctx *sprite.RenderContext, shader sprite.Shader) {
	for _, structure := range w.Structures() {
		renderEntity(structure, ctx, shader)
	}
	for _, unit := range w.Units() {
		renderEntity(unit, ctx, shader)
	}
}

func renderEntity(entity Entity, ctx *sprite.RenderContext, shader sprite.Shader) {
	obj := entity.GetSprite()
	if obj == nil {
		return
	}
	obj.SetPosition(entity.GetPosition().Mul(ctx.TileSize()))
	obj.Render(ctx, shader)
}

var (
	turretRangeColor = mgl32.Vec3{1, 0.5, 0.1}
	rallyColor       = mgl32.Vec3{0.9, 0.9, 0.9}
)

// DrawDebug draws unit orders, turret ranges and rally points.
func (w *World) DrawDebug(drawer DebugDrawer) {
	for _, turret := range w.Turrets() {
		drawer.Circle(turret.GetPosition(), turret.Range, turretRangeColor)
	}
	for _, spawner := range w.Spawners() {
		if spawner.RallyPoint != nil {
			drawer.Line(spawner.GetPosition(), *spawner.RallyPoint, rallyColor)
		}
	}
	for _, unit := range w.Units() {
		unit.DrawOrders(w.arena, w, drawer)
	}
}
