package game

import (
	"compress/gzip"
	"os"
	"path/filepath"
	"testing"

	"github.com/Tnze/go-mc/nbt"
	"github.com/go-gl/mathgl/mgl32"
)

func testLevel() *LevelFile {
	level := &LevelFile{
		Name:   "crossing",
		Width:  8,
		Height: 6,
		Tiles:  make([]byte, 8*6),
		Structures: []StructurePlacement{
			{Template: "barracks", Faction: "blue", X: 1, Y: 1, Built: 1, HasRally: 1, RallyX: 3.5, RallyY: 2.5},
			{Template: "turret", Faction: "red", X: 6, Y: 4},
		},
		Units: []UnitPlacement{
			{Template: "worker", Faction: "blue", X: 2, Y: 1},
			{Template: "soldier", Faction: "red", X: 6, Y: 3, Stance: StanceAttack},
		},
	}
	for y := 0; y < 4; y++ {
		level.Tiles[y*8+4] = byte(TerrainRock)
	}
	return level
}

func TestLevelRoundTrip(t *testing.T) {
	file := filepath.Join(t.TempDir(), "crossing.lvl")
	original := testLevel()
	if err := SaveLevel(file, original); err != nil {
		t.Fatal(err)
	}

	loaded, err := LoadLevel(file)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Name != original.Name || loaded.Width != original.Width || loaded.Height != original.Height {
		t.Errorf("header mismatch: %s %dx%d", loaded.Name, loaded.Width, loaded.Height)
	}
	if string(loaded.Tiles) != string(original.Tiles) {
		t.Error("tiles differ")
	}
	if len(loaded.Structures) != 2 || loaded.Structures[0] != original.Structures[0] || loaded.Structures[1] != original.Structures[1] {
		t.Errorf("structures differ: %+v", loaded.Structures)
	}
	if len(loaded.Units) != 2 || loaded.Units[0] != original.Units[0] || loaded.Units[1] != original.Units[1] {
		t.Errorf("units differ: %+v", loaded.Units)
	}
}

func TestLoadLevelErrors(t *testing.T) {
	dir := t.TempDir()
	if _, err := LoadLevel(filepath.Join(dir, "missing.lvl")); err == nil {
		t.Error("expected an error for a missing file")
	}
	plain := filepath.Join(dir, "plain.lvl")
	if err := os.WriteFile(plain, []byte("not gzip"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadLevel(plain); err == nil {
		t.Error("expected an error for a file that is not gzip")
	}
	broken := testLevel()
	broken.Tiles = broken.Tiles[:3]
	if err := SaveLevel(filepath.Join(dir, "broken.lvl"), broken); err == nil {
		t.Error("saved a level with the wrong tile count")
	}

	// 65536*65536 wraps to 0 in int32, which an empty tile array would match
	huge := filepath.Join(dir, "huge.lvl")
	writeRawLevel(t, huge, LevelFile{Name: "huge", Width: 65536, Height: 65536})
	if _, err := LoadLevel(huge); err == nil {
		t.Error("loaded a level whose size overflows")
	}
	if _, err := NewWorldFromLevel(&LevelFile{Width: 65536, Height: 65536}, DefaultDefinitions()); err == nil {
		t.Error("built a world from a level whose size overflows")
	}
	if err := SaveLevel(filepath.Join(dir, "wide.lvl"), &LevelFile{Width: MaxLevelSide + 1, Height: 1, Tiles: make([]byte, MaxLevelSide+1)}); err == nil {
		t.Error("saved a level wider than the limit")
	}
}

// writeRawLevel encodes level without validating it.
func writeRawLevel(t *testing.T, filename string, level LevelFile) {
	t.Helper()
	file, err := os.Create(filename)
	if err != nil {
		t.Fatal(err)
	}
	defer file.Close()
	gzipWriter := gzip.NewWriter(file)
	if err := nbt.NewEncoder(gzipWriter).Encode(level, ""); err != nil {
		t.Fatal(err)
	}
	if err := gzipWriter.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestWorldFromLevel(t *testing.T) {
	w, err := NewWorldFromLevel(testLevel(), DefaultDefinitions())
	if err != nil {
		t.Fatal(err)
	}
	if w.Grid().IsWalkable([2]int{4, 0}) || !w.Grid().IsWalkable([2]int{4, 5}) {
		t.Error("terrain not applied")
	}
	if w.Grid().IsWalkable([2]int{1, 1}) {
		t.Error("structure tile still walkable")
	}
	if len(w.Structures()) != 2 || len(w.Units()) != 2 {
		t.Fatalf("expected 2 structures and 2 units, got %d and %d", len(w.Structures()), len(w.Units()))
	}
	spawners := w.Spawners()
	if len(spawners) != 1 || spawners[0].RallyPoint == nil || *spawners[0].RallyPoint != (mgl32.Vec3{3.5, 2.5, 0}) {
		t.Errorf("rally point not restored")
	}
	turrets := w.Turrets()
	if len(turrets) != 1 || turrets[0].IsBuilt() {
		t.Errorf("expected one unbuilt turret")
	}
	red := w.Units()[1]
	if action, ok := red.CurrentAction(w.Arena()); !ok || action.Kind != ActionIdleAttack {
		t.Errorf("attack stance not applied")
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	original := testLevel()
	w, err := NewWorldFromLevel(original, DefaultDefinitions())
	if err != nil {
		t.Fatal(err)
	}
	snapshot := w.Snapshot(original.Name)
	if string(snapshot.Tiles) != string(original.Tiles) {
		t.Error("snapshot tiles differ")
	}
	if len(snapshot.Structures) != 2 || snapshot.Structures[0] != original.Structures[0] || snapshot.Structures[1] != original.Structures[1] {
		t.Errorf("snapshot structures differ: %+v", snapshot.Structures)
	}
	if len(snapshot.Units) != 2 || snapshot.Units[0] != original.Units[0] || snapshot.Units[1] != original.Units[1] {
		t.Errorf("snapshot units differ: %+v", snapshot.Units)
	}
}

func TestDemoLevel(t *testing.T) {
	w, err := NewWorldFromLevel(DemoLevel(), DefaultDefinitions())
	if err != nil {
		t.Fatal(err)
	}
	if len(w.Structures()) != 6 || len(w.Units()) != 4 {
		t.Fatalf("expected 6 structures and 4 units, got %d and %d", len(w.Structures()), len(w.Units()))
	}
	var worker *Unit
	for _, unit := range w.Units() {
		if unit.Template == "worker" && unit.Faction == "blue" {
			worker = unit
		}
	}
	head, ok := worker.CurrentAction(w.Arena())
	if !ok || head.Kind != ActionBuildOrRepair {
		t.Fatalf("expected the blue worker to start building, got %v", head)
	}
	site, ok := w.StructureByID(head.Data.(*BuildOrRepairData).Target)
	if !ok || site.Template != "turret" || site.Faction != "blue" {
		t.Fatalf("expected the blue turret as build site, got %v", site)
	}

	const step = 1.0 / 30
	for i := 1; i <= 20*30; i++ {
		w.Tick(float64(i) * step)
	}
	if !site.IsBuilt() {
		t.Errorf("turret not built after 20s, progress %v", site.BuildProgress())
	}
	snapshot := w.Snapshot("after")
	if len(snapshot.Units) <= 4 {
		t.Errorf("expected spawned units in the snapshot, got %d", len(snapshot.Units))
	}
}
