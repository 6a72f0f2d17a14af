package game

// DemoLevel is the level the game starts with when no level file is given: two camps divided by
// a rock ridge with a river crossing the middle.
func DemoLevel() *LevelFile {
	const width, height = 24, 16
	level := &LevelFile{
		Name:   "Outpost",
		Width:  width,
		Height: height,
		Tiles:  make([]byte, width*height),
	}
	set := func(x, y int, terrain Terrain) {
		level.Tiles[y*width+x] = byte(terrain)
	}
	for y := 2; y < height-2; y++ {
		if y == 5 || y == 10 {
			continue
		}
		set(12, y, TerrainRock)
	}
	for x := 9; x < 15; x++ {
		if x == 12 {
			continue
		}
		set(x, 7, TerrainWater)
	}

	level.Structures = []StructurePlacement{
		{Template: "base", Faction: "blue", X: 2, Y: 8, Built: 1},
		{Template: "barracks", Faction: "blue", X: 4, Y: 5, Built: 1, HasRally: 1, RallyX: 9.5, RallyY: 5.5},
		{Template: "turret", Faction: "blue", X: 7, Y: 10},
		{Template: "base", Faction: "red", X: 21, Y: 8, Built: 1},
		{Template: "barracks", Faction: "red", X: 19, Y: 10, Built: 1, HasRally: 1, RallyX: 14.5, RallyY: 10.5},
		{Template: "turret", Faction: "red", X: 17, Y: 5, Built: 1},
	}
	level.Units = []UnitPlacement{
		{Template: "worker", Faction: "blue", X: 3, Y: 10, Stance: StanceBuild},
		{Template: "soldier", Faction: "blue", X: 6, Y: 6},
		{Template: "soldier", Faction: "red", X: 18, Y: 7, Stance: StanceAttack},
		{Template: "worker", Faction: "red", X: 20, Y: 8},
	}
	return level
}
