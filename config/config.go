package config

import "github.com/go-gl/mathgl/mgl32"

const (
	// ArrivalEpsilon is the distance below which a unit counts as having reached a point.
	ArrivalEpsilon = 0.05
	// BuildRange is how close a worker has to stand to a structure's center to work on it.
	BuildRange = 1.5
	// SpawnSearchCost bounds the search for a free tile around a spawner.
	SpawnSearchCost = 60.0
	// DebugCircleSegments is the resolution of debug circles.
	DebugCircleSegments = 24
)

// Settings is everything the game reads at startup. Flags in main override the defaults.
type Settings struct {
	AssetRoot       string
	LevelFile       string
	DefinitionsFile string

	WindowWidth  int
	WindowHeight int
	TileSize     float32

	// Simulation step for the headless runner, in seconds.
	SimulationStep float64
	// Simulated time of a headless run, in seconds.
	HeadlessDuration float64
	Headless         bool

	DefaultDefendRadius float32
	LogLevel            string
	DrawActions         bool

	BackgroundColor mgl32.Vec3
	FactionColors   map[string]mgl32.Vec3
}

func Default() Settings {
	return Settings{
		AssetRoot:           "./assets",
		LevelFile:           "",
		DefinitionsFile:     "",
		WindowWidth:         1024,
		WindowHeight:        768,
		TileSize:            32,
		SimulationStep:      1.0 / 30.0,
		HeadlessDuration:    60,
		DefaultDefendRadius: 4,
		LogLevel:            "info",
		BackgroundColor:     mgl32.Vec3{0.12, 0.14, 0.1},
		FactionColors: map[string]mgl32.Vec3{
			"blue": {0.2, 0.4, 1},
			"red":  {1, 0.25, 0.2},
		},
	}
}

// FactionColor returns the configured color of a faction, or grey.
func (s Settings) FactionColor(faction string) mgl32.Vec3 {
	if c, ok := s.FactionColors[faction]; ok {
		return c
	}
	return mgl32.Vec3{0.6, 0.6, 0.6}
}
