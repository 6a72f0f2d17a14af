package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/faiface/mainthread"
	"github.com/memmaker/outpost/config"
	"github.com/memmaker/outpost/engine/util"
	"github.com/memmaker/outpost/game"
	"github.com/pkg/errors"
)

func main() {
	settings := config.Default()
	var tileSize float64
	var savePath string
	flag.StringVar(&settings.AssetRoot, "assets", settings.AssetRoot, "asset directory, textures are read from <assets>/models")
	flag.StringVar(&settings.LevelFile, "level", settings.LevelFile, "level file (gzip NBT), the demo level when empty")
	flag.StringVar(&settings.DefinitionsFile, "defs", settings.DefinitionsFile, "unit and structure definitions (JSON), built-ins when empty")
	flag.Float64Var(&tileSize, "tile", float64(settings.TileSize), "tile size in pixels")
	flag.IntVar(&settings.WindowWidth, "width", settings.WindowWidth, "window width")
	flag.IntVar(&settings.WindowHeight, "height", settings.WindowHeight, "window height")
	flag.BoolVar(&settings.Headless, "headless", settings.Headless, "simulate without a window")
	flag.Float64Var(&settings.HeadlessDuration, "duration", settings.HeadlessDuration, "simulated seconds of a headless run")
	flag.Float64Var(&settings.SimulationStep, "step", settings.SimulationStep, "simulation step in seconds")
	flag.BoolVar(&settings.DrawActions, "debug", settings.DrawActions, "draw unit orders, turret ranges and rally points")
	flag.StringVar(&settings.LogLevel, "log", settings.LogLevel, "log level: error, warning, info or debug")
	flag.StringVar(&savePath, "save", "", "headless only: write the final state as a level file")
	flag.Parse()
	settings.TileSize = float32(tileSize)

	level, err := util.ParseLogLevel(settings.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	util.SetLogLevel(level, util.LogAll)

	if settings.SimulationStep <= 0 || settings.TileSize <= 0 {
		fmt.Fprintln(os.Stderr, "step and tile size must be positive")
		os.Exit(2)
	}

	world, name, err := loadWorld(settings)
	if err != nil {
		util.LogIOError(fmt.Sprintf("[Main] %+v", err))
		os.Exit(1)
	}

	if settings.Headless {
		if err := runHeadless(settings, world, name, savePath); err != nil {
			util.LogSystemError(fmt.Sprintf("[Main] %+v", err))
			os.Exit(1)
		}
		return
	}
	mainthread.Run(func() {
		runWindowed(settings, world, "Outpost - "+name)
	})
}

// loadWorld reads the definitions and the level named in settings, falling back to the
// built-in ones.
func loadWorld(settings config.Settings) (*game.World, string, error) {
	defs := game.DefaultDefinitions()
	if settings.DefinitionsFile != "" {
		loaded, err := game.LoadDefinitions(settings.DefinitionsFile)
		if err != nil {
			return nil, "", err
		}
		defs = loaded
	}

	level := game.DemoLevel()
	if settings.LevelFile != "" {
		loaded, err := game.LoadLevel(settings.LevelFile)
		if err != nil {
			return nil, "", err
		}
		level = loaded
	}
	name := level.Name
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(settings.LevelFile), filepath.Ext(settings.LevelFile))
	}

	world, err := game.NewWorldFromLevel(level, defs, game.WithDefendRadius(settings.DefaultDefendRadius))
	if err != nil {
		return nil, "", errors.Wrapf(err, "level %s", name)
	}
	util.LogSystemInfo(fmt.Sprintf("[Main] Level %s: %dx%d, %d structures, %d units", name, level.Width, level.Height, len(world.Structures()), len(world.Units())))
	return world, name, nil
}
