package main

import (
	"fmt"

	"github.com/faiface/mainthread"
	"github.com/memmaker/outpost/config"
	"github.com/memmaker/outpost/engine/glhf"
	"github.com/memmaker/outpost/engine/sprite"
	"github.com/memmaker/outpost/engine/util"
	"github.com/memmaker/outpost/game"
)

// maxCatchUpSteps bounds the simulation steps of one frame after a stall.
const maxCatchUpSteps = 8

type outpostApp struct {
	*glWindow
	settings config.Settings
	world    *game.World
	clock    *util.FixedStep
	timer    *util.Timer

	quadShader *glhf.Shader
	lineShader *glhf.Shader
	renderCtx  *sprite.RenderContext
	terrain    *terrainLayer
	lines      *lineBatch
}

// runWindowed opens the window and drives the world until it is closed. Every GL call happens
// on the main thread.
func runWindowed(settings config.Settings, world *game.World, title string) {
	mainthread.Call(func() {
		window, terminate := initOpenGL(title, settings.WindowWidth, settings.WindowHeight)
		app := &outpostApp{
			glWindow: &glWindow{
				Window:        window,
				Title:         title,
				TerminateFunc: terminate,
			},
			settings: settings,
			world:    world,
			clock:    util.NewFixedStep(settings.SimulationStep, maxCatchUpSteps),
			timer:    util.NewTimer(),
		}
		app.UpdateFunc = app.Update
		app.DrawFunc = app.Draw

		app.quadShader = loadQuadShader(settings.WindowWidth, settings.WindowHeight)
		app.lineShader = loadLineShader(settings.WindowWidth, settings.WindowHeight)

		app.renderCtx = sprite.NewRenderContext(settings.AssetRoot, glhfBackend{shader: app.quadShader})
		app.renderCtx.SetTileSize(settings.TileSize)
		world.SetSpriteFactory(spriteFactory{ctx: app.renderCtx, settings: settings})
		app.terrain = newTerrainLayer(world.Grid(), settings.TileSize)
		if settings.DrawActions {
			app.lines = newLineBatch(app.lineShader, settings.TileSize)
		}

		app.Run()

		if app.lines != nil {
			app.lines.Release()
		}
		app.renderCtx.Release()
		util.LogSystemInfo(fmt.Sprintf("[App] Closed after %.1fs simulated\n%s", app.clock.Now(), app.timer.String()))
	})
}

func (a *outpostApp) Update(elapsed float64) {
	stop := a.timer.Start("update")
	for steps := a.clock.Advance(elapsed); steps > 0; steps-- {
		a.world.Tick(a.clock.Next())
	}
	stop()
}

func (a *outpostApp) Draw(elapsed float64) {
	stop := a.timer.Start("render")
	bg := a.settings.BackgroundColor
	glhf.Clear(bg.X(), bg.Y(), bg.Z(), 1)

	a.quadShader.Begin()
	a.terrain.Render(a.renderCtx, a.quadShader)
	a.world.Render(a.renderCtx, a.quadShader)
	a.quadShader.End()

	if a.lines != nil {
		a.world.DrawDebug(a.lines)
		a.lines.Flush()
	}
	stop()
}
