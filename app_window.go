package main

import (
	"fmt"
	"math"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/memmaker/outpost/engine/glhf"
	"github.com/memmaker/outpost/engine/util"
)

// glWindow runs the frame loop: UpdateFunc with the elapsed wall time, then DrawFunc, then
// swap. The window title shows the frame rate.
type glWindow struct {
	Window        *glfw.Window
	Title         string
	TerminateFunc func()
	UpdateFunc    func(elapsed float64)
	DrawFunc      func(elapsed float64)

	ticks           uint64
	FramesPerSecond float64
	FPSRunningAvg   float64
	FPSMin          float64
	FPSMax          float64
}

func (a *glWindow) Run() {
	defer a.TerminateFunc()
	previousTime := glfw.GetTime()
	for !a.Window.ShouldClose() {
		now := glfw.GetTime()
		elapsed := now - previousTime
		previousTime = now

		a.UpdateFunc(elapsed)
		a.DrawFunc(elapsed)

		if elapsed > 0 {
			a.FramesPerSecond = 1.0 / elapsed
		}
		if a.ticks%60 == 0 {
			a.Window.SetTitle(fmt.Sprintf("%s - FPS: %.0f (Avg: %.0f, Min: %.0f, Max: %.0f)", a.Title, a.FramesPerSecond, a.FPSRunningAvg, a.FPSMin, a.FPSMax))
			a.FPSRunningAvg = a.FramesPerSecond * (1.0 / 60.0)
			a.FPSMin = math.MaxFloat64
			a.FPSMax = 0
		} else {
			a.FPSRunningAvg += a.FramesPerSecond * (1.0 / 60.0)
			a.FPSMin = math.Min(a.FPSMin, a.FramesPerSecond)
			a.FPSMax = math.Max(a.FPSMax, a.FramesPerSecond)
		}

		a.Window.SwapBuffers()
		glfw.PollEvents()
		a.ticks++
	}
}

// initOpenGL opens a fixed size window with a 3.3 core context. It must run on the main thread.
func initOpenGL(title string, width, height int) (*glfw.Window, func()) {
	if err := glfw.Init(); err != nil {
		util.LogGlError(fmt.Sprintf("[Window] glfw: %s", err.Error()))
		panic(err)
	}
	glfw.WindowHint(glfw.ContextVersionMajor, 3)
	glfw.WindowHint(glfw.ContextVersionMinor, 3)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Resizable, glfw.False)

	win, err := glfw.CreateWindow(width, height, title, nil, nil)
	if err != nil {
		glfw.Terminate()
		panic(err)
	}
	win.MakeContextCurrent()
	glfw.SwapInterval(1)

	glhf.Init()

	util.LogGlInfo(fmt.Sprintf("[Window] OpenGL version %s", gl.GoStr(gl.GetString(gl.VERSION))))

	// quads are flat and drawn back to front
	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.CULL_FACE)

	return win, func() {
		glfw.Terminate()
	}
}
