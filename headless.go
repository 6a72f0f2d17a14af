package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/memmaker/outpost/config"
	"github.com/memmaker/outpost/engine/util"
	"github.com/memmaker/outpost/game"
	"github.com/pkg/errors"
	"golang.org/x/term"
)

// runHeadless advances the world in fixed steps for the configured duration without a window
// and prints a summary. A non-empty savePath receives a snapshot of the final state.
func runHeadless(settings config.Settings, world *game.World, name, savePath string) error {
	clock := util.NewFixedStep(settings.SimulationStep, 0)
	timer := util.NewTimer()
	steps := 0
	for clock.Now()+settings.SimulationStep <= settings.HeadlessDuration+1e-9 {
		stop := timer.Start("tick")
		world.Tick(clock.Next())
		stop()
		steps++
	}
	util.LogSystemInfo(fmt.Sprintf("[Headless] Simulated %.1fs in %d steps", clock.Now(), steps))

	writeReport(os.Stdout, world, reportWidth())
	fmt.Fprintln(os.Stdout, timer.String())

	if savePath == "" {
		return nil
	}
	if err := game.SaveLevel(savePath, world.Snapshot(name)); err != nil {
		return errors.Wrap(err, "save snapshot")
	}
	util.LogIOInfo(fmt.Sprintf("[Headless] Saved snapshot to %s", savePath))
	return nil
}

// reportWidth is the terminal width, or 80 when stdout is not a terminal.
func reportWidth() int {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return 80
	}
	width, _, err := term.GetSize(fd)
	if err != nil || width < 40 {
		return 80
	}
	return width
}

func writeReport(out io.Writer, world *game.World, width int) {
	rule := strings.Repeat("-", width)
	fmt.Fprintf(out, "%s\nt=%.1fs\n", rule, world.Now())
	for _, s := range world.Summary() {
		templates := make([]string, 0, len(s.Units))
		for template := range s.Units {
			templates = append(templates, template)
		}
		sort.Strings(templates)
		parts := make([]string, 0, len(templates))
		for _, template := range templates {
			parts = append(parts, fmt.Sprintf("%s x%d", template, s.Units[template]))
		}
		line := fmt.Sprintf("%-8s units: %d (%s) hp: %.0f structures: %d (%d unbuilt)",
			s.Faction, s.UnitCount(), strings.Join(parts, ", "), s.TotalUnitHealth, s.Structures, s.UnbuiltSites)
		fmt.Fprintln(out, util.FitWidth(line, width))
	}
	fmt.Fprintln(out, rule)
}
