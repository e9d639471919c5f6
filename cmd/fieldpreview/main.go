// Field preview tool - live particle field with sliders for the physics.
//
// Usage: go run ./cmd/fieldpreview [-config path]
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/drift/config"
	"github.com/pthm-cable/drift/events"
	"github.com/pthm-cable/drift/frame"
	"github.com/pthm-cable/drift/game"
	"github.com/pthm-cable/drift/renderer"
	"github.com/pthm-cable/drift/systems"
)

const (
	windowWidth  = 1100
	windowHeight = 720
	panelWidth   = 300
)

// slider is one tunable integrator parameter.
type slider struct {
	label    string
	min, max float32
	format   string
	get      func(*systems.Integrator) float64
	set      func(*systems.Integrator, float64)
}

var sliders = []slider{
	{
		label: "Force radius", min: 20, max: 400, format: "%.0f",
		get: func(in *systems.Integrator) float64 { return in.Force.Radius },
		set: func(in *systems.Integrator, v float64) { in.Force.Radius = v },
	},
	{
		label: "Force strength", min: 0, max: 1, format: "%.3f",
		get: func(in *systems.Integrator) float64 { return in.Force.Strength },
		set: func(in *systems.Integrator, v float64) { in.Force.Strength = v },
	},
	{
		label: "Damping", min: 0.9, max: 1, format: "%.4f",
		get: func(in *systems.Integrator) float64 { return in.Damping },
		set: func(in *systems.Integrator, v float64) { in.Damping = v },
	},
	{
		label: "Drift", min: -0.02, max: 0.02, format: "%.4f",
		get: func(in *systems.Integrator) float64 { return in.Drift },
		set: func(in *systems.Integrator, v float64) { in.Drift = v },
	},
}

func main() {
	configPath := flag.String("config", "", "Path to config file (empty = use defaults)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	rl.SetConfigFlags(rl.FlagWindowResizable)
	rl.InitWindow(windowWidth, windowHeight, "Field Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	queue := frame.NewQueue()
	bus := events.NewBus()
	settings := game.SettingsFromConfig(cfg)
	defaults := settings.Integrator

	controller := game.NewController(settings, game.Host{
		Surface: func() (renderer.Surface, bool) { return renderer.NewRaylibSurface(cfg.Derived.Background) },
		Frames:  queue,
		Events:  bus,
		Viewport: func() (float64, float64) {
			return float64(rl.GetScreenWidth()), float64(rl.GetScreenHeight())
		},
	}, systems.NewSource(time.Now().UnixNano()))
	controller.Start()
	defer controller.Stop()

	input := game.NewWindowInput(bus)
	tuned := defaults

	for !rl.WindowShouldClose() {
		input.Poll()

		rl.BeginDrawing()
		queue.RunFrame()

		// Control panel
		panelX := float32(rl.GetScreenWidth() - panelWidth)
		rl.DrawRectangle(int32(panelX), 0, panelWidth, int32(rl.GetScreenHeight()), rl.Fade(rl.Black, 0.6))
		panelX += 10
		panelY := float32(10)

		rl.DrawText("Field Parameters", int32(panelX), int32(panelY), 20, rl.RayWhite)
		panelY += 35

		changed := false
		for _, s := range sliders {
			current := float32(s.get(&tuned))
			rl.DrawText(s.label, int32(panelX), int32(panelY), 14, rl.LightGray)
			panelY += 18
			next := gui.SliderBar(
				rl.Rectangle{X: panelX, Y: panelY, Width: panelWidth - 90, Height: 20},
				"", "",
				current, s.min, s.max,
			)
			rl.DrawText(fmt.Sprintf(s.format, s.get(&tuned)), int32(panelX+panelWidth-80), int32(panelY+2), 16, rl.RayWhite)
			if next != current {
				s.set(&tuned, float64(next))
				changed = true
			}
			panelY += 35
		}
		if changed {
			controller.Tune(tuned)
		}

		panelY += 10
		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 130, Height: 30}, "Respawn") {
			bus.EmitResize()
		}
		if gui.Button(rl.Rectangle{X: panelX + 140, Y: panelY, Width: 130, Height: 30}, "Reset All") {
			tuned = defaults
			controller.Tune(tuned)
		}
		panelY += 45

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 270, Height: 30}, "Print YAML") {
			printYAML(tuned)
		}
		panelY += 45

		b := controller.Bounds()
		rl.DrawText(fmt.Sprintf("Ticks: %d  Field: %.0fx%.0f", controller.Ticks(), b.Width, b.Height), int32(panelX), int32(panelY), 14, rl.LightGray)
		if p := controller.Pointer(); p.Active {
			rl.DrawText(fmt.Sprintf("Pointer: %.0f, %.0f", p.X, p.Y), int32(panelX), int32(panelY+18), 14, rl.LightGray)
		}

		rl.EndDrawing()
	}
}

// printYAML writes the tuned values as a config fragment to stdout.
func printYAML(in systems.Integrator) {
	fmt.Printf("force:\n  radius: %g\n  strength: %g\nphysics:\n  damping: %g\n  drift: %g\n",
		in.Force.Radius, in.Force.Strength, in.Damping, in.Drift)
}
