package game

import (
	"context"
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/drift/config"
	"github.com/pthm-cable/drift/events"
	"github.com/pthm-cable/drift/frame"
	"github.com/pthm-cable/drift/renderer"
)

// RunGraphics opens a raylib window and runs the field until the window
// closes, ctx is done or MaxTicks is reached.
func RunGraphics(ctx context.Context, cfg *config.Config, opts Options) error {
	if cfg.Screen.Resizable {
		rl.SetConfigFlags(rl.FlagWindowResizable)
	}
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), cfg.Screen.Title)
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	queue := frame.NewQueue()
	bus := events.NewBus()

	s, err := newSession(cfg, opts, Host{
		Surface: func() (renderer.Surface, bool) { return renderer.NewRaylibSurface(cfg.Derived.Background) },
		Frames:  queue,
		Events:  bus,
		Viewport: func() (float64, float64) {
			return float64(rl.GetScreenWidth()), float64(rl.GetScreenHeight())
		},
	})
	if err != nil {
		return err
	}
	defer s.close()

	s.controller.Start()

	input := NewWindowInput(bus)
	for !rl.WindowShouldClose() {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		input.Poll()
		handleKeys(bus)

		rl.BeginDrawing()
		if queue.RunFrame() == 0 {
			rl.ClearBackground(rl.Black)
		}
		rl.EndDrawing()
		s.frameShown()

		if opts.done(s.controller.Ticks()) {
			slog.Info("max ticks reached", "tick", s.controller.Ticks())
			break
		}
	}
	return nil
}

// WindowInput turns raylib's polled window state into bus events.
type WindowInput struct {
	bus       *events.Bus
	inside    bool
	lastX     float64
	lastY     float64
	hasMotion bool
}

// NewWindowInput creates a poller emitting on bus.
func NewWindowInput(bus *events.Bus) *WindowInput {
	return &WindowInput{bus: bus}
}

// Poll emits resize, pointer move and pointer leave events for this frame.
func (in *WindowInput) Poll() {
	if rl.IsWindowResized() {
		in.bus.EmitResize()
	}

	if !rl.IsCursorOnScreen() {
		if in.inside {
			in.inside = false
			in.hasMotion = false
			in.bus.EmitPointerLeave()
		}
		return
	}
	in.inside = true

	// Report desktop coordinates; the controller subtracts the window offset.
	mouse := rl.GetMousePosition()
	win := rl.GetWindowPosition()
	x, y := float64(mouse.X+win.X), float64(mouse.Y+win.Y)
	if in.hasMotion && x == in.lastX && y == in.lastY {
		return
	}
	in.lastX, in.lastY, in.hasMotion = x, y, true
	in.bus.EmitPointerMove(x, y)
}
