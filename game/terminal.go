package game

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/drift/config"
	"github.com/pthm-cable/drift/events"
	"github.com/pthm-cable/drift/frame"
	"github.com/pthm-cable/drift/renderer"
)

// RunTerminal draws the field into the terminal with tcell. Mouse motion
// drives the pointer; Esc or Ctrl-C quits.
func RunTerminal(ctx context.Context, cfg *config.Config, opts Options) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("creating screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("initializing screen: %w", err)
	}
	defer screen.Fini()
	return runTerminal(ctx, screen, cfg, opts)
}

// runTerminal runs the event loop on an initialized screen.
func runTerminal(ctx context.Context, screen tcell.Screen, cfg *config.Config, opts Options) error {
	screen.EnableMouse(tcell.MouseMotionEvents)
	screen.EnableFocus()
	screen.HideCursor()

	cellW, cellH := cfg.Terminal.CellWidth, cfg.Terminal.CellHeight
	surface := renderer.NewTerminalSurface(screen, cellW, cellH, cfg.Derived.Background)
	queue := frame.NewQueue()
	bus := events.NewBus()

	s, err := newSession(cfg, opts, Host{
		Surface: func() (renderer.Surface, bool) { return surface, true },
		Frames:  queue,
		Events:  bus,
		Viewport: func() (float64, float64) {
			cols, rows := screen.Size()
			return float64(cols) * cellW, float64(rows) * cellH
		},
	})
	if err != nil {
		return err
	}
	defer s.close()

	s.controller.Start()

	fps := cfg.Screen.TargetFPS
	if fps <= 0 {
		fps = 60
	}
	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	quit := make(chan struct{})
	defer close(quit)
	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case eventChan <- ev:
			case <-quit:
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev := <-eventChan:
			if !handleTerminalEvent(ev, screen, bus, cellW, cellH) {
				slog.Info("quit requested", "tick", s.controller.Ticks())
				return nil
			}

		case <-ticker.C:
			queue.RunFrame()
			screen.Show()
			s.frameShown()
			if opts.done(s.controller.Ticks()) {
				slog.Info("max ticks reached", "tick", s.controller.Ticks())
				return nil
			}
		}
	}
}

// handleTerminalEvent translates one tcell event into bus events.
// It returns false when the user asked to quit.
func handleTerminalEvent(ev tcell.Event, screen tcell.Screen, bus *events.Bus, cellW, cellH float64) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}

	case *tcell.EventResize:
		screen.Sync()
		bus.EmitResize()

	case *tcell.EventMouse:
		col, row := ev.Position()
		// Terminals stop reporting once the mouse is outside, so the
		// border cells stand in for leaving the window.
		cols, rows := screen.Size()
		if col <= 0 || row <= 0 || col >= cols-1 || row >= rows-1 {
			bus.EmitPointerLeave()
			break
		}
		// Cell centers, in surface units
		bus.EmitPointerMove((float64(col)+0.5)*cellW, (float64(row)+0.5)*cellH)

	case *tcell.EventFocus:
		if !ev.Focused {
			bus.EmitPointerLeave()
		}
	}
	return true
}
