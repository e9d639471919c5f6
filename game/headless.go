package game

import (
	"context"
	"log/slog"

	"github.com/pthm-cable/drift/config"
	"github.com/pthm-cable/drift/events"
	"github.com/pthm-cable/drift/frame"
	"github.com/pthm-cable/drift/renderer"
)

// RunHeadless runs the field against an in-memory surface as fast as
// possible until ctx is done or MaxTicks is reached.
func RunHeadless(ctx context.Context, cfg *config.Config, opts Options) error {
	queue := frame.NewQueue()
	bus := events.NewBus()
	surface := renderer.NewMemorySurface(float64(cfg.Screen.Width), float64(cfg.Screen.Height))

	s, err := newSession(cfg, opts, Host{
		Surface: func() (renderer.Surface, bool) { return surface, true },
		Frames:  queue,
		Events:  bus,
	})
	if err != nil {
		return err
	}
	defer s.close()

	s.controller.Start()
	slog.Info("starting headless simulation",
		"seed", opts.Seed,
		"max_ticks", opts.MaxTicks,
		"output_dir", s.output.Dir(),
	)

	for {
		select {
		case <-ctx.Done():
			slog.Info("interrupted", "tick", s.controller.Ticks())
			return nil
		default:
		}

		if queue.RunFrame() == 0 {
			return nil
		}

		if opts.done(s.controller.Ticks()) {
			slog.Info("max ticks reached", "tick", s.controller.Ticks())
			return nil
		}
	}
}
