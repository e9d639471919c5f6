package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pthm-cable/drift/config"
	"github.com/pthm-cable/drift/game"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml or config.toml (empty = use defaults)")
	backend := flag.String("backend", "raylib", "Display backend: raylib, terminal or headless")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	statsWindow := flag.Float64("stats-window", 0, "Stats window size in seconds (0 = use config)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxTicks := flag.Int("max-ticks", 0, "Stop after N ticks (0 = unlimited)")
	logLevel := flag.String("log-level", "info", "Log level: debug, info, warn or error")

	flag.Parse()

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	var level slog.Level
	if err := level.UnmarshalText([]byte(*logLevel)); err != nil {
		slog.Error("invalid log level", "level", *logLevel, "error", err)
		os.Exit(1)
	}

	// The terminal backend owns stdout, so its logs go to a file
	logOut := os.Stdout
	if *backend == "terminal" {
		f, err := os.OpenFile(cfg.Terminal.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			slog.Error("failed to open log file", "path", cfg.Terminal.LogFile, "error", err)
			os.Exit(1)
		}
		defer f.Close()
		logOut = f
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(logOut, &slog.HandlerOptions{Level: level})))

	// 0 picks a time-based seed; the logged value reproduces the run
	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}
	slog.Info("starting", "backend", *backend, "seed", rngSeed)

	opts := game.Options{
		Seed:           rngSeed,
		MaxTicks:       *maxTicks,
		LogStats:       *logStats,
		StatsWindowSec: *statsWindow,
		OutputDir:      *outputDir,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, *backend, cfg, opts); err != nil {
		slog.Error("run failed", "backend", *backend, "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, backend string, cfg *config.Config, opts game.Options) error {
	switch backend {
	case "raylib":
		return game.RunGraphics(ctx, cfg, opts)
	case "terminal":
		return game.RunTerminal(ctx, cfg, opts)
	case "headless":
		return game.RunHeadless(ctx, cfg, opts)
	}
	return fmt.Errorf("unknown backend %q", backend)
}
