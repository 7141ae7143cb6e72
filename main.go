package main

import (
	"flag"
	"log/slog"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/metaballs/config"
	"github.com/pthm-cable/metaballs/game"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	statsWindow := flag.Float64("stats-window", 0, "Stats window size in seconds (0 = use config)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs, config copy and snapshots")
	scenePath := flag.String("scene", "", "Restore sources and field options from a scene JSON")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxFrames := flag.Int("max-frames", 0, "Stop after N frames (0 = unlimited)")
	snapshotAtEnd := flag.Bool("snapshot", false, "Save a scene and PNG when the run ends")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	// Set up seed
	opts := game.DefaultOptions()
	if *seed != 0 {
		opts.Seed = *seed
	}
	opts.LogStats = *logStats
	opts.StatsWindowSec = *statsWindow
	opts.OutputDir = *outputDir
	opts.ScenePath = *scenePath
	opts.Headless = *headless
	rngSeed := opts.Seed

	if *headless {
		// Headless mode - CPU rendering only, no raylib window
		g, err := game.NewGameWithOptions(opts)
		if err != nil {
			slog.Error("failed to create game", "error", err)
			os.Exit(1)
		}
		defer g.Unload()

		slog.Info("starting headless run",
			"seed", rngSeed,
			"max_frames", *maxFrames,
		)

		for *maxFrames <= 0 || int(g.Frame()) < *maxFrames {
			g.UpdateHeadless()
		}
		slog.Info("max frames reached", "frame", g.Frame())
		g.PerfStats().LogStats()
		if *snapshotAtEnd {
			if _, err := g.SaveSnapshot(); err != nil {
				slog.Error("failed to save snapshot", "error", err)
			}
		}
		return
	}

	// Graphical mode
	rl.SetConfigFlags(rl.FlagWindowResizable)
	rl.InitWindow(int32(cfg.Derived.WindowW), int32(cfg.Derived.WindowH), "Metaballs")
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	g, err := game.NewGameWithOptions(opts)
	if err != nil {
		slog.Error("failed to create game", "error", err)
		return
	}
	defer g.Unload()

	for !rl.WindowShouldClose() {
		g.Update()
		g.Draw()

		if *maxFrames > 0 && int(g.Frame()) >= *maxFrames {
			break
		}
	}
	if *snapshotAtEnd {
		if _, err := g.SaveSnapshot(); err != nil {
			slog.Error("failed to save snapshot", "error", err)
		}
	}
}
