// Package game wires the metaball field renderer to moving sources, input,
// telemetry and the raylib window.
package game

import (
	"fmt"
	"image/color"
	"log/slog"

	"github.com/pthm-cable/metaballs/camera"
	"github.com/pthm-cable/metaballs/config"
	"github.com/pthm-cable/metaballs/renderer"
	"github.com/pthm-cable/metaballs/scene"
	"github.com/pthm-cable/metaballs/systems"
	"github.com/pthm-cable/metaballs/telemetry"
	"github.com/pthm-cable/metaballs/ui"
)

// Game holds the complete demo state.
type Game struct {
	cfg     *config.Config
	rngSeed int64

	// Sources and systems
	scene *scene.Scene
	pool  *systems.WorkerPool
	field *systems.Metaballs

	// Frame output
	canvas      *systems.PixelBuffer
	background  color.RGBA
	shapeColor  color.RGBA
	drawShapes  bool
	falloffName string

	// Sources rendered in the last frame
	sources []systems.Source

	lastStats systems.FrameStats

	// State
	frame  int32
	paused bool

	// Telemetry
	perfCollector *telemetry.PerfCollector
	collector     *telemetry.Collector
	outputManager *telemetry.OutputManager
	logStats      bool
	snapshotScale int
	statsCallback func(telemetry.WindowStats)

	// Windowed rendering (nil when headless)
	viewport        *camera.Viewport
	canvasTexture   *renderer.CanvasTexture
	backgroundDraw  *renderer.BackgroundRenderer
	uiHUD           *ui.HUD
	uiPerfPanel     *ui.PerfPanel
	uiControlsPanel *ui.ControlsPanel
	uiOverlays      *ui.OverlayRegistry
	lastFPS         int32
}

// NewGameWithOptions creates a game. Windowed games must be created after
// the raylib window exists.
func NewGameWithOptions(opts Options) (*Game, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Cfg()
	}

	g := &Game{
		cfg:     cfg,
		rngSeed: opts.Seed,
		scene:   scene.New(scene.CanvasBounds(cfg), scene.SpawnFromConfig(cfg), opts.Seed),

		canvas:     systems.NewPixelBuffer(cfg.Screen.Width, cfg.Screen.Height),
		background: systems.RadialFromTriple(cfg.Derived.Background).RGBA(),
		shapeColor: systems.RadialFromTriple(cfg.Derived.Shapes).RGBA(),
		drawShapes: cfg.Sources.DrawShapes,

		perfCollector: telemetry.NewPerfCollector(cfg.Telemetry.PerfWindow),
		logStats:      opts.LogStats,
		snapshotScale: opts.SnapshotScale,
	}
	if g.snapshotScale <= 0 {
		g.snapshotScale = cfg.Screen.Scale
	}

	statsWindow := cfg.Telemetry.StatsWindow
	if opts.StatsWindowSec > 0 {
		statsWindow = opts.StatsWindowSec
	}
	g.collector = telemetry.NewCollector(statsWindow, cfg.Derived.DT32)

	g.pool = systems.NewWorkerPool(cfg.Parallel.Workers, cfg.Parallel.MinRows)

	fieldOpts, err := scene.FieldOptions(cfg)
	if err != nil {
		g.pool.Close()
		return nil, err
	}
	g.falloffName = cfg.Field.Falloff
	if g.falloffName == "" {
		g.falloffName = "sine"
	}
	g.field = systems.NewMetaballs(cfg.Screen.Width, cfg.Screen.Height, fieldOpts, g.pool)
	g.field.SetPhaseTimer(g.perfCollector)

	if opts.ScenePath != "" {
		if err := g.LoadScene(opts.ScenePath); err != nil {
			g.pool.Close()
			return nil, err
		}
	} else {
		g.scene.SpawnInitial()
	}

	om, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		g.pool.Close()
		return nil, fmt.Errorf("creating output manager: %w", err)
	}
	g.outputManager = om
	if err := g.outputManager.WriteConfig(cfg); err != nil {
		slog.Error("failed to write config", "error", err)
	}

	if !opts.Headless {
		g.initWindowed()
	}

	slog.Info("game created",
		"seed", opts.Seed,
		"canvas_w", cfg.Screen.Width,
		"canvas_h", cfg.Screen.Height,
		"sources", g.scene.Count(),
		"resolution", fieldOpts.Resolution,
		"workers", g.pool.Workers(),
		"headless", opts.Headless,
	)
	return g, nil
}

// SetStatsCallback installs a function called with every flushed window.
func (g *Game) SetStatsCallback(fn func(telemetry.WindowStats)) {
	g.statsCallback = fn
}

// UpdateHeadless runs one frame with the fixed config step and no input.
func (g *Game) UpdateHeadless() {
	g.perfCollector.StartFrame()
	g.step(g.cfg.Derived.DT32)
	g.perfCollector.EndFrame()
}

// step advances the sources and renders one frame into the canvas.
func (g *Game) step(dt float32) {
	g.perfCollector.StartPhase(telemetry.PhaseMotion)
	if !g.paused {
		g.scene.Step(dt)
	}
	g.sources = g.scene.Collect()

	g.perfCollector.StartPhase(telemetry.PhaseClear)
	g.canvas.Fill(g.background)
	g.lastStats = g.field.Render(g.canvas, g.sources)
	if g.drawShapes {
		systems.DrawSources(g.canvas, g.sources, g.shapeColor)
	}

	g.perfCollector.StartPhase(telemetry.PhaseTelemetry)
	g.collector.RecordFrame(g.lastStats)
	g.frame++
	g.flushTelemetry()
}

// Frame returns the number of frames rendered.
func (g *Game) Frame() int32 {
	return g.frame
}

// Sources returns the sources rendered in the last frame.
func (g *Game) Sources() []systems.Source {
	return g.sources
}

// Canvas returns the pixel buffer of the last frame.
func (g *Game) Canvas() *systems.PixelBuffer {
	return g.canvas
}

// LastStats returns the render stats of the last frame.
func (g *Game) LastStats() systems.FrameStats {
	return g.lastStats
}

// FieldOptions returns the current renderer options.
func (g *Game) FieldOptions() systems.MetaballOptions {
	return g.field.Options()
}

// Paused reports whether source motion is stopped.
func (g *Game) Paused() bool {
	return g.paused
}

// SetPaused stops or resumes source motion. Frames still render.
func (g *Game) SetPaused(paused bool) {
	g.paused = paused
}

// PerfStats returns frame timing over the perf window.
func (g *Game) PerfStats() telemetry.PerfStats {
	return g.perfCollector.Stats()
}

// Unload releases all resources.
func (g *Game) Unload() {
	g.pool.Close()
	if g.canvasTexture != nil {
		g.canvasTexture.Unload()
	}
	if err := g.outputManager.Close(); err != nil {
		slog.Error("failed to close output", "error", err)
	}
}
