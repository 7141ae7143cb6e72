// Command ebitenballs renders the metaball field with ebiten. The canvas is
// written straight into the screen image each frame and ebiten scales it to
// the window.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/pthm-cable/metaballs/config"
	"github.com/pthm-cable/metaballs/scene"
	"github.com/pthm-cable/metaballs/systems"
	"github.com/pthm-cable/metaballs/telemetry"
	"github.com/pthm-cable/metaballs/ui"
)

// Game implements ebiten.Game around a scene and a field renderer.
type Game struct {
	cfg    *config.Config
	scene  *scene.Scene
	pool   *systems.WorkerPool
	field  *systems.Metaballs
	canvas *systems.PixelBuffer
	pixels []byte
	opts   systems.MetaballOptions
	bg     systems.Radial
	perf   *telemetry.PerfCollector

	falloff  string
	paused   bool
	showHelp bool
	stats    systems.FrameStats
}

func main() {
	configPath := flag.String("config", "", "Path to config file (uses embedded defaults if empty)")
	seed := flag.Int64("seed", 0, "Random seed (0 = time-based)")
	flag.Parse()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}

	g, err := newGame(cfg, *seed)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	defer g.pool.Close()

	ebiten.SetWindowSize(cfg.Derived.WindowW, cfg.Derived.WindowH)
	ebiten.SetWindowTitle("Metaballs")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(cfg.Screen.TargetFPS)

	if err := ebiten.RunGame(g); err != nil {
		slog.Error("ebiten", "error", err)
		os.Exit(1)
	}
	g.perf.Stats().LogStats()
}

func newGame(cfg *config.Config, seed int64) (*Game, error) {
	opts, err := scene.FieldOptions(cfg)
	if err != nil {
		return nil, err
	}
	w, h := cfg.Screen.Width, cfg.Screen.Height
	g := &Game{
		cfg:      cfg,
		scene:    scene.New(scene.CanvasBounds(cfg), scene.SpawnFromConfig(cfg), seed),
		pool:     systems.NewWorkerPool(cfg.Parallel.Workers, cfg.Parallel.MinRows),
		canvas:   systems.NewPixelBuffer(w, h),
		pixels:   make([]byte, w*h*4),
		opts:     opts,
		bg:       systems.RadialFromTriple(cfg.Derived.Background),
		perf:     telemetry.NewPerfCollector(cfg.Telemetry.PerfWindow),
		falloff:  cfg.Field.Falloff,
		showHelp: true,
	}
	g.field = systems.NewMetaballs(w, h, opts, g.pool)
	g.field.SetPhaseTimer(g.perf)
	g.scene.SpawnInitial()
	return g, nil
}

// Update handles input and renders the next frame into the canvas.
func (g *Game) Update() error {
	g.perf.StartFrame()
	g.perf.StartPhase(telemetry.PhaseInput)
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	g.handleKeys()
	g.handleMouse()

	g.perf.StartPhase(telemetry.PhaseMotion)
	if !g.paused {
		g.scene.Step(1 / float32(ebiten.TPS()))
	}
	sources := g.scene.Collect()

	g.perf.StartPhase(telemetry.PhaseClear)
	g.canvas.Fill(g.bg.RGBA())
	g.stats = g.field.Render(g.canvas, sources)

	g.perf.StartPhase(telemetry.PhaseUpload)
	g.canvas.CopyBytes(g.pixels)
	g.perf.EndFrame()
	return nil
}

func (g *Game) handleKeys() {
	changed := true
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeySpace):
		g.paused = !g.paused
	case inpututil.IsKeyJustPressed(ebiten.KeyUp):
		g.opts.Resolution = min(g.opts.Resolution+1, ui.MaxResolution)
	case inpututil.IsKeyJustPressed(ebiten.KeyDown):
		g.opts.Resolution = max(g.opts.Resolution-1, ui.MinResolution)
	case inpututil.IsKeyJustPressed(ebiten.KeyF):
		g.opts.Filled = !g.opts.Filled
	case inpututil.IsKeyJustPressed(ebiten.KeyO):
		g.opts.Outlined = !g.opts.Outlined
	case inpututil.IsKeyJustPressed(ebiten.KeyI):
		g.opts.Interpolated = !g.opts.Interpolated
	case inpututil.IsKeyJustPressed(ebiten.KeyX):
		g.opts.ResolveSaddles = !g.opts.ResolveSaddles
	case inpututil.IsKeyJustPressed(ebiten.KeyG):
		g.cycleFalloff()
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		g.scene.Respawn()
	case inpututil.IsKeyJustPressed(ebiten.KeyH):
		g.showHelp = !g.showHelp
	default:
		changed = false
	}
	if changed {
		g.field.SetOptions(g.opts)
	}
}

func (g *Game) cycleFalloff() {
	names := systems.FalloffNames()
	next := names[0]
	for i, n := range names {
		if n == g.falloff {
			next = names[(i+1)%len(names)]
			break
		}
	}
	fn, err := systems.FalloffByName(next)
	if err != nil {
		slog.Error("falloff", "name", next, "error", err)
		return
	}
	g.falloff = next
	g.opts.Falloff = fn
}

// handleMouse drags with the left button, spawns with the right and removes
// with the middle. Cursor coordinates are already in canvas pixels because
// Layout returns the canvas size.
func (g *Game) handleMouse() {
	mx, my := ebiten.CursorPosition()
	x, y := float32(mx)+0.5, float32(my)+0.5

	switch {
	case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft):
		g.scene.BeginDrag(x, y)
	case inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft):
		g.scene.EndDrag()
	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft):
		g.scene.DragTo(x, y)
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight) {
		g.scene.SpawnAt(x, y)
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonMiddle) {
		if e, ok := g.scene.SourceAt(x, y); ok {
			g.scene.Remove(e)
		}
	}
}

// Draw presents the canvas rendered by the last Update.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.WritePixels(g.pixels)
	g.perf.RecordPresent()
	if !g.showHelp {
		return
	}
	msg := fmt.Sprintf("FPS %.0f  res %d  %s  segs %d\nspace pause  up/down res  f/o/i/x toggles  g falloff  r respawn  h help",
		ebiten.ActualFPS(), g.opts.Resolution, g.falloff, g.stats.Segments)
	if g.paused {
		msg = "PAUSED  " + msg
	}
	ebitenutil.DebugPrint(screen, msg)
}

// Layout pins the logical screen to the canvas size.
func (g *Game) Layout(_, _ int) (int, int) {
	return g.canvas.W, g.canvas.H
}
