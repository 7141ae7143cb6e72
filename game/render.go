package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/metaballs/camera"
	"github.com/pthm-cable/metaballs/renderer"
	"github.com/pthm-cable/metaballs/systems"
	"github.com/pthm-cable/metaballs/telemetry"
	"github.com/pthm-cable/metaballs/ui"
)

// maxFrameDT caps the step after a stall so sources never jump across the
// canvas.
const maxFrameDT = 0.1

// controlsLegend is drawn along the bottom edge of the window.
const controlsLegend = "SPACE: Pause | Drag: Move | RMB: Add | MMB: Remove | Up/Down: Resolution | G: Falloff | P: Snapshot | L: Log | R: Respawn | Tab: Controls"

// initWindowed creates GPU resources and the UI. Requires a raylib window.
func (g *Game) initWindowed() {
	cfg := g.cfg
	g.viewport = camera.New(cfg.Screen.Width, cfg.Screen.Height, int(rl.GetScreenWidth()), int(rl.GetScreenHeight()))
	g.canvasTexture = renderer.NewCanvasTexture(cfg.Screen.Width, cfg.Screen.Height)
	g.canvasTexture.Init()
	g.backgroundDraw = renderer.NewBackgroundRenderer(systems.RadialFromTriple(cfg.Derived.Background))

	g.uiHUD = ui.NewHUD()
	g.uiPerfPanel = ui.NewPerfPanel(0, 10)
	g.uiControlsPanel = ui.NewControlsPanel(10, 230, 220)
	g.uiOverlays = ui.NewOverlayRegistry()
	g.syncOverlays()
}

// Update handles input, advances one frame and uploads it to the GPU.
func (g *Game) Update() {
	g.perfCollector.StartFrame()

	g.perfCollector.StartPhase(telemetry.PhaseInput)
	g.handleInput()

	g.step(min(rl.GetFrameTime(), maxFrameDT))

	g.perfCollector.StartPhase(telemetry.PhaseUpload)
	g.canvasTexture.Upload(g.canvas)

	g.perfCollector.EndFrame()
}

// Draw renders the canvas and UI.
func (g *Game) Draw() {
	rl.BeginDrawing()

	g.backgroundDraw.Draw(g.viewport)
	g.canvasTexture.Draw(g.viewport)

	g.drawActiveOverlays()
	g.drawUI()

	rl.EndDrawing()
	g.perfCollector.RecordPresent()
}

// drawUI draws the HUD and the controls panel and applies panel edits.
func (g *Game) drawUI() {
	opts := g.field.Options()
	g.lastFPS = rl.GetFPS()

	g.uiHUD.Draw(ui.HUDData{
		Title:      "Metaballs",
		Frame:      g.frame,
		Sources:    len(g.sources),
		Resolution: opts.Resolution,
		Falloff:    g.falloffName,
		FPS:        g.lastFPS,
		Paused:     g.paused,
		Selected:   g.selectedIndex(),
		Stats:      g.lastStats,
		Field:      telemetry.MeasureField(g.field.Grid()),
	})

	change := g.uiControlsPanel.Draw(g.uiOverlays, ui.ControlsState{
		Resolution: opts.Resolution,
		Falloff:    g.falloffName,
	})
	if change.Resolution != 0 {
		g.SetResolution(change.Resolution)
	}
	if change.CycleFalloff {
		g.CycleFalloff()
	}
	if change.Toggled != "" {
		g.SetFieldOption(change.Toggled, g.uiOverlays.IsEnabled(change.Toggled))
	}

	g.uiHUD.DrawControls(int32(g.viewport.WindowH), controlsLegend)
}
