package game

import (
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/metaballs/renderer"
	"github.com/pthm-cable/metaballs/systems"
	"github.com/pthm-cable/metaballs/ui"
)

// SetResolution changes the sampling resolution, clamped to the slider range.
func (g *Game) SetResolution(res int) {
	res = min(max(res, ui.MinResolution), ui.MaxResolution)
	opts := g.field.Options()
	if opts.Resolution == res {
		return
	}
	opts.Resolution = res
	g.field.SetOptions(opts)
	slog.Debug("resolution changed", "resolution", res)
}

// SetFalloff selects a named intensity curve.
func (g *Game) SetFalloff(name string) error {
	f, err := systems.FalloffByName(name)
	if err != nil {
		return err
	}
	opts := g.field.Options()
	opts.Falloff = f
	g.field.SetOptions(opts)
	g.falloffName = name
	return nil
}

// CycleFalloff switches to the next curve in name order.
func (g *Game) CycleFalloff() string {
	names := systems.FalloffNames()
	next := names[0]
	for i, name := range names {
		if name == g.falloffName {
			next = names[(i+1)%len(names)]
			break
		}
	}
	if err := g.SetFalloff(next); err != nil {
		slog.Error("failed to set falloff", "falloff", next, "error", err)
	}
	return g.falloffName
}

// FalloffName returns the current curve name.
func (g *Game) FalloffName() string {
	return g.falloffName
}

// SetFieldOption switches one of the field pass overlays. Overlays that do
// not map to a renderer option are ignored.
func (g *Game) SetFieldOption(id ui.OverlayID, on bool) {
	opts := g.field.Options()
	switch id {
	case ui.OverlayFill:
		opts.Filled = on
	case ui.OverlayOutline:
		opts.Outlined = on
	case ui.OverlayInterpolated:
		opts.Interpolated = on
	case ui.OverlaySaddles:
		opts.ResolveSaddles = on
	default:
		return
	}
	g.field.SetOptions(opts)
}

// syncOverlays sets the registry to the current renderer options.
func (g *Game) syncOverlays() {
	if g.uiOverlays == nil {
		return
	}
	opts := g.field.Options()
	g.uiOverlays.SetEnabled(ui.OverlayFill, opts.Filled)
	g.uiOverlays.SetEnabled(ui.OverlayOutline, opts.Outlined)
	g.uiOverlays.SetEnabled(ui.OverlayInterpolated, opts.Interpolated)
	g.uiOverlays.SetEnabled(ui.OverlaySaddles, opts.ResolveSaddles)
}

// handleOverlayKeys checks for overlay toggle key presses.
func (g *Game) handleOverlayKeys() {
	for _, desc := range g.uiOverlays.All() {
		if desc.Key != 0 && rl.IsKeyPressed(desc.Key) {
			g.SetFieldOption(desc.ID, g.uiOverlays.Toggle(desc.ID))
		}
	}
}

// drawActiveOverlays renders the window-resolution overlays.
func (g *Game) drawActiveOverlays() {
	for _, id := range g.uiOverlays.EnabledOverlays() {
		switch id {
		case ui.OverlaySources:
			renderer.DrawSourceMarkers(g.viewport, g.sources, g.selectedIndex(), g.shapeColor)
		case ui.OverlayPerf:
			g.uiPerfPanel.SetPosition(int32(g.viewport.WindowW)-230, 10)
			g.uiPerfPanel.Draw(g.perfCollector.Stats())
		// Field passes are drawn into the canvas by the renderer
		}
	}
}
