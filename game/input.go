package game

import (
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// handleInput processes keyboard and mouse input.
func (g *Game) handleInput() {
	// Window resize propagation
	g.handleResize()

	// Fullscreen toggle
	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}

	if rl.IsKeyPressed(rl.KeySpace) {
		g.paused = !g.paused
	}

	if rl.IsKeyPressed(rl.KeyTab) {
		g.uiControlsPanel.Toggle()
	}

	// Resolution with up/down
	res := g.field.Options().Resolution
	if rl.IsKeyPressed(rl.KeyUp) {
		g.SetResolution(res + 1)
	}
	if rl.IsKeyPressed(rl.KeyDown) {
		g.SetResolution(res - 1)
	}

	if rl.IsKeyPressed(rl.KeyG) {
		name := g.CycleFalloff()
		slog.Info("falloff", "name", name)
	}
	if rl.IsKeyPressed(rl.KeyR) {
		g.Respawn()
	}
	if rl.IsKeyPressed(rl.KeyL) {
		g.logSceneState()
	}
	if rl.IsKeyPressed(rl.KeyP) {
		if _, err := g.SaveSnapshot(); err != nil {
			slog.Error("failed to save snapshot", "error", err)
		}
	}

	g.handleOverlayKeys()
	g.handleMouseInput()
}

// handleMouseInput drags, spawns and removes sources on the canvas.
func (g *Game) handleMouseInput() {
	mouse := rl.GetMousePosition()
	_, dragging := g.scene.Dragging()
	if g.uiControlsPanel.Contains(g.uiOverlays, mouse.X, mouse.Y) && !dragging {
		return
	}
	cx, cy := g.viewport.ScreenToCanvas(mouse.X, mouse.Y)

	if rl.IsMouseButtonReleased(rl.MouseButtonLeft) {
		g.EndDrag()
		dragging = false
	}
	if dragging && rl.IsMouseButtonDown(rl.MouseButtonLeft) {
		g.DragTo(cx, cy)
		return
	}

	if !g.viewport.Contains(mouse.X, mouse.Y) {
		return
	}

	if rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		g.BeginDrag(cx, cy)
	}
	if rl.IsMouseButtonPressed(rl.MouseButtonRight) {
		g.SpawnAt(cx, cy)
	}
	if rl.IsMouseButtonPressed(rl.MouseButtonMiddle) {
		if e, ok := g.SourceAt(cx, cy); ok {
			g.RemoveSource(e)
		}
	}
}

// handleResize checks for window resize and refits the canvas.
func (g *Game) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	w, h := int(rl.GetScreenWidth()), int(rl.GetScreenHeight())
	if w == g.viewport.WindowW && h == g.viewport.WindowH {
		return
	}
	g.viewport.Resize(w, h)
}
