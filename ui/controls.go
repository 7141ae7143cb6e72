package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Resolution slider range in canvas pixels per sample.
const (
	MinResolution = 1
	MaxResolution = 16
)

// ControlsState is the field configuration edited by the controls panel.
type ControlsState struct {
	Resolution int
	Falloff    string
}

// ControlsChange reports what the user changed during one Draw.
type ControlsChange struct {
	Resolution   int       // new resolution, 0 when unchanged
	CycleFalloff bool      // falloff button pressed
	Toggled      OverlayID // overlay toggled by click, "" when none
}

// Any reports whether anything changed.
func (c ControlsChange) Any() bool {
	return c.Resolution != 0 || c.CycleFalloff || c.Toggled != ""
}

// ControlsPanel renders the left-side controls panel with overlay toggles
// and field parameters.
type ControlsPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
	visible  bool
}

// NewControlsPanel creates a new controls panel.
func NewControlsPanel(x, y, width int32) *ControlsPanel {
	return &ControlsPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
		visible:  false,
	}
}

// SetPosition updates the panel position.
func (c *ControlsPanel) SetPosition(x, y int32) {
	c.x = x
	c.y = y
}

// SetVisible shows or hides the panel.
func (c *ControlsPanel) SetVisible(visible bool) {
	c.visible = visible
}

// IsVisible returns whether the panel is shown.
func (c *ControlsPanel) IsVisible() bool {
	return c.visible
}

// Toggle switches panel visibility.
func (c *ControlsPanel) Toggle() bool {
	c.visible = !c.visible
	return c.visible
}

// Contains reports whether a screen point is over the visible panel, so the
// host can keep clicks on widgets away from the canvas.
func (c *ControlsPanel) Contains(overlays *OverlayRegistry, sx, sy float32) bool {
	if !c.visible {
		return false
	}
	h := c.height(overlays)
	return sx >= float32(c.x) && sx < float32(c.x+c.width) && sy >= float32(c.y) && sy < float32(c.y+h)
}

func (c *ControlsPanel) height(overlays *OverlayRegistry) int32 {
	t := c.renderer.Theme
	rows := int32(0)
	for _, cat := range overlays.Categories() {
		rows += int32(len(overlays.ByCategory(cat))) + 1
	}
	// title, overlay rows, parameter header, slider and button
	return t.Padding*3 + t.LineHeight + rows*(t.LineHeight+4) + t.LineHeight + 18 + 30 + 24 + 8
}

// Draw renders the controls panel and returns the user's edits. Overlay
// toggles clicked here are applied to overlays directly.
func (c *ControlsPanel) Draw(overlays *OverlayRegistry, state ControlsState) ControlsChange {
	var change ControlsChange
	if !c.visible {
		return change
	}

	r := c.renderer
	padding := r.Theme.Padding
	lineHeight := r.Theme.LineHeight
	inner := c.width - padding*2

	r.DrawPanel(c.x, c.y, c.width, c.height(overlays))

	y := c.y + padding
	rl.DrawText("Controls", c.x+padding, y, 16, rl.White)
	y += lineHeight + 4

	for _, category := range overlays.Categories() {
		rl.DrawText(categoryLabel(category), c.x+padding, y, r.Theme.HeaderFontSize, r.Theme.SectionHeader)
		y += lineHeight

		for _, desc := range overlays.ByCategory(category) {
			enabled := overlays.IsEnabled(desc.ID)
			if c.drawToggle(c.x+padding, y, desc, enabled, inner) {
				overlays.Toggle(desc.ID)
				change.Toggled = desc.ID
			}
			y += lineHeight + 4
		}
	}

	y += padding
	y = r.DrawSectionHeader(c.x+padding, y, "Parameters")

	rl.DrawText(fmt.Sprintf("Resolution: %d px", state.Resolution), c.x+padding, y, r.Theme.FontSize, r.Theme.LabelColor)
	y += 18
	value := gui.SliderBar(
		rl.Rectangle{X: float32(c.x + padding + 14), Y: float32(y), Width: float32(inner - 40), Height: 16},
		fmt.Sprint(MinResolution), fmt.Sprint(MaxResolution),
		float32(state.Resolution), MinResolution, MaxResolution,
	)
	if res := SnapResolution(value); res != state.Resolution {
		change.Resolution = res
	}
	y += 30

	if gui.Button(rl.Rectangle{X: float32(c.x + padding), Y: float32(y), Width: float32(inner), Height: 20}, "Falloff: "+state.Falloff) {
		change.CycleFalloff = true
	}

	return change
}

// SnapResolution rounds a slider value to the nearest valid resolution.
func SnapResolution(v float32) int {
	res := int(v + 0.5)
	return min(max(res, MinResolution), MaxResolution)
}

// drawToggle draws a single overlay toggle line and reports a click on it.
func (c *ControlsPanel) drawToggle(x, y int32, desc OverlayDescriptor, enabled bool, width int32) bool {
	r := c.renderer

	label := "[ ] " + desc.Name
	if enabled {
		label = "[x] " + desc.Name
	}
	clicked := gui.Button(rl.Rectangle{X: float32(x), Y: float32(y), Width: float32(width - 30), Height: float32(r.Theme.LineHeight)}, label)

	if desc.KeyLabel != "" {
		keyText := fmt.Sprintf("[%s]", desc.KeyLabel)
		keyWidth := rl.MeasureText(keyText, r.Theme.FontSize)
		rl.DrawText(keyText, x+width-keyWidth, y+2, r.Theme.FontSize, rl.Color{R: 150, G: 150, B: 150, A: 255})
	}
	return clicked
}

// categoryLabel returns a display label for a category.
func categoryLabel(cat string) string {
	switch cat {
	case "field":
		return "Field"
	case "debug":
		return "Debug"
	default:
		return cat
	}
}
