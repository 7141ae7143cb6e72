// Package camera maps the fixed-size pixel canvas into the window.
package camera

// Viewport places the canvas inside the window at an integer scale, centered
// with letterbox borders, so every canvas pixel covers a square block of
// window pixels.
type Viewport struct {
	// Canvas dimensions in canvas pixels
	CanvasW, CanvasH int

	// Window dimensions in screen pixels
	WindowW, WindowH int

	// Scale is the edge length of one canvas pixel in screen pixels
	Scale int

	// Offset of the canvas top-left corner in screen pixels
	OffsetX, OffsetY int

	// MaxScale caps automatic fitting (0 = no cap)
	MaxScale int
}

// New creates a viewport fitting the canvas into the window.
func New(canvasW, canvasH, windowW, windowH int) *Viewport {
	v := &Viewport{CanvasW: max(canvasW, 0), CanvasH: max(canvasH, 0)}
	v.Resize(windowW, windowH)
	return v
}

// FitScale returns the largest integer scale at which the canvas fits the
// window, never less than 1.
func FitScale(canvasW, canvasH, windowW, windowH int) int {
	if canvasW <= 0 || canvasH <= 0 {
		return 1
	}
	return max(min(windowW/canvasW, windowH/canvasH), 1)
}

// Resize updates the window dimensions and refits the scale.
func (v *Viewport) Resize(windowW, windowH int) {
	v.WindowW = max(windowW, 0)
	v.WindowH = max(windowH, 0)
	scale := FitScale(v.CanvasW, v.CanvasH, v.WindowW, v.WindowH)
	if v.MaxScale > 0 {
		scale = min(scale, v.MaxScale)
	}
	v.SetScale(scale)
}

// SetScale sets the scale (clamped to >= 1) and recenters the canvas.
func (v *Viewport) SetScale(scale int) {
	v.Scale = max(scale, 1)
	v.OffsetX = (v.WindowW - v.CanvasW*v.Scale) / 2
	v.OffsetY = (v.WindowH - v.CanvasH*v.Scale) / 2
}

// CanvasToScreen converts canvas coordinates to screen coordinates.
func (v *Viewport) CanvasToScreen(cx, cy float32) (sx, sy float32) {
	s := float32(v.Scale)
	return float32(v.OffsetX) + cx*s, float32(v.OffsetY) + cy*s
}

// ScreenToCanvas converts screen coordinates to canvas coordinates.
func (v *Viewport) ScreenToCanvas(sx, sy float32) (cx, cy float32) {
	s := float32(v.Scale)
	return (sx - float32(v.OffsetX)) / s, (sy - float32(v.OffsetY)) / s
}

// Contains reports whether a screen point lies over the canvas.
func (v *Viewport) Contains(sx, sy float32) bool {
	cx, cy := v.ScreenToCanvas(sx, sy)
	return cx >= 0 && cy >= 0 && cx < float32(v.CanvasW) && cy < float32(v.CanvasH)
}

// ClampToCanvas restricts a canvas point to the canvas area.
func (v *Viewport) ClampToCanvas(cx, cy float32) (float32, float32) {
	return clamp(cx, 0, float32(v.CanvasW)), clamp(cy, 0, float32(v.CanvasH))
}

// DestRect returns the screen rectangle covered by the canvas.
func (v *Viewport) DestRect() (x, y, w, h float32) {
	return float32(v.OffsetX), float32(v.OffsetY), float32(v.CanvasW * v.Scale), float32(v.CanvasH * v.Scale)
}

// clamp restricts a value to a range.
func clamp(x, min, max float32) float32 {
	if x < min {
		return min
	}
	if x > max {
		return max
	}
	return x
}
