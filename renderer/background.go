// Package renderer draws the metaball canvas and its surroundings with raylib.
package renderer

import (
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/metaballs/camera"
	"github.com/pthm-cable/metaballs/systems"
)

// BackgroundRenderer clears the window around the canvas and frames it.
type BackgroundRenderer struct {
	canvasColor color.RGBA
	borderColor color.RGBA
	frameColor  color.RGBA
}

// NewBackgroundRenderer derives the letterbox and frame colors from the
// canvas background.
func NewBackgroundRenderer(bg systems.Radial) *BackgroundRenderer {
	c := bg.RGBA()
	return &BackgroundRenderer{
		canvasColor: c,
		borderColor: color.RGBA{R: c.R / 2, G: c.G / 2, B: c.B / 2, A: 255},
		frameColor:  color.RGBA{R: 60, G: 70, B: 80, A: 255},
	}
}

// CanvasColor returns the color the host clears the pixel buffer to.
func (b *BackgroundRenderer) CanvasColor() color.RGBA {
	return b.canvasColor
}

// Draw clears the window and outlines the canvas area.
func (b *BackgroundRenderer) Draw(vp *camera.Viewport) {
	rl.ClearBackground(b.borderColor)
	if vp.OffsetX <= 0 && vp.OffsetY <= 0 {
		return
	}
	x, y, w, h := vp.DestRect()
	rl.DrawRectangleLines(int32(x)-1, int32(y)-1, int32(w)+2, int32(h)+2, b.frameColor)
}
