package renderer

import (
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/metaballs/camera"
	"github.com/pthm-cable/metaballs/systems"
)

// DrawSourceMarkers draws each source circle at window resolution, with the
// selected source (index sel, -1 for none) highlighted.
func DrawSourceMarkers(vp *camera.Viewport, sources []systems.Source, sel int, col color.RGBA) {
	scale := float32(vp.Scale)
	for i, s := range sources {
		x, y := vp.CanvasToScreen(s.X, s.Y)
		r := s.Radius * scale
		if i == sel {
			rl.DrawCircleLines(int32(x), int32(y), r, rl.Yellow)
			rl.DrawCircle(int32(x), int32(y), 3, rl.Yellow)
			continue
		}
		rl.DrawCircleLines(int32(x), int32(y), r, col)
		rl.DrawCircle(int32(x), int32(y), 2, col)
	}
}
