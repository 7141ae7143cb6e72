package systems

import (
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// radialMax is the highest level of a radial channel.
const radialMax = 5

// Radial is a retro color with six levels (0..5) per channel.
type Radial struct {
	R, G, B uint8
}

// NewRadial builds a radial color, clamping each channel to 0..5.
func NewRadial(r, g, b uint8) Radial {
	return Radial{R: min(r, radialMax), G: min(g, radialMax), B: min(b, radialMax)}
}

// RadialFromTriple converts a [r, g, b] level triple.
func RadialFromTriple(rgb [3]uint8) Radial {
	return NewRadial(rgb[0], rgb[1], rgb[2])
}

// RGBA expands the radial levels to 8-bit channels (level * 51).
func (c Radial) RGBA() color.RGBA {
	return color.RGBA{R: c.R * 51, G: c.G * 51, B: c.B * 51, A: 255}
}

func (c Radial) colorful() colorful.Color {
	return colorful.Color{
		R: float64(c.R) / radialMax,
		G: float64(c.G) / radialMax,
		B: float64(c.B) / radialMax,
	}
}

// LerpRadial blends from a to b per channel and snaps the result back to the
// nearest radial level. t is clamped to [0, 1].
func LerpRadial(a, b Radial, t float32) Radial {
	t = clamp01(t)
	mixed := a.colorful().BlendRgb(b.colorful(), float64(t))
	return Radial{
		R: radialLevel(mixed.R),
		G: radialLevel(mixed.G),
		B: radialLevel(mixed.B),
	}
}

func radialLevel(v float64) uint8 {
	l := math.Round(v * radialMax)
	if l < 0 {
		return 0
	}
	if l > radialMax {
		return radialMax
	}
	return uint8(l)
}
