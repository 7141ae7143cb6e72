package systems

import "sync/atomic"

// bayer4x4 is the standard ordered-dither matrix, indexed [y&3][x&3].
var bayer4x4 = [4][4]uint8{
	{0, 12, 3, 15},
	{8, 4, 11, 7},
	{2, 14, 1, 13},
	{10, 6, 9, 5},
}

// BayerThreshold returns the dither threshold in [0, 15/16] for pixel (x, y).
func BayerThreshold(x, y int) float32 {
	return float32(bayer4x4[y&3][x&3]) / 16.0
}

// DitherRenderer fills the inside of the field with a two-tone ordered dither
// between Secondary (at the surface) and Primary (deep inside).
type DitherRenderer struct {
	Resolution int
	Primary    Radial
	Secondary  Radial
	Falloff    Falloff

	pool *WorkerPool
}

// NewDitherRenderer creates a fill renderer with the sine falloff. pool may be nil.
func NewDitherRenderer(resolution int, primary, secondary Radial, pool *WorkerPool) *DitherRenderer {
	return &DitherRenderer{
		Resolution: max(resolution, 1),
		Primary:    primary,
		Secondary:  secondary,
		Falloff:    SineFalloff,
		pool:       pool,
	}
}

// Intensity maps a sample to the shaped fill intensity.
func (d *DitherRenderer) Intensity(sample float32) float32 {
	t := clamp01(sample - Threshold)
	if d.Falloff != nil {
		t = d.Falloff(t)
	}
	return t
}

// PixelColor returns the dithered color of pixel (x, y) for a sample, and
// false when the sample is outside the surface.
func (d *DitherRenderer) PixelColor(sample float32, x, y int) (Radial, bool) {
	if sample < Threshold {
		return Radial{}, false
	}
	t := d.Intensity(sample)
	if t >= BayerThreshold(x, y) {
		return LerpRadial(d.Secondary, d.Primary, t), true
	}
	return LerpRadial(d.Secondary, d.Primary, t*0.5), true
}

// Draw fills every inside cell as a Resolution x Resolution pixel block and
// returns the number of inside cells. Blocks are disjoint, so rows run in
// parallel.
func (d *DitherRenderer) Draw(canvas Canvas, grid *SampleGrid) int {
	res := max(d.Resolution, 1)
	var inside atomic.Int64

	d.pool.Run(grid.H, func(y0, y1 int) {
		var n int64
		for sy := y0; sy < y1; sy++ {
			row := grid.Row(sy)
			for sx, sample := range row {
				if sample < Threshold {
					continue
				}
				n++
				px0, py0 := sx*res, sy*res
				for py := py0; py < py0+res; py++ {
					for px := px0; px < px0+res; px++ {
						c, _ := d.PixelColor(sample, px, py)
						canvas.SetPixel(px, py, c.RGBA())
					}
				}
			}
		}
		inside.Add(n)
	})
	return int(inside.Load())
}
