package systems

import (
	"image"
	"image/color"
)

// Canvas is the pixel sink the field renderer draws into.
// SetPixel must drop out-of-range coordinates and must tolerate concurrent
// calls for distinct pixels.
type Canvas interface {
	Size() (w, h int)
	SetPixel(x, y int, c color.RGBA)
}

// PixelBuffer is a CPU-side RGBA canvas in row-major order.
type PixelBuffer struct {
	W, H int
	Pix  []color.RGBA
}

// NewPixelBuffer allocates a buffer. Negative sizes are treated as zero.
func NewPixelBuffer(w, h int) *PixelBuffer {
	w = max(w, 0)
	h = max(h, 0)
	return &PixelBuffer{W: w, H: h, Pix: make([]color.RGBA, w*h)}
}

// Size returns the buffer dimensions.
func (b *PixelBuffer) Size() (int, int) { return b.W, b.H }

// SetPixel writes one pixel; out-of-range writes are ignored.
func (b *PixelBuffer) SetPixel(x, y int, c color.RGBA) {
	if x < 0 || y < 0 || x >= b.W || y >= b.H {
		return
	}
	b.Pix[y*b.W+x] = c
}

// At returns the pixel at (x, y), or transparent black when out of range.
func (b *PixelBuffer) At(x, y int) color.RGBA {
	if x < 0 || y < 0 || x >= b.W || y >= b.H {
		return color.RGBA{}
	}
	return b.Pix[y*b.W+x]
}

// Fill sets every pixel to c.
func (b *PixelBuffer) Fill(c color.RGBA) {
	for i := range b.Pix {
		b.Pix[i] = c
	}
}

// Image copies the buffer into a standard library image.
func (b *PixelBuffer) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, b.W, b.H))
	b.CopyBytes(img.Pix)
	return img
}

// CopyBytes writes the buffer as packed RGBA bytes into dst, which must hold
// at least 4*W*H bytes.
func (b *PixelBuffer) CopyBytes(dst []byte) {
	for i, c := range b.Pix {
		o := i * 4
		dst[o] = c.R
		dst[o+1] = c.G
		dst[o+2] = c.B
		dst[o+3] = c.A
	}
}

// DrawLine rasterises a segment with Bresenham's algorithm. Endpoints are
// rounded to the nearest pixel; a segment whose endpoints coincide draws a
// single pixel.
func DrawLine(c Canvas, x0, y0, x1, y1 float32, col color.RGBA) {
	ix0, iy0 := roundInt(x0), roundInt(y0)
	ix1, iy1 := roundInt(x1), roundInt(y1)

	dx := absInt(ix1 - ix0)
	dy := -absInt(iy1 - iy0)
	sx, sy := 1, 1
	if ix0 > ix1 {
		sx = -1
	}
	if iy0 > iy1 {
		sy = -1
	}
	err := dx + dy

	for {
		c.SetPixel(ix0, iy0, col)
		if ix0 == ix1 && iy0 == iy1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			ix0 += sx
		}
		if e2 <= dx {
			err += dx
			iy0 += sy
		}
	}
}

// DrawCircle outlines a circle with the midpoint algorithm.
func DrawCircle(c Canvas, cx, cy, radius float32, col color.RGBA) {
	x0, y0 := roundInt(cx), roundInt(cy)
	r := roundInt(radius)
	if r <= 0 {
		c.SetPixel(x0, y0, col)
		return
	}

	x, y := r, 0
	err := 1 - r
	for x >= y {
		c.SetPixel(x0+x, y0+y, col)
		c.SetPixel(x0+y, y0+x, col)
		c.SetPixel(x0-y, y0+x, col)
		c.SetPixel(x0-x, y0+y, col)
		c.SetPixel(x0-x, y0-y, col)
		c.SetPixel(x0-y, y0-x, col)
		c.SetPixel(x0+y, y0-x, col)
		c.SetPixel(x0+x, y0-y, col)
		y++
		if err < 0 {
			err += 2*y + 1
		} else {
			x--
			err += 2*(y-x) + 1
		}
	}
}
