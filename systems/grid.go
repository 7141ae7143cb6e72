package systems

// SampleGrid is a dense row-major grid of field samples.
// Reads outside the grid return 0 and writes outside it are ignored.
type SampleGrid struct {
	W, H  int
	cells []float32
}

// NewSampleGrid allocates a zeroed grid. Negative sizes are treated as zero.
func NewSampleGrid(w, h int) *SampleGrid {
	w = max(w, 0)
	h = max(h, 0)
	return &SampleGrid{W: w, H: h, cells: make([]float32, w*h)}
}

// GridSizeFor returns the grid dimensions for a canvas at the given resolution.
func GridSizeFor(canvasW, canvasH, resolution int) (int, int) {
	if resolution < 1 {
		resolution = 1
	}
	return max(canvasW, 0) / resolution, max(canvasH, 0) / resolution
}

// Resize reallocates the grid if the dimensions changed. Contents are zeroed.
func (g *SampleGrid) Resize(w, h int) {
	w = max(w, 0)
	h = max(h, 0)
	if w == g.W && h == g.H {
		g.Clear()
		return
	}
	g.W, g.H = w, h
	if cap(g.cells) >= w*h {
		g.cells = g.cells[:w*h]
		g.Clear()
		return
	}
	g.cells = make([]float32, w*h)
}

// At returns the sample at (x, y), or 0 outside the grid.
func (g *SampleGrid) At(x, y int) float32 {
	if x < 0 || y < 0 || x >= g.W || y >= g.H {
		return 0
	}
	return g.cells[y*g.W+x]
}

// Set stores v at (x, y). Out-of-range writes are no-ops.
func (g *SampleGrid) Set(x, y int, v float32) {
	if x < 0 || y < 0 || x >= g.W || y >= g.H {
		return
	}
	g.cells[y*g.W+x] = v
}

// Clear zeroes every cell.
func (g *SampleGrid) Clear() {
	clear(g.cells)
}

// Row returns the backing slice of row y, or nil when out of range.
func (g *SampleGrid) Row(y int) []float32 {
	if y < 0 || y >= g.H {
		return nil
	}
	return g.cells[y*g.W : (y+1)*g.W]
}

// Cells exposes the backing slice for read-only consumers (stats, export).
func (g *SampleGrid) Cells() []float32 {
	return g.cells
}
