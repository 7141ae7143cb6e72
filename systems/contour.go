package systems

import "image/color"

// Edge names one of the four edge points of a quad.
type Edge uint8

const (
	EdgeA Edge = iota // top: tl -> tr
	EdgeB             // right: tr -> br
	EdgeC             // bottom: bl -> br
	EdgeD             // left: tl -> bl
)

func (e Edge) String() string {
	return [...]string{"a", "b", "c", "d"}[e]
}

// EdgePair is one segment in case-table terms.
type EdgePair [2]Edge

// CaseSegments is the segment set for one corner classification.
type CaseSegments struct {
	N     int
	Pairs [2]EdgePair
}

// List returns the active pairs.
func (c CaseSegments) List() []EdgePair {
	return c.Pairs[:c.N]
}

// caseTable maps bl + br*2 + tr*4 + tl*8 to the boundary segments of a quad.
// Complementary cases share a segment set. The saddles 5 and 10 always get
// two segments that keep the inside corners connected through the center.
var caseTable = [16]CaseSegments{
	0:  {},
	1:  {N: 1, Pairs: [2]EdgePair{{EdgeD, EdgeC}}},
	2:  {N: 1, Pairs: [2]EdgePair{{EdgeB, EdgeC}}},
	3:  {N: 1, Pairs: [2]EdgePair{{EdgeD, EdgeB}}},
	4:  {N: 1, Pairs: [2]EdgePair{{EdgeA, EdgeB}}},
	5:  {N: 2, Pairs: [2]EdgePair{{EdgeD, EdgeA}, {EdgeC, EdgeB}}},
	6:  {N: 1, Pairs: [2]EdgePair{{EdgeC, EdgeA}}},
	7:  {N: 1, Pairs: [2]EdgePair{{EdgeD, EdgeA}}},
	8:  {N: 1, Pairs: [2]EdgePair{{EdgeD, EdgeA}}},
	9:  {N: 1, Pairs: [2]EdgePair{{EdgeC, EdgeA}}},
	10: {N: 2, Pairs: [2]EdgePair{{EdgeA, EdgeB}, {EdgeC, EdgeD}}},
	11: {N: 1, Pairs: [2]EdgePair{{EdgeA, EdgeB}}},
	12: {N: 1, Pairs: [2]EdgePair{{EdgeD, EdgeB}}},
	13: {N: 1, Pairs: [2]EdgePair{{EdgeB, EdgeC}}},
	14: {N: 1, Pairs: [2]EdgePair{{EdgeD, EdgeC}}},
	15: {},
}

// saddleAlternates holds the other pairing of each saddle, used when the
// quad center falls outside the surface and saddle resolution is enabled.
var saddleAlternates = map[int]CaseSegments{
	5:  {N: 2, Pairs: [2]EdgePair{{EdgeD, EdgeC}, {EdgeA, EdgeB}}},
	10: {N: 2, Pairs: [2]EdgePair{{EdgeB, EdgeC}, {EdgeD, EdgeA}}},
}

// CaseTable returns the segment set for a 4-bit classification code.
func CaseTable(code int) CaseSegments {
	return caseTable[code&15]
}

// IsSaddle reports whether code is one of the two ambiguous cases.
func IsSaddle(code int) bool {
	return code == 5 || code == 10
}

// CaseIndex classifies the four corners of a quad against Threshold.
func CaseIndex(bl, br, tr, tl float32) int {
	return bit(bl) | bit(br)<<1 | bit(tr)<<2 | bit(tl)<<3
}

func bit(v float32) int {
	if v >= Threshold {
		return 1
	}
	return 0
}

// Point is a position in canvas pixels.
type Point struct {
	X, Y float32
}

// Segment is one piece of the contour.
type Segment struct {
	P0, P1 Point
}

// Degenerate reports whether both endpoints coincide.
func (s Segment) Degenerate() bool {
	return s.P0 == s.P1
}

// isoT returns where Threshold falls between v0 and v1 as a fraction of the
// edge, clamped to [0, 1]. Equal values give 0.
func isoT(v0, v1 float32) float32 {
	if v0 == v1 {
		return 0
	}
	return clamp01((Threshold - v0) / (v1 - v0))
}

// ContourExtractor traces the iso-contour of a SampleGrid with marching squares.
// The quad anchored at cell (x, y) has tl=(x, y), tr=(x+1, y), br=(x+1, y+1)
// and bl=(x, y+1); cells past the right and bottom border read as 0, which
// closes shapes touching those borders.
type ContourExtractor struct {
	Resolution     int
	Interpolated   bool
	ResolveSaddles bool

	pool *WorkerPool
	rows [][]Segment
}

// NewContourExtractor creates an extractor. pool may be nil.
func NewContourExtractor(resolution int, interpolated bool, pool *WorkerPool) *ContourExtractor {
	return &ContourExtractor{
		Resolution:   max(resolution, 1),
		Interpolated: interpolated,
		pool:         pool,
	}
}

// interpolating reports whether edge points follow the sample values.
// At one sample per pixel the midpoints are already pixel-accurate.
func (c *ContourExtractor) interpolating() bool {
	return c.Interpolated && c.Resolution > 1
}

// EdgePoints returns the a, b, c, d points of the quad anchored at (x, y).
func (c *ContourExtractor) EdgePoints(grid *SampleGrid, x, y int) [4]Point {
	r := float32(max(c.Resolution, 1))
	x0, y0 := float32(x)*r, float32(y)*r
	x1, y1 := x0+r, y0+r

	ta, tb, tc, td := float32(0.5), float32(0.5), float32(0.5), float32(0.5)
	if c.interpolating() {
		tl := grid.At(x, y)
		tr := grid.At(x+1, y)
		br := grid.At(x+1, y+1)
		bl := grid.At(x, y+1)
		ta = isoT(tl, tr)
		tb = isoT(tr, br)
		tc = isoT(bl, br)
		td = isoT(tl, bl)
	}

	return [4]Point{
		EdgeA: {X: lerp(x0, x1, ta), Y: y0},
		EdgeB: {X: x1, Y: lerp(y0, y1, tb)},
		EdgeC: {X: lerp(x0, x1, tc), Y: y1},
		EdgeD: {X: x0, Y: lerp(y0, y1, td)},
	}
}

// QuadCase returns the classification code of the quad anchored at (x, y).
func (c *ContourExtractor) QuadCase(grid *SampleGrid, x, y int) int {
	return CaseIndex(grid.At(x, y+1), grid.At(x+1, y+1), grid.At(x+1, y), grid.At(x, y))
}

// segmentsFor picks the segment set for a quad, applying saddle resolution
// when enabled.
func (c *ContourExtractor) segmentsFor(grid *SampleGrid, x, y, code int) CaseSegments {
	if c.ResolveSaddles && IsSaddle(code) {
		center := (grid.At(x, y) + grid.At(x+1, y) + grid.At(x+1, y+1) + grid.At(x, y+1)) / 4
		if center < Threshold {
			return saddleAlternates[code]
		}
	}
	return caseTable[code]
}

// QuadSegments appends the segments of the quad anchored at (x, y) to dst.
func (c *ContourExtractor) QuadSegments(dst []Segment, grid *SampleGrid, x, y int) []Segment {
	code := c.QuadCase(grid, x, y)
	if code == 0 || code == 15 {
		return dst
	}
	pts := c.EdgePoints(grid, x, y)
	for _, pair := range c.segmentsFor(grid, x, y, code).List() {
		dst = append(dst, Segment{P0: pts[pair[0]], P1: pts[pair[1]]})
	}
	return dst
}

// Extract computes all segments, one slice per grid row. The returned slices
// are reused by the next call.
func (c *ContourExtractor) Extract(grid *SampleGrid) [][]Segment {
	if cap(c.rows) < grid.H {
		c.rows = make([][]Segment, grid.H)
	}
	c.rows = c.rows[:grid.H]

	c.pool.Run(grid.H, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			row := c.rows[y][:0]
			for x := 0; x < grid.W; x++ {
				row = c.QuadSegments(row, grid, x, y)
			}
			c.rows[y] = row
		}
	})
	return c.rows
}

// Draw extracts the contour and rasterises it onto canvas. Extraction runs in
// parallel; rasterising stays on the caller so neighbouring quads never write
// the same pixel concurrently. Returns the line and single-pixel counts.
func (c *ContourExtractor) Draw(canvas Canvas, grid *SampleGrid, col color.RGBA) (lines, points int) {
	for _, row := range c.Extract(grid) {
		for _, seg := range row {
			if seg.Degenerate() {
				canvas.SetPixel(roundInt(seg.P0.X), roundInt(seg.P0.Y), col)
				points++
				continue
			}
			DrawLine(canvas, seg.P0.X, seg.P0.Y, seg.P1.X, seg.P1.Y, col)
			lines++
		}
	}
	return lines, points
}
