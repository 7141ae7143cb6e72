package systems

// Threshold is the iso-surface level: a sample at or above it is inside a metaball.
const Threshold float32 = 1.0

// centerSample replaces the infinite contribution of a sample point that sits
// exactly on a source center. Anything >= Threshold renders the same, so the
// value only has to be large and finite.
const centerSample float32 = 1e6

// minDistSq is the squared distance below which a sample counts as centered.
const minDistSq float32 = 1e-12

// Source is the read-only view of an influence source for one sampling pass.
type Source struct {
	X, Y   float32
	Radius float32
}

// Contribution returns radius² / distance² of s at pixel (px, py).
// Sources with a non-positive radius contribute nothing.
func Contribution(s Source, px, py float32) float32 {
	if s.Radius <= 0 {
		return 0
	}
	d2 := distanceSq(px, py, s.X, s.Y)
	if d2 < minDistSq {
		return centerSample
	}
	return s.Radius * s.Radius / d2
}

// SampleAt sums the contribution of every source at pixel (px, py).
func SampleAt(sources []Source, px, py float32) float32 {
	var sum float32
	for i := range sources {
		sum += Contribution(sources[i], px, py)
	}
	return sum
}

// Sampler fills a SampleGrid from a set of sources. Cell (sx, sy) is sampled
// at pixel (sx*Resolution, sy*Resolution). Every source reaches every cell.
type Sampler struct {
	Resolution int
	pool       *WorkerPool
}

// NewSampler creates a sampler. pool may be nil for single-threaded use.
func NewSampler(resolution int, pool *WorkerPool) *Sampler {
	return &Sampler{Resolution: max(resolution, 1), pool: pool}
}

// Sample overwrites every cell of grid. The caller must not mutate sources
// until Sample returns.
func (s *Sampler) Sample(grid *SampleGrid, sources []Source) {
	res := float32(max(s.Resolution, 1))
	s.pool.Run(grid.H, func(y0, y1 int) {
		for sy := y0; sy < y1; sy++ {
			row := grid.Row(sy)
			py := float32(sy) * res
			for sx := range row {
				row[sx] = SampleAt(sources, float32(sx)*res, py)
			}
		}
	})
}
