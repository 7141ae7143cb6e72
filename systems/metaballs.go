package systems

import "image/color"

// MetaballOptions configures a Metaballs renderer.
type MetaballOptions struct {
	Resolution     int
	Interpolated   bool
	Filled         bool
	Outlined       bool
	ResolveSaddles bool
	Primary        Radial
	Secondary      Radial
	Outline        Radial
	Falloff        Falloff
}

// FrameStats summarises one render pass.
type FrameStats struct {
	Cells    int // grid cells sampled
	Inside   int // cells at or above the threshold (0 when fill is off)
	Segments int // contour lines drawn
	Points   int // degenerate segments drawn as single pixels
}

// Metaballs owns the sample grid and runs the per-frame pipeline:
// clear, sample, dithered fill, outline. Each pass joins before the next.
type Metaballs struct {
	opts    MetaballOptions
	grid    *SampleGrid
	sampler *Sampler
	fill    *DitherRenderer
	contour *ContourExtractor

	canvasW, canvasH int
	phases           PhaseTimer
}

// PhaseTimer receives the name of each pass as it starts.
type PhaseTimer interface {
	StartPhase(phase string)
}

// Pass names reported to a PhaseTimer.
const (
	PhaseClear   = "clear"
	PhaseSample  = "sample"
	PhaseFill    = "fill"
	PhaseOutline = "outline"
)

// NewMetaballs creates a renderer for a canvas of the given size.
// pool may be nil for single-threaded rendering.
func NewMetaballs(canvasW, canvasH int, opts MetaballOptions, pool *WorkerPool) *Metaballs {
	opts.Resolution = max(opts.Resolution, 1)
	gw, gh := GridSizeFor(canvasW, canvasH, opts.Resolution)

	m := &Metaballs{
		grid:    NewSampleGrid(gw, gh),
		sampler: NewSampler(opts.Resolution, pool),
		fill:    NewDitherRenderer(opts.Resolution, opts.Primary, opts.Secondary, pool),
		contour: NewContourExtractor(opts.Resolution, opts.Interpolated, pool),
	}
	m.canvasW, m.canvasH = canvasW, canvasH
	m.SetOptions(opts)
	return m
}

// Options returns the current configuration.
func (m *Metaballs) Options() MetaballOptions {
	return m.opts
}

// SetOptions applies new options. A resolution change reallocates the grid.
func (m *Metaballs) SetOptions(opts MetaballOptions) {
	opts.Resolution = max(opts.Resolution, 1)
	if opts.Falloff == nil {
		opts.Falloff = SineFalloff
	}
	if opts.Resolution != m.opts.Resolution {
		gw, gh := GridSizeFor(m.canvasW, m.canvasH, opts.Resolution)
		m.grid.Resize(gw, gh)
	}
	m.opts = opts

	m.sampler.Resolution = opts.Resolution
	m.fill.Resolution = opts.Resolution
	m.fill.Primary = opts.Primary
	m.fill.Secondary = opts.Secondary
	m.fill.Falloff = opts.Falloff
	m.contour.Resolution = opts.Resolution
	m.contour.Interpolated = opts.Interpolated
	m.contour.ResolveSaddles = opts.ResolveSaddles
}

// SetPhaseTimer installs a hook called before each pass. nil disables it.
func (m *Metaballs) SetPhaseTimer(t PhaseTimer) {
	m.phases = t
}

func (m *Metaballs) phase(name string) {
	if m.phases != nil {
		m.phases.StartPhase(name)
	}
}

// Grid exposes the sample grid of the last frame for read-only inspection.
func (m *Metaballs) Grid() *SampleGrid {
	return m.grid
}

// Render draws one frame of the field for sources into canvas.
// sources must not change while Render runs.
func (m *Metaballs) Render(canvas Canvas, sources []Source) FrameStats {
	stats := FrameStats{Cells: m.grid.W * m.grid.H}
	if stats.Cells == 0 {
		return stats
	}

	m.phase(PhaseClear)
	m.grid.Clear()
	m.phase(PhaseSample)
	m.sampler.Sample(m.grid, sources)

	if m.opts.Filled {
		m.phase(PhaseFill)
		stats.Inside = m.fill.Draw(canvas, m.grid)
	}
	if m.opts.Outlined {
		m.phase(PhaseOutline)
		stats.Segments, stats.Points = m.contour.Draw(canvas, m.grid, m.opts.Outline.RGBA())
	}
	return stats
}

// DrawSources outlines each source circle on top of the field.
func DrawSources(canvas Canvas, sources []Source, col color.RGBA) {
	for _, s := range sources {
		DrawCircle(canvas, s.X, s.Y, s.Radius, col)
	}
}
