package systems

import (
	"image/color"
	"testing"
)

type phaseRecorder struct {
	phases []string
}

func (r *phaseRecorder) StartPhase(p string) { r.phases = append(r.phases, p) }

func testOptions() MetaballOptions {
	return MetaballOptions{
		Resolution:   1,
		Interpolated: true,
		Filled:       true,
		Outlined:     true,
		Primary:      NewRadial(5, 4, 1),
		Secondary:    NewRadial(3, 0, 2),
		Outline:      NewRadial(5, 5, 5),
	}
}

func TestMetaballsRenderScenario(t *testing.T) {
	canvas := NewPixelBuffer(100, 100)
	m := NewMetaballs(100, 100, testOptions(), nil)

	stats := m.Render(canvas, []Source{{X: 50, Y: 50, Radius: 10}})

	if stats.Cells != 100*100 {
		t.Errorf("expected 10000 cells, got %d", stats.Cells)
	}
	// Disc of radius 10 on integer lattice holds 317 points
	if stats.Inside != 317 {
		t.Errorf("expected 317 inside cells, got %d", stats.Inside)
	}
	if stats.Segments == 0 {
		t.Error("expected outline segments")
	}

	if v := m.Grid().At(60, 50); v != 1.0 {
		t.Errorf("expected sample 1.0 at distance 10, got %f", v)
	}

	// Pixels far from the source stay untouched
	if canvas.At(5, 5) != (color.RGBA{}) {
		t.Errorf("expected untouched background, got %v", canvas.At(5, 5))
	}
	// The outline is drawn last, on top of the fill
	outline := NewRadial(5, 5, 5).RGBA()
	found := false
	for _, c := range canvas.Pix {
		if c == outline {
			found = true
			break
		}
	}
	if !found {
		t.Error("expected outline pixels in the canvas")
	}
}

func TestMetaballsNoSourcesNoOp(t *testing.T) {
	canvas := NewPixelBuffer(40, 30)
	m := NewMetaballs(40, 30, testOptions(), nil)

	stats := m.Render(canvas, nil)
	if stats.Inside != 0 || stats.Segments != 0 || stats.Points != 0 {
		t.Errorf("expected empty frame, got %+v", stats)
	}
	for i, c := range canvas.Pix {
		if c != (color.RGBA{}) {
			t.Fatalf("expected canvas untouched, pixel %d is %v", i, c)
		}
	}
}

func TestMetaballsEmptyCanvas(t *testing.T) {
	m := NewMetaballs(0, 0, testOptions(), nil)
	rec := &phaseRecorder{}
	m.SetPhaseTimer(rec)

	stats := m.Render(NewPixelBuffer(0, 0), []Source{{X: 1, Y: 1, Radius: 5}})
	if stats.Cells != 0 {
		t.Errorf("expected zero cells, got %d", stats.Cells)
	}
	if len(rec.phases) != 0 {
		t.Errorf("expected no passes for an empty grid, got %v", rec.phases)
	}
}

func TestMetaballsPhaseOrder(t *testing.T) {
	m := NewMetaballs(32, 32, testOptions(), nil)
	rec := &phaseRecorder{}
	m.SetPhaseTimer(rec)
	m.Render(NewPixelBuffer(32, 32), []Source{{X: 16, Y: 16, Radius: 6}})

	want := []string{PhaseClear, PhaseSample, PhaseFill, PhaseOutline}
	if len(rec.phases) != len(want) {
		t.Fatalf("expected phases %v, got %v", want, rec.phases)
	}
	for i := range want {
		if rec.phases[i] != want[i] {
			t.Errorf("phase %d: expected %s, got %s", i, want[i], rec.phases[i])
		}
	}

	// Disabled passes are skipped
	opts := m.Options()
	opts.Filled = false
	m.SetOptions(opts)
	rec.phases = nil
	stats := m.Render(NewPixelBuffer(32, 32), []Source{{X: 16, Y: 16, Radius: 6}})
	if stats.Inside != 0 {
		t.Errorf("expected no inside count without fill, got %d", stats.Inside)
	}
	for _, p := range rec.phases {
		if p == PhaseFill {
			t.Error("expected fill pass to be skipped")
		}
	}
}

func TestMetaballsResolutionChange(t *testing.T) {
	m := NewMetaballs(64, 48, testOptions(), nil)
	if m.Grid().W != 64 || m.Grid().H != 48 {
		t.Fatalf("expected 64x48 grid, got %dx%d", m.Grid().W, m.Grid().H)
	}

	opts := m.Options()
	opts.Resolution = 4
	m.SetOptions(opts)
	if m.Grid().W != 16 || m.Grid().H != 12 {
		t.Errorf("expected 16x12 grid at resolution 4, got %dx%d", m.Grid().W, m.Grid().H)
	}

	opts.Resolution = 0
	m.SetOptions(opts)
	if m.Options().Resolution != 1 || m.Grid().W != 64 {
		t.Errorf("expected resolution clamped to 1, got %d (grid %d wide)", m.Options().Resolution, m.Grid().W)
	}
	if m.Options().Falloff == nil {
		t.Error("expected default falloff")
	}
}

func TestMetaballsCoarseFillCoversBlocks(t *testing.T) {
	opts := testOptions()
	opts.Resolution = 4
	opts.Outlined = false
	m := NewMetaballs(64, 64, opts, nil)
	canvas := NewPixelBuffer(64, 64)
	stats := m.Render(canvas, []Source{{X: 32, Y: 32, Radius: 12}})

	painted := 0
	for _, c := range canvas.Pix {
		if c.A != 0 {
			painted++
		}
	}
	if painted != stats.Inside*16 {
		t.Errorf("expected %d painted pixels (16 per inside cell), got %d", stats.Inside*16, painted)
	}
}

func TestMetaballsParallelMatchesSerial(t *testing.T) {
	sources := []Source{
		{X: 60, Y: 40, Radius: 15},
		{X: 85, Y: 55, Radius: 11},
		{X: 20, Y: 70, Radius: 9},
	}
	opts := testOptions()
	opts.Resolution = 2

	pool := NewWorkerPool(4, 1)
	defer pool.Close()

	a := NewPixelBuffer(160, 90)
	b := NewPixelBuffer(160, 90)
	sa := NewMetaballs(160, 90, opts, nil).Render(a, sources)
	sb := NewMetaballs(160, 90, opts, pool).Render(b, sources)

	if sa != sb {
		t.Errorf("stats differ: %+v vs %+v", sa, sb)
	}
	for i := range a.Pix {
		if a.Pix[i] != b.Pix[i] {
			t.Fatalf("pixel %d differs", i)
		}
	}
}

func TestDrawSources(t *testing.T) {
	canvas := NewPixelBuffer(40, 40)
	col := color.RGBA{R: 255, A: 255}
	DrawSources(canvas, []Source{{X: 10, Y: 10, Radius: 4}, {X: 30, Y: 30, Radius: 6}}, col)
	if canvas.At(14, 10) != col || canvas.At(36, 30) != col {
		t.Error("expected both source circles drawn")
	}
}

func BenchmarkMetaballsFrame(b *testing.B) {
	sources := make([]Source, 12)
	for i := range sources {
		sources[i] = Source{X: float32(20 + i*25), Y: float32(30 + (i*37)%120), Radius: float32(8 + i%5*3)}
	}
	pool := NewWorkerPool(0, 0)
	defer pool.Close()
	opts := testOptions()
	opts.Resolution = 2
	m := NewMetaballs(320, 180, opts, pool)
	canvas := NewPixelBuffer(320, 180)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		m.Render(canvas, sources)
	}
}
