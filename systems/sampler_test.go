package systems

import (
	"math"
	"testing"
)

func TestSampleGridBounds(t *testing.T) {
	g := NewSampleGrid(4, 3)

	g.Set(1, 2, 5)
	if v := g.At(1, 2); v != 5 {
		t.Errorf("expected 5 at (1,2), got %f", v)
	}

	// Out-of-bounds reads return 0, writes are ignored
	for _, p := range [][2]int{{-1, 0}, {0, -1}, {4, 0}, {0, 3}, {100, 100}} {
		g.Set(p[0], p[1], 9)
		if v := g.At(p[0], p[1]); v != 0 {
			t.Errorf("expected 0 outside grid at %v, got %f", p, v)
		}
	}
	for i, v := range g.Cells() {
		if v != 0 && i != 2*4+1 {
			t.Errorf("out-of-bounds write leaked into cell %d", i)
		}
	}

	if g.Row(3) != nil || g.Row(-1) != nil {
		t.Error("expected nil rows outside grid")
	}
}

func TestSampleGridResize(t *testing.T) {
	g := NewSampleGrid(4, 4)
	g.Set(0, 0, 1)

	g.Resize(2, 3)
	if g.W != 2 || g.H != 3 || len(g.Cells()) != 6 {
		t.Fatalf("expected 2x3 grid, got %dx%d (%d cells)", g.W, g.H, len(g.Cells()))
	}
	if g.At(0, 0) != 0 {
		t.Error("expected resize to zero contents")
	}

	g.Resize(-1, 5)
	if g.W != 0 || len(g.Cells()) != 0 {
		t.Errorf("expected empty grid for negative width, got %dx%d", g.W, g.H)
	}
}

func TestGridSizeFor(t *testing.T) {
	tests := []struct {
		w, h, res    int
		wantW, wantH int
	}{
		{100, 100, 1, 100, 100},
		{320, 180, 2, 160, 90},
		{321, 181, 4, 80, 45},
		{100, 100, 0, 100, 100},
		{0, 0, 3, 0, 0},
	}
	for _, tc := range tests {
		gw, gh := GridSizeFor(tc.w, tc.h, tc.res)
		if gw != tc.wantW || gh != tc.wantH {
			t.Errorf("GridSizeFor(%d,%d,%d) = %dx%d, want %dx%d", tc.w, tc.h, tc.res, gw, gh, tc.wantW, tc.wantH)
		}
	}
}

func TestContributionEdgeCases(t *testing.T) {
	s := Source{X: 10, Y: 10, Radius: 5}

	// Center is large and finite
	c := Contribution(s, 10, 10)
	if c < Threshold || math.IsInf(float64(c), 0) || math.IsNaN(float64(c)) {
		t.Errorf("expected large finite center sample, got %f", c)
	}

	// Zero and negative radii contribute nothing, even at the center
	for _, r := range []float32{0, -3} {
		z := Source{X: 10, Y: 10, Radius: r}
		if v := Contribution(z, 10, 10); v != 0 {
			t.Errorf("radius %f: expected 0 at center, got %f", r, v)
		}
		if v := Contribution(z, 12, 10); v != 0 {
			t.Errorf("radius %f: expected 0 off center, got %f", r, v)
		}
	}
}

func TestSampleEndToEndScenario(t *testing.T) {
	grid := NewSampleGrid(100, 100)
	sampler := NewSampler(1, nil)
	sampler.Sample(grid, []Source{{X: 50, Y: 50, Radius: 10}})

	if v := grid.At(50, 50); v < Threshold {
		t.Errorf("expected center sample >= 1, got %f", v)
	}

	want := float32(100.0 / 225.0)
	if v := grid.At(65, 50); math.Abs(float64(v-want)) > 1e-6 {
		t.Errorf("expected sample at distance 15 = %f, got %f", want, v)
	}
	if v := grid.At(65, 50); v >= Threshold {
		t.Errorf("expected distance 15 outside surface, got %f", v)
	}

	if v := grid.At(60, 50); v != 1.0 {
		t.Errorf("expected exactly 1.0 at distance 10, got %.9f", v)
	}
}

func TestThresholdBoundary(t *testing.T) {
	const r = 10
	src := []Source{{X: 0, Y: 0, Radius: r}}

	for dy := -15; dy <= 15; dy++ {
		for dx := -15; dx <= 15; dx++ {
			d2 := dx*dx + dy*dy
			v := SampleAt(src, float32(dx), float32(dy))
			inside := v >= Threshold
			if inside != (d2 <= r*r) {
				t.Errorf("offset (%d,%d) d2=%d: sample %f inside=%v", dx, dy, d2, v, inside)
			}
		}
	}
}

func TestSamplerDeterministic(t *testing.T) {
	sources := []Source{
		{X: 12.5, Y: 40, Radius: 9},
		{X: 70, Y: 33.3, Radius: 14},
		{X: 45, Y: 80, Radius: 6.5},
	}
	a := NewSampleGrid(50, 50)
	b := NewSampleGrid(50, 50)
	s := NewSampler(2, nil)
	s.Sample(a, sources)
	s.Sample(b, sources)

	for i := range a.Cells() {
		if math.Float32bits(a.Cells()[i]) != math.Float32bits(b.Cells()[i]) {
			t.Fatalf("cell %d differs between runs: %v vs %v", i, a.Cells()[i], b.Cells()[i])
		}
	}
}

func TestSamplerParallelMatchesSerial(t *testing.T) {
	sources := []Source{
		{X: 30, Y: 30, Radius: 12},
		{X: 90, Y: 60, Radius: 20},
		{X: 150, Y: 20, Radius: 8},
	}
	pool := NewWorkerPool(4, 1)
	defer pool.Close()

	serial := NewSampleGrid(80, 45)
	parallel := NewSampleGrid(80, 45)
	NewSampler(2, nil).Sample(serial, sources)
	NewSampler(2, pool).Sample(parallel, sources)

	for i := range serial.Cells() {
		if math.Float32bits(serial.Cells()[i]) != math.Float32bits(parallel.Cells()[i]) {
			t.Fatalf("cell %d: serial %v, parallel %v", i, serial.Cells()[i], parallel.Cells()[i])
		}
	}
}

func TestClearThenSampleNoSources(t *testing.T) {
	g := NewSampleGrid(16, 16)
	NewSampler(1, nil).Sample(g, []Source{{X: 8, Y: 8, Radius: 4}})

	g.Clear()
	NewSampler(1, nil).Sample(g, nil)

	for i, v := range g.Cells() {
		if v != 0 {
			t.Fatalf("expected cell %d to be 0, got %f", i, v)
		}
	}
}

func TestSamplerOverwritesPreviousFrame(t *testing.T) {
	g := NewSampleGrid(20, 20)
	s := NewSampler(1, nil)
	s.Sample(g, []Source{{X: 5, Y: 5, Radius: 4}})
	s.Sample(g, []Source{{X: 15, Y: 15, Radius: 4}})

	if v := g.At(5, 5); v >= Threshold {
		t.Errorf("expected previous frame's source to be gone, got %f", v)
	}
	if v := g.At(15, 15); v < Threshold {
		t.Errorf("expected new source inside, got %f", v)
	}
}

func BenchmarkSampler(b *testing.B) {
	sources := make([]Source, 16)
	for i := range sources {
		sources[i] = Source{X: float32(i*19%320) + 0.5, Y: float32(i*11%180) + 0.5, Radius: 12}
	}
	grid := NewSampleGrid(160, 90)
	pool := NewWorkerPool(0, 0)
	defer pool.Close()
	s := NewSampler(2, pool)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s.Sample(grid, sources)
	}
}
