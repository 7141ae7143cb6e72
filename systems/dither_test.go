package systems

import (
	"math"
	"testing"
)

func TestBayerThresholdMatrix(t *testing.T) {
	seen := make(map[float32]bool)
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			v := BayerThreshold(x, y)
			if v < 0 || v > 15.0/16.0 {
				t.Errorf("threshold at (%d,%d) out of range: %f", x, y, v)
			}
			seen[v] = true
		}
	}
	if len(seen) != 16 {
		t.Errorf("expected 16 distinct thresholds, got %d", len(seen))
	}

	// Pattern repeats every 4 pixels
	if BayerThreshold(1, 2) != BayerThreshold(5, 6) || BayerThreshold(3, 3) != BayerThreshold(7, 11) {
		t.Error("expected the matrix to tile with period 4")
	}
	if BayerThreshold(0, 0) != 0 || BayerThreshold(1, 0) != 12.0/16.0 || BayerThreshold(0, 1) != 8.0/16.0 {
		t.Error("unexpected matrix layout")
	}
}

func TestDitherIntensity(t *testing.T) {
	d := NewDitherRenderer(1, Radial{}, Radial{}, nil)

	if v := d.Intensity(1.0); v != 0 {
		t.Errorf("expected 0 at the surface, got %f", v)
	}
	want := float32(math.Sin(0.5))
	if v := d.Intensity(1.5); math.Abs(float64(v-want)) > 1e-6 {
		t.Errorf("expected sin(0.5)=%f, got %f", want, v)
	}
	// Saturates at one unit above the threshold
	if v, top := d.Intensity(1e6), float32(math.Sin(1)); math.Abs(float64(v-top)) > 1e-6 {
		t.Errorf("expected saturated intensity sin(1)=%f, got %f", top, v)
	}

	d.Falloff = LinearFalloff
	if v := d.Intensity(1.25); v != 0.25 {
		t.Errorf("expected linear 0.25, got %f", v)
	}
}

func TestPixelColorOutside(t *testing.T) {
	d := NewDitherRenderer(1, NewRadial(5, 5, 5), NewRadial(1, 1, 1), nil)
	if _, ok := d.PixelColor(0.99, 0, 0); ok {
		t.Error("expected sample below threshold to be outside")
	}
	if _, ok := d.PixelColor(1.0, 0, 0); !ok {
		t.Error("expected sample at threshold to be inside")
	}
}

func TestPixelColorTwoTone(t *testing.T) {
	primary := NewRadial(5, 0, 0)
	secondary := NewRadial(0, 0, 5)
	d := NewDitherRenderer(1, primary, secondary, nil)
	d.Falloff = LinearFalloff

	// At the surface intensity is 0, which passes only the zero threshold
	// at (0,0); both branches blend with t=0 and return the secondary color.
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			c, ok := d.PixelColor(1.0, x, y)
			if !ok || c != secondary {
				t.Errorf("(%d,%d): expected secondary at the surface, got %v", x, y, c)
			}
		}
	}

	// Deep inside intensity is 1: every pixel takes the full primary color
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			if c, _ := d.PixelColor(5, x, y); c != primary {
				t.Errorf("(%d,%d): expected primary deep inside, got %v", x, y, c)
			}
		}
	}

	// Between the two, pixels below their Bayer threshold get the half blend
	hi, _ := d.PixelColor(1.5, 0, 0) // threshold 0
	lo, _ := d.PixelColor(1.5, 1, 0) // threshold 12/16
	if hi != LerpRadial(secondary, primary, 0.5) {
		t.Errorf("expected full blend at threshold 0, got %v", hi)
	}
	if lo != LerpRadial(secondary, primary, 0.25) {
		t.Errorf("expected half blend at threshold 12/16, got %v", lo)
	}
}

func TestDitherDrawBlocks(t *testing.T) {
	grid := NewSampleGrid(3, 2)
	grid.Set(1, 0, 2)
	grid.Set(2, 1, 1)

	canvas := NewPixelBuffer(9, 6)
	d := NewDitherRenderer(3, NewRadial(5, 5, 5), NewRadial(0, 0, 5), nil)
	if n := d.Draw(canvas, grid); n != 2 {
		t.Errorf("expected 2 inside cells, got %d", n)
	}

	painted := 0
	for y := 0; y < canvas.H; y++ {
		for x := 0; x < canvas.W; x++ {
			if canvas.At(x, y).A == 0 {
				continue
			}
			painted++
			inBlockA := x >= 3 && x < 6 && y < 3
			inBlockB := x >= 6 && y >= 3
			if !inBlockA && !inBlockB {
				t.Errorf("pixel (%d,%d) painted outside inside blocks", x, y)
			}
		}
	}
	if painted != 18 {
		t.Errorf("expected two 3x3 blocks (18 pixels), got %d", painted)
	}
}

func TestDitherDrawParallelMatchesSerial(t *testing.T) {
	sources := []Source{{X: 40, Y: 40, Radius: 18}, {X: 70, Y: 50, Radius: 12}}
	grid := NewSampleGrid(60, 40)
	NewSampler(2, nil).Sample(grid, sources)

	pool := NewWorkerPool(4, 1)
	defer pool.Close()

	a := NewPixelBuffer(120, 80)
	b := NewPixelBuffer(120, 80)
	na := NewDitherRenderer(2, NewRadial(5, 4, 1), NewRadial(3, 0, 2), nil).Draw(a, grid)
	nb := NewDitherRenderer(2, NewRadial(5, 4, 1), NewRadial(3, 0, 2), pool).Draw(b, grid)

	if na != nb {
		t.Errorf("inside counts differ: %d vs %d", na, nb)
	}
	for i := range a.Pix {
		if a.Pix[i] != b.Pix[i] {
			t.Fatalf("pixel %d differs", i)
		}
	}
}

func TestFalloffByName(t *testing.T) {
	f, err := FalloffByName("")
	if err != nil {
		t.Fatalf("empty name: %v", err)
	}
	if f(0.5) != SineFalloff(0.5) {
		t.Error("expected empty name to select sine")
	}

	if _, err := FalloffByName("nope"); err == nil {
		t.Error("expected error for unknown falloff")
	}

	for _, name := range FalloffNames() {
		f, err := FalloffByName(name)
		if err != nil {
			t.Errorf("%s: %v", name, err)
			continue
		}
		prev := f(0)
		for i := 0; i <= 100; i++ {
			x := float32(i) / 100
			v := f(x)
			if v < 0 || v > 1 {
				t.Errorf("%s(%f) = %f, outside [0,1]", name, x, v)
			}
			// Small slack for float rounding in the easing functions
			if v < prev-1e-6 {
				t.Errorf("%s not monotonic at %.2f: %f < %f", name, x, v, prev)
				break
			}
			prev = v
		}
	}
}

func TestEaseFalloffEndpoints(t *testing.T) {
	for _, name := range []string{"in_quad", "out_quad", "in_out_cubic"} {
		f, _ := FalloffByName(name)
		if v := f(0); math.Abs(float64(v)) > 1e-6 {
			t.Errorf("%s(0) = %f, want 0", name, v)
		}
		if v := f(1); math.Abs(float64(v-1)) > 1e-6 {
			t.Errorf("%s(1) = %f, want 1", name, v)
		}
	}
}

func BenchmarkDitherDraw(b *testing.B) {
	grid := NewSampleGrid(160, 90)
	NewSampler(2, nil).Sample(grid, []Source{{X: 160, Y: 90, Radius: 60}})
	canvas := NewPixelBuffer(320, 180)
	pool := NewWorkerPool(0, 0)
	defer pool.Close()
	d := NewDitherRenderer(2, NewRadial(5, 4, 1), NewRadial(3, 0, 2), pool)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		d.Draw(canvas, grid)
	}
}
