package camera

import (
	"math"
	"testing"
)

func TestNewFitsIntegerScale(t *testing.T) {
	v := New(320, 180, 1280, 720)
	if v.Scale != 4 {
		t.Errorf("expected scale 4, got %d", v.Scale)
	}
	if v.OffsetX != 0 || v.OffsetY != 0 {
		t.Errorf("expected no letterbox, got offset (%d, %d)", v.OffsetX, v.OffsetY)
	}
}

func TestLetterbox(t *testing.T) {
	// 1300x800 fits scale 4 (1280x720) with borders 10 and 40
	v := New(320, 180, 1300, 800)
	if v.Scale != 4 {
		t.Fatalf("expected scale 4, got %d", v.Scale)
	}
	if v.OffsetX != 10 || v.OffsetY != 40 {
		t.Errorf("expected offset (10, 40), got (%d, %d)", v.OffsetX, v.OffsetY)
	}

	x, y, w, h := v.DestRect()
	if x != 10 || y != 40 || w != 1280 || h != 720 {
		t.Errorf("unexpected dest rect (%f, %f, %f, %f)", x, y, w, h)
	}
}

func TestScaleNeverBelowOne(t *testing.T) {
	v := New(320, 180, 100, 100)
	if v.Scale != 1 {
		t.Errorf("expected scale 1 for a small window, got %d", v.Scale)
	}
	if FitScale(0, 0, 100, 100) != 1 {
		t.Error("expected scale 1 for an empty canvas")
	}
}

func TestMaxScale(t *testing.T) {
	v := New(100, 100, 1000, 1000)
	if v.Scale != 10 {
		t.Fatalf("expected scale 10, got %d", v.Scale)
	}
	v.MaxScale = 3
	v.Resize(1000, 1000)
	if v.Scale != 3 || v.OffsetX != 350 {
		t.Errorf("expected capped scale 3 at offset 350, got %d at %d", v.Scale, v.OffsetX)
	}
}

func TestScreenToCanvasRoundtrip(t *testing.T) {
	v := New(320, 180, 1300, 800)

	testCases := []struct{ cx, cy float32 }{
		{0, 0},
		{160, 90},
		{319.5, 179.25},
	}
	for _, tc := range testCases {
		sx, sy := v.CanvasToScreen(tc.cx, tc.cy)
		cx, cy := v.ScreenToCanvas(sx, sy)
		if math.Abs(float64(cx-tc.cx)) > 0.001 || math.Abs(float64(cy-tc.cy)) > 0.001 {
			t.Errorf("roundtrip failed: (%f,%f) -> (%f,%f) -> (%f,%f)", tc.cx, tc.cy, sx, sy, cx, cy)
		}
	}

	cx, cy := v.ScreenToCanvas(10+4*5, 40+4*7)
	if cx != 5 || cy != 7 {
		t.Errorf("expected canvas (5, 7), got (%f, %f)", cx, cy)
	}
}

func TestContains(t *testing.T) {
	v := New(320, 180, 1300, 800)

	if !v.Contains(650, 400) {
		t.Error("expected window center over the canvas")
	}
	if v.Contains(5, 400) || v.Contains(650, 30) || v.Contains(1295, 400) {
		t.Error("expected letterbox border outside the canvas")
	}
}

func TestClampToCanvas(t *testing.T) {
	v := New(320, 180, 1280, 720)
	x, y := v.ClampToCanvas(-5, 500)
	if x != 0 || y != 180 {
		t.Errorf("expected (0, 180), got (%f, %f)", x, y)
	}
}
