package systems

import (
	"testing"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/metaballs/components"
)

func TestBounceIntegrates(t *testing.T) {
	pos := components.Position{X: 50, Y: 50}
	vel := components.Velocity{X: 10, Y: -20}
	Bounce(&pos, &vel, 5, Bounds{Width: 100, Height: 100}, 0.5)

	if pos.X != 55 || pos.Y != 40 {
		t.Errorf("expected (55,40), got (%f,%f)", pos.X, pos.Y)
	}
	if vel.X != 10 || vel.Y != -20 {
		t.Errorf("expected velocity unchanged, got (%f,%f)", vel.X, vel.Y)
	}
}

func TestBounceReflectsAtEdges(t *testing.T) {
	b := Bounds{Width: 100, Height: 80}

	tests := []struct {
		name     string
		pos      components.Position
		vel      components.Velocity
		wantPos  components.Position
		wantVelX float32
		wantVelY float32
	}{
		{"right", components.Position{X: 90, Y: 40}, components.Velocity{X: 20}, components.Position{X: 70, Y: 40}, -20, 0},
		{"left", components.Position{X: 12, Y: 40}, components.Velocity{X: -4}, components.Position{X: 12, Y: 40}, 4, 0},
		{"left_hit", components.Position{X: 11, Y: 40}, components.Velocity{X: -6}, components.Position{X: 15, Y: 40}, 6, 0},
		{"bottom", components.Position{X: 50, Y: 68}, components.Velocity{Y: 4}, components.Position{X: 50, Y: 68}, 0, -4},
	}
	for _, tc := range tests {
		pos, vel := tc.pos, tc.vel
		Bounce(&pos, &vel, 10, b, 1)
		if pos != tc.wantPos {
			t.Errorf("%s: expected position %v, got %v", tc.name, tc.wantPos, pos)
		}
		if vel.X != tc.wantVelX || vel.Y != tc.wantVelY {
			t.Errorf("%s: expected velocity (%f,%f), got (%f,%f)", tc.name, tc.wantVelX, tc.wantVelY, vel.X, vel.Y)
		}
	}
}

func TestBounceStaysInsideOnLongStep(t *testing.T) {
	pos := components.Position{X: 50, Y: 50}
	vel := components.Velocity{X: 1000, Y: -1000}
	Bounce(&pos, &vel, 10, Bounds{Width: 100, Height: 100}, 1)

	if pos.X < 10 || pos.X > 90 || pos.Y < 10 || pos.Y > 90 {
		t.Errorf("expected source kept inside [10,90], got (%f,%f)", pos.X, pos.Y)
	}
}

func TestBounceOversizedSourcePinned(t *testing.T) {
	pos := components.Position{X: 3, Y: 30}
	vel := components.Velocity{X: 5, Y: 0}
	Bounce(&pos, &vel, 40, Bounds{Width: 60, Height: 200}, 1)
	if pos.X != 30 {
		t.Errorf("expected source wider than the canvas pinned to x=30, got %f", pos.X)
	}
}

func TestBounceSystemSkipsDragged(t *testing.T) {
	w := ecs.NewWorld()
	mapper := ecs.NewMap3[components.Position, components.Velocity, components.Body](w)
	dragged := ecs.NewMap[components.Dragged](w)
	posMap := ecs.NewMap[components.Position](w)

	free := mapper.NewEntity(
		&components.Position{X: 50, Y: 50},
		&components.Velocity{X: 10, Y: 0},
		&components.Body{Radius: 5},
	)
	held := mapper.NewEntity(
		&components.Position{X: 20, Y: 20},
		&components.Velocity{X: 10, Y: 0},
		&components.Body{Radius: 5},
	)
	dragged.Add(held, &components.Dragged{})

	sys := NewBounceSystem(w, Bounds{Width: 100, Height: 100})
	sys.Update(1)

	if p := posMap.Get(free); p.X != 60 {
		t.Errorf("expected free source to move to x=60, got %f", p.X)
	}
	if p := posMap.Get(held); p.X != 20 {
		t.Errorf("expected dragged source to stay at x=20, got %f", p.X)
	}

	// Zero dt is a no-op
	sys.Update(0)
	if p := posMap.Get(free); p.X != 60 {
		t.Errorf("expected no motion for dt=0, got %f", p.X)
	}
}
