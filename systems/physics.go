// Package systems contains the metaball field pipeline and the ECS systems
// that move its influence sources.
package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/metaballs/components"
)

// Bounds represents the canvas bounds sources move within.
type Bounds struct {
	Width, Height float32
}

// BounceSystem moves sources by their velocity and reflects them off the
// canvas edges. Dragged sources are left to the pointer.
type BounceSystem struct {
	filter *ecs.Filter3[components.Position, components.Velocity, components.Body]
	bounds Bounds
}

// NewBounceSystem creates a new bounce system.
func NewBounceSystem(w *ecs.World, bounds Bounds) *BounceSystem {
	return &BounceSystem{
		filter: ecs.NewFilter3[components.Position, components.Velocity, components.Body](w).
			Without(ecs.C[components.Dragged]()),
		bounds: bounds,
	}
}

// SetBounds updates the canvas bounds.
func (s *BounceSystem) SetBounds(b Bounds) {
	s.bounds = b
}

// Update advances every free source by dt seconds.
func (s *BounceSystem) Update(dt float32) {
	if dt <= 0 {
		return
	}
	query := s.filter.Query()
	for query.Next() {
		pos, vel, body := query.Get()
		Bounce(pos, vel, body.Radius, s.bounds, dt)
	}
}

// Bounce integrates one step and keeps the circle inside bounds, flipping the
// velocity component that pushed it out. A circle wider than the bounds is
// pinned to the center on that axis.
func Bounce(pos *components.Position, vel *components.Velocity, radius float32, b Bounds, dt float32) {
	pos.X += vel.X * dt
	pos.Y += vel.Y * dt

	pos.X, vel.X = reflectAxis(pos.X, vel.X, radius, b.Width)
	pos.Y, vel.Y = reflectAxis(pos.Y, vel.Y, radius, b.Height)
}

func reflectAxis(p, v, radius, size float32) (float32, float32) {
	lo, hi := radius, size-radius
	if lo > hi {
		return size / 2, v
	}
	if p < lo {
		p = lo + (lo - p)
		v = absf(v)
	} else if p > hi {
		p = hi - (p - hi)
		v = -absf(v)
	}
	// A step longer than the span can overshoot the far side too
	return clampFloat(p, lo, hi), v
}

func absf(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
