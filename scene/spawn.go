package scene

import (
	"math"
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/metaballs/components"
)

// SpawnInitial creates the configured number of random sources.
func (s *Scene) SpawnInitial() {
	for i := 0; i < s.spawn.Count; i++ {
		s.SpawnRandom()
	}
}

// SpawnRandom creates a source with a random radius, position and heading,
// placed fully inside the canvas when it fits.
func (s *Scene) SpawnRandom() ecs.Entity {
	radius := s.randomRadius()
	x := randSpan(s.rng, radius, s.bounds.Width-radius)
	y := randSpan(s.rng, radius, s.bounds.Height-radius)
	vx, vy := s.randomVelocity()
	return s.Spawn(x, y, vx, vy, radius)
}

// SpawnAt creates a random-radius source centered on a canvas point.
func (s *Scene) SpawnAt(x, y float32) ecs.Entity {
	radius := s.randomRadius()
	vx, vy := s.randomVelocity()
	return s.Spawn(x, y, vx, vy, radius)
}

// Spawn creates a source at canvas position (x, y) moving at (vx, vy)
// pixels per second.
func (s *Scene) Spawn(x, y, vx, vy, radius float32) ecs.Entity {
	pos := components.Position{X: x, Y: y}
	vel := components.Velocity{X: vx, Y: vy}
	body := components.Body{Radius: radius}
	return s.sourceMapper.NewEntity(&pos, &vel, &body)
}

// Remove deletes a source. Returns false if it no longer exists.
func (s *Scene) Remove(e ecs.Entity) bool {
	if !s.world.Alive(e) {
		return false
	}
	if s.drag.active && s.drag.entity == e {
		s.drag = dragState{}
	}
	s.world.RemoveEntity(e)
	return true
}

// Clear removes every source.
func (s *Scene) Clear() {
	// Collect first: entities cannot be removed while a query is open
	var toRemove []ecs.Entity
	query := s.sourceFilter.Query()
	for query.Next() {
		toRemove = append(toRemove, query.Entity())
	}
	s.drag = dragState{}
	for _, e := range toRemove {
		s.world.RemoveEntity(e)
	}
	s.sources = s.sources[:0]
	s.entities = s.entities[:0]
}

// Respawn replaces all sources with a fresh random set.
func (s *Scene) Respawn() {
	s.Clear()
	s.SpawnInitial()
}

func (s *Scene) randomRadius() float32 {
	return randRange(s.rng, s.spawn.MinRadius, s.spawn.MaxRadius)
}

func (s *Scene) randomVelocity() (float32, float32) {
	heading := s.rng.Float32() * 2 * math.Pi
	speed := randRange(s.rng, 0.25, 1) * s.spawn.MaxSpeed
	return polar(heading, speed)
}

// randRange returns a uniform value in [lo, hi).
func randRange(rng *rand.Rand, lo, hi float32) float32 {
	return lo + rng.Float32()*(hi-lo)
}

// randSpan is randRange that falls back to the midpoint when the range is
// empty, as for a source wider than the canvas.
func randSpan(rng *rand.Rand, lo, hi float32) float32 {
	if hi <= lo {
		return (lo + hi) / 2
	}
	return randRange(rng, lo, hi)
}

// polar converts a heading in radians and a speed to a velocity.
func polar(heading, speed float32) (float32, float32) {
	return float32(math.Cos(float64(heading))) * speed, float32(math.Sin(float64(heading))) * speed
}
