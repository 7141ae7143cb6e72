// Package scene owns the moving influence sources: an ark world of
// position, velocity and body components, the bounce system that moves
// them, and pointer dragging. It has no rendering dependencies so every
// host can share it.
package scene

import (
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/metaballs/components"
	"github.com/pthm-cable/metaballs/systems"
)

// SpawnConfig bounds randomly spawned sources.
type SpawnConfig struct {
	Count     int
	MinRadius float32
	MaxRadius float32
	MaxSpeed  float32 // pixels per second
}

// Scene holds the sources of one canvas.
type Scene struct {
	world *ecs.World
	rng   *rand.Rand
	spawn SpawnConfig

	sourceMapper *ecs.Map3[components.Position, components.Velocity, components.Body]
	sourceFilter *ecs.Filter3[components.Position, components.Velocity, components.Body]
	posMap       *ecs.Map[components.Position]
	velMap       *ecs.Map[components.Velocity]
	draggedMap   *ecs.Map[components.Dragged]

	bounce *systems.BounceSystem
	bounds systems.Bounds

	// Snapshot from the last Collect, index-aligned
	sources  []systems.Source
	entities []ecs.Entity

	drag dragState
}

// New creates an empty scene on a canvas of the given bounds.
func New(bounds systems.Bounds, spawn SpawnConfig, seed int64) *Scene {
	world := ecs.NewWorld()
	return &Scene{
		world:        world,
		rng:          rand.New(rand.NewSource(seed)),
		spawn:        spawn,
		sourceMapper: ecs.NewMap3[components.Position, components.Velocity, components.Body](world),
		sourceFilter: ecs.NewFilter3[components.Position, components.Velocity, components.Body](world),
		posMap:       ecs.NewMap[components.Position](world),
		velMap:       ecs.NewMap[components.Velocity](world),
		draggedMap:   ecs.NewMap[components.Dragged](world),
		bounce:       systems.NewBounceSystem(world, bounds),
		bounds:       bounds,
	}
}

// Bounds returns the canvas bounds.
func (s *Scene) Bounds() systems.Bounds {
	return s.bounds
}

// SetBounds changes the canvas size. Sources outside are pushed back in on
// the next step.
func (s *Scene) SetBounds(b systems.Bounds) {
	s.bounds = b
	s.bounce.SetBounds(b)
}

// Step advances every free source by dt seconds.
func (s *Scene) Step(dt float32) {
	s.bounce.Update(dt)
}

// Collect snapshots source positions for the renderer and returns them. The
// renderer only reads the slice, so sources stay fixed for the whole frame.
// The slice is reused by the next Collect.
func (s *Scene) Collect() []systems.Source {
	s.sources = s.sources[:0]
	s.entities = s.entities[:0]

	query := s.sourceFilter.Query()
	for query.Next() {
		pos, _, body := query.Get()
		s.sources = append(s.sources, systems.Source{X: pos.X, Y: pos.Y, Radius: body.Radius})
		s.entities = append(s.entities, query.Entity())
	}
	return s.sources
}

// Sources returns the last collected snapshot.
func (s *Scene) Sources() []systems.Source {
	return s.sources
}

// Each calls fn with every live source's components.
func (s *Scene) Each(fn func(pos components.Position, vel components.Velocity, body components.Body)) {
	query := s.sourceFilter.Query()
	for query.Next() {
		pos, vel, body := query.Get()
		fn(*pos, *vel, *body)
	}
}

// Count returns the number of live sources.
func (s *Scene) Count() int {
	n := 0
	query := s.sourceFilter.Query()
	for query.Next() {
		n++
	}
	return n
}
