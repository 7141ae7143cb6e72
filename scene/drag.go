package scene

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/metaballs/components"
)

// dragState tracks the source held by the pointer.
type dragState struct {
	entity ecs.Entity
	active bool
}

// SourceAt returns the source whose circle contains canvas point (x, y).
// When circles overlap the one with the nearest center wins.
func (s *Scene) SourceAt(x, y float32) (ecs.Entity, bool) {
	var closest ecs.Entity
	closestDist := float32(0)
	found := false

	// No early break: the query must run to the end to release the world lock
	query := s.sourceFilter.Query()
	for query.Next() {
		pos, _, body := query.Get()
		dx, dy := x-pos.X, y-pos.Y
		d2 := dx*dx + dy*dy
		if d2 > body.Radius*body.Radius {
			continue
		}
		if !found || d2 < closestDist {
			closestDist = d2
			closest = query.Entity()
			found = true
		}
	}
	return closest, found
}

// BeginDrag picks up the source under (x, y) and stops it, so it stays where
// it is dropped. Returns false if there is none.
func (s *Scene) BeginDrag(x, y float32) bool {
	s.EndDrag()
	e, ok := s.SourceAt(x, y)
	if !ok {
		return false
	}
	pos := s.posMap.Get(e)
	*s.velMap.Get(e) = components.Velocity{}
	s.draggedMap.Add(e, &components.Dragged{OffsetX: pos.X - x, OffsetY: pos.Y - y})
	s.drag = dragState{entity: e, active: true}
	return true
}

// DragTo moves the held source so its grab point follows (x, y), keeping the
// center on the canvas.
func (s *Scene) DragTo(x, y float32) {
	if !s.drag.active || !s.world.Alive(s.drag.entity) {
		return
	}
	d := s.draggedMap.Get(s.drag.entity)
	pos := s.posMap.Get(s.drag.entity)
	pos.X = clamp(x+d.OffsetX, 0, s.bounds.Width)
	pos.Y = clamp(y+d.OffsetY, 0, s.bounds.Height)
}

// EndDrag releases the held source back to the motion system.
func (s *Scene) EndDrag() {
	if !s.drag.active {
		return
	}
	if s.world.Alive(s.drag.entity) && s.draggedMap.Has(s.drag.entity) {
		s.draggedMap.Remove(s.drag.entity)
	}
	s.drag = dragState{}
}

// Dragging returns the held source, if any.
func (s *Scene) Dragging() (ecs.Entity, bool) {
	return s.drag.entity, s.drag.active
}

// SelectedIndex returns the index of the held source in the last collected
// snapshot, or -1.
func (s *Scene) SelectedIndex() int {
	if !s.drag.active {
		return -1
	}
	for i, e := range s.entities {
		if e == s.drag.entity {
			return i
		}
	}
	return -1
}

// clamp restricts a value to a range.
func clamp(x, lo, hi float32) float32 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
