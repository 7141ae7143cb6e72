package game

import "github.com/mlange-42/ark/ecs"

// SourceAt returns the source under canvas point (x, y), nearest center first.
func (g *Game) SourceAt(x, y float32) (ecs.Entity, bool) {
	return g.scene.SourceAt(x, y)
}

// BeginDrag picks up the source under (x, y). Returns false if there is none.
func (g *Game) BeginDrag(x, y float32) bool {
	return g.scene.BeginDrag(x, y)
}

// DragTo moves the held source with the pointer.
func (g *Game) DragTo(x, y float32) {
	g.scene.DragTo(x, y)
}

// EndDrag releases the held source.
func (g *Game) EndDrag() {
	g.scene.EndDrag()
}

// Dragging returns the held source, if any.
func (g *Game) Dragging() (ecs.Entity, bool) {
	return g.scene.Dragging()
}

// selectedIndex returns the index of the held source in the last frame's
// source list, or -1.
func (g *Game) selectedIndex() int {
	return g.scene.SelectedIndex()
}
