package game

import "github.com/mlange-42/ark/ecs"

// SpawnSource creates a source at canvas position (x, y) moving at (vx, vy)
// pixels per second.
func (g *Game) SpawnSource(x, y, vx, vy, radius float32) ecs.Entity {
	return g.scene.Spawn(x, y, vx, vy, radius)
}

// SpawnAt creates a random-radius source at a canvas point, used for clicks.
func (g *Game) SpawnAt(x, y float32) ecs.Entity {
	return g.scene.SpawnAt(x, y)
}

// RemoveSource deletes a source. Returns false if it no longer exists.
func (g *Game) RemoveSource(e ecs.Entity) bool {
	return g.scene.Remove(e)
}

// SourceCount returns the number of live sources.
func (g *Game) SourceCount() int {
	return g.scene.Count()
}

// Respawn replaces all sources with a fresh random set.
func (g *Game) Respawn() {
	g.scene.Respawn()
	g.sources = g.scene.Collect()
}
