package components

// Position represents a source's canvas position in pixels.
type Position struct {
	X, Y float32
}

// Velocity represents a source's velocity in pixels per second.
type Velocity struct {
	X, Y float32
}
