package components

// Body holds the influence radius of a metaball source.
type Body struct {
	Radius float32
}

// Dragged marks a source held by the pointer. Motion skips it and it
// follows the pointer instead.
type Dragged struct {
	OffsetX, OffsetY float32 // grab point relative to the center
}
