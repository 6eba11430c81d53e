package component

// LevelBounds is the play area, anchored at the world origin. Physics walls
// sit on its edges and the camera view is clamped inside it.
type LevelBounds struct {
	Width  float64
	Height float64
}

var LevelBoundsComponent = NewComponent[LevelBounds]()
