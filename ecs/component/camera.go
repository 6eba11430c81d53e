package component

// Camera follows a target. The camera entity's Transform is the top-left
// corner of the view in world space.
type Camera struct {
	TargetName string
	Zoom       float64
	Smoothness float64
	// ViewWidth and ViewHeight are the screen size in pixels, refreshed by
	// CameraSystem every tick.
	ViewWidth  float64
	ViewHeight float64
}

var CameraComponent = NewComponent[Camera]()
