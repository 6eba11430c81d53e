package component

// PlayerTag marks the entity the camera, pickups and parallax layers follow.
type PlayerTag struct{}

var PlayerTagComponent = NewComponent[PlayerTag]()

type CameraTag struct{}

var CameraTagComponent = NewComponent[CameraTag]()
