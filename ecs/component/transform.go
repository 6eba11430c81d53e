package component

// Transform is a world-space placement. Z is depth and is only carried
// through; draw order comes from RenderLayer.
type Transform struct {
	X        float64
	Y        float64
	Z        float64
	ScaleX   float64
	ScaleY   float64
	Rotation float64
}

var TransformComponent = NewComponent[Transform]()
