package component

// RenderLayer orders drawing, lowest first. Backgrounds use negative
// indices so they stay behind the floor at 0.
type RenderLayer struct {
	Index int
}

var RenderLayerComponent = NewComponent[RenderLayer]()
