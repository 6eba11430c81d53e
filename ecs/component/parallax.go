package component

// ParallaxLayer marks a background entity driven by ParallaxSystem.
type ParallaxLayer struct {
	Name        string
	Strength    float64
	DriftSpeed  float64
	WrapEnabled bool
	WrapMargin  float64

	// Registered is set once the layer has been handed to the manager.
	Registered bool
	Handle     int
}

var ParallaxLayerComponent = NewComponent[ParallaxLayer]()

// ParallaxResetRequest asks ParallaxSystem to move every layer back to its
// start position. The system removes the request once handled.
type ParallaxResetRequest struct{}

var ParallaxResetRequestComponent = NewComponent[ParallaxResetRequest]()
