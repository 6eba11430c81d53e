package component

import "image/color"

// Pickup is an item the player collects by staying within Radius for
// PickupTime seconds. Progress decays after the player leaves.
type Pickup struct {
	Name          string
	Radius        float64
	PickupTime    float64
	DecreaseDelay float64
	DecreaseSpeed float64

	Progress           float64
	InRange            bool
	TimeSinceLeftRange float64

	Bar ProgressBar
}

// ProgressBar describes the world-space bar drawn above a pickup.
type ProgressBar struct {
	OffsetX    float64
	OffsetY    float64
	Width      float64
	Height     float64
	Fill       color.Color
	Background color.Color
	Visible    bool
	// FillWidth is Progress*Width, anchored at the bar's left edge.
	FillWidth float64
}

var PickupComponent = NewComponent[Pickup]()
