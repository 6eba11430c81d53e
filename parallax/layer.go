package parallax

import (
	"errors"
	"fmt"
)

var (
	ErrStrengthOutOfRange = errors.New("parallax: strength must be in [0,1]")
	ErrNegativeWrapMargin = errors.New("parallax: wrap margin must be >= 0")
	ErrWrapMarginTooWide  = errors.New("parallax: wrap margin too wide for viewport")
)

// Default settings for layers added at runtime through AddLayer.
const (
	DefaultDriftSpeed = 0.5
	DefaultWrapMargin = 20.0
)

// Positionable is a non-owning reference to an entity whose position the
// manager may read and write. The manager never creates or destroys it.
//
// A Positionable may also implement interface{ Alive() bool }; a handle
// reporting false is skipped.
type Positionable interface {
	Position() Vec3
	SetPosition(Vec3)
}

// Target is the entity whose motion drives the layers.
type Target interface {
	Position() Vec3
}

// Viewport is the camera window used for wrap bounds. Position is its center.
type Viewport interface {
	Position() Vec3
	HalfHeight() float64
	Aspect() float64
}

// LayerConfig holds the per-layer options.
type LayerConfig struct {
	ParallaxStrength float64
	DriftSpeed       float64
	WrapEnabled      bool
	WrapMargin       float64
}

// DefaultLayerConfig returns the settings AddLayer uses.
func DefaultLayerConfig(strength float64) LayerConfig {
	return LayerConfig{
		ParallaxStrength: strength,
		DriftSpeed:       DefaultDriftSpeed,
		WrapEnabled:      true,
		WrapMargin:       DefaultWrapMargin,
	}
}

// Validate reports configurations outside the documented ranges.
func (c LayerConfig) Validate() error {
	if c.ParallaxStrength < 0 || c.ParallaxStrength > 1 {
		return fmt.Errorf("%w: got %g", ErrStrengthOutOfRange, c.ParallaxStrength)
	}
	if c.WrapMargin < 0 {
		return fmt.Errorf("%w: got %g", ErrNegativeWrapMargin, c.WrapMargin)
	}
	return nil
}

// Layer is one scrolling background plane.
type Layer struct {
	Handle Positionable
	LayerConfig

	start Vec3
}

// NewLayer builds a layer around handle with cfg.
func NewLayer(handle Positionable, cfg LayerConfig) Layer {
	return Layer{Handle: handle, LayerConfig: cfg}
}

// StartPosition returns the position recorded when the layer was registered.
func (l *Layer) StartPosition() Vec3 {
	return l.start
}

func (l *Layer) usable() bool {
	if l == nil || l.Handle == nil {
		return false
	}
	if a, ok := l.Handle.(interface{ Alive() bool }); ok && !a.Alive() {
		return false
	}
	return true
}

// LayerHandle identifies a layer registered with a Manager.
type LayerHandle int
