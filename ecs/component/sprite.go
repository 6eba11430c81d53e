package component

import "github.com/hajimehoshi/ebiten/v2"

// Sprite draws Image around (OriginX, OriginY), mirrored horizontally when
// FacingLeft is set.
type Sprite struct {
	Image      *ebiten.Image
	OriginX    float64
	OriginY    float64
	FacingLeft bool
}

var SpriteComponent = NewComponent[Sprite]()
