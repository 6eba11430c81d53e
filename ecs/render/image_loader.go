package render

import (
	"fmt"
	"image/color"
	"math/rand"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/topdown/prefabs"
	"golang.org/x/image/colornames"
)

// LoadImage builds the sprite described by spec and caches it.
func LoadImage(spec prefabs.SpriteSpec) (*ebiten.Image, error) {
	if spec.Width <= 0 || spec.Height <= 0 {
		return nil, fmt.Errorf("render: sprite %q has no size", spec.Shape)
	}
	key := spriteKey(spec)
	if img, ok := cachedImage(key); ok {
		return img, nil
	}

	img := ebiten.NewImage(spec.Width, spec.Height)
	base := spec.Color.Or(colornames.White)
	accent := spec.Accent.Or(base)
	w, h := float32(spec.Width), float32(spec.Height)
	rng := rand.New(rand.NewSource(spec.Seed))

	switch spec.Shape {
	case "", "rect":
		img.Fill(base)
	case "circle":
		r := min(w, h) / 2
		vector.DrawFilledCircle(img, w/2, h/2, r, base, true)
		// a notch so rotation is visible
		vector.DrawFilledCircle(img, w/2, h/2-r*0.6, r*0.25, accent, true)
	case "clouds":
		for i := 0; i < 7; i++ {
			cx := w*0.15 + rng.Float32()*w*0.7
			cy := h*0.4 + rng.Float32()*h*0.25
			r := h * (0.25 + rng.Float32()*0.2)
			vector.DrawFilledCircle(img, cx, cy, r, base, true)
		}
	case "hills":
		for i := 0; i < 5; i++ {
			cx := float32(i) * w / 4
			r := h * (0.55 + rng.Float32()*0.35)
			clr := base
			if i%2 == 1 {
				clr = accent
			}
			vector.DrawFilledCircle(img, cx, h, r, clr, true)
		}
	case "stars":
		img.Fill(base)
		for i := 0; i < spec.Width*spec.Height/900; i++ {
			x := rng.Float32() * w
			y := rng.Float32() * h
			vector.DrawFilledRect(img, x, y, 1+rng.Float32(), 1+rng.Float32(), accent, false)
		}
	default:
		return nil, fmt.Errorf("render: unknown sprite shape %q", spec.Shape)
	}

	storeImage(key, img)
	return img, nil
}

func spriteKey(spec prefabs.SpriteSpec) string {
	return fmt.Sprintf("%s/%dx%d/%v/%v/%d", spec.Shape, spec.Width, spec.Height, rgba(spec.Color.Or(nil)), rgba(spec.Accent.Or(nil)), spec.Seed)
}

func rgba(c color.Color) [4]uint32 {
	if c == nil {
		return [4]uint32{}
	}
	r, g, b, a := c.RGBA()
	return [4]uint32{r, g, b, a}
}
