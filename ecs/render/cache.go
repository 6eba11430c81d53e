package render

import "github.com/hajimehoshi/ebiten/v2"

// images holds generated sprites by spec key. Layer copies built from the
// same shape, size, colors and seed share one image.
var images = map[string]*ebiten.Image{}

func cachedImage(key string) (*ebiten.Image, bool) {
	img, ok := images[key]
	return img, ok && img != nil
}

func storeImage(key string, img *ebiten.Image) {
	if key == "" || img == nil {
		return
	}
	images[key] = img
}

// CachedImages returns the number of distinct sprites generated so far.
func CachedImages() int {
	return len(images)
}
