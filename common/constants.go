package common

const (
	BaseWidth  = 1280
	BaseHeight = 720

	// PixelsPerUnit converts the game's world units to pixels.
	PixelsPerUnit = 48.0

	// MovingThreshold is the speed, in pixels/second, above which an entity
	// counts as moving.
	MovingThreshold = 0.1 * PixelsPerUnit
)
