package common

import "math"

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

func Clamp01(t float64) float64 {
	return math.Max(0, math.Min(1, t))
}

// LerpClamped interpolates with t clamped to [0,1].
func LerpClamped(a, b, t float64) float64 {
	return Lerp(a, b, Clamp01(t))
}

// WrapAngle maps a to (-pi, pi].
func WrapAngle(a float64) float64 {
	a = math.Mod(a+math.Pi, 2*math.Pi)
	if a <= 0 {
		a += 2 * math.Pi
	}
	return a - math.Pi
}

// LerpAngle turns from a toward b along the shorter arc, t clamped to [0,1].
func LerpAngle(a, b, t float64) float64 {
	return a + WrapAngle(b-a)*Clamp01(t)
}
