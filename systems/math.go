package systems

import "math"

// Clamp functions for common value ranges

// clampFloat clamps a float32 value between min and max.
func clampFloat(v, minVal, maxVal float32) float32 {
	if v < minVal {
		return minVal
	}
	if v > maxVal {
		return maxVal
	}
	return v
}

// clamp01 clamps a float32 value to the [0, 1] range.
func clamp01(v float32) float32 {
	return clampFloat(v, 0, 1)
}

// Distance functions

// distanceSq returns the squared distance between two points.
func distanceSq(x1, y1, x2, y2 float32) float32 {
	dx := x1 - x2
	dy := y1 - y2
	return dx*dx + dy*dy
}

// Integer helpers

// roundInt rounds half away from zero to the nearest int.
func roundInt(v float32) int {
	return int(math.Round(float64(v)))
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// lerp linearly interpolates between a and b.
func lerp(a, b, t float32) float32 {
	return a + (b-a)*t
}
