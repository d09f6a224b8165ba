package player

import "math"

// silentVolume is low enough to be inaudible on beep's base-2 scale.
const silentVolume = -10

func clampLevel(level float64) float64 {
	return min(max(level, 0), 1)
}

// levelToVolume converts a 0.0-1.0 level to beep's Volume value.
// beep treats Volume as a base-2 exponent: 0 is unchanged, -1 is half, -2 a quarter.
// We map: 1.0 -> 0, 0.5 -> -1, 0.25 -> -2, 0 -> -10 (essentially silent)
func levelToVolume(level float64) float64 {
	if level <= 0 {
		return silentVolume
	}
	if level >= 1 {
		return 0
	}
	return math.Log2(level)
}
