// Package core provides fundamental types and utilities shared by the arena
// simulation packages. It contains no external dependencies (especially no
// Bubble Tea) to keep simulation logic pure and testable.
package core

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Approach moves current towards target by at most delta.
func Approach(current, target, delta float64) float64 {
	if current < target {
		return min(current+delta, target)
	}
	return max(current-delta, target)
}
