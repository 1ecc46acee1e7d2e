package services_test

import "math"

// floatClose mirrors the internal test helper for the external test package.
func floatClose(a, b float64) bool {
	return math.Abs(a-b) < 0.001
}
