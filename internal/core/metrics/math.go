// Package metrics reduces a record set into report structures
// every reducer is a pure function over its input and allocates its own accumulators
package metrics

import "math"

// Round2 rounds to two decimal places, half away from zero
func Round2(x float64) float64 { return math.Round(x*100) / 100 }

// Percent returns n as a rounded percentage of total, 0 when total is 0
func Percent(n, total int) float64 {
	if total <= 0 {
		return 0
	}
	return Round2(float64(n) / float64(total) * 100)
}

// ratio returns sum/n rounded, 0 when n is 0
func ratio(sum float64, n int) float64 {
	if n <= 0 {
		return 0
	}
	return Round2(sum / float64(n))
}
