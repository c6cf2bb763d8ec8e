package mathx

import "math"

// RoundTo rounds x to the given number of decimal places, halves away from zero.
func RoundTo(x float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(x*p) / p
}

// Ratio returns n/capacity, treating a non-positive capacity as fully used.
func Ratio(n int, capacity float64) float64 {
	if capacity <= 0 {
		return 1
	}
	return float64(n) / capacity
}
