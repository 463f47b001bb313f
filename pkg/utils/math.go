package utils

import "math"

// RoundTo rounds x to the given number of decimal places, half away from zero.
func RoundTo(x float64, places int) float64 {
	shift := math.Pow(10, float64(places))
	return math.Round(x*shift) / shift
}

// Round1 rounds to one decimal place.
func Round1(x float64) float64 {
	return RoundTo(x, 1)
}

// Round2 rounds to two decimal places.
func Round2(x float64) float64 {
	return RoundTo(x, 2)
}
