package schema

import "math"

// SafeRatio returns num/den, or 0 when den is not positive.
func SafeRatio(num, den int) float64 {
	if den <= 0 {
		return 0
	}
	return float64(num) / float64(den)
}

// Round2 rounds a value to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Percent converts a ratio into a percentage rounded to two decimals.
func Percent(ratio float64) float64 {
	return Round2(ratio * 100)
}
