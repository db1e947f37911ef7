// Package util provides shared helpers: rounding and wind direction
// formatting. Rounding is half away from zero everywhere (math.Round);
// callers rely on that rule being uniform across the codebase.
package util

import (
	"math"
	"strconv"
)

// ─── Rounding ─────────────────────────────────────────────────────────────────

// RoundInt rounds to the nearest integer, half away from zero.
func RoundInt(v float64) int {
	return int(math.Round(v))
}

// Round1 rounds to one decimal place, half away from zero.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// Round2 rounds to two decimal places, half away from zero.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// ─── Formatting ───────────────────────────────────────────────────────────────

// compassPoints are the 16 points of the compass, clockwise from north.
var compassPoints = []string{
	"N", "NNE", "NE", "ENE", "E", "ESE", "SE", "SSE",
	"S", "SSW", "SW", "WSW", "W", "WNW", "NW", "NNW",
}

// Compass converts a wind direction in degrees to a compass point label.
// Degrees outside [0,360) are normalised first.
func Compass(deg int) string {
	d := deg % 360
	if d < 0 {
		d += 360
	}
	idx := RoundInt(float64(d)/22.5) % 16
	return compassPoints[idx]
}

// FormatFloat formats a float for display with no trailing zeros.
func FormatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
