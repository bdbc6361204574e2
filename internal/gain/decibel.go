// Package gain converts between linear amplitude and decibels.
package gain

import "math"

// Floor is the decibel value reported for silence (linear <= 0).
const Floor = -80.0

// LinearToDecibel converts a linear amplitude to decibels.
func LinearToDecibel(linear float64) float64 {
	if linear <= 0 {
		return Floor
	}
	return 20 * math.Log10(linear)
}

// DecibelToLinear converts decibels to a linear amplitude.
func DecibelToLinear(db float64) float64 {
	return math.Pow(10, db/20)
}
