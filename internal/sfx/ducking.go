package sfx

import (
	"math"

	"github.com/llehouerou/soundkit/internal/clip"
)

// Ducking windows, in seconds between start instants.
const (
	duckSilenceWindow = 0.025
	duckStrongWindow  = 0.05
	duckLightWindow   = 0.1

	duckStrongFactor = 0.8
	duckLightFactor  = 0.9
)

// DuckingFactor returns the volume multiplier for a play of c starting at
// device time at, given the plays in active. Only audible plays of the same
// clip count. A play starting within 25ms of another silences it, closer
// than 50ms scales by 0.8 and closer than 100ms by 0.9. Factors compound.
func DuckingFactor(active []*Handle, c *clip.Clip, at float64) float64 {
	factor := 1.0
	for _, h := range active {
		v := h.voice
		if v.clip != c || v.unit.Volume() <= 0 {
			continue
		}
		diff := math.Abs(at - v.startTime)
		switch {
		case diff < duckSilenceWindow:
			return 0
		case diff < duckStrongWindow:
			factor *= duckStrongFactor
		case diff < duckLightWindow:
			factor *= duckLightFactor
		}
	}
	return factor
}
