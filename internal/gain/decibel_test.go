package gain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLinearToDecibel(t *testing.T) {
	tests := []struct {
		name   string
		linear float64
		want   float64
	}{
		{"unity", 1, 0},
		{"tenth", 0.1, -20},
		{"double", 2, 20 * math.Log10(2)},
		{"zero is floor", 0, Floor},
		{"negative is floor", -0.5, Floor},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, LinearToDecibel(tt.linear), 1e-9)
		})
	}
}

func TestDecibelToLinear(t *testing.T) {
	assert.InDelta(t, 1.0, DecibelToLinear(0), 1e-12)
	assert.InDelta(t, 0.1, DecibelToLinear(-20), 1e-12)
	assert.InDelta(t, 1e-4, DecibelToLinear(Floor), 1e-12)
}

func TestRoundTrip(t *testing.T) {
	for _, v := range []float64{0.01, 0.25, 0.5, 0.8, 1, 1.5} {
		assert.InDelta(t, v, DecibelToLinear(LinearToDecibel(v)), 1e-9)
	}
}
