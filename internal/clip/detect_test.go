package clip

import (
	"testing"

	"github.com/gopxl/beep/v2"
	"github.com/stretchr/testify/assert"
)

func TestDetectRange(t *testing.T) {
	stereo := beep.Format{SampleRate: 100, NumChannels: 2}
	mono := beep.Format{SampleRate: 100, NumChannels: 1}

	padded := make([][2]float64, 10)
	padded[3] = [2]float64{0, 0.2}
	padded[6] = [2]float64{-0.4, 0}

	monoRight := make([][2]float64, 10)
	monoRight[4] = [2]float64{0, 0.9}

	tests := []struct {
		name      string
		clip      *Clip
		threshold float64
		wantStart int
		wantEnd   int
		wantOK    bool
	}{
		{"silent", New("s", stereo, make([][2]float64, 8)), 0, 0, 0, false},
		{"padded", New("p", stereo, padded), 0, 3, 7, true},
		{"threshold hides quiet start", New("p", stereo, padded), 0.3, 6, 7, true},
		{"mono ignores second channel", New("m", mono, monoRight), 0, 0, 0, false},
		{"full", New("f", stereo, ramp(5)[1:]), 0, 0, 4, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end, ok := DetectRange(tt.clip, tt.threshold)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantStart, start)
			assert.Equal(t, tt.wantEnd, end)
		})
	}
}
