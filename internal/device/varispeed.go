package device

import (
	"fmt"

	"github.com/gopxl/beep/v2"
)

var _ beep.StreamSeeker = (*varispeed)(nil)

// varispeed reads clip frames at a variable rate with linear interpolation.
//
// beep.Resampler pulls its source in 512-frame blocks, so the source position
// runs ahead of what was actually heard. Reading the frames directly keeps
// Position exact, which the end-sample and loop checks depend on.
type varispeed struct {
	frames [][2]float64
	pos    float64
	ratio  float64
}

func (v *varispeed) Stream(samples [][2]float64) (n int, ok bool) {
	last := len(v.frames) - 1
	for n < len(samples) {
		i := int(v.pos)
		if i > last {
			break
		}
		frac := v.pos - float64(i)
		if frac == 0 || i == last {
			samples[n] = v.frames[i]
		} else {
			a, b := v.frames[i], v.frames[i+1]
			samples[n] = [2]float64{
				a[0] + (b[0]-a[0])*frac,
				a[1] + (b[1]-a[1])*frac,
			}
		}
		v.pos += v.ratio
		n++
	}
	if n == 0 {
		return 0, false
	}
	return n, true
}

func (v *varispeed) Err() error { return nil }

func (v *varispeed) Len() int { return len(v.frames) }

func (v *varispeed) Position() int {
	return min(int(v.pos), len(v.frames))
}

func (v *varispeed) Seek(p int) error {
	if p < 0 || p > len(v.frames) {
		return fmt.Errorf("seek position %d out of range [0, %d]", p, len(v.frames))
	}
	v.pos = float64(p)
	return nil
}
