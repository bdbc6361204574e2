package clip

import "math"

// DetectRange finds the audible part of a clip: start is the first frame and
// end one past the last frame holding a sample whose magnitude exceeds
// threshold. Only the clip's own channels are inspected. ok is false for a
// fully silent clip.
func DetectRange(c *Clip, threshold float64) (start, end int, ok bool) {
	channels := min(max(c.Channels(), 1), 2)

	audible := func(f [2]float64) bool {
		for ch := range channels {
			if math.Abs(f[ch]) > threshold {
				return true
			}
		}
		return false
	}

	frames := c.Frames()
	start = -1
	for i, f := range frames {
		if audible(f) {
			start = i
			break
		}
	}
	if start < 0 {
		return 0, 0, false
	}
	for i := len(frames) - 1; i >= start; i-- {
		if audible(frames[i]) {
			end = i + 1
			break
		}
	}
	return start, end, true
}
