// Package clip holds decoded audio clips in memory.
//
// A Clip is a fully decoded, resampled buffer of stereo frames. Clips are
// immutable once created and may be shared between any number of device
// units; each unit reads it through its own Streamer.
package clip

import (
	"fmt"
	"time"

	"github.com/gopxl/beep/v2"
)

// Clip is a decoded audio buffer.
type Clip struct {
	name   string
	format beep.Format
	frames [][2]float64
}

// New creates a clip from already decoded frames. The clip takes ownership of
// frames.
func New(name string, format beep.Format, frames [][2]float64) *Clip {
	if format.NumChannels <= 0 {
		format.NumChannels = 2
	}
	return &Clip{name: name, format: format, frames: frames}
}

// Name returns the clip name (usually the file it was loaded from).
func (c *Clip) Name() string { return c.name }

// Format returns the clip format.
func (c *Clip) Format() beep.Format { return c.format }

// SampleRate returns the clip sample rate.
func (c *Clip) SampleRate() beep.SampleRate { return c.format.SampleRate }

// Channels returns the number of channels of the source material.
func (c *Clip) Channels() int { return c.format.NumChannels }

// SampleCount returns the clip length in sample frames.
func (c *Clip) SampleCount() int { return len(c.frames) }

// Duration returns the clip length.
func (c *Clip) Duration() time.Duration {
	return c.format.SampleRate.D(len(c.frames))
}

// Frames gives raw access to the decoded frames. Callers must not modify them.
func (c *Clip) Frames() [][2]float64 { return c.frames }

// Streamer returns a seekable streamer over frames [from, to).
// It panics if the range is invalid, like beep.Buffer.Streamer.
func (c *Clip) Streamer(from, to int) beep.StreamSeeker {
	if from < 0 || to > len(c.frames) || from > to {
		panic(fmt.Sprintf("clip: invalid range [%d, %d) for %d frames", from, to, len(c.frames)))
	}
	return &frameStreamer{frames: c.frames[from:to]}
}

var _ beep.StreamSeeker = (*frameStreamer)(nil)

// frameStreamer streams a slice of frames and supports seeking.
type frameStreamer struct {
	frames [][2]float64
	pos    int
}

func (s *frameStreamer) Stream(samples [][2]float64) (n int, ok bool) {
	if s.pos >= len(s.frames) {
		return 0, false
	}
	n = copy(samples, s.frames[s.pos:])
	s.pos += n
	return n, true
}

func (s *frameStreamer) Err() error { return nil }

func (s *frameStreamer) Len() int { return len(s.frames) }

func (s *frameStreamer) Position() int { return s.pos }

func (s *frameStreamer) Seek(p int) error {
	if p < 0 || p > len(s.frames) {
		return fmt.Errorf("clip: seek position %d out of range [0, %d]", p, len(s.frames))
	}
	s.pos = p
	return nil
}
