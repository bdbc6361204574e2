package sfx

import (
	"context"

	"github.com/llehouerou/soundkit/internal/clip"
	"github.com/llehouerou/soundkit/internal/device"
)

// Handle controls one play. Once the play ends, or Release is called, every
// method except Done, Reason, Wait, IsReleased and StartTime returns
// ErrReleased.
type Handle struct {
	pool  *Pool
	voice *voice

	startTime  float64
	released   bool
	done       chan struct{}
	reason     EndReason
	fadeCancel context.CancelFunc
}

// IsReleased reports whether the handle is inert.
func (h *Handle) IsReleased() bool { return h.released }

// StartTime is the device clock instant the play started, or is scheduled
// to start, at.
func (h *Handle) StartTime() float64 { return h.startTime }

// Done is closed when the play ends.
func (h *Handle) Done() <-chan struct{} { return h.done }

// Reason returns why the play ended. Only meaningful after Done is closed.
func (h *Handle) Reason() EndReason { return h.reason }

// Wait blocks until the play ends or ctx is done.
func (h *Handle) Wait(ctx context.Context) (EndReason, error) {
	select {
	case <-h.done:
		return h.reason, nil
	case <-ctx.Done():
		return 0, ctx.Err()
	}
}

// Release makes the handle inert without stopping the play. The voice goes
// back to the pool when the play ends on its own.
func (h *Handle) Release() {
	h.cancelFade()
	h.released = true
}

func (h *Handle) finish(reason EndReason) {
	h.cancelFade()
	h.released = true
	h.reason = reason
	close(h.done)
}

func (h *Handle) Clip() (*clip.Clip, error) {
	if h.released {
		return nil, ErrReleased
	}
	return h.voice.clip, nil
}

func (h *Handle) Output() (device.Bus, error) {
	if h.released {
		return nil, ErrReleased
	}
	return h.voice.unit.Output(), nil
}

// IsPlaying reports whether the device unit is playing or waiting for a
// scheduled start.
func (h *Handle) IsPlaying() (bool, error) {
	if h.released {
		return false, ErrReleased
	}
	return h.voice.unit.IsPlaying(), nil
}

// Time returns the play position in seconds of clip time.
func (h *Handle) Time() (float64, error) {
	if h.released {
		return 0, ErrReleased
	}
	return float64(h.voice.unit.SamplePosition()) / float64(h.voice.clip.SampleRate()), nil
}

func (h *Handle) Volume() (float64, error) {
	if h.released {
		return 0, ErrReleased
	}
	return h.voice.unit.Volume(), nil
}

func (h *Handle) SetVolume(v float64) error {
	if h.released {
		return ErrReleased
	}
	h.voice.unit.SetVolume(v)
	return nil
}

func (h *Handle) Pitch() (float64, error) {
	if h.released {
		return 0, ErrReleased
	}
	return h.voice.unit.Pitch(), nil
}

func (h *Handle) SetPitch(p float64) error {
	if h.released {
		return ErrReleased
	}
	h.voice.unit.SetPitch(p)
	return nil
}

func (h *Handle) Pan() (float64, error) {
	if h.released {
		return 0, ErrReleased
	}
	return h.voice.unit.Pan(), nil
}

func (h *Handle) SetPan(p float64) error {
	if h.released {
		return ErrReleased
	}
	h.voice.unit.SetPan(p)
	return nil
}

func (h *Handle) Mute() (bool, error) {
	if h.released {
		return false, ErrReleased
	}
	return h.voice.unit.Mute(), nil
}

func (h *Handle) SetMute(m bool) error {
	if h.released {
		return ErrReleased
	}
	h.voice.unit.SetMute(m)
	return nil
}

func (h *Handle) Priority() (int, error) {
	if h.released {
		return 0, ErrReleased
	}
	return h.voice.unit.Priority(), nil
}

func (h *Handle) SetPriority(p int) error {
	if h.released {
		return ErrReleased
	}
	h.voice.unit.SetPriority(p)
	return nil
}

// LoopCount returns the number of passes left, negative when looping forever.
func (h *Handle) LoopCount() (int, error) {
	if h.released {
		return 0, ErrReleased
	}
	return h.voice.loopCount, nil
}

func (h *Handle) SetLoopCount(n int) error {
	if h.released {
		return ErrReleased
	}
	h.voice.loopCount = n
	return nil
}

func (h *Handle) LoopStartSample() (int, error) {
	if h.released {
		return 0, ErrReleased
	}
	return h.voice.loopStartSample, nil
}

func (h *Handle) SetLoopStartSample(s int) error {
	if h.released {
		return ErrReleased
	}
	h.voice.loopStartSample = s
	return nil
}

func (h *Handle) EndSample() (int, error) {
	if h.released {
		return 0, ErrReleased
	}
	return h.voice.endSample, nil
}

func (h *Handle) SetEndSample(s int) error {
	if h.released {
		return ErrReleased
	}
	h.voice.endSample = s
	return nil
}

func (h *Handle) LoopGapPreserved() (bool, error) {
	if h.released {
		return false, ErrReleased
	}
	return h.voice.loopGapPreserved, nil
}

func (h *Handle) SetLoopGapPreserved(preserved bool) error {
	if h.released {
		return ErrReleased
	}
	h.voice.loopGapPreserved = preserved
	return nil
}

func (h *Handle) SamplePosition() (int, error) {
	if h.released {
		return 0, ErrReleased
	}
	return h.voice.unit.SamplePosition(), nil
}

func (h *Handle) SetSamplePosition(p int) error {
	if h.released {
		return ErrReleased
	}
	h.voice.unit.SetSamplePosition(p)
	return nil
}

// Pause pauses the play. A paused play never ends on its own.
func (h *Handle) Pause() error {
	if h.released {
		return ErrReleased
	}
	h.voice.pause()
	return nil
}

func (h *Handle) Unpause() error {
	if h.released {
		return ErrReleased
	}
	h.voice.resume()
	return nil
}

// Stop ends the play with reason Stop and releases the handle.
func (h *Handle) Stop() error {
	if h.released {
		return ErrReleased
	}
	h.voice.stop()
	return nil
}

// SetScheduledStartTime moves a pending scheduled start to device time t.
func (h *Handle) SetScheduledStartTime(t float64) error {
	if h.released {
		return ErrReleased
	}
	h.voice.setScheduledStart(t)
	h.startTime = h.voice.startTime
	return nil
}

// SetScheduledEndTime stops the play at device time t.
func (h *Handle) SetScheduledEndTime(t float64) error {
	if h.released {
		return ErrReleased
	}
	h.voice.scheduleStop(t)
	return nil
}
