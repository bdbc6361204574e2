package sfx

import (
	"fmt"

	"github.com/llehouerou/soundkit/internal/clip"
	"github.com/llehouerou/soundkit/internal/device"
)

// voice binds one device unit to at most one play at a time. The unit knows
// nothing about end samples or loops; tick implements both by watching the
// unit's sample position.
type voice struct {
	unit  device.Unit
	clock device.Clock

	busy   bool
	paused bool

	clip             *clip.Clip
	endSample        int
	loopStartSample  int
	loopCount        int
	loopGapPreserved bool
	startTime        float64
	stopAt           float64

	onEnd func(EndReason)
}

func newVoice(dev device.Device) (*voice, error) {
	u, err := dev.NewUnit()
	if err != nil {
		return nil, fmt.Errorf("create device unit: %w", err)
	}
	return &voice{unit: u, clock: dev, stopAt: -1}, nil
}

// start configures the unit from d and issues the play. onEnd is called
// exactly once when the play ends.
func (v *voice) start(d Descriptor, onEnd func(EndReason)) error {
	if v.busy {
		return fmt.Errorf("%w: voice is already playing", ErrInvalidOperation)
	}
	if err := d.validate(); err != nil {
		return err
	}

	u := v.unit
	u.Load(d.clip)
	u.SetOutput(d.output)
	u.SetMute(d.mute)
	u.SetPriority(d.priority)
	u.SetVolume(d.volume)
	u.SetPitch(d.pitch)
	u.SetPan(d.pan)
	u.SetSamplePosition(d.startSample)

	v.busy = true
	v.paused = false
	v.clip = d.clip
	v.endSample = d.endSample
	v.loopStartSample = d.loopStartSample
	v.loopCount = d.loopCount
	v.loopGapPreserved = d.loopGapPreserved
	v.startTime = d.StartTime(v.clock)
	v.stopAt = -1
	v.onEnd = onEnd

	switch d.timing {
	case Schedule:
		u.PlayAt(d.timingValue)
	case Delay:
		u.PlayAfter(d.timingValue)
	default:
		u.PlayNow()
	}

	if d.HasScheduledEnd() {
		v.scheduleStop(d.scheduledEnd)
	}
	return nil
}

// tick checks for the end of the play window and loops or finishes.
func (v *voice) tick() {
	if !v.busy || v.paused {
		return
	}

	playing := v.unit.IsPlaying()
	pos := v.unit.SamplePosition()
	if pos < v.endSample && playing {
		return
	}

	// A unit stopped by its scheduled stop must not be restarted by a loop.
	if !playing && v.stopAt >= 0 && v.clock.Now() >= v.stopAt {
		v.end(Finish)
		return
	}

	if v.loopCount > 0 {
		v.loopCount--
	}
	if v.loopCount == 0 {
		v.end(Finish)
		return
	}

	v.loop(pos, playing)
}

func (v *voice) loop(pos int, playing bool) {
	if v.loopGapPreserved && playing {
		v.unit.SetSamplePosition(v.loopStartSample + pos - v.endSample)
	} else {
		v.unit.SetSamplePosition(v.loopStartSample)
	}

	if !playing {
		v.unit.PlayNow()
	}
}

func (v *voice) pause() {
	v.unit.Pause()
	v.paused = true
}

func (v *voice) resume() {
	v.unit.Resume()
	v.paused = false
}

func (v *voice) setScheduledStart(t float64) {
	v.unit.SetScheduledStart(t)
	if v.startTime > v.clock.Now() {
		v.startTime = t
	}
}

func (v *voice) scheduleStop(t float64) {
	v.unit.ScheduleStop(t)
	v.stopAt = t
}

// stop ends the current play, if any.
func (v *voice) stop() {
	if !v.busy {
		return
	}
	v.end(Stop)
}

// destroy ends the current play with Destroy and releases the unit.
func (v *voice) destroy() error {
	if v.busy {
		v.end(Destroy)
	}
	return v.unit.Close()
}

func (v *voice) end(reason EndReason) {
	v.unit.Stop()
	v.busy = false
	v.paused = false

	onEnd := v.onEnd
	v.onEnd = nil
	if onEnd != nil {
		onEnd(reason)
	}
}
