// Package device defines the audio device contract used by the voice pool and
// provides a beep-backed implementation plus a scriptable mock.
//
// A device exposes a clock (seconds since the device started rendering) and
// hands out playback units. A unit plays one clip at a time from a given
// sample position and stops at the end of the clip. It knows nothing about
// loop points or end samples: looping and truncation are implemented by the
// caller on top of PlayNow and SetSamplePosition.
package device

import "github.com/llehouerou/soundkit/internal/clip"

// Clock reports device time in seconds.
type Clock interface {
	Now() float64
}

// Bus is an output destination a unit can be routed to.
type Bus interface {
	Name() string
}

// Unit is a single device playback unit.
//
// IsPlaying reports true while a scheduled or delayed start is pending, and
// false once the unit is paused, stopped or has run past the end of its clip.
type Unit interface {
	Load(c *clip.Clip)
	Clip() *clip.Clip
	SetOutput(b Bus)
	Output() Bus

	PlayNow()
	PlayAt(t float64)
	PlayAfter(delay float64)
	Stop()
	Pause()
	Resume()
	IsPlaying() bool

	Volume() float64
	SetVolume(v float64)
	Pitch() float64
	SetPitch(p float64)
	Pan() float64
	SetPan(p float64)
	Mute() bool
	SetMute(m bool)
	Priority() int
	SetPriority(p int)
	SamplePosition() int
	SetSamplePosition(p int)

	// SetScheduledStart moves a pending scheduled start. It has no effect once
	// the unit started playing.
	SetScheduledStart(t float64)
	// ScheduleStop stops the unit when the device clock reaches t.
	ScheduleStop(t float64)

	Close() error
}

// Device hands out playback units.
type Device interface {
	Clock
	NewUnit() (Unit, error)
}
