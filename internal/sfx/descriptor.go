package sfx

import (
	"fmt"

	"github.com/llehouerou/soundkit/internal/clip"
	"github.com/llehouerou/soundkit/internal/device"
)

// DefaultPriority is the priority given to plays that do not set one.
const DefaultPriority = 128

// Descriptor is an immutable play request. Build one with a Builder.
type Descriptor struct {
	clip             *clip.Clip
	output           device.Bus
	mute             bool
	volume           float64
	pitch            float64
	priority         int
	pan              float64
	startSample      int
	endSample        int
	loopStartSample  int
	loopCount        int
	loopGapPreserved bool
	timing           TimingMode
	timingValue      float64
	scheduledEnd     float64
}

func (d Descriptor) Clip() *clip.Clip       { return d.clip }
func (d Descriptor) Output() device.Bus     { return d.output }
func (d Descriptor) Mute() bool             { return d.mute }
func (d Descriptor) Volume() float64        { return d.volume }
func (d Descriptor) Pitch() float64         { return d.pitch }
func (d Descriptor) Priority() int          { return d.priority }
func (d Descriptor) Pan() float64           { return d.pan }
func (d Descriptor) StartSample() int       { return d.startSample }
func (d Descriptor) EndSample() int         { return d.endSample }
func (d Descriptor) LoopStartSample() int   { return d.loopStartSample }
func (d Descriptor) LoopCount() int         { return d.loopCount }
func (d Descriptor) LoopGapPreserved() bool { return d.loopGapPreserved }
func (d Descriptor) TimingMode() TimingMode { return d.timing }

// TimingValue is the absolute start time for Schedule, the delay for Delay,
// and zero for Immediate. Seconds.
func (d Descriptor) TimingValue() float64 { return d.timingValue }

// ScheduledEndTime is the device time the play stops at, negative for none.
func (d Descriptor) ScheduledEndTime() float64 { return d.scheduledEnd }

// HasScheduledEnd reports whether the play stops at a fixed device time.
func (d Descriptor) HasScheduledEnd() bool { return d.scheduledEnd >= 0 }

// StartTime returns the device clock instant the play would start at if it
// were played now.
func (d Descriptor) StartTime(clock device.Clock) float64 {
	return startTime(clock, d.timing, d.timingValue)
}

// WithVolume returns a copy of d with volume v.
func (d Descriptor) WithVolume(v float64) Descriptor {
	d.volume = v
	return d
}

// Duck returns a copy of d whose volume is scaled by the pool's ducking
// factor for d's clip and start time.
func (d Descriptor) Duck(p *Pool) Descriptor {
	return d.WithVolume(d.volume * p.DuckingFactor(d.clip, d.StartTime(p.Clock())))
}

// Play plays d on p. It returns nil when the pool has no voice to spare.
func (d Descriptor) Play(p *Pool) *Handle {
	return p.Play(d)
}

// ToBuilder returns a Builder seeded with every field of d.
func (d Descriptor) ToBuilder() *Builder {
	return &Builder{d: d, rand: defaultRand}
}

func (d Descriptor) validate() error {
	if d.clip == nil {
		return fmt.Errorf("%w: missing clip", ErrInvalidDescriptor)
	}
	n := d.clip.SampleCount()
	if d.startSample < 0 {
		return fmt.Errorf("%w: start sample %d is negative", ErrInvalidDescriptor, d.startSample)
	}
	if d.endSample < d.startSample || d.endSample > n {
		return fmt.Errorf("%w: end sample %d outside [%d, %d]",
			ErrInvalidDescriptor, d.endSample, d.startSample, n)
	}
	if d.loopStartSample < 0 || d.loopStartSample > d.endSample {
		return fmt.Errorf("%w: loop start sample %d outside [0, %d]",
			ErrInvalidDescriptor, d.loopStartSample, d.endSample)
	}
	return nil
}
