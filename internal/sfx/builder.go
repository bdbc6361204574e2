package sfx

import (
	"math/rand/v2"

	"github.com/llehouerou/soundkit/internal/clip"
	"github.com/llehouerou/soundkit/internal/device"
)

var defaultRand = rand.Float64

// Builder is a mutable, chainable constructor for Descriptor.
//
// An end sample left negative resolves to the clip length at Build time.
type Builder struct {
	d    Descriptor
	rand func() float64
}

// NewBuilder returns a Builder playing the whole of c once, immediately, at
// full volume and normal pitch.
func NewBuilder(c *clip.Clip) *Builder {
	return &Builder{
		d: Descriptor{
			clip:             c,
			volume:           1,
			pitch:            1,
			priority:         DefaultPriority,
			endSample:        -1,
			loopGapPreserved: true,
			timing:           Immediate,
			scheduledEnd:     -1,
		},
		rand: defaultRand,
	}
}

// WithRand sets the source used by SetVolumeRandom and SetPitchRandom.
// r must return values in [0, 1).
func (b *Builder) WithRand(r func() float64) *Builder {
	b.rand = r
	return b
}

func (b *Builder) SetOutput(bus device.Bus) *Builder {
	b.d.output = bus
	return b
}

func (b *Builder) SetMute(mute bool) *Builder {
	b.d.mute = mute
	return b
}

func (b *Builder) SetVolume(v float64) *Builder {
	b.d.volume = v
	return b
}

func (b *Builder) SetPitch(p float64) *Builder {
	b.d.pitch = p
	return b
}

func (b *Builder) SetPriority(p int) *Builder {
	b.d.priority = p
	return b
}

func (b *Builder) SetPan(p float64) *Builder {
	b.d.pan = p
	return b
}

func (b *Builder) SetStartSample(s int) *Builder {
	b.d.startSample = s
	return b
}

// SetEndSample sets the exclusive end of the played window. Negative means
// the end of the clip.
func (b *Builder) SetEndSample(s int) *Builder {
	b.d.endSample = s
	return b
}

func (b *Builder) SetLoopStartSample(s int) *Builder {
	b.d.loopStartSample = s
	return b
}

// SetLoopCount sets how many times the window is played: 0 and 1 play it
// once, n > 1 plays it n times, negative loops until stopped.
func (b *Builder) SetLoopCount(n int) *Builder {
	b.d.loopCount = n
	return b
}

// SetLoopGapPreserved controls whether the overshoot past the end sample is
// carried into the next loop.
func (b *Builder) SetLoopGapPreserved(preserved bool) *Builder {
	b.d.loopGapPreserved = preserved
	return b
}

func (b *Builder) SetImmediate() *Builder {
	b.d.timing = Immediate
	b.d.timingValue = 0
	return b
}

// SetSchedule starts the play at device time t.
func (b *Builder) SetSchedule(t float64) *Builder {
	b.d.timing = Schedule
	b.d.timingValue = t
	return b
}

// SetDelay starts the play delay seconds after it is requested.
func (b *Builder) SetDelay(delay float64) *Builder {
	b.d.timing = Delay
	b.d.timingValue = delay
	return b
}

// SetScheduledEndTime stops the play at device time t. Negative disables it.
func (b *Builder) SetScheduledEndTime(t float64) *Builder {
	b.d.scheduledEnd = t
	return b
}

// SetVolumeRandom sets a volume drawn uniformly from [lo, hi].
func (b *Builder) SetVolumeRandom(lo, hi float64) *Builder {
	return b.SetVolume(b.uniform(lo, hi))
}

// SetPitchRandom sets a pitch drawn uniformly from [lo, hi].
func (b *Builder) SetPitchRandom(lo, hi float64) *Builder {
	return b.SetPitch(b.uniform(lo, hi))
}

func (b *Builder) uniform(lo, hi float64) float64 {
	return lo + b.rand()*(hi-lo)
}

// Duck scales the volume by the pool's ducking factor for the builder's clip
// and start time.
func (b *Builder) Duck(p *Pool) *Builder {
	at := startTime(p.Clock(), b.d.timing, b.d.timingValue)
	b.d.volume *= p.DuckingFactor(b.d.clip, at)
	return b
}

// Build resolves the end sample and validates the result.
func (b *Builder) Build() (Descriptor, error) {
	d := b.d
	if d.endSample < 0 && d.clip != nil {
		d.endSample = d.clip.SampleCount()
	}
	if err := d.validate(); err != nil {
		return Descriptor{}, err
	}
	return d, nil
}

// Play builds the descriptor and plays it on p. The handle is nil when the
// pool has no voice to spare.
func (b *Builder) Play(p *Pool) (*Handle, error) {
	d, err := b.Build()
	if err != nil {
		return nil, err
	}
	return p.Play(d), nil
}
