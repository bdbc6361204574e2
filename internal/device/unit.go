package device

import (
	"math"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"

	"github.com/llehouerou/soundkit/internal/clip"
)

type unitState int

const (
	unitIdle unitState = iota
	unitScheduled
	unitPlaying
	unitPaused
)

var (
	_ Unit          = (*unit)(nil)
	_ beep.Streamer = (*unit)(nil)
)

// unit renders one clip through:
//
//	varispeed source (pitch) -> volume -> pan -> gate
//
// The gate is the unit itself: it handles scheduled start and stop against
// its own frame clock, pause, and the output group gain. A unit always
// reports ok so the mixer keeps it until Close.
type unit struct {
	e *Engine

	clip   *clip.Clip
	source *varispeed
	volume effects.Volume
	pan    effects.Pan

	gain     float64
	mute     bool
	priority int
	output   Bus
	group    *Group

	state       unitState
	resumeState unitState
	startAt     int64
	stopAt      int64
	clock       int64
	closed      bool
}

func newUnit(e *Engine) *unit {
	u := &unit{
		e:      e,
		gain:   1,
		source: &varispeed{ratio: 1},
		stopAt: -1,
		clock:  e.frames,
	}
	u.volume.Base = 2
	u.volume.Streamer = u.source
	u.pan.Streamer = &u.volume
	return u
}

// Stream implements beep.Streamer. Called by the mixer with the engine lock
// held.
func (u *unit) Stream(samples [][2]float64) (n int, ok bool) {
	if u.closed {
		return 0, false
	}
	n = len(samples)
	clear(samples)
	start := u.clock
	u.clock += int64(n)

	from := 0
	switch u.state {
	case unitScheduled:
		offset := u.startAt - start
		if offset >= int64(n) {
			return n, true
		}
		from = int(max(offset, 0))
		u.state = unitPlaying
	case unitPlaying:
	default:
		return n, true
	}

	to := n
	stopping := false
	if u.stopAt >= 0 && u.stopAt-start < int64(to) {
		to = max(int(u.stopAt-start), from)
		stopping = true
	}

	if !u.render(samples[from:to]) {
		u.state = unitIdle
	}
	if stopping {
		u.state = unitIdle
		u.stopAt = -1
	}
	if u.group != nil {
		g := u.group.gain()
		for i := from; i < to; i++ {
			samples[i][0] *= g
			samples[i][1] *= g
		}
	}
	return n, true
}

// render fills buf from the effect chain and reports false once the clip is
// exhausted.
func (u *unit) render(buf [][2]float64) bool {
	if u.clip == nil {
		return false
	}
	for len(buf) > 0 {
		m, ok := u.pan.Stream(buf)
		buf = buf[m:]
		if !ok {
			return false
		}
		if m == 0 {
			break
		}
	}
	return true
}

func (u *unit) Err() error { return nil }

func (u *unit) applyVolume() {
	u.volume.Silent = u.mute || u.gain <= 0
	if u.gain > 0 {
		u.volume.Volume = math.Log2(u.gain)
	}
}

func (u *unit) Load(c *clip.Clip) {
	u.e.lock.Lock()
	defer u.e.lock.Unlock()
	u.clip = c
	u.state = unitIdle
	u.stopAt = -1
	u.source.pos = 0
	u.source.frames = nil
	if c != nil {
		u.source.frames = c.Frames()
	}
}

func (u *unit) Clip() *clip.Clip {
	u.e.lock.Lock()
	defer u.e.lock.Unlock()
	return u.clip
}

func (u *unit) SetOutput(b Bus) {
	u.e.lock.Lock()
	defer u.e.lock.Unlock()
	u.output = b
	u.group, _ = b.(*Group)
}

func (u *unit) Output() Bus {
	u.e.lock.Lock()
	defer u.e.lock.Unlock()
	return u.output
}

func (u *unit) PlayNow() {
	u.e.lock.Lock()
	defer u.e.lock.Unlock()
	if u.clip == nil {
		return
	}
	u.state = unitPlaying
}

func (u *unit) PlayAt(t float64) {
	u.e.lock.Lock()
	defer u.e.lock.Unlock()
	u.scheduleLocked(u.e.frameAt(t))
}

func (u *unit) PlayAfter(delay float64) {
	u.e.lock.Lock()
	defer u.e.lock.Unlock()
	u.scheduleLocked(u.clock + u.e.frameAt(max(delay, 0)))
}

func (u *unit) scheduleLocked(frame int64) {
	if u.clip == nil {
		return
	}
	u.startAt = frame
	u.state = unitScheduled
}

func (u *unit) Stop() {
	u.e.lock.Lock()
	defer u.e.lock.Unlock()
	u.state = unitIdle
	u.stopAt = -1
}

func (u *unit) Pause() {
	u.e.lock.Lock()
	defer u.e.lock.Unlock()
	if u.state != unitPlaying && u.state != unitScheduled {
		return
	}
	u.resumeState = u.state
	u.state = unitPaused
}

func (u *unit) Resume() {
	u.e.lock.Lock()
	defer u.e.lock.Unlock()
	if u.state != unitPaused {
		return
	}
	u.state = u.resumeState
}

func (u *unit) IsPlaying() bool {
	u.e.lock.Lock()
	defer u.e.lock.Unlock()
	return u.state == unitPlaying || u.state == unitScheduled
}

func (u *unit) Volume() float64 {
	u.e.lock.Lock()
	defer u.e.lock.Unlock()
	return u.gain
}

func (u *unit) SetVolume(v float64) {
	u.e.lock.Lock()
	defer u.e.lock.Unlock()
	u.gain = v
	u.applyVolume()
}

func (u *unit) Pitch() float64 {
	u.e.lock.Lock()
	defer u.e.lock.Unlock()
	return u.source.ratio
}

// MinPitch is the lowest supported pitch; lower values are clamped. Reverse
// playback is not supported.
const MinPitch = 0.01

func (u *unit) SetPitch(p float64) {
	u.e.lock.Lock()
	defer u.e.lock.Unlock()
	u.source.ratio = max(p, MinPitch)
}

func (u *unit) Pan() float64 {
	u.e.lock.Lock()
	defer u.e.lock.Unlock()
	return u.pan.Pan
}

func (u *unit) SetPan(p float64) {
	u.e.lock.Lock()
	defer u.e.lock.Unlock()
	u.pan.Pan = min(max(p, -1), 1)
}

func (u *unit) Mute() bool {
	u.e.lock.Lock()
	defer u.e.lock.Unlock()
	return u.mute
}

func (u *unit) SetMute(m bool) {
	u.e.lock.Lock()
	defer u.e.lock.Unlock()
	u.mute = m
	u.applyVolume()
}

func (u *unit) Priority() int {
	u.e.lock.Lock()
	defer u.e.lock.Unlock()
	return u.priority
}

func (u *unit) SetPriority(p int) {
	u.e.lock.Lock()
	defer u.e.lock.Unlock()
	u.priority = p
}

func (u *unit) SamplePosition() int {
	u.e.lock.Lock()
	defer u.e.lock.Unlock()
	return u.source.Position()
}

func (u *unit) SetSamplePosition(p int) {
	u.e.lock.Lock()
	defer u.e.lock.Unlock()
	_ = u.source.Seek(min(max(p, 0), u.source.Len()))
}

func (u *unit) SetScheduledStart(t float64) {
	u.e.lock.Lock()
	defer u.e.lock.Unlock()
	if u.state == unitScheduled {
		u.startAt = u.e.frameAt(t)
	}
}

func (u *unit) ScheduleStop(t float64) {
	u.e.lock.Lock()
	defer u.e.lock.Unlock()
	u.stopAt = u.e.frameAt(t)
}

func (u *unit) Close() error {
	u.e.lock.Lock()
	defer u.e.lock.Unlock()
	u.closed = true
	u.state = unitIdle
	return nil
}
