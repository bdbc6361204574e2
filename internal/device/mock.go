package device

import (
	"fmt"

	"github.com/llehouerou/soundkit/internal/clip"
)

// Mock is a test double for Device with a manually driven clock.
type Mock struct {
	now        float64
	units      []*MockUnit
	newUnitErr error
}

// NewMock creates a new mock device at time zero.
func NewMock() *Mock {
	return &Mock{}
}

func (m *Mock) Now() float64 { return m.now }

func (m *Mock) NewUnit() (Unit, error) {
	if m.newUnitErr != nil {
		return nil, m.newUnitErr
	}
	u := &MockUnit{volume: 1, pitch: 1, scheduledStop: -1}
	m.units = append(m.units, u)
	return u, nil
}

// Test helpers

func (m *Mock) SetNow(t float64) { m.now = t }

func (m *Mock) Advance(d float64) { m.now += d }

func (m *Mock) SetNewUnitError(err error) { m.newUnitErr = err }

func (m *Mock) Units() []*MockUnit { return m.units }

// Verify Mock implements Device at compile time.
var _ Device = (*Mock)(nil)

// MockBus is a named Bus for tests.
type MockBus string

func (b MockBus) Name() string { return string(b) }

// MockUnit is a test double for Unit. Its position and playing state only
// change when a test says so, through the control calls or Advance.
type MockUnit struct {
	clip           *clip.Clip
	output         Bus
	volume         float64
	pitch          float64
	pan            float64
	mute           bool
	priority       int
	position       int
	playing        bool
	paused         bool
	closed         bool
	scheduledStart float64
	scheduledStop  float64
	calls          []string
}

func (u *MockUnit) record(format string, args ...any) {
	u.calls = append(u.calls, fmt.Sprintf(format, args...))
}

func (u *MockUnit) Load(c *clip.Clip) {
	u.record("Load")
	u.clip = c
	u.position = 0
	u.playing = false
}

func (u *MockUnit) Clip() *clip.Clip { return u.clip }

func (u *MockUnit) SetOutput(b Bus) { u.output = b }

func (u *MockUnit) Output() Bus { return u.output }

func (u *MockUnit) PlayNow() {
	u.record("PlayNow")
	u.playing = true
	u.paused = false
}

func (u *MockUnit) PlayAt(t float64) {
	u.record("PlayAt(%g)", t)
	u.scheduledStart = t
	u.playing = true
}

func (u *MockUnit) PlayAfter(delay float64) {
	u.record("PlayAfter(%g)", delay)
	u.playing = true
}

func (u *MockUnit) Stop() {
	u.record("Stop")
	u.playing = false
	u.paused = false
}

func (u *MockUnit) Pause() {
	u.record("Pause")
	if u.playing {
		u.playing = false
		u.paused = true
	}
}

func (u *MockUnit) Resume() {
	u.record("Resume")
	if u.paused {
		u.playing = true
		u.paused = false
	}
}

func (u *MockUnit) IsPlaying() bool { return u.playing }

func (u *MockUnit) Volume() float64 { return u.volume }

func (u *MockUnit) SetVolume(v float64) { u.volume = v }

func (u *MockUnit) Pitch() float64 { return u.pitch }

func (u *MockUnit) SetPitch(p float64) { u.pitch = p }

func (u *MockUnit) Pan() float64 { return u.pan }

func (u *MockUnit) SetPan(p float64) { u.pan = p }

func (u *MockUnit) Mute() bool { return u.mute }

func (u *MockUnit) SetMute(m bool) { u.mute = m }

func (u *MockUnit) Priority() int { return u.priority }

func (u *MockUnit) SetPriority(p int) { u.priority = p }

func (u *MockUnit) SamplePosition() int { return u.position }

func (u *MockUnit) SetSamplePosition(p int) {
	u.record("SetSamplePosition(%d)", p)
	u.position = p
}

func (u *MockUnit) SetScheduledStart(t float64) {
	u.record("SetScheduledStart(%g)", t)
	u.scheduledStart = t
}

func (u *MockUnit) ScheduleStop(t float64) {
	u.record("ScheduleStop(%g)", t)
	u.scheduledStop = t
}

func (u *MockUnit) Close() error {
	u.record("Close")
	u.closed = true
	u.playing = false
	return nil
}

// Test helpers

// Advance moves the play position forward by n frames. Like a real unit, it
// stops at the end of the clip.
func (u *MockUnit) Advance(n int) {
	u.position += n
	if u.clip != nil && u.position >= u.clip.SampleCount() {
		u.position = u.clip.SampleCount()
		u.playing = false
	}
}

func (u *MockUnit) SetPlaying(p bool) { u.playing = p }

func (u *MockUnit) SetPosition(p int) { u.position = p }

func (u *MockUnit) Calls() []string { return u.calls }

func (u *MockUnit) ResetCalls() { u.calls = nil }

func (u *MockUnit) Closed() bool { return u.closed }

func (u *MockUnit) Paused() bool { return u.paused }

func (u *MockUnit) ScheduledStart() float64 { return u.scheduledStart }

func (u *MockUnit) ScheduledStop() float64 { return u.scheduledStop }

// Verify MockUnit implements Unit at compile time.
var _ Unit = (*MockUnit)(nil)
