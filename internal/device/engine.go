package device

import (
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/speaker"
)

// ErrEngineClosed is returned when creating units on a closed engine.
var ErrEngineClosed = errors.New("audio engine closed")

var _ Device = (*Engine)(nil)

// Engine is a Device rendering through beep.
//
// The engine is itself a beep.Streamer: it streams a mixer holding every unit
// and counts rendered frames, which is the device clock. Started with Start,
// it plays through the beep speaker and all state is guarded by speaker.Lock.
// Tests can instead supply their own lock with WithLocker and pull audio with
// Render.
type Engine struct {
	rate   beep.SampleRate
	lock   sync.Locker
	mixer  beep.Mixer
	frames int64

	groups  map[string]*Group
	started bool
	closed  bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithLocker replaces the speaker lock. Use it when the engine is driven by
// Render instead of the speaker.
func WithLocker(l sync.Locker) Option {
	return func(e *Engine) { e.lock = l }
}

type speakerLock struct{}

func (speakerLock) Lock()   { speaker.Lock() }
func (speakerLock) Unlock() { speaker.Unlock() }

// NewEngine creates an engine rendering at rate.
func NewEngine(rate beep.SampleRate, opts ...Option) *Engine {
	e := &Engine{
		rate:   rate,
		lock:   speakerLock{},
		groups: make(map[string]*Group),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// SampleRate returns the rendering rate. Clips played on this engine should be
// loaded at this rate.
func (e *Engine) SampleRate() beep.SampleRate { return e.rate }

// Start initialises the speaker with the given buffer length and starts
// rendering.
func (e *Engine) Start(buffer time.Duration) error {
	if e.started {
		return nil
	}
	if err := speaker.Init(e.rate, e.rate.N(buffer)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	e.started = true
	speaker.Play(e)
	return nil
}

// Close stops rendering and closes every unit.
func (e *Engine) Close() {
	e.lock.Lock()
	e.closed = true
	e.mixer.Clear()
	e.lock.Unlock()

	if e.started {
		speaker.Clear()
		speaker.Close()
		e.started = false
	}
}

// Stream implements beep.Streamer. It must be called with the engine lock
// held, which the speaker does.
func (e *Engine) Stream(samples [][2]float64) (n int, ok bool) {
	if e.closed {
		return 0, false
	}
	clear(samples)
	e.mixer.Stream(samples)
	e.frames += int64(len(samples))
	return len(samples), true
}

// Err implements beep.Streamer.
func (e *Engine) Err() error { return nil }

// Render pulls n frames from the engine under its lock.
func (e *Engine) Render(n int) [][2]float64 {
	buf := make([][2]float64, n)
	e.lock.Lock()
	e.Stream(buf)
	e.lock.Unlock()
	return buf
}

// Now returns the device clock in seconds.
func (e *Engine) Now() float64 {
	e.lock.Lock()
	defer e.lock.Unlock()
	return e.seconds(e.frames)
}

func (e *Engine) seconds(frames int64) float64 {
	return float64(frames) / float64(e.rate)
}

func (e *Engine) frameAt(t float64) int64 {
	return int64(math.Round(t * float64(e.rate)))
}

// NewUnit creates a unit attached to the engine mixer.
func (e *Engine) NewUnit() (Unit, error) {
	e.lock.Lock()
	defer e.lock.Unlock()
	if e.closed {
		return nil, ErrEngineClosed
	}
	u := newUnit(e)
	e.mixer.Add(u)
	return u, nil
}

// Group returns the output group with the given name, creating it on first
// use.
func (e *Engine) Group(name string) *Group {
	e.lock.Lock()
	defer e.lock.Unlock()
	g, ok := e.groups[name]
	if !ok {
		g = &Group{name: name, lock: e.lock, volume: 1}
		e.groups[name] = g
	}
	return g
}

var _ Bus = (*Group)(nil)

// Group is an output bus with its own volume and mute, applied on top of the
// volume of every unit routed to it.
type Group struct {
	name   string
	lock   sync.Locker
	volume float64
	muted  bool
}

// Name implements Bus.
func (g *Group) Name() string { return g.name }

// Volume returns the group volume.
func (g *Group) Volume() float64 {
	g.lock.Lock()
	defer g.lock.Unlock()
	return g.volume
}

// SetVolume sets the group volume as a linear gain.
func (g *Group) SetVolume(v float64) {
	g.lock.Lock()
	g.volume = v
	g.lock.Unlock()
}

// Muted reports whether the group is muted.
func (g *Group) Muted() bool {
	g.lock.Lock()
	defer g.lock.Unlock()
	return g.muted
}

// SetMuted mutes or unmutes the group.
func (g *Group) SetMuted(m bool) {
	g.lock.Lock()
	g.muted = m
	g.lock.Unlock()
}

// gain is read from the render path with the lock already held.
func (g *Group) gain() float64 {
	if g.muted {
		return 0
	}
	return g.volume
}
