// Package sfx plays short clips through a bounded pool of reusable device
// voices.
//
// A Descriptor describes one play. The Pool binds it to an idle voice and
// returns a Handle for live control. Everything in this package runs on a
// single tick goroutine: the owner calls Pool.Tick once per frame, which
// detects the end of plays, restarts loops and advances fades. None of the
// types here are safe for concurrent use, except Handle.Done and Handle.Wait.
package sfx

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"time"

	"github.com/llehouerou/soundkit/internal/clip"
	"github.com/llehouerou/soundkit/internal/config"
	"github.com/llehouerou/soundkit/internal/device"
	"github.com/llehouerou/soundkit/internal/observe"
)

// Pool owns a set of voices and recycles them across plays.
type Pool struct {
	dev      device.Device
	settings config.PoolSettings
	logger   *slog.Logger
	metrics  *observe.Metrics

	voices []*voice
	idle   []*voice
	live   []*Handle // most recent first
	tasks  []*Task
	closed bool
}

// Option configures a Pool.
type Option func(*Pool)

// WithLogger sets the pool logger. Defaults to a discarding logger.
func WithLogger(l *slog.Logger) Option {
	return func(p *Pool) {
		p.logger = l
	}
}

// WithMetrics sets the metrics instruments. Defaults to the global provider.
func WithMetrics(m *observe.Metrics) Option {
	return func(p *Pool) {
		p.metrics = m
	}
}

// NewPool creates a pool on dev with settings.InitialVoices idle voices.
func NewPool(dev device.Device, settings config.PoolSettings, opts ...Option) (*Pool, error) {
	p := &Pool{
		dev:      dev,
		settings: settings,
		logger:   observe.Discard(),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.metrics == nil {
		p.metrics = observe.DefaultMetrics()
	}

	initial := settings.InitialVoices
	if settings.MaxVoices >= 0 {
		initial = min(initial, settings.MaxVoices)
	}
	for range initial {
		v, err := p.newVoice()
		if err != nil {
			_ = p.Close()
			return nil, err
		}
		p.idle = append(p.idle, v)
	}

	p.logger.Debug("voice pool created",
		"initial", initial,
		"max", settings.MaxVoices)
	return p, nil
}

// Clock returns the device clock plays are scheduled against.
func (p *Pool) Clock() device.Clock {
	return p.dev
}

// Play starts d on an idle voice and returns its handle. It returns nil when
// the pool is closed, d is invalid, or every voice is busy and the pool is at
// its cap. A nil handle means the play was dropped.
func (p *Pool) Play(d Descriptor) *Handle {
	ctx := context.Background()

	if p.closed {
		p.logger.Warn("play on closed pool", "error", ErrPoolClosed)
		p.metrics.RecordPlay(ctx, observe.PlayDropped)
		return nil
	}
	if err := d.validate(); err != nil {
		p.logger.Error("play rejected", "error", err)
		p.metrics.RecordPlay(ctx, observe.PlayDropped)
		return nil
	}

	v, err := p.acquire()
	if err != nil {
		p.logger.Error("acquire voice", "error", err)
	}
	if v == nil {
		p.logger.Debug("no voice available, play dropped",
			"clip", d.clip.Name(),
			"voices", len(p.voices))
		p.metrics.RecordPlay(ctx, observe.PlayDropped)
		return nil
	}

	h := &Handle{pool: p, voice: v, done: make(chan struct{})}
	if err := v.start(d, func(reason EndReason) { p.onEnd(h, reason) }); err != nil {
		p.logger.Error("start voice", "error", err)
		p.idle = append(p.idle, v)
		p.metrics.RecordPlay(ctx, observe.PlayDropped)
		return nil
	}

	h.startTime = v.startTime
	p.live = slices.Insert(p.live, 0, h)
	p.metrics.RecordPlay(ctx, observe.PlayStarted)
	p.metrics.RecordBusy(ctx, 1)
	p.logger.Debug("play started",
		"clip", d.clip.Name(),
		"timing", d.timing,
		"volume", d.volume)
	return h
}

// acquire pops an idle voice, or creates one while under the cap. A nil
// voice with a nil error means the pool is exhausted.
func (p *Pool) acquire() (*voice, error) {
	if len(p.idle) > 0 {
		v := p.idle[0]
		p.idle[0] = nil
		p.idle = p.idle[1:]
		return v, nil
	}
	if p.settings.MaxVoices >= 0 && len(p.voices) >= p.settings.MaxVoices {
		return nil, nil
	}
	return p.newVoice()
}

func (p *Pool) newVoice() (*voice, error) {
	v, err := newVoice(p.dev)
	if err != nil {
		return nil, err
	}
	p.voices = append(p.voices, v)
	p.metrics.RecordVoiceCreated(context.Background())
	return v, nil
}

func (p *Pool) onEnd(h *Handle, reason EndReason) {
	ctx := context.Background()

	if i := slices.Index(p.live, h); i >= 0 {
		p.live = slices.Delete(p.live, i, i+1)
	}
	if !p.closed {
		p.idle = append(p.idle, h.voice)
	}
	h.finish(reason)

	p.metrics.RecordBusy(ctx, -1)
	p.metrics.RecordPlayEnd(ctx, reason.String())
	p.logger.Debug("play ended", "reason", reason)
}

// ActiveHandles returns a snapshot of the live handles, most recent first.
// A handle stays listed until its play ends, so handles made inert with
// Release are included; check IsReleased before controlling one.
func (p *Pool) ActiveHandles() []*Handle {
	return slices.Clone(p.live)
}

// DuckingFactor returns the ducking multiplier for a play of c starting at
// device time at, against the pool's live handles.
func (p *Pool) DuckingFactor(c *clip.Clip, at float64) float64 {
	return DuckingFactor(p.live, c, at)
}

// Tick advances the pool by dt: every voice checks for the end of its play
// first, then fades step.
func (p *Pool) Tick(dt time.Duration) {
	if p.closed {
		return
	}

	for _, v := range p.voices {
		v.tick()
	}

	kept := p.tasks[:0]
	for _, t := range p.tasks {
		if t.step(dt) {
			kept = append(kept, t)
		}
	}
	clear(p.tasks[len(kept):])
	p.tasks = kept
}

func (p *Pool) addTask(t *Task) {
	p.tasks = append(p.tasks, t)
}

// Stats reports the number of voices and how many of them are idle.
func (p *Pool) Stats() (voices, idle int) {
	return len(p.voices), len(p.idle)
}

// Close cancels running fades and destroys every voice. Plays still running
// end with Destroy. The pool cannot be used afterwards.
func (p *Pool) Close() error {
	if p.closed {
		return nil
	}
	p.closed = true

	for _, t := range p.tasks {
		t.abort()
	}
	p.tasks = nil

	var errs []error
	for _, v := range p.voices {
		if err := v.destroy(); err != nil {
			errs = append(errs, err)
		}
	}
	p.voices = nil
	p.idle = nil
	p.live = nil

	p.logger.Debug("voice pool closed")
	return errors.Join(errs...)
}
