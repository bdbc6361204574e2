package sfx

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/llehouerou/soundkit/internal/gain"
)

// FadeSpace selects the space a volume fade interpolates in.
type FadeSpace int

const (
	// Linear interpolates the linear amplitude.
	Linear FadeSpace = iota
	// Decibel interpolates in decibels, which sounds even to the ear.
	Decibel
)

func (s FadeSpace) String() string {
	if s == Decibel {
		return "decibel"
	}
	return "linear"
}

// Curve selects the easing of a crossfade.
type Curve int

const (
	// Sine eases both sides with sin(t*pi/2).
	Sine Curve = iota
	// Sqrt eases the outgoing side with 1-sqrt(1-t) and the incoming side
	// with sqrt(t).
	Sqrt
)

func (c Curve) String() string {
	if c == Sqrt {
		return "sqrt"
	}
	return "sine"
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

func (h *Handle) cancelFade() {
	if h.fadeCancel != nil {
		h.fadeCancel()
		h.fadeCancel = nil
	}
}

// CancelFade stops the running fade or crossfade, leaving the volume where
// it is. Cancelling one side of a crossfade stops both.
func (h *Handle) CancelFade() {
	h.cancelFade()
}

// FadeVolume moves the volume to target over d, stepped by Pool.Tick. Any
// fade already running on h is cancelled. The task ends early, without
// reaching target, when ctx is cancelled or the play ends.
func (h *Handle) FadeVolume(ctx context.Context, target float64, d time.Duration, space FadeSpace) (*Task, error) {
	if h.released {
		return nil, ErrReleased
	}
	h.cancelFade()

	ctx, cancel := context.WithCancel(ctx)
	h.fadeCancel = cancel

	unit := h.voice.unit
	from := unit.Volume()
	value := func(t float64) float64 {
		return lerp(from, target, t)
	}
	if space == Decibel {
		fromDb, targetDb := gain.LinearToDecibel(from), gain.LinearToDecibel(target)
		value = func(t float64) float64 {
			return gain.DecibelToLinear(lerp(fromDb, targetDb, t))
		}
	}

	var elapsed time.Duration
	task := newTask(ctx, cancel, func(dt time.Duration) taskState {
		if h.released {
			return taskAborted
		}
		elapsed += dt
		if elapsed >= d {
			unit.SetVolume(target)
			return taskCompleted
		}
		unit.SetVolume(value(float64(elapsed) / float64(d)))
		return taskRunning
	})

	h.pool.metrics.RecordFade(ctx, space.String())
	if d <= 0 {
		unit.SetVolume(target)
		task.finish(true)
		return task, nil
	}
	h.pool.addTask(task)
	return task, nil
}

// CrossFade fades h out to silence while other fades in from silence to
// target, over d. Both handles share one fade slot: cancelling either, or
// starting another fade on either, stops the crossfade. The task ends early
// when either play ends.
func (h *Handle) CrossFade(ctx context.Context, other *Handle, d time.Duration, target float64, curve Curve) (*Task, error) {
	if other == nil || other == h {
		return nil, fmt.Errorf("%w: crossfade needs two distinct handles", ErrInvalidOperation)
	}
	if h.released || other.released {
		return nil, ErrReleased
	}
	h.cancelFade()
	other.cancelFade()

	ctx, cancel := context.WithCancel(ctx)
	h.fadeCancel = cancel
	other.fadeCancel = cancel

	out, in := h.voice.unit, other.voice.unit
	from := out.Volume()
	ease := func(t float64) (float64, float64) {
		s := math.Sin(t * math.Pi / 2)
		return s, s
	}
	if curve == Sqrt {
		ease = func(t float64) (float64, float64) {
			return 1 - math.Sqrt(1-t), math.Sqrt(t)
		}
	}

	var elapsed time.Duration
	task := newTask(ctx, cancel, func(dt time.Duration) taskState {
		if h.released || other.released {
			return taskAborted
		}
		elapsed += dt
		if elapsed >= d {
			out.SetVolume(0)
			in.SetVolume(target)
			return taskCompleted
		}
		tOut, tIn := ease(float64(elapsed) / float64(d))
		out.SetVolume(lerp(from, 0, tOut))
		in.SetVolume(lerp(0, target, tIn))
		return taskRunning
	})

	h.pool.metrics.RecordFade(ctx, "crossfade_"+curve.String())
	if d <= 0 {
		out.SetVolume(0)
		in.SetVolume(target)
		task.finish(true)
		return task, nil
	}
	h.pool.addTask(task)
	return task, nil
}
