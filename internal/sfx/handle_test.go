package sfx

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/soundkit/internal/device"
)

func TestHandle_ForwardsToUnit(t *testing.T) {
	p, _ := newTestPool(t, unlimited())
	h := mustPlay(t, p, NewBuilder(testClip("hit", 1000)).SetOutput(device.MockBus("sfx")))
	u := unitOf(h)

	require.NoError(t, h.SetVolume(0.25))
	require.NoError(t, h.SetPitch(0.5))
	require.NoError(t, h.SetPan(-1))
	require.NoError(t, h.SetMute(true))
	require.NoError(t, h.SetPriority(3))
	require.NoError(t, h.SetSamplePosition(50))

	assert.Equal(t, 0.25, u.Volume())
	assert.Equal(t, 0.5, u.Pitch())
	assert.Equal(t, -1.0, u.Pan())
	assert.True(t, u.Mute())
	assert.Equal(t, 3, u.Priority())
	assert.Equal(t, 50, u.SamplePosition())

	vol, err := h.Volume()
	require.NoError(t, err)
	assert.Equal(t, 0.25, vol)

	tm, err := h.Time()
	require.NoError(t, err)
	assert.Equal(t, 0.5, tm)

	out, err := h.Output()
	require.NoError(t, err)
	assert.Equal(t, "sfx", out.Name())

	playing, err := h.IsPlaying()
	require.NoError(t, err)
	assert.True(t, playing)
}

func TestHandle_LoopSettingsApplyToRunningPlay(t *testing.T) {
	p, _ := newTestPool(t, unlimited())
	h := mustPlay(t, p, NewBuilder(testClip("loop", 1000)).SetLoopCount(-1))
	u := unitOf(h)

	require.NoError(t, h.SetEndSample(500))
	require.NoError(t, h.SetLoopStartSample(100))
	require.NoError(t, h.SetLoopGapPreserved(false))

	u.SetPosition(510)
	p.Tick(0)
	assert.Equal(t, 100, u.SamplePosition())

	require.NoError(t, h.SetLoopCount(1))
	u.SetPosition(500)
	p.Tick(0)
	assert.True(t, h.IsReleased())
	assert.Equal(t, Finish, h.Reason())
}

func TestHandle_ReleasedAfterEnd(t *testing.T) {
	p, _ := newTestPool(t, unlimited())
	h := mustPlay(t, p, NewBuilder(testClip("hit", 100)))
	other := mustPlay(t, p, NewBuilder(testClip("hit", 100)))

	finish(p, h)
	require.True(t, h.IsReleased())

	ops := map[string]func() error{
		"Volume":                func() error { _, err := h.Volume(); return err },
		"SetVolume":             func() error { return h.SetVolume(1) },
		"Pitch":                 func() error { _, err := h.Pitch(); return err },
		"SetPitch":              func() error { return h.SetPitch(1) },
		"Pan":                   func() error { _, err := h.Pan(); return err },
		"SetPan":                func() error { return h.SetPan(0) },
		"Mute":                  func() error { _, err := h.Mute(); return err },
		"SetMute":               func() error { return h.SetMute(true) },
		"Priority":              func() error { _, err := h.Priority(); return err },
		"SetPriority":           func() error { return h.SetPriority(1) },
		"LoopCount":             func() error { _, err := h.LoopCount(); return err },
		"SetLoopCount":          func() error { return h.SetLoopCount(1) },
		"LoopStartSample":       func() error { _, err := h.LoopStartSample(); return err },
		"SetLoopStartSample":    func() error { return h.SetLoopStartSample(1) },
		"EndSample":             func() error { _, err := h.EndSample(); return err },
		"SetEndSample":          func() error { return h.SetEndSample(1) },
		"LoopGapPreserved":      func() error { _, err := h.LoopGapPreserved(); return err },
		"SetLoopGapPreserved":   func() error { return h.SetLoopGapPreserved(true) },
		"SamplePosition":        func() error { _, err := h.SamplePosition(); return err },
		"SetSamplePosition":     func() error { return h.SetSamplePosition(1) },
		"Clip":                  func() error { _, err := h.Clip(); return err },
		"Output":                func() error { _, err := h.Output(); return err },
		"IsPlaying":             func() error { _, err := h.IsPlaying(); return err },
		"Time":                  func() error { _, err := h.Time(); return err },
		"Pause":                 h.Pause,
		"Unpause":               h.Unpause,
		"Stop":                  h.Stop,
		"SetScheduledStartTime": func() error { return h.SetScheduledStartTime(1) },
		"SetScheduledEndTime":   func() error { return h.SetScheduledEndTime(1) },
		"FadeVolume": func() error {
			_, err := h.FadeVolume(context.Background(), 0, time.Second, Linear)
			return err
		},
		"CrossFade": func() error {
			_, err := h.CrossFade(context.Background(), other, time.Second, 1, Sine)
			return err
		},
	}

	for name, op := range ops {
		t.Run(name, func(t *testing.T) {
			assert.ErrorIs(t, op(), ErrReleased)
		})
	}
}

func TestHandle_StopEndsPlay(t *testing.T) {
	p, _ := newTestPool(t, unlimited())
	h := mustPlay(t, p, NewBuilder(testClip("hit", 100)))
	u := unitOf(h)

	require.NoError(t, h.Stop())

	reason, err := h.Wait(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Stop, reason)
	assert.False(t, u.IsPlaying())
	assert.Empty(t, p.ActiveHandles())
	assert.ErrorIs(t, h.Stop(), ErrReleased)

	_, idle := p.Stats()
	assert.Equal(t, 1, idle)
}

func TestHandle_WaitCancelled(t *testing.T) {
	p, _ := newTestPool(t, unlimited())
	h := mustPlay(t, p, NewBuilder(testClip("hit", 100)))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := h.Wait(ctx)
	require.ErrorIs(t, err, context.Canceled)
	assert.False(t, h.IsReleased())
}

func TestHandle_WaitFromAnotherGoroutine(t *testing.T) {
	p, _ := newTestPool(t, unlimited())
	h := mustPlay(t, p, NewBuilder(testClip("hit", 100)))

	got := make(chan EndReason, 1)
	go func() {
		reason, err := h.Wait(context.Background())
		if err == nil {
			got <- reason
		}
	}()

	finish(p, h)

	select {
	case reason := <-got:
		assert.Equal(t, Finish, reason)
	case <-time.After(time.Second):
		t.Fatal("Wait did not return")
	}
}

func TestHandle_Release(t *testing.T) {
	p, _ := newTestPool(t, capped(1))
	c := testClip("hit", 100)
	h := mustPlay(t, p, NewBuilder(c))
	u := unitOf(h)

	h.Release()

	assert.True(t, h.IsReleased())
	assert.ErrorIs(t, h.SetVolume(0), ErrReleased)
	assert.True(t, u.IsPlaying(), "release does not stop the play")
	assert.Len(t, p.ActiveHandles(), 1)

	finish(p, h)

	<-h.Done()
	assert.Equal(t, Finish, h.Reason())
	assert.NotNil(t, p.Play(mustBuild(t, NewBuilder(c))), "voice returned to pool")
}

func TestHandle_PauseUnpause(t *testing.T) {
	p, _ := newTestPool(t, unlimited())
	h := mustPlay(t, p, NewBuilder(testClip("hit", 100)))
	u := unitOf(h)

	u.Advance(10)
	require.NoError(t, h.Pause())
	assert.True(t, u.Paused())

	for range 5 {
		p.Tick(16 * time.Millisecond)
	}
	assert.False(t, h.IsReleased(), "paused play must not end")

	require.NoError(t, h.Unpause())
	playing, err := h.IsPlaying()
	require.NoError(t, err)
	assert.True(t, playing)

	finish(p, h)
	assert.True(t, h.IsReleased())
}

func TestHandle_ScheduledTimes(t *testing.T) {
	p, dev := newTestPool(t, unlimited())
	h := mustPlay(t, p, NewBuilder(testClip("hit", 100)).SetSchedule(4))
	u := unitOf(h)

	require.NoError(t, h.SetScheduledStartTime(6))
	require.NoError(t, h.SetScheduledEndTime(8))

	assert.Equal(t, 6.0, u.ScheduledStart())
	assert.Equal(t, 8.0, u.ScheduledStop())
	assert.Equal(t, 6.0, h.StartTime())

	dev.SetNow(8)
	u.SetPlaying(false)
	p.Tick(0)
	assert.Equal(t, Finish, h.Reason())
}

func TestHandle_StartTimeSurvivesVoiceReuse(t *testing.T) {
	p, dev := newTestPool(t, capped(1))
	first := mustPlay(t, p, NewBuilder(testClip("hit", 100)))
	finish(p, first)
	require.True(t, first.IsReleased())

	dev.SetNow(5)
	second := mustPlay(t, p, NewBuilder(testClip("hit", 100)))

	assert.Equal(t, 0.0, first.StartTime())
	assert.Equal(t, 5.0, second.StartTime())
}
