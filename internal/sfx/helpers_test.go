package sfx

import (
	"testing"

	"github.com/gopxl/beep/v2"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/soundkit/internal/clip"
	"github.com/llehouerou/soundkit/internal/config"
	"github.com/llehouerou/soundkit/internal/device"
)

const testRate = 100

func testClip(name string, frames int) *clip.Clip {
	format := beep.Format{SampleRate: testRate, NumChannels: 2, Precision: 2}
	return clip.New(name, format, make([][2]float64, frames))
}

func unlimited() config.PoolSettings {
	return config.DefaultPoolSettings()
}

func capped(n int) config.PoolSettings {
	s := config.DefaultPoolSettings()
	s.MaxVoices = n
	return s
}

func newTestPool(t *testing.T, settings config.PoolSettings) (*Pool, *device.Mock) {
	t.Helper()
	dev := device.NewMock()
	p, err := NewPool(dev, settings)
	require.NoError(t, err)
	t.Cleanup(func() { _ = p.Close() })
	return p, dev
}

func mustBuild(t *testing.T, b *Builder) Descriptor {
	t.Helper()
	d, err := b.Build()
	require.NoError(t, err)
	return d
}

func mustPlay(t *testing.T, p *Pool, b *Builder) *Handle {
	t.Helper()
	h := p.Play(mustBuild(t, b))
	require.NotNil(t, h)
	return h
}

func unitOf(h *Handle) *device.MockUnit {
	return h.voice.unit.(*device.MockUnit)
}

// finish runs the play of h to the end of its clip and ticks the pool.
func finish(p *Pool, h *Handle) {
	u := unitOf(h)
	u.Advance(u.Clip().SampleCount())
	p.Tick(0)
}
