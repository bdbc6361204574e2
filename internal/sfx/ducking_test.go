package sfx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDuckingFactor_SameClip(t *testing.T) {
	tests := []struct {
		name string
		diff float64
		want float64
	}{
		{"same instant", 0, 0},
		{"10ms apart", 0.01, 0},
		{"30ms apart", 0.03, 0.8},
		{"70ms apart", 0.07, 0.9},
		{"200ms apart", 0.2, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, dev := newTestPool(t, unlimited())
			c := testClip("hit", 1000)
			dev.SetNow(1)
			mustPlay(t, p, NewBuilder(c))

			assert.Equal(t, tt.want, p.DuckingFactor(c, 1+tt.diff))
			assert.Equal(t, tt.want, p.DuckingFactor(c, 1-tt.diff), "difference is absolute")
		})
	}
}

func TestDuckingFactor_DifferentClip(t *testing.T) {
	p, _ := newTestPool(t, unlimited())
	a := testClip("a", 1000)
	b := testClip("b", 1000)
	mustPlay(t, p, NewBuilder(a))

	assert.Equal(t, 1.0, p.DuckingFactor(b, 0))
	assert.Equal(t, 1.0, p.DuckingFactor(b, 0.03))
}

func TestDuckingFactor_Compounds(t *testing.T) {
	p, dev := newTestPool(t, unlimited())
	c := testClip("hit", 1000)

	mustPlay(t, p, NewBuilder(c))
	dev.SetNow(0.02)
	mustPlay(t, p, NewBuilder(c))

	// 70ms and 50ms from the two plays.
	assert.InDelta(t, 0.81, p.DuckingFactor(c, 0.07), 1e-12)
}

func TestDuckingFactor_SilentPlaysIgnored(t *testing.T) {
	p, _ := newTestPool(t, unlimited())
	c := testClip("hit", 1000)
	h := mustPlay(t, p, NewBuilder(c))

	require.NoError(t, h.SetVolume(0))

	assert.Equal(t, 1.0, p.DuckingFactor(c, 0))
}

func TestDuckingFactor_EndedPlaysIgnored(t *testing.T) {
	p, _ := newTestPool(t, unlimited())
	c := testClip("hit", 1000)
	h := mustPlay(t, p, NewBuilder(c))

	require.NoError(t, h.Stop())

	assert.Equal(t, 1.0, p.DuckingFactor(c, 0))
}

func TestDuckingFactor_UsesScheduledStart(t *testing.T) {
	p, _ := newTestPool(t, unlimited())
	c := testClip("hit", 1000)
	mustPlay(t, p, NewBuilder(c).SetSchedule(5))

	assert.Equal(t, 1.0, p.DuckingFactor(c, 0))
	assert.Equal(t, 0.0, p.DuckingFactor(c, 5.01))
}

func TestBuilder_Duck(t *testing.T) {
	p, dev := newTestPool(t, unlimited())
	c := testClip("hit", 1000)
	mustPlay(t, p, NewBuilder(c))

	dev.SetNow(0.03)
	d := mustBuild(t, NewBuilder(c).SetVolume(0.5).Duck(p))
	assert.InDelta(t, 0.4, d.Volume(), 1e-12)

	// The delayed play starts 30ms + 50ms after the first one.
	delayed := mustBuild(t, NewBuilder(c).SetDelay(0.05).Duck(p))
	assert.Equal(t, 0.9, delayed.Volume())
}

func TestDescriptor_Duck(t *testing.T) {
	p, dev := newTestPool(t, unlimited())
	c := testClip("hit", 1000)
	mustPlay(t, p, NewBuilder(c))
	dev.SetNow(0.01)

	d := mustBuild(t, NewBuilder(c))
	ducked := d.Duck(p)

	assert.Equal(t, 0.0, ducked.Volume())
	assert.Equal(t, 1.0, d.Volume())
}
