package sfx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/soundkit/internal/device"
)

func TestContext_AutoCreate(t *testing.T) {
	ctx := NewContext(device.NewMock(), unlimited())
	t.Cleanup(func() { _ = ctx.Close() })

	p, err := ctx.Pool()
	require.NoError(t, err)
	require.NotNil(t, p)

	again, err := ctx.Pool()
	require.NoError(t, err)
	assert.Same(t, p, again)
}

func TestContext_ManualInit(t *testing.T) {
	settings := unlimited()
	settings.AutoCreate = false
	settings.InitialVoices = 2
	dev := device.NewMock()
	ctx := NewContext(dev, settings)
	t.Cleanup(func() { _ = ctx.Close() })

	_, err := ctx.Pool()
	require.ErrorIs(t, err, ErrNotInitialized)

	require.NoError(t, ctx.Init())
	require.NoError(t, ctx.Init())
	p, err := ctx.Pool()
	require.NoError(t, err)

	voices, _ := p.Stats()
	assert.Equal(t, 2, voices)
	assert.Len(t, dev.Units(), 2)
}

func TestContext_CloseInvalidatesPool(t *testing.T) {
	ctx := NewContext(device.NewMock(), unlimited())
	p, err := ctx.Pool()
	require.NoError(t, err)
	h := mustPlay(t, p, NewBuilder(testClip("hit", 100)))

	require.NoError(t, ctx.Close())

	assert.Equal(t, Destroy, h.Reason())
	assert.True(t, h.IsReleased())

	next, err := ctx.Pool()
	require.NoError(t, err)
	assert.NotSame(t, p, next)
	require.NoError(t, ctx.Close())
	require.NoError(t, ctx.Close())
}

func TestContext_Unload(t *testing.T) {
	tests := []struct {
		name      string
		persist   bool
		wantSame  bool
		wantEnded bool
	}{
		{"persistent pool survives", true, true, false},
		{"pool torn down", false, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			settings := unlimited()
			settings.PersistAcrossUnload = tt.persist
			ctx := NewContext(device.NewMock(), settings)
			t.Cleanup(func() { _ = ctx.Close() })

			p, err := ctx.Pool()
			require.NoError(t, err)
			h := mustPlay(t, p, NewBuilder(testClip("music", 100)))

			require.NoError(t, ctx.Unload())

			after, err := ctx.Pool()
			require.NoError(t, err)
			assert.Equal(t, tt.wantSame, p == after)
			assert.Equal(t, tt.wantEnded, h.IsReleased())
		})
	}
}
