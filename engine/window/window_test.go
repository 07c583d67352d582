package window

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWindowRejectsEmptySize(t *testing.T) {
	w, err := NewWindow(WithSize(0, 600))
	require.Error(t, err)
	assert.Nil(t, w)
}

func TestOptions(t *testing.T) {
	w := &engineWindow{}
	for _, opt := range []WindowBuilderOption{
		WithTitle("demo"),
		WithSize(640, 480),
		WithResizable(false),
		WithMinSize(320, 240),
		WithMaxSize(NoLimit, NoLimit),
	} {
		opt(w)
	}

	assert.Equal(t, "demo", w.title)
	assert.Equal(t, 640, w.Width())
	assert.Equal(t, 480, w.Height())
	assert.False(t, w.resizable)
	assert.Equal(t, 320, w.minWidth)
	assert.Equal(t, NoLimit, w.maxHeight)
}

func TestUninitializedWindow(t *testing.T) {
	w := &engineWindow{}

	assert.False(t, w.IsRunning())
	assert.Nil(t, w.SurfaceDescriptor())
	assert.Error(t, w.Close())
	w.Destroy()

	w.RequestRedraw()
	assert.True(t, w.redrawPending)

	// a window that is not running never enters its loop
	refreshed := false
	w.SetRefreshCallback(func() { refreshed = true })
	w.ProcessMessages()
	assert.False(t, refreshed)
}

func TestRequestCloseUsesCallback(t *testing.T) {
	w := &engineWindow{}
	closed := 0
	w.SetCloseCallback(func() { closed++ })

	w.requestClose()
	assert.Equal(t, 1, closed)
}
