package window

import (
	"github.com/Carmen-Shannon/oxy-triangle/engine"
	"github.com/Carmen-Shannon/oxy-triangle/engine/renderer/backend"
	"github.com/cockroachdb/errors"
	"github.com/cogentcore/webgpu/wgpu"
)

// NoLimit leaves a size limit unconstrained.
const NoLimit = -1

// Window is a native window that drives the event loop and hosts the WebGPU surface.
type Window interface {
	// SetUpdateCallback sets the function called each message loop iteration.
	//
	// Parameters:
	//   - callback: function to call (or nil to disable)
	SetUpdateCallback(callback func())

	// SetRefreshCallback sets the function called when the window contents must be redrawn,
	// either because RequestRedraw was called or because the platform exposed the window.
	//
	// Parameters:
	//   - callback: function to call (or nil to disable)
	SetRefreshCallback(callback func())

	// SetCloseCallback sets the function called when the user closes the window.
	//
	// Parameters:
	//   - callback: function to call (or nil to disable)
	SetCloseCallback(callback func())

	// SetResizeCallback sets the function called when the window is resized.
	//
	// Parameters:
	//   - callback: function receiving new width and height in pixels
	SetResizeCallback(callback func(width, height int))

	// RequestRedraw schedules one refresh callback and wakes the loop if it is waiting for events.
	RequestRedraw()

	// SurfaceDescriptor returns a wgpu.SurfaceDescriptor suitable for creating a WebGPU surface.
	// The descriptor is platform-appropriate (Windows HWND, X11 Xlib, Wayland, macOS Metal, etc.)
	// and is created by the wgpuglfw bridge from the underlying GLFW window.
	//
	// Returns:
	//   - *wgpu.SurfaceDescriptor: the platform-specific surface descriptor, or nil if window is not initialized
	SurfaceDescriptor() *wgpu.SurfaceDescriptor

	// IsRunning returns true if the window is still active.
	//
	// Returns:
	//   - bool: true if window is running, false if closed
	IsRunning() bool

	// Close ends the message loop. The native window stays alive until Destroy.
	//
	// Returns:
	//   - error: error if the window is not initialized
	Close() error

	// Destroy releases the native window and the platform library.
	Destroy()

	// ProcessMessages runs the window message loop until the window is closed.
	// While a redraw is pending it polls for events, otherwise it blocks until one arrives.
	// Each iteration delivers a pending refresh, then calls the update callback.
	ProcessMessages()

	// Width returns the current framebuffer width in pixels.
	//
	// Returns:
	//   - int: width in pixels
	Width() int

	// Height returns the current framebuffer height in pixels.
	//
	// Returns:
	//   - int: height in pixels
	Height() int
}

// engineWindow is the implementation of the Window interface.
// Holds window configuration, GLFW state, and event callbacks.
type engineWindow struct {
	// title is the window title displayed in the title bar.
	title string

	// resizable controls whether the user can resize the window.
	resizable bool

	// size limits applied during resize, NoLimit for none.
	minWidth, minHeight int
	maxWidth, maxHeight int

	// width and height are the current framebuffer size in pixels.
	width  int
	height int

	// redrawPending is set by RequestRedraw and exposure events, cleared when the refresh callback runs.
	redrawPending bool

	// internalWindow holds the platform-specific window data (glfwWindow).
	internalWindow any

	onUpdate  func()
	onRefresh func()
	onClose   func()
	onResize  func(width, height int)
}

var (
	_ Window               = &engineWindow{}
	_ engine.EventLoop     = &engineWindow{}
	_ backend.WindowBinder = &engineWindow{}
)

// NewWindow creates and shows a new Window with the specified options.
// Defaults to a resizable 800x600 window titled "Oxy Triangle".
//
// Parameters:
//   - options: functional options to configure the window
//
// Returns:
//   - Window: the created window
//   - error: error if the platform window cannot be created
func NewWindow(options ...WindowBuilderOption) (Window, error) {
	w := &engineWindow{
		title:     "Oxy Triangle",
		resizable: true,
		minWidth:  NoLimit,
		minHeight: NoLimit,
		maxWidth:  NoLimit,
		maxHeight: NoLimit,
		width:     800,
		height:    600,
	}
	for _, opt := range options {
		opt(w)
	}
	if w.width <= 0 || w.height <= 0 {
		return nil, errors.Newf("window: invalid size %dx%d", w.width, w.height)
	}
	if err := newPlatformWindow(w); err != nil {
		return nil, errors.Wrap(err, "window: create platform window")
	}
	return w, nil
}

func (w *engineWindow) SetUpdateCallback(callback func()) {
	w.onUpdate = callback
}

func (w *engineWindow) SetRefreshCallback(callback func()) {
	w.onRefresh = callback
}

func (w *engineWindow) SetCloseCallback(callback func()) {
	w.onClose = callback
}

func (w *engineWindow) SetResizeCallback(callback func(width, height int)) {
	w.onResize = callback
}

func (w *engineWindow) RequestRedraw() {
	w.redrawPending = true
	platformWake(w)
}

func (w *engineWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor {
	return platformGetSurfaceDescriptor(w)
}

func (w *engineWindow) IsRunning() bool {
	return platformIsRunningCheck(w)
}

func (w *engineWindow) Close() error {
	return platformCloseWindow(w)
}

func (w *engineWindow) Destroy() {
	platformDestroyWindow(w)
}

func (w *engineWindow) ProcessMessages() {
	for w.IsRunning() {
		if succ := platformProcessMessages(w, w.redrawPending); !succ {
			break
		}

		if w.redrawPending {
			w.redrawPending = false
			if w.onRefresh != nil {
				w.onRefresh()
			}
		}

		if w.onUpdate != nil {
			w.onUpdate()
		}
	}
}

func (w *engineWindow) Width() int {
	return w.width
}

func (w *engineWindow) Height() int {
	return w.height
}

// requestClose routes a user close through the close callback, or closes directly when none is set.
func (w *engineWindow) requestClose() {
	if w.onClose != nil {
		w.onClose()
		return
	}
	_ = w.Close()
}
