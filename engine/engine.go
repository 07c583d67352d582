package engine

import (
	"log"
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-triangle/engine/profiler"
	"github.com/Carmen-Shannon/oxy-triangle/engine/renderer"
	"github.com/cockroachdb/errors"
)

// DefaultMaxDroppedFrames is how many consecutive recoverable frame failures are tolerated before Run gives up.
const DefaultMaxDroppedFrames = 3

// ErrAlreadyRunning is returned by Run when the engine loop is already active.
var ErrAlreadyRunning = errors.New("engine: already running")

// RenderMode selects when frames are drawn.
type RenderMode int

const (
	// RenderModeOnDemand draws one frame per redraw event.
	RenderModeOnDemand RenderMode = iota
	// RenderModeContinuous requests a new redraw every loop iteration, uncapped.
	RenderModeContinuous
)

func (m RenderMode) String() string {
	switch m {
	case RenderModeOnDemand:
		return "on-demand"
	case RenderModeContinuous:
		return "continuous"
	default:
		return "unknown"
	}
}

// EventLoop is the window side of the engine: it delivers events and drives the loop.
type EventLoop interface {
	// SetUpdateCallback sets the function called each message loop iteration.
	//
	// Parameters:
	//   - callback: function to call (or nil to disable)
	SetUpdateCallback(callback func())

	// SetRefreshCallback sets the function called when the window needs to be redrawn.
	//
	// Parameters:
	//   - callback: function to call (or nil to disable)
	SetRefreshCallback(callback func())

	// SetCloseCallback sets the function called when the user asks to close the window.
	//
	// Parameters:
	//   - callback: function to call (or nil to disable)
	SetCloseCallback(callback func())

	// SetResizeCallback sets the function called when the framebuffer is resized.
	//
	// Parameters:
	//   - callback: function receiving new width and height in pixels
	SetResizeCallback(callback func(width, height int))

	// ProcessMessages runs the message loop until Close is called or the window is closed.
	ProcessMessages()

	// RequestRedraw schedules one refresh callback on the next loop iteration.
	RequestRedraw()

	// Close ends the message loop.
	//
	// Returns:
	//   - error: error if the loop cannot be closed
	Close() error
}

// FrameRenderer draws frames on behalf of the engine.
type FrameRenderer interface {
	RenderFrame() error
	Resize(width, height int) error
}

var _ FrameRenderer = renderer.Renderer(nil)

// engine implements the Engine interface.
// All callbacks run on the event loop's thread.
type engine struct {
	loop     EventLoop
	renderer FrameRenderer

	mode             RenderMode
	maxDroppedFrames int
	dropped          int

	profiler         *profiler.Profiler
	profilingEnabled bool
	clock            func() time.Duration
	stats            profiler.FrameStats

	running  bool
	closing  bool
	err      error
	quitOnce sync.Once
}

// Engine connects an EventLoop to a FrameRenderer.
type Engine interface {
	// Run registers the engine's callbacks, requests the first redraw and blocks in the event loop
	// until the window is closed, Quit is called or a frame fails fatally.
	//
	// Returns:
	//   - error: nil on a normal close, otherwise the error that stopped the loop
	Run() error

	// Quit stops the loop. No frame is drawn after Quit. Safe to call multiple times.
	Quit()

	// Stats returns the frame statistics as of the last drawn frame.
	//
	// Returns:
	//   - profiler.FrameStats: the current stats
	Stats() profiler.FrameStats

	// Mode returns the configured RenderMode.
	//
	// Returns:
	//   - RenderMode: on-demand or continuous
	Mode() RenderMode
}

var _ Engine = &engine{}

// NewEngine creates an Engine driving r from loop.
// Defaults to on-demand rendering, profiling disabled and DefaultMaxDroppedFrames.
//
// Parameters:
//   - loop: the event loop (usually the window)
//   - r: the frame renderer
//   - options: functional options for engine configuration
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(loop EventLoop, r FrameRenderer, options ...EngineBuilderOption) Engine {
	e := &engine{
		loop:             loop,
		renderer:         r,
		mode:             RenderModeOnDemand,
		maxDroppedFrames: DefaultMaxDroppedFrames,
	}

	for _, opt := range options {
		opt(e)
	}

	if e.profiler == nil {
		e.profiler = profiler.NewProfiler(profiler.WithClock(e.clock))
	}

	return e
}

func (e *engine) Run() error {
	if e.loop == nil || e.renderer == nil {
		return errors.New("engine: nil event loop or renderer")
	}
	if e.running {
		return ErrAlreadyRunning
	}
	e.running = true
	defer func() { e.running = false }()

	e.loop.SetRefreshCallback(e.handleRefresh)
	e.loop.SetUpdateCallback(e.handleUpdate)
	e.loop.SetCloseCallback(e.handleClose)
	e.loop.SetResizeCallback(e.handleResize)

	e.stats = e.profiler.Start()
	log.Printf("[Engine] running in %s mode", e.mode)

	if !e.closing {
		e.loop.RequestRedraw()
	}
	e.loop.ProcessMessages()

	log.Printf("[Engine] stopped after %d frames", e.stats.TotalFrames)
	return e.err
}

func (e *engine) Quit() {
	e.stop(nil)
}

func (e *engine) Stats() profiler.FrameStats {
	return e.stats
}

func (e *engine) Mode() RenderMode {
	return e.mode
}

// handleRefresh draws one frame for a redraw event.
func (e *engine) handleRefresh() {
	if e.closing {
		return
	}

	if err := e.renderer.RenderFrame(); err != nil {
		e.handleError(err)
		return
	}
	e.dropped = 0

	if e.profilingEnabled {
		e.stats, _ = e.profiler.Tick(e.stats)
	} else {
		e.stats, _ = e.stats.Tick(e.profiler.Now())
	}
}

// handleUpdate keeps the loop spinning in continuous mode.
func (e *engine) handleUpdate() {
	if e.closing || e.mode != RenderModeContinuous {
		return
	}
	e.loop.RequestRedraw()
}

func (e *engine) handleClose() {
	log.Printf("[Engine] close requested")
	e.stop(nil)
}

func (e *engine) handleResize(width, height int) {
	if e.closing {
		return
	}
	if err := e.renderer.Resize(width, height); err != nil {
		log.Printf("[Engine] resize to %dx%d failed: %v", width, height, err)
	}
}

// handleError is the single place frame errors are classified. Recoverable failures skip the frame
// and ask for another redraw until maxDroppedFrames consecutive failures; anything else stops the loop.
func (e *engine) handleError(err error) {
	if !renderer.IsRecoverable(err) {
		log.Printf("[Engine] frame failed: %v", err)
		e.stop(err)
		return
	}

	e.dropped++
	if e.dropped > e.maxDroppedFrames {
		e.stop(errors.Wrapf(err, "engine: %d consecutive frames dropped", e.dropped))
		return
	}
	log.Printf("[Engine] frame skipped (%d/%d): %v", e.dropped, e.maxDroppedFrames, err)
	e.loop.RequestRedraw()
}

// stop records the first error and closes the loop once.
func (e *engine) stop(err error) {
	e.quitOnce.Do(func() {
		e.closing = true
		e.err = err
		if e.loop != nil {
			if cerr := e.loop.Close(); cerr != nil {
				log.Printf("[Engine] close event loop: %v", cerr)
			}
		}
	})
}
