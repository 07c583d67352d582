package engine

import (
	"time"

	"github.com/Carmen-Shannon/oxy-triangle/engine/profiler"
)

// EngineBuilderOption is a functional option for configuring an Engine.
// Use the With* functions to create options that are applied directly to the engine instance.
type EngineBuilderOption func(*engine)

// WithRenderMode selects on-demand or continuous rendering.
//
// Parameters:
//   - mode: the RenderMode (default RenderModeOnDemand)
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithRenderMode(mode RenderMode) EngineBuilderOption {
	return func(e *engine) {
		e.mode = mode
	}
}

// WithProfiling enables or disables the once-per-second performance report.
// Frame statistics are kept either way.
//
// Parameters:
//   - enabled: if true, enables performance profiling
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiling(enabled bool) EngineBuilderOption {
	return func(e *engine) {
		e.profilingEnabled = enabled
	}
}

// WithClock replaces the monotonic clock used for frame statistics.
// Ignored when WithProfiler supplies a profiler.
//
// Parameters:
//   - clock: function returning the current monotonic time
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithClock(clock func() time.Duration) EngineBuilderOption {
	return func(e *engine) {
		e.clock = clock
	}
}

// WithProfiler sets a pre-configured profiler.
//
// Parameters:
//   - p: the profiler
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiler(p *profiler.Profiler) EngineBuilderOption {
	return func(e *engine) {
		e.profiler = p
	}
}

// WithMaxDroppedFrames sets how many consecutive recoverable frame failures are skipped before Run
// returns the error. Negative values keep DefaultMaxDroppedFrames.
//
// Parameters:
//   - n: the number of tolerated consecutive failures
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithMaxDroppedFrames(n int) EngineBuilderOption {
	return func(e *engine) {
		if n >= 0 {
			e.maxDroppedFrames = n
		}
	}
}
