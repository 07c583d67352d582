package profiler

import "time"

// ProfilerBuilderOption is a functional option for configuring a Profiler.
type ProfilerBuilderOption func(*Profiler)

// WithClock replaces the monotonic clock. Tests pass a fake clock here.
//
// Parameters:
//   - clock: function returning the current monotonic time
//
// Returns:
//   - ProfilerBuilderOption: option function to apply
func WithClock(clock func() time.Duration) ProfilerBuilderOption {
	return func(p *Profiler) {
		if clock != nil {
			p.clock = clock
		}
	}
}

// WithInterval sets the reporting window. Values <= 0 keep DefaultInterval.
//
// Parameters:
//   - interval: the window length
//
// Returns:
//   - ProfilerBuilderOption: option function to apply
func WithInterval(interval time.Duration) ProfilerBuilderOption {
	return func(p *Profiler) {
		if interval > 0 {
			p.interval = interval
		}
	}
}

// WithLogger redirects reports away from the standard logger.
//
// Parameters:
//   - logf: printf-style sink
//
// Returns:
//   - ProfilerBuilderOption: option function to apply
func WithLogger(logf func(format string, args ...any)) ProfilerBuilderOption {
	return func(p *Profiler) {
		if logf != nil {
			p.logf = logf
		}
	}
}
