package profiler

import "time"

// DefaultInterval is the length of the window FPS is averaged over.
const DefaultInterval = time.Second

// FrameStats is a running frame counter. It is a plain value: every Tick returns the updated copy,
// so the render loop threads it through frames without shared state.
type FrameStats struct {
	// TotalFrames is the number of frames ticked since the stats were started.
	TotalFrames uint64

	// FrameTime is the time between the last two ticks.
	FrameTime time.Duration

	// FPS is the average frame rate over the last completed window. Zero until a window completes.
	FPS float64

	// Window is the measured length of the last completed window.
	Window time.Duration

	interval     time.Duration
	started      bool
	last         time.Duration
	windowStart  time.Duration
	windowFrames int
}

// NewFrameStats starts a stats window at now.
//
// Parameters:
//   - now: the current monotonic time
//   - interval: the reporting window, DefaultInterval when <= 0
//
// Returns:
//   - FrameStats: the started stats
func NewFrameStats(now, interval time.Duration) FrameStats {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return FrameStats{
		interval:    interval,
		started:     true,
		last:        now,
		windowStart: now,
	}
}

// Tick records one frame at now.
//
// Parameters:
//   - now: the current monotonic time
//
// Returns:
//   - FrameStats: the updated stats
//   - bool: true when this frame completed a window and FPS was recomputed
func (s FrameStats) Tick(now time.Duration) (FrameStats, bool) {
	if !s.started {
		s = NewFrameStats(now, s.interval)
	}

	s.TotalFrames++
	s.windowFrames++
	s.FrameTime = now - s.last
	s.last = now

	elapsed := now - s.windowStart
	if elapsed < s.interval {
		return s, false
	}

	s.FPS = float64(s.windowFrames) / elapsed.Seconds()
	s.Window = elapsed
	s.windowFrames = 0
	s.windowStart = now
	return s, true
}
