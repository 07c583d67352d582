package profiler

import (
	"fmt"
	"log"
	"runtime"
	"time"

	"github.com/loov/hrtime"
)

// Profiler logs frame rate and memory statistics each time a FrameStats window completes.
type Profiler struct {
	clock          func() time.Duration
	interval       time.Duration
	memStats       runtime.MemStats
	lastGCCount    uint32
	lastTotalAlloc uint64
	logf           func(format string, args ...any)
}

// NewProfiler creates a new Profiler. The clock defaults to hrtime.Now and the interval to DefaultInterval.
//
// Parameters:
//   - options: variadic list of ProfilerBuilderOption functions to configure the Profiler
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler(options ...ProfilerBuilderOption) *Profiler {
	p := &Profiler{
		clock:    hrtime.Now,
		interval: DefaultInterval,
		memStats: runtime.MemStats{},
		logf:     log.Printf,
	}
	for _, opt := range options {
		opt(p)
	}
	return p
}

// Now reads the profiler's clock.
//
// Returns:
//   - time.Duration: the current monotonic time
func (p *Profiler) Now() time.Duration {
	return p.clock()
}

// Start returns FrameStats whose first window begins now.
//
// Returns:
//   - FrameStats: the started stats
func (p *Profiler) Start() FrameStats {
	return NewFrameStats(p.clock(), p.interval)
}

// Tick records a frame on stats and logs a report when the window completes.
//
// Parameters:
//   - stats: the stats from the previous frame
//
// Returns:
//   - FrameStats: the updated stats
//   - bool: true if a report was logged this tick
func (p *Profiler) Tick(stats FrameStats) (FrameStats, bool) {
	stats, done := stats.Tick(p.clock())
	if done {
		p.Report(stats)
	}
	return stats, done
}

// Report logs FPS, heap usage, allocation rate and GC pauses for the window stats just completed.
//
// Parameters:
//   - stats: stats with a completed window
func (p *Profiler) Report(stats FrameStats) {
	runtime.ReadMemStats(&p.memStats)
	p.logf("%s", p.format(stats))
	p.lastGCCount = p.memStats.NumGC
	p.lastTotalAlloc = p.memStats.TotalAlloc
}

// format renders one report line from stats and the last read memory statistics.
func (p *Profiler) format(stats FrameStats) string {
	allocMB := float64(p.memStats.Alloc) / 1024 / 1024
	sysMB := float64(p.memStats.Sys) / 1024 / 1024

	var allocRateMB float64
	if stats.Window > 0 && p.memStats.TotalAlloc >= p.lastTotalAlloc {
		allocDelta := p.memStats.TotalAlloc - p.lastTotalAlloc
		allocRateMB = float64(allocDelta) / 1024 / 1024 / stats.Window.Seconds()
	}

	gcCount := p.memStats.NumGC
	var lastPauseUs, maxPauseUs uint64
	if gcCount > 0 {
		// PauseNs is a circular buffer of the last 256 pauses
		lastPauseUs = p.memStats.PauseNs[(gcCount-1)%256] / 1000

		startIdx := p.lastGCCount
		if gcCount-startIdx > 256 {
			startIdx = gcCount - 256
		}
		for i := startIdx; i < gcCount; i++ {
			if pause := p.memStats.PauseNs[i%256] / 1000; pause > maxPauseUs {
				maxPauseUs = pause
			}
		}
	}

	return fmt.Sprintf("[Profiler] FPS: %.2f | Frame: %s | Heap: %.2f MB | Alloc Rate: %.2f MB/s | GC: %d (last: %d µs, max: %d µs) | Sys: %.2f MB",
		stats.FPS, stats.FrameTime, allocMB, allocRateMB, gcCount, lastPauseUs, maxPauseUs, sysMB)
}
