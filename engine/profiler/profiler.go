// package profiler reports frame-loop statistics for the animation toolkit:
// frame rate, heap behavior, active animation count, and buffer-write volume
// per reporting interval.
package profiler

import (
	"runtime"
	"time"

	logxi "github.com/mgutz/logxi/v1"
)

var logger = logxi.New("lumo.profiler")

// Profiler aggregates per-frame counters and logs a summary line once per
// update interval. Drive it from the same loop that advances animations.
type Profiler struct {
	frameCount     int
	writeCount     int
	writeBytes     int
	animSamples    int
	animTotal      int
	lastTime       time.Time
	updateInterval time.Duration
	memStats       runtime.MemStats
	lastTotalAlloc uint64
}

// NewProfiler creates a profiler reporting once per second.
//
// Returns:
//   - *Profiler: the new profiler
func NewProfiler() *Profiler {
	return &Profiler{
		lastTime:       time.Now(),
		updateInterval: time.Second,
	}
}

// CountWrites records the buffer writes staged by one flush.
//
// Parameters:
//   - writes: the number of writes
//   - bytes: the total payload size in bytes
func (p *Profiler) CountWrites(writes, bytes int) {
	p.writeCount += writes
	p.writeBytes += bytes
}

// CountAnimations samples the number of animations in flight this frame.
//
// Parameters:
//   - playing: the registry's active entry count
func (p *Profiler) CountAnimations(playing int) {
	p.animSamples++
	p.animTotal += playing
}

// Tick marks the end of one frame and logs the aggregate stats when the
// update interval has elapsed.
//
// Returns:
//   - bool: true when stats were logged this tick
func (p *Profiler) Tick() bool {
	p.frameCount++
	now := time.Now()
	elapsed := now.Sub(p.lastTime)
	if elapsed < p.updateInterval {
		return false
	}

	fps := float64(p.frameCount) / elapsed.Seconds()
	runtime.ReadMemStats(&p.memStats)
	heapMB := float64(p.memStats.Alloc) / 1024 / 1024
	allocRateMB := float64(p.memStats.TotalAlloc-p.lastTotalAlloc) / 1024 / 1024 / elapsed.Seconds()

	avgPlaying := 0.0
	if p.animSamples > 0 {
		avgPlaying = float64(p.animTotal) / float64(p.animSamples)
	}

	logger.Info("frame stats",
		"fps", fps,
		"playing", avgPlaying,
		"writes", p.writeCount,
		"write_kb", float64(p.writeBytes)/1024,
		"heap_mb", heapMB,
		"alloc_mb_s", allocRateMB,
		"gc", p.memStats.NumGC,
	)

	p.frameCount = 0
	p.writeCount = 0
	p.writeBytes = 0
	p.animSamples = 0
	p.animTotal = 0
	p.lastTime = now
	p.lastTotalAlloc = p.memStats.TotalAlloc
	return true
}
