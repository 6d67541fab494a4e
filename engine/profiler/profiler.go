// Package profiler logs frame rate, memory and engine work counters at a fixed interval.
package profiler

import (
	"fmt"
	"log"
	"runtime"
	"strings"
	"time"
)

// Counter is a named monotonically increasing work count, such as composited frames or started clips.
type Counter struct {
	Name  string
	Value uint64
}

// CounterSource reports the current values of a group of counters. It is polled once per interval.
type CounterSource func() []Counter

// Profiler tracks frame rate, memory statistics and engine counters for performance monitoring.
// Outputs stats to the log at a configurable interval.
type Profiler struct {
	frameCount     int
	lastTime       time.Time
	updateInterval time.Duration
	memStats       runtime.MemStats
	lastGCCount    uint32
	lastTotalAlloc uint64

	sources      []CounterSource
	lastCounters map[string]uint64
	now          func() time.Time
	logger       *log.Logger
}

// NewProfiler creates a new Profiler.
// Update interval defaults to 1 second.
//
// Parameters:
//   - options: functional options
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler(options ...ProfilerBuilderOption) *Profiler {
	p := &Profiler{
		updateInterval: time.Second,
		memStats:       runtime.MemStats{},
		lastCounters:   make(map[string]uint64),
		now:            time.Now,
		logger:         log.Default(),
	}
	for _, opt := range options {
		opt(p)
	}
	p.lastTime = p.now()
	return p
}

// Tick should be called once per frame to track frame timing.
// Logs performance statistics when the update interval has elapsed.
// Statistics include: FPS, heap usage, allocation rate, GC count/pause times, total memory, and one line of
// engine counters with their change since the previous report.
//
// Returns:
//   - bool: true if stats were logged this tick, false otherwise
func (p *Profiler) Tick() bool {
	p.frameCount++
	currentTime := p.now()
	elapsed := currentTime.Sub(p.lastTime)

	if elapsed < p.updateInterval {
		return false
	}

	fps := float64(p.frameCount) / elapsed.Seconds()

	runtime.ReadMemStats(&p.memStats)
	// Alloc: Bytes of allocated heap objects (live memory)
	// TotalAlloc: Cumulative bytes allocated for heap objects (increases forever, tracks churn)
	// Sys: Total bytes of memory obtained from the OS (actual process footprint)
	allocMB := float64(p.memStats.Alloc) / 1024 / 1024
	sysMB := float64(p.memStats.Sys) / 1024 / 1024

	allocDelta := p.memStats.TotalAlloc - p.lastTotalAlloc
	allocRateMB := float64(allocDelta) / 1024 / 1024 / elapsed.Seconds()

	gcCount := p.memStats.NumGC
	var lastPauseUs, maxPauseUs uint64
	if gcCount > 0 {
		// PauseNs is a circular buffer of last 256 GC pauses
		lastPauseUs = p.memStats.PauseNs[(gcCount-1)%256] / 1000

		startIdx := p.lastGCCount
		if gcCount-startIdx > 256 {
			startIdx = gcCount - 256
		}
		for i := startIdx; i < gcCount; i++ {
			pause := p.memStats.PauseNs[i%256] / 1000
			if pause > maxPauseUs {
				maxPauseUs = pause
			}
		}
	}

	p.logger.Printf("[Profiler] FPS: %.2f | Heap: %.2f MB | Alloc Rate: %.2f MB/s | GC: %d (last: %d µs, max: %d µs) | Sys: %.2f MB",
		fps, allocMB, allocRateMB, gcCount, lastPauseUs, maxPauseUs, sysMB)
	if line := p.CounterReport(); line != "" {
		p.logger.Printf("[Profiler] %s", line)
	}

	p.frameCount = 0
	p.lastTime = currentTime
	p.lastGCCount = gcCount
	p.lastTotalAlloc = p.memStats.TotalAlloc
	return true
}

// CounterReport polls every source and formats "name: value (+delta)" pairs, where delta is the change since
// the previous report. Returns an empty string when no source is registered.
//
// Returns:
//   - string: the formatted counters
func (p *Profiler) CounterReport() string {
	var parts []string
	for _, src := range p.sources {
		for _, c := range src() {
			delta := c.Value - p.lastCounters[c.Name]
			if c.Value < p.lastCounters[c.Name] {
				delta = c.Value
			}
			p.lastCounters[c.Name] = c.Value
			parts = append(parts, fmt.Sprintf("%s: %d (+%d)", c.Name, c.Value, delta))
		}
	}
	return strings.Join(parts, " | ")
}
