package profiler

import (
	"log"
	"time"
)

// ProfilerBuilderOption is a functional option applied to a Profiler during construction via NewProfiler.
type ProfilerBuilderOption func(*Profiler)

// WithInterval sets how often statistics are logged. Non-positive values are ignored.
//
// Parameters:
//   - interval: the reporting interval
//
// Returns:
//   - ProfilerBuilderOption: a function that applies the interval to a Profiler
func WithInterval(interval time.Duration) ProfilerBuilderOption {
	return func(p *Profiler) {
		if interval > 0 {
			p.updateInterval = interval
		}
	}
}

// WithCounters registers a counter source reported after the frame statistics.
//
// Parameters:
//   - source: the counter source
//
// Returns:
//   - ProfilerBuilderOption: a function that registers the source on a Profiler
func WithCounters(source CounterSource) ProfilerBuilderOption {
	return func(p *Profiler) {
		if source != nil {
			p.sources = append(p.sources, source)
		}
	}
}

// WithClock replaces the wall clock, for tests.
//
// Parameters:
//   - now: the clock function
//
// Returns:
//   - ProfilerBuilderOption: a function that applies the clock to a Profiler
func WithClock(now func() time.Time) ProfilerBuilderOption {
	return func(p *Profiler) {
		if now != nil {
			p.now = now
		}
	}
}

// WithLogger redirects the report output.
//
// Parameters:
//   - logger: the destination logger
//
// Returns:
//   - ProfilerBuilderOption: a function that applies the logger to a Profiler
func WithLogger(logger *log.Logger) ProfilerBuilderOption {
	return func(p *Profiler) {
		if logger != nil {
			p.logger = logger
		}
	}
}
