package profiler

import (
	"bytes"
	"log"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time {
	return c.t
}

func TestTickReportsOncePerInterval(t *testing.T) {
	clock := &fakeClock{t: time.Unix(0, 0)}
	var out bytes.Buffer
	frames := uint64(0)
	p := NewProfiler(
		WithClock(clock.now),
		WithLogger(log.New(&out, "", 0)),
		WithInterval(time.Second),
		WithCounters(func() []Counter { return []Counter{{Name: "frames", Value: frames}} }),
	)

	for range 59 {
		clock.t = clock.t.Add(16 * time.Millisecond)
		frames++
		assert.False(t, p.Tick())
	}
	clock.t = time.Unix(1, 0)
	frames++
	assert.True(t, p.Tick())
	assert.Contains(t, out.String(), "[Profiler] FPS: 60.00")
	assert.Contains(t, out.String(), "[Profiler] frames: 60 (+60)")
}

func TestCounterReportDeltas(t *testing.T) {
	values := []Counter{{Name: "clips", Value: 3}, {Name: "stashed", Value: 10}}
	p := NewProfiler(WithCounters(func() []Counter { return values }))

	assert.Equal(t, "clips: 3 (+3) | stashed: 10 (+10)", p.CounterReport())

	values[0].Value = 5
	assert.Equal(t, "clips: 5 (+2) | stashed: 10 (+0)", p.CounterReport())
}

func TestCounterReportEmptyWithoutSources(t *testing.T) {
	assert.Empty(t, NewProfiler().CounterReport())
}
