package starfield

import (
	"math/rand/v2"

	"cogentcore.org/core/math32"
	"github.com/Carmen-Shannon/oxy-moon/common"
	"github.com/Carmen-Shannon/oxy-moon/engine/config"
	"github.com/Carmen-Shannon/oxy-moon/engine/renderer/instance"
)

// Params configures the scheduler. Changes apply from the next created clip on, except RollSpeed which
// applies from the next frame.
type Params struct {
	// IntervalMs is the minimum gap between two clip starts, measured start to start.
	IntervalMs float64
	// DurationMs is the interpolation length of a new clip.
	DurationMs float64
	// Distance is the length of the random destination offset.
	Distance float32
	// RollSpeed is the roll rate of the animated star in radians per second of wall-clock time.
	RollSpeed float32
}

// ParamsFromConfig maps the shooting-star configuration onto scheduler parameters.
//
// Parameters:
//   - c: the shooting-star configuration
//
// Returns:
//   - Params: the scheduler parameters
func ParamsFromConfig(c config.ShootingStar) Params {
	return Params{
		IntervalMs: c.IntervalMs,
		DurationMs: c.DurationMs,
		Distance:   c.Distance,
		RollSpeed:  c.RollSpeed,
	}
}

// Picker chooses the slot and destination offset of a new clip.
type Picker func(size int) (index int, offset math32.Vector3)

// scheduler is the implementation of the Scheduler interface.
type scheduler struct {
	buffer instance.InstanceBuffer
	params Params
	rng    *rand.Rand
	pick   Picker

	started  bool
	lastMs   float64
	active   Clip
	animated bool
	done     bool
	paused   bool
	triggers uint64
}

// Scheduler drives the shooting-star animation on an instance buffer. It holds at most one active clip.
// A new clip starts whenever at least IntervalMs has passed since the previous start, whether or not the
// previous clip finished; the new clip replaces it and the old star keeps its last written transform.
//
// All methods must be called from the frame callback. Timestamps are wall-clock milliseconds and must not
// decrease between calls.
type Scheduler interface {
	// Update runs one frame: starts a new clip when the interval has elapsed, then writes the active clip's
	// transform into the buffer and marks it dirty. The first call only arms the retrigger timer.
	//
	// Parameters:
	//   - nowMs: the frame timestamp
	//
	// Returns:
	//   - bool: true if a new clip started on this call
	Update(nowMs float64) bool

	// Trigger starts a new clip immediately with a randomly chosen slot and destination, and restarts the
	// retrigger timer from nowMs.
	//
	// Parameters:
	//   - nowMs: the timestamp the clip starts at
	//
	// Returns:
	//   - Clip: the new active clip
	Trigger(nowMs float64) Clip

	// Active returns the current clip.
	//
	// Returns:
	//   - Clip: the active clip
	//   - bool: false if no clip has started yet
	Active() (Clip, bool)

	// Triggers returns the number of clips started so far.
	Triggers() uint64

	// Params returns the current parameters.
	Params() Params

	// SetParams replaces the parameters.
	//
	// Parameters:
	//   - p: the new parameters
	SetParams(p Params)

	// SetPaused stops automatic retriggering while true. The active clip keeps animating.
	//
	// Parameters:
	//   - paused: the new state
	SetPaused(paused bool)

	// Paused reports whether automatic retriggering is stopped.
	Paused() bool
}

var _ Scheduler = &scheduler{}

// NewScheduler creates a scheduler writing into buffer. Slot selection is uniform over the buffer capacity
// and the destination offset is a uniformly random direction scaled by Params.Distance, unless a Picker is
// supplied.
//
// Parameters:
//   - buffer: the star pool's instance buffer
//   - params: the initial parameters
//   - options: functional options
//
// Returns:
//   - Scheduler: the scheduler
func NewScheduler(buffer instance.InstanceBuffer, params Params, options ...SchedulerBuilderOption) Scheduler {
	s := &scheduler{
		buffer: buffer,
		params: params,
	}
	for _, opt := range options {
		opt(s)
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if s.pick == nil {
		s.pick = s.randomPick
	}
	return s
}

func (s *scheduler) randomPick(size int) (int, math32.Vector3) {
	return s.rng.IntN(size), common.RandomUnitVector(s.rng).MulScalar(s.params.Distance)
}

func (s *scheduler) Update(nowMs float64) bool {
	if !s.started {
		s.started = true
		s.lastMs = nowMs
	}

	triggered := false
	if !s.paused && nowMs-s.lastMs >= s.params.IntervalMs {
		s.Trigger(nowMs)
		triggered = true
	}

	if s.animated && !s.done {
		s.write(nowMs)
	}
	return triggered
}

func (s *scheduler) Trigger(nowMs float64) Clip {
	index, offset := s.pick(s.buffer.Capacity())
	// Get panics on an out-of-range index.
	start := s.buffer.Get(index)

	s.started = true
	s.lastMs = nowMs
	s.active = Clip{
		Index:      index,
		Start:      start,
		Offset:     offset,
		StartMs:    nowMs,
		DurationMs: s.params.DurationMs,
	}
	s.animated = true
	s.done = false
	s.triggers++
	return s.active
}

// write stores the active clip's transform at nowMs. Once progress reaches 1 the destination is written one
// last time and the clip stops touching the buffer.
func (s *scheduler) write(nowMs float64) {
	c := s.active
	rot := c.Start.Rotation
	rot.Z = s.params.RollSpeed * float32(nowMs/1000)

	s.buffer.Set(c.Index, instance.Transform{
		Position: c.PositionAt(nowMs),
		Rotation: rot,
		Scale:    c.Start.Scale,
	})
	s.buffer.MarkDirty()

	if c.Progress(nowMs) >= 1 {
		s.done = true
	}
}

func (s *scheduler) Active() (Clip, bool) {
	return s.active, s.animated
}

func (s *scheduler) Triggers() uint64 {
	return s.triggers
}

func (s *scheduler) Params() Params {
	return s.params
}

func (s *scheduler) SetParams(p Params) {
	s.params = p
}

func (s *scheduler) SetPaused(paused bool) {
	s.paused = paused
}

func (s *scheduler) Paused() bool {
	return s.paused
}
