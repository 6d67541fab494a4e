package starfield

import (
	"math/rand/v2"
	"testing"

	"cogentcore.org/core/math32"
	"github.com/Carmen-Shannon/oxy-moon/common"
	"github.com/Carmen-Shannon/oxy-moon/engine/config"
	"github.com/Carmen-Shannon/oxy-moon/engine/renderer/instance"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seeded() *rand.Rand {
	return rand.New(rand.NewPCG(7, 11))
}

func defaultParams() Params {
	return ParamsFromConfig(config.Default().ShootingStar)
}

// fixedPicker always selects index with offset.
func fixedPicker(index int, offset math32.Vector3) Picker {
	return func(int) (int, math32.Vector3) { return index, offset }
}

func TestStarPoolRestPlacement(t *testing.T) {
	p := NewStarPool(70, WithRadius(40), WithJitter(2), WithStarScale(4), WithPoolRand(seeded()))
	require.Equal(t, 70, p.Size())
	assert.Equal(t, 70, p.Buffer().Capacity())
	assert.Equal(t, "star-pool", p.Buffer().Label())
	assert.True(t, p.Buffer().Dirty())

	for i := 0; i < p.Size(); i++ {
		rest := p.Rest(i)
		assert.InDelta(t, 40, rest.Position.Length(), 2.0001)
		assert.Equal(t, math32.Vec3(4, 4, 4), rest.Scale)
		assert.Equal(t, rest, p.Buffer().Get(i))

		// The local +Z axis, rotated by the rest rotation, points at the origin.
		m := p.Buffer().Matrix(i)
		forward := math32.Vec3(m[8], m[9], m[10]).Normal()
		toOrigin := rest.Position.MulScalar(-1).Normal()
		assert.InDelta(t, 1, forward.Dot(toOrigin), 1e-4)
	}
}

func TestStarPoolResetAllRestoresRest(t *testing.T) {
	p := NewStarPool(5, WithPoolRand(seeded()), WithPoolLabel("pool"))
	p.Buffer().ClearDirty()
	p.Buffer().Set(3, instance.IdentityTransform())

	p.ResetAll()
	assert.True(t, p.Buffer().Dirty())
	assert.Equal(t, p.Rest(3), p.Buffer().Get(3))
	assert.Equal(t, "pool", p.Buffer().Label())
}

func TestEaseOutQuadMonotonic(t *testing.T) {
	prev := common.EaseOutQuad(0)
	assert.Equal(t, float32(0), prev)
	for i := 1; i <= 100; i++ {
		e := common.EaseOutQuad(float32(i) / 100)
		assert.GreaterOrEqual(t, e, prev)
		prev = e
	}
	assert.Equal(t, float32(1), prev)
	assert.Equal(t, float32(0.75), common.EaseOutQuad(0.5))
}

func TestClipPositionStaysOnSegment(t *testing.T) {
	c := Clip{
		Start:      instance.Transform{Position: math32.Vec3(1, -2, 3)},
		Offset:     math32.Vec3(-4, 5, 6),
		StartMs:    1000,
		DurationMs: 700,
	}
	from := c.Start.Position
	to := c.Destination()
	length := to.Sub(from).Length()

	for now := 900.0; now <= 2000; now += 13 {
		p := c.PositionAt(now)
		// On the segment: distances to both ends add up to the segment length.
		sum := p.Sub(from).Length() + to.Sub(p).Length()
		assert.InDelta(t, length, sum, 1e-4, "now=%v", now)
	}
	assert.Equal(t, from, c.PositionAt(1000))
	assert.Equal(t, to, c.PositionAt(1700))
	assert.Equal(t, to, c.PositionAt(5000))
	assert.Equal(t, float32(0), c.Progress(500))
}

func TestClipZeroDurationIsComplete(t *testing.T) {
	c := Clip{Offset: math32.Vec3(1, 0, 0)}
	assert.Equal(t, float32(1), c.Progress(0))
	assert.Equal(t, math32.Vec3(1, 0, 0), c.PositionAt(0))
}

func TestRetriggerCadence(t *testing.T) {
	pool := NewStarPool(70, WithPoolRand(seeded()))
	s := NewScheduler(pool.Buffer(), defaultParams(), WithRand(seeded()))

	assert.False(t, s.Update(0))
	_, active := s.Active()
	assert.False(t, active)

	assert.False(t, s.Update(1999))
	assert.True(t, s.Update(2001))
	assert.False(t, s.Update(3000))
	assert.True(t, s.Update(4500))
	assert.Equal(t, uint64(2), s.Triggers())

	clip, active := s.Active()
	require.True(t, active)
	assert.Equal(t, 4500.0, clip.StartMs)
	assert.Equal(t, 700.0, clip.DurationMs)
	assert.InDelta(t, 6, clip.Offset.Length(), 1e-4)
	assert.GreaterOrEqual(t, clip.Index, 0)
	assert.Less(t, clip.Index, 70)
}

func TestRetriggerExactlyAtInterval(t *testing.T) {
	pool := NewStarPool(4, WithPoolRand(seeded()))
	s := NewScheduler(pool.Buffer(), defaultParams(), WithRand(seeded()))
	s.Update(100)
	assert.True(t, s.Update(2100))
}

func TestSingleActiveClipLastWriteWins(t *testing.T) {
	pool := NewStarPool(70, WithPoolRand(seeded()))
	buf := pool.Buffer()
	indices := []int{3, 9}
	calls := 0
	s := NewScheduler(buf, defaultParams(), WithPicker(func(int) (int, math32.Vector3) {
		i := indices[calls]
		calls++
		return i, math32.Vec3(0, 1, 0)
	}))

	s.Trigger(0)
	s.Update(100)
	first := buf.Get(3)
	assert.NotEqual(t, pool.Rest(3).Position, first.Position)

	assert.True(t, s.Update(2001))
	clip, active := s.Active()
	require.True(t, active)
	assert.Equal(t, 9, clip.Index)
	assert.Equal(t, uint64(2), s.Triggers())

	s.Update(2300)
	s.Update(2701)
	// Slot 3 keeps whatever was written last by the first clip.
	assert.Equal(t, first, buf.Get(3))
	assert.Equal(t, pool.Rest(9).Position.Add(math32.Vec3(0, 1, 0)), buf.Get(9).Position)
}

func TestEndToEndClip(t *testing.T) {
	pool := NewStarPool(70, WithPoolRand(seeded()))
	buf := pool.Buffer()
	buf.Set(12, instance.Transform{Position: math32.Vec3(0, 2, 0), Scale: math32.Vec3(1, 1, 1)})

	s := NewScheduler(buf, defaultParams(), WithPicker(fixedPicker(12, math32.Vec3(1, 0, 0))))
	clip := s.Trigger(0)
	assert.Equal(t, 12, clip.Index)
	assert.Equal(t, math32.Vec3(0, 2, 0), clip.Start.Position)

	buf.ClearDirty()
	assert.False(t, s.Update(350))
	assert.True(t, buf.Dirty())
	assert.Equal(t, math32.Vec3(0.75, 2, 0), buf.Get(12).Position)

	s.Update(700)
	assert.Equal(t, math32.Vec3(1, 2, 0), buf.Get(12).Position)

	buf.ClearDirty()
	assert.False(t, s.Update(900))
	assert.Equal(t, math32.Vec3(1, 2, 0), buf.Get(12).Position)
	// A finished clip no longer touches the buffer.
	assert.False(t, buf.Dirty())
	assert.Equal(t, uint64(1), s.Triggers())
}

func TestUpdateRollsAnimatedStar(t *testing.T) {
	pool := NewStarPool(2, WithPoolRand(seeded()))
	p := defaultParams()
	s := NewScheduler(pool.Buffer(), p, WithPicker(fixedPicker(1, math32.Vec3(0, 0, 1))))
	s.Trigger(0)
	s.Update(500)

	got := pool.Buffer().Get(1)
	assert.InDelta(t, p.RollSpeed*0.5, got.Rotation.Z, 1e-5)
	assert.Equal(t, pool.Rest(1).Rotation.X, got.Rotation.X)
	assert.Equal(t, pool.Rest(1).Scale, got.Scale)
}

func TestPausedSchedulerDoesNotRetrigger(t *testing.T) {
	pool := NewStarPool(8, WithPoolRand(seeded()))
	s := NewScheduler(pool.Buffer(), defaultParams(), WithRand(seeded()))
	s.Update(0)
	s.SetPaused(true)
	assert.True(t, s.Paused())
	assert.False(t, s.Update(5000))

	s.SetPaused(false)
	assert.True(t, s.Update(5001))
}

func TestSetParamsAppliesToNextClip(t *testing.T) {
	pool := NewStarPool(8, WithPoolRand(seeded()))
	s := NewScheduler(pool.Buffer(), defaultParams(), WithPicker(fixedPicker(0, math32.Vec3(1, 0, 0))))
	first := s.Trigger(0)

	p := s.Params()
	p.DurationMs = 100
	p.IntervalMs = 500
	s.SetParams(p)

	active, _ := s.Active()
	assert.Equal(t, first.DurationMs, active.DurationMs)
	assert.True(t, s.Update(500))
	active, _ = s.Active()
	assert.Equal(t, 100.0, active.DurationMs)
}

func TestPickerOutOfRangePanics(t *testing.T) {
	pool := NewStarPool(70, WithPoolRand(seeded()))
	s := NewScheduler(pool.Buffer(), defaultParams(), WithPicker(fixedPicker(70, math32.Vector3{})))
	assert.Panics(t, func() { s.Trigger(0) })
}
