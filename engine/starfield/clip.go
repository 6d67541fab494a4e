package starfield

import (
	"cogentcore.org/core/math32"
	"github.com/Carmen-Shannon/oxy-moon/common"
	"github.com/Carmen-Shannon/oxy-moon/engine/renderer/instance"
)

// Clip is one shooting-star animation: the selected slot, a snapshot of its transform at creation, and the
// offset it travels over DurationMs.
type Clip struct {
	// Index is the pool slot being animated.
	Index int
	// Start is the slot's transform when the clip was created. It is never recomputed.
	Start instance.Transform
	// Offset is added to Start.Position to get the destination.
	Offset math32.Vector3
	// StartMs is the timestamp the clip was created at.
	StartMs float64
	// DurationMs is the interpolation length.
	DurationMs float64
}

// Progress returns the linear progress t = min(elapsed/duration, 1) at nowMs, clamped to [0, 1].
//
// Parameters:
//   - nowMs: the current timestamp
//
// Returns:
//   - float32: linear progress
func (c Clip) Progress(nowMs float64) float32 {
	if c.DurationMs <= 0 {
		return 1
	}
	return common.Clamp01(float32((nowMs - c.StartMs) / c.DurationMs))
}

// Destination returns the end point of the clip.
func (c Clip) Destination() math32.Vector3 {
	return c.Start.Position.Add(c.Offset)
}

// PositionAt returns the eased position at nowMs. It always lies on the segment from the start position to
// the destination.
//
// Parameters:
//   - nowMs: the current timestamp
//
// Returns:
//   - math32.Vector3: the interpolated position
func (c Clip) PositionAt(nowMs float64) math32.Vector3 {
	t := c.Progress(nowMs)
	if t >= 1 {
		return c.Destination()
	}
	return common.Lerp3(c.Start.Position, c.Destination(), common.EaseOutQuad(t))
}
