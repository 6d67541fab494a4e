// Package starfield animates the instanced star pool: rest placement on a sphere around the origin and the
// shooting-star scheduler that periodically flings one star towards a random destination.
package starfield

import (
	"math/rand/v2"

	"cogentcore.org/core/math32"
	"github.com/Carmen-Shannon/oxy-moon/common"
	"github.com/Carmen-Shannon/oxy-moon/engine/renderer/instance"
)

// starPool is the implementation of the StarPool interface.
type starPool struct {
	radius float32
	jitter float32
	scale  float32
	rng    *rand.Rand
	label  string

	rest   []instance.Transform
	buffer instance.InstanceBuffer
}

// StarPool is a fixed-size set of star instances. Each slot gets a rest transform once at construction:
// a point on or near a sphere around the origin, rotated so the star faces the origin.
type StarPool interface {
	// Size returns the number of stars.
	//
	// Returns:
	//   - int: the pool size
	Size() int

	// Rest returns the rest transform chosen for a slot at construction.
	// Panics if index is out of range.
	//
	// Parameters:
	//   - index: the slot
	//
	// Returns:
	//   - instance.Transform: the rest transform
	Rest(index int) instance.Transform

	// Buffer returns the instance buffer the renderer draws the pool from.
	//
	// Returns:
	//   - instance.InstanceBuffer: the shared transform buffer
	Buffer() instance.InstanceBuffer

	// ResetAll writes every rest transform back into the buffer and marks it dirty.
	ResetAll()
}

var _ StarPool = &starPool{}

// NewStarPool creates a pool of size stars and writes their rest transforms into a new instance buffer.
//
// Parameters:
//   - size: the number of stars (minimum 1)
//   - options: functional options
//
// Returns:
//   - StarPool: the pool
func NewStarPool(size int, options ...StarPoolBuilderOption) StarPool {
	p := &starPool{
		radius: 40,
		jitter: 0,
		scale:  1,
		label:  "star-pool",
	}
	for _, opt := range options {
		opt(p)
	}
	if p.rng == nil {
		p.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	p.buffer = instance.NewInstanceBuffer(size, instance.WithLabel(p.label))
	p.rest = make([]instance.Transform, size)
	for i := range p.rest {
		dir := common.RandomUnitVector(p.rng)
		r := p.radius + (2*p.rng.Float32()-1)*p.jitter
		pos := dir.MulScalar(r)
		p.rest[i] = instance.Transform{
			Position: pos,
			Rotation: common.FacingRotation(pos, math32.Vector3{}),
			Scale:    math32.Vec3(p.scale, p.scale, p.scale),
		}
	}
	p.ResetAll()
	return p
}

func (p *starPool) Size() int {
	return len(p.rest)
}

func (p *starPool) Rest(index int) instance.Transform {
	return p.rest[index]
}

func (p *starPool) Buffer() instance.InstanceBuffer {
	return p.buffer
}

func (p *starPool) ResetAll() {
	for i, t := range p.rest {
		p.buffer.Set(i, t)
	}
	p.buffer.MarkDirty()
}
