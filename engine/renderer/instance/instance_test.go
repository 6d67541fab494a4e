package instance

import (
	"testing"

	"cogentcore.org/core/math32"
	"github.com/stretchr/testify/assert"
)

func TestNewInstanceBufferStartsIdentityAndDirty(t *testing.T) {
	b := NewInstanceBuffer(3, WithLabel("stars"))
	assert.Equal(t, 3, b.Capacity())
	assert.Equal(t, "stars", b.Label())
	assert.True(t, b.Dirty())
	assert.Equal(t, IdentityTransform(), b.Get(2))
	assert.Equal(t, float32(1), b.Matrix(1)[0])
	assert.Equal(t, float32(1), b.Matrix(1)[15])
	assert.Len(t, b.Bytes(), 3*64)
}

func TestSetWritesMatrixTranslation(t *testing.T) {
	b := NewInstanceBuffer(2)
	b.Set(1, Transform{Position: math32.Vec3(1, 2, 3), Scale: math32.Vec3(2, 2, 2)})

	m := b.Matrix(1)
	assert.Equal(t, []float32{1, 2, 3}, m[12:15])
	assert.Equal(t, float32(2), m[0])
	assert.Equal(t, math32.Vec3(1, 2, 3), b.Get(1).Position)

	// Slot 0 untouched.
	assert.Equal(t, float32(0), b.Matrix(0)[12])
}

func TestSetOutOfRangePanics(t *testing.T) {
	b := NewInstanceBuffer(70)
	assert.Panics(t, func() { b.Set(70, IdentityTransform()) })
	assert.Panics(t, func() { b.Set(-1, IdentityTransform()) })
	assert.Panics(t, func() { b.Get(100) })
	assert.NotPanics(t, func() { b.Set(69, IdentityTransform()) })
}

func TestDirtyLifecycle(t *testing.T) {
	b := NewInstanceBuffer(1)
	b.ClearDirty()
	assert.False(t, b.Dirty())
	assert.Equal(t, uint64(1), b.Uploads())

	b.Set(0, IdentityTransform())
	assert.False(t, b.Dirty(), "Set does not mark dirty by itself")

	b.MarkDirty()
	assert.True(t, b.Dirty())
	b.ClearDirty()
	b.ClearDirty()
	assert.Equal(t, uint64(2), b.Uploads())
}

func TestWithTransformsSeedsSlots(t *testing.T) {
	b := NewInstanceBuffer(2, WithTransforms(
		Transform{Position: math32.Vec3(5, 0, 0), Scale: math32.Vec3(1, 1, 1)},
		Transform{Position: math32.Vec3(0, 5, 0), Scale: math32.Vec3(1, 1, 1)},
		Transform{Position: math32.Vec3(0, 0, 5), Scale: math32.Vec3(1, 1, 1)},
	))
	assert.Equal(t, float32(5), b.Matrix(0)[12])
	assert.Equal(t, float32(5), b.Matrix(1)[13])
}

func TestGPUInstanceDataMarshal(t *testing.T) {
	g := GPUInstanceData{}
	g.Model[12] = 1
	buf := g.Marshal()
	assert.Len(t, buf, g.Size())
	assert.Equal(t, []byte{0, 0, 0x80, 0x3f}, buf[48:52])
}
