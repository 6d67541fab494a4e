// Package instance holds fixed-capacity per-instance transform buffers consumed by instanced draws.
package instance

import (
	"fmt"

	"cogentcore.org/core/math32"
	"github.com/Carmen-Shannon/oxy-moon/common"
	"github.com/Carmen-Shannon/oxy-moon/engine/renderer/bind_group_provider"
)

// Transform is a decomposed instance transform. Rotation holds Euler angles in radians applied Y * X * Z.
type Transform struct {
	Position math32.Vector3
	Rotation math32.Vector3
	Scale    math32.Vector3
}

// IdentityTransform returns a transform with unit scale at the origin.
func IdentityTransform() Transform {
	return Transform{Scale: math32.Vec3(1, 1, 1)}
}

// instanceBuffer is the implementation of the InstanceBuffer interface.
type instanceBuffer struct {
	label      string
	transforms []Transform
	matrices   []float32
	dirty      bool
	uploads    uint64

	bindGroupProvider bind_group_provider.BindGroupProvider
}

// InstanceBuffer is a fixed-capacity array of instance transforms with a parallel flat matrix array ready
// for upload. The capacity is set at construction and never changes.
//
// Writes are not uploaded implicitly: callers write with Set, then MarkDirty, and the renderer uploads
// dirty buffers once per frame and clears the flag.
type InstanceBuffer interface {
	// Label returns the debug label.
	Label() string

	// Capacity returns the fixed number of slots.
	//
	// Returns:
	//   - int: the slot count
	Capacity() int

	// Set writes the transform at index and rebuilds that slot's matrix.
	// Panics if index is outside [0, Capacity()).
	//
	// Parameters:
	//   - index: the slot to write
	//   - t: the new transform
	Set(index int, t Transform)

	// SetMatrix writes a precomputed matrix at index. The decomposed transform of the slot is left unchanged.
	// Panics if index is outside [0, Capacity()).
	//
	// Parameters:
	//   - index: the slot to write
	//   - m: a column-major 4x4 matrix (16 elements)
	SetMatrix(index int, m []float32)

	// Get returns the transform last written with Set at index.
	// Panics if index is outside [0, Capacity()).
	//
	// Parameters:
	//   - index: the slot to read
	//
	// Returns:
	//   - Transform: the stored transform
	Get(index int) Transform

	// Matrix returns the 16-element matrix of a slot. The slice aliases the buffer.
	Matrix(index int) []float32

	// MarkDirty flags the buffer for upload.
	MarkDirty()

	// Dirty reports whether the buffer changed since the last ClearDirty.
	Dirty() bool

	// ClearDirty resets the dirty flag after an upload and counts the upload.
	ClearDirty()

	// Uploads returns the number of times the buffer has been uploaded.
	Uploads() uint64

	// Bytes returns the matrices as little-endian data ready for GPU upload.
	Bytes() []byte

	// BindGroupProvider returns the provider holding the GPU storage buffer, or nil before upload.
	BindGroupProvider() bind_group_provider.BindGroupProvider

	// SetBindGroupProvider stores the provider created by the renderer.
	SetBindGroupProvider(p bind_group_provider.BindGroupProvider)
}

var _ InstanceBuffer = &instanceBuffer{}

// NewInstanceBuffer creates an InstanceBuffer with capacity slots, each initialized to the identity transform.
// The buffer starts dirty so its first frame is uploaded.
//
// Parameters:
//   - capacity: the fixed slot count (minimum 1)
//   - options: functional options
//
// Returns:
//   - InstanceBuffer: the buffer
func NewInstanceBuffer(capacity int, options ...InstanceBufferBuilderOption) InstanceBuffer {
	if capacity < 1 {
		panic(fmt.Sprintf("instance: capacity must be positive, got %d", capacity))
	}
	b := &instanceBuffer{
		transforms: make([]Transform, capacity),
		matrices:   make([]float32, capacity*16),
		dirty:      true,
	}
	for i := range b.transforms {
		b.transforms[i] = IdentityTransform()
		common.Identity(b.matrices[i*16 : (i+1)*16])
	}
	for _, opt := range options {
		opt(b)
	}
	return b
}

func (b *instanceBuffer) Label() string {
	return b.label
}

func (b *instanceBuffer) Capacity() int {
	return len(b.transforms)
}

func (b *instanceBuffer) checkIndex(index int) {
	if index < 0 || index >= len(b.transforms) {
		panic(fmt.Sprintf("instance: %s index %d out of range [0, %d)", b.label, index, len(b.transforms)))
	}
}

func (b *instanceBuffer) Set(index int, t Transform) {
	b.checkIndex(index)
	b.transforms[index] = t
	common.BuildModelMatrix(b.matrices[index*16:(index+1)*16], t.Position, t.Rotation, t.Scale)
}

func (b *instanceBuffer) SetMatrix(index int, m []float32) {
	b.checkIndex(index)
	copy(b.matrices[index*16:(index+1)*16], m[:16])
}

func (b *instanceBuffer) Get(index int) Transform {
	b.checkIndex(index)
	return b.transforms[index]
}

func (b *instanceBuffer) Matrix(index int) []float32 {
	b.checkIndex(index)
	return b.matrices[index*16 : (index+1)*16]
}

func (b *instanceBuffer) MarkDirty() {
	b.dirty = true
}

func (b *instanceBuffer) Dirty() bool {
	return b.dirty
}

func (b *instanceBuffer) ClearDirty() {
	if b.dirty {
		b.uploads++
	}
	b.dirty = false
}

func (b *instanceBuffer) Uploads() uint64 {
	return b.uploads
}

func (b *instanceBuffer) Bytes() []byte {
	return common.SliceToBytes(b.matrices)
}

func (b *instanceBuffer) BindGroupProvider() bind_group_provider.BindGroupProvider {
	return b.bindGroupProvider
}

func (b *instanceBuffer) SetBindGroupProvider(p bind_group_provider.BindGroupProvider) {
	b.bindGroupProvider = p
}
