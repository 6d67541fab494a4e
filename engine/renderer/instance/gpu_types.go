package instance

import (
	"encoding/binary"
	"math"
	"unsafe"
)

// GPUInstanceData is the GPU-aligned representation of a single per-instance model matrix.
// Matches the InstanceData struct in the mesh shader.
// Size: 64 bytes (mat4x4<f32>, no padding required).
type GPUInstanceData struct {
	Model [16]float32 // offset 0: column-major instance-to-node transform (64 bytes)
}

// Size returns the size of the GPUInstanceData struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes.
func (g *GPUInstanceData) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUInstanceData struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 64-byte buffer ready for GPU upload.
func (g *GPUInstanceData) Marshal() []byte {
	buf := make([]byte, 64)
	for i := 0; i < 16; i++ {
		binary.LittleEndian.PutUint32(buf[i*4:(i+1)*4], math.Float32bits(g.Model[i]))
	}
	return buf
}
