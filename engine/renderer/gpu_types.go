package renderer

import (
	"encoding/binary"
	"math"
	"unsafe"

	"github.com/Carmen-Shannon/oxy-moon/engine/camera"
)

// MaxPointLights is the size of the point light array in the frame uniform. Extra lights are ignored.
const MaxPointLights = 4

// GPUPointLight is one entry of the frame uniform's light array.
// Size: 32 bytes.
type GPUPointLight struct {
	Position [4]float32 // offset  0: world-space position (xyz), intensity (w)
	Color    [4]float32 // offset 16: linear RGB color (xyz), unused (w)
}

// GPUFrameUniform is the GPU-aligned per-frame uniform bound at group 0 of the mesh shader.
// Matches the WGSL Frame struct layout exactly.
// Size: 224 bytes.
type GPUFrameUniform struct {
	Camera  camera.GPUCameraUniform       // offset  0: view-projection and camera position (80 bytes)
	Ambient [4]float32                    // offset 80: ambient radiance (rgb), point light count (w)
	Lights  [MaxPointLights]GPUPointLight // offset 96: point lights (128 bytes)
}

// Size returns the size of the GPUFrameUniform struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (224)
func (g *GPUFrameUniform) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUFrameUniform struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: the serialized byte buffer
func (g *GPUFrameUniform) Marshal() []byte {
	buf := make([]byte, g.Size())
	g.Camera.MarshalInto(buf)
	putVec4(buf[80:], g.Ambient)
	for i, l := range g.Lights {
		off := 96 + i*32
		putVec4(buf[off:], l.Position)
		putVec4(buf[off+16:], l.Color)
	}
	return buf
}

// GPUNodeUniform carries the world matrix of the node that owns an instance buffer.
// Size: 64 bytes.
type GPUNodeUniform struct {
	World [16]float32 // offset 0: column-major world matrix (mat4x4<f32>)
}

// Marshal serializes the GPUNodeUniform struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: the 64-byte buffer
func (g *GPUNodeUniform) Marshal() []byte {
	buf := make([]byte, 64)
	for i, v := range g.World {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v))
	}
	return buf
}

func putVec4(buf []byte, v [4]float32) {
	for i, f := range v {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
}
