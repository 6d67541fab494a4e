package material

import (
	"encoding/binary"
	"math"
	"unsafe"
)

// GPUMaterialParams is the GPU-aligned uniform for the mesh shader's material group.
// Matches the WGSL MaterialParams struct layout exactly.
// Size: 64 bytes (four vec4<f32>).
type GPUMaterialParams struct {
	BaseColor [4]float32 // offset  0: RGBA base color (16 bytes)
	Emissive  [4]float32 // offset 16: emissive RGB + intensity (16 bytes)
	Surface   [4]float32 // offset 32: metallic, roughness, AO intensity, normal scale (16 bytes)
	Extra     [4]float32 // offset 48: displacement scale, unlit flag, UV repeat (16 bytes)
}

// Size returns the size of the GPUMaterialParams struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes.
func (g *GPUMaterialParams) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUMaterialParams struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 64-byte buffer ready for GPU upload.
func (g *GPUMaterialParams) Marshal() []byte {
	buf := make([]byte, 64)
	for i, vec := range [4][4]float32{g.BaseColor, g.Emissive, g.Surface, g.Extra} {
		for j, v := range vec {
			off := (i*4 + j) * 4
			binary.LittleEndian.PutUint32(buf[off:off+4], math.Float32bits(v))
		}
	}
	return buf
}
