package postfx

import (
	"encoding/binary"
	"math"
	"unsafe"
)

// GPUThresholdParams is the uniform of the bright-pass extraction shader.
// Matches the WGSL ThresholdParams struct layout exactly.
// Size: 16 bytes.
type GPUThresholdParams struct {
	Threshold float32 // offset 0: luminance where extraction starts
	Smoothing float32 // offset 4: width of the smoothstep above the threshold
	_pad      [2]float32
}

// Size returns the size of the GPUThresholdParams struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (16)
func (g *GPUThresholdParams) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUThresholdParams struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 16-byte buffer ready for GPU upload
func (g *GPUThresholdParams) Marshal() []byte {
	return marshalFloats(16, g.Threshold, g.Smoothing)
}

// GPUBlurParams is the uniform of one direction of the separable blur.
// Matches the WGSL BlurParams struct layout exactly.
// Size: 16 bytes.
type GPUBlurParams struct {
	Step     [2]float32 // offset 0: UV offset of one tap along the blur axis
	Strength float32    // offset 8: multiplier applied to the blurred result
	_pad     float32
}

// Size returns the size of the GPUBlurParams struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (16)
func (g *GPUBlurParams) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUBlurParams struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 16-byte buffer ready for GPU upload
func (g *GPUBlurParams) Marshal() []byte {
	return marshalFloats(16, g.Step[0], g.Step[1], g.Strength)
}

// GPUAfterimageParams is the uniform of the temporal decay shader.
// Matches the WGSL AfterimageParams struct layout exactly.
// Size: 16 bytes.
type GPUAfterimageParams struct {
	Damp float32 // offset 0: weight of the previous frame
	_pad [3]float32
}

// Size returns the size of the GPUAfterimageParams struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (16)
func (g *GPUAfterimageParams) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUAfterimageParams struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 16-byte buffer ready for GPU upload
func (g *GPUAfterimageParams) Marshal() []byte {
	return marshalFloats(16, g.Damp)
}

// GPUCombineParams is the uniform of the final combine shader.
// Matches the WGSL CombineParams struct layout exactly.
// Size: 16 bytes.
type GPUCombineParams struct {
	Exposure    float32 // offset 0: multiplier applied before tone mapping
	ToneMapping uint32  // offset 4: operator index (0 none, 1 reinhard, 2 aces)
	EncodeSRGB  uint32  // offset 8: 1 when the shader must apply the sRGB transfer function
	_pad        float32
}

// Size returns the size of the GPUCombineParams struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (16)
func (g *GPUCombineParams) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUCombineParams struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 16-byte buffer ready for GPU upload
func (g *GPUCombineParams) Marshal() []byte {
	buf := make([]byte, 16)
	binary.LittleEndian.PutUint32(buf[0:4], math.Float32bits(g.Exposure))
	binary.LittleEndian.PutUint32(buf[4:8], g.ToneMapping)
	binary.LittleEndian.PutUint32(buf[8:12], g.EncodeSRGB)
	return buf
}

func marshalFloats(size int, values ...float32) []byte {
	buf := make([]byte, size)
	for i, v := range values {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v))
	}
	return buf
}
