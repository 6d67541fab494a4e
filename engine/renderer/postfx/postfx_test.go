package postfx

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUniformSizes(t *testing.T) {
	assert.Equal(t, 16, (&GPUThresholdParams{}).Size())
	assert.Equal(t, 16, (&GPUBlurParams{}).Size())
	assert.Equal(t, 16, (&GPUAfterimageParams{}).Size())
	assert.Equal(t, 16, (&GPUCombineParams{}).Size())
}

func TestPassShadersShareFullscreenVertexStage(t *testing.T) {
	for _, p := range []Pass{PassThreshold, PassBlur, PassAfterimage, PassCombine} {
		s := NewShader(p)
		assert.Equal(t, "postfx."+p.String(), s.Key())
		assert.Equal(t, "vs_fullscreen", s.VertexEntryPoint(), p.String())
		assert.Equal(t, "fs_"+p.String(), s.FragmentEntryPoint(), p.String())
		assert.Empty(t, s.VertexLayouts(), p.String())
		assert.Equal(t, 1, s.GroupCount(), p.String())
	}
}

func TestCombineBindings(t *testing.T) {
	s := NewShader(PassCombine)
	d := s.BindGroupLayoutDescriptor(0)
	require.Len(t, d.Entries, 4)

	assert.Equal(t, wgpu.BufferBindingTypeUniform, d.Entries[0].Buffer.Type)
	assert.Equal(t, uint64(16), d.Entries[0].Buffer.MinBindingSize)
	assert.Equal(t, "base", s.BindGroupVarName(0, 1))
	assert.Equal(t, "bloom", s.BindGroupVarName(0, 2))
	assert.Equal(t, wgpu.SamplerBindingTypeFiltering, d.Entries[3].Sampler.Type)
}

func TestBlurParamsScaleWithRadius(t *testing.T) {
	h, v := BlurParams(800, 400, 0, 0.2)
	assert.InDelta(t, 1.0/800, h.Step[0], 1e-9)
	assert.Zero(t, h.Step[1])
	assert.InDelta(t, 1.0/400, v.Step[1], 1e-9)
	assert.Zero(t, v.Step[0])
	assert.Equal(t, float32(1), h.Strength)
	assert.Equal(t, float32(0.2), v.Strength)

	h, _ = BlurParams(800, 400, 1, 0.2)
	assert.InDelta(t, 5.0/800, h.Step[0], 1e-9)
}

func TestBlurParamsUnsizedTarget(t *testing.T) {
	h, v := BlurParams(0, 0, 0.5, 1)
	assert.Zero(t, h.Step[0])
	assert.Zero(t, v.Step[1])
}

func TestCombineParamsEncoding(t *testing.T) {
	p := CombineParams(1.5, 2, wgpu.TextureFormatBGRA8UnormSrgb)
	assert.Equal(t, uint32(0), p.EncodeSRGB)

	p = CombineParams(1.5, 2, wgpu.TextureFormatBGRA8Unorm)
	assert.Equal(t, uint32(1), p.EncodeSRGB)

	buf := p.Marshal()
	require.Len(t, buf, 16)
	assert.Equal(t, float32(1.5), math.Float32frombits(binary.LittleEndian.Uint32(buf[0:4])))
	assert.Equal(t, uint32(2), binary.LittleEndian.Uint32(buf[4:8]))
	assert.Equal(t, uint32(1), binary.LittleEndian.Uint32(buf[8:12]))
}

func TestThresholdMarshal(t *testing.T) {
	p := ThresholdParams(1)
	buf := p.Marshal()
	assert.Equal(t, float32(1), math.Float32frombits(binary.LittleEndian.Uint32(buf[0:4])))
	assert.Equal(t, float32(ThresholdSmoothing), math.Float32frombits(binary.LittleEndian.Uint32(buf[4:8])))
}
