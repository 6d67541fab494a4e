package renderer

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-moon/common"
	"github.com/Carmen-Shannon/oxy-moon/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-moon/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readFloat(buf []byte, offset int) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(buf[offset:]))
}

func TestFrameUniformLayout(t *testing.T) {
	var u GPUFrameUniform
	require.Equal(t, 224, u.Size())

	u.Camera.CameraPosition = [3]float32{0, 1, 30}
	u.Ambient = [4]float32{2, 2, 2, 1}
	u.Lights[0] = GPUPointLight{Position: [4]float32{20, 5, 30, 3}, Color: [4]float32{1, 1, 1, 0}}
	u.Lights[3].Color = [4]float32{0.5, 0, 0, 0}

	buf := u.Marshal()
	require.Len(t, buf, 224)
	assert.Equal(t, float32(30), readFloat(buf, 72))
	assert.Equal(t, float32(1), readFloat(buf, 92))
	assert.Equal(t, float32(20), readFloat(buf, 96))
	assert.Equal(t, float32(3), readFloat(buf, 108))
	assert.Equal(t, float32(0.5), readFloat(buf, 96+3*32+16))
}

func TestMeshShaderMatchesGPUTypes(t *testing.T) {
	s, err := shader.LoadShader("mesh", shaderAssets, "assets/mesh.wgsl")
	require.NoError(t, err)

	assert.Equal(t, "vs_main", s.VertexEntryPoint())
	assert.Equal(t, "fs_main", s.FragmentEntryPoint())
	assert.Equal(t, 3, s.GroupCount())

	frame := s.BindGroupLayoutDescriptor(groupFrame)
	require.Len(t, frame.Entries, 1)
	assert.Equal(t, uint64(224), frame.Entries[0].Buffer.MinBindingSize)

	mat := s.BindGroupLayoutDescriptor(groupMaterial)
	require.Len(t, mat.Entries, 8)
	var params material.GPUMaterialParams
	assert.Equal(t, uint64(params.Size()), mat.Entries[bindingMaterialParams].Buffer.MinBindingSize)
	for slot := common.TextureSlot(0); slot < common.TextureSlotCount; slot++ {
		assert.Equal(t, wgpu.TextureSampleTypeFloat, mat.Entries[int(slot)+1].Texture.SampleType, slot.String())
	}
	assert.Equal(t, wgpu.SamplerBindingTypeFiltering, mat.Entries[bindingMaterialSampler].Sampler.Type)

	node := s.BindGroupLayoutDescriptor(groupNode)
	require.Len(t, node.Entries, 2)
	assert.Equal(t, uint64(64), node.Entries[bindingNodeWorld].Buffer.MinBindingSize)
	assert.Equal(t, wgpu.BufferBindingTypeReadOnlyStorage, node.Entries[bindingNodeInstances].Buffer.Type)

	require.Len(t, s.VertexLayouts(), 1)
	assert.Equal(t, uint64(48), s.VertexLayouts()[0].ArrayStride)
}

func TestPipelineKeyFor(t *testing.T) {
	assert.Equal(t, PipelineMeshFilled, PipelineKeyFor(material.NewMaterial()))
	assert.Equal(t, PipelineMeshDoubleSided, PipelineKeyFor(material.NewMaterial(material.WithDoubleSided(true))))
	assert.Equal(t, PipelineMeshWireframe, PipelineKeyFor(material.NewMaterial(material.WithWireframe(true), material.WithDoubleSided(true))))
	assert.Equal(t, PipelineMeshDoubleSided, PipelineKeyFor(material.NewPlaceholder()))
}

func TestDefaultTexturesAreNeutral(t *testing.T) {
	d := defaultTextures()
	for slot, tex := range d {
		assert.Equal(t, uint32(1), tex.Width, common.TextureSlot(slot).String())
		assert.Len(t, tex.Pixels, 4)
	}
	assert.True(t, d[common.TextureSlotAlbedo].SRGB)
	assert.Equal(t, []byte{128, 128, 255, 255}, d[common.TextureSlotNormal].Pixels)
	assert.Equal(t, []byte{0, 0, 0, 255}, d[common.TextureSlotHeight].Pixels)
}

func TestBloomScaleOption(t *testing.T) {
	sr := &sceneRenderer{bloomScale: 1}
	WithBloomScale(0.5)(sr)
	assert.Equal(t, float32(0.5), sr.bloomScale)
	WithBloomScale(0)(sr)
	WithBloomScale(2)(sr)
	assert.Equal(t, float32(0.5), sr.bloomScale)
}

func TestAfterimageSamplesPreviousFrame(t *testing.T) {
	var h pingPong
	latest := h.current

	for frame := range 5 {
		dst := h.next()
		assert.NotEqual(t, latest, dst, "frame %d", frame)
		assert.Equal(t, latest, previous(dst), "frame %d", frame)

		h.advance()
		assert.Equal(t, dst, h.current, "frame %d", frame)
		latest = h.current
	}
}

func TestAfterimageBindingsCoverBothTargets(t *testing.T) {
	for i := range 2 {
		assert.Equal(t, i, previous(previous(i)))
		assert.NotEqual(t, i, previous(i))
	}
}
