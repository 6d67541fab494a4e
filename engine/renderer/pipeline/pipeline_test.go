package pipeline

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-moon/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
)

const fullscreen = `
struct VertexOutput {
    @builtin(position) clip: vec4<f32>,
    @location(0) uv: vec2<f32>,
}

struct VertexInput {
    @location(0) position: vec3<f32>,
}

@vertex
fn vs_main(@builtin(vertex_index) i: u32) -> VertexOutput {
    var out: VertexOutput;
    return out;
}

@fragment
fn fs_main(in: VertexOutput) -> @location(0) vec4<f32> {
    return vec4<f32>(in.uv, 0.0, 1.0);
}
`

func TestNewPipelineDefaults(t *testing.T) {
	p := NewPipeline("mesh")
	assert.Equal(t, "mesh", p.PipelineKey())
	assert.True(t, p.DepthEnabled())
	assert.True(t, p.DepthTestEnabled())
	assert.True(t, p.DepthWriteEnabled())
	assert.Equal(t, wgpu.CullModeNone, p.CullMode())
	assert.Equal(t, wgpu.PrimitiveTopologyTriangleList, p.Topology())
	assert.Equal(t, wgpu.FrontFaceCCW, p.FrontFace())
	assert.Nil(t, p.BlendState())
	assert.Nil(t, p.RenderPipeline())
	assert.Zero(t, p.SampleCount())
}

func TestPipelineOptions(t *testing.T) {
	s := shader.NewShader("post", fullscreen)
	p := NewPipeline("combine",
		WithShader(s),
		WithoutDepth(),
		WithBlendState(AdditiveBlend),
		WithTargetFormat(wgpu.TextureFormatRGBA16Float),
		WithSampleCount(1),
		WithCullMode(wgpu.CullModeBack),
		WithTopology(wgpu.PrimitiveTopologyLineList),
	)
	assert.Same(t, s, p.Shader())
	assert.False(t, p.DepthEnabled())
	assert.False(t, p.DepthWriteEnabled())
	assert.Same(t, AdditiveBlend, p.BlendState())
	assert.Equal(t, wgpu.TextureFormatRGBA16Float, p.TargetFormat())
	assert.Equal(t, uint32(1), p.SampleCount())
	assert.Equal(t, wgpu.CullModeBack, p.CullMode())
	assert.Equal(t, wgpu.PrimitiveTopologyLineList, p.Topology())
	// Reflected from the shader's input struct.
	assert.Len(t, p.VertexLayouts(), 1)
}

func TestWithVertexLayoutsOverridesReflection(t *testing.T) {
	s := shader.NewShader("post", fullscreen)
	p := NewPipeline("blit", WithShader(s), WithVertexLayouts())
	assert.Empty(t, p.VertexLayouts())
}
