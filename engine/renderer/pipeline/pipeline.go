package pipeline

import (
	"github.com/Carmen-Shannon/oxy-moon/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

// pipeline is the implementation of the Pipeline interface.
type pipeline struct {
	pipelineKey string
	shader      shader.Shader

	renderPipeline *wgpu.RenderPipeline

	// The following are read by the renderer when the GPU pipeline is created and can be set with builder options.

	depthEnabled      bool
	depthTestEnabled  bool
	depthWriteEnabled bool
	cullMode          wgpu.CullMode
	topology          wgpu.PrimitiveTopology
	frontFace         wgpu.FrontFace
	writeMask         wgpu.ColorWriteMask
	blendState        *wgpu.BlendState
	targetFormat      wgpu.TextureFormat
	sampleCount       uint32
	vertexLayouts     []wgpu.VertexBufferLayout
}

// Pipeline describes a render pipeline: a shader holding both stages plus the fixed-function state the GPU
// pipeline is created with. The GPU object is attached by the renderer on registration.
type Pipeline interface {
	// PipelineKey returns the unique key associated with this pipeline, used for caching and lookups.
	//
	// Returns:
	//   - string: the unique key for this pipeline
	PipelineKey() string

	// Shader returns the shader module holding the vertex and fragment entry points.
	//
	// Returns:
	//   - shader.Shader: the shader, or nil if not set
	Shader() shader.Shader

	// RenderPipeline returns the GPU pipeline, or nil before registration.
	//
	// Returns:
	//   - *wgpu.RenderPipeline: the GPU pipeline
	RenderPipeline() *wgpu.RenderPipeline

	// DepthEnabled reports whether the pipeline renders with a depth attachment at all. Fullscreen post-process
	// passes have none.
	DepthEnabled() bool

	// DepthTestEnabled returns whether fragments are depth tested.
	DepthTestEnabled() bool

	// DepthWriteEnabled returns whether fragments write depth.
	DepthWriteEnabled() bool

	// CullMode returns the face culling mode.
	CullMode() wgpu.CullMode

	// Topology returns the primitive topology.
	Topology() wgpu.PrimitiveTopology

	// FrontFace returns the winding that counts as front facing.
	FrontFace() wgpu.FrontFace

	// WriteMask returns the color write mask of the single color target.
	WriteMask() wgpu.ColorWriteMask

	// BlendState returns the color target blend state, or nil when blending is off.
	BlendState() *wgpu.BlendState

	// TargetFormat returns the color target format. Undefined means the surface format.
	TargetFormat() wgpu.TextureFormat

	// SampleCount returns the multisample count. Zero means the renderer's MSAA setting.
	SampleCount() uint32

	// VertexLayouts returns the vertex buffer layouts. Defaults to the layouts reflected from the shader.
	VertexLayouts() []wgpu.VertexBufferLayout

	// SetRenderPipeline attaches the GPU pipeline. Called by the renderer on registration.
	//
	// Parameters:
	//   - rp: the created GPU pipeline
	SetRenderPipeline(rp *wgpu.RenderPipeline)

	// Release releases the GPU pipeline.
	Release()
}

var _ Pipeline = &pipeline{}

// NewPipeline creates a render pipeline description with depth testing and writing on, no culling, a
// triangle list topology and counter-clockwise front faces.
//
// Parameters:
//   - pipelineKey: the unique key for the pipeline
//   - opts: functional options
//
// Returns:
//   - Pipeline: the pipeline description
func NewPipeline(pipelineKey string, opts ...PipelineBuilderOption) Pipeline {
	p := &pipeline{
		pipelineKey:       pipelineKey,
		depthEnabled:      true,
		depthTestEnabled:  true,
		depthWriteEnabled: true,
		cullMode:          wgpu.CullModeNone,
		topology:          wgpu.PrimitiveTopologyTriangleList,
		frontFace:         wgpu.FrontFaceCCW,
		writeMask:         wgpu.ColorWriteMaskAll,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.vertexLayouts == nil && p.shader != nil {
		p.vertexLayouts = p.shader.VertexLayouts()
	}
	return p
}

func (p *pipeline) PipelineKey() string {
	return p.pipelineKey
}

func (p *pipeline) Shader() shader.Shader {
	return p.shader
}

func (p *pipeline) RenderPipeline() *wgpu.RenderPipeline {
	return p.renderPipeline
}

func (p *pipeline) DepthEnabled() bool {
	return p.depthEnabled
}

func (p *pipeline) DepthTestEnabled() bool {
	return p.depthTestEnabled
}

func (p *pipeline) DepthWriteEnabled() bool {
	return p.depthWriteEnabled
}

func (p *pipeline) CullMode() wgpu.CullMode {
	return p.cullMode
}

func (p *pipeline) Topology() wgpu.PrimitiveTopology {
	return p.topology
}

func (p *pipeline) FrontFace() wgpu.FrontFace {
	return p.frontFace
}

func (p *pipeline) WriteMask() wgpu.ColorWriteMask {
	return p.writeMask
}

func (p *pipeline) BlendState() *wgpu.BlendState {
	return p.blendState
}

func (p *pipeline) TargetFormat() wgpu.TextureFormat {
	return p.targetFormat
}

func (p *pipeline) SampleCount() uint32 {
	return p.sampleCount
}

func (p *pipeline) VertexLayouts() []wgpu.VertexBufferLayout {
	return p.vertexLayouts
}

func (p *pipeline) SetRenderPipeline(rp *wgpu.RenderPipeline) {
	p.renderPipeline = rp
}

func (p *pipeline) Release() {
	if p.renderPipeline != nil {
		p.renderPipeline.Release()
		p.renderPipeline = nil
	}
}
