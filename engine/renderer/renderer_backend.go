package renderer

import "github.com/cogentcore/webgpu/wgpu"

// RendererBackendType identifies the GPU backend implementation used by the Renderer.
type RendererBackendType int

const (
	// BackendTypeWGPU selects the WebGPU-based rendering backend.
	BackendTypeWGPU RendererBackendType = iota
)

// HDRFormat is the color format of every offscreen scene and post-process target. Values above 1 survive until
// tone mapping, which is what the bloom threshold reads.
const HDRFormat = wgpu.TextureFormatRGBA16Float

// PresentMode controls how rendered frames are presented to the display surface.
type PresentMode int

const (
	// PresentModeVSync waits for the next vertical blank before presenting, capping frame rate
	// to the monitor's refresh rate. Eliminates tearing.
	PresentModeVSync PresentMode = iota

	// PresentModeUncapped presents frames immediately without waiting for vertical blank.
	// May cause screen tearing but provides the lowest latency.
	PresentModeUncapped
)

// MSAASampleCount controls the number of samples used for multisample anti-aliasing (MSAA) of scene passes.
// WebGPU guarantees support for 1 (off) and 4.
type MSAASampleCount uint32

const (
	// MSAAOff disables multisample anti-aliasing (sample count 1).
	MSAAOff MSAASampleCount = 1

	// MSAA4x enables 4x multisample anti-aliasing. This is the default.
	MSAA4x MSAASampleCount = 4
)

// PassDescriptor describes one render pass of a frame.
type PassDescriptor struct {
	// Label names the pass in GPU debug tooling.
	Label string

	// Target is the color target. Nil renders to the surface texture, acquired on first use within a frame.
	Target RenderTarget

	// Clear clears the target before drawing. Nil loads the previous contents.
	Clear *wgpu.Color

	// Scene marks a multisampled pass with a depth attachment. The multisampled color is resolved into Target.
	// Post-process passes leave it false and draw single-sampled without depth.
	Scene bool
}

// RendererBackend is the top-level backend interface for the Renderer.
// It embeds the concrete backend interface for the selected GPU API.
type RendererBackend interface {
	wgpuRendererBackend
}
