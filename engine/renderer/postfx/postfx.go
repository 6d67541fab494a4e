// Package postfx holds the fullscreen post-process passes of the bloom chain: bright-pass extraction, a separable
// blur, the afterimage decay and the final combine. Each pass is a WGSL fragment shader prepended with a shared
// fullscreen-triangle vertex stage, plus the uniform that drives it.
package postfx

import (
	_ "embed"
	"fmt"

	"github.com/Carmen-Shannon/oxy-moon/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

//go:embed assets/fullscreen.wgsl
var fullscreenSource string

//go:embed assets/threshold.wgsl
var thresholdSource string

//go:embed assets/blur.wgsl
var blurSource string

//go:embed assets/afterimage.wgsl
var afterimageSource string

//go:embed assets/combine.wgsl
var combineSource string

// Pass identifies one post-process stage.
type Pass int

const (
	// PassThreshold keeps pixels whose luminance exceeds the bloom threshold.
	PassThreshold Pass = iota
	// PassBlur spreads the bright pixels along one axis.
	PassBlur
	// PassAfterimage blends the blurred glow with the previous frame's accumulation.
	PassAfterimage
	// PassCombine adds the glow onto the base image, applies exposure and tone mapping.
	PassCombine
)

// ThresholdSmoothing is the width of the luminance ramp above the threshold.
const ThresholdSmoothing = 0.01

// String returns the pipeline key suffix of the pass.
func (p Pass) String() string {
	switch p {
	case PassThreshold:
		return "threshold"
	case PassBlur:
		return "blur"
	case PassAfterimage:
		return "afterimage"
	case PassCombine:
		return "combine"
	}
	return fmt.Sprintf("pass(%d)", int(p))
}

// PipelineKey returns the renderer pipeline key of the pass.
func (p Pass) PipelineKey() string {
	return "postfx." + p.String()
}

// Source returns the complete WGSL of the pass, vertex stage included.
//
// Parameters:
//   - p: the pass
//
// Returns:
//   - string: the WGSL source
func Source(p Pass) string {
	var fragment string
	switch p {
	case PassThreshold:
		fragment = thresholdSource
	case PassBlur:
		fragment = blurSource
	case PassAfterimage:
		fragment = afterimageSource
	case PassCombine:
		fragment = combineSource
	default:
		panic(fmt.Sprintf("postfx: unknown pass %d", int(p)))
	}
	return fullscreenSource + "\n" + fragment
}

// NewShader parses the pass source into a Shader keyed by the pass pipeline key.
//
// Parameters:
//   - p: the pass
//
// Returns:
//   - shader.Shader: the parsed shader
func NewShader(p Pass) shader.Shader {
	return shader.NewShader(p.PipelineKey(), Source(p))
}

// ThresholdParams builds the extraction uniform.
//
// Parameters:
//   - threshold: the luminance threshold
//
// Returns:
//   - GPUThresholdParams: the uniform
func ThresholdParams(threshold float32) GPUThresholdParams {
	return GPUThresholdParams{Threshold: threshold, Smoothing: ThresholdSmoothing}
}

// BlurParams builds the uniforms of the horizontal and vertical blur passes. The tap spacing grows with radius
// (radius 0 samples adjacent texels, radius 1 spaces them five texels apart). Strength is applied once, in the
// vertical pass.
//
// Parameters:
//   - width: the target width in pixels
//   - height: the target height in pixels
//   - radius: the bloom radius in [0, 1]
//   - strength: the bloom strength
//
// Returns:
//   - GPUBlurParams: the horizontal pass uniform
//   - GPUBlurParams: the vertical pass uniform
func BlurParams(width, height uint32, radius, strength float32) (GPUBlurParams, GPUBlurParams) {
	spread := 1 + radius*4
	var h, v GPUBlurParams
	if width > 0 {
		h.Step[0] = spread / float32(width)
	}
	if height > 0 {
		v.Step[1] = spread / float32(height)
	}
	h.Strength = 1
	v.Strength = strength
	return h, v
}

// AfterimageParams builds the decay uniform.
//
// Parameters:
//   - damp: the weight of the previous frame
//
// Returns:
//   - GPUAfterimageParams: the uniform
func AfterimageParams(damp float32) GPUAfterimageParams {
	return GPUAfterimageParams{Damp: damp}
}

// CombineParams builds the combine uniform. Surfaces without an sRGB format get the transfer function applied in
// the shader.
//
// Parameters:
//   - exposure: the exposure multiplier
//   - toneMapping: the operator index
//   - surfaceFormat: the format of the presentation surface
//
// Returns:
//   - GPUCombineParams: the uniform
func CombineParams(exposure float32, toneMapping uint32, surfaceFormat wgpu.TextureFormat) GPUCombineParams {
	p := GPUCombineParams{Exposure: exposure, ToneMapping: toneMapping, EncodeSRGB: 1}
	if IsSRGB(surfaceFormat) {
		p.EncodeSRGB = 0
	}
	return p
}

// IsSRGB reports whether writes to format are sRGB-encoded by the hardware.
func IsSRGB(format wgpu.TextureFormat) bool {
	switch format {
	case wgpu.TextureFormatRGBA8UnormSrgb, wgpu.TextureFormatBGRA8UnormSrgb:
		return true
	}
	return false
}
