// Package compositor produces the layer-masked bloom image: a bright pass in which only bloom members keep their
// materials, followed by a final pass that adds the accumulated glow onto the fully lit scene.
package compositor

import (
	"errors"
	"fmt"

	"github.com/Carmen-Shannon/oxy-moon/engine/config"
	"github.com/Carmen-Shannon/oxy-moon/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-moon/engine/scene"
)

// ErrNotSized is returned by a Backend whose render targets have no size yet (minimized window, pending
// resize). The frame is skipped.
var ErrNotSized = errors.New("render targets not sized")

// Target is an offscreen image produced by a Backend.
type Target interface {
	Width() uint32
	Height() uint32
}

// BloomParams configures the bright-pass post-process chain.
type BloomParams struct {
	Enabled   bool
	Threshold float32
	Strength  float32
	Radius    float32
	// Damp is the afterimage weight of the previous frame.
	Damp float32
}

// OutputParams configures the final pass.
type OutputParams struct {
	Exposure    float32
	ToneMapping config.ToneMapping
	// Background is the linear clear color of the base pass.
	Background [3]float32
}

// BloomParamsFromConfig collects the bloom and afterimage sections into BloomParams.
//
// Parameters:
//   - c: the configuration snapshot
//
// Returns:
//   - BloomParams: the bright-pass parameters
func BloomParamsFromConfig(c config.Config) BloomParams {
	return BloomParams{
		Enabled:   c.Bloom.Enabled,
		Threshold: c.Bloom.Threshold,
		Strength:  c.Bloom.Strength,
		Radius:    c.Bloom.Radius,
		Damp:      c.Afterimage.Damp,
	}
}

// OutputParamsFromConfig collects the output section into OutputParams. The background is converted from
// 0xRRGGBB sRGB to linear.
//
// Parameters:
//   - c: the configuration snapshot
//
// Returns:
//   - OutputParams: the final-pass parameters
func OutputParamsFromConfig(c config.Config) OutputParams {
	return OutputParams{
		Exposure:    c.Output.Exposure,
		ToneMapping: c.Output.ToneMapping,
		Background:  config.HexToLinear(c.Output.Background),
	}
}

// Backend is the rendering capability the compositor drives. Every method receives the frozen renderable list
// with materials as they should be drawn for that pass.
type Backend interface {
	// Sized reports whether the render targets can be drawn into.
	Sized() bool

	// RenderBright draws renderables, extracts pixels above the threshold, blurs them and accumulates the result
	// with the previous frame's glow into the bloom target.
	RenderBright(renderables []*scene.Node, p BloomParams) error

	// ClearBloom empties the bloom target and its afterimage history.
	ClearBloom()

	// BloomTarget returns the accumulated glow of the last bright pass.
	BloomTarget() Target

	// RenderBase draws renderables to the base target, cleared to the background color.
	RenderBase(renderables []*scene.Node, p OutputParams) error

	// Combine adds bloom onto the base target, applies exposure and tone mapping, and presents.
	Combine(bloom Target, p OutputParams) error
}

// Stats counts compositor work since construction.
type Stats struct {
	Frames  uint64
	Skipped uint64
	Failed  uint64
	// Stashed is the total number of materials swapped out across all bright passes.
	Stashed uint64
}

// compositor is the implementation of the Compositor interface.
type compositor struct {
	backend     Backend
	placeholder material.Material
	stash       stash
	stats       Stats
}

// Compositor runs the two-pass bloom composite. It is driven from the frame callback only.
type Compositor interface {
	// RenderBloomPass swaps every drawable non-bloom renderable's material for the placeholder, renders the
	// bright pass and restores every swapped material. Restoration runs even if the backend returns an error
	// or panics. A disabled bloom clears the bloom target instead and swaps nothing.
	//
	// Parameters:
	//   - s: the frozen scene
	//   - p: the bright-pass parameters
	//
	// Returns:
	//   - error: the backend error, if any
	RenderBloomPass(s scene.Scene, p BloomParams) error

	// RenderFinalPass renders the scene with its own materials and combines it additively with bloom.
	//
	// Parameters:
	//   - s: the frozen scene
	//   - bloom: the bloom target produced by RenderBloomPass
	//   - p: the final-pass parameters
	//
	// Returns:
	//   - error: the backend error, if any
	RenderFinalPass(s scene.Scene, bloom Target, p OutputParams) error

	// Render composes one frame: bloom pass, then final pass. A backend that is not sized skips the frame and
	// returns ErrNotSized.
	//
	// Parameters:
	//   - s: the frozen scene
	//   - bp: the bright-pass parameters
	//   - op: the final-pass parameters
	//
	// Returns:
	//   - error: nil, ErrNotSized, or the first backend error
	Render(s scene.Scene, bp BloomParams, op OutputParams) error

	// Stashed returns the number of materials currently swapped out. It is zero outside RenderBloomPass.
	Stashed() int

	// Placeholder returns the material drawn in place of non-bloom renderables.
	Placeholder() material.Material

	// Stats returns the work counters.
	Stats() Stats
}

var _ Compositor = &compositor{}

// NewCompositor creates a compositor driving backend.
//
// Parameters:
//   - backend: the rendering backend
//   - options: functional options
//
// Returns:
//   - Compositor: the compositor
func NewCompositor(backend Backend, options ...CompositorBuilderOption) Compositor {
	c := &compositor{
		backend: backend,
	}
	for _, opt := range options {
		opt(c)
	}
	if c.placeholder == nil {
		c.placeholder = material.NewPlaceholder()
	}
	return c
}

func (c *compositor) RenderBloomPass(s scene.Scene, p BloomParams) error {
	if !p.Enabled {
		c.backend.ClearBloom()
		return nil
	}

	renderables := s.Renderables()
	c.stats.Stashed += uint64(c.stash.swap(renderables, c.placeholder))
	defer c.stash.restore(renderables)

	if err := c.backend.RenderBright(renderables, p); err != nil {
		return fmt.Errorf("bloom pass: %w", err)
	}
	return nil
}

func (c *compositor) RenderFinalPass(s scene.Scene, bloom Target, p OutputParams) error {
	if !c.stash.empty() {
		panic("compositor: final pass started with stashed materials")
	}
	if err := c.backend.RenderBase(s.Renderables(), p); err != nil {
		return fmt.Errorf("base pass: %w", err)
	}
	if err := c.backend.Combine(bloom, p); err != nil {
		return fmt.Errorf("combine pass: %w", err)
	}
	return nil
}

func (c *compositor) Render(s scene.Scene, bp BloomParams, op OutputParams) error {
	if !c.backend.Sized() {
		c.stats.Skipped++
		return ErrNotSized
	}
	if err := c.RenderBloomPass(s, bp); err != nil {
		c.stats.Failed++
		return err
	}
	if err := c.RenderFinalPass(s, c.backend.BloomTarget(), op); err != nil {
		c.stats.Failed++
		return err
	}
	c.stats.Frames++
	return nil
}

func (c *compositor) Stashed() int {
	return c.stash.count
}

func (c *compositor) Placeholder() material.Material {
	return c.placeholder
}

func (c *compositor) Stats() Stats {
	return c.stats
}
