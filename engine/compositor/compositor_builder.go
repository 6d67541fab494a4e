package compositor

import "github.com/Carmen-Shannon/oxy-moon/engine/renderer/material"

// CompositorBuilderOption is a functional option applied to a Compositor during construction.
type CompositorBuilderOption func(*compositor)

// WithPlaceholder replaces the default black unlit placeholder material.
//
// Parameters:
//   - m: the placeholder material
//
// Returns:
//   - CompositorBuilderOption: option function to apply
func WithPlaceholder(m material.Material) CompositorBuilderOption {
	return func(c *compositor) {
		c.placeholder = m
	}
}
