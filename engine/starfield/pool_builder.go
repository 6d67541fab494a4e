package starfield

import "math/rand/v2"

// StarPoolBuilderOption is a functional option applied to a StarPool during construction.
type StarPoolBuilderOption func(*starPool)

// WithRadius sets the radius of the sphere the rest positions are placed on.
//
// Parameters:
//   - radius: the sphere radius
//
// Returns:
//   - StarPoolBuilderOption: option function to apply
func WithRadius(radius float32) StarPoolBuilderOption {
	return func(p *starPool) {
		p.radius = radius
	}
}

// WithJitter displaces each rest position radially by a uniform amount in [-jitter, jitter].
//
// Parameters:
//   - jitter: the maximum radial displacement
//
// Returns:
//   - StarPoolBuilderOption: option function to apply
func WithJitter(jitter float32) StarPoolBuilderOption {
	return func(p *starPool) {
		p.jitter = jitter
	}
}

// WithStarScale sets the uniform scale of every star.
//
// Parameters:
//   - scale: the scale factor
//
// Returns:
//   - StarPoolBuilderOption: option function to apply
func WithStarScale(scale float32) StarPoolBuilderOption {
	return func(p *starPool) {
		p.scale = scale
	}
}

// WithPoolRand sets the random source used for placement.
//
// Parameters:
//   - rng: the random source
//
// Returns:
//   - StarPoolBuilderOption: option function to apply
func WithPoolRand(rng *rand.Rand) StarPoolBuilderOption {
	return func(p *starPool) {
		p.rng = rng
	}
}

// WithPoolLabel sets the label of the pool's instance buffer.
//
// Parameters:
//   - label: the debug label
//
// Returns:
//   - StarPoolBuilderOption: option function to apply
func WithPoolLabel(label string) StarPoolBuilderOption {
	return func(p *starPool) {
		p.label = label
	}
}
