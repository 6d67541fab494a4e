package world

import "math/rand/v2"

// WorldBuilderOption is a functional option applied to a world during Build.
type WorldBuilderOption func(*world)

// WithRand sets the random source used for red star and shooting-star placement.
//
// Parameters:
//   - rng: the random source
//
// Returns:
//   - WorldBuilderOption: a function that applies the random source to a world
func WithRand(rng *rand.Rand) WorldBuilderOption {
	return func(w *world) {
		w.rng = rng
	}
}
