package starfield

import "math/rand/v2"

// SchedulerBuilderOption is a functional option applied to a Scheduler during construction.
type SchedulerBuilderOption func(*scheduler)

// WithRand sets the random source used for slot and destination selection.
//
// Parameters:
//   - rng: the random source
//
// Returns:
//   - SchedulerBuilderOption: option function to apply
func WithRand(rng *rand.Rand) SchedulerBuilderOption {
	return func(s *scheduler) {
		s.rng = rng
	}
}

// WithPicker replaces random selection. The returned index is not clamped: an index outside the buffer
// panics when the clip is created.
//
// Parameters:
//   - pick: chooses the slot and the destination offset
//
// Returns:
//   - SchedulerBuilderOption: option function to apply
func WithPicker(pick Picker) SchedulerBuilderOption {
	return func(s *scheduler) {
		s.pick = pick
	}
}
