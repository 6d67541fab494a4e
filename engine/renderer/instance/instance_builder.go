package instance

import "github.com/Carmen-Shannon/oxy-moon/common"

// InstanceBufferBuilderOption is a functional option applied to an InstanceBuffer during construction.
type InstanceBufferBuilderOption func(*instanceBuffer)

// WithLabel sets the debug label of the buffer.
//
// Parameters:
//   - label: the label used in logs and GPU object names
//
// Returns:
//   - InstanceBufferBuilderOption: option function to apply
func WithLabel(label string) InstanceBufferBuilderOption {
	return func(b *instanceBuffer) {
		b.label = label
	}
}

// WithTransforms seeds the first len(transforms) slots. Extra transforms beyond the capacity are ignored.
//
// Parameters:
//   - transforms: the initial transforms
//
// Returns:
//   - InstanceBufferBuilderOption: option function to apply
func WithTransforms(transforms ...Transform) InstanceBufferBuilderOption {
	return func(b *instanceBuffer) {
		for i, t := range transforms {
			if i >= len(b.transforms) {
				break
			}
			b.transforms[i] = t
			common.BuildModelMatrix(b.matrices[i*16:(i+1)*16], t.Position, t.Rotation, t.Scale)
		}
	}
}
