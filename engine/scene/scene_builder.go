package scene

// SceneBuilderOption is a functional option for configuring a Scene.
// Use the With* functions to create options.
type SceneBuilderOption func(s *scene)

// WithNodes attaches initial nodes under the root.
//
// Parameters:
//   - nodes: the nodes to attach
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithNodes(nodes ...*Node) SceneBuilderOption {
	return func(s *scene) {
		s.root.Add(nodes...)
	}
}
