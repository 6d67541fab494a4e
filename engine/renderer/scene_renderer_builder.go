package renderer

// SceneRendererBuilderOption is a functional option applied to a scene renderer during construction via
// NewSceneRenderer.
type SceneRendererBuilderOption func(*sceneRenderer)

// WithBloomScale sets the resolution of the blur and accumulation targets relative to the surface.
// Values outside (0, 1] are ignored. The default is 1.
//
// Parameters:
//   - scale: the resolution factor
//
// Returns:
//   - SceneRendererBuilderOption: a function that applies the scale to a scene renderer
func WithBloomScale(scale float32) SceneRendererBuilderOption {
	return func(sr *sceneRenderer) {
		if scale > 0 && scale <= 1 {
			sr.bloomScale = scale
		}
	}
}
