package engine

import (
	"github.com/Carmen-Shannon/oxy-moon/engine/assets"
	"github.com/Carmen-Shannon/oxy-moon/engine/renderer"
)

// AppBuilderOption is a functional option applied to an App during NewApp.
type AppBuilderOption func(*App)

// WithConfigFile names the file the configuration was loaded from. The R key reloads it, and when watch is
// true Init starts an fsnotify watcher that reloads it on every save.
//
// Parameters:
//   - path: the config file path
//   - watch: whether to hot reload on change
//
// Returns:
//   - AppBuilderOption: option function to apply
func WithConfigFile(path string, watch bool) AppBuilderOption {
	return func(a *App) {
		a.configPath = path
		a.watch = watch
	}
}

// WithSeed makes star placement and shooting-star picks reproducible.
//
// Parameters:
//   - seed: the random seed
//
// Returns:
//   - AppBuilderOption: option function to apply
func WithSeed(seed uint64) AppBuilderOption {
	return func(a *App) {
		a.seed = &seed
	}
}

// WithRendererOptions forwards options to renderer.NewRenderer.
//
// Parameters:
//   - options: the renderer options
//
// Returns:
//   - AppBuilderOption: option function to apply
func WithRendererOptions(options ...renderer.RendererBuilderOption) AppBuilderOption {
	return func(a *App) {
		a.rendererOptions = append(a.rendererOptions, options...)
	}
}

// WithSceneRendererOptions forwards options to renderer.NewSceneRenderer.
//
// Parameters:
//   - options: the scene renderer options
//
// Returns:
//   - AppBuilderOption: option function to apply
func WithSceneRendererOptions(options ...renderer.SceneRendererBuilderOption) AppBuilderOption {
	return func(a *App) {
		a.sceneOptions = append(a.sceneOptions, options...)
	}
}

// WithLoaderOptions forwards options to assets.NewLoader, after the ones derived from the config.
//
// Parameters:
//   - options: the loader options
//
// Returns:
//   - AppBuilderOption: option function to apply
func WithLoaderOptions(options ...assets.LoaderBuilderOption) AppBuilderOption {
	return func(a *App) {
		a.loaderOptions = append(a.loaderOptions, options...)
	}
}
