package assets

import "io/fs"

// LoaderBuilderOption is a functional option applied to a loader during construction via NewLoader.
type LoaderBuilderOption func(*loader)

// WithWorkers sets the decode worker count. Zero or less selects NumCPU-1 (at least 1).
//
// Parameters:
//   - n: the worker count
//
// Returns:
//   - LoaderBuilderOption: a function that applies the worker count to a loader
func WithWorkers(n int) LoaderBuilderOption {
	return func(l *loader) {
		l.workers = n
	}
}

// WithMaxTextureSize down-scales textures whose larger side exceeds size. Zero disables resizing.
//
// Parameters:
//   - size: the largest allowed side in pixels
//
// Returns:
//   - LoaderBuilderOption: a function that applies the limit to a loader
func WithMaxTextureSize(size int) LoaderBuilderOption {
	return func(l *loader) {
		l.maxTextureSize = size
	}
}

// WithFS reads texture files from fsys instead of the operating system.
//
// Parameters:
//   - fsys: the file system
//
// Returns:
//   - LoaderBuilderOption: a function that applies the file system to a loader
func WithFS(fsys fs.FS) LoaderBuilderOption {
	return func(l *loader) {
		l.fsys = fsys
	}
}
