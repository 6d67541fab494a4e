// Package assets loads the texture sets of the scene's materials. Files are decoded and down-scaled in parallel
// on a worker pool before the first frame, so nothing on the frame path touches the disk.
package assets

import (
	"fmt"
	"image"
	"io/fs"
	"path"
	"path/filepath"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"cogentcore.org/core/base/errors"
	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-moon/common"
	"github.com/anthonynsimon/bild/transform"
)

// TextureSet names the image files of one material, keyed by the slot they fill.
type TextureSet struct {
	// Name identifies the set in the Library and prefixes texture names ("moon/albedo").
	Name string
	// Dir is the directory holding the files.
	Dir string
	// Files maps each slot to a file name within Dir. Slots without a file keep the renderer's default.
	Files map[common.TextureSlot]string
	// Repeat is the UV tiling applied to every texture of the set.
	Repeat [2]float32
	// Sampler overrides the default linear/repeat sampler when non-nil.
	Sampler *common.SamplerStagingData
}

// PatternSet builds a TextureSet whose file names follow pattern, a format string receiving the slot name
// (for example "SolarCells_512_%s.png").
//
// Parameters:
//   - name: the set name
//   - dir: the directory holding the files
//   - pattern: the file name pattern
//   - slots: the slots present on disk
//
// Returns:
//   - TextureSet: the set
func PatternSet(name, dir, pattern string, slots ...common.TextureSlot) TextureSet {
	files := make(map[common.TextureSlot]string, len(slots))
	for _, slot := range slots {
		files[slot] = fmt.Sprintf(pattern, slot.String())
	}
	return TextureSet{Name: name, Dir: dir, Files: files}
}

// Library holds the loaded textures of every set, keyed by set name then slot. Textures that failed to load
// are absent.
type Library map[string]map[common.TextureSlot]*common.ImportedTexture

// Textures returns the loaded textures of a set, or nil if the set is unknown.
func (l Library) Textures(set string) map[common.TextureSlot]*common.ImportedTexture {
	return l[set]
}

// Stats reports the outcome of the last Load.
type Stats struct {
	Loaded  int
	Failed  int
	Resized int
	Elapsed time.Duration
}

// loader is the implementation of the Loader interface.
type loader struct {
	workers        int
	maxTextureSize int
	fsys           fs.FS
	stats          Stats
}

// Loader decodes texture sets into staged pixel data ready for GPU upload.
type Loader interface {
	// Load decodes every file of every set on the worker pool and waits for all of them. A file that cannot
	// be read or decoded is logged and left out of the Library; the material then renders with the default
	// texture for that slot.
	//
	// Parameters:
	//   - sets: the texture sets to load
	//
	// Returns:
	//   - Library: the loaded textures
	Load(sets ...TextureSet) Library

	// Stats returns the outcome of the last Load.
	Stats() Stats
}

var _ Loader = &loader{}

// NewLoader creates a Loader.
//
// Parameters:
//   - options: functional options
//
// Returns:
//   - Loader: the loader
func NewLoader(options ...LoaderBuilderOption) Loader {
	l := &loader{}
	for _, opt := range options {
		opt(l)
	}
	if l.workers <= 0 {
		l.workers = max(1, runtime.NumCPU()-1)
	}
	return l
}

func (l *loader) Load(sets ...TextureSet) Library {
	start := time.Now()
	lib := make(Library, len(sets))

	type job struct {
		set  string
		slot common.TextureSlot
		tex  *common.ImportedTexture
	}
	var jobs []job
	for _, set := range sets {
		lib[set.Name] = make(map[common.TextureSlot]*common.ImportedTexture, len(set.Files))
		for slot, file := range set.Files {
			jobs = append(jobs, job{set: set.Name, slot: slot, tex: &common.ImportedTexture{
				Name:        set.Name + "/" + slot.String(),
				Path:        l.join(set.Dir, file),
				Repeat:      set.Repeat,
				SRGB:        slot == common.TextureSlotAlbedo,
				SamplerData: set.Sampler,
			}})
		}
	}

	var failed, resized atomic.Int32
	ok := make([]bool, len(jobs))

	pool := worker.NewDynamicWorkerPool(l.workers, 256, time.Second)
	var wg sync.WaitGroup
	for i, j := range jobs {
		wg.Add(1)
		pool.SubmitTask(worker.Task{
			ID: i,
			Do: func() (any, error) {
				defer wg.Done()
				r, err := l.decode(j.tex)
				if err != nil {
					errors.Log(err)
					failed.Add(1)
					return nil, err
				}
				if r {
					resized.Add(1)
				}
				ok[i] = true
				return j.tex, nil
			},
		})
	}
	wg.Wait()

	for i, j := range jobs {
		if ok[i] {
			lib[j.set][j.slot] = j.tex
		}
	}

	l.stats = Stats{
		Loaded:  len(jobs) - int(failed.Load()),
		Failed:  int(failed.Load()),
		Resized: int(resized.Load()),
		Elapsed: time.Since(start),
	}
	return lib
}

func (l *loader) join(dir, file string) string {
	if l.fsys != nil {
		return path.Join(dir, file)
	}
	return filepath.Join(dir, file)
}

// decode reads, decodes, fits and stages one texture. Reports whether the image was down-scaled.
func (l *loader) decode(tex *common.ImportedTexture) (bool, error) {
	if l.fsys != nil {
		data, err := fs.ReadFile(l.fsys, tex.Path)
		if err != nil {
			return false, fmt.Errorf("failed to read texture %s: %w", tex.Path, err)
		}
		tex.Data = data
	}

	img, err := tex.DecodeImage()
	if err != nil {
		return false, err
	}
	b := img.Bounds()
	resized := l.maxTextureSize > 0 && max(b.Dx(), b.Dy()) > l.maxTextureSize
	staged := tex.Stage(Fit(img, l.maxTextureSize))
	tex.Staged = &staged
	tex.Data = nil
	return resized, nil
}

func (l *loader) Stats() Stats {
	return l.stats
}

// Fit down-scales img so neither side exceeds maxSize, keeping the aspect ratio. Images already within bounds
// and a non-positive maxSize return img unchanged.
//
// Parameters:
//   - img: the source image
//   - maxSize: the largest allowed side in pixels
//
// Returns:
//   - image.Image: the fitted image
func Fit(img image.Image, maxSize int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if maxSize <= 0 || (w <= maxSize && h <= maxSize) {
		return img
	}
	scale := float64(maxSize) / float64(max(w, h))
	return transform.Resize(img, max(1, int(float64(w)*scale)), max(1, int(float64(h)*scale)), transform.Linear)
}
