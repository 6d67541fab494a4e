package engine

import (
	"errors"
	"fmt"
	"log"
	"math/rand/v2"
	"sync/atomic"

	"cogentcore.org/core/math32"
	"github.com/Carmen-Shannon/oxy-moon/common"
	"github.com/Carmen-Shannon/oxy-moon/engine/assets"
	"github.com/Carmen-Shannon/oxy-moon/engine/camera"
	"github.com/Carmen-Shannon/oxy-moon/engine/compositor"
	"github.com/Carmen-Shannon/oxy-moon/engine/config"
	"github.com/Carmen-Shannon/oxy-moon/engine/profiler"
	"github.com/Carmen-Shannon/oxy-moon/engine/renderer"
	"github.com/Carmen-Shannon/oxy-moon/engine/starfield"
	"github.com/Carmen-Shannon/oxy-moon/engine/window"
	"github.com/Carmen-Shannon/oxy-moon/engine/world"
)

// eventQueueSize bounds the input and resize events buffered between two ticks.
const eventQueueSize = 256

// Camera defaults of the moon scene.
var (
	cameraEye = math32.Vec3(0, 1, 30)
	cameraFov = math32.DegToRad(60)
)

// App holds every piece of state the viewer owns. Init builds it, Tick advances it one frame and Shutdown
// releases it. Window callbacks only enqueue events; the events run at the start of the next Tick so the scene,
// the scheduler and the compositor are touched from the frame callback alone.
type App struct {
	window     window.Window
	store      *config.Store
	watcher    *config.Watcher
	configPath string
	watch      bool
	seed       *uint64

	rendererOptions []renderer.RendererBuilderOption
	sceneOptions    []renderer.SceneRendererBuilderOption
	loaderOptions   []assets.LoaderBuilderOption

	renderer      renderer.Renderer
	sceneRenderer renderer.SceneRenderer
	camera        camera.Camera
	world         world.World
	compositor    compositor.Compositor
	scheduler     starfield.Scheduler
	rng           *rand.Rand

	events  chan func()
	applied config.Config
	nowMs   float64

	initialized bool
	dropped     atomic.Uint64
}

// NewApp creates an App bound to w and reading its parameters from store. Nothing is allocated on the GPU
// until Init.
//
// Parameters:
//   - w: the window to render into
//   - store: the live configuration
//   - options: functional options
//
// Returns:
//   - *App: the app
func NewApp(w window.Window, store *config.Store, options ...AppBuilderOption) *App {
	a := &App{
		window: w,
		store:  store,
		events: make(chan func(), eventQueueSize),
	}
	for _, opt := range options {
		opt(a)
	}
	return a
}

// Init creates the renderer and the camera, loads textures, builds the world and wires input.
//
// Returns:
//   - error: an error if the world or its GPU resources cannot be created
func (a *App) Init() error {
	if a.initialized {
		return nil
	}
	if a.seed != nil {
		a.rng = rand.New(rand.NewPCG(*a.seed, *a.seed))
	} else {
		a.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	cfg := a.store.Get()

	a.renderer = renderer.NewRenderer(renderer.BackendTypeWGPU, a.window, a.rendererOptions...)
	a.camera = camera.NewCamera(
		camera.WithFov(cameraFov),
		camera.WithAspect(aspect(a.window.Width(), a.window.Height())),
		camera.WithClipPlanes(0.1, 1000),
		camera.WithController(camera.NewCameraController(
			camera.WithEye(cameraEye),
			camera.WithRadiusBounds(2, 400),
		)),
	)

	loader := assets.NewLoader(append([]assets.LoaderBuilderOption{
		assets.WithWorkers(cfg.Assets.Workers),
		assets.WithMaxTextureSize(cfg.Assets.MaxTextureSize),
	}, a.loaderOptions...)...)
	lib := loader.Load(world.TextureSets(cfg)...)
	stats := loader.Stats()
	log.Printf("[Assets] loaded %d textures (%d failed, %d resized) in %s", stats.Loaded, stats.Failed, stats.Resized, stats.Elapsed)

	w, err := world.Build(cfg, lib, world.WithRand(a.rng))
	if err != nil {
		return fmt.Errorf("failed to build world: %w", err)
	}
	a.world = w

	sr, err := renderer.NewSceneRenderer(a.renderer, a.camera, a.sceneOptions...)
	if err != nil {
		return fmt.Errorf("failed to create scene renderer: %w", err)
	}
	a.sceneRenderer = sr
	if err := sr.Prepare(w.Scene()); err != nil {
		return fmt.Errorf("failed to prepare scene: %w", err)
	}

	a.compositor = compositor.NewCompositor(sr)
	a.scheduler = starfield.NewScheduler(w.Pool().Buffer(), starfield.ParamsFromConfig(cfg.ShootingStar), starfield.WithRand(a.rng))
	a.applied = cfg

	if a.watch && a.configPath != "" {
		watcher, err := config.Watch(a.configPath, a.store)
		if err != nil {
			return fmt.Errorf("failed to watch %s: %w", a.configPath, err)
		}
		a.watcher = watcher
	}

	a.bindInput()
	a.initialized = true
	return nil
}

// bindInput routes window callbacks into the event queue.
func (a *App) bindInput() {
	a.window.SetKeyDownCallback(func(keyCode uint32) {
		a.post(func() { a.handleKey(keyCode) })
	})
	a.window.SetDragCallback(func(button window.MouseButton, dx, dy float32) {
		a.post(func() { a.handleDrag(button, dx, dy) })
	})
	a.window.SetScrollCallback(func(delta float32) {
		a.post(func() { a.camera.Controller().Zoom(delta) })
	})
	a.window.SetResizeCallback(func(width, height int) {
		a.post(func() { a.resize(width, height) })
	})
}

// post enqueues fn for the next Tick. Events arriving while the queue is full are dropped.
func (a *App) post(fn func()) {
	select {
	case a.events <- fn:
	default:
		a.dropped.Add(1)
	}
}

func (a *App) drain() {
	for {
		select {
		case fn := <-a.events:
			fn()
		default:
			return
		}
	}
}

func (a *App) handleKey(keyCode uint32) {
	switch keyCode {
	case common.KeyB:
		if err := a.store.Update(func(c *config.Config) { c.Bloom.Enabled = !c.Bloom.Enabled }); err != nil {
			log.Printf("[App] bloom toggle rejected: %v", err)
			return
		}
		log.Printf("[App] bloom enabled: %t", a.store.Get().Bloom.Enabled)
	case common.KeyP:
		a.scheduler.SetPaused(!a.scheduler.Paused())
		log.Printf("[App] shooting stars paused: %t", a.scheduler.Paused())
	case common.KeyR:
		if err := a.Reload(); err != nil {
			log.Printf("[App] reload failed: %v", err)
		}
	case common.KeyS:
		a.scheduler.Trigger(a.nowMs)
	case common.KeySpace:
		a.camera.Controller().Reset()
	case common.KeyLeft:
		a.camera.Controller().OrbitLeft()
	case common.KeyRight:
		a.camera.Controller().OrbitRight()
	case common.KeyUp:
		a.camera.Controller().OrbitUp()
	case common.KeyDown:
		a.camera.Controller().OrbitDown()
	}
}

func (a *App) handleDrag(button window.MouseButton, dx, dy float32) {
	ctrl := a.camera.Controller()
	switch button {
	case window.MouseButtonLeft:
		ctrl.Drag(dx, dy)
	case window.MouseButtonRight:
		ctrl.PanRight(-dx)
		ctrl.PanUp(dy)
	}
}

// resize reconfigures the surface, the offscreen targets and the camera aspect. A zero-sized window
// (minimized) leaves the targets unsized and frames are skipped until it is restored.
func (a *App) resize(width, height int) {
	if a.renderer != nil {
		a.renderer.Resize(width, height)
	}
	if a.sceneRenderer != nil {
		a.sceneRenderer.Resize()
	}
	if width > 0 && height > 0 {
		a.camera.SetAspect(aspect(width, height))
	}
}

// Reload reads the config file again and publishes it. Without a config file it is a no-op.
//
// Returns:
//   - error: the load or validation error
func (a *App) Reload() error {
	if a.watcher != nil {
		return a.watcher.Reload()
	}
	if a.configPath == "" {
		return nil
	}
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if err := a.store.Set(cfg); err != nil {
		return err
	}
	log.Printf("[Config] reloaded %s", a.configPath)
	return nil
}

// Tick advances the app to nowMs and composes one frame. It must be called from a single goroutine with
// non-decreasing timestamps.
//
// Parameters:
//   - nowMs: the frame timestamp in milliseconds
//
// Returns:
//   - error: the frame error; ErrNotSized is swallowed and the frame skipped
func (a *App) Tick(nowMs float64) error {
	a.nowMs = nowMs
	a.drain()

	cfg := a.store.Get()
	if cfg != a.applied {
		a.apply(cfg)
	}

	a.scheduler.Update(nowMs)
	a.world.Animate(nowMs)
	a.camera.Update()

	err := a.compositor.Render(a.world.Scene(), compositor.BloomParamsFromConfig(cfg), compositor.OutputParamsFromConfig(cfg))
	if errors.Is(err, compositor.ErrNotSized) {
		return nil
	}
	return err
}

// apply pushes a new configuration snapshot onto the scheduler and the world.
func (a *App) apply(cfg config.Config) {
	a.scheduler.SetParams(starfield.ParamsFromConfig(cfg.ShootingStar))
	a.world.Apply(cfg)
	a.applied = cfg
}

// Counters reports the app's work counters for the profiler.
//
// Returns:
//   - []profiler.Counter: the current counter values
func (a *App) Counters() []profiler.Counter {
	if !a.initialized {
		return nil
	}
	cs := a.compositor.Stats()
	counters := []profiler.Counter{
		{Name: "frames", Value: cs.Frames},
		{Name: "skipped", Value: cs.Skipped},
		{Name: "failed", Value: cs.Failed},
		{Name: "stashed", Value: cs.Stashed},
		{Name: "shooting stars", Value: a.scheduler.Triggers()},
		{Name: "dropped events", Value: a.dropped.Load()},
	}
	if a.sceneRenderer != nil {
		rs := a.sceneRenderer.Stats()
		counters = append(counters,
			profiler.Counter{Name: "draws", Value: rs.DrawCalls},
			profiler.Counter{Name: "material uploads", Value: rs.MaterialUploads},
			profiler.Counter{Name: "instance uploads", Value: rs.InstanceUploads},
		)
	}
	return counters
}

// World returns the assembled world, or nil before Init.
func (a *App) World() world.World {
	return a.world
}

// Scheduler returns the shooting-star scheduler, or nil before Init.
func (a *App) Scheduler() starfield.Scheduler {
	return a.scheduler
}

// Shutdown stops the config watcher and releases every GPU object. Safe to call more than once.
func (a *App) Shutdown() {
	if a.watcher != nil {
		if err := a.watcher.Close(); err != nil {
			log.Printf("[App] watcher close: %v", err)
		}
		a.watcher = nil
	}
	if a.sceneRenderer != nil {
		a.sceneRenderer.Release()
		a.sceneRenderer = nil
	}
	if a.renderer != nil {
		a.renderer.Release()
		a.renderer = nil
	}
	a.initialized = false
}

func aspect(width, height int) float32 {
	if height <= 0 {
		return 1
	}
	return float32(width) / float32(height)
}
