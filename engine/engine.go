package engine

import (
	"log"
	"runtime"
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-moon/engine/profiler"
	"github.com/Carmen-Shannon/oxy-moon/engine/window"
)

// engine implements the Engine interface.
// Coordinates the render goroutine with the window message loop.
type engine struct {
	running bool
	wg      sync.WaitGroup

	quitChannel chan struct{}
	quitOnce    sync.Once // Ensures quitChannel is only closed once

	window window.Window
	app    *App

	profiler         *profiler.Profiler
	profilingEnabled bool
	profilerInterval time.Duration

	renderFrameLimit time.Duration // minimum frame duration; 0 = uncapped
}

// Engine is the main entry point for the viewer.
// It runs the App's frame callback on a dedicated render goroutine while the window message loop owns the
// calling goroutine.
type Engine interface {
	// Window returns the underlying window.
	//
	// Returns:
	//   - window.Window: the window instance
	Window() window.Window

	// App returns the application state driven by the engine.
	//
	// Returns:
	//   - *App: the app
	App() *App

	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// SetRenderFrameLimit sets an optional render frame rate cap in frames per second.
	// Pass 0 to uncap the render loop (default).
	//
	// Parameters:
	//   - fps: maximum render frames per second (0 = uncapped)
	SetRenderFrameLimit(fps float64)

	// Run initializes the App, starts the render goroutine and blocks in the window message loop until the
	// window closes. The App is shut down before Run returns.
	//
	// Returns:
	//   - error: the App initialization error
	Run() error

	// Quit signals the render goroutine to stop and closes the window.
	// Safe to call multiple times; subsequent calls are no-ops.
	Quit()
}

// NewEngine creates a new Engine driving app.
// Options are applied directly to the engine struct via the option-builder pattern.
//
// Parameters:
//   - app: the application state to drive
//   - options: functional options for engine configuration (profiling, frame limit)
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(app *App, options ...EngineBuilderOption) Engine {
	e := &engine{
		quitChannel:      make(chan struct{}),
		wg:               sync.WaitGroup{},
		window:           app.window,
		app:              app,
		profilingEnabled: false,
		profilerInterval: time.Second,
	}

	for _, opt := range options {
		opt(e)
	}

	e.profiler = profiler.NewProfiler(
		profiler.WithInterval(e.profilerInterval),
		profiler.WithCounters(app.Counters),
	)

	// Closing the window from the message loop goroutine lets ProcessMessages return after a Quit.
	e.window.SetUpdateCallback(func() {
		select {
		case <-e.quitChannel:
			_ = e.window.Close()
		default:
		}
	})

	return e
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) App() *App {
	return e.app
}

func (e *engine) Run() error {
	if err := e.app.Init(); err != nil {
		e.app.Shutdown()
		return err
	}
	e.running = true
	e.handle()
	e.window.ProcessMessages()
	e.signalQuit()
	e.wg.Wait()
	e.app.Shutdown()
	return nil
}

// Quit signals the render goroutine to stop and shuts down the engine.
// Safe to call multiple times; subsequent calls are no-ops due to sync.Once.
func (e *engine) Quit() {
	e.signalQuit()
}

// signalQuit closes the quit channel to signal all goroutines to exit.
// Uses sync.Once to ensure the channel is only closed once.
func (e *engine) signalQuit() {
	e.quitOnce.Do(func() {
		e.running = false
		close(e.quitChannel)
	})
}

// handle launches the render goroutine, tracked by the engine's WaitGroup.
func (e *engine) handle() {
	e.wg.Add(1)
	go e.handleRender()
}

// handleRender runs the uncapped (or frame-limited) render loop in its own goroutine, locked to its OS thread.
// Each iteration calls App.Tick with the milliseconds elapsed since the loop started.
// Recovers from panics to avoid crashing the process and signals quit on recovery.
func (e *engine) handleRender() {
	defer e.wg.Done()
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	// Recover from panics inside the render goroutine to avoid crashing the whole process.
	defer func() {
		if r := recover(); r != nil {
			log.Printf("render goroutine recovered from panic: %v", r)
			e.signalQuit()
		}
	}()

	start := time.Now()

	for {
		select {
		case <-e.quitChannel:
			return
		default:
			frameStart := time.Now()
			nowMs := float64(frameStart.Sub(start)) / float64(time.Millisecond)

			if err := e.app.Tick(nowMs); err != nil {
				log.Printf("[Engine] frame dropped: %v", err)
			}

			if e.profilingEnabled && e.profiler != nil {
				e.profiler.Tick()
			}

			// Frame rate limiting
			if e.renderFrameLimit > 0 {
				elapsed := time.Since(frameStart)
				if remaining := e.renderFrameLimit - elapsed; remaining > 0 {
					time.Sleep(remaining)
				}
			}
		}
	}
}

// EnableProfiler enables performance profiling output to the log.
func (e *engine) EnableProfiler() {
	e.profilingEnabled = true
}

// DisableProfiler disables performance profiling output.
func (e *engine) DisableProfiler() {
	e.profilingEnabled = false
}

// SetRenderFrameLimit sets an optional render frame rate cap.
// Pass 0 to uncap the render loop.
func (e *engine) SetRenderFrameLimit(fps float64) {
	e.renderFrameLimit = frameDuration(fps)
}

func frameDuration(fps float64) time.Duration {
	if fps <= 0 {
		return 0
	}
	return time.Duration(float64(time.Second) / fps)
}
