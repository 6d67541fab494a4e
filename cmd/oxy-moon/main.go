// Command oxy-moon opens a window showing the rotating moon, the satellite and the shooting-star field with
// selective bloom.
package main

import (
	"fmt"
	"log"
	"os"
	"runtime"

	"github.com/Carmen-Shannon/oxy-moon/engine"
	"github.com/Carmen-Shannon/oxy-moon/engine/config"
	"github.com/Carmen-Shannon/oxy-moon/engine/renderer"
	"github.com/Carmen-Shannon/oxy-moon/engine/window"
	"github.com/spf13/cobra"
)

func init() {
	// GLFW must run on the main thread.
	runtime.LockOSThread()
}

type options struct {
	configPath string
	width      int
	height     int
	profile    bool
	vsync      bool
	msaa       int
	seed       uint64
	watch      bool
	frameLimit float64
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	opts := options{}
	cmd := &cobra.Command{
		Use:   "oxy-moon",
		Short: "Animated moon scene with selective bloom and shooting stars",
		Long: "oxy-moon renders a textured moon, an orbiting satellite and a field of stars. Only the stars glow.\n\n" +
			"Keys: B toggle bloom, P pause shooting stars, S shoot a star, R reload config, Space reset camera,\n" +
			"arrows orbit. Left drag orbits, right drag pans, scroll zooms.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(opts, cmd.Flags().Changed("seed"))
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.configPath, "config", "c", "", "TOML or YAML config file (defaults are used when empty)")
	f.IntVar(&opts.width, "width", 1280, "window width in pixels")
	f.IntVar(&opts.height, "height", 720, "window height in pixels")
	f.BoolVar(&opts.profile, "profile", false, "log frame rate, memory and frame counters every second")
	f.BoolVar(&opts.vsync, "vsync", true, "wait for vertical blank when presenting")
	f.IntVar(&opts.msaa, "msaa", 4, "scene pass sample count (1 or 4)")
	f.Uint64Var(&opts.seed, "seed", 0, "random seed for star placement and shooting-star picks")
	f.BoolVar(&opts.watch, "watch", true, "reload the config file when it changes")
	f.Float64Var(&opts.frameLimit, "frame-limit", 0, "maximum frames per second (0 = uncapped)")
	return cmd
}

func run(opts options, seeded bool) error {
	cfg := config.Default()
	if opts.configPath != "" {
		loaded, err := config.Load(opts.configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	store, err := config.NewStore(cfg)
	if err != nil {
		return err
	}

	msaa, err := msaaFromFlag(opts.msaa)
	if err != nil {
		return err
	}
	present := renderer.PresentModeUncapped
	if opts.vsync {
		present = renderer.PresentModeVSync
	}

	w := window.NewWindow(
		window.WithTitle("oxy-moon"),
		window.WithWidth(opts.width),
		window.WithHeight(opts.height),
	)

	appOptions := []engine.AppBuilderOption{
		engine.WithRendererOptions(renderer.WithPresentMode(present), renderer.WithMSAA(msaa)),
	}
	if opts.configPath != "" {
		appOptions = append(appOptions, engine.WithConfigFile(opts.configPath, opts.watch))
	}
	if seeded {
		appOptions = append(appOptions, engine.WithSeed(opts.seed))
	}

	eng := engine.NewEngine(engine.NewApp(w, store, appOptions...),
		engine.WithProfiling(opts.profile),
		engine.WithRenderFrameLimit(opts.frameLimit),
	)

	log.Println("Starting oxy-moon")
	return eng.Run()
}

func msaaFromFlag(samples int) (renderer.MSAASampleCount, error) {
	switch samples {
	case 1:
		return renderer.MSAAOff, nil
	case 4:
		return renderer.MSAA4x, nil
	}
	return 0, fmt.Errorf("unsupported --msaa %d: use 1 or 4", samples)
}
