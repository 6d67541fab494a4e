package engine

import (
	"math/rand/v2"
	"path/filepath"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-moon/common"
	"github.com/Carmen-Shannon/oxy-moon/engine/camera"
	"github.com/Carmen-Shannon/oxy-moon/engine/compositor"
	"github.com/Carmen-Shannon/oxy-moon/engine/config"
	"github.com/Carmen-Shannon/oxy-moon/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-moon/engine/scene"
	"github.com/Carmen-Shannon/oxy-moon/engine/starfield"
	"github.com/Carmen-Shannon/oxy-moon/engine/world"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTarget struct{}

func (fakeTarget) Width() uint32  { return 640 }
func (fakeTarget) Height() uint32 { return 480 }

// fakeBackend stands in for the GPU scene renderer and records what each pass saw.
type fakeBackend struct {
	sized    bool
	bright   map[string]material.Material
	params   compositor.BloomParams
	cleared  int
	combined int
}

func (b *fakeBackend) Sized() bool { return b.sized }

func (b *fakeBackend) RenderBright(renderables []*scene.Node, p compositor.BloomParams) error {
	b.params = p
	b.bright = make(map[string]material.Material, len(renderables))
	for _, n := range renderables {
		b.bright[n.Name] = n.Material
	}
	return nil
}

func (b *fakeBackend) ClearBloom() { b.cleared++ }

func (b *fakeBackend) BloomTarget() compositor.Target { return fakeTarget{} }

func (b *fakeBackend) RenderBase(_ []*scene.Node, _ compositor.OutputParams) error { return nil }

func (b *fakeBackend) Combine(_ compositor.Target, _ compositor.OutputParams) error {
	b.combined++
	return nil
}

// newTestApp wires an App the way Init does, with a fake backend in place of the renderer.
func newTestApp(t *testing.T) (*App, *fakeBackend) {
	t.Helper()
	cfg := config.Default()
	store, err := config.NewStore(cfg)
	require.NoError(t, err)

	rng := rand.New(rand.NewPCG(7, 7))
	w, err := world.Build(cfg, nil, world.WithRand(rng))
	require.NoError(t, err)

	backend := &fakeBackend{sized: true}
	a := NewApp(nil, store)
	a.rng = rng
	a.world = w
	a.compositor = compositor.NewCompositor(backend)
	a.scheduler = starfield.NewScheduler(w.Pool().Buffer(), starfield.ParamsFromConfig(cfg.ShootingStar), starfield.WithRand(rng))
	a.camera = camera.NewCamera(camera.WithController(camera.NewCameraController(camera.WithEye(cameraEye))))
	a.applied = cfg
	a.initialized = true
	return a, backend
}

func TestTickComposesFrame(t *testing.T) {
	a, backend := newTestApp(t)

	require.NoError(t, a.Tick(16))
	assert.Equal(t, 1, backend.combined)
	assert.Equal(t, float32(1.0), backend.params.Threshold)

	moon := a.World().Node("moon")
	assert.Same(t, a.compositor.Placeholder(), backend.bright["moon"])
	assert.NotSame(t, a.compositor.Placeholder(), moon.Material)
	assert.Same(t, a.World().Node("stars").Material, backend.bright["stars"])
	assert.Zero(t, a.compositor.Stashed())
}

func TestTickSkipsUnsizedFrame(t *testing.T) {
	a, backend := newTestApp(t)
	backend.sized = false

	require.NoError(t, a.Tick(16))
	assert.Zero(t, backend.combined)
	assert.Equal(t, uint64(1), a.compositor.Stats().Skipped)
}

func TestBloomToggleKey(t *testing.T) {
	a, backend := newTestApp(t)

	a.post(func() { a.handleKey(common.KeyB) })
	require.NoError(t, a.Tick(16))

	assert.False(t, a.store.Get().Bloom.Enabled)
	assert.Equal(t, 1, backend.cleared)
	assert.Nil(t, backend.bright)
}

func TestSchedulerKeys(t *testing.T) {
	a, _ := newTestApp(t)

	a.post(func() { a.handleKey(common.KeyP) })
	require.NoError(t, a.Tick(0))
	assert.True(t, a.Scheduler().Paused())

	a.post(func() { a.handleKey(common.KeyS) })
	require.NoError(t, a.Tick(100))
	assert.Equal(t, uint64(1), a.Scheduler().Triggers())
	clip, ok := a.Scheduler().Active()
	require.True(t, ok)
	assert.Equal(t, float64(100), clip.StartMs)
}

func TestShootingStarCadence(t *testing.T) {
	a, _ := newTestApp(t)

	require.NoError(t, a.Tick(0))
	require.NoError(t, a.Tick(1999))
	assert.Zero(t, a.Scheduler().Triggers())

	require.NoError(t, a.Tick(2001))
	assert.Equal(t, uint64(1), a.Scheduler().Triggers())
}

func TestConfigChangeAppliesOnNextTick(t *testing.T) {
	a, _ := newTestApp(t)

	require.NoError(t, a.store.Update(func(c *config.Config) {
		c.Lighting.SunIntensity = 9
		c.ShootingStar.IntervalMs = 500
	}))
	assert.NotEqual(t, float32(9), a.World().Node("sun").Light.Intensity)

	require.NoError(t, a.Tick(16))
	assert.Equal(t, float32(9), a.World().Node("sun").Light.Intensity)
	assert.Equal(t, float64(500), a.Scheduler().Params().IntervalMs)
}

func TestReloadFromFile(t *testing.T) {
	a, _ := newTestApp(t)
	path := filepath.Join(t.TempDir(), "moon.toml")

	next := config.Default()
	next.Bloom.Strength = 1.5
	require.NoError(t, config.Save(path, next))

	a.configPath = path
	require.NoError(t, a.Reload())
	assert.Equal(t, float32(1.5), a.store.Get().Bloom.Strength)
}

func TestReloadWithoutFileIsNoop(t *testing.T) {
	a, _ := newTestApp(t)
	assert.NoError(t, a.Reload())
}

func TestFullEventQueueDrops(t *testing.T) {
	a, _ := newTestApp(t)

	for range eventQueueSize + 3 {
		a.post(func() {})
	}
	assert.Equal(t, uint64(3), a.dropped.Load())

	require.NoError(t, a.Tick(16))
	assert.Empty(t, a.events)
}

func TestCameraKeys(t *testing.T) {
	a, _ := newTestApp(t)
	ctrl := a.camera.Controller()
	azimuth := ctrl.Azimuth()

	a.post(func() { a.handleKey(common.KeyLeft) })
	require.NoError(t, a.Tick(16))
	assert.NotEqual(t, azimuth, ctrl.Azimuth())

	a.post(func() { a.handleKey(common.KeySpace) })
	require.NoError(t, a.Tick(32))
	assert.InDelta(t, azimuth, ctrl.Azimuth(), 1e-6)
}

func TestCounters(t *testing.T) {
	a, _ := newTestApp(t)
	require.NoError(t, a.Tick(16))

	counters := map[string]uint64{}
	for _, c := range a.Counters() {
		counters[c.Name] = c.Value
	}
	assert.Equal(t, uint64(1), counters["frames"])
	assert.Contains(t, counters, "shooting stars")
	assert.Contains(t, counters, "stashed")
}

func TestFrameDuration(t *testing.T) {
	assert.Zero(t, frameDuration(0))
	assert.Equal(t, 10*time.Millisecond, frameDuration(100))
}
