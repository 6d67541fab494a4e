package compositor

import (
	"errors"
	"testing"

	"github.com/Carmen-Shannon/oxy-moon/engine/config"
	"github.com/Carmen-Shannon/oxy-moon/engine/geometry"
	"github.com/Carmen-Shannon/oxy-moon/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-moon/engine/scene"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTarget struct{ w, h uint32 }

func (t fakeTarget) Width() uint32  { return t.w }
func (t fakeTarget) Height() uint32 { return t.h }

// fakeBackend records the material each renderable carried when a pass ran.
type fakeBackend struct {
	sized       bool
	brightErr   error
	brightPanic bool
	baseErr     error

	bright   map[string]material.Material
	base     map[string]material.Material
	cleared  int
	combined []Target
	calls    []string
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{sized: true}
}

func snapshot(renderables []*scene.Node) map[string]material.Material {
	out := make(map[string]material.Material, len(renderables))
	for _, n := range renderables {
		out[n.Name] = n.Material
	}
	return out
}

func (b *fakeBackend) Sized() bool { return b.sized }

func (b *fakeBackend) RenderBright(renderables []*scene.Node, _ BloomParams) error {
	b.calls = append(b.calls, "bright")
	b.bright = snapshot(renderables)
	if b.brightPanic {
		panic("device lost")
	}
	return b.brightErr
}

func (b *fakeBackend) ClearBloom() {
	b.calls = append(b.calls, "clear")
	b.cleared++
}

func (b *fakeBackend) BloomTarget() Target { return fakeTarget{640, 480} }

func (b *fakeBackend) RenderBase(renderables []*scene.Node, _ OutputParams) error {
	b.calls = append(b.calls, "base")
	b.base = snapshot(renderables)
	return b.baseErr
}

func (b *fakeBackend) Combine(bloom Target, _ OutputParams) error {
	b.calls = append(b.calls, "combine")
	b.combined = append(b.combined, bloom)
	return nil
}

func drawable(name string, tags ...scene.Tag) *scene.Node {
	n := scene.NewNode(name, append([]scene.Tag{scene.TagRenderable}, tags...)...)
	n.Material = material.NewMaterial(material.WithName(name))
	n.Mesh = geometry.Plane(1, 1, 1, 1)
	return n
}

// testScene builds a moon, a satellite group with two panels, a star pool and a material-less renderable.
func testScene(t *testing.T) scene.Scene {
	t.Helper()
	group := scene.NewNode("satellite")
	group.Add(drawable("cells", scene.TagNoBloom), drawable("body", scene.TagNoBloom))
	empty := scene.NewNode("empty", scene.TagRenderable, scene.TagNoBloom)

	s := scene.NewScene("test", scene.WithNodes(
		drawable("moon", scene.TagNoBloom),
		group,
		drawable("stars", scene.TagBloom, scene.TagInstanced),
		drawable("red", scene.TagBloom),
		empty,
	))
	require.NoError(t, s.Freeze())
	return s
}

func bloomOn() BloomParams {
	return BloomParamsFromConfig(config.Default())
}

func TestStashSymmetry(t *testing.T) {
	s := testScene(t)
	before := snapshot(s.Renderables())
	c := NewCompositor(newFakeBackend())

	for range 3 {
		require.NoError(t, c.RenderBloomPass(s, bloomOn()))
		assert.Zero(t, c.Stashed())
		assert.Equal(t, before, snapshot(s.Renderables()))
	}
	assert.Equal(t, uint64(9), c.Stats().Stashed)
}

func TestBloomIsolation(t *testing.T) {
	s := testScene(t)
	before := snapshot(s.Renderables())
	b := newFakeBackend()
	c := NewCompositor(b)

	require.NoError(t, c.RenderBloomPass(s, bloomOn()))

	placeholder := c.Placeholder()
	for _, name := range []string{"moon", "cells", "body"} {
		assert.Same(t, placeholder, b.bright[name], name)
	}
	for _, name := range []string{"stars", "red"} {
		assert.Same(t, before[name], b.bright[name], name)
	}
	// A renderable without a material is skipped.
	assert.Nil(t, b.bright["empty"])
}

func TestRestoreRunsWhenBrightPassFails(t *testing.T) {
	s := testScene(t)
	before := snapshot(s.Renderables())
	b := newFakeBackend()
	b.brightErr = errors.New("out of memory")
	c := NewCompositor(b)

	err := c.RenderBloomPass(s, bloomOn())
	require.Error(t, err)
	assert.ErrorIs(t, err, b.brightErr)
	assert.Zero(t, c.Stashed())
	assert.Equal(t, before, snapshot(s.Renderables()))
}

func TestRestoreRunsWhenBrightPassPanics(t *testing.T) {
	s := testScene(t)
	before := snapshot(s.Renderables())
	b := newFakeBackend()
	b.brightPanic = true
	c := NewCompositor(b)

	assert.Panics(t, func() { _ = c.RenderBloomPass(s, bloomOn()) })
	assert.Zero(t, c.Stashed())
	assert.Equal(t, before, snapshot(s.Renderables()))
}

func TestDisabledBloomClearsAndSwapsNothing(t *testing.T) {
	s := testScene(t)
	b := newFakeBackend()
	c := NewCompositor(b)
	p := bloomOn()
	p.Enabled = false

	require.NoError(t, c.RenderBloomPass(s, p))
	assert.Equal(t, 1, b.cleared)
	assert.Nil(t, b.bright)
	assert.Zero(t, c.Stats().Stashed)
}

func TestRenderOrdersPasses(t *testing.T) {
	s := testScene(t)
	before := snapshot(s.Renderables())
	b := newFakeBackend()
	c := NewCompositor(b)

	require.NoError(t, c.Render(s, bloomOn(), OutputParamsFromConfig(config.Default())))
	assert.Equal(t, []string{"bright", "base", "combine"}, b.calls)
	// The base pass sees every original material.
	assert.Equal(t, before, b.base)
	require.Len(t, b.combined, 1)
	assert.Equal(t, fakeTarget{640, 480}, b.combined[0])
	assert.Equal(t, uint64(1), c.Stats().Frames)
}

func TestRenderSkipsUnsizedFrame(t *testing.T) {
	s := testScene(t)
	b := newFakeBackend()
	b.sized = false
	c := NewCompositor(b)

	err := c.Render(s, bloomOn(), OutputParams{})
	assert.ErrorIs(t, err, ErrNotSized)
	assert.Empty(t, b.calls)
	assert.Equal(t, uint64(1), c.Stats().Skipped)
}

func TestRenderStopsOnBrightFailure(t *testing.T) {
	s := testScene(t)
	b := newFakeBackend()
	b.brightErr = errors.New("lost")
	c := NewCompositor(b)

	require.Error(t, c.Render(s, bloomOn(), OutputParams{}))
	assert.Equal(t, []string{"bright"}, b.calls)
	assert.Equal(t, uint64(1), c.Stats().Failed)

	// The next frame tries again independently.
	b.brightErr = nil
	require.NoError(t, c.Render(s, bloomOn(), OutputParams{}))
	assert.Equal(t, uint64(1), c.Stats().Frames)
}

func TestRenderWrapsBaseFailure(t *testing.T) {
	s := testScene(t)
	b := newFakeBackend()
	b.baseErr = ErrNotSized
	c := NewCompositor(b)

	err := c.Render(s, bloomOn(), OutputParams{})
	assert.ErrorIs(t, err, ErrNotSized)
	assert.Contains(t, err.Error(), "base pass")
	assert.NotContains(t, b.calls, "combine")
}

func TestWithPlaceholder(t *testing.T) {
	custom := material.NewPlaceholder()
	c := NewCompositor(newFakeBackend(), WithPlaceholder(custom))
	assert.Same(t, custom, c.Placeholder())
}

func TestParamsFromConfig(t *testing.T) {
	cfg := config.Default()
	bp := BloomParamsFromConfig(cfg)
	assert.Equal(t, BloomParams{Enabled: true, Threshold: 1, Strength: 0.2, Radius: 0, Damp: 0.8}, bp)

	op := OutputParamsFromConfig(cfg)
	assert.Equal(t, float32(1), op.Exposure)
	assert.Equal(t, config.ToneMappingACES, op.ToneMapping)
	assert.Equal(t, config.HexToLinear(0x033333), op.Background)
}
