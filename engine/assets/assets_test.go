package assets

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
	"testing/fstest"

	"github.com/Carmen-Shannon/oxy-moon/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodePNG(t *testing.T, w, h int, c color.RGBA) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.SetRGBA(x, y, c)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestPatternSet(t *testing.T) {
	set := PatternSet("solar", "solar_cells/small", "SolarCells_512_%s.png", common.TextureSlotAlbedo, common.TextureSlotMetallic)
	assert.Equal(t, "SolarCells_512_albedo.png", set.Files[common.TextureSlotAlbedo])
	assert.Equal(t, "SolarCells_512_metallic.png", set.Files[common.TextureSlotMetallic])
	assert.Len(t, set.Files, 2)
}

func TestLoadStagesTexturesAndSkipsMissing(t *testing.T) {
	fsys := fstest.MapFS{
		"moon/Moon_002_basecolor.png": {Data: encodePNG(t, 8, 4, color.RGBA{200, 100, 50, 255})},
		"moon/Moon_002_height.png":    {Data: encodePNG(t, 2, 2, color.RGBA{10, 10, 10, 255})},
		"moon/Moon_002_normal.png":    {Data: []byte("not a png")},
	}
	l := NewLoader(WithFS(fsys), WithWorkers(2), WithMaxTextureSize(4))

	lib := l.Load(TextureSet{
		Name: "moon",
		Dir:  "moon",
		Files: map[common.TextureSlot]string{
			common.TextureSlotAlbedo:    "Moon_002_basecolor.png",
			common.TextureSlotHeight:    "Moon_002_height.png",
			common.TextureSlotNormal:    "Moon_002_normal.png",
			common.TextureSlotRoughness: "Moon_002_roughness.png",
		},
		Repeat: [2]float32{3, 0.6},
	})

	moon := lib.Textures("moon")
	require.Len(t, moon, 2)

	albedo := moon[common.TextureSlotAlbedo]
	require.NotNil(t, albedo)
	require.NotNil(t, albedo.Staged)
	assert.True(t, albedo.Staged.SRGB)
	assert.Equal(t, uint32(4), albedo.Staged.Width)
	assert.Equal(t, uint32(2), albedo.Staged.Height)
	assert.Len(t, albedo.Staged.Pixels, 4*2*4)
	assert.Equal(t, [2]float32{3, 0.6}, albedo.Repeat)
	assert.Equal(t, "moon/albedo", albedo.Name)
	assert.Nil(t, albedo.Data)

	height := moon[common.TextureSlotHeight]
	require.NotNil(t, height)
	assert.False(t, height.Staged.SRGB)
	assert.Equal(t, uint32(2), height.Staged.Width)

	stats := l.Stats()
	assert.Equal(t, 2, stats.Loaded)
	assert.Equal(t, 2, stats.Failed)
	assert.Equal(t, 1, stats.Resized)
}

func TestFitKeepsSmallImages(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 16, 8))
	assert.Same(t, img, Fit(img, 16))
	assert.Same(t, img, Fit(img, 0))

	fitted := Fit(img, 4)
	assert.Equal(t, 4, fitted.Bounds().Dx())
	assert.Equal(t, 2, fitted.Bounds().Dy())
}

func TestUnknownSet(t *testing.T) {
	var lib Library
	assert.Nil(t, lib.Textures("missing"))
}
