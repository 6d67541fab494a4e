package common

import (
	"image"
	"image/color"
	"math/rand/v2"
	"testing"

	"cogentcore.org/core/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEaseOutQuad(t *testing.T) {
	assert.Equal(t, float32(0), EaseOutQuad(0))
	assert.Equal(t, float32(1), EaseOutQuad(1))
	assert.InDelta(t, 0.75, EaseOutQuad(0.5), 1e-6)

	prev := EaseOutQuad(0)
	for i := 1; i <= 1000; i++ {
		cur := EaseOutQuad(float32(i) / 1000)
		assert.GreaterOrEqual(t, cur, prev, "ease must not decrease at step %d", i)
		prev = cur
	}
}

func TestLerp3(t *testing.T) {
	a := math32.Vec3(0, 2, 0)
	b := math32.Vec3(1, 2, 0)
	assert.Equal(t, a, Lerp3(a, b, 0))
	assert.Equal(t, b, Lerp3(a, b, 1))
	assert.Equal(t, math32.Vec3(0.75, 2, 0), Lerp3(a, b, 0.75))
}

func TestRandomUnitVector(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	for range 500 {
		v := RandomUnitVector(rng)
		assert.InDelta(t, 1, v.Length(), 1e-4)
	}
}

func TestFacingRotation(t *testing.T) {
	pos := math32.Vec3(3, -4, 12)
	rot := FacingRotation(pos, math32.Vector3{})

	m := make([]float32, 16)
	BuildModelMatrix(m, pos, rot, math32.Vec3(1, 1, 1))

	// The local +Z column must point at the origin.
	localZ := math32.Vec3(m[8], m[9], m[10])
	want := pos.MulScalar(-1).Normal()
	assert.InDelta(t, want.X, localZ.X, 1e-5)
	assert.InDelta(t, want.Y, localZ.Y, 1e-5)
	assert.InDelta(t, want.Z, localZ.Z, 1e-5)

	assert.Equal(t, math32.Vector3{}, FacingRotation(pos, pos))
}

func TestMul4Identity(t *testing.T) {
	id := make([]float32, 16)
	Identity(id)
	m := make([]float32, 16)
	BuildModelMatrix(m, math32.Vec3(1, 2, 3), math32.Vec3(0.1, 0.2, 0.3), math32.Vec3(2, 2, 2))

	out := make([]float32, 16)
	Mul4(out, id, m)
	assert.Equal(t, m, out)
}

func TestCoalesce(t *testing.T) {
	assert.Equal(t, 3, Coalesce(0, 0, 3, 4))
	assert.Equal(t, "", Coalesce[string]())
}

func TestImportedTextureStage(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 3, 2))
	img.Set(1, 1, color.NRGBA{R: 255, A: 255})

	tex := &ImportedTexture{Name: "test", SRGB: true}
	staged := tex.Stage(img)
	require.Len(t, staged.Pixels, 3*2*4)
	assert.Equal(t, uint32(3), staged.Width)
	assert.Equal(t, uint32(2), staged.Height)
	assert.True(t, staged.SRGB)
	assert.Equal(t, 3, tex.Width)
	assert.Equal(t, [2]float32{1, 1}, tex.RepeatOrDefault())

	_, err := (&ImportedTexture{Name: "empty"}).DecodeImage()
	assert.Error(t, err)
}
