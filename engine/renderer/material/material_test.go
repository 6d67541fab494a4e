package material

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-moon/common"
	"github.com/stretchr/testify/assert"
)

func TestNewMaterialDefaults(t *testing.T) {
	m := NewMaterial()
	assert.Equal(t, [4]float32{1, 1, 1, 1}, m.BaseColor())
	assert.Equal(t, float32(1), m.Roughness())
	assert.Equal(t, [2]float32{1, 1}, m.UVRepeat())
	assert.True(t, m.Dirty())
	assert.Nil(t, m.Texture(common.TextureSlotAlbedo))
	assert.Nil(t, m.Texture(common.TextureSlotCount))
}

func TestPlaceholderIsBlackAndUnlit(t *testing.T) {
	p := NewPlaceholder()
	assert.True(t, p.Unlit())
	assert.Equal(t, [4]float32{0, 0, 0, 1}, p.BaseColor())
	assert.Equal(t, float32(0), p.EmissiveIntensity())
	assert.False(t, p.Wireframe())
	assert.True(t, p.DoubleSided())

	params := p.Params()
	assert.Equal(t, float32(1), params.Extra[1])
	assert.Equal(t, [4]float32{0, 0, 0, 0}, params.Emissive)
}

func TestTextureRepeatIsAdopted(t *testing.T) {
	albedo := &common.ImportedTexture{Name: "solar/albedo", Repeat: [2]float32{3, 0.6}}
	m := NewMaterial(
		WithTexture(common.TextureSlotAlbedo, albedo),
		WithTexture(common.TextureSlotMetallic, &common.ImportedTexture{Name: "solar/metallic"}),
	)
	assert.Equal(t, [2]float32{3, 0.6}, m.UVRepeat())
	assert.Same(t, albedo, m.Texture(common.TextureSlotAlbedo))
	assert.NotNil(t, m.Texture(common.TextureSlotMetallic))
}

func TestWithTexturesBindsSet(t *testing.T) {
	set := map[common.TextureSlot]*common.ImportedTexture{
		common.TextureSlotNormal: {Name: "n"},
		common.TextureSlotAO:     {Name: "ao"},
	}
	m := NewMaterial(WithTextures(set))
	assert.Equal(t, "n", m.Texture(common.TextureSlotNormal).Name)
	assert.Equal(t, "ao", m.Texture(common.TextureSlotAO).Name)
	assert.Nil(t, m.Texture(common.TextureSlotRoughness))
}

func TestSetSurfaceMarksDirty(t *testing.T) {
	m := NewMaterial()
	m.ClearDirty()
	m.SetSurface(Surface{Metallic: 0.865, Roughness: 0.21, AOIntensity: 1, NormalScale: 1})
	assert.True(t, m.Dirty())
	assert.Equal(t, float32(0.865), m.Metallic())

	m.ClearDirty()
	m.SetEmissiveIntensity(6)
	assert.True(t, m.Dirty())
	assert.Equal(t, float32(6), m.Params().Emissive[3])
}

func TestParamsLayout(t *testing.T) {
	m := NewMaterial(
		WithEmissive([3]float32{1, 0, 0}, 6),
		WithSurface(Surface{Metallic: 0.5, Roughness: 0.25, AOIntensity: 1.25, NormalScale: 0.5, DisplacementScale: 0.1}),
		WithUVRepeat([2]float32{0.6, 0.7}),
	)
	p := m.Params()
	assert.Equal(t, [4]float32{1, 0, 0, 6}, p.Emissive)
	assert.Equal(t, [4]float32{0.5, 0.25, 1.25, 0.5}, p.Surface)
	assert.Equal(t, [4]float32{0.1, 0, 0.6, 0.7}, p.Extra)

	buf := p.Marshal()
	assert.Len(t, buf, p.Size())
	assert.Len(t, buf, 64)
}
