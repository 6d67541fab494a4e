package bind_group_provider

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewBindGroupProviderKeepsLabel(t *testing.T) {
	p := NewBindGroupProvider("moon material")
	assert.Equal(t, "moon material", p.Label())
	assert.Nil(t, p.BindGroup())
	assert.Nil(t, p.Buffer(0))
	assert.Nil(t, p.TextureView(1))
	assert.Zero(t, p.IndexCount())
	assert.Zero(t, p.EdgeCount())
}

func TestSharedViewsAreNotReleased(t *testing.T) {
	p := NewBindGroupProvider("combine")
	// A nil shared view stands in for a render target owned elsewhere.
	p.SetSharedTextureView(0, nil)
	assert.NotPanics(t, p.Release)
	assert.NotPanics(t, p.ReleaseBindGroup)
}

func TestSetMeshBuffersCounts(t *testing.T) {
	p := NewBindGroupProvider("torus")
	p.SetMeshBuffers(nil, nil, 36, nil, 24)
	assert.Equal(t, 36, p.IndexCount())
	assert.Equal(t, 24, p.EdgeCount())

	p.Release()
	assert.Zero(t, p.IndexCount())
	assert.Zero(t, p.EdgeCount())
}
