package renderer

import "github.com/cogentcore/webgpu/wgpu"

// renderTarget is the implementation of the RenderTarget interface.
type renderTarget struct {
	label   string
	format  wgpu.TextureFormat
	width   uint32
	height  uint32
	texture *wgpu.Texture
	view    *wgpu.TextureView
}

// RenderTarget is an offscreen color texture that passes render into and later passes sample from.
type RenderTarget interface {
	// Label returns the debug label.
	Label() string

	// Format returns the texture format.
	Format() wgpu.TextureFormat

	// Width returns the width in pixels.
	Width() uint32

	// Height returns the height in pixels.
	Height() uint32

	// View returns the texture view used both as attachment and as shader binding.
	View() *wgpu.TextureView

	// Release releases the texture and its view.
	Release()
}

var _ RenderTarget = &renderTarget{}

func (t *renderTarget) Label() string {
	return t.label
}

func (t *renderTarget) Format() wgpu.TextureFormat {
	return t.format
}

func (t *renderTarget) Width() uint32 {
	return t.width
}

func (t *renderTarget) Height() uint32 {
	return t.height
}

func (t *renderTarget) View() *wgpu.TextureView {
	return t.view
}

func (t *renderTarget) Release() {
	if t.view != nil {
		t.view.Release()
		t.view = nil
	}
	if t.texture != nil {
		t.texture.Release()
		t.texture = nil
	}
}
