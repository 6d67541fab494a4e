// package common contains plain types and helpers shared across the engine. They are not interface-wrapped structs,
// just plain structs that express commonly used data-types.
package common

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/cogentcore/webgpu/wgpu"
)

// TextureStagingData holds RGBA pixel data for a texture binding pending GPU upload.
type TextureStagingData struct {
	// Pixels is the RGBA pixel data, 4 bytes per pixel, row-major.
	Pixels []byte
	// Width is the width of the texture in pixels.
	Width uint32
	// Height is the height of the texture in pixels.
	Height uint32
	// SRGB marks color data that must be sampled through an sRGB view (albedo maps).
	SRGB bool
}

// SamplerStagingData holds the configuration for a sampler binding pending GPU creation.
// Zero fields fall back to linear filtering and repeat addressing.
type SamplerStagingData struct {
	AddressModeU, AddressModeV, AddressModeW wgpu.AddressMode
	MagFilter, MinFilter                     wgpu.FilterMode
	MipmapFilter                             wgpu.MipmapFilterMode
	LodMinClamp, LodMaxClamp                 float32
	MaxAnisotropy                            uint16
}

// TextureSlot names the role a texture plays in a material.
type TextureSlot int

const (
	// TextureSlotAlbedo is the base color map.
	TextureSlotAlbedo TextureSlot = iota
	// TextureSlotAO is the ambient occlusion map.
	TextureSlotAO
	// TextureSlotHeight is the displacement/height map.
	TextureSlotHeight
	// TextureSlotNormal is the tangent-space normal map.
	TextureSlotNormal
	// TextureSlotMetallic is the metalness map.
	TextureSlotMetallic
	// TextureSlotRoughness is the roughness map.
	TextureSlotRoughness

	// TextureSlotCount is the number of texture slots a material can hold.
	TextureSlotCount
)

// String returns the file-name suffix conventionally used for the slot.
func (s TextureSlot) String() string {
	switch s {
	case TextureSlotAlbedo:
		return "albedo"
	case TextureSlotAO:
		return "ao"
	case TextureSlotHeight:
		return "height"
	case TextureSlotNormal:
		return "normal"
	case TextureSlotMetallic:
		return "metallic"
	case TextureSlotRoughness:
		return "roughness"
	}
	return fmt.Sprintf("slot(%d)", int(s))
}

// ImportedTexture is a texture referenced by a material: either embedded bytes or a path on disk.
type ImportedTexture struct {
	// Name is an identifier for this texture (e.g., "moon/albedo").
	Name string

	// Path is the file path for external textures (empty for embedded).
	Path string

	// Data contains raw image bytes for embedded textures (PNG/JPEG).
	Data []byte

	// Repeat is the UV tiling factor applied in the shader. Zero means (1, 1).
	Repeat [2]float32

	// SRGB marks the texture as color data.
	SRGB bool

	// Width and Height are populated after Decode.
	Width, Height int

	// SamplerData overrides the default linear/repeat sampler when non-nil.
	SamplerData *SamplerStagingData

	// Staged holds the decoded pixels once a loader has processed the texture. Nil until then.
	Staged *TextureStagingData
}

// DecodeImage decodes the texture from Data, or from Path when Data is empty.
// Supports PNG and JPEG formats.
//
// Returns:
//   - image.Image: the decoded image
//   - error: error if neither source is set or decoding fails
func (t *ImportedTexture) DecodeImage() (image.Image, error) {
	if t == nil {
		return nil, fmt.Errorf("texture is nil")
	}

	switch {
	case len(t.Data) > 0:
		img, _, err := image.Decode(bytes.NewReader(t.Data))
		if err != nil {
			return nil, fmt.Errorf("failed to decode embedded image %s: %w", t.Name, err)
		}
		return img, nil
	case t.Path != "":
		file, err := os.Open(t.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to open texture file %s: %w", t.Path, err)
		}
		defer file.Close()

		img, _, err := image.Decode(file)
		if err != nil {
			return nil, fmt.Errorf("failed to decode texture file %s: %w", t.Path, err)
		}
		return img, nil
	}
	return nil, fmt.Errorf("texture %s has neither data nor path", t.Name)
}

// Stage converts img to RGBA staging data and records its size on the texture.
//
// Parameters:
//   - img: the decoded (and possibly resized) image
//
// Returns:
//   - TextureStagingData: pixel data ready for GPU upload
func (t *ImportedTexture) Stage(img image.Image) TextureStagingData {
	bounds := img.Bounds()
	rgba, ok := img.(*image.RGBA)
	if !ok || rgba.Stride != bounds.Dx()*4 {
		rgba = image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
		draw.Draw(rgba, rgba.Bounds(), img, bounds.Min, draw.Src)
	}

	t.Width = bounds.Dx()
	t.Height = bounds.Dy()

	return TextureStagingData{
		Pixels: rgba.Pix,
		Width:  uint32(t.Width),
		Height: uint32(t.Height),
		SRGB:   t.SRGB,
	}
}

// RepeatOrDefault returns Repeat, substituting 1 for zero components.
func (t *ImportedTexture) RepeatOrDefault() [2]float32 {
	r := t.Repeat
	r[0] = Coalesce(r[0], 1)
	r[1] = Coalesce(r[1], 1)
	return r
}
