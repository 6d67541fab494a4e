package material

import (
	"github.com/Carmen-Shannon/oxy-moon/common"
)

// MaterialBuilderOption is a function that configures a material instance during construction.
type MaterialBuilderOption func(*material)

// WithName is an option builder that sets the name of the material.
//
// Parameters:
//   - name: the identifier for the material
//
// Returns:
//   - MaterialBuilderOption: a function that applies the name option to a material
func WithName(name string) MaterialBuilderOption {
	return func(m *material) {
		m.name = name
	}
}

// WithBaseColor is an option builder that sets the albedo RGBA color of the material.
//
// Parameters:
//   - color: the base color as RGBA float32 values
//
// Returns:
//   - MaterialBuilderOption: a function that applies the base color option to a material
func WithBaseColor(color [4]float32) MaterialBuilderOption {
	return func(m *material) {
		m.baseColor = color
	}
}

// WithEmissive is an option builder that sets the emissive color and its intensity.
//
// Parameters:
//   - color: the emissive RGB color
//   - intensity: the emissive multiplier
//
// Returns:
//   - MaterialBuilderOption: a function that applies the emissive option to a material
func WithEmissive(color [3]float32, intensity float32) MaterialBuilderOption {
	return func(m *material) {
		m.emissive = color
		m.emissiveIntensity = intensity
	}
}

// WithSurface is an option builder that sets the tunable scalar parameters of the material.
//
// Parameters:
//   - s: metallic, roughness, AO intensity, normal scale and displacement scale
//
// Returns:
//   - MaterialBuilderOption: a function that applies the surface option to a material
func WithSurface(s Surface) MaterialBuilderOption {
	return func(m *material) {
		m.metallic = s.Metallic
		m.roughness = s.Roughness
		m.aoIntensity = s.AOIntensity
		m.normalScale = s.NormalScale
		m.displacementScale = s.DisplacementScale
	}
}

// WithMetallic is an option builder that sets the metallic factor of the material.
//
// Parameters:
//   - metallic: the metallic factor (0.0 = dielectric, 1.0 = metal)
//
// Returns:
//   - MaterialBuilderOption: a function that applies the metallic option to a material
func WithMetallic(metallic float32) MaterialBuilderOption {
	return func(m *material) {
		m.metallic = metallic
	}
}

// WithRoughness is an option builder that sets the roughness factor of the material.
//
// Parameters:
//   - roughness: the roughness factor (0.0 = smooth, 1.0 = rough)
//
// Returns:
//   - MaterialBuilderOption: a function that applies the roughness option to a material
func WithRoughness(roughness float32) MaterialBuilderOption {
	return func(m *material) {
		m.roughness = roughness
	}
}

// WithAOIntensity sets the strength of the ambient occlusion map.
//
// Parameters:
//   - intensity: 0 disables the map, 1 applies it as authored
//
// Returns:
//   - MaterialBuilderOption: a function that applies the AO intensity option to a material
func WithAOIntensity(intensity float32) MaterialBuilderOption {
	return func(m *material) {
		m.aoIntensity = intensity
	}
}

// WithNormalScale sets the strength of the normal map.
//
// Parameters:
//   - scale: 0 ignores the map, 1 applies it as authored
//
// Returns:
//   - MaterialBuilderOption: a function that applies the normal scale option to a material
func WithNormalScale(scale float32) MaterialBuilderOption {
	return func(m *material) {
		m.normalScale = scale
	}
}

// WithTexture binds tex to slot. The material's UV repeat is taken from the first texture that sets one.
//
// Parameters:
//   - slot: the texture role
//   - tex: the imported texture, nil clears the slot
//
// Returns:
//   - MaterialBuilderOption: a function that applies the texture option to a material
func WithTexture(slot common.TextureSlot, tex *common.ImportedTexture) MaterialBuilderOption {
	return func(m *material) {
		if slot < 0 || slot >= common.TextureSlotCount {
			return
		}
		m.textures[slot] = tex
		if tex != nil && tex.Repeat != [2]float32{} && m.uvRepeat == [2]float32{1, 1} {
			m.uvRepeat = tex.RepeatOrDefault()
		}
	}
}

// WithTextures binds a whole texture set keyed by slot.
//
// Parameters:
//   - set: textures keyed by slot
//
// Returns:
//   - MaterialBuilderOption: a function that applies the textures option to a material
func WithTextures(set map[common.TextureSlot]*common.ImportedTexture) MaterialBuilderOption {
	return func(m *material) {
		for slot := common.TextureSlot(0); slot < common.TextureSlotCount; slot++ {
			if tex, ok := set[slot]; ok {
				WithTexture(slot, tex)(m)
			}
		}
	}
}

// WithUVRepeat sets the UV tiling factor explicitly.
//
// Parameters:
//   - repeat: tiling along U and V
//
// Returns:
//   - MaterialBuilderOption: a function that applies the repeat option to a material
func WithUVRepeat(repeat [2]float32) MaterialBuilderOption {
	return func(m *material) {
		m.uvRepeat = repeat
	}
}

// WithWireframe draws the mesh's edges instead of its triangles.
//
// Parameters:
//   - wireframe: true for line rendering
//
// Returns:
//   - MaterialBuilderOption: a function that applies the wireframe option to a material
func WithWireframe(wireframe bool) MaterialBuilderOption {
	return func(m *material) {
		m.wireframe = wireframe
	}
}

// WithDoubleSided disables back-face culling.
//
// Parameters:
//   - doubleSided: true to draw both faces
//
// Returns:
//   - MaterialBuilderOption: a function that applies the double sided option to a material
func WithDoubleSided(doubleSided bool) MaterialBuilderOption {
	return func(m *material) {
		m.doubleSided = doubleSided
	}
}

// WithUnlit skips lighting so the surface shows base color plus emission only.
//
// Parameters:
//   - unlit: true for unlit shading
//
// Returns:
//   - MaterialBuilderOption: a function that applies the unlit option to a material
func WithUnlit(unlit bool) MaterialBuilderOption {
	return func(m *material) {
		m.unlit = unlit
	}
}
