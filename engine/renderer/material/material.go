package material

import (
	"github.com/Carmen-Shannon/oxy-moon/common"
	"github.com/Carmen-Shannon/oxy-moon/engine/renderer/bind_group_provider"
)

// material is the implementation of the Material interface.
type material struct {
	name              string
	baseColor         [4]float32
	emissive          [3]float32
	emissiveIntensity float32
	metallic          float32
	roughness         float32
	aoIntensity       float32
	normalScale       float32
	displacementScale float32
	uvRepeat          [2]float32
	textures          [common.TextureSlotCount]*common.ImportedTexture
	wireframe         bool
	doubleSided       bool
	unlit             bool
	dirty             bool
	pipelineKey       string
	bindGroupProvider bind_group_provider.BindGroupProvider
}

// Material defines the interface for a render material, encapsulating surface
// properties, texture references, and GPU resource bindings needed for draw calls.
//
// Textures, wireframe and culling are fixed at construction. The scalar surface parameters can be tuned
// at runtime through SetSurface and SetEmissiveIntensity; every such change marks the material dirty so the
// renderer re-uploads its uniform before the next draw. GPU resource references (pipeline key, bind group
// provider) are set by the renderer when the material is initialized.
type Material interface {
	// Name retrieves the material identifier.
	//
	// Returns:
	//   - string: the name of the material
	Name() string

	// BaseColor retrieves the albedo RGBA color, multiplied with the albedo texture when present.
	//
	// Returns:
	//   - [4]float32: the base color as RGBA values
	BaseColor() [4]float32

	// Emissive retrieves the emissive RGB color.
	//
	// Returns:
	//   - [3]float32: the emissive color
	Emissive() [3]float32

	// EmissiveIntensity retrieves the multiplier applied to the emissive color. Values above 1 push the
	// surface past the bloom threshold.
	//
	// Returns:
	//   - float32: the emissive intensity
	EmissiveIntensity() float32

	// Metallic retrieves the metallic factor, multiplied with the metallic texture when present.
	//
	// Returns:
	//   - float32: the metallic factor
	Metallic() float32

	// Roughness retrieves the roughness factor, multiplied with the roughness texture when present.
	//
	// Returns:
	//   - float32: the roughness factor
	Roughness() float32

	// AOIntensity retrieves the strength of the ambient occlusion map (0 disables it).
	//
	// Returns:
	//   - float32: the AO intensity
	AOIntensity() float32

	// NormalScale retrieves the strength of the normal map.
	//
	// Returns:
	//   - float32: the normal scale
	NormalScale() float32

	// DisplacementScale retrieves how far the height map pushes vertices along their normal.
	//
	// Returns:
	//   - float32: the displacement scale
	DisplacementScale() float32

	// UVRepeat retrieves the UV tiling factor applied to every texture of the material.
	//
	// Returns:
	//   - [2]float32: the tiling along U and V
	UVRepeat() [2]float32

	// Texture retrieves the texture bound to slot, or nil if the slot is empty.
	//
	// Parameters:
	//   - slot: the texture role
	//
	// Returns:
	//   - *common.ImportedTexture: the texture, or nil
	Texture(slot common.TextureSlot) *common.ImportedTexture

	// Wireframe reports whether the material draws triangle edges as lines instead of filled triangles.
	//
	// Returns:
	//   - bool: true for wireframe
	Wireframe() bool

	// DoubleSided reports whether back faces are drawn.
	//
	// Returns:
	//   - bool: true if back-face culling is disabled
	DoubleSided() bool

	// Unlit reports whether lighting is skipped, so the surface shows its base color plus emissive only.
	//
	// Returns:
	//   - bool: true for unlit
	Unlit() bool

	// SetSurface updates the tunable surface parameters and marks the material dirty.
	//
	// Parameters:
	//   - s: the new parameters
	SetSurface(s Surface)

	// SetEmissiveIntensity updates the emissive multiplier and marks the material dirty.
	//
	// Parameters:
	//   - intensity: the new intensity
	SetEmissiveIntensity(intensity float32)

	// Dirty reports whether the GPU uniform is stale.
	//
	// Returns:
	//   - bool: true if the parameters changed since the last upload
	Dirty() bool

	// ClearDirty marks the GPU uniform as current.
	ClearDirty()

	// Params returns the GPU uniform for the current parameters.
	//
	// Returns:
	//   - GPUMaterialParams: the uniform data
	Params() GPUMaterialParams

	// PipelineKey retrieves the key identifying the render pipeline this material uses.
	//
	// Returns:
	//   - string: the pipeline key
	PipelineKey() string

	// BindGroupProvider retrieves the bind group provider holding GPU-side resources for this material.
	//
	// Returns:
	//   - bind_group_provider.BindGroupProvider: the bind group provider, or nil if not yet initialized
	BindGroupProvider() bind_group_provider.BindGroupProvider

	// SetPipelineKey sets the render pipeline key for this material.
	//
	// Parameters:
	//   - key: the pipeline key to associate with this material
	SetPipelineKey(key string)

	// SetBindGroupProvider sets the bind group provider for this material.
	//
	// Parameters:
	//   - provider: the bind group provider containing GPU resources for this material
	SetBindGroupProvider(provider bind_group_provider.BindGroupProvider)
}

// Surface groups the runtime-tunable scalar parameters of a material.
type Surface struct {
	Metallic          float32
	Roughness         float32
	AOIntensity       float32
	NormalScale       float32
	DisplacementScale float32
}

var _ Material = &material{}

// NewMaterial creates a new Material instance configured with the provided options.
// The default is an opaque white, fully rough dielectric with no emission.
//
// Parameters:
//   - options: variadic list of MaterialBuilderOption functions to configure the material
//
// Returns:
//   - Material: a new Material instance
func NewMaterial(options ...MaterialBuilderOption) Material {
	m := &material{
		baseColor:   [4]float32{1, 1, 1, 1},
		metallic:    0.0,
		roughness:   1.0,
		aoIntensity: 1.0,
		normalScale: 1.0,
		uvRepeat:    [2]float32{1, 1},
		dirty:       true,
	}
	for _, opt := range options {
		opt(m)
	}
	return m
}

// NewPlaceholder creates the black, unlit material swapped onto non-glowing objects during the bloom pass.
// It writes black color and depth from both faces, so hidden objects (including single planes seen from
// behind) still occlude glowing ones.
//
// Returns:
//   - Material: the placeholder material
func NewPlaceholder() Material {
	return NewMaterial(
		WithName("bloom-placeholder"),
		WithBaseColor([4]float32{0, 0, 0, 1}),
		WithUnlit(true),
		WithDoubleSided(true),
		WithAOIntensity(0),
		WithNormalScale(0),
	)
}

func (m *material) Name() string {
	return m.name
}

func (m *material) BaseColor() [4]float32 {
	return m.baseColor
}

func (m *material) Emissive() [3]float32 {
	return m.emissive
}

func (m *material) EmissiveIntensity() float32 {
	return m.emissiveIntensity
}

func (m *material) Metallic() float32 {
	return m.metallic
}

func (m *material) Roughness() float32 {
	return m.roughness
}

func (m *material) AOIntensity() float32 {
	return m.aoIntensity
}

func (m *material) NormalScale() float32 {
	return m.normalScale
}

func (m *material) DisplacementScale() float32 {
	return m.displacementScale
}

func (m *material) UVRepeat() [2]float32 {
	return m.uvRepeat
}

func (m *material) Texture(slot common.TextureSlot) *common.ImportedTexture {
	if slot < 0 || slot >= common.TextureSlotCount {
		return nil
	}
	return m.textures[slot]
}

func (m *material) Wireframe() bool {
	return m.wireframe
}

func (m *material) DoubleSided() bool {
	return m.doubleSided
}

func (m *material) Unlit() bool {
	return m.unlit
}

func (m *material) SetSurface(s Surface) {
	m.metallic = s.Metallic
	m.roughness = s.Roughness
	m.aoIntensity = s.AOIntensity
	m.normalScale = s.NormalScale
	m.displacementScale = s.DisplacementScale
	m.dirty = true
}

func (m *material) SetEmissiveIntensity(intensity float32) {
	m.emissiveIntensity = intensity
	m.dirty = true
}

func (m *material) Dirty() bool {
	return m.dirty
}

func (m *material) ClearDirty() {
	m.dirty = false
}

func (m *material) Params() GPUMaterialParams {
	var unlit float32
	if m.unlit {
		unlit = 1
	}
	return GPUMaterialParams{
		BaseColor: m.baseColor,
		Emissive:  [4]float32{m.emissive[0], m.emissive[1], m.emissive[2], m.emissiveIntensity},
		Surface:   [4]float32{m.metallic, m.roughness, m.aoIntensity, m.normalScale},
		Extra:     [4]float32{m.displacementScale, unlit, m.uvRepeat[0], m.uvRepeat[1]},
	}
}

func (m *material) PipelineKey() string {
	return m.pipelineKey
}

func (m *material) BindGroupProvider() bind_group_provider.BindGroupProvider {
	return m.bindGroupProvider
}

func (m *material) SetPipelineKey(key string) {
	m.pipelineKey = key
}

func (m *material) SetBindGroupProvider(provider bind_group_provider.BindGroupProvider) {
	m.bindGroupProvider = provider
}
