package renderer

import (
	"embed"
	"errors"
	"fmt"
	"log"

	"github.com/Carmen-Shannon/oxy-moon/common"
	"github.com/Carmen-Shannon/oxy-moon/engine/camera"
	"github.com/Carmen-Shannon/oxy-moon/engine/compositor"
	"github.com/Carmen-Shannon/oxy-moon/engine/geometry"
	"github.com/Carmen-Shannon/oxy-moon/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-moon/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-moon/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-moon/engine/renderer/postfx"
	"github.com/Carmen-Shannon/oxy-moon/engine/renderer/shader"
	"github.com/Carmen-Shannon/oxy-moon/engine/scene"
	"github.com/cogentcore/webgpu/wgpu"
)

//go:embed assets/mesh.wgsl
var shaderAssets embed.FS

// Pipeline keys of the mesh shader variants. A material selects one by its wireframe and culling flags.
const (
	PipelineMeshFilled      = "mesh.filled"
	PipelineMeshDoubleSided = "mesh.double_sided"
	PipelineMeshWireframe   = "mesh.wireframe"
)

// Mesh shader bind group indices.
const (
	groupFrame    = 0
	groupMaterial = 1
	groupNode     = 2
)

// Bindings within the mesh shader groups. Material textures occupy 1 + TextureSlot.
const (
	bindingFrame           = 0
	bindingMaterialParams  = 0
	bindingMaterialSampler = 7
	bindingNodeWorld       = 0
	bindingNodeInstances   = 1
)

// Bindings within the post-process groups.
const (
	bindingPostParams  = 0
	bindingPostSource  = 1
	bindingPostSampler = 2
	bindingPairSampler = 3
)

const instanceStride = 64

// RenderStats counts scene renderer work since construction.
type RenderStats struct {
	BrightPasses    uint64
	BasePasses      uint64
	DrawCalls       uint64
	MaterialUploads uint64
	InstanceUploads uint64
	Resizes         uint64
}

// sceneRenderer is the implementation of the SceneRenderer interface.
type sceneRenderer struct {
	renderer Renderer
	camera   camera.Camera

	meshShader  shader.Shader
	postShaders map[postfx.Pass]shader.Shader
	bloomScale  float32

	frame  bind_group_provider.BindGroupProvider
	lights []*scene.Node

	defaults  [common.TextureSlotCount]common.TextureStagingData
	materials []material.Material
	meshes    []*geometry.Mesh
	nodes     map[*scene.Node]bind_group_provider.BindGroupProvider
	instanced []bind_group_provider.BindGroupProvider

	width, height uint32
	base, bright  RenderTarget
	blurA, blurB  RenderTarget
	accum         [2]RenderTarget
	history       pingPong

	threshold  bind_group_provider.BindGroupProvider
	blurH      bind_group_provider.BindGroupProvider
	blurV      bind_group_provider.BindGroupProvider
	afterimage [2]bind_group_provider.BindGroupProvider
	combine    [2]bind_group_provider.BindGroupProvider

	stats RenderStats
}

// SceneRenderer draws frozen scene renderables with the mesh shader and runs the bloom post-process chain.
// It is the GPU Backend the compositor drives.
//
// Every Backend call records and submits its own command encoder. Combine is the only call that touches the
// surface and presents it. All methods must be called from the render goroutine.
type SceneRenderer interface {
	compositor.Backend

	// Prepare creates the GPU resources of every drawable renderable (mesh buffers, material textures and
	// uniforms, node and instance bindings) and captures the scene's lights. Resources missing later are
	// created on first draw.
	//
	// Parameters:
	//   - s: the frozen scene
	//
	// Returns:
	//   - error: the first resource creation error
	Prepare(s scene.Scene) error

	// Resize recreates every offscreen target for the renderer's current surface size. A zero size releases
	// the targets so Sized reports false.
	Resize()

	// Stats returns the work counters.
	Stats() RenderStats

	// Release releases every GPU object the scene renderer created. Pipelines belong to the Renderer.
	Release()
}

var _ SceneRenderer = &sceneRenderer{}

// NewSceneRenderer registers the mesh and post-process pipelines on r and sizes the offscreen targets to the
// current surface.
//
// Parameters:
//   - r: the renderer to draw with
//   - cam: the camera supplying the view-projection of every frame
//   - options: functional options
//
// Returns:
//   - SceneRenderer: the scene renderer
//   - error: an error if a shader or pipeline could not be created
func NewSceneRenderer(r Renderer, cam camera.Camera, options ...SceneRendererBuilderOption) (SceneRenderer, error) {
	sr := &sceneRenderer{
		renderer:    r,
		camera:      cam,
		postShaders: make(map[postfx.Pass]shader.Shader),
		bloomScale:  1,
		nodes:       make(map[*scene.Node]bind_group_provider.BindGroupProvider),
		defaults:    defaultTextures(),
	}
	for _, opt := range options {
		opt(sr)
	}

	meshShader, err := shader.LoadShader("mesh", shaderAssets, "assets/mesh.wgsl")
	if err != nil {
		return nil, err
	}
	sr.meshShader = meshShader

	meshOpts := func(extra ...pipeline.PipelineBuilderOption) []pipeline.PipelineBuilderOption {
		return append([]pipeline.PipelineBuilderOption{
			pipeline.WithShader(meshShader),
			pipeline.WithTargetFormat(HDRFormat),
			pipeline.WithVertexLayouts(geometry.VertexBufferLayout()),
		}, extra...)
	}
	pipelines := []pipeline.Pipeline{
		pipeline.NewPipeline(PipelineMeshFilled, meshOpts(pipeline.WithCullMode(wgpu.CullModeBack))...),
		pipeline.NewPipeline(PipelineMeshDoubleSided, meshOpts(pipeline.WithCullMode(wgpu.CullModeNone))...),
		pipeline.NewPipeline(PipelineMeshWireframe, meshOpts(
			pipeline.WithCullMode(wgpu.CullModeNone),
			pipeline.WithTopology(wgpu.PrimitiveTopologyLineList),
		)...),
	}

	for _, pass := range []postfx.Pass{postfx.PassThreshold, postfx.PassBlur, postfx.PassAfterimage, postfx.PassCombine} {
		s := postfx.NewShader(pass)
		sr.postShaders[pass] = s
		format := HDRFormat
		if pass == postfx.PassCombine {
			format = wgpu.TextureFormatUndefined
		}
		pipelines = append(pipelines, pipeline.NewPipeline(pass.PipelineKey(),
			pipeline.WithShader(s),
			pipeline.WithoutDepth(),
			pipeline.WithSampleCount(1),
			pipeline.WithTargetFormat(format),
		))
	}

	if err := r.RegisterPipelines(pipelines...); err != nil {
		return nil, err
	}

	sr.frame = bind_group_provider.NewBindGroupProvider("frame")
	if err := r.InitBindGroup(sr.frame, meshShader.BindGroupLayoutDescriptor(groupFrame), nil, nil); err != nil {
		return nil, fmt.Errorf("frame bind group: %w", err)
	}

	if err := sr.createPostProviders(); err != nil {
		return nil, err
	}
	sr.Resize()
	return sr, nil
}

// defaultTextures returns the 1x1 textures bound to empty material slots. Each leaves its factor unchanged:
// white albedo, no occlusion, zero height, a flat normal, full metallic and roughness.
func defaultTextures() [common.TextureSlotCount]common.TextureStagingData {
	pixel := func(r, g, b byte, srgb bool) common.TextureStagingData {
		return common.TextureStagingData{Pixels: []byte{r, g, b, 255}, Width: 1, Height: 1, SRGB: srgb}
	}
	var d [common.TextureSlotCount]common.TextureStagingData
	d[common.TextureSlotAlbedo] = pixel(255, 255, 255, true)
	d[common.TextureSlotAO] = pixel(255, 255, 255, false)
	d[common.TextureSlotHeight] = pixel(0, 0, 0, false)
	d[common.TextureSlotNormal] = pixel(128, 128, 255, false)
	d[common.TextureSlotMetallic] = pixel(255, 255, 255, false)
	d[common.TextureSlotRoughness] = pixel(255, 255, 255, false)
	return d
}

// PipelineKeyFor returns the mesh pipeline variant a material draws with.
//
// Parameters:
//   - m: the material
//
// Returns:
//   - string: the pipeline key
func PipelineKeyFor(m material.Material) string {
	switch {
	case m.Wireframe():
		return PipelineMeshWireframe
	case m.DoubleSided():
		return PipelineMeshDoubleSided
	}
	return PipelineMeshFilled
}

func (sr *sceneRenderer) createPostProviders() error {
	clamp := common.SamplerStagingData{
		AddressModeU: wgpu.AddressModeClampToEdge,
		AddressModeV: wgpu.AddressModeClampToEdge,
		AddressModeW: wgpu.AddressModeClampToEdge,
	}
	single := func(label string) (bind_group_provider.BindGroupProvider, error) {
		p := bind_group_provider.NewBindGroupProvider(label)
		return p, sr.renderer.InitSampler(p, bindingPostSampler, clamp)
	}
	pair := func(label string) (bind_group_provider.BindGroupProvider, error) {
		p := bind_group_provider.NewBindGroupProvider(label)
		return p, sr.renderer.InitSampler(p, bindingPairSampler, clamp)
	}

	var err error
	if sr.threshold, err = single("postfx threshold"); err != nil {
		return err
	}
	if sr.blurH, err = single("postfx blur horizontal"); err != nil {
		return err
	}
	if sr.blurV, err = single("postfx blur vertical"); err != nil {
		return err
	}
	for i := range 2 {
		if sr.afterimage[i], err = pair(fmt.Sprintf("postfx afterimage %d", i)); err != nil {
			return err
		}
		if sr.combine[i], err = pair(fmt.Sprintf("postfx combine %d", i)); err != nil {
			return err
		}
	}
	return nil
}

func (sr *sceneRenderer) postProviders() []bind_group_provider.BindGroupProvider {
	return []bind_group_provider.BindGroupProvider{
		sr.threshold, sr.blurH, sr.blurV,
		sr.afterimage[0], sr.afterimage[1],
		sr.combine[0], sr.combine[1],
	}
}

func (sr *sceneRenderer) targets() []RenderTarget {
	return []RenderTarget{sr.base, sr.bright, sr.blurA, sr.blurB, sr.accum[0], sr.accum[1]}
}

func (sr *sceneRenderer) releaseTargets() {
	for _, p := range sr.postProviders() {
		p.ReleaseBindGroup()
	}
	for _, t := range sr.targets() {
		if t != nil {
			t.Release()
		}
	}
	sr.base, sr.bright, sr.blurA, sr.blurB = nil, nil, nil, nil
	sr.accum = [2]RenderTarget{}
	sr.width, sr.height = 0, 0
}

func (sr *sceneRenderer) Resize() {
	w, h := sr.renderer.Width(), sr.renderer.Height()
	if w == sr.width && h == sr.height && sr.base != nil {
		return
	}
	sr.releaseTargets()
	if w == 0 || h == 0 {
		return
	}
	if err := sr.createTargets(w, h); err != nil {
		log.Printf("[SceneRenderer] resize to %dx%d failed: %v", w, h, err)
		sr.releaseTargets()
		return
	}
	sr.stats.Resizes++
}

func (sr *sceneRenderer) createTargets(w, h uint32) error {
	bw := max(1, uint32(float32(w)*sr.bloomScale))
	bh := max(1, uint32(float32(h)*sr.bloomScale))

	var err error
	create := func(label string, width, height uint32) RenderTarget {
		if err != nil {
			return nil
		}
		var t RenderTarget
		t, err = sr.renderer.CreateRenderTarget(label, HDRFormat, width, height)
		return t
	}
	sr.base = create("base", w, h)
	sr.bright = create("bright", w, h)
	sr.blurA = create("bloom blur a", bw, bh)
	sr.blurB = create("bloom blur b", bw, bh)
	sr.accum[0] = create("bloom accumulation 0", bw, bh)
	sr.accum[1] = create("bloom accumulation 1", bw, bh)
	if err != nil {
		return err
	}

	bind := func(p bind_group_provider.BindGroupProvider, pass postfx.Pass, views ...RenderTarget) error {
		for i, t := range views {
			p.SetSharedTextureView(bindingPostSource+i, t.View())
		}
		return sr.renderer.InitBindGroup(p, sr.postShaders[pass].BindGroupLayoutDescriptor(0), nil, nil)
	}
	if err := bind(sr.threshold, postfx.PassThreshold, sr.bright); err != nil {
		return err
	}
	if err := bind(sr.blurH, postfx.PassBlur, sr.blurA); err != nil {
		return err
	}
	if err := bind(sr.blurV, postfx.PassBlur, sr.blurB); err != nil {
		return err
	}
	for i := range 2 {
		if err := bind(sr.afterimage[i], postfx.PassAfterimage, sr.blurA, sr.accum[previous(i)]); err != nil {
			return err
		}
		if err := bind(sr.combine[i], postfx.PassCombine, sr.base, sr.accum[i]); err != nil {
			return err
		}
	}

	sr.width, sr.height = w, h
	sr.history = pingPong{}
	// New accumulation targets hold undefined data until cleared.
	sr.ClearBloom()
	return nil
}

func (sr *sceneRenderer) Sized() bool {
	return sr.base != nil && sr.width == sr.renderer.Width() && sr.height == sr.renderer.Height()
}

func (sr *sceneRenderer) Prepare(s scene.Scene) error {
	sr.lights = s.Lights()
	var errs []error
	for _, n := range s.Renderables() {
		if !n.Drawable() {
			continue
		}
		if err := sr.ensure(n); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// ensure creates the GPU resources n needs for a draw with its current material.
func (sr *sceneRenderer) ensure(n *scene.Node) error {
	if err := sr.ensureMesh(n.Mesh); err != nil {
		return fmt.Errorf("%s: mesh: %w", n.Name, err)
	}
	if err := sr.ensureMaterial(n.Material); err != nil {
		return fmt.Errorf("%s: material: %w", n.Name, err)
	}
	if _, err := sr.nodeProvider(n); err != nil {
		return fmt.Errorf("%s: node: %w", n.Name, err)
	}
	return nil
}

func (sr *sceneRenderer) ensureMesh(m *geometry.Mesh) error {
	if m.BindGroupProvider() != nil {
		return nil
	}
	p := bind_group_provider.NewBindGroupProvider("mesh " + m.Name)
	if err := sr.renderer.InitMeshBuffers(p, m.VertexBytes(), m.IndexBytes(), len(m.Indices), m.EdgeBytes(), len(m.Edges)); err != nil {
		p.Release()
		return err
	}
	m.SetBindGroupProvider(p)
	sr.meshes = append(sr.meshes, m)
	return nil
}

func (sr *sceneRenderer) ensureMaterial(m material.Material) error {
	if m.BindGroupProvider() != nil {
		return nil
	}
	p := bind_group_provider.NewBindGroupProvider("material " + m.Name())

	sampler := common.SamplerStagingData{}
	for slot := common.TextureSlot(0); slot < common.TextureSlotCount; slot++ {
		staging := sr.defaults[slot]
		if tex := m.Texture(slot); tex != nil {
			if tex.Staged != nil {
				staging = *tex.Staged
			} else {
				log.Printf("[SceneRenderer] texture %s of material %s is not loaded, using the default", tex.Name, m.Name())
			}
			if tex.SamplerData != nil {
				sampler = *tex.SamplerData
			}
		}
		if err := sr.renderer.InitTextureView(p, int(slot)+1, staging); err != nil {
			p.Release()
			return fmt.Errorf("%s texture: %w", slot, err)
		}
	}
	if err := sr.renderer.InitSampler(p, bindingMaterialSampler, sampler); err != nil {
		p.Release()
		return err
	}
	if err := sr.renderer.InitBindGroup(p, sr.meshShader.BindGroupLayoutDescriptor(groupMaterial), nil, nil); err != nil {
		p.Release()
		return err
	}

	m.SetBindGroupProvider(p)
	m.SetPipelineKey(PipelineKeyFor(m))
	sr.materials = append(sr.materials, m)
	return nil
}

// nodeProvider returns the group 2 provider of n, creating it on first use. Instanced nodes keep it on their
// instance buffer; other nodes get a single identity instance.
func (sr *sceneRenderer) nodeProvider(n *scene.Node) (bind_group_provider.BindGroupProvider, error) {
	if n.Has(scene.TagInstanced) && n.Instances != nil {
		if p := n.Instances.BindGroupProvider(); p != nil {
			return p, nil
		}
		p := bind_group_provider.NewBindGroupProvider("instances " + n.Name)
		size := map[int]uint64{bindingNodeInstances: uint64(n.Instances.Capacity() * instanceStride)}
		if err := sr.renderer.InitBindGroup(p, sr.meshShader.BindGroupLayoutDescriptor(groupNode), nil, size); err != nil {
			p.Release()
			return nil, err
		}
		n.Instances.SetBindGroupProvider(p)
		n.Instances.MarkDirty()
		sr.instanced = append(sr.instanced, p)
		return p, nil
	}

	if p, ok := sr.nodes[n]; ok {
		return p, nil
	}
	p := bind_group_provider.NewBindGroupProvider("node " + n.Name)
	size := map[int]uint64{bindingNodeInstances: instanceStride}
	if err := sr.renderer.InitBindGroup(p, sr.meshShader.BindGroupLayoutDescriptor(groupNode), nil, size); err != nil {
		p.Release()
		return nil, err
	}
	var identity GPUNodeUniform
	common.Identity(identity.World[:])
	sr.renderer.WriteBuffers([]bind_group_provider.BufferWrite{{Provider: p, Binding: bindingNodeInstances, Data: identity.Marshal()}})
	sr.nodes[n] = p
	return p, nil
}

// frameUniform collects the camera and the scene lights. Ambient lights sum; point lights beyond
// MaxPointLights are dropped.
func (sr *sceneRenderer) frameUniform() GPUFrameUniform {
	u := GPUFrameUniform{Camera: sr.camera.Uniform()}
	count := 0
	for _, n := range sr.lights {
		l := n.Light
		switch l.Kind {
		case scene.LightAmbient:
			for i := range 3 {
				u.Ambient[i] += l.Color[i] * l.Intensity
			}
		case scene.LightPoint:
			if count == MaxPointLights {
				continue
			}
			p := n.WorldPosition()
			u.Lights[count] = GPUPointLight{
				Position: [4]float32{p.X, p.Y, p.Z, l.Intensity},
				Color:    [4]float32{l.Color[0], l.Color[1], l.Color[2], 0},
			}
			count++
		}
	}
	u.Ambient[3] = float32(count)
	return u
}

// upload writes the frame uniform, dirty material uniforms, node world matrices and dirty instance buffers.
func (sr *sceneRenderer) upload(renderables []*scene.Node) error {
	frame := sr.frameUniform()
	writes := []bind_group_provider.BufferWrite{{Provider: sr.frame, Binding: bindingFrame, Data: frame.Marshal()}}

	for _, n := range renderables {
		if !n.Drawable() {
			continue
		}
		if err := sr.ensure(n); err != nil {
			return err
		}

		if m := n.Material; m.Dirty() {
			params := m.Params()
			writes = append(writes, bind_group_provider.BufferWrite{Provider: m.BindGroupProvider(), Binding: bindingMaterialParams, Data: params.Marshal()})
			m.ClearDirty()
			sr.stats.MaterialUploads++
		}

		p, _ := sr.nodeProvider(n)
		var world GPUNodeUniform
		copy(world.World[:], n.World())
		writes = append(writes, bind_group_provider.BufferWrite{Provider: p, Binding: bindingNodeWorld, Data: world.Marshal()})

		if n.Has(scene.TagInstanced) && n.Instances != nil && n.Instances.Dirty() {
			writes = append(writes, bind_group_provider.BufferWrite{Provider: p, Binding: bindingNodeInstances, Data: n.Instances.Bytes()})
			n.Instances.ClearDirty()
			sr.stats.InstanceUploads++
		}
	}

	sr.renderer.WriteBuffers(writes)
	return nil
}

// draw encodes one draw per drawable renderable into the open pass.
func (sr *sceneRenderer) draw(renderables []*scene.Node) error {
	for _, n := range renderables {
		if !n.Drawable() {
			continue
		}
		count := uint32(1)
		if n.Has(scene.TagInstanced) && n.Instances != nil {
			count = uint32(n.Instances.Capacity())
		}
		nodeProvider, err := sr.nodeProvider(n)
		if err != nil {
			return err
		}
		bindGroups := []bind_group_provider.BindGroupProvider{sr.frame, n.Material.BindGroupProvider(), nodeProvider}
		if err := sr.renderer.DrawCall(n.Material.PipelineKey(), n.Mesh.BindGroupProvider(), count, bindGroups); err != nil {
			return fmt.Errorf("%s: %w", n.Name, err)
		}
		sr.stats.DrawCalls++
	}
	return nil
}

// record runs fn inside one frame. The frame is always ended so a failed pass leaves no open encoder.
func (sr *sceneRenderer) record(fn func() error) error {
	if err := sr.renderer.BeginFrame(); err != nil {
		return err
	}
	err := fn()
	return errors.Join(err, sr.renderer.EndFrame())
}

// fullscreen encodes one post-process pass writing target.
func (sr *sceneRenderer) fullscreen(label string, target RenderTarget, pass postfx.Pass, bindGroup bind_group_provider.BindGroupProvider) error {
	if err := sr.renderer.BeginPass(PassDescriptor{Label: label, Target: target, Clear: &wgpu.Color{A: 1}}); err != nil {
		return err
	}
	defer sr.renderer.EndPass()
	return sr.renderer.DrawFullscreen(pass.PipelineKey(), []bind_group_provider.BindGroupProvider{bindGroup})
}

func (sr *sceneRenderer) RenderBright(renderables []*scene.Node, p compositor.BloomParams) error {
	if !sr.Sized() {
		return compositor.ErrNotSized
	}
	if err := sr.upload(renderables); err != nil {
		return err
	}

	next := sr.history.next()
	threshold := postfx.ThresholdParams(p.Threshold)
	h, v := postfx.BlurParams(sr.blurA.Width(), sr.blurA.Height(), p.Radius, p.Strength)
	damp := postfx.AfterimageParams(p.Damp)
	sr.renderer.WriteBuffers([]bind_group_provider.BufferWrite{
		{Provider: sr.threshold, Binding: bindingPostParams, Data: threshold.Marshal()},
		{Provider: sr.blurH, Binding: bindingPostParams, Data: h.Marshal()},
		{Provider: sr.blurV, Binding: bindingPostParams, Data: v.Marshal()},
		{Provider: sr.afterimage[next], Binding: bindingPostParams, Data: damp.Marshal()},
	})

	err := sr.record(func() error {
		if err := sr.renderer.BeginPass(PassDescriptor{Label: "bright", Target: sr.bright, Clear: &wgpu.Color{A: 1}, Scene: true}); err != nil {
			return err
		}
		if err := sr.draw(renderables); err != nil {
			sr.renderer.EndPass()
			return err
		}
		sr.renderer.EndPass()

		if err := sr.fullscreen("bloom threshold", sr.blurA, postfx.PassThreshold, sr.threshold); err != nil {
			return err
		}
		if err := sr.fullscreen("bloom blur horizontal", sr.blurB, postfx.PassBlur, sr.blurH); err != nil {
			return err
		}
		if err := sr.fullscreen("bloom blur vertical", sr.blurA, postfx.PassBlur, sr.blurV); err != nil {
			return err
		}
		return sr.fullscreen("bloom afterimage", sr.accum[next], postfx.PassAfterimage, sr.afterimage[next])
	})
	if err != nil {
		return err
	}
	sr.history.advance()
	sr.stats.BrightPasses++
	return nil
}

func (sr *sceneRenderer) ClearBloom() {
	if sr.base == nil {
		return
	}
	err := sr.record(func() error {
		for _, t := range sr.accum {
			if err := sr.renderer.BeginPass(PassDescriptor{Label: "bloom clear", Target: t, Clear: &wgpu.Color{A: 1}}); err != nil {
				return err
			}
			sr.renderer.EndPass()
		}
		return nil
	})
	if err != nil {
		log.Printf("[SceneRenderer] failed to clear bloom: %v", err)
	}
}

func (sr *sceneRenderer) BloomTarget() compositor.Target {
	return sr.accum[sr.history.current]
}

func (sr *sceneRenderer) RenderBase(renderables []*scene.Node, p compositor.OutputParams) error {
	if !sr.Sized() {
		return compositor.ErrNotSized
	}
	if err := sr.upload(renderables); err != nil {
		return err
	}

	bg := p.Background
	background := &wgpu.Color{R: float64(bg[0]), G: float64(bg[1]), B: float64(bg[2]), A: 1}
	err := sr.record(func() error {
		if err := sr.renderer.BeginPass(PassDescriptor{Label: "base", Target: sr.base, Clear: background, Scene: true}); err != nil {
			return err
		}
		defer sr.renderer.EndPass()
		return sr.draw(renderables)
	})
	if err != nil {
		return err
	}
	sr.stats.BasePasses++
	return nil
}

func (sr *sceneRenderer) Combine(bloom compositor.Target, p compositor.OutputParams) error {
	if !sr.Sized() {
		return compositor.ErrNotSized
	}
	index := -1
	for i, t := range sr.accum {
		if compositor.Target(t) == bloom {
			index = i
		}
	}
	if index < 0 {
		return fmt.Errorf("combine: bloom target is not owned by this renderer")
	}

	params := postfx.CombineParams(p.Exposure, p.ToneMapping.Index(), sr.renderer.SurfaceFormat())
	sr.renderer.WriteBuffers([]bind_group_provider.BufferWrite{
		{Provider: sr.combine[index], Binding: bindingPostParams, Data: params.Marshal()},
	})

	err := sr.record(func() error {
		if err := sr.renderer.BeginPass(PassDescriptor{Label: "combine", Clear: &wgpu.Color{A: 1}}); err != nil {
			return err
		}
		defer sr.renderer.EndPass()
		return sr.renderer.DrawFullscreen(postfx.PassCombine.PipelineKey(), []bind_group_provider.BindGroupProvider{sr.combine[index]})
	})
	if err != nil {
		return err
	}
	sr.renderer.Present()
	return nil
}

func (sr *sceneRenderer) Stats() RenderStats {
	return sr.stats
}

func (sr *sceneRenderer) Release() {
	sr.releaseTargets()
	for _, p := range sr.postProviders() {
		if p != nil {
			p.Release()
		}
	}
	for _, m := range sr.materials {
		m.BindGroupProvider().Release()
		m.SetBindGroupProvider(nil)
	}
	for _, m := range sr.meshes {
		m.BindGroupProvider().Release()
		m.SetBindGroupProvider(nil)
	}
	for _, p := range sr.instanced {
		p.Release()
	}
	for n, p := range sr.nodes {
		p.Release()
		delete(sr.nodes, n)
	}
	if sr.frame != nil {
		sr.frame.Release()
	}
	sr.materials, sr.meshes, sr.instanced = nil, nil, nil
}

// pingPong tracks which of the two accumulation targets holds the latest afterimage. Each bright pass writes
// into the other target while sampling the latest one, then makes its output the latest.
type pingPong struct {
	current int
}

// next returns the accumulation target the coming afterimage pass writes into.
func (p pingPong) next() int {
	return previous(p.current)
}

func (p *pingPong) advance() {
	p.current = p.next()
}

// previous returns the accumulation target sampled by an afterimage pass writing into dst.
func previous(dst int) int {
	return 1 - dst
}
