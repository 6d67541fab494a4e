package bind_group_provider

import (
	"github.com/cogentcore/webgpu/wgpu"
)

// bindGroupProvider is the unexported implementation of BindGroupProvider.
type bindGroupProvider struct {
	// label prefixes the debug labels of every GPU object created for this provider.
	label string

	// GPU objects below are created by the Renderer and owned by the provider unless noted otherwise.

	bindGroup       *wgpu.BindGroup
	bindGroupLayout *wgpu.BindGroupLayout
	buffers         map[int]*wgpu.Buffer
	textures        map[int]*wgpu.Texture
	textureViews    map[int]*wgpu.TextureView
	// shared marks texture views owned elsewhere (default textures, render targets). Release skips them.
	shared   map[int]bool
	samplers map[int]*wgpu.Sampler

	// Mesh providers additionally hold geometry buffers.

	vertexBuffer *wgpu.Buffer
	indexBuffer  *wgpu.Buffer
	indexCount   int
	// edgeBuffer holds line-list indices drawn by wireframe pipelines.
	edgeBuffer *wgpu.Buffer
	edgeCount  int
}

// BindGroupProvider holds the GPU resources behind one bind group, or behind one mesh's geometry buffers.
// Components (meshes, materials, instance buffers, the frame uniform, post-process passes) each own a provider;
// the Renderer fills it in on initialization and reads it back at draw time.
//
// Usage pattern:
//  1. Component creates a provider with a label
//  2. Renderer.InitTextureView / InitSampler stage any texture and sampler bindings
//  3. Renderer.InitBindGroup creates the buffers and the bind group
//  4. Renderer.WriteBuffers updates uniform and storage data
//  5. Draw calls read BindGroup()
type BindGroupProvider interface {
	// Release releases every GPU object the provider owns. Shared texture views are left alone.
	Release()

	// ReleaseBindGroup releases only the bind group, so the next InitBindGroup rebuilds it against the
	// current texture views. Used when a render target is recreated on resize.
	ReleaseBindGroup()

	// Label returns the debug label for this provider.
	//
	// Returns:
	//   - string: the debug label
	Label() string

	// BindGroup returns the created bind group, or nil before InitBindGroup.
	//
	// Returns:
	//   - *wgpu.BindGroup: the bind group or nil
	BindGroup() *wgpu.BindGroup

	// BindGroupLayout returns the created bind group layout, or nil before InitBindGroup.
	//
	// Returns:
	//   - *wgpu.BindGroupLayout: the bind group layout or nil
	BindGroupLayout() *wgpu.BindGroupLayout

	// Buffer returns the buffer at binding, or nil.
	//
	// Parameters:
	//   - binding: the binding index
	//
	// Returns:
	//   - *wgpu.Buffer: the buffer or nil
	Buffer(binding int) *wgpu.Buffer

	// TextureView returns the texture view at binding, or nil.
	//
	// Parameters:
	//   - binding: the binding index
	//
	// Returns:
	//   - *wgpu.TextureView: the texture view or nil
	TextureView(binding int) *wgpu.TextureView

	// Sampler returns the sampler at binding, or nil.
	//
	// Parameters:
	//   - binding: the binding index
	//
	// Returns:
	//   - *wgpu.Sampler: the sampler or nil
	Sampler(binding int) *wgpu.Sampler

	// VertexBuffer returns the GPU vertex buffer, or nil if not initialized.
	VertexBuffer() *wgpu.Buffer

	// IndexBuffer returns the GPU triangle index buffer, or nil if not initialized.
	IndexBuffer() *wgpu.Buffer

	// IndexCount returns the number of triangle indices.
	IndexCount() int

	// EdgeBuffer returns the GPU line-list index buffer, or nil if the mesh has no edges.
	EdgeBuffer() *wgpu.Buffer

	// EdgeCount returns the number of line-list indices.
	EdgeCount() int

	// SetBindGroup stores the bind group. Called by Renderer.InitBindGroup.
	SetBindGroup(bg *wgpu.BindGroup)

	// SetBindGroupLayout stores the bind group layout. Called by Renderer.InitBindGroup.
	SetBindGroupLayout(bgl *wgpu.BindGroupLayout)

	// SetBuffer stores a buffer at binding.
	//
	// Parameters:
	//   - binding: the binding index
	//   - buf: the buffer
	SetBuffer(binding int, buf *wgpu.Buffer)

	// SetTexture stores an owned texture and its view at binding. Any previous owned texture at the binding is
	// released.
	//
	// Parameters:
	//   - binding: the binding index
	//   - tex: the texture
	//   - tv: the view of tex
	SetTexture(binding int, tex *wgpu.Texture, tv *wgpu.TextureView)

	// SetSharedTextureView stores a texture view owned elsewhere at binding.
	//
	// Parameters:
	//   - binding: the binding index
	//   - tv: the texture view
	SetSharedTextureView(binding int, tv *wgpu.TextureView)

	// SetSampler stores a sampler at binding.
	//
	// Parameters:
	//   - binding: the binding index
	//   - s: the sampler
	SetSampler(binding int, s *wgpu.Sampler)

	// SetMeshBuffers stores the geometry buffers of a mesh provider.
	//
	// Parameters:
	//   - vertex: the vertex buffer
	//   - index: the triangle index buffer
	//   - indexCount: the number of triangle indices
	//   - edge: the line-list index buffer, may be nil
	//   - edgeCount: the number of line-list indices
	SetMeshBuffers(vertex, index *wgpu.Buffer, indexCount int, edge *wgpu.Buffer, edgeCount int)
}

// Compile-time check that bindGroupProvider implements BindGroupProvider
var _ BindGroupProvider = &bindGroupProvider{}

// NewBindGroupProvider creates an empty provider.
//
// Parameters:
//   - label: the debug label
//   - options: functional options
//
// Returns:
//   - BindGroupProvider: the provider
func NewBindGroupProvider(label string, options ...BindGroupProviderOption) BindGroupProvider {
	p := &bindGroupProvider{
		label:        label,
		buffers:      make(map[int]*wgpu.Buffer),
		textures:     make(map[int]*wgpu.Texture),
		textureViews: make(map[int]*wgpu.TextureView),
		shared:       make(map[int]bool),
		samplers:     make(map[int]*wgpu.Sampler),
	}
	for _, opt := range options {
		opt(p)
	}
	return p
}

func (p *bindGroupProvider) Label() string {
	return p.label
}

func (p *bindGroupProvider) BindGroup() *wgpu.BindGroup {
	return p.bindGroup
}

func (p *bindGroupProvider) BindGroupLayout() *wgpu.BindGroupLayout {
	return p.bindGroupLayout
}

func (p *bindGroupProvider) Buffer(binding int) *wgpu.Buffer {
	return p.buffers[binding]
}

func (p *bindGroupProvider) TextureView(binding int) *wgpu.TextureView {
	return p.textureViews[binding]
}

func (p *bindGroupProvider) Sampler(binding int) *wgpu.Sampler {
	return p.samplers[binding]
}

func (p *bindGroupProvider) VertexBuffer() *wgpu.Buffer {
	return p.vertexBuffer
}

func (p *bindGroupProvider) IndexBuffer() *wgpu.Buffer {
	return p.indexBuffer
}

func (p *bindGroupProvider) IndexCount() int {
	return p.indexCount
}

func (p *bindGroupProvider) EdgeBuffer() *wgpu.Buffer {
	return p.edgeBuffer
}

func (p *bindGroupProvider) EdgeCount() int {
	return p.edgeCount
}

func (p *bindGroupProvider) SetBindGroup(bg *wgpu.BindGroup) {
	p.bindGroup = bg
}

func (p *bindGroupProvider) SetBindGroupLayout(bgl *wgpu.BindGroupLayout) {
	p.bindGroupLayout = bgl
}

func (p *bindGroupProvider) SetBuffer(binding int, buf *wgpu.Buffer) {
	p.buffers[binding] = buf
}

func (p *bindGroupProvider) SetTexture(binding int, tex *wgpu.Texture, tv *wgpu.TextureView) {
	p.releaseTexture(binding)
	p.textures[binding] = tex
	p.textureViews[binding] = tv
	delete(p.shared, binding)
}

func (p *bindGroupProvider) SetSharedTextureView(binding int, tv *wgpu.TextureView) {
	p.releaseTexture(binding)
	p.textureViews[binding] = tv
	p.shared[binding] = true
}

func (p *bindGroupProvider) SetSampler(binding int, s *wgpu.Sampler) {
	p.samplers[binding] = s
}

func (p *bindGroupProvider) SetMeshBuffers(vertex, index *wgpu.Buffer, indexCount int, edge *wgpu.Buffer, edgeCount int) {
	p.vertexBuffer = vertex
	p.indexBuffer = index
	p.indexCount = indexCount
	p.edgeBuffer = edge
	p.edgeCount = edgeCount
}

// releaseTexture releases the owned texture and view at binding, if any.
func (p *bindGroupProvider) releaseTexture(binding int) {
	if p.shared[binding] {
		delete(p.textureViews, binding)
		return
	}
	if tv := p.textureViews[binding]; tv != nil {
		tv.Release()
		delete(p.textureViews, binding)
	}
	if tex := p.textures[binding]; tex != nil {
		tex.Release()
		delete(p.textures, binding)
	}
}

func (p *bindGroupProvider) ReleaseBindGroup() {
	if p.bindGroup != nil {
		p.bindGroup.Release()
		p.bindGroup = nil
	}
}

func (p *bindGroupProvider) Release() {
	p.ReleaseBindGroup()

	for binding := range p.textureViews {
		p.releaseTexture(binding)
	}
	for binding, s := range p.samplers {
		if s != nil {
			s.Release()
		}
		delete(p.samplers, binding)
	}
	for binding, buf := range p.buffers {
		if buf != nil {
			buf.Release()
		}
		delete(p.buffers, binding)
	}
	if p.bindGroupLayout != nil {
		p.bindGroupLayout.Release()
		p.bindGroupLayout = nil
	}
	for _, buf := range []*wgpu.Buffer{p.vertexBuffer, p.indexBuffer, p.edgeBuffer} {
		if buf != nil {
			buf.Release()
		}
	}
	p.SetMeshBuffers(nil, nil, 0, nil, 0)
}
