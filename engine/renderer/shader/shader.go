// Package shader reflects WGSL modules: entry points, vertex input layouts and bind group layouts are read
// from the source so pipelines and bind groups never repeat what the shader already declares.
package shader

import (
	"fmt"
	"io/fs"
	"sort"

	"github.com/cogentcore/webgpu/wgpu"
)

// shader is the implementation of the Shader interface.
type shader struct {
	key    string
	source string

	vertexEntry   string
	fragmentEntry string

	vertexLayouts              []wgpu.VertexBufferLayout
	bindGroupLayoutDescriptors map[int]wgpu.BindGroupLayoutDescriptor
	bindingVarNames            map[int]map[int]string
}

// Shader is a parsed WGSL module holding a vertex and a fragment entry point.
type Shader interface {
	// Key returns the unique identifier of the shader.
	//
	// Returns:
	//   - string: the shader key
	Key() string

	// Source returns the WGSL source.
	//
	// Returns:
	//   - string: the WGSL source
	Source() string

	// VertexEntryPoint returns the name of the @vertex function, or "" if none is declared.
	VertexEntryPoint() string

	// FragmentEntryPoint returns the name of the @fragment function, or "" if none is declared.
	FragmentEntryPoint() string

	// VertexLayouts returns one buffer layout per vertex input struct, in declaration order. Structs mixing
	// @location with @builtin fields are outputs and are not included.
	//
	// Returns:
	//   - []wgpu.VertexBufferLayout: the vertex buffer layouts
	VertexLayouts() []wgpu.VertexBufferLayout

	// BindGroupLayoutDescriptor returns the layout of one bind group. Every entry is visible to both stages.
	//
	// Parameters:
	//   - group: the @group index
	//
	// Returns:
	//   - wgpu.BindGroupLayoutDescriptor: the layout, empty if the group is not declared
	BindGroupLayoutDescriptor(group int) wgpu.BindGroupLayoutDescriptor

	// BindGroupLayoutDescriptors returns every declared bind group layout keyed by group index.
	BindGroupLayoutDescriptors() map[int]wgpu.BindGroupLayoutDescriptor

	// GroupCount returns one past the highest declared group index.
	GroupCount() int

	// BindGroupVarName returns the variable declared at group and binding, or "".
	BindGroupVarName(group, binding int) string
}

var _ Shader = &shader{}

// NewShader parses source and returns the reflected Shader.
//
// Parameters:
//   - key: the unique identifier for the shader
//   - source: the WGSL source
//
// Returns:
//   - Shader: the parsed shader
func NewShader(key, source string) Shader {
	s := &shader{
		key:           key,
		source:        source,
		vertexEntry:   parseEntryPoint(source, vertexEntryRegex),
		fragmentEntry: parseEntryPoint(source, fragmentEntryRegex),
		vertexLayouts: parseVertexLayouts(source),
	}
	s.bindGroupLayoutDescriptors, s.bindingVarNames = parseBindGroupLayouts(key, source, wgpu.ShaderStageVertex|wgpu.ShaderStageFragment)
	return s
}

// LoadShader reads a WGSL file from fsys and parses it.
//
// Parameters:
//   - key: the unique identifier for the shader
//   - fsys: the file system holding the source, typically an embed.FS
//   - path: the path of the WGSL file within fsys
//
// Returns:
//   - Shader: the parsed shader
//   - error: error if the file cannot be read or declares no entry point
func LoadShader(key string, fsys fs.FS, path string) (Shader, error) {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read shader %s: %w", path, err)
	}
	s := NewShader(key, string(data))
	if s.VertexEntryPoint() == "" && s.FragmentEntryPoint() == "" {
		return nil, fmt.Errorf("shader %s declares no entry point", path)
	}
	return s, nil
}

func (s *shader) Key() string {
	return s.key
}

func (s *shader) Source() string {
	return s.source
}

func (s *shader) VertexEntryPoint() string {
	return s.vertexEntry
}

func (s *shader) FragmentEntryPoint() string {
	return s.fragmentEntry
}

func (s *shader) VertexLayouts() []wgpu.VertexBufferLayout {
	return s.vertexLayouts
}

func (s *shader) BindGroupLayoutDescriptor(group int) wgpu.BindGroupLayoutDescriptor {
	return s.bindGroupLayoutDescriptors[group]
}

func (s *shader) BindGroupLayoutDescriptors() map[int]wgpu.BindGroupLayoutDescriptor {
	return s.bindGroupLayoutDescriptors
}

func (s *shader) GroupCount() int {
	groups := make([]int, 0, len(s.bindGroupLayoutDescriptors))
	for g := range s.bindGroupLayoutDescriptors {
		groups = append(groups, g)
	}
	if len(groups) == 0 {
		return 0
	}
	sort.Ints(groups)
	return groups[len(groups)-1] + 1
}

func (s *shader) BindGroupVarName(group, binding int) string {
	return s.bindingVarNames[group][binding]
}
