// Package scene holds the scene graph: plain node records with capability tags, free traversal functions,
// and the frozen per-frame renderable list the compositor indexes into.
package scene

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnclassified is returned by Freeze for a renderable node that is neither a bloom member nor explicitly
// excluded from bloom, or that is both.
var ErrUnclassified = errors.New("renderable has no bloom classification")

// scene is the implementation of the Scene interface.
type scene struct {
	name   string
	root   *Node
	frozen bool

	renderables []*Node
	lights      []*Node
}

// Scene owns a node tree and, once frozen, the ordered list of renderables. A renderable's position in that
// list is its stable handle for the lifetime of the scene.
//
// The node set must not change structurally after Freeze; transforms and materials may. A Scene is owned by
// the render goroutine and is not safe for concurrent use.
type Scene interface {
	// Name returns the scene's identifier.
	Name() string

	// Root returns the root group node.
	Root() *Node

	// Add attaches nodes under the root. Panics after Freeze.
	//
	// Parameters:
	//   - nodes: the nodes to attach
	Add(nodes ...*Node)

	// Freeze validates the tree and builds the renderable and light lists. Every renderable must carry exactly
	// one of TagBloom or TagNoBloom.
	//
	// Returns:
	//   - error: an error wrapping ErrUnclassified for each offending node, joined
	Freeze() error

	// Frozen reports whether Freeze succeeded.
	Frozen() bool

	// Renderables returns the frozen renderable list in traversal order. Nodes tagged renderable but lacking a
	// material or mesh are included; consumers skip them.
	//
	// Returns:
	//   - []*Node: the renderables, nil before Freeze
	Renderables() []*Node

	// Lights returns the frozen light nodes.
	//
	// Returns:
	//   - []*Node: nodes carrying TagLight and a Light
	Lights() []*Node

	// UpdateWorld recomputes every world matrix. Called once per tick after animation.
	UpdateWorld()
}

var _ Scene = &scene{}

// NewScene creates an empty scene.
//
// Parameters:
//   - name: the name of the scene
//   - options: functional options to further configure the scene
//
// Returns:
//   - Scene: the newly created scene
func NewScene(name string, options ...SceneBuilderOption) Scene {
	s := &scene{
		name: name,
		root: NewNode(name),
	}
	for _, option := range options {
		option(s)
	}
	return s
}

func (s *scene) Name() string {
	return s.name
}

func (s *scene) Root() *Node {
	return s.root
}

func (s *scene) Add(nodes ...*Node) {
	if s.frozen {
		panic(fmt.Sprintf("scene: %s is frozen, cannot add nodes", s.name))
	}
	s.root.Add(nodes...)
}

func (s *scene) Freeze() error {
	var errs []error
	var renderables, lights []*Node

	var walk func(n *Node, path []string)
	walk = func(n *Node, path []string) {
		path = append(path, n.Name)
		if n.Has(TagRenderable) {
			bloom, noBloom := n.Has(TagBloom), n.Has(TagNoBloom)
			if bloom == noBloom {
				errs = append(errs, fmt.Errorf("%w: %s", ErrUnclassified, strings.Join(path, "/")))
			}
			renderables = append(renderables, n)
		}
		if n.Has(TagLight) && n.Light != nil {
			lights = append(lights, n)
		}
		for _, c := range n.Children {
			walk(c, path)
		}
	}
	walk(s.root, nil)

	if err := errors.Join(errs...); err != nil {
		return err
	}
	s.renderables = renderables
	s.lights = lights
	s.frozen = true
	s.UpdateWorld()
	return nil
}

func (s *scene) Frozen() bool {
	return s.frozen
}

func (s *scene) Renderables() []*Node {
	return s.renderables
}

func (s *scene) Lights() []*Node {
	return s.lights
}

func (s *scene) UpdateWorld() {
	UpdateWorld(s.root)
}
