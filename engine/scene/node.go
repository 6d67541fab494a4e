package scene

import (
	"cogentcore.org/core/math32"
	"github.com/Carmen-Shannon/oxy-moon/common"
	"github.com/Carmen-Shannon/oxy-moon/engine/geometry"
	"github.com/Carmen-Shannon/oxy-moon/engine/renderer/instance"
	"github.com/Carmen-Shannon/oxy-moon/engine/renderer/material"
)

// Tag is a capability bit set on a Node. Behavior is selected by tags, not by node type.
type Tag uint16

const (
	// TagRenderable marks a node that is drawn. It must also carry exactly one of TagBloom or TagNoBloom.
	TagRenderable Tag = 1 << iota
	// TagBloom marks a renderable that keeps its own material in the bloom pass, so it glows.
	TagBloom
	// TagNoBloom marks a renderable that is blacked out in the bloom pass.
	TagNoBloom
	// TagLight marks a node carrying a Light.
	TagLight
	// TagInstanced marks a renderable drawn once per slot of its instance buffer.
	TagInstanced
)

// LightKind selects how a Light contributes to shading.
type LightKind int

const (
	// LightAmbient adds a constant term to every lit surface.
	LightAmbient LightKind = iota
	// LightPoint shines from the node's world position.
	LightPoint
)

// Light is the light source carried by a TagLight node.
type Light struct {
	Kind      LightKind
	Color     [3]float32
	Intensity float32
}

// Node is a plain scene graph record: a local transform, children, capability tags and the optional
// payloads those tags refer to. Nodes without TagRenderable (groups, lights) carry no material.
type Node struct {
	Name string

	Position math32.Vector3
	// Rotation holds Euler angles in radians applied Y * X * Z.
	Rotation math32.Vector3
	Scale    math32.Vector3

	Tags Tag

	Material  material.Material
	Mesh      *geometry.Mesh
	Instances instance.InstanceBuffer
	Light     *Light

	Children []*Node

	world [16]float32
}

// NewNode creates a node with unit scale and the given tags.
//
// Parameters:
//   - name: the node name
//   - tags: capability tags
//
// Returns:
//   - *Node: the node
func NewNode(name string, tags ...Tag) *Node {
	n := &Node{Name: name, Scale: math32.Vec3(1, 1, 1)}
	for _, t := range tags {
		n.Tags |= t
	}
	common.Identity(n.world[:])
	return n
}

// Add appends children and returns n for chaining.
func (n *Node) Add(children ...*Node) *Node {
	n.Children = append(n.Children, children...)
	return n
}

// Has reports whether every bit of t is set on the node.
func (n *Node) Has(t Tag) bool {
	return n.Tags&t == t
}

// Drawable reports whether the node is renderable and has something to draw with.
func (n *Node) Drawable() bool {
	return n.Has(TagRenderable) && n.Material != nil && n.Mesh != nil
}

// BloomMember reports whether the node glows.
func (n *Node) BloomMember() bool {
	return n.Has(TagBloom)
}

// InstanceCount returns the number of draws issued for the node.
func (n *Node) InstanceCount() int {
	if n.Has(TagInstanced) && n.Instances != nil {
		return n.Instances.Capacity()
	}
	return 1
}

// World returns the node's world matrix as computed by the last UpdateWorld. The slice aliases the node.
func (n *Node) World() []float32 {
	return n.world[:]
}

// WorldPosition returns the translation part of the world matrix.
func (n *Node) WorldPosition() math32.Vector3 {
	return math32.Vec3(n.world[12], n.world[13], n.world[14])
}
