package scene

import (
	"testing"

	"cogentcore.org/core/math32"
	"github.com/Carmen-Shannon/oxy-moon/engine/geometry"
	"github.com/Carmen-Shannon/oxy-moon/engine/renderer/instance"
	"github.com/Carmen-Shannon/oxy-moon/engine/renderer/material"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mesh(name string, tags ...Tag) *Node {
	n := NewNode(name, append([]Tag{TagRenderable}, tags...)...)
	n.Material = material.NewMaterial(material.WithName(name))
	n.Mesh = geometry.Plane(1, 1, 1, 1)
	return n
}

func TestFreezeCollectsRenderablesInOrder(t *testing.T) {
	s := NewScene("moon")
	group := NewNode("satellite")
	group.Add(mesh("cells", TagNoBloom), mesh("body", TagNoBloom))
	sun := NewNode("sun", TagLight)
	sun.Light = &Light{Kind: LightPoint, Color: [3]float32{1, 1, 1}, Intensity: 3}
	group.Add(sun)
	s.Add(mesh("moon", TagNoBloom), group, mesh("stars", TagBloom, TagInstanced))

	require.NoError(t, s.Freeze())
	assert.True(t, s.Frozen())

	var names []string
	for _, n := range s.Renderables() {
		names = append(names, n.Name)
	}
	assert.Equal(t, []string{"moon", "cells", "body", "stars"}, names)
	require.Len(t, s.Lights(), 1)
	assert.Equal(t, "sun", s.Lights()[0].Name)
}

func TestFreezeRejectsUnclassified(t *testing.T) {
	s := NewScene("moon")
	group := NewNode("satellite")
	group.Add(mesh("body"))
	s.Add(group, mesh("both", TagBloom, TagNoBloom), mesh("ok", TagBloom))

	err := s.Freeze()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnclassified)
	assert.Contains(t, err.Error(), "moon/satellite/body")
	assert.Contains(t, err.Error(), "moon/both")
	assert.NotContains(t, err.Error(), "moon/ok")
	assert.False(t, s.Frozen())
	assert.Nil(t, s.Renderables())
}

func TestAddAfterFreezePanics(t *testing.T) {
	s := NewScene("moon", WithNodes(mesh("moon", TagNoBloom)))
	require.NoError(t, s.Freeze())
	assert.Panics(t, func() { s.Add(NewNode("late")) })
}

func TestGroupNodesAreNotRenderable(t *testing.T) {
	g := NewNode("group")
	assert.False(t, g.Drawable())
	assert.False(t, g.BloomMember())

	r := NewNode("no-material", TagRenderable, TagNoBloom)
	assert.False(t, r.Drawable())
	assert.True(t, mesh("m", TagBloom).Drawable())
}

func TestUpdateWorldComposesParents(t *testing.T) {
	parent := NewNode("satellite")
	parent.Position = math32.Vec3(3, 0, 12)
	parent.Scale = math32.Vec3(0.6, 0.6, 0.6)
	child := NewNode("sun")
	child.Position = math32.Vec3(20, 5, 30)
	parent.Add(child)

	UpdateWorld(parent)
	p := child.WorldPosition()
	assert.InDelta(t, 3+20*0.6, p.X, 1e-4)
	assert.InDelta(t, 5*0.6, p.Y, 1e-4)
	assert.InDelta(t, 12+30*0.6, p.Z, 1e-4)
}

func TestUpdateWorldAppliesRotation(t *testing.T) {
	root := NewNode("moon")
	root.Rotation = math32.Vec3(0, math32.Pi/2, 0)
	child := NewNode("satellite")
	child.Position = math32.Vec3(0, 0, 1)
	root.Add(child)

	UpdateWorld(root)
	p := child.WorldPosition()
	// Yaw by +90 degrees maps +Z onto +X.
	assert.InDelta(t, 1, p.X, 1e-5)
	assert.InDelta(t, 0, p.Z, 1e-5)
}

func TestTraverseSkipsChildren(t *testing.T) {
	root := NewNode("root")
	a := NewNode("a")
	a.Add(NewNode("a1"))
	root.Add(a, NewNode("b"))

	var seen []string
	Traverse(root, func(n *Node) bool {
		seen = append(seen, n.Name)
		return n.Name != "a"
	})
	assert.Equal(t, []string{"root", "a", "b"}, seen)

	assert.Len(t, Collect(root, 0), 4)
	Traverse(nil, func(*Node) bool { t.Fatal("visited nil"); return true })
}

func TestInstanceCount(t *testing.T) {
	n := mesh("stars", TagBloom, TagInstanced)
	assert.Equal(t, 1, n.InstanceCount())
	n.Instances = instance.NewInstanceBuffer(70)
	assert.Equal(t, 70, n.InstanceCount())

	plain := mesh("moon", TagNoBloom)
	plain.Instances = instance.NewInstanceBuffer(3)
	assert.Equal(t, 1, plain.InstanceCount())
}
