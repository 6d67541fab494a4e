package scene

import (
	"github.com/Carmen-Shannon/oxy-moon/common"
)

// Traverse visits root and its descendants depth-first, parents before children. Returning false from
// visit skips the node's children.
//
// Parameters:
//   - root: the first node visited
//   - visit: called once per node
func Traverse(root *Node, visit func(n *Node) bool) {
	if root == nil {
		return
	}
	if !visit(root) {
		return
	}
	for _, c := range root.Children {
		Traverse(c, visit)
	}
}

// Collect returns every node under root (inclusive) carrying all bits of mask, in traversal order.
//
// Parameters:
//   - root: the subtree to search
//   - mask: the required tags
//
// Returns:
//   - []*Node: matching nodes
func Collect(root *Node, mask Tag) []*Node {
	var out []*Node
	Traverse(root, func(n *Node) bool {
		if n.Has(mask) {
			out = append(out, n)
		}
		return true
	})
	return out
}

// UpdateWorld recomputes the world matrix of root and every descendant from their local transforms.
//
// Parameters:
//   - root: the subtree to update; its parent transform is taken as identity
func UpdateWorld(root *Node) {
	var identity [16]float32
	common.Identity(identity[:])
	updateWorld(root, identity[:])
}

func updateWorld(n *Node, parent []float32) {
	if n == nil {
		return
	}
	var local [16]float32
	common.BuildModelMatrix(local[:], n.Position, n.Rotation, n.Scale)
	common.Mul4(n.world[:], parent, local[:])
	for _, c := range n.Children {
		updateWorld(c, n.world[:])
	}
}
