// Package geometry builds the procedural meshes of the scene: torus, plane, box and extruded star outlines.
// Meshes are plain CPU-side data; the renderer uploads them once and keeps the GPU buffers on the mesh's provider.
package geometry

import (
	"encoding/binary"

	"cogentcore.org/core/math32"
	"github.com/Carmen-Shannon/oxy-moon/engine/renderer/bind_group_provider"
)

// Mesh is an indexed triangle list plus the deduplicated edge list used for wireframe drawing.
type Mesh struct {
	// Name identifies the mesh in logs and GPU labels.
	Name string
	// Vertices holds the vertex attributes.
	Vertices []GPUVertex
	// Indices is the triangle list, three indices per triangle, counter-clockwise front faces.
	Indices []uint32
	// Edges is the line list, two indices per unique triangle edge.
	Edges []uint32
	// Bounds is the model-space bounding box.
	Bounds math32.Box3

	provider bind_group_provider.BindGroupProvider
}

// VertexBytes returns the vertex data ready for GPU upload.
func (m *Mesh) VertexBytes() []byte {
	buf := make([]byte, len(m.Vertices)*48)
	for i := range m.Vertices {
		m.Vertices[i].marshalInto(buf[i*48 : (i+1)*48])
	}
	return buf
}

// IndexBytes returns the triangle indices as little-endian uint32 data.
func (m *Mesh) IndexBytes() []byte {
	return indexBytes(m.Indices)
}

// EdgeBytes returns the edge indices as little-endian uint32 data.
func (m *Mesh) EdgeBytes() []byte {
	return indexBytes(m.Edges)
}

// BindGroupProvider returns the provider holding the mesh's GPU buffers, or nil before upload.
func (m *Mesh) BindGroupProvider() bind_group_provider.BindGroupProvider {
	return m.provider
}

// SetBindGroupProvider stores the provider created by the renderer at upload time.
func (m *Mesh) SetBindGroupProvider(p bind_group_provider.BindGroupProvider) {
	m.provider = p
}

func indexBytes(idx []uint32) []byte {
	buf := make([]byte, len(idx)*4)
	for i, v := range idx {
		binary.LittleEndian.PutUint32(buf[i*4:], v)
	}
	return buf
}

// finish computes tangents, edges and bounds once positions, normals, UVs and indices are set.
func (m *Mesh) finish() *Mesh {
	m.computeTangents()
	m.buildEdges()
	m.Bounds.SetEmpty()
	for _, v := range m.Vertices {
		m.Bounds.ExpandByPoint(math32.Vec3(v.Position[0], v.Position[1], v.Position[2]))
	}
	return m
}

// buildEdges collects every unique triangle edge.
func (m *Mesh) buildEdges() {
	seen := make(map[uint64]struct{}, len(m.Indices))
	m.Edges = m.Edges[:0]
	for t := 0; t+2 < len(m.Indices); t += 3 {
		tri := [3]uint32{m.Indices[t], m.Indices[t+1], m.Indices[t+2]}
		for e := 0; e < 3; e++ {
			a, b := tri[e], tri[(e+1)%3]
			if a > b {
				a, b = b, a
			}
			key := uint64(a)<<32 | uint64(b)
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			m.Edges = append(m.Edges, a, b)
		}
	}
}

// computeTangents derives per-vertex tangents from the UV gradients of the adjacent triangles.
// Vertices without a usable UV gradient fall back to a tangent perpendicular to the normal.
func (m *Mesh) computeTangents() {
	tan := make([]math32.Vector3, len(m.Vertices))
	bit := make([]math32.Vector3, len(m.Vertices))

	for t := 0; t+2 < len(m.Indices); t += 3 {
		i0, i1, i2 := m.Indices[t], m.Indices[t+1], m.Indices[t+2]
		v0, v1, v2 := &m.Vertices[i0], &m.Vertices[i1], &m.Vertices[i2]

		e1 := vec(v1.Position).Sub(vec(v0.Position))
		e2 := vec(v2.Position).Sub(vec(v0.Position))
		du1, dv1 := v1.TexCoord[0]-v0.TexCoord[0], v1.TexCoord[1]-v0.TexCoord[1]
		du2, dv2 := v2.TexCoord[0]-v0.TexCoord[0], v2.TexCoord[1]-v0.TexCoord[1]

		det := du1*dv2 - du2*dv1
		if math32.Abs(det) < 1e-12 {
			continue
		}
		r := 1 / det
		sdir := e1.MulScalar(dv2).Sub(e2.MulScalar(dv1)).MulScalar(r)
		tdir := e2.MulScalar(du1).Sub(e1.MulScalar(du2)).MulScalar(r)
		for _, i := range []uint32{i0, i1, i2} {
			tan[i] = tan[i].Add(sdir)
			bit[i] = bit[i].Add(tdir)
		}
	}

	for i := range m.Vertices {
		n := vec(m.Vertices[i].Normal)
		t := tan[i]
		// Gram-Schmidt against the normal.
		t = t.Sub(n.MulScalar(n.Dot(t)))
		if t.Length() < 1e-6 {
			t = perpendicular(n)
		}
		t = t.Normal()
		w := float32(1)
		if n.Cross(t).Dot(bit[i]) < 0 {
			w = -1
		}
		m.Vertices[i].Tangent = [4]float32{t.X, t.Y, t.Z, w}
	}
}

func vec(a [3]float32) math32.Vector3 {
	return math32.Vec3(a[0], a[1], a[2])
}

func perpendicular(n math32.Vector3) math32.Vector3 {
	if math32.Abs(n.X) < 0.9 {
		return n.Cross(math32.Vec3(1, 0, 0))
	}
	return n.Cross(math32.Vec3(0, 1, 0))
}
