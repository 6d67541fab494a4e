package geometry

import (
	"testing"

	"cogentcore.org/core/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertIndicesInRange(t *testing.T, m *Mesh) {
	t.Helper()
	for _, i := range m.Indices {
		require.Less(t, int(i), len(m.Vertices))
	}
	for _, i := range m.Edges {
		require.Less(t, int(i), len(m.Vertices))
	}
	assert.Zero(t, len(m.Indices)%3)
	assert.Zero(t, len(m.Edges)%2)
}

func assertUnitNormals(t *testing.T, m *Mesh) {
	t.Helper()
	for _, v := range m.Vertices {
		assert.InDelta(t, 1, vec(v.Normal).Length(), 1e-4)
		tangent := math32.Vec3(v.Tangent[0], v.Tangent[1], v.Tangent[2])
		assert.InDelta(t, 1, tangent.Length(), 1e-4)
		assert.InDelta(t, 0, tangent.Dot(vec(v.Normal)), 1e-3)
	}
}

func TestTorusCounts(t *testing.T) {
	m := Torus(10, 3, 16, 100)
	assert.Len(t, m.Vertices, 17*101)
	assert.Len(t, m.Indices, 16*100*6)
	assertIndicesInRange(t, m)
	assertUnitNormals(t, m)

	assert.InDelta(t, 13, m.Bounds.Max.X, 1e-3)
	assert.InDelta(t, -13, m.Bounds.Min.X, 1e-3)
	assert.InDelta(t, 3, m.Bounds.Max.Z, 1e-3)
}

func TestPlaneFacesPositiveZ(t *testing.T) {
	m := Plane(3, 0.5, 16, 4)
	assert.Len(t, m.Vertices, 17*5)
	assert.Len(t, m.Indices, 16*4*6)
	assertIndicesInRange(t, m)
	for _, v := range m.Vertices {
		assert.Equal(t, [3]float32{0, 0, 1}, v.Normal)
		assert.Equal(t, float32(0), v.Position[2])
	}

	// Counter-clockwise winding seen from +Z.
	a, b, c := vec(m.Vertices[m.Indices[0]].Position), vec(m.Vertices[m.Indices[1]].Position), vec(m.Vertices[m.Indices[2]].Position)
	assert.Greater(t, b.Sub(a).Cross(c.Sub(a)).Z, float32(0))
}

func TestBoxFaceNormalsPointOutward(t *testing.T) {
	m := Box(0.7, 0.6, 0.5, 2)
	assert.Len(t, m.Vertices, 6*9)
	assertIndicesInRange(t, m)
	assertUnitNormals(t, m)

	for _, v := range m.Vertices {
		n := vec(v.Normal)
		p := vec(v.Position)
		assert.Greater(t, n.Dot(p), float32(0))
	}
	for tri := 0; tri < len(m.Indices); tri += 3 {
		a := vec(m.Vertices[m.Indices[tri]].Position)
		b := vec(m.Vertices[m.Indices[tri+1]].Position)
		c := vec(m.Vertices[m.Indices[tri+2]].Position)
		face := b.Sub(a).Cross(c.Sub(a))
		assert.Greater(t, face.Dot(vec(m.Vertices[m.Indices[tri]].Normal)), float32(0))
	}
	assert.InDelta(t, 0.35, m.Bounds.Max.X, 1e-5)
	assert.InDelta(t, -0.25, m.Bounds.Min.Z, 1e-5)
}

func TestStarOutlineAlternatesRadii(t *testing.T) {
	outline := StarOutline(5, 0.05, 0.1)
	require.Len(t, outline, 10)
	for i, p := range outline {
		want := float32(0.05)
		if i%2 == 1 {
			want = 0.1
		}
		assert.InDelta(t, want, p.Length(), 1e-6)
	}
	assert.InDelta(t, 0.05, outline[0].X, 1e-6)
	assert.InDelta(t, 0, outline[0].Y, 1e-6)
}

func TestExtrudedStar(t *testing.T) {
	m := ExtrudedStar(5, 0.05, 0.1, 0.005)
	// Two caps of 1+10 vertices and 10 side quads.
	assert.Len(t, m.Vertices, 2*11+10*4)
	assert.Len(t, m.Indices, 2*10*3+10*6)
	assertIndicesInRange(t, m)

	for tri := 0; tri < len(m.Indices); tri += 3 {
		a := vec(m.Vertices[m.Indices[tri]].Position)
		b := vec(m.Vertices[m.Indices[tri+1]].Position)
		c := vec(m.Vertices[m.Indices[tri+2]].Position)
		face := b.Sub(a).Cross(c.Sub(a))
		assert.Greater(t, face.Dot(vec(m.Vertices[m.Indices[tri]].Normal)), float32(0), "triangle %d", tri/3)
	}
	assert.InDelta(t, 0.005, m.Bounds.Max.Z, 1e-6)
}

func TestEdgesAreUnique(t *testing.T) {
	m := Plane(1, 1, 1, 1)
	// Two triangles sharing the diagonal: 5 unique edges.
	assert.Len(t, m.Edges, 10)

	seen := map[[2]uint32]bool{}
	for i := 0; i < len(m.Edges); i += 2 {
		key := [2]uint32{m.Edges[i], m.Edges[i+1]}
		assert.False(t, seen[key])
		assert.Less(t, key[0], key[1])
		seen[key] = true
	}
}

func TestVertexBytes(t *testing.T) {
	m := Plane(1, 1, 1, 1)
	assert.Len(t, m.VertexBytes(), len(m.Vertices)*48)
	assert.Len(t, m.IndexBytes(), len(m.Indices)*4)
	assert.Len(t, m.EdgeBytes(), len(m.Edges)*4)

	v := m.Vertices[0]
	assert.Equal(t, 48, v.Size())
	assert.Equal(t, v.Marshal(), m.VertexBytes()[:48])
}
