package geometry

import (
	"cogentcore.org/core/math32"
)

// Torus builds a ring of radius radius around the Z axis with a tube of radius tube.
// radialSegs subdivides the tube cross-section and tubularSegs subdivides the ring.
//
// Parameters:
//   - radius: distance from the center of the torus to the center of the tube
//   - tube: radius of the tube
//   - radialSegs: segments around the tube (minimum 3)
//   - tubularSegs: segments around the ring (minimum 3)
//
// Returns:
//   - *Mesh: the torus mesh
func Torus(radius, tube float32, radialSegs, tubularSegs int) *Mesh {
	radialSegs = max(radialSegs, 3)
	tubularSegs = max(tubularSegs, 3)

	m := &Mesh{Name: "torus"}
	m.Vertices = make([]GPUVertex, 0, (radialSegs+1)*(tubularSegs+1))
	for j := 0; j <= radialSegs; j++ {
		for i := 0; i <= tubularSegs; i++ {
			su, cu := math32.Sincos(float32(i) / float32(tubularSegs) * 2 * math32.Pi)
			sv, cv := math32.Sincos(float32(j) / float32(radialSegs) * 2 * math32.Pi)

			p := math32.Vec3((radius+tube*cv)*cu, (radius+tube*cv)*su, tube*sv)
			center := math32.Vec3(radius*cu, radius*su, 0)
			n := p.Sub(center).Normal()

			m.Vertices = append(m.Vertices, GPUVertex{
				Position: [3]float32{p.X, p.Y, p.Z},
				Normal:   [3]float32{n.X, n.Y, n.Z},
				TexCoord: [2]float32{float32(i) / float32(tubularSegs), float32(j) / float32(radialSegs)},
			})
		}
	}

	row := uint32(tubularSegs + 1)
	m.Indices = make([]uint32, 0, radialSegs*tubularSegs*6)
	for j := uint32(1); j <= uint32(radialSegs); j++ {
		for i := uint32(1); i <= uint32(tubularSegs); i++ {
			a := row*j + i - 1
			b := row*(j-1) + i - 1
			c := row*(j-1) + i
			d := row*j + i
			m.Indices = append(m.Indices, a, b, d, b, c, d)
		}
	}
	return m.finish()
}

// Plane builds a width x height rectangle in the XY plane facing +Z.
//
// Parameters:
//   - width: extent along X
//   - height: extent along Y
//   - widthSegs: subdivisions along X (minimum 1)
//   - heightSegs: subdivisions along Y (minimum 1)
//
// Returns:
//   - *Mesh: the plane mesh
func Plane(width, height float32, widthSegs, heightSegs int) *Mesh {
	m := &Mesh{Name: "plane"}
	m.addGrid(axisX, axisY, axisZ, 1, -1, width, height, 0, widthSegs, heightSegs)
	return m.finish()
}

// Box builds an axis-aligned box centered on the origin. Each face is a separate grid so that
// normals and UVs are flat per face.
//
// Parameters:
//   - width: extent along X
//   - height: extent along Y
//   - depth: extent along Z
//   - segs: subdivisions per face edge (minimum 1)
//
// Returns:
//   - *Mesh: the box mesh
func Box(width, height, depth float32, segs int) *Mesh {
	m := &Mesh{Name: "box"}
	m.addGrid(axisZ, axisY, axisX, -1, -1, depth, height, width, segs, segs)
	m.addGrid(axisZ, axisY, axisX, 1, -1, depth, height, -width, segs, segs)
	m.addGrid(axisX, axisZ, axisY, 1, 1, width, depth, height, segs, segs)
	m.addGrid(axisX, axisZ, axisY, 1, -1, width, depth, -height, segs, segs)
	m.addGrid(axisX, axisY, axisZ, 1, -1, width, height, depth, segs, segs)
	m.addGrid(axisX, axisY, axisZ, -1, -1, width, height, -depth, segs, segs)
	return m.finish()
}

const (
	axisX = iota
	axisY
	axisZ
)

// addGrid appends one subdivided face. u and v are the in-plane axes and w the face normal axis; the face
// lies at w = offset/2 and faces the sign of offset (+w for a zero offset).
func (m *Mesh) addGrid(u, v, w int, udir, vdir float32, uExtent, vExtent, offset float32, uSegs, vSegs int) {
	uSegs = max(uSegs, 1)
	vSegs = max(vSegs, 1)

	base := uint32(len(m.Vertices))
	nw := float32(1)
	if offset < 0 {
		nw = -1
	}

	for iy := 0; iy <= vSegs; iy++ {
		y := float32(iy)*vExtent/float32(vSegs) - vExtent/2
		for ix := 0; ix <= uSegs; ix++ {
			x := float32(ix)*uExtent/float32(uSegs) - uExtent/2

			var p, n [3]float32
			p[u] = x * udir
			p[v] = y * vdir
			p[w] = offset / 2
			n[w] = nw

			m.Vertices = append(m.Vertices, GPUVertex{
				Position: p,
				Normal:   n,
				TexCoord: [2]float32{float32(ix) / float32(uSegs), 1 - float32(iy)/float32(vSegs)},
			})
		}
	}

	row := uint32(uSegs + 1)
	for iy := uint32(0); iy < uint32(vSegs); iy++ {
		for ix := uint32(0); ix < uint32(uSegs); ix++ {
			a := base + ix + row*iy
			b := base + ix + row*(iy+1)
			c := base + ix + 1 + row*(iy+1)
			d := base + ix + 1 + row*iy
			m.Indices = append(m.Indices, a, b, d, b, c, d)
		}
	}
}

// StarOutline returns the 2*points vertices of a star polygon in counter-clockwise order, alternating between
// the inner and the outer radius and starting with an inner vertex on the +X axis.
//
// Parameters:
//   - points: number of star tips
//   - inner: radius of the notches
//   - outer: radius of the tips
//
// Returns:
//   - []math32.Vector2: the outline
func StarOutline(points int, inner, outer float32) []math32.Vector2 {
	outline := make([]math32.Vector2, 0, points*2)
	for i := 0; i < points*2; i++ {
		r := inner
		if i%2 == 1 {
			r = outer
		}
		s, c := math32.Sincos(float32(i) / float32(points) * math32.Pi)
		outline = append(outline, math32.Vec2(c*r, s*r))
	}
	return outline
}

// ExtrudedStar extrudes a star outline along +Z by depth, without bevel. The caps are triangulated as a fan
// around the star's center, which is valid because a star polygon is star-shaped about its center.
//
// Parameters:
//   - points: number of star tips
//   - inner: radius of the notches
//   - outer: radius of the tips
//   - depth: extrusion depth
//
// Returns:
//   - *Mesh: the star mesh
func ExtrudedStar(points int, inner, outer, depth float32) *Mesh {
	outline := StarOutline(max(points, 2), inner, outer)
	n := uint32(len(outline))
	m := &Mesh{Name: "star"}

	// Caps: back (z=0, facing -Z) then front (z=depth, facing +Z), each with a center vertex.
	for capIdx, z := range []float32{0, depth} {
		nz := float32(-1)
		if capIdx == 1 {
			nz = 1
		}
		base := uint32(len(m.Vertices))
		m.Vertices = append(m.Vertices, GPUVertex{
			Position: [3]float32{0, 0, z},
			Normal:   [3]float32{0, 0, nz},
			TexCoord: [2]float32{0.5, 0.5},
		})
		for _, p := range outline {
			m.Vertices = append(m.Vertices, GPUVertex{
				Position: [3]float32{p.X, p.Y, z},
				Normal:   [3]float32{0, 0, nz},
				TexCoord: [2]float32{0.5 + p.X/(2*outer), 0.5 + p.Y/(2*outer)},
			})
		}
		for i := uint32(0); i < n; i++ {
			a := base + 1 + i
			b := base + 1 + (i+1)%n
			if capIdx == 1 {
				m.Indices = append(m.Indices, base, a, b)
			} else {
				m.Indices = append(m.Indices, base, b, a)
			}
		}
	}

	// Sides: one flat quad per outline edge with the outward normal of that edge.
	var perimeter float32
	for i := uint32(0); i < n; i++ {
		p0 := outline[i]
		p1 := outline[(i+1)%n]
		d := p1.Sub(p0)
		edgeLen := d.Length()
		nx, ny := d.Y/edgeLen, -d.X/edgeLen

		u0 := perimeter
		perimeter += edgeLen
		u1 := perimeter

		base := uint32(len(m.Vertices))
		for _, c := range [4]struct {
			p    math32.Vector2
			z, u float32
		}{{p0, 0, u0}, {p1, 0, u1}, {p1, depth, u1}, {p0, depth, u0}} {
			m.Vertices = append(m.Vertices, GPUVertex{
				Position: [3]float32{c.p.X, c.p.Y, c.z},
				Normal:   [3]float32{nx, ny, 0},
				TexCoord: [2]float32{c.u, c.z / max(depth, 1e-6)},
			})
		}
		m.Indices = append(m.Indices, base, base+1, base+2, base, base+2, base+3)
	}
	return m.finish()
}
