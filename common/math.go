package common

import (
	"math/rand/v2"
	"unsafe"

	"cogentcore.org/core/math32"
)

// Identity resets a 4x4 matrix (flat slice) to the identity matrix.
// The matrix is stored in column-major order.
//
// Parameters:
//   - m: destination slice (must be at least 16 elements)
func Identity(m []float32) {
	for i := range m {
		m[i] = 0
	}
	m[0], m[5], m[10], m[15] = 1, 1, 1, 1
}

// SliceToBytes converts any slice to a byte slice for GPU buffer uploads.
// The returned slice shares memory with the input - do not modify.
//
// Parameters:
//   - data: source slice of any type
//
// Returns:
//   - []byte: byte slice view of the input data, or nil if input is empty
func SliceToBytes[T any](data []T) []byte {
	if len(data) == 0 {
		return nil
	}
	var zero T
	size := unsafe.Sizeof(zero)
	return unsafe.Slice((*byte)(unsafe.Pointer(&data[0])), int(size)*len(data))
}

// Mul4 multiplies two 4x4 column-major matrices and stores the result in out.
// Result: out = a * b. out may alias a or b.
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
//   - a: left-hand matrix (16 elements)
//   - b: right-hand matrix (16 elements)
func Mul4(out, a, b []float32) {
	var buf [16]float32
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			var sum float32
			for k := 0; k < 4; k++ {
				sum += a[k*4+row] * b[col*4+k]
			}
			buf[col*4+row] = sum
		}
	}
	copy(out, buf[:])
}

// Perspective creates a perspective projection matrix for WebGPU clip space (depth in [0, 1]).
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
//   - fovY: vertical field of view in radians
//   - aspect: viewport aspect ratio (width/height)
//   - near: near clipping plane distance (must be > 0)
//   - far: far clipping plane distance (must be > near)
func Perspective(out []float32, fovY, aspect, near, far float32) {
	f := 1 / math32.Tan(fovY/2)
	Identity(out)

	out[0] = f / aspect
	out[5] = f
	out[10] = far / (near - far)
	out[11] = -1
	out[14] = (near * far) / (near - far)
	out[15] = 0
}

// LookAt creates a view matrix for a camera at eye looking at center.
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
//   - eye: camera position in world space
//   - center: target point the camera looks at
//   - up: up vector defining camera orientation (typically 0,1,0)
func LookAt(out []float32, eye, center, up math32.Vector3) {
	z := eye.Sub(center)
	if z.Length() == 0 {
		z = math32.Vec3(0, 0, 1)
	}
	z = z.Normal()

	x := up.Cross(z)
	if x.Length() == 0 {
		x = math32.Vec3(1, 0, 0)
	}
	x = x.Normal()
	y := z.Cross(x)

	out[0], out[4], out[8], out[12] = x.X, x.Y, x.Z, -x.Dot(eye)
	out[1], out[5], out[9], out[13] = y.X, y.Y, y.Z, -y.Dot(eye)
	out[2], out[6], out[10], out[14] = z.X, z.Y, z.Z, -z.Dot(eye)
	out[3], out[7], out[11], out[15] = 0, 0, 0, 1
}

// BuildModelMatrix constructs a 4x4 column-major model matrix from position, Euler rotation and scale.
// The rotation order is Y * X * Z (yaw-pitch-roll).
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
//   - pos: translation in world space
//   - rot: rotation angles in radians around each axis
//   - scale: scale factors along each axis
func BuildModelMatrix(out []float32, pos, rot, scale math32.Vector3) {
	sx, cx := math32.Sincos(rot.X)
	sy, cy := math32.Sincos(rot.Y)
	sz, cz := math32.Sincos(rot.Z)

	out[0] = (cy*cz + sy*sx*sz) * scale.X
	out[1] = (cx * sz) * scale.X
	out[2] = (-sy*cz + cy*sx*sz) * scale.X
	out[3] = 0

	out[4] = (cy*-sz + sy*sx*cz) * scale.Y
	out[5] = (cx * cz) * scale.Y
	out[6] = (sy*sz + cy*sx*cz) * scale.Y
	out[7] = 0

	out[8] = (sy * cx) * scale.Z
	out[9] = (-sx) * scale.Z
	out[10] = (cy * cx) * scale.Z
	out[11] = 0

	out[12] = pos.X
	out[13] = pos.Y
	out[14] = pos.Z
	out[15] = 1
}

// FacingRotation returns the Y*X*Z Euler angles that point an object's local +Z axis from pos towards target.
// Roll (Z) is always zero. If pos and target coincide the zero rotation is returned.
//
// Parameters:
//   - pos: the object's position
//   - target: the point to face
//
// Returns:
//   - math32.Vector3: Euler angles in radians
func FacingRotation(pos, target math32.Vector3) math32.Vector3 {
	d := target.Sub(pos)
	if d.Length() == 0 {
		return math32.Vector3{}
	}
	d = d.Normal()
	return math32.Vec3(math32.Asin(-d.Y), math32.Atan2(d.X, d.Z), 0)
}

// EaseOutQuad maps linear progress t in [0, 1] to decelerating progress t*(2-t).
//
// Parameters:
//   - t: linear progress
//
// Returns:
//   - float32: eased progress
func EaseOutQuad(t float32) float32 {
	return t * (2 - t)
}

// Clamp01 clamps v into [0, 1].
func Clamp01(v float32) float32 {
	return math32.Clamp(v, 0, 1)
}

// Lerp3 linearly interpolates between a and b.
//
// Parameters:
//   - a: value at t = 0
//   - b: value at t = 1
//   - t: interpolation factor
//
// Returns:
//   - math32.Vector3: a + (b-a)*t
func Lerp3(a, b math32.Vector3, t float32) math32.Vector3 {
	return a.Add(b.Sub(a).MulScalar(t))
}

// RandomUnitVector returns a direction uniformly distributed over the unit sphere.
//
// Parameters:
//   - rng: the random source
//
// Returns:
//   - math32.Vector3: a unit-length vector
func RandomUnitVector(rng *rand.Rand) math32.Vector3 {
	z := 2*rng.Float32() - 1
	phi := 2 * math32.Pi * rng.Float32()
	r := math32.Sqrt(math32.Max(0, 1-z*z))
	s, c := math32.Sincos(phi)
	return math32.Vec3(r*c, r*s, z)
}
