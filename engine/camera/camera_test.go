package camera

import (
	"testing"

	"cogentcore.org/core/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithEyeDerivesSphericalCoordinates(t *testing.T) {
	cc := NewCameraController(WithEye(math32.Vec3(0, 1, 30)))

	p := cc.Position()
	assert.InDelta(t, 0, p.X, 1e-4)
	assert.InDelta(t, 1, p.Y, 1e-4)
	assert.InDelta(t, 30, p.Z, 1e-4)
	assert.InDelta(t, 30.0167, cc.Radius(), 1e-3)
	assert.InDelta(t, 0.0333, cc.Elevation(), 1e-3)
}

func TestZoomClampsRadius(t *testing.T) {
	cc := NewCameraController(WithRadius(10), WithRadiusBounds(5, 20), WithZoomSpeed(1))

	cc.Zoom(3)
	assert.InDelta(t, 7, cc.Radius(), 1e-6)
	cc.Zoom(100)
	assert.InDelta(t, 5, cc.Radius(), 1e-6)
	cc.Zoom(-100)
	assert.InDelta(t, 20, cc.Radius(), 1e-6)
}

func TestDragClampsElevation(t *testing.T) {
	cc := NewCameraController(WithElevationBounds(-0.5, 0.5), WithMouseSensitivity(0.01))

	cc.Drag(0, 1000)
	assert.InDelta(t, 0.5, cc.Elevation(), 1e-6)
	cc.Drag(100, 0)
	assert.InDelta(t, -1, cc.Azimuth(), 1e-6)
}

func TestResetRestoresHome(t *testing.T) {
	cc := NewCameraController(WithEye(math32.Vec3(0, 1, 30)))
	home := cc.Position()

	cc.Drag(120, -40)
	cc.Zoom(3)
	cc.PanRight(10)
	require.NotEqual(t, home, cc.Position())

	cc.Reset()
	p := cc.Position()
	assert.InDelta(t, home.X, p.X, 1e-4)
	assert.InDelta(t, home.Y, p.Y, 1e-4)
	assert.InDelta(t, home.Z, p.Z, 1e-4)
	assert.Equal(t, math32.Vector3{}, cc.Target())
}

func TestPanKeepsOrbitRelationship(t *testing.T) {
	cc := NewCameraController(WithRadius(10), WithPanSpeed(1))
	before := cc.Position().Sub(cc.Target())

	cc.PanRight(2)
	cc.PanUp(3)
	after := cc.Position().Sub(cc.Target())

	assert.InDelta(t, before.X, after.X, 1e-4)
	assert.InDelta(t, before.Y, after.Y, 1e-4)
	assert.InDelta(t, before.Z, after.Z, 1e-4)
	assert.InDelta(t, 2, cc.Target().X, 1e-4)
	assert.InDelta(t, 3, cc.Target().Y, 1e-4)
}

func TestCameraUniformProjectsTarget(t *testing.T) {
	cc := NewCameraController(WithEye(math32.Vec3(0, 0, 30)))
	c := NewCamera(WithController(cc), WithAspect(16.0/9.0))

	u := c.Uniform()
	assert.Equal(t, [3]float32{0, 0, 30}, roundVec(u.CameraPosition))

	// The origin lies straight ahead: clip-space x and y are zero, depth is inside [0, w].
	m := u.ViewProj
	x, y, z, w := m[12], m[13], m[14], m[15]
	assert.InDelta(t, 0, x, 1e-4)
	assert.InDelta(t, 0, y, 1e-4)
	assert.Greater(t, w, float32(0))
	assert.True(t, z >= 0 && z <= w)

	assert.Len(t, u.Marshal(), 80)
}

func TestSetAspectIgnoresDegenerateSizes(t *testing.T) {
	c := NewCamera()
	c.SetAspect(2)
	c.SetAspect(0)
	assert.Equal(t, float32(2), c.Aspect())
	assert.InDelta(t, math32.DegToRad(60), c.Fov(), 1e-6)
}

func roundVec(v [3]float32) [3]float32 {
	for i := range v {
		v[i] = math32.Round(v[i]*1000) / 1000
	}
	return v
}
