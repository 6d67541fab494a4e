package camera

import (
	"sync"

	"cogentcore.org/core/math32"
)

// cameraControllerImpl is the single implementation of CameraController.
type cameraControllerImpl struct {
	mu *sync.Mutex

	// position is computed from target + spherical coords
	position math32.Vector3
	target   math32.Vector3

	// Spherical coordinates (offset from target)
	radius    float32
	azimuth   float32 // horizontal angle around Y, 0 = +Z
	elevation float32 // vertical angle from the horizontal plane

	// eye, when set by WithEye, overrides the spherical coordinates at construction.
	eye *math32.Vector3

	// home is the state Reset returns to.
	home struct {
		target                     math32.Vector3
		radius, azimuth, elevation float32
	}

	minRadius    float32
	maxRadius    float32
	minElevation float32
	maxElevation float32

	orbitSpeed       float32
	mouseSensitivity float32
	zoomSpeed        float32
	panSpeed         float32
}

// Compile-time interface compliance check
var _ CameraController = &cameraControllerImpl{}

// NewCameraController creates an orbit controller looking at the origin from 30 units down +Z.
//
// Parameters:
//   - options: functional options to configure the controller
//
// Returns:
//   - CameraController: the newly created controller
func NewCameraController(options ...CameraControllerOption) CameraController {
	cc := &cameraControllerImpl{
		mu: &sync.Mutex{},

		radius: 30.0,

		minRadius:    1.0,
		maxRadius:    500.0,
		minElevation: -math32.Pi/2 + 0.01,
		maxElevation: math32.Pi/2 - 0.01,

		orbitSpeed:       0.03,
		mouseSensitivity: 0.005,
		zoomSpeed:        2.0,
		panSpeed:         0.05,
	}

	for _, option := range options {
		option(cc)
	}

	if cc.eye != nil {
		offset := cc.eye.Sub(cc.target)
		cc.radius = offset.Length()
		if cc.radius > 0 {
			cc.azimuth = math32.Atan2(offset.X, offset.Z)
			cc.elevation = math32.Asin(math32.Clamp(offset.Y/cc.radius, -1, 1))
		}
	}
	cc.radius = math32.Clamp(cc.radius, cc.minRadius, cc.maxRadius)
	cc.elevation = math32.Clamp(cc.elevation, cc.minElevation, cc.maxElevation)

	cc.home.target = cc.target
	cc.home.radius = cc.radius
	cc.home.azimuth = cc.azimuth
	cc.home.elevation = cc.elevation

	cc.updatePosition()
	return cc
}

// updatePosition recomputes the camera position from spherical coordinates.
// Caller must hold the mutex.
func (cc *cameraControllerImpl) updatePosition() {
	sinElev, cosElev := math32.Sincos(cc.elevation)
	sinAzim, cosAzim := math32.Sincos(cc.azimuth)

	cc.position = cc.target.Add(math32.Vec3(
		cc.radius*cosElev*sinAzim,
		cc.radius*sinElev,
		cc.radius*cosElev*cosAzim,
	))
}

// localAxes returns the camera's right and up axes consistent with the LookAt matrix.
// Both are zero if position and target coincide. Caller must hold the mutex.
func (cc *cameraControllerImpl) localAxes() (right, up math32.Vector3) {
	back := cc.position.Sub(cc.target)
	if back.Length() < 1e-8 {
		return
	}
	back = back.Normal()

	right = math32.Vec3(0, 1, 0).Cross(back)
	if right.Length() < 1e-8 {
		return math32.Vector3{}, math32.Vector3{}
	}
	right = right.Normal()
	up = back.Cross(right)
	return
}

func (cc *cameraControllerImpl) setElevation(elevation float32) {
	cc.elevation = math32.Clamp(elevation, cc.minElevation, cc.maxElevation)
}

func (cc *cameraControllerImpl) setRadius(radius float32) {
	cc.radius = math32.Clamp(radius, cc.minRadius, cc.maxRadius)
}

func (cc *cameraControllerImpl) Position() math32.Vector3 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.position
}

func (cc *cameraControllerImpl) Target() math32.Vector3 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.target
}

func (cc *cameraControllerImpl) SetTarget(target math32.Vector3) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.target = target
	cc.updatePosition()
}

func (cc *cameraControllerImpl) Zoom(delta float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.setRadius(cc.radius - delta*cc.zoomSpeed)
	cc.updatePosition()
}

func (cc *cameraControllerImpl) Reset() {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.target = cc.home.target
	cc.radius = cc.home.radius
	cc.azimuth = cc.home.azimuth
	cc.elevation = cc.home.elevation
	cc.updatePosition()
}

func (cc *cameraControllerImpl) Drag(dx, dy float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.azimuth -= dx * cc.mouseSensitivity
	cc.setElevation(cc.elevation + dy*cc.mouseSensitivity)
	cc.updatePosition()
}

func (cc *cameraControllerImpl) OrbitLeft() {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.azimuth -= cc.orbitSpeed
	cc.updatePosition()
}

func (cc *cameraControllerImpl) OrbitRight() {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.azimuth += cc.orbitSpeed
	cc.updatePosition()
}

func (cc *cameraControllerImpl) OrbitUp() {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.setElevation(cc.elevation + cc.orbitSpeed)
	cc.updatePosition()
}

func (cc *cameraControllerImpl) OrbitDown() {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.setElevation(cc.elevation - cc.orbitSpeed)
	cc.updatePosition()
}

func (cc *cameraControllerImpl) Radius() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.radius
}

func (cc *cameraControllerImpl) SetRadius(radius float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.setRadius(radius)
	cc.updatePosition()
}

func (cc *cameraControllerImpl) Azimuth() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.azimuth
}

func (cc *cameraControllerImpl) Elevation() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.elevation
}

func (cc *cameraControllerImpl) SetElevation(elevation float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.setElevation(elevation)
	cc.updatePosition()
}

func (cc *cameraControllerImpl) PanRight(delta float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()

	right, _ := cc.localAxes()
	offset := right.MulScalar(delta * cc.panSpeed)
	cc.target = cc.target.Add(offset)
	cc.position = cc.position.Add(offset)
}

func (cc *cameraControllerImpl) PanUp(delta float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()

	_, up := cc.localAxes()
	offset := up.MulScalar(delta * cc.panSpeed)
	cc.target = cc.target.Add(offset)
	cc.position = cc.position.Add(offset)
}
