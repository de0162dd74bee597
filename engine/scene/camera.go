package scene

import (
	"github.com/atelier3d/atelier/engine/math"
)

// CameraKind selects the projection model of a camera.
type CameraKind uint8

const (
	CameraKindPerspective CameraKind = iota
	CameraKindOrthographic
)

func (k CameraKind) String() string {
	switch k {
	case CameraKindPerspective:
		return "perspective"
	case CameraKindOrthographic:
		return "orthographic"
	default:
		return "unknown"
	}
}

/**
 * @brief A scene camera. Kind tags which projection parameters apply:
 * perspective cameras use Fov/Aspect, orthographic cameras use the
 * Left/Right/Bottom/Top frame. Near/Far are shared.
 */
type Camera struct {
	Name     string
	Kind     CameraKind
	Position math.Vec3
	// Rotation is Euler angles in radians, applied X then Y then Z.
	Rotation math.Vec3

	FovRadians float32
	Aspect     float32

	Left   float32
	Right  float32
	Bottom float32
	Top    float32

	Near float32
	Far  float32
}

// NewPerspectiveCamera builds a camera with sensible editor defaults.
func NewPerspectiveCamera(name string, fovRadians, aspect, near, far float32) *Camera {
	return &Camera{
		Name:       name,
		Kind:       CameraKindPerspective,
		Position:   math.NewVec3(0, 0, 3),
		Rotation:   math.NewVec3Zero(),
		FovRadians: fovRadians,
		Aspect:     aspect,
		Near:       near,
		Far:        far,
	}
}

func NewOrthographicCamera(name string, left, right, bottom, top, near, far float32) *Camera {
	return &Camera{
		Name:     name,
		Kind:     CameraKindOrthographic,
		Position: math.NewVec3Zero(),
		Rotation: math.NewVec3Zero(),
		Left:     left,
		Right:    right,
		Bottom:   bottom,
		Top:      top,
		Near:     near,
		Far:      far,
	}
}

// View returns the world-to-camera matrix: the inverse of the camera's own
// placement transform.
func (c *Camera) View() math.Mat4 {
	placement := math.NewMat4Translation(c.Position).
		Mul(math.NewMat4EulerXYZ(c.Rotation.X, c.Rotation.Y, c.Rotation.Z))
	return placement.Inverse()
}

// Projection returns the projection matrix for the camera's kind.
func (c *Camera) Projection() math.Mat4 {
	if c.Kind == CameraKindOrthographic {
		return math.NewMat4Orthographic(c.Left, c.Right, c.Bottom, c.Top, c.Near, c.Far)
	}
	return math.NewMat4Perspective(c.FovRadians, c.Aspect, c.Near, c.Far)
}

// SetAspect updates the perspective aspect ratio, typically on viewport
// resize. Orthographic cameras ignore it.
func (c *Camera) SetAspect(aspect float32) {
	c.Aspect = aspect
}

// Forward returns the camera's view direction in world space.
func (c *Camera) Forward() math.Vec3 {
	rotation := math.NewMat4EulerXYZ(c.Rotation.X, c.Rotation.Y, c.Rotation.Z)
	return rotation.Forward()
}
