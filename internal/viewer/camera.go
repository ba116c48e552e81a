package viewer

import (
	"math"

	gomath "github.com/meshforge/meshview/pkg/math"
)

const (
	rotateSensitivity = 0.005
	panSensitivity    = 0.0005
	zoomStep          = 0.1
	minDistance       = 0.1
	thetaLimit        = math.Pi/2 - 0.01

	cameraFOV  = math.Pi / 4
	cameraNear = 0.1
	cameraFar  = 1000
)

// ArcBall is an orbital camera. The eye orbits the target on a sphere
// parameterized by (distance, theta, phi); the eye position is always
// derivable from those, and absolute set_position/set_target calls invert
// the parameterization to keep the two representations in sync.
type ArcBall struct {
	eye      gomath.Vec3
	target   gomath.Vec3
	distance float32
	theta    float32 // pitch, clamped short of the poles
	phi      float32 // yaw
	up       gomath.Vec3

	width  int
	height int
}

// NewArcBall creates a camera at eye looking at target with the given
// viewport size.
func NewArcBall(eye, target gomath.Vec3, width, height int) *ArcBall {
	c := &ArcBall{
		up:     gomath.Vec3{Y: 1},
		width:  width,
		height: height,
	}
	c.target = target
	c.setEye(eye)
	return c
}

// setEye stores an absolute eye position and derives (distance, theta,
// phi) from it. The given point is kept verbatim, so setting a position
// and reading it back is exact.
func (c *ArcBall) setEye(eye gomath.Vec3) {
	offset := eye.Sub(c.target)
	d := offset.Length()
	if d < minDistance {
		d = minDistance
	}
	c.eye = eye
	c.distance = d
	c.theta = float32(math.Asin(float64(offset.Y / d)))
	c.phi = float32(math.Atan2(float64(offset.X), float64(offset.Z)))
}

// updateEye recomputes the eye from the spherical parameters after an
// orbit, pan or zoom step.
func (c *ArcBall) updateEye() {
	ct := float32(math.Cos(float64(c.theta)))
	c.eye = gomath.Vec3{
		X: c.target.X + c.distance*ct*float32(math.Sin(float64(c.phi))),
		Y: c.target.Y + c.distance*float32(math.Sin(float64(c.theta))),
		Z: c.target.Z + c.distance*ct*float32(math.Cos(float64(c.phi))),
	}
}

// Eye returns the current eye position.
func (c *ArcBall) Eye() gomath.Vec3 { return c.eye }

func (c *ArcBall) Target() gomath.Vec3 { return c.target }

// Rotate orbits the eye by a mouse drag delta in pixels. Pitch is clamped
// short of the poles so the camera can never flip over the top.
func (c *ArcBall) Rotate(dx, dy float32) {
	c.phi -= dx * rotateSensitivity
	c.theta -= dy * rotateSensitivity
	if c.theta > thetaLimit {
		c.theta = thetaLimit
	}
	if c.theta < -thetaLimit {
		c.theta = -thetaLimit
	}
	c.updateEye()
}

// Pan slides eye and target together in the camera plane. The step scales
// with distance so panning feels the same at any zoom level.
func (c *ArcBall) Pan(dx, dy float32) {
	forward := c.target.Sub(c.Eye()).Normalize()
	right := forward.Cross(c.up).Normalize()
	localUp := right.Cross(forward)

	s := panSensitivity * c.distance
	c.target = c.target.
		Add(right.Scale(-dx * s)).
		Add(localUp.Scale(dy * s))
	c.updateEye()
}

// Zoom moves the eye along the view axis. Positive delta zooms in; the
// distance floor keeps the projection from degenerating.
func (c *ArcBall) Zoom(delta float32) {
	c.distance *= 1 - delta*zoomStep
	if c.distance < minDistance {
		c.distance = minDistance
	}
	c.updateEye()
}

// SetPosition places the eye at an absolute point.
func (c *ArcBall) SetPosition(p gomath.Vec3) {
	c.setEye(p)
}

// SetTarget aims the camera at an absolute point, keeping the eye fixed.
func (c *ArcBall) SetTarget(t gomath.Vec3) {
	eye := c.Eye()
	c.target = t
	c.setEye(eye)
}

// Frame repositions the camera to show a mesh whose largest bounding-box
// dimension is maxDim, using the standard three-quarter framing.
func (c *ArcBall) Frame(maxDim float32) {
	d := maxDim * 2.5
	if d < minDistance {
		d = minDistance
	}
	c.target = gomath.Vec3{}
	c.setEye(gomath.Vec3{X: 0.5 * d, Y: 0.3 * d, Z: 1.0 * d})
}

// SetViewport records the drawable size used for the projection aspect.
func (c *ArcBall) SetViewport(width, height int) {
	if width > 0 && height > 0 {
		c.width = width
		c.height = height
	}
}

// View returns the look-at view matrix.
func (c *ArcBall) View() gomath.Mat4 {
	return gomath.LookAt(c.Eye(), c.target, c.up)
}

// Projection returns the perspective projection for the current viewport.
func (c *ArcBall) Projection() gomath.Mat4 {
	aspect := float32(c.width) / float32(c.height)
	return gomath.Perspective(cameraFOV, aspect, cameraNear, cameraFar)
}
