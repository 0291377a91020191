package scene

import (
	"math"

	"github.com/charmbracelet/harmonica"

	"github.com/taigrr/orrery/pkg/math3d"
)

const (
	// Spring tuning for camera transitions: moderate speed, critically
	// damped so the camera never overshoots its target.
	springFrequency = 4.0
	springDamping   = 1.0

	// A transition ends once eye and center are this close to the target.
	arriveDistance = 0.1

	minOrbitDistance = 1.0
	maxPitch         = math.Pi/2 - 0.05
)

// axis is one spring-driven coordinate.
type axis struct {
	spring harmonica.Spring
	vel    float64
}

func (a *axis) step(pos, target float64) float64 {
	pos, a.vel = a.spring.Update(pos, a.vel, target)
	return pos
}

// Camera looks from Eye toward Center. MoveTo starts a spring transition
// that Update advances one frame at a time.
type Camera struct {
	Eye    math3d.Vec3
	Center math3d.Vec3
	Up     math3d.Vec3

	FOV  float64 // Vertical field of view in radians
	Near float64
	Far  float64

	fps           int
	targetEye     math3d.Vec3
	targetCenter  math3d.Vec3
	axes          [6]axis // eye xyz, center xyz
	transitioning bool
}

// NewCamera creates a camera at eye looking at center whose transitions are
// stepped at fps frames per second.
func NewCamera(eye, center math3d.Vec3, fps int) *Camera {
	c := &Camera{
		Eye:    eye,
		Center: center,
		Up:     math3d.Up(),
		FOV:    math.Pi / 4,
		Near:   0.1,
		Far:    1000,
		fps:    max(fps, 1),
	}
	c.resetAxes()
	return c
}

func (c *Camera) resetAxes() {
	for i := range c.axes {
		c.axes[i] = axis{spring: harmonica.NewSpring(harmonica.FPS(c.fps), springFrequency, springDamping)}
	}
}

// MoveTo starts a smooth transition toward eye and center.
func (c *Camera) MoveTo(eye, center math3d.Vec3) {
	c.targetEye = eye
	c.targetCenter = center
	c.transitioning = true
}

// Jump moves the camera immediately and cancels any transition.
func (c *Camera) Jump(eye, center math3d.Vec3) {
	c.Eye, c.Center = eye, center
	c.transitioning = false
	c.resetAxes()
}

// Settle finishes any transition at once.
func (c *Camera) Settle() {
	if c.transitioning {
		c.Jump(c.targetEye, c.targetCenter)
	}
}

// Transitioning reports whether a MoveTo is still in progress.
func (c *Camera) Transitioning() bool { return c.transitioning }

// Update advances an active transition by one frame.
func (c *Camera) Update() {
	if !c.transitioning {
		return
	}
	c.Eye = math3d.V3(
		c.axes[0].step(c.Eye.X, c.targetEye.X),
		c.axes[1].step(c.Eye.Y, c.targetEye.Y),
		c.axes[2].step(c.Eye.Z, c.targetEye.Z),
	)
	c.Center = math3d.V3(
		c.axes[3].step(c.Center.X, c.targetCenter.X),
		c.axes[4].step(c.Center.Y, c.targetCenter.Y),
		c.axes[5].step(c.Center.Z, c.targetCenter.Z),
	)

	if c.Eye.Distance(c.targetEye) < arriveDistance && c.Center.Distance(c.targetCenter) < arriveDistance {
		c.Jump(c.targetEye, c.targetCenter)
	}
}

// Orbit rotates the eye around the center by yaw (around +Y) and pitch
// (toward the poles). Pitch is clamped short of straight up or down.
func (c *Camera) Orbit(yaw, pitch float64) {
	off := c.Eye.Sub(c.Center)
	r := off.Len()
	if r == 0 {
		return
	}
	theta := math.Atan2(off.Z, off.X) + yaw
	phi := math.Asin(math.Max(-1, math.Min(1, off.Y/r))) + pitch
	phi = math.Max(-maxPitch, math.Min(maxPitch, phi))

	c.Eye = c.Center.Add(math3d.V3(
		r*math.Cos(phi)*math.Cos(theta),
		r*math.Sin(phi),
		r*math.Cos(phi)*math.Sin(theta),
	))
}

// Zoom moves the eye toward the center by d, or away for negative d. The
// eye never gets closer than minOrbitDistance.
func (c *Camera) Zoom(d float64) {
	off := c.Eye.Sub(c.Center)
	r := off.Len()
	if r == 0 {
		return
	}
	nr := math.Max(minOrbitDistance, r-d)
	c.Eye = c.Center.Add(off.Scale(nr / r))
}

// Pan slides eye and center together along the view's right and up axes.
func (c *Camera) Pan(right, up float64) {
	forward := c.Center.Sub(c.Eye).Normalize()
	r := forward.Cross(c.Up).Normalize()
	u := r.Cross(forward)
	delta := r.Scale(right).Add(u.Scale(up))
	c.Eye = c.Eye.Add(delta)
	c.Center = c.Center.Add(delta)
}

// View returns the view matrix.
func (c *Camera) View() math3d.Mat4 {
	return math3d.LookAt(c.Eye, c.Center, c.Up)
}

// Projection returns the perspective matrix for the given aspect ratio.
func (c *Camera) Projection(aspect float64) math3d.Mat4 {
	return math3d.Perspective(c.FOV, aspect, c.Near, c.Far)
}
