package render

import (
	"github.com/taigrr/orrery/pkg/math3d"
)

// Plane is the set of points p with Normal·p + D = 0.
type Plane struct {
	Normal math3d.Vec3
	D      float64
}

// Normalize scales the plane equation so the normal has unit length.
func (p *Plane) Normalize() {
	l := p.Normal.Len()
	if l == 0 {
		return
	}
	p.Normal = p.Normal.Scale(1 / l)
	p.D /= l
}

// DistanceToPoint returns the signed distance from the plane to a point.
// Positive is on the side the normal points to.
func (p Plane) DistanceToPoint(point math3d.Vec3) float64 {
	return p.Normal.Dot(point) + p.D
}

// Frustum holds the six inward-facing planes of a view volume, ordered
// left, right, bottom, top, near, far.
type Frustum struct {
	Planes [6]Plane
}

const (
	FrustumLeft = iota
	FrustumRight
	FrustumBottom
	FrustumTop
	FrustumNear
	FrustumFar
)

// NewFrustumFromMatrix extracts the frustum planes of a view-projection
// matrix (Gribb/Hartmann). Points are tested in the space the matrix maps
// from, so passing Projection·View yields world-space planes.
func NewFrustumFromMatrix(m math3d.Mat4) Frustum {
	// Row i, column j of the column-major matrix is m[i+j*4].
	row := func(i int) (float64, float64, float64, float64) {
		return m[i], m[i+4], m[i+8], m[i+12]
	}
	wx, wy, wz, ww := row(3)

	var f Frustum
	for i := range 3 {
		x, y, z, w := row(i)
		f.Planes[2*i] = Plane{Normal: math3d.V3(wx+x, wy+y, wz+z), D: ww + w}
		f.Planes[2*i+1] = Plane{Normal: math3d.V3(wx-x, wy-y, wz-z), D: ww - w}
	}
	for i := range f.Planes {
		f.Planes[i].Normalize()
	}
	return f
}

// ContainsPoint reports whether p is inside every plane.
func (f Frustum) ContainsPoint(p math3d.Vec3) bool {
	for i := range f.Planes {
		if f.Planes[i].DistanceToPoint(p) < 0 {
			return false
		}
	}
	return true
}

// IntersectsSphere reports whether any part of the sphere may be visible.
// It is conservative: a sphere near a frustum corner can pass while still
// being outside.
func (f Frustum) IntersectsSphere(center math3d.Vec3, radius float64) bool {
	for i := range f.Planes {
		if f.Planes[i].DistanceToPoint(center) < -radius {
			return false
		}
	}
	return true
}
