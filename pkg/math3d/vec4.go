package math3d

// Vec4 represents a 4D vector (or homogeneous 3D point).
type Vec4 struct {
	X, Y, Z, W float64
}

// V4 creates a new Vec4.
func V4(x, y, z, w float64) Vec4 {
	return Vec4{x, y, z, w}
}

// V4FromV3 creates a Vec4 from Vec3 with specified W.
func V4FromV3(v Vec3, w float64) Vec4 {
	return Vec4{v.X, v.Y, v.Z, w}
}

// Vec3 returns the Vec3 portion (ignoring W).
func (v Vec4) Vec3() Vec3 {
	return Vec3{v.X, v.Y, v.Z}
}

// PerspectiveDivide divides X, Y and Z by W. It reports false when W is
// zero or the result is not finite; the returned vector is then unusable.
func (v Vec4) PerspectiveDivide() (Vec3, bool) {
	if v.W == 0 || !isFinite(v.W) {
		return Vec3{}, false
	}
	p := Vec3{v.X / v.W, v.Y / v.W, v.Z / v.W}
	return p, p.IsFinite()
}
