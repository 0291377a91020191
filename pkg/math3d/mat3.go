package math3d

import "math"

// singularEpsilon is the determinant magnitude below which a Mat3 is
// treated as non-invertible.
const singularEpsilon = 1e-12

// Mat3 is a 3x3 matrix stored in column-major order, like Mat4.
//
// | 0 3 6 |
// | 1 4 7 |
// | 2 5 8 |
type Mat3 [9]float64

// Identity3 returns the 3x3 identity matrix.
func Identity3() Mat3 {
	return Mat3{
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
	}
}

// Transpose returns the transposed matrix.
func (m Mat3) Transpose() Mat3 {
	return Mat3{
		m[0], m[3], m[6],
		m[1], m[4], m[7],
		m[2], m[5], m[8],
	}
}

// Determinant returns the determinant of the matrix.
func (m Mat3) Determinant() float64 {
	return m[0]*(m[4]*m[8]-m[7]*m[5]) -
		m[3]*(m[1]*m[8]-m[7]*m[2]) +
		m[6]*(m[1]*m[5]-m[4]*m[2])
}

// Inverse returns the inverse of the matrix. ok is false, and the result
// is the identity, when the matrix is singular.
func (m Mat3) Inverse() (inv Mat3, ok bool) {
	det := m.Determinant()
	if math.Abs(det) < singularEpsilon || !isFinite(det) {
		return Identity3(), false
	}
	d := 1.0 / det

	inv[0] = (m[4]*m[8] - m[7]*m[5]) * d
	inv[1] = -(m[1]*m[8] - m[7]*m[2]) * d
	inv[2] = (m[1]*m[5] - m[4]*m[2]) * d
	inv[3] = -(m[3]*m[8] - m[6]*m[5]) * d
	inv[4] = (m[0]*m[8] - m[6]*m[2]) * d
	inv[5] = -(m[0]*m[5] - m[3]*m[2]) * d
	inv[6] = (m[3]*m[7] - m[6]*m[4]) * d
	inv[7] = -(m[0]*m[7] - m[6]*m[1]) * d
	inv[8] = (m[0]*m[4] - m[3]*m[1]) * d
	return inv, true
}

// MulVec3 transforms a Vec3.
func (m Mat3) MulVec3(v Vec3) Vec3 {
	return Vec3{
		m[0]*v.X + m[3]*v.Y + m[6]*v.Z,
		m[1]*v.X + m[4]*v.Y + m[7]*v.Z,
		m[2]*v.X + m[5]*v.Y + m[8]*v.Z,
	}
}

// NormalMatrix returns the inverse-transpose of the model matrix's linear
// part, the transform that keeps normals perpendicular to surfaces under
// non-uniform scale. A singular linear part yields the identity.
func NormalMatrix(model Mat4) Mat3 {
	inv, _ := model.Upper3().Transpose().Inverse()
	return inv
}
