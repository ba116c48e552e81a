package math

import "math"

// EulerXYZ builds a rotation from Euler angles (radians): a roll around X,
// then a pitch around Y, then a yaw around Z, i.e. R = Rz * Ry * Rx.
func EulerXYZ(x, y, z float32) Mat4 {
	return RotateZ(z).Mul(RotateY(y)).Mul(RotateX(x))
}

// EulerAngles extracts the (x, y, z) Euler angles of a rotation built in
// the EulerXYZ convention. The upper-left 3x3 block must be a pure rotation.
// At the pitch singularity (y = ±π/2) the roll/yaw split is ambiguous; yaw
// is reported as zero there.
func (m Mat4) EulerAngles() (x, y, z float32) {
	// Row-major element R[r][c] = m[c*4+r].
	sy := -m[2] // R[2][0] = -sin(y)
	if sy > 1 {
		sy = 1
	} else if sy < -1 {
		sy = -1
	}

	y = float32(math.Asin(float64(sy)))

	if math.Abs(float64(sy)) < 0.999999 {
		x = float32(math.Atan2(float64(m[6]), float64(m[10])))
		z = float32(math.Atan2(float64(m[1]), float64(m[0])))
	} else {
		x = float32(math.Atan2(float64(-m[9]), float64(m[5])))
		z = 0
	}
	return x, y, z
}
