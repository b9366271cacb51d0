package mathutil

import "github.com/go-gl/mathgl/mgl64"

// TransformDirection applies a 4x4 transform to a direction (w=0) and
// renormalizes. Used to move directions from view space into world space
// for environment lookups.
func TransformDirection(dir mgl64.Vec3, m mgl64.Mat4) mgl64.Vec3 {
	return SafeNormalize(m.Mul4x1(dir.Vec4(0)).Vec3())
}

// InverseTransformDirection applies the transpose of the upper 3x3 of m to
// a direction and renormalizes. Equivalent to transforming by the inverse
// when m is a rigid transform.
func InverseTransformDirection(dir mgl64.Vec3, m mgl64.Mat4) mgl64.Vec3 {
	return SafeNormalize(m.Transpose().Mul4x1(dir.Vec4(0)).Vec3())
}

// Reflect returns incident direction i reflected about unit normal n.
func Reflect(i, n mgl64.Vec3) mgl64.Vec3 {
	return i.Sub(n.Mul(2 * i.Dot(n)))
}

// SafeNormalize normalizes v, returning the zero vector for near-zero input
// instead of NaN.
func SafeNormalize(v mgl64.Vec3) mgl64.Vec3 {
	l := v.Len()
	if l < 1e-12 {
		return mgl64.Vec3{}
	}
	return v.Mul(1 / l)
}
