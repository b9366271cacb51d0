package mathutil

import "github.com/go-gl/mathgl/mgl64"

// Pow2 returns x*x.
func Pow2(x float64) float64 {
	return x * x
}

// Saturate clamps x to [0, 1].
func Saturate(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

// Mix linearly interpolates between a and b by t.
func Mix(a, b, t float64) float64 {
	return a + (b-a)*t
}

// MixVec linearly interpolates between two vectors component-wise.
func MixVec(a, b mgl64.Vec3, t float64) mgl64.Vec3 {
	return a.Add(b.Sub(a).Mul(t))
}

// MixVec2 linearly interpolates between two 2-vectors component-wise.
func MixVec2(a, b mgl64.Vec2, t float64) mgl64.Vec2 {
	return a.Add(b.Sub(a).Mul(t))
}

// MulElem returns the component-wise (Hadamard) product of two vectors.
func MulElem(a, b mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{a[0] * b[0], a[1] * b[1], a[2] * b[2]}
}

// Luminance returns the Rec.709 luminance of a linear RGB color.
func Luminance(c mgl64.Vec3) float64 {
	return 0.2126*c[0] + 0.7152*c[1] + 0.0722*c[2]
}
