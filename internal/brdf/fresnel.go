// Package brdf implements the microfacet BRDF term library: Fresnel (F),
// normal distribution (D), visibility/masking (V), and the IOR/reflectance
// conversions. Every function is pure and allocation-free; callers clamp
// cosine arguments to [0, 1] before use.
package brdf

import "github.com/go-gl/mathgl/mgl64"

// Epsilon bounds denominators that can vanish at grazing angles away from
// zero. The floor is sized for 16-bit float evaluation and is kept as-is
// even though this implementation uses float64.
const Epsilon = 1e-6

// FSchlick is the Schlick Fresnel approximation for a colored F0:
// F0 + (1-F0)(1-cos)^5.
func FSchlick(f0 mgl64.Vec3, cos float64) mgl64.Vec3 {
	f := pow5(1 - cos)
	return mgl64.Vec3{
		f0[0] + (1-f0[0])*f,
		f0[1] + (1-f0[1])*f,
		f0[2] + (1-f0[2])*f,
	}
}

// FSchlickScalar is the two-endpoint scalar Schlick variant:
// f0 + (f90-f0)(1-cos)^5. The clear-coat lobe uses it with f0=0.04, f90=1.
func FSchlickScalar(f0, f90, cos float64) float64 {
	return f0 + (f90-f0)*pow5(1-cos)
}

func pow5(x float64) float64 {
	x2 := x * x
	return x2 * x2 * x
}
