package brdf

import "math"

// minSin2 floors sin^2(theta_h) terms in the Ashikhmin and Charlie
// distributions. 2^(-14/2): half the exponent range of a 16-bit float,
// so sin^4 stays representable. Kept under float64 as well so results do
// not drift between precisions.
const minSin2 = 0.0078125

// DGGX is the isotropic GGX normal distribution:
// a^2 / (pi * (NoH^2 (a^2 - 1) + 1)^2).
func DGGX(linearRoughness, noH float64) float64 {
	a2 := linearRoughness * linearRoughness
	f := noH*noH*(a2-1) + 1
	return a2 / (math.Pi * f * f)
}

// DGGXAnisotropic is the anisotropic GGX distribution with separate
// tangent/bitangent roughness. The dot-product sum runs through
// roughness^8 scale intermediates, so it is computed in full precision
// with no algebraic shortcuts.
func DGGXAnisotropic(at, ab, toH, boH, noH float64) float64 {
	a2 := at * ab
	dx := ab * toH
	dy := at * boH
	dz := a2 * noH
	d2 := dx*dx + dy*dy + dz*dz
	b2 := a2 / d2
	return a2 * b2 * b2 * (1 / math.Pi)
}

// DAshikhmin is the Ashikhmin cloth/velvet distribution. Retained as a
// swappable alternative to GGX; not part of the default specular path.
func DAshikhmin(linearRoughness, noH float64) float64 {
	a2 := linearRoughness * linearRoughness
	cos2h := noH * noH
	sin2h := math.Max(1-cos2h, minSin2)
	sin4h := sin2h * sin2h
	cot2 := -cos2h / (a2 * sin2h)
	return 1.0 / (math.Pi * (4*a2 + 1) * sin4h) * (4*math.Exp(cot2) + sin4h)
}

// DCharlie is the Charlie sheen distribution. Retained as a swappable
// alternative; not part of the default specular path.
func DCharlie(linearRoughness, noH float64) float64 {
	invAlpha := 1.0 / linearRoughness
	cos2h := noH * noH
	sin2h := math.Max(1-cos2h, minSin2)
	return (2 + invAlpha) * math.Pow(sin2h, invAlpha*0.5) / (2 * math.Pi)
}
