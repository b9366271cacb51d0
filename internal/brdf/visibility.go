package brdf

import "math"

// VSmithGGXCorrelated is the exact height-correlated Smith visibility term
// (Heitz 2014), with the masking and shadowing G factors divided into the
// BRDF. Note the noL/noV swap between the two lambda terms: each lambda
// carries the opposite cosine as its outer factor. That follows from the
// correlated derivation and must not be "fixed".
func VSmithGGXCorrelated(linearRoughness, noV, noL float64) float64 {
	a2 := linearRoughness * linearRoughness
	lambdaV := noL * math.Sqrt((noV-a2*noV)*noV+a2)
	lambdaL := noV * math.Sqrt((noL-a2*noL)*noL+a2)
	return 0.5 / math.Max(lambdaV+lambdaL, Epsilon)
}

// VSmithGGXCorrelatedFast is Hammon's approximation of the correlated
// Smith term and the default visibility of the specular path. The result
// is capped at 0.5, its value at normal incidence, so the approximation
// error at grazing angles cannot blow up into fireflies.
func VSmithGGXCorrelatedFast(linearRoughness, noV, noL float64) float64 {
	den := 2*noL*noV*(1-linearRoughness) + (noL+noV)*linearRoughness
	return math.Min(0.5/math.Max(den, Epsilon), 0.5)
}

// VSmithGGXCorrelatedAnisotropic is the anisotropic height-correlated
// Smith visibility. The lambda terms are recomputed per light call rather
// than hoisted; each call handles a single light.
func VSmithGGXCorrelatedAnisotropic(at, ab, toV, boV, toL, boL, noV, noL float64) float64 {
	lambdaV := noL * vecLen3(at*toV, ab*boV, noV)
	lambdaL := noV * vecLen3(at*toL, ab*boL, noL)
	return 0.5 / math.Max(lambdaV+lambdaL, Epsilon)
}

// VKelemen is the approximate visibility term of the clear-coat lobe:
// saturate(0.25 / LoH^2).
func VKelemen(loH float64) float64 {
	v := 0.25 / math.Max(loH*loH, Epsilon)
	if v > 1 {
		return 1
	}
	return v
}

func vecLen3(x, y, z float64) float64 {
	return math.Sqrt(x*x + y*y + z*z)
}
