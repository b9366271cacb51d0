package brdf

import (
	"math"

	"pbr-renderer/internal/mathutil"
)

// IorToF0 converts a relative index of refraction (transmitted over
// incident) into normal-incidence reflectance:
// ((nt - ni) / (nt + ni))^2.
func IorToF0(transmittedIor, incidentIor float64) float64 {
	return mathutil.Pow2((transmittedIor - incidentIor) / (transmittedIor + incidentIor))
}

// F0ToIor is the inverse of IorToF0 against air: (1 + sqrt(F0)) / (1 - sqrt(F0)).
func F0ToIor(f0 float64) float64 {
	r := math.Sqrt(f0)
	return (1 + r) / (1 - r)
}

// F0ClearCoatToSurface adjusts a base F0 for sitting under a clear-coat
// layer of fixed IOR 1.5. Closed-form polynomial fit of
// IorToF0(F0ToIor(f0), 1.5), clamped to [0, 1].
func F0ClearCoatToSurface(f0 float64) float64 {
	return mathutil.Saturate(f0*(f0*(0.941892-0.263008*f0)+0.346479) - 0.0285998)
}
