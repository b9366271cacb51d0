package shading

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"pbr-renderer/internal/brdf"
	"pbr-renderer/internal/mathutil"
)

// PrepareMaterial derives the secondary material parameters from the raw
// authored surface. Inputs outside their valid range are clamped; given
// well-formed geometry the function cannot fail.
func PrepareMaterial(geometry GeometricContext, surface Surface, dfg DFG) Material {
	metallic := mathutil.Saturate(surface.Metallic)
	clearCoat := mathutil.Saturate(surface.ClearCoat)

	// Metallic/dielectric split of the authored base color.
	diffuseColor := surface.Albedo.Mul(1 - metallic)
	specularColor := mathutil.MixVec(
		mgl64.Vec3{DielectricF0, DielectricF0, DielectricF0},
		surface.Albedo, metallic)

	// Coat roughness: authored parameter blends between the global floor
	// and the coat cap, then squared for the linear form.
	clearCoatRoughness := mathutil.Mix(MinRoughness, MaxClearCoatRoughness,
		mathutil.Saturate(surface.ClearCoatRoughness))
	linearClearCoatRoughness := clearCoatRoughness * clearCoatRoughness

	// Base roughness cannot drop below the floor established by the coat.
	specularRoughness := math.Max(
		mgl64.Clamp(surface.Roughness, MinRoughness, 1),
		clearCoatRoughness)
	linearRoughness := specularRoughness * specularRoughness

	// A coat layer changes the apparent reflectance of the surface below it.
	specularColor = mathutil.MixVec(specularColor, mgl64.Vec3{
		brdf.F0ClearCoatToSurface(specularColor[0]),
		brdf.F0ClearCoatToSurface(specularColor[1]),
		brdf.F0ClearCoatToSurface(specularColor[2]),
	}, clearCoat)

	dotNV := mathutil.Saturate(geometry.Normal.Dot(geometry.ViewDir))

	dfgSample := dfg.Sample(specularRoughness, dotNV)

	// Multi-bounce energy correction: 1 + F0 * (1/dfg.y - 1), faded out by
	// the enable factor.
	invY := 1/math.Max(dfgSample[1], brdf.Epsilon) - 1
	energy := mgl64.Vec3{
		1 + specularColor[0]*invY,
		1 + specularColor[1]*invY,
		1 + specularColor[2]*invY,
	}
	energy = mathutil.MixVec(mgl64.Vec3{1, 1, 1}, energy,
		mathutil.Saturate(surface.EnergyCompensation))

	return Material{
		DiffuseColor:             diffuseColor,
		SpecularColor:            specularColor,
		SpecularRoughness:        specularRoughness,
		LinearRoughness:          linearRoughness,
		ClearCoat:                clearCoat,
		ClearCoatRoughness:       clearCoatRoughness,
		LinearClearCoatRoughness: linearClearCoatRoughness,
		DotNV:                    dotNV,
		DFG:                      dfgSample,
		EnergyCompensation:       energy,
		AnisotropicT:             mathutil.SafeNormalize(surface.Tangent),
		AnisotropicB:             mathutil.SafeNormalize(surface.Bitangent),
		Anisotropy:               surface.Anisotropy,
		ExactVisibility:          surface.ExactVisibility,
	}
}
