package shading

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"pbr-renderer/internal/brdf"
	"pbr-renderer/internal/mathutil"
)

// Direct evaluates one punctual light against the prepared material and
// adds its diffuse, specular, and clear-coat contributions to the
// accumulator. The incoming radiance is scaled by pi to compensate for the
// 1/pi folded into the Lambert diffuse term (punctual-light convention).
func Direct(light IncidentLight, geometry GeometricContext, material *Material, out *ReflectedLight) {
	if !light.Visible {
		return
	}

	n := geometry.Normal
	v := geometry.ViewDir
	l := light.Direction

	noL := mathutil.Saturate(n.Dot(l))
	if noL <= 0 {
		return
	}

	h := mathutil.SafeNormalize(l.Add(v))
	noH := mathutil.Saturate(n.Dot(h))
	loH := mathutil.Saturate(l.Dot(h))

	irradiance := light.Color.Mul(noL * math.Pi)

	diffuse := material.DiffuseColor.Mul(1 / math.Pi)

	var specular mgl64.Vec3
	if material.Anisotropy != 0 {
		specular = specularAnisotropic(material, geometry, l, h, noL, noH, loH)
	} else {
		specular = specularIsotropic(material, noL, noH, loH)
	}

	fcc, coat := clearCoatLobe(material, noH, loH)

	// The coat sits above the base layer: light reflected by it never
	// reaches the base. Diffuse loses one interface pass, specular two.
	attenuation := 1 - fcc
	base := mathutil.MulElem(specular, material.EnergyCompensation).
		Mul(attenuation * attenuation).
		Add(mgl64.Vec3{coat, coat, coat})

	out.DirectDiffuse = out.DirectDiffuse.Add(
		mathutil.MulElem(irradiance, diffuse).Mul(attenuation))
	out.DirectSpecular = out.DirectSpecular.Add(
		mathutil.MulElem(irradiance, base))
}

// specularIsotropic is the Cook-Torrance F*V*D product with isotropic GGX.
func specularIsotropic(material *Material, noL, noH, loH float64) mgl64.Vec3 {
	a := material.LinearRoughness
	d := brdf.DGGX(a, noH)
	var vis float64
	if material.ExactVisibility {
		vis = brdf.VSmithGGXCorrelated(a, material.DotNV, noL)
	} else {
		vis = brdf.VSmithGGXCorrelatedFast(a, material.DotNV, noL)
	}
	f := brdf.FSchlick(material.SpecularColor, loH)
	return f.Mul(vis * d)
}

// specularAnisotropic stretches the GGX lobe along the tangent frame by the
// signed anisotropy parameter.
func specularAnisotropic(material *Material, geometry GeometricContext, l, h mgl64.Vec3, noL, noH, loH float64) mgl64.Vec3 {
	t := material.AnisotropicT
	b := material.AnisotropicB
	v := geometry.ViewDir

	toV, boV := t.Dot(v), b.Dot(v)
	toL, boL := t.Dot(l), b.Dot(l)
	toH, boH := t.Dot(h), b.Dot(h)

	at := math.Max(material.LinearRoughness*(1+material.Anisotropy), MinLinearRoughness)
	ab := math.Max(material.LinearRoughness*(1-material.Anisotropy), MinLinearRoughness)

	d := brdf.DGGXAnisotropic(at, ab, toH, boH, noH)
	vis := brdf.VSmithGGXCorrelatedAnisotropic(at, ab, toV, boV, toL, boL, material.DotNV, noL)
	f := brdf.FSchlick(material.SpecularColor, loH)
	return f.Mul(vis * d)
}

// clearCoatLobe evaluates the secondary dielectric specular layer. Returns
// the coat Fresnel (used by callers to attenuate the base layer) and the
// coat's own specular contribution.
func clearCoatLobe(material *Material, noH, loH float64) (fcc, spec float64) {
	if material.ClearCoat <= 0 {
		return 0, 0
	}
	d := brdf.DGGX(material.LinearClearCoatRoughness, noH)
	vis := brdf.VKelemen(loH)
	fcc = brdf.FSchlickScalar(DielectricF0, 1.0, loH) * material.ClearCoat
	return fcc, d * vis * fcc
}
