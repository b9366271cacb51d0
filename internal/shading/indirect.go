package shading

import (
	"github.com/go-gl/mathgl/mgl64"

	"pbr-renderer/internal/brdf"
	"pbr-renderer/internal/mathutil"
)

// IndirectInput carries the environment-probe samples gathered by the
// caller: integrated diffuse irradiance for the surface normal, specular
// radiance for the (roughness-blurred) reflection direction, and a second
// radiance sample at the clear-coat roughness.
type IndirectInput struct {
	Irradiance        mgl64.Vec3
	Radiance          mgl64.Vec3
	ClearCoatRadiance mgl64.Vec3

	DiffuseIntensity  float64
	SpecularIntensity float64
}

// Indirect adds the environment contribution to the accumulator. The base
// specular uses the material's prefiltered DFG pair; the coat applies the
// same attenuation policy as the direct integrator, with its Fresnel taken
// at the view angle.
func Indirect(in IndirectInput, material *Material, out *ReflectedLight) {
	diffuse := mathutil.MulElem(in.Irradiance, material.DiffuseColor).
		Mul(in.DiffuseIntensity)

	base := mathutil.MulElem(in.Radiance, EnvBRDF(material.SpecularColor, material.DFG))
	base = mathutil.MulElem(base, material.EnergyCompensation)

	fc := brdf.FSchlickScalar(DielectricF0, 1.0, material.DotNV) * material.ClearCoat
	specular := base.Mul((1 - fc) * (1 - fc)).
		Add(in.ClearCoatRadiance.Mul(fc)).
		Mul(in.SpecularIntensity)

	out.IndirectDiffuse = out.IndirectDiffuse.Add(diffuse)
	out.IndirectSpecular = out.IndirectSpecular.Add(specular)
}
