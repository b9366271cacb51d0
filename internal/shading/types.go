// Package shading implements the physically-based shading evaluator: material
// preparation, the direct and indirect light integrators, and the per-sample
// composition that turns geometric and material inputs into a display-ready
// color. Everything here is a pure function over value types; the only
// mutable state is the per-sample ReflectedLight accumulator.
package shading

import "github.com/go-gl/mathgl/mgl64"

const (
	// MinRoughness floors perceptual roughness away from the specular
	// singularity at zero.
	MinRoughness = 0.045

	// MinLinearRoughness is the matching floor for squared roughness, used
	// by the anisotropic remapping.
	MinLinearRoughness = MinRoughness * MinRoughness

	// MaxClearCoatRoughness caps the coat layer's perceptual roughness.
	MaxClearCoatRoughness = 0.6

	// DielectricF0 is the normal-incidence reflectance of the standard
	// dielectric (IOR ~1.5) used for the metallic/dielectric split and the
	// clear-coat Fresnel.
	DielectricF0 = 0.04
)

// IncidentLight is one discrete light sample: radiance arriving at the
// surface and the unit direction from the surface toward the light.
// Immutable per evaluation.
type IncidentLight struct {
	Color     mgl64.Vec3
	Direction mgl64.Vec3
	Visible   bool
}

// GeometricContext holds the per-sample geometry, derived once from
// interpolated vertex attributes and immutable thereafter. ViewDir points
// from the surface toward the eye.
type GeometricContext struct {
	Position mgl64.Vec3
	Normal   mgl64.Vec3
	ViewDir  mgl64.Vec3
}

// Surface carries the raw authored material parameters before preparation.
// Out-of-range values are clamped by PrepareMaterial, never rejected.
type Surface struct {
	Albedo             mgl64.Vec3 // linear base color
	Metallic           float64
	Roughness          float64 // perceptual
	ClearCoat          float64
	ClearCoatRoughness float64
	Anisotropy         float64    // signed, 0 = isotropic
	Tangent            mgl64.Vec3 // anisotropic basis, need not be unit length
	Bitangent          mgl64.Vec3
	EnergyCompensation float64 // enable factor in [0,1]; 0 disables
	ExactVisibility    bool    // alternate policy: exact Smith term instead of Hammon's
}

// Material holds the prepared parameters consumed by the integrators.
type Material struct {
	DiffuseColor  mgl64.Vec3
	SpecularColor mgl64.Vec3

	SpecularRoughness float64 // perceptual, >= MinRoughness
	LinearRoughness   float64 // SpecularRoughness^2

	ClearCoat                float64
	ClearCoatRoughness       float64
	LinearClearCoatRoughness float64

	DotNV float64
	DFG   mgl64.Vec2 // prefiltered environment-BRDF scale and bias

	EnergyCompensation mgl64.Vec3

	AnisotropicT mgl64.Vec3
	AnisotropicB mgl64.Vec3
	Anisotropy   float64

	ExactVisibility bool
}

// ReflectedLight accumulates the integrator outputs. Fields start at zero
// and are only ever added to; nothing reads them until accumulation is
// complete.
type ReflectedLight struct {
	DirectDiffuse    mgl64.Vec3
	DirectSpecular   mgl64.Vec3
	IndirectDiffuse  mgl64.Vec3
	IndirectSpecular mgl64.Vec3
}

// Total sums the four accumulated components.
func (r *ReflectedLight) Total() mgl64.Vec3 {
	return r.DirectDiffuse.
		Add(r.DirectSpecular).
		Add(r.IndirectDiffuse).
		Add(r.IndirectSpecular)
}
