package shading

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"pbr-renderer/internal/envmap"
	"pbr-renderer/internal/mathutil"
	"pbr-renderer/internal/tonemap"
)

// DirectionalLight is a punctual light at infinity. Direction points from
// the surface toward the light, in the same space as the fragment inputs.
type DirectionalLight struct {
	Direction mgl64.Vec3
	Color     mgl64.Vec3 // radiance
}

// PointLight is a punctual light with squared-distance falloff windowed by
// Range. Range <= 0 means unbounded.
type PointLight struct {
	Position mgl64.Vec3
	Color    mgl64.Vec3 // intensity at unit distance
	Range    float64
}

// Params bundles every per-draw authored value the evaluator reads. The
// shading-language habit of file-scope uniforms becomes this explicit
// immutable configuration (nothing in the package reads ambient state).
type Params struct {
	Albedo             mgl64.Vec3 // sRGB-encoded authored color
	Metallic           float64
	Roughness          float64
	ClearCoat          float64
	ClearCoatRoughness float64
	Anisotropy         float64
	EnergyCompensation float64    // enable factor in [0,1]
	Emissive           mgl64.Vec3 // linear radiance

	DirectionalLights []DirectionalLight
	PointLights       []PointLight

	IndirectDiffuseIntensity  float64
	IndirectSpecularIntensity float64

	Exposure        float64
	ToneMap         tonemap.Operator
	ExactVisibility bool
}

// FragmentInput is the interpolated per-sample geometry, in view space.
// Vectors may be denormalized by interpolation; Shade renormalizes them.
type FragmentInput struct {
	Position  mgl64.Vec3
	Normal    mgl64.Vec3
	Tangent   mgl64.Vec3
	Bitangent mgl64.Vec3
}

// Evaluator shades one sample at a time. It is stateless across samples
// and safe for concurrent use from any number of goroutines.
type Evaluator struct {
	params      Params
	albedo      mgl64.Vec3 // decoded to linear once
	dfg         DFG
	probe       envmap.Probe
	viewToWorld mgl64.Mat4
}

// NewEvaluator builds an evaluator. probe may be nil to disable indirect
// lighting; dfg defaults to the polynomial approximation. viewToWorld is
// the inverse view matrix, used to carry directions into world space for
// probe lookups.
func NewEvaluator(params Params, dfg DFG, probe envmap.Probe, viewToWorld mgl64.Mat4) *Evaluator {
	if dfg == nil {
		dfg = DFGApprox{}
	}
	if params.Exposure <= 0 {
		params.Exposure = 1
	}
	return &Evaluator{
		params:      params,
		albedo:      mathutil.SRGBToLinear(params.Albedo),
		dfg:         dfg,
		probe:       probe,
		viewToWorld: viewToWorld,
	}
}

// Shade evaluates the full pipeline for one sample: material preparation,
// direct and indirect accumulation, emissive, tone mapping, and display
// encoding. Returns display-ready RGB and an alpha of 1 (this material
// model has no transmission).
func (e *Evaluator) Shade(in FragmentInput) (mgl64.Vec3, float64) {
	// Interpolation denormalizes; rebuild unit vectors.
	n := mathutil.SafeNormalize(in.Normal)
	v := mathutil.SafeNormalize(in.Position.Mul(-1)) // eye at the view-space origin

	geometry := GeometricContext{Position: in.Position, Normal: n, ViewDir: v}

	material := PrepareMaterial(geometry, Surface{
		Albedo:             e.albedo,
		Metallic:           e.params.Metallic,
		Roughness:          e.params.Roughness,
		ClearCoat:          e.params.ClearCoat,
		ClearCoatRoughness: e.params.ClearCoatRoughness,
		Anisotropy:         e.params.Anisotropy,
		Tangent:            in.Tangent,
		Bitangent:          in.Bitangent,
		EnergyCompensation: e.params.EnergyCompensation,
		ExactVisibility:    e.params.ExactVisibility,
	}, e.dfg)

	var reflected ReflectedLight

	for _, light := range e.params.DirectionalLights {
		Direct(IncidentLight{
			Color:     light.Color,
			Direction: mathutil.SafeNormalize(light.Direction),
			Visible:   true,
		}, geometry, &material, &reflected)
	}
	for _, light := range e.params.PointLights {
		Direct(incidentFromPoint(light, geometry.Position), geometry, &material, &reflected)
	}

	if e.probe != nil {
		Indirect(e.gatherIndirect(geometry, &material), &material, &reflected)
	}

	outgoing := reflected.Total().Add(e.params.Emissive).Mul(e.params.Exposure)

	mapped := e.params.ToneMap.Map(outgoing)
	if !e.params.ToneMap.EncodesGamma() {
		mapped = mathutil.LinearToSRGB(mapped)
	}
	return mapped, 1
}

// incidentFromPoint converts a point light into an incident sample at the
// given position, applying windowed inverse-square falloff.
func incidentFromPoint(light PointLight, position mgl64.Vec3) IncidentLight {
	toLight := light.Position.Sub(position)
	dist := toLight.Len()

	if light.Range > 0 && dist > light.Range {
		return IncidentLight{Visible: false}
	}

	falloff := 1 / (dist*dist + 1)
	if light.Range > 0 {
		// Window so the contribution reaches exactly zero at Range.
		w := mathutil.Saturate(1 - mathutil.Pow2(mathutil.Pow2(dist/light.Range)))
		falloff *= w * w
	}

	return IncidentLight{
		Color:     light.Color.Mul(falloff),
		Direction: mathutil.SafeNormalize(toLight),
		Visible:   true,
	}
}

// gatherIndirect samples the probes for the prepared material: irradiance
// along the world normal, radiance along the roughness-biased dominant
// reflection direction, and a coat sample off the geometric normal.
func (e *Evaluator) gatherIndirect(geometry GeometricContext, material *Material) IndirectInput {
	worldN := mathutil.TransformDirection(geometry.Normal, e.viewToWorld)

	r := reflectedVector(geometry, material)
	dominant := specularDominantDirection(geometry.Normal, r, material.LinearRoughness)
	worldR := mathutil.TransformDirection(dominant, e.viewToWorld)

	maxLod := e.probe.MaxLod()

	input := IndirectInput{
		Irradiance:        e.probe.Irradiance(worldN),
		Radiance:          e.probe.Radiance(worldR, material.SpecularRoughness*maxLod),
		DiffuseIntensity:  e.params.IndirectDiffuseIntensity,
		SpecularIntensity: e.params.IndirectSpecularIntensity,
	}

	if material.ClearCoat > 0 {
		// The coat reflects off the geometric normal, unaffected by
		// anisotropic bending.
		coatR := mathutil.Reflect(geometry.ViewDir.Mul(-1), geometry.Normal)
		worldCoatR := mathutil.TransformDirection(coatR, e.viewToWorld)
		input.ClearCoatRadiance = e.probe.Radiance(worldCoatR, material.ClearCoatRoughness*maxLod)
	}
	return input
}

// reflectedVector computes the environment reflection direction. A nonzero
// anisotropy bends the shading normal along the tangent frame before
// reflecting, stretching the reflection the way the specular lobe is
// stretched.
func reflectedVector(geometry GeometricContext, material *Material) mgl64.Vec3 {
	v := geometry.ViewDir
	if material.Anisotropy == 0 {
		return mathutil.Reflect(v.Mul(-1), geometry.Normal)
	}

	direction := material.AnisotropicT
	if material.Anisotropy >= 0 {
		direction = material.AnisotropicB
	}
	anisotropicTangent := direction.Cross(v)
	anisotropicNormal := anisotropicTangent.Cross(direction)
	bent := mathutil.SafeNormalize(mathutil.MixVec(
		geometry.Normal, mathutil.SafeNormalize(anisotropicNormal),
		mathutil.Saturate(math.Abs(material.Anisotropy))))
	return mathutil.Reflect(v.Mul(-1), bent)
}

// specularDominantDirection biases the mirror reflection toward the normal
// as roughness grows, approximating the dominant direction of a broad
// specular lobe.
func specularDominantDirection(n, r mgl64.Vec3, linearRoughness float64) mgl64.Vec3 {
	return mathutil.SafeNormalize(mathutil.MixVec(r, n, linearRoughness*linearRoughness))
}
