package shading

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pbr-renderer/internal/envmap"
	"pbr-renderer/internal/tonemap"
)

func testParams() Params {
	return Params{
		Albedo:    mgl64.Vec3{0.8, 0.2, 0.2},
		Roughness: 0.5,
		DirectionalLights: []DirectionalLight{
			{Direction: mgl64.Vec3{0, 0, 1}, Color: mgl64.Vec3{1, 1, 1}},
		},
		IndirectDiffuseIntensity:  1,
		IndirectSpecularIntensity: 1,
		EnergyCompensation:        1,
		ToneMap:                   tonemap.ACES,
	}
}

func testInput() FragmentInput {
	return FragmentInput{
		Position:  mgl64.Vec3{0, 0, -2},
		Normal:    mgl64.Vec3{0, 0, 2}, // denormalized on purpose
		Tangent:   mgl64.Vec3{1, 0, 0},
		Bitangent: mgl64.Vec3{0, 1, 0},
	}
}

func TestShadeProducesDisplayRangeColor(t *testing.T) {
	e := NewEvaluator(testParams(), nil, envmap.DefaultSky(), mgl64.Ident4())
	rgb, alpha := e.Shade(testInput())

	assert.Equal(t, 1.0, alpha)
	for i := 0; i < 3; i++ {
		require.False(t, math.IsNaN(rgb[i]))
		assert.GreaterOrEqual(t, rgb[i], 0.0)
		assert.LessOrEqual(t, rgb[i], 1.0)
	}
	// A lit red-ish material shades red-dominant.
	assert.Greater(t, rgb[0], rgb[1])
}

func TestShadeWithoutProbeSkipsIndirect(t *testing.T) {
	params := testParams()
	params.DirectionalLights = nil
	params.Emissive = mgl64.Vec3{}
	params.ToneMap = tonemap.Linear

	e := NewEvaluator(params, nil, nil, mgl64.Ident4())
	rgb, _ := e.Shade(testInput())
	assert.Equal(t, mgl64.Vec3{}, rgb)
}

func TestShadeEmissiveOnly(t *testing.T) {
	params := testParams()
	params.DirectionalLights = nil
	params.Emissive = mgl64.Vec3{0.25, 0.25, 0.25}
	params.ToneMap = tonemap.Linear

	e := NewEvaluator(params, nil, nil, mgl64.Ident4())
	rgb, _ := e.Shade(testInput())

	// Linear operator, so only the display encode applies to the emissive.
	assert.InDelta(t, math.Pow(0.25, 1/2.2), rgb[0], 1e-9)
}

func TestShadeUnrealSkipsDisplayEncode(t *testing.T) {
	params := testParams()
	params.DirectionalLights = nil
	params.Emissive = mgl64.Vec3{1, 1, 1}
	params.ToneMap = tonemap.Unreal

	e := NewEvaluator(params, nil, nil, mgl64.Ident4())
	rgb, _ := e.Shade(testInput())

	// The operator's own curve, with no extra gamma on top.
	assert.InDelta(t, 1.0/(1+0.155)*1.019, rgb[0], 1e-9)
}

func TestPointLightRange(t *testing.T) {
	near := incidentFromPoint(PointLight{
		Position: mgl64.Vec3{0, 0, 0},
		Color:    mgl64.Vec3{10, 10, 10},
		Range:    5,
	}, mgl64.Vec3{0, 0, -1})
	require.True(t, near.Visible)
	assert.Greater(t, near.Color[0], 0.0)

	far := incidentFromPoint(PointLight{
		Position: mgl64.Vec3{0, 0, 0},
		Color:    mgl64.Vec3{10, 10, 10},
		Range:    5,
	}, mgl64.Vec3{0, 0, -20})
	assert.False(t, far.Visible)
}

func TestPointLightFalloffMonotone(t *testing.T) {
	light := PointLight{Position: mgl64.Vec3{}, Color: mgl64.Vec3{1, 1, 1}, Range: 10}
	prev := math.Inf(1)
	for d := 0.5; d < 10; d += 0.5 {
		il := incidentFromPoint(light, mgl64.Vec3{0, 0, -d})
		require.True(t, il.Visible)
		assert.LessOrEqual(t, il.Color[0], prev)
		prev = il.Color[0]
	}
}

func TestSpecularDominantDirection(t *testing.T) {
	n := mgl64.Vec3{0, 0, 1}
	r := mgl64.Vec3{1, 0, 1}.Normalize()

	// A perfect mirror keeps the reflection vector.
	sharp := specularDominantDirection(n, r, 0)
	assert.InDelta(t, 0.0, sharp.Sub(r).Len(), 1e-12)

	// Full roughness collapses onto the normal.
	rough := specularDominantDirection(n, r, 1)
	assert.InDelta(t, 0.0, rough.Sub(n).Len(), 1e-12)

	// In between, the bias grows with roughness.
	mid := specularDominantDirection(n, r, 0.5)
	assert.Greater(t, mid.Dot(n), r.Dot(n))
}

func TestReflectedVectorAnisotropicBend(t *testing.T) {
	geom := GeometricContext{
		Normal:  mgl64.Vec3{0, 0, 1},
		ViewDir: mgl64.Vec3{0.4, 0.1, 0.9}.Normalize(),
	}
	iso := PrepareMaterial(geom, baseSurface(), DFGApprox{})
	rIso := reflectedVector(geom, &iso)

	s := baseSurface()
	s.Anisotropy = 0.8
	aniso := PrepareMaterial(geom, s, DFGApprox{})
	rAniso := reflectedVector(geom, &aniso)

	// The bent normal moves the reflection away from the mirror direction.
	assert.Greater(t, rIso.Sub(rAniso).Len(), 1e-3)
	assert.InDelta(t, 1.0, rAniso.Len(), 1e-9)
}

func TestShadeIsPureAcrossCalls(t *testing.T) {
	e := NewEvaluator(testParams(), nil, envmap.DefaultSky(), mgl64.Ident4())
	in := testInput()
	a, _ := e.Shade(in)
	b, _ := e.Shade(in)
	assert.Equal(t, a, b)
}
