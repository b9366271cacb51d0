package shading

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"

	"pbr-renderer/internal/brdf"
)

func uniformIndirect(level float64) IndirectInput {
	c := mgl64.Vec3{level, level, level}
	return IndirectInput{
		Irradiance:        c,
		Radiance:          c,
		ClearCoatRadiance: c,
		DiffuseIntensity:  1,
		SpecularIntensity: 1,
	}
}

func TestIndirectDiffuseScalesWithIntensity(t *testing.T) {
	geom := headOnGeometry()
	mat := PrepareMaterial(geom, baseSurface(), DFGApprox{})

	in := uniformIndirect(1)
	var ref ReflectedLight
	Indirect(in, &mat, &ref)

	in.DiffuseIntensity = 0.5
	var half ReflectedLight
	Indirect(in, &mat, &half)

	assert.InDelta(t, 0.0, half.IndirectDiffuse.Sub(ref.IndirectDiffuse.Mul(0.5)).Len(), 1e-12)
	assert.Equal(t, ref.IndirectSpecular, half.IndirectSpecular)
}

func TestIndirectSpecularScalesWithIntensity(t *testing.T) {
	geom := headOnGeometry()
	mat := PrepareMaterial(geom, baseSurface(), DFGApprox{})

	in := uniformIndirect(1)
	var ref ReflectedLight
	Indirect(in, &mat, &ref)

	in.SpecularIntensity = 0
	var off ReflectedLight
	Indirect(in, &mat, &off)

	assert.Equal(t, mgl64.Vec3{}, off.IndirectSpecular)
	assert.Equal(t, ref.IndirectDiffuse, off.IndirectDiffuse)
}

func TestIndirectDiffuseIsLambertianAlbedo(t *testing.T) {
	geom := headOnGeometry()
	mat := PrepareMaterial(geom, baseSurface(), DFGApprox{})

	var out ReflectedLight
	Indirect(uniformIndirect(1), &mat, &out)
	assert.InDelta(t, 0.0, out.IndirectDiffuse.Sub(mat.DiffuseColor).Len(), 1e-12)
}

func TestIndirectCoatAttenuatesBaseSpecular(t *testing.T) {
	geom := headOnGeometry()

	matPlain := PrepareMaterial(geom, baseSurface(), DFGApprox{})

	coated := baseSurface()
	coated.ClearCoat = 1
	matCoated := PrepareMaterial(geom, coated, DFGApprox{})

	// Zero out the coat's own radiance so only the attenuation shows.
	in := uniformIndirect(1)
	in.ClearCoatRadiance = mgl64.Vec3{}

	var plain, withCoat ReflectedLight
	Indirect(in, &matPlain, &plain)
	Indirect(in, &matCoated, &withCoat)

	fc := brdf.FSchlickScalar(DielectricF0, 1, matCoated.DotNV)
	assert.Greater(t, fc, 0.0)
	assert.Less(t, withCoat.IndirectSpecular.Len(), plain.IndirectSpecular.Len())
}

func TestIndirectAccumulates(t *testing.T) {
	geom := headOnGeometry()
	mat := PrepareMaterial(geom, baseSurface(), DFGApprox{})

	var once, twice ReflectedLight
	Indirect(uniformIndirect(1), &mat, &once)
	Indirect(uniformIndirect(1), &mat, &twice)
	Indirect(uniformIndirect(1), &mat, &twice)

	assert.InDelta(t, 0.0, twice.IndirectDiffuse.Sub(once.IndirectDiffuse.Mul(2)).Len(), 1e-12)
	assert.InDelta(t, 0.0, twice.IndirectSpecular.Sub(once.IndirectSpecular.Mul(2)).Len(), 1e-12)
}
