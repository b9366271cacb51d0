package mathutil

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
)

func TestSaturate(t *testing.T) {
	assert.Equal(t, 0.0, Saturate(-0.5))
	assert.Equal(t, 1.0, Saturate(3.2))
	assert.Equal(t, 0.25, Saturate(0.25))
}

func TestLuminanceWeights(t *testing.T) {
	// Rec.709 weights sum to 1: white has luminance 1
	assert.InDelta(t, 1.0, Luminance(mgl64.Vec3{1, 1, 1}), 1e-12)
	assert.InDelta(t, 0.7152, Luminance(mgl64.Vec3{0, 1, 0}), 1e-12)
}

func TestTransformDirectionIgnoresTranslation(t *testing.T) {
	m := mgl64.Translate3D(10, -4, 2)
	d := TransformDirection(mgl64.Vec3{0, 0, 1}, m)
	assert.InDelta(t, 0.0, d.Sub(mgl64.Vec3{0, 0, 1}).Len(), 1e-12)
}

func TestInverseTransformDirectionUndoesRotation(t *testing.T) {
	m := mgl64.HomogRotate3DY(0.7)
	d := mgl64.Vec3{0.3, -0.2, 0.9}.Normalize()
	back := InverseTransformDirection(TransformDirection(d, m), m)
	assert.InDelta(t, 0.0, back.Sub(d).Len(), 1e-12)
}

func TestReflect(t *testing.T) {
	r := Reflect(mgl64.Vec3{1, -1, 0}.Normalize(), mgl64.Vec3{0, 1, 0})
	assert.InDelta(t, 0.0, r.Sub(mgl64.Vec3{1, 1, 0}.Normalize()).Len(), 1e-12)
}

func TestSRGBRoundTrip(t *testing.T) {
	for _, v := range []float64{0, 0.1, 0.5, 0.73, 1} {
		c := mgl64.Vec3{v, v, v}
		back := LinearToSRGB(SRGBToLinear(c))
		assert.InDelta(t, v, back[0], 1e-12)
	}
}

func TestSRGBByteLUTMatchesFloatDecode(t *testing.T) {
	for _, b := range []uint8{0, 1, 64, 128, 255} {
		want := SRGBToLinear(mgl64.Vec3{float64(b) / 255.0, 0, 0})[0]
		assert.InDelta(t, want, SRGBByteToLinear(b), 1e-12)
	}
}
