package shading

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"pbr-renderer/internal/brdf"
	"pbr-renderer/internal/mathutil"
)

// DFG looks up the prefiltered environment-BRDF pair (scale, bias) for a
// perceptual roughness and view cosine. The two implementations are
// interchangeable; one instance is used consistently within an evaluation.
type DFG interface {
	Sample(roughness, noV float64) mgl64.Vec2
}

// DFGApprox is the closed-form polynomial fit (Karis' EnvBRDF
// approximation). Zero memory, slightly less accurate than the table.
type DFGApprox struct{}

// Karis' four constant vectors. A generated table must reproduce the same
// curve shape these encode.
var (
	dfgC0 = mgl64.Vec4{-1.0, -0.0275, -0.572, 0.022}
	dfgC1 = mgl64.Vec4{1.0, 0.0425, 1.04, -0.04}
)

func (DFGApprox) Sample(roughness, noV float64) mgl64.Vec2 {
	r := dfgC0.Mul(roughness).Add(dfgC1)
	a004 := math.Min(r[0]*r[0], math.Exp2(-9.28*noV))*r[0] + r[1]
	return mgl64.Vec2{-1.04*a004 + r[2], 1.04*a004 + r[3]}
}

// DFGTable is a precomputed 2D lookup indexed by (roughness, noV),
// generated by split-sum Monte-Carlo integration of the GGX specular BRDF
// over a Hammersley point set. Read-only after construction and safe for
// concurrent use.
type DFGTable struct {
	size int
	data []mgl64.Vec2 // row = noV, col = roughness
}

// NewDFGTable integrates a size x size table with the given sample count
// per texel. 64 texels and 512 samples are enough for visually smooth
// results.
func NewDFGTable(size, samples int) *DFGTable {
	t := &DFGTable{size: size, data: make([]mgl64.Vec2, size*size)}
	for y := 0; y < size; y++ {
		noV := (float64(y) + 0.5) / float64(size)
		for x := 0; x < size; x++ {
			roughness := (float64(x) + 0.5) / float64(size)
			t.data[y*size+x] = integrateDFG(roughness, noV, samples)
		}
	}
	return t
}

// Sample bilinearly filters the table with edge clamping.
func (t *DFGTable) Sample(roughness, noV float64) mgl64.Vec2 {
	fx := mathutil.Saturate(roughness)*float64(t.size) - 0.5
	fy := mathutil.Saturate(noV)*float64(t.size) - 0.5

	x0 := clampIndex(int(math.Floor(fx)), t.size)
	y0 := clampIndex(int(math.Floor(fy)), t.size)
	x1 := clampIndex(x0+1, t.size)
	y1 := clampIndex(y0+1, t.size)
	dx := mathutil.Saturate(fx - float64(x0))
	dy := mathutil.Saturate(fy - float64(y0))

	top := mathutil.MixVec2(t.at(x0, y0), t.at(x1, y0), dx)
	bot := mathutil.MixVec2(t.at(x0, y1), t.at(x1, y1), dx)
	return mathutil.MixVec2(top, bot, dy)
}

func (t *DFGTable) at(x, y int) mgl64.Vec2 {
	return t.data[y*t.size+x]
}

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

// integrateDFG computes one texel of the split-sum table: scale and bias
// of the Fresnel term after integrating GGX D and V over the hemisphere.
func integrateDFG(roughness, noV float64, samples int) mgl64.Vec2 {
	a := roughness * roughness
	v := mgl64.Vec3{math.Sqrt(1 - noV*noV), 0, noV}

	var scale, bias float64
	for i := 0; i < samples; i++ {
		u1, u2 := hammersley(uint32(i), samples)
		h := importanceSampleGGX(u1, u2, a)
		l := h.Mul(2 * v.Dot(h)).Sub(v)

		noL := l[2]
		if noL <= 0 {
			continue
		}
		noH := h[2]
		voH := math.Max(v.Dot(h), 0)
		if noH <= 0 || voH <= 0 {
			continue
		}

		vis := brdf.VSmithGGXCorrelated(a, noV, noL)
		// G * VoH / (NoH * NoV) with V = G / (4 NoV NoL)
		g := 4 * vis * noL * voH / noH
		fc := math.Pow(1-voH, 5)
		scale += (1 - fc) * g
		bias += fc * g
	}
	inv := 1 / float64(samples)
	return mgl64.Vec2{scale * inv, bias * inv}
}

// hammersley returns the i-th point of an n-point Hammersley set.
func hammersley(i uint32, n int) (float64, float64) {
	bits := i
	bits = (bits << 16) | (bits >> 16)
	bits = ((bits & 0x55555555) << 1) | ((bits & 0xAAAAAAAA) >> 1)
	bits = ((bits & 0x33333333) << 2) | ((bits & 0xCCCCCCCC) >> 2)
	bits = ((bits & 0x0F0F0F0F) << 4) | ((bits & 0xF0F0F0F0) >> 4)
	bits = ((bits & 0x00FF00FF) << 8) | ((bits & 0xFF00FF00) >> 8)
	return float64(i) / float64(n), float64(bits) * 2.3283064365386963e-10
}

// importanceSampleGGX maps a 2D uniform sample onto a GGX-distributed
// half vector around +Z.
func importanceSampleGGX(u1, u2, a float64) mgl64.Vec3 {
	phi := 2 * math.Pi * u1
	cosTheta := math.Sqrt((1 - u2) / (1 + (a*a-1)*u2))
	sinTheta := math.Sqrt(1 - cosTheta*cosTheta)
	return mgl64.Vec3{sinTheta * math.Cos(phi), sinTheta * math.Sin(phi), cosTheta}
}

// EnvBRDF applies a prefiltered DFG pair to a specular color:
// specularColor * scale + bias.
func EnvBRDF(specularColor mgl64.Vec3, dfg mgl64.Vec2) mgl64.Vec3 {
	return specularColor.Mul(dfg[0]).Add(mgl64.Vec3{dfg[1], dfg[1], dfg[1]})
}
