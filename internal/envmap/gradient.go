package envmap

import (
	"github.com/go-gl/mathgl/mgl64"

	"pbr-renderer/internal/mathutil"
)

// Gradient is an analytic sky probe: a vertical blend from ground color
// through horizon to zenith. Cheap, always available, and useful as the
// default environment when no image probe is configured.
type Gradient struct {
	Zenith  mgl64.Vec3
	Horizon mgl64.Vec3
	Ground  mgl64.Vec3

	avg mgl64.Vec3
}

const gradientMaxLod = 4.0

// NewGradient builds a gradient probe from three linear colors.
func NewGradient(zenith, horizon, ground mgl64.Vec3) *Gradient {
	// Hemisphere-weighted average: horizon dominates the solid angle.
	avg := zenith.Mul(0.25).Add(horizon.Mul(0.5)).Add(ground.Mul(0.25))
	return &Gradient{Zenith: zenith, Horizon: horizon, Ground: ground, avg: avg}
}

// DefaultSky is a neutral daylight gradient.
func DefaultSky() *Gradient {
	return NewGradient(
		mgl64.Vec3{0.35, 0.48, 0.7},
		mgl64.Vec3{0.75, 0.78, 0.82},
		mgl64.Vec3{0.22, 0.2, 0.18},
	)
}

func (g *Gradient) Radiance(dir mgl64.Vec3, lod float64) mgl64.Vec3 {
	y := mathutil.SafeNormalize(dir)[1]

	var sharp mgl64.Vec3
	if y >= 0 {
		sharp = mathutil.MixVec(g.Horizon, g.Zenith, mathutil.Saturate(y))
	} else {
		sharp = mathutil.MixVec(g.Horizon, g.Ground, mathutil.Saturate(-y))
	}

	// Blur collapses the gradient toward its average.
	t := mathutil.Saturate(lod / gradientMaxLod)
	return mathutil.MixVec(sharp, g.avg, t)
}

func (g *Gradient) Irradiance(dir mgl64.Vec3) mgl64.Vec3 {
	// Diffuse irradiance for an analytic gradient: halfway between the
	// fully blurred environment and the sharp value along the normal.
	return g.Radiance(dir, gradientMaxLod).Add(g.Radiance(dir, 0)).Mul(0.5)
}

func (g *Gradient) MaxLod() float64 {
	return gradientMaxLod
}
