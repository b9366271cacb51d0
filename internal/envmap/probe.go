// Package envmap provides the environment probes: black-box sampling
// functions mapping a world-space direction (and a blur level for specular
// lookups) to linear RGB radiance. Probes are read-only after construction
// and safe for concurrent sampling.
package envmap

import "github.com/go-gl/mathgl/mgl64"

// Probe is the pair of environment lookups the indirect integrator needs.
type Probe interface {
	// Irradiance returns the integrated diffuse irradiance arriving at a
	// surface with the given world-space normal.
	Irradiance(dir mgl64.Vec3) mgl64.Vec3

	// Radiance returns specular radiance for the given reflection
	// direction at the given blur level. lod 0 is sharpest; fractional
	// levels interpolate.
	Radiance(dir mgl64.Vec3, lod float64) mgl64.Vec3

	// MaxLod is the deepest valid blur level.
	MaxLod() float64
}
