package raster

import "github.com/go-gl/mathgl/mgl64"

// Camera bundles the view and projection transforms for a render pass.
type Camera struct {
	View       mgl64.Mat4
	Projection mgl64.Mat4
}

// NewOrbitCamera places the eye on the +Z axis at the given distance,
// looking at the origin with +Y up.
func NewOrbitCamera(distance, fovDeg, aspect, near, far float64) Camera {
	return Camera{
		View:       mgl64.LookAtV(mgl64.Vec3{0, 0, distance}, mgl64.Vec3{}, mgl64.Vec3{0, 1, 0}),
		Projection: mgl64.Perspective(mgl64.DegToRad(fovDeg), aspect, near, far),
	}
}

// InverseView returns the view-to-world transform, used to carry
// view-space directions into world space for environment lookups.
func (c Camera) InverseView() mgl64.Mat4 {
	return c.View.Inv()
}
