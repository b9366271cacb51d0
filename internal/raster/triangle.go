package raster

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// ShadeFunc computes the display-encoded color of one fragment from its
// interpolated view-space attributes. Returned channels are in [0,1].
type ShadeFunc func(position, normal, tangent, bitangent mgl64.Vec3) mgl64.Vec3

// screenVertex is a projected vertex ready for rasterization. Attribute
// vectors are pre-multiplied by InvW so the pixel loop can interpolate
// them linearly in screen space and divide once per fragment.
type screenVertex struct {
	X, Y float64
	InvW float64

	Pos   mgl64.Vec3
	Norm  mgl64.Vec3
	Tan   mgl64.Vec3
	Bitan mgl64.Vec3
}

// fillTriangle rasterizes one triangle into the rows [yMin, yMax) of fb,
// invoking shade once per visible fragment.
//
// This is the HOT PATH — the inner loop does no allocation. The z-test
// compares interpolated 1/w (larger is closer), which is affine in screen
// space and therefore cheap to interpolate exactly.
func fillTriangle(fb *FrameBuffer, v0, v1, v2 *screenVertex, yMin, yMax int, shade ShadeFunc) {
	// Fragments behind the eye would need clipping; reject whole triangles
	// that cross the near plane instead, which the orbit camera never
	// produces for on-screen geometry.
	if v0.InvW <= 0 || v1.InvW <= 0 || v2.InvW <= 0 {
		return
	}

	x0, y0 := v0.X, v0.Y
	x1, y1 := v1.X, v1.Y
	x2, y2 := v2.X, v2.Y

	// Bounding box clamped to the caller's row band
	minX := int(math.Min(math.Min(x0, x1), x2))
	maxX := int(math.Max(math.Max(x0, x1), x2)) + 1
	minY := int(math.Min(math.Min(y0, y1), y2))
	maxY := int(math.Max(math.Max(y0, y1), y2)) + 1

	if minX < 0 {
		minX = 0
	}
	if maxX >= fb.Width {
		maxX = fb.Width - 1
	}
	if minY < yMin {
		minY = yMin
	}
	if maxY >= yMax {
		maxY = yMax - 1
	}
	if minX > maxX || minY > maxY {
		return
	}

	// Barycentric setup
	det := (y1-y2)*(x0-x2) + (x2-x1)*(y0-y2)
	if det > -1e-8 && det < 1e-8 {
		return
	}
	invDet := 1.0 / det

	dy12 := y1 - y2
	dx21 := x2 - x1
	dy20 := y2 - y0
	dx02 := x0 - x2

	for sy := minY; sy <= maxY; sy++ {
		dsy := float64(sy) + 0.5 - y2
		rowOff := sy * fb.Width
		for sx := minX; sx <= maxX; sx++ {
			dsx := float64(sx) + 0.5 - x2
			w0 := (dy12*dsx + dx21*dsy) * invDet
			w1 := (dy20*dsx + dx02*dsy) * invDet
			w2 := 1.0 - w0 - w1

			if w0 < 0 || w1 < 0 || w2 < 0 {
				continue
			}

			invW := w0*v0.InvW + w1*v1.InvW + w2*v2.InvW
			zIdx := rowOff + sx
			if invW <= fb.ZBuf[zIdx] {
				continue
			}
			fb.ZBuf[zIdx] = invW

			// Perspective-correct attribute recovery
			w := 1.0 / invW
			pos := lerp3(v0.Pos, v1.Pos, v2.Pos, w0, w1, w2).Mul(w)
			norm := lerp3(v0.Norm, v1.Norm, v2.Norm, w0, w1, w2).Mul(w)
			tan := lerp3(v0.Tan, v1.Tan, v2.Tan, w0, w1, w2).Mul(w)
			bitan := lerp3(v0.Bitan, v1.Bitan, v2.Bitan, w0, w1, w2).Mul(w)

			c := shade(pos, norm, tan, bitan)

			pxIdx := zIdx * 4
			fb.Color[pxIdx] = clamp255(c[0] * 255)
			fb.Color[pxIdx+1] = clamp255(c[1] * 255)
			fb.Color[pxIdx+2] = clamp255(c[2] * 255)
			fb.Color[pxIdx+3] = 255
		}
	}
}

func lerp3(a, b, c mgl64.Vec3, wa, wb, wc float64) mgl64.Vec3 {
	return mgl64.Vec3{
		wa*a[0] + wb*b[0] + wc*c[0],
		wa*a[1] + wb*b[1] + wc*c[1],
		wa*a[2] + wb*b[2] + wc*c[2],
	}
}

func clamp255(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}
