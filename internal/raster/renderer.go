package raster

import (
	"image"
	"runtime"
	"sync"

	"github.com/go-gl/mathgl/mgl64"

	"pbr-renderer/internal/mesh"
)

// Options controls one render pass.
type Options struct {
	Width       int
	Height      int
	Supersample int // render at N x target resolution, then downsample
	Workers     int // 0 means runtime.NumCPU()

	// Background, when set, fills pixels not covered by geometry from the
	// view-space ray direction through that pixel.
	Background func(ray mgl64.Vec3) mgl64.Vec3
}

func (o Options) normalized() Options {
	if o.Supersample < 1 {
		o.Supersample = 1
	}
	if o.Workers <= 0 {
		o.Workers = runtime.NumCPU()
	}
	return o
}

// Render rasterizes the mesh under the given model transform and camera,
// shading every covered fragment with shade. Work is split into horizontal
// row bands, one goroutine per band, so no two workers ever touch the same
// pixel and the z-buffer needs no locking.
func Render(m *mesh.Mesh, cam Camera, model mgl64.Mat4, shade ShadeFunc, opts Options) *image.NRGBA {
	opts = opts.normalized()
	rw := opts.Width * opts.Supersample
	rh := opts.Height * opts.Supersample
	fb := NewFrameBuffer(rw, rh)

	verts := projectVertices(m, cam, model, rw, rh)

	workers := opts.Workers
	if workers > rh {
		workers = rh
	}
	bandH := (rh + workers - 1) / workers

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		yMin := w * bandH
		yMax := yMin + bandH
		if yMax > rh {
			yMax = rh
		}
		if yMin >= yMax {
			break
		}

		wg.Add(1)
		go func(yMin, yMax int) {
			defer wg.Done()
			for t := 0; t < m.TriangleCount(); t++ {
				i0 := m.Indices[3*t]
				i1 := m.Indices[3*t+1]
				i2 := m.Indices[3*t+2]
				fillTriangle(fb, &verts[i0], &verts[i1], &verts[i2], yMin, yMax, shade)
			}
			if opts.Background != nil {
				fillBackground(fb, cam, yMin, yMax, opts.Background)
			}
		}(yMin, yMax)
	}
	wg.Wait()

	img := fb.Image()
	if opts.Supersample > 1 {
		img = Downsample(img, opts.Width, opts.Height)
	}
	return img
}

// projectVertices transforms every vertex into view space, projects it to
// the screen, and pre-multiplies the view-space attributes by 1/w for
// perspective-correct interpolation.
func projectVertices(m *mesh.Mesh, cam Camera, model mgl64.Mat4, rw, rh int) []screenVertex {
	modelView := cam.View.Mul4(model)
	normalMat := modelView.Mat3().Inv().Transpose()

	out := make([]screenVertex, len(m.Vertices))
	for i, v := range m.Vertices {
		viewPos := modelView.Mul4x1(v.Position.Vec4(1)).Vec3()
		clip := cam.Projection.Mul4x1(viewPos.Vec4(1))

		sv := &out[i]
		if clip.W() <= 0 {
			// Behind the eye; fillTriangle rejects triangles touching it.
			sv.InvW = -1
			continue
		}
		invW := 1.0 / clip.W()
		sv.InvW = invW
		sv.X = (clip.X()*invW*0.5 + 0.5) * float64(rw)
		sv.Y = (0.5 - clip.Y()*invW*0.5) * float64(rh)

		sv.Pos = viewPos.Mul(invW)
		sv.Norm = normalMat.Mul3x1(v.Normal).Mul(invW)
		sv.Tan = normalMat.Mul3x1(v.Tangent).Mul(invW)
		sv.Bitan = normalMat.Mul3x1(v.Bitangent).Mul(invW)
	}
	return out
}

// fillBackground resolves uncovered pixels in the band by unprojecting the
// pixel center into a view-space ray.
func fillBackground(fb *FrameBuffer, cam Camera, yMin, yMax int, bg func(mgl64.Vec3) mgl64.Vec3) {
	invProj := cam.Projection.Inv()
	for sy := yMin; sy < yMax; sy++ {
		ndcY := 1.0 - 2.0*(float64(sy)+0.5)/float64(fb.Height)
		rowOff := sy * fb.Width
		for sx := 0; sx < fb.Width; sx++ {
			zIdx := rowOff + sx
			if fb.ZBuf[zIdx] != 0 {
				continue
			}
			ndcX := 2.0*(float64(sx)+0.5)/float64(fb.Width) - 1.0
			h := invProj.Mul4x1(mgl64.Vec4{ndcX, ndcY, -1, 1})
			ray := h.Vec3().Mul(1 / h.W()).Normalize()

			c := bg(ray)
			pxIdx := zIdx * 4
			fb.Color[pxIdx] = clamp255(c[0] * 255)
			fb.Color[pxIdx+1] = clamp255(c[1] * 255)
			fb.Color[pxIdx+2] = clamp255(c[2] * 255)
			fb.Color[pxIdx+3] = 255
		}
	}
}
