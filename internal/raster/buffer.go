package raster

import "image"

// FrameBuffer holds the render target as flat slices for cache locality.
// ZBuf stores the interpolated 1/w of the closest fragment; larger means
// closer, with an initial value of 0 (infinitely far).
type FrameBuffer struct {
	Width  int
	Height int
	Color  []uint8   // RGBA interleaved, len = W*H*4
	ZBuf   []float64 // per-pixel 1/w, len = W*H
}

// NewFrameBuffer allocates a zeroed color buffer and far-initialized z-buffer.
func NewFrameBuffer(w, h int) *FrameBuffer {
	n := w * h
	return &FrameBuffer{
		Width:  w,
		Height: h,
		Color:  make([]uint8, n*4),
		ZBuf:   make([]float64, n),
	}
}

// Image copies the color buffer into an NRGBA image.
func (fb *FrameBuffer) Image() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	copy(img.Pix, fb.Color)
	return img
}
