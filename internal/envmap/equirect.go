package envmap

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"math"
	"os"

	_ "github.com/ftrvxmtrx/tga"
	"github.com/go-gl/mathgl/mgl64"
	"golang.org/x/image/draw"

	"pbr-renderer/internal/mathutil"
)

// Equirect is an image-backed probe over an equirectangular (lat/long)
// environment map. Blur levels come from a chain of 2x CatmullRom
// downscales built once at load time; radiance lookups linearize texels
// through the sRGB LUT and filter bilinearly with horizontal wrap.
type Equirect struct {
	mips []*image.NRGBA
}

// minMipWidth stops the blur chain before the map degenerates to a texel.
const minMipWidth = 8

// LoadEquirect decodes an environment image (PNG, JPEG, or TGA) and builds
// its blur chain.
func LoadEquirect(path string) (*Equirect, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("envmap: open %s: %w", path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("envmap: decode %s: %w", path, err)
	}
	return NewEquirect(toNRGBA(img)), nil
}

// NewEquirect builds a probe from an already-decoded image.
func NewEquirect(base *image.NRGBA) *Equirect {
	mips := []*image.NRGBA{base}
	w, h := base.Rect.Dx(), base.Rect.Dy()
	for w/2 >= minMipWidth && h/2 >= 2 {
		w /= 2
		h /= 2
		dst := image.NewNRGBA(image.Rect(0, 0, w, h))
		draw.CatmullRom.Scale(dst, dst.Bounds(), mips[len(mips)-1], mips[len(mips)-1].Bounds(), draw.Src, nil)
		mips = append(mips, dst)
	}
	return &Equirect{mips: mips}
}

func (e *Equirect) MaxLod() float64 {
	return float64(len(e.mips) - 1)
}

func (e *Equirect) Radiance(dir mgl64.Vec3, lod float64) mgl64.Vec3 {
	d := mathutil.SafeNormalize(dir)
	u := 0.5 + math.Atan2(d[0], -d[2])/(2*math.Pi)
	v := math.Acos(mgl64.Clamp(d[1], -1, 1)) / math.Pi

	lod = mgl64.Clamp(lod, 0, e.MaxLod())
	lo := int(math.Floor(lod))
	hi := lo
	if lo < len(e.mips)-1 {
		hi = lo + 1
	}
	frac := lod - float64(lo)

	c0 := sampleLinear(e.mips[lo], u, v)
	if hi == lo || frac == 0 {
		return c0
	}
	c1 := sampleLinear(e.mips[hi], u, v)
	return mathutil.MixVec(c0, c1, frac)
}

func (e *Equirect) Irradiance(dir mgl64.Vec3) mgl64.Vec3 {
	// The deepest blur level approximates the cosine-convolved environment.
	return e.Radiance(dir, e.MaxLod())
}

// sampleLinear bilinearly filters one mip, wrapping horizontally and
// clamping vertically, returning linear RGB.
func sampleLinear(tex *image.NRGBA, u, v float64) mgl64.Vec3 {
	w := tex.Rect.Dx()
	h := tex.Rect.Dy()

	u = u - math.Floor(u)
	fx := u * float64(w)
	fy := mgl64.Clamp(v, 0, 1) * float64(h-1)

	x0 := int(fx) % w
	y0 := int(fy)
	x1 := (x0 + 1) % w
	y1 := y0 + 1
	if y1 >= h {
		y1 = h - 1
	}
	dx := fx - math.Floor(fx)
	dy := fy - float64(y0)

	c00 := texelLinear(tex, x0, y0)
	c10 := texelLinear(tex, x1, y0)
	c01 := texelLinear(tex, x0, y1)
	c11 := texelLinear(tex, x1, y1)

	top := mathutil.MixVec(c00, c10, dx)
	bot := mathutil.MixVec(c01, c11, dx)
	return mathutil.MixVec(top, bot, dy)
}

func texelLinear(tex *image.NRGBA, x, y int) mgl64.Vec3 {
	i := y*tex.Stride + x*4
	return mgl64.Vec3{
		mathutil.SRGBByteToLinear(tex.Pix[i]),
		mathutil.SRGBByteToLinear(tex.Pix[i+1]),
		mathutil.SRGBByteToLinear(tex.Pix[i+2]),
	}
}

// toNRGBA converts any decoded image to NRGBA.
func toNRGBA(src image.Image) *image.NRGBA {
	if n, ok := src.(*image.NRGBA); ok {
		return n
	}
	b := src.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	return dst
}
