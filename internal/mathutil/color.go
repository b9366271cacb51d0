package mathutil

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Display gamma used for sRGB encode/decode. The gamma-2.2 power
// approximation matches what the rasterizer's LUT bakes in.
const SRGBGamma = 2.2

// Precomputed sRGB-to-linear lookup table (256 entries).
var srgbToLinear [256]float64

func init() {
	for i := 0; i < 256; i++ {
		srgbToLinear[i] = math.Pow(float64(i)/255.0, SRGBGamma)
	}
}

// SRGBByteToLinear decodes an 8-bit sRGB channel to linear via the LUT.
func SRGBByteToLinear(b uint8) float64 {
	return srgbToLinear[b]
}

// SRGBToLinear decodes an sRGB color in [0,1] to linear radiance.
func SRGBToLinear(c mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{
		math.Pow(math.Max(c[0], 0), SRGBGamma),
		math.Pow(math.Max(c[1], 0), SRGBGamma),
		math.Pow(math.Max(c[2], 0), SRGBGamma),
	}
}

// LinearToSRGB encodes a linear color into display gamma.
func LinearToSRGB(c mgl64.Vec3) mgl64.Vec3 {
	const inv = 1.0 / SRGBGamma
	return mgl64.Vec3{
		math.Pow(math.Max(c[0], 0), inv),
		math.Pow(math.Max(c[1], 0), inv),
		math.Pow(math.Max(c[2], 0), inv),
	}
}
