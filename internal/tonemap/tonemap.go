// Package tonemap provides the tone-mapping operators that compress
// high-dynamic-range radiance into a displayable range. Each operator is a
// pure RGB -> RGB function, monotone on luminance for reasonable inputs.
package tonemap

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"pbr-renderer/internal/mathutil"
)

// Operator identifies one tone-mapping curve.
type Operator int

const (
	// Linear is the identity; use for already-LDR content.
	Linear Operator = iota
	// Reinhard is the simple global operator x / (1 + luminance(x)).
	Reinhard
	// Unreal approximates the Unreal Engine filmic curve. Display gamma is
	// baked in: do NOT follow with a separate sRGB encode.
	Unreal
	// ACES is the Narkowicz rational fit of the ACES filmic curve, applied
	// per channel. Default operator of the composition stage.
	ACES
)

// ForName parses an operator name as used in config files and CLI flags.
func ForName(name string) (Operator, error) {
	switch name {
	case "linear":
		return Linear, nil
	case "reinhard":
		return Reinhard, nil
	case "unreal":
		return Unreal, nil
	case "aces", "":
		return ACES, nil
	}
	return Linear, fmt.Errorf("tonemap: unknown operator %q", name)
}

func (op Operator) String() string {
	switch op {
	case Linear:
		return "linear"
	case Reinhard:
		return "reinhard"
	case Unreal:
		return "unreal"
	case ACES:
		return "aces"
	}
	return "invalid"
}

// EncodesGamma reports whether the operator bakes its own display gamma, in
// which case the composition stage skips the final sRGB encode.
func (op Operator) EncodesGamma() bool {
	return op == Unreal
}

// Map applies the operator to a linear HDR color.
func (op Operator) Map(c mgl64.Vec3) mgl64.Vec3 {
	switch op {
	case Reinhard:
		return c.Mul(1 / (1 + mathutil.Luminance(c)))
	case Unreal:
		return mgl64.Vec3{unreal(c[0]), unreal(c[1]), unreal(c[2])}
	case ACES:
		return mgl64.Vec3{aces(c[0]), aces(c[1]), aces(c[2])}
	}
	return c
}

func unreal(x float64) float64 {
	return x / (x + 0.155) * 1.019
}

// aces is the Narkowicz 2015 fit: (x(ax+b)) / (x(cx+d)+e).
func aces(x float64) float64 {
	const (
		a = 2.51
		b = 0.03
		c = 2.43
		d = 0.59
		e = 0.14
	)
	return mathutil.Saturate((x * (a*x + b)) / (x*(c*x+d) + e))
}
