package mesh

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// NewUVSphere generates a unit-normal UV sphere with analytic tangents.
// The tangent follows the longitude direction, so anisotropic highlights
// wrap around the sphere the way brushed metal does.
func NewUVSphere(radius float64, segments, rings int) *Mesh {
	if segments < 3 {
		segments = 3
	}
	if rings < 2 {
		rings = 2
	}

	m := &Mesh{}
	for ring := 0; ring <= rings; ring++ {
		phi := float64(ring) * math.Pi / float64(rings)
		sinPhi, cosPhi := math.Sin(phi), math.Cos(phi)

		for seg := 0; seg <= segments; seg++ {
			theta := float64(seg) * 2 * math.Pi / float64(segments)
			sinTheta, cosTheta := math.Sin(theta), math.Cos(theta)

			normal := mgl64.Vec3{sinPhi * cosTheta, cosPhi, sinPhi * sinTheta}
			tangent := mgl64.Vec3{-sinTheta, 0, cosTheta}
			if sinPhi < 1e-9 {
				// Poles: pick any tangent perpendicular to the axis.
				tangent = mgl64.Vec3{1, 0, 0}
			}

			m.Vertices = append(m.Vertices, Vertex{
				Position:  normal.Mul(radius),
				Normal:    normal,
				Tangent:   tangent,
				Bitangent: normal.Cross(tangent),
				UV: mgl64.Vec2{
					float64(seg) / float64(segments),
					float64(ring) / float64(rings),
				},
			})
		}
	}

	for ring := 0; ring < rings; ring++ {
		for seg := 0; seg < segments; seg++ {
			current := uint32(ring*(segments+1) + seg)
			next := current + uint32(segments+1)
			m.Indices = append(m.Indices, current, next, current+1)
			m.Indices = append(m.Indices, current+1, next, next+1)
		}
	}
	return m
}
