package mesh

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// ComputeTangents rebuilds per-vertex tangent frames from UV coordinates.
// Triangles with a degenerate UV area contribute nothing; the accumulated
// frames are Gram-Schmidt orthogonalized against the vertex normal.
func ComputeTangents(m *Mesh) {
	for i := range m.Vertices {
		m.Vertices[i].Tangent = mgl64.Vec3{}
		m.Vertices[i].Bitangent = mgl64.Vec3{}
	}

	accum := func(i0, i1, i2 uint32) {
		v0, v1, v2 := m.Vertices[i0], m.Vertices[i1], m.Vertices[i2]

		e1 := v1.Position.Sub(v0.Position)
		e2 := v2.Position.Sub(v0.Position)
		du1 := v1.UV[0] - v0.UV[0]
		dv1 := v1.UV[1] - v0.UV[1]
		du2 := v2.UV[0] - v0.UV[0]
		dv2 := v2.UV[1] - v0.UV[1]

		denom := du1*dv2 - du2*dv1
		if denom == 0 {
			return
		}
		r := 1 / denom

		t := e1.Mul(dv2 * r).Sub(e2.Mul(dv1 * r))
		b := e2.Mul(du1 * r).Sub(e1.Mul(du2 * r))

		for _, idx := range []uint32{i0, i1, i2} {
			m.Vertices[idx].Tangent = m.Vertices[idx].Tangent.Add(t)
			m.Vertices[idx].Bitangent = m.Vertices[idx].Bitangent.Add(b)
		}
	}

	if len(m.Indices) > 0 {
		for i := 0; i+2 < len(m.Indices); i += 3 {
			accum(m.Indices[i], m.Indices[i+1], m.Indices[i+2])
		}
	} else {
		for i := 0; i+2 < len(m.Vertices); i += 3 {
			accum(uint32(i), uint32(i+1), uint32(i+2))
		}
	}

	for i := range m.Vertices {
		n := m.Vertices[i].Normal
		t := m.Vertices[i].Tangent

		t = t.Sub(n.Mul(n.Dot(t)))
		if t.LenSqr() < 1e-8 {
			// Degenerate: any direction perpendicular to the normal works.
			if math.Abs(n[0]) < 0.9 {
				t = mgl64.Vec3{1, 0, 0}.Sub(n.Mul(n[0]))
			} else {
				t = mgl64.Vec3{0, 1, 0}.Sub(n.Mul(n[1]))
			}
		}
		t = t.Normalize()

		// Rebuild the bitangent orthogonal to both, keeping handedness.
		b := n.Cross(t)
		if b.Dot(m.Vertices[i].Bitangent) < 0 {
			b = b.Mul(-1)
		}

		m.Vertices[i].Tangent = t
		m.Vertices[i].Bitangent = b
	}
}
