package mesh

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUVSphereGeometry(t *testing.T) {
	m := NewUVSphere(2, 16, 8)
	require.NotEmpty(t, m.Vertices)
	require.NotZero(t, m.TriangleCount())
	assert.Equal(t, 0, len(m.Indices)%3)

	for i, v := range m.Vertices {
		// Position sits on the sphere, normal is radial and unit length.
		assert.InDelta(t, 2.0, v.Position.Len(), 1e-9, "vertex %d off the sphere", i)
		assert.InDelta(t, 1.0, v.Normal.Len(), 1e-9)
		assert.InDelta(t, 0.0, v.Position.Normalize().Sub(v.Normal).Len(), 1e-9)

		// Orthonormal tangent frame.
		assert.InDelta(t, 0.0, v.Normal.Dot(v.Tangent), 1e-9, "vertex %d tangent not orthogonal", i)
		assert.InDelta(t, 1.0, v.Tangent.Len(), 1e-9)
		assert.InDelta(t, 1.0, v.Bitangent.Len(), 1e-9)
	}
}

func TestUVSphereIndexBounds(t *testing.T) {
	m := NewUVSphere(1, 8, 4)
	for _, idx := range m.Indices {
		assert.Less(t, int(idx), len(m.Vertices))
	}
}

func TestComputeTangentsOrthonormal(t *testing.T) {
	// A unit quad in the XY plane with standard UVs.
	m := &Mesh{
		Vertices: []Vertex{
			{Position: mgl64.Vec3{0, 0, 0}, Normal: mgl64.Vec3{0, 0, 1}, UV: mgl64.Vec2{0, 0}},
			{Position: mgl64.Vec3{1, 0, 0}, Normal: mgl64.Vec3{0, 0, 1}, UV: mgl64.Vec2{1, 0}},
			{Position: mgl64.Vec3{1, 1, 0}, Normal: mgl64.Vec3{0, 0, 1}, UV: mgl64.Vec2{1, 1}},
			{Position: mgl64.Vec3{0, 1, 0}, Normal: mgl64.Vec3{0, 0, 1}, UV: mgl64.Vec2{0, 1}},
		},
		Indices: []uint32{0, 1, 2, 0, 2, 3},
	}
	ComputeTangents(m)

	for i, v := range m.Vertices {
		assert.InDelta(t, 1.0, v.Tangent.Len(), 1e-9, "vertex %d", i)
		assert.InDelta(t, 0.0, v.Tangent.Dot(v.Normal), 1e-9)
		assert.InDelta(t, 1.0, v.Bitangent.Len(), 1e-9)
	}

	// U grows along +X, so the tangent points that way.
	assert.InDelta(t, 1.0, m.Vertices[0].Tangent[0], 1e-9)
}

func TestComputeTangentsDegenerateUVs(t *testing.T) {
	m := &Mesh{
		Vertices: []Vertex{
			{Position: mgl64.Vec3{0, 0, 0}, Normal: mgl64.Vec3{0, 0, 1}},
			{Position: mgl64.Vec3{1, 0, 0}, Normal: mgl64.Vec3{0, 0, 1}},
			{Position: mgl64.Vec3{0, 1, 0}, Normal: mgl64.Vec3{0, 0, 1}},
		},
		Indices: []uint32{0, 1, 2},
	}
	ComputeTangents(m)

	// All UVs collapsed: the fallback frame must still be orthonormal.
	for i, v := range m.Vertices {
		assert.InDelta(t, 1.0, v.Tangent.Len(), 1e-9, "vertex %d", i)
		assert.InDelta(t, 0.0, v.Tangent.Dot(v.Normal), 1e-9)
	}
}

func TestTriangleAccessor(t *testing.T) {
	m := NewUVSphere(1, 4, 2)
	a, b, c := m.Triangle(0)
	assert.NotEqual(t, a.Position, b.Position)
	assert.NotEqual(t, b.Position, c.Position)
}
