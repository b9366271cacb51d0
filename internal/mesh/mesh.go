// Package mesh provides the indexed triangle geometry consumed by the
// rasterizer: a procedural UV sphere, per-vertex tangent generation, and a
// glTF loader.
package mesh

import "github.com/go-gl/mathgl/mgl64"

// Vertex carries the per-vertex attributes the shading stage interpolates.
type Vertex struct {
	Position  mgl64.Vec3
	Normal    mgl64.Vec3
	Tangent   mgl64.Vec3
	Bitangent mgl64.Vec3
	UV        mgl64.Vec2
}

// Mesh is an indexed triangle list.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint32
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// Triangle returns the three vertices of triangle i.
func (m *Mesh) Triangle(i int) (Vertex, Vertex, Vertex) {
	return m.Vertices[m.Indices[3*i]],
		m.Vertices[m.Indices[3*i+1]],
		m.Vertices[m.Indices[3*i+2]]
}
