package mesh

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

// PBRFactors are the authored metallic-roughness factors of a glTF
// material, used to seed the shading parameters when the scene file
// carries its own material.
type PBRFactors struct {
	BaseColor [4]float64
	Metallic  float64
	Roughness float64
	Found     bool
}

// LoadGLTF reads the first mesh primitive of a .gltf/.glb file into a
// Mesh, together with its metallic-roughness factors when present.
// Tangents come from the TANGENT attribute when authored, otherwise they
// are rebuilt from UVs.
func LoadGLTF(path string) (*Mesh, PBRFactors, error) {
	var factors PBRFactors

	doc, err := gltf.Open(path)
	if err != nil {
		return nil, factors, fmt.Errorf("mesh: gltf open %s: %w", path, err)
	}
	if len(doc.Meshes) == 0 || len(doc.Meshes[0].Primitives) == 0 {
		return nil, factors, fmt.Errorf("mesh: %s contains no mesh primitives", path)
	}
	prim := doc.Meshes[0].Primitives[0]

	posIdx, ok := prim.Attributes["POSITION"]
	if !ok {
		return nil, factors, fmt.Errorf("mesh: %s: primitive has no POSITION attribute", path)
	}
	positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
	if err != nil {
		return nil, factors, fmt.Errorf("mesh: %s: positions: %w", path, err)
	}

	var normals [][3]float32
	var tangents [][4]float32
	var uvs [][2]float32
	if idx, ok := prim.Attributes["NORMAL"]; ok {
		normals, _ = modeler.ReadNormal(doc, doc.Accessors[idx], nil)
	}
	if idx, ok := prim.Attributes["TANGENT"]; ok {
		tangents, _ = modeler.ReadTangent(doc, doc.Accessors[idx], nil)
	}
	if idx, ok := prim.Attributes["TEXCOORD_0"]; ok {
		uvs, _ = modeler.ReadTextureCoord(doc, doc.Accessors[idx], nil)
	}

	m := &Mesh{Vertices: make([]Vertex, len(positions))}
	for i, p := range positions {
		v := Vertex{
			Position: mgl64.Vec3{float64(p[0]), float64(p[1]), float64(p[2])},
			Normal:   mgl64.Vec3{0, 1, 0},
		}
		if i < len(normals) {
			n := normals[i]
			v.Normal = mgl64.Vec3{float64(n[0]), float64(n[1]), float64(n[2])}
		}
		if i < len(uvs) {
			v.UV = mgl64.Vec2{float64(uvs[i][0]), float64(uvs[i][1])}
		}
		if i < len(tangents) {
			t := tangents[i]
			v.Tangent = mgl64.Vec3{float64(t[0]), float64(t[1]), float64(t[2])}
			// w stores handedness per the glTF spec
			v.Bitangent = v.Normal.Cross(v.Tangent).Mul(float64(t[3]))
		}
		m.Vertices[i] = v
	}

	if prim.Indices != nil {
		indices, err := modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
		if err != nil {
			return nil, factors, fmt.Errorf("mesh: %s: indices: %w", path, err)
		}
		m.Indices = indices
	}

	if len(tangents) == 0 && len(uvs) > 0 {
		ComputeTangents(m)
	}

	if prim.Material != nil && *prim.Material < len(doc.Materials) {
		if pbr := doc.Materials[*prim.Material].PBRMetallicRoughness; pbr != nil {
			cf := pbr.BaseColorFactorOrDefault()
			factors = PBRFactors{
				BaseColor: [4]float64{cf[0], cf[1], cf[2], cf[3]},
				Metallic:  pbr.MetallicFactorOrDefault(),
				Roughness: pbr.RoughnessFactorOrDefault(),
				Found:     true,
			}
		}
	}
	return m, factors, nil
}
