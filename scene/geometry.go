package scene

import (
	"github.com/atul-mourya/RayTracing-sub004/types"
)

// Geometry stores per-vertex attributes for a triangle soup. When Indices is
// non-nil each consecutive index triplet forms a triangle; otherwise each
// consecutive vertex triplet does. Normals and UVs may be nil or shorter than
// Positions; extraction substitutes zero values for missing attributes.
type Geometry struct {
	Positions []types.Vec3
	Normals   []types.Vec3
	UVs       []types.Vec2
	Indices   []uint32
}

// The number of triangles described by this geometry.
func (g *Geometry) TriangleCount() int {
	if g.Indices != nil {
		return len(g.Indices) / 3
	}
	return len(g.Positions) / 3
}

// The three vertex indices of triangle t.
func (g *Geometry) VertexIndices(t int) [3]uint32 {
	if g.Indices != nil {
		return [3]uint32{g.Indices[t*3], g.Indices[t*3+1], g.Indices[t*3+2]}
	}
	base := uint32(t * 3)
	return [3]uint32{base, base + 1, base + 2}
}

// Vertex position by index.
func (g *Geometry) Position(index uint32) types.Vec3 {
	return g.Positions[index]
}

// Vertex normal by index; a zero vector if the attribute is absent.
func (g *Geometry) Normal(index uint32) types.Vec3 {
	if int(index) >= len(g.Normals) {
		return types.Vec3{}
	}
	return g.Normals[index]
}

// Vertex UV by index; a zero vector if the attribute is absent.
func (g *Geometry) UV(index uint32) types.Vec2 {
	if int(index) >= len(g.UVs) {
		return types.Vec2{}
	}
	return g.UVs[index]
}
