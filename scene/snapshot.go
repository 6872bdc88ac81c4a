package scene

import (
	"github.com/atul-mourya/RayTracing-sub004/types"
)

// A world-space triangle owned by a snapshot. The bounding box and centroid
// are cached by the extractor so the BVH builder does not recompute them for
// every split candidate.
type Triangle struct {
	Positions     [3]types.Vec3
	Normals       [3]types.Vec3
	UVs           [3]types.Vec2
	MaterialIndex int32

	bbox   [2]types.Vec3
	center types.Vec3
}

// Recalculate the cached bounding box and centroid from the positions.
func (t *Triangle) UpdateBounds() {
	t.bbox[0] = types.MinVec3(types.MinVec3(t.Positions[0], t.Positions[1]), t.Positions[2])
	t.bbox[1] = types.MaxVec3(types.MaxVec3(t.Positions[0], t.Positions[1]), t.Positions[2])
	t.center = t.Positions[0].Add(t.Positions[1]).Add(t.Positions[2]).Mul(1.0 / 3.0)
}

// Implements compiler.BoundedVolume.
func (t *Triangle) BBox() [2]types.Vec3 {
	return t.bbox
}

// Implements compiler.BoundedVolume.
func (t *Triangle) Center() types.Vec3 {
	return t.center
}

// BVH nodes are comprised of two Vec3 and two multipurpose int32 parameters
// whose value depends on the node type:
//
//   - for internal nodes both are > 0 and point to the L/R child nodes
//   - for leaf nodes leftData is <= 0 and holds the negated index of the first
//     triangle while rightData is > 0 and holds the leaf triangle count
type BVHNode struct {
	Min      types.Vec3
	leftData int32

	Max       types.Vec3
	rightData int32
}

// Set bounding box.
func (n *BVHNode) SetBBox(bbox [2]types.Vec3) {
	n.Min = bbox[0]
	n.Max = bbox[1]
}

// Set left and right child node indices.
func (n *BVHNode) SetChildNodes(left, right uint32) {
	n.leftData = int32(left)
	n.rightData = int32(right)
}

// Set first triangle index and triangle count.
func (n *BVHNode) SetTriangles(firstTriIndex, count uint32) {
	n.leftData = -int32(firstTriIndex)
	n.rightData = int32(count)
}

// Shift child indices when merging node lists.
func (n *BVHNode) OffsetChildNodes(offset int32) {
	if n.IsLeaf() {
		return
	}
	n.leftData += offset
	n.rightData += offset
}

// Return true if this node is a leaf.
func (n *BVHNode) IsLeaf() bool {
	return n.leftData <= 0
}

// Child node indices; only meaningful for internal nodes.
func (n *BVHNode) ChildNodes() (left, right uint32) {
	return uint32(n.leftData), uint32(n.rightData)
}

// First triangle index and count; only meaningful for leaves.
func (n *BVHNode) TriangleRange() (offset, count uint32) {
	return uint32(-n.leftData), uint32(n.rightData)
}

// The raw packed data words, used by the texel codec.
func (n *BVHNode) RawData() (left, right int32) {
	return n.leftData, n.rightData
}

// Restore the raw packed data words, used by the texel codec.
func (n *BVHNode) SetRawData(left, right int32) {
	n.leftData = left
	n.rightData = right
}

// The GPU-facing material record. Texture fields hold atlas layer indices
// with -1 marking an absent map.
type MaterialRecord struct {
	Color types.Vec3

	Emissive          types.Vec3
	EmissiveIntensity float32

	Roughness    float32
	Metalness    float32
	IOR          float32
	Transmission float32

	Thickness          float32
	Clearcoat          float32
	ClearcoatRoughness float32
	CullMode           int32

	AlbedoTex    int32
	NormalTex    int32
	RoughnessTex int32
	MetalnessTex int32
	EmissiveTex  int32
	BumpTex      int32

	UVScale    types.Vec2
	UVOffset   types.Vec2
	UVRotation float32
}

// A directional light resolved into world space during extraction.
type CompiledLight struct {
	Direction types.Vec3
	Color     types.Vec3
	Intensity float32
}

// The typed texture atlases baked by the compiler.
type AtlasKind int

const (
	AtlasAlbedo AtlasKind = iota
	AtlasNormal
	AtlasRoughness
	AtlasMetalness
	AtlasEmissive
	AtlasBump

	AtlasKindCount
)

func (k AtlasKind) String() string {
	switch k {
	case AtlasAlbedo:
		return "albedo"
	case AtlasNormal:
		return "normal"
	case AtlasRoughness:
		return "roughness"
	case AtlasMetalness:
		return "metalness"
	case AtlasEmissive:
		return "emissive"
	case AtlasBump:
		return "bump"
	}
	return "unknown"
}

// A layered RGBA8 texture array. All layers share the same footprint; layer
// data is stored back to back, Width*Height*4 bytes per layer.
type Atlas struct {
	Width  int
	Height int
	Layers int
	Data   []uint8
}

// A rectangular float texel array. Texels hold 4 float32 channels each and
// are stored in row-major order.
type TexelImage struct {
	Width  int
	Height int
	Texels []float32
}

// The number of texels in the image.
func (t *TexelImage) TexelCount() int {
	return t.Width * t.Height
}

// A snapshot is the immutable, GPU-ready encoding of one compiled scene
// state. It is built once per compile and replaced wholesale by the next
// compile; nothing mutates it in place.
type Snapshot struct {
	Triangles []Triangle
	Materials []MaterialRecord
	Nodes     []BVHNode
	Lights    []CompiledLight

	// Texel encodings of the above, in the layouts documented by the texel
	// package.
	TriangleTex *TexelImage
	MaterialTex *TexelImage
	BVHTex      *TexelImage

	// Per-type image atlases; nil when no textures of that type exist.
	Atlases [AtlasKindCount]*Atlas

	Camera *Camera
}
