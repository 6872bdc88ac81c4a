package texel

import (
	"testing"

	"github.com/atul-mourya/RayTracing-sub004/scene"
	"github.com/atul-mourya/RayTracing-sub004/types"
)

func TestMaterialRecordRoundTrip(t *testing.T) {
	records := []scene.MaterialRecord{
		{
			Color:              types.Vec3{0.8, 0.4, 0.2},
			Emissive:           types.Vec3{1, 0.9, 0.7},
			EmissiveIntensity:  15,
			Roughness:          0.25,
			Metalness:          1,
			IOR:                1.5,
			Transmission:       0.5,
			Thickness:          0.1,
			Clearcoat:          1,
			ClearcoatRoughness: 0.03,
			CullMode:           int32(scene.CullBack),
			AlbedoTex:          3,
			NormalTex:          -1,
			RoughnessTex:       7,
			MetalnessTex:       -1,
			EmissiveTex:        0,
			BumpTex:            -1,
			UVScale:            types.Vec2{2, 2},
			UVOffset:           types.Vec2{0.5, 0.25},
			UVRotation:         1.5707,
		},
		{
			Color:     types.Vec3{1, 1, 1},
			AlbedoTex: -1, NormalTex: -1, RoughnessTex: -1,
			MetalnessTex: -1, EmissiveTex: -1, BumpTex: -1,
			UVScale: types.Vec2{1, 1},
		},
	}

	tex, err := EncodeMaterials(records, DefaultMaxTextureSize)
	if err != nil {
		t.Fatalf("expected encode to succeed; got %v", err)
	}
	if tex.TexelCount() < len(records)*MaterialStride/4 {
		t.Fatalf("texel image too small for %d records", len(records))
	}

	decoded := DecodeMaterials(tex, len(records))
	for index := range records {
		if decoded[index] != records[index] {
			t.Fatalf("expected record %d to round-trip exactly;\nwant %+v\ngot  %+v",
				index, records[index], decoded[index])
		}
	}
}

func TestTriangleRecordRoundTrip(t *testing.T) {
	var tri scene.Triangle
	tri.Positions = [3]types.Vec3{{-1, 0, 2}, {1, 0, 2}, {0, 1.5, 2}}
	tri.Normals = [3]types.Vec3{{0, 0, -1}, {0, 0, -1}, {0, 0, -1}}
	tri.UVs = [3]types.Vec2{{0, 0}, {1, 0}, {0.5, 1}}
	tri.MaterialIndex = 9
	tri.UpdateBounds()

	tex, err := EncodeTriangles([]scene.Triangle{tri}, DefaultMaxTextureSize)
	if err != nil {
		t.Fatalf("expected encode to succeed; got %v", err)
	}

	decoded := DecodeTriangles(tex, 1)
	got := decoded[0]
	if got.Positions != tri.Positions || got.Normals != tri.Normals || got.UVs != tri.UVs {
		t.Fatalf("expected triangle to round-trip exactly;\nwant %+v\ngot  %+v", tri, got)
	}
	if got.MaterialIndex != tri.MaterialIndex {
		t.Fatalf("expected material index %d; got %d", tri.MaterialIndex, got.MaterialIndex)
	}

	// The decoder recalculates bounds so decoded triangles can feed straight
	// back into the BVH builder.
	if got.BBox() != tri.BBox() {
		t.Fatalf("expected recalculated bounds %v; got %v", tri.BBox(), got.BBox())
	}
}

func TestBVHNodeRecordRoundTrip(t *testing.T) {
	var inner, leaf scene.BVHNode

	inner.Min = types.Vec3{-5, -5, -5}
	inner.Max = types.Vec3{5, 5, 5}
	inner.SetChildNodes(1, 2)

	leaf.Min = types.Vec3{-1, -1, -1}
	leaf.Max = types.Vec3{1, 1, 1}
	leaf.SetTriangles(12, 6)

	tex, err := EncodeBVHNodes([]scene.BVHNode{inner, leaf}, DefaultMaxTextureSize)
	if err != nil {
		t.Fatalf("expected encode to succeed; got %v", err)
	}

	decoded := DecodeBVHNodes(tex, 2)

	if decoded[0].IsLeaf() {
		t.Fatalf("expected decoded node 0 to be an inner node")
	}
	left, right := decoded[0].ChildNodes()
	if left != 1 || right != 2 {
		t.Fatalf("expected child indices (1, 2); got (%d, %d)", left, right)
	}

	if !decoded[1].IsLeaf() {
		t.Fatalf("expected decoded node 1 to be a leaf")
	}
	offset, count := decoded[1].TriangleRange()
	if offset != 12 || count != 6 {
		t.Fatalf("expected leaf range (12, 6); got (%d, %d)", offset, count)
	}
	if decoded[1].Min != leaf.Min || decoded[1].Max != leaf.Max {
		t.Fatalf("expected leaf bounds to round-trip exactly")
	}
}

func TestEncodeEmptyLists(t *testing.T) {
	tex, err := EncodeMaterials(nil, DefaultMaxTextureSize)
	if err != nil {
		t.Fatalf("expected empty encode to succeed; got %v", err)
	}
	if tex.Width != 0 || tex.Height != 0 {
		t.Fatalf("expected empty texel image; got %dx%d", tex.Width, tex.Height)
	}
}
