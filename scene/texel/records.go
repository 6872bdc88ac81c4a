package texel

import (
	"github.com/atul-mourya/RayTracing-sub004/scene"
)

// Material record layout (28 floats / 7 texels):
//
//	[0..2]   base color RGB        [3]      pad
//	[4..6]   emissive RGB          [7]      emissive intensity
//	[8]      roughness             [9]      metalness
//	[10]     ior                   [11]     transmission
//	[12]     thickness             [13]     clearcoat
//	[14]     clearcoat roughness   [15]     cull mode
//	[16..21] texture slots (albedo, normal, roughness, metalness, emissive, bump)
//	[22..26] uv transform (scaleX, scaleY, offsetX, offsetY, rotation)
//	[27]     pad
func EncodeMaterials(records []scene.MaterialRecord, maxTextureSize int) (*scene.TexelImage, error) {
	tex, err := newTexelImage(len(records)*MaterialStride/floatsPerTexel, maxTextureSize)
	if err != nil {
		return nil, err
	}

	w := recordWriter{data: tex.Texels}
	for index, rec := range records {
		w.seek(index * MaterialStride)
		w.putVec3(rec.Color)
		w.putF(0)
		w.putVec3(rec.Emissive)
		w.putF(rec.EmissiveIntensity)
		w.putF(rec.Roughness)
		w.putF(rec.Metalness)
		w.putF(rec.IOR)
		w.putF(rec.Transmission)
		w.putF(rec.Thickness)
		w.putF(rec.Clearcoat)
		w.putF(rec.ClearcoatRoughness)
		w.putI(rec.CullMode)
		w.putI(rec.AlbedoTex)
		w.putI(rec.NormalTex)
		w.putI(rec.RoughnessTex)
		w.putI(rec.MetalnessTex)
		w.putI(rec.EmissiveTex)
		w.putI(rec.BumpTex)
		w.putVec2(rec.UVScale)
		w.putVec2(rec.UVOffset)
		w.putF(rec.UVRotation)
	}
	return tex, nil
}

// Decode count material records from a texel image. The exact inverse of
// EncodeMaterials.
func DecodeMaterials(tex *scene.TexelImage, count int) []scene.MaterialRecord {
	records := make([]scene.MaterialRecord, count)

	r := recordReader{data: tex.Texels}
	for index := range records {
		rec := &records[index]
		r.seek(index * MaterialStride)
		rec.Color = r.getVec3()
		r.getF()
		rec.Emissive = r.getVec3()
		rec.EmissiveIntensity = r.getF()
		rec.Roughness = r.getF()
		rec.Metalness = r.getF()
		rec.IOR = r.getF()
		rec.Transmission = r.getF()
		rec.Thickness = r.getF()
		rec.Clearcoat = r.getF()
		rec.ClearcoatRoughness = r.getF()
		rec.CullMode = r.getI()
		rec.AlbedoTex = r.getI()
		rec.NormalTex = r.getI()
		rec.RoughnessTex = r.getI()
		rec.MetalnessTex = r.getI()
		rec.EmissiveTex = r.getI()
		rec.BumpTex = r.getI()
		rec.UVScale = r.getVec2()
		rec.UVOffset = r.getVec2()
		rec.UVRotation = r.getF()
	}
	return records
}

// Triangle record layout (28 floats / 7 texels):
//
//	[0..8]   positions (3x xyz)
//	[9..17]  normals (3x xyz)
//	[18..23] uvs (3x uv)
//	[24]     material index
//	[25..27] pad
func EncodeTriangles(tris []scene.Triangle, maxTextureSize int) (*scene.TexelImage, error) {
	tex, err := newTexelImage(len(tris)*TriangleStride/floatsPerTexel, maxTextureSize)
	if err != nil {
		return nil, err
	}

	w := recordWriter{data: tex.Texels}
	for index := range tris {
		tri := &tris[index]
		w.seek(index * TriangleStride)
		for v := 0; v < 3; v++ {
			w.putVec3(tri.Positions[v])
		}
		for v := 0; v < 3; v++ {
			w.putVec3(tri.Normals[v])
		}
		for v := 0; v < 3; v++ {
			w.putVec2(tri.UVs[v])
		}
		w.putI(tri.MaterialIndex)
	}
	return tex, nil
}

// Decode count triangle records from a texel image. The exact inverse of
// EncodeTriangles. Decoded triangles have their bounds recalculated so they
// behave identically to extracted ones.
func DecodeTriangles(tex *scene.TexelImage, count int) []scene.Triangle {
	tris := make([]scene.Triangle, count)

	r := recordReader{data: tex.Texels}
	for index := range tris {
		tri := &tris[index]
		r.seek(index * TriangleStride)
		for v := 0; v < 3; v++ {
			tri.Positions[v] = r.getVec3()
		}
		for v := 0; v < 3; v++ {
			tri.Normals[v] = r.getVec3()
		}
		for v := 0; v < 3; v++ {
			tri.UVs[v] = r.getVec2()
		}
		tri.MaterialIndex = r.getI()
		tri.UpdateBounds()
	}
	return tris
}

// BVH node record layout (8 floats / 2 texels):
//
//	[0..2] box min xyz   [3] packed left data word
//	[4..6] box max xyz   [7] packed right data word
func EncodeBVHNodes(nodes []scene.BVHNode, maxTextureSize int) (*scene.TexelImage, error) {
	tex, err := newTexelImage(len(nodes)*BVHNodeStride/floatsPerTexel, maxTextureSize)
	if err != nil {
		return nil, err
	}

	w := recordWriter{data: tex.Texels}
	for index := range nodes {
		node := &nodes[index]
		left, right := node.RawData()
		w.seek(index * BVHNodeStride)
		w.putVec3(node.Min)
		w.putI(left)
		w.putVec3(node.Max)
		w.putI(right)
	}
	return tex, nil
}

// Decode count BVH node records from a texel image. The exact inverse of
// EncodeBVHNodes.
func DecodeBVHNodes(tex *scene.TexelImage, count int) []scene.BVHNode {
	nodes := make([]scene.BVHNode, count)

	r := recordReader{data: tex.Texels}
	for index := range nodes {
		node := &nodes[index]
		r.seek(index * BVHNodeStride)
		node.Min = r.getVec3()
		left := r.getI()
		node.Max = r.getVec3()
		right := r.getI()
		node.SetRawData(left, right)
	}
	return nodes
}
