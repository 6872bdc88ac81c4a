package compiler

import (
	"time"

	"github.com/atul-mourya/RayTracing-sub004/log"
	"github.com/atul-mourya/RayTracing-sub004/scene"
	"github.com/atul-mourya/RayTracing-sub004/types"
)

// The flat output of a scene graph walk: world-space triangles, deduplicated
// source materials, per-type texture lists and directional lights. Extraction
// has no side effects on the graph; walking an unchanged graph twice yields
// identical output.
type ExtractedScene struct {
	Triangles []scene.Triangle

	// Source materials in first-seen order. A triangle's MaterialIndex points
	// into this list.
	Materials []*scene.Material

	// Unique images per atlas type in insertion order. The list index is the
	// image's prospective atlas slot.
	Images [scene.AtlasKindCount][]*scene.Image

	Lights []scene.CompiledLight
}

type extractor struct {
	logger log.Logger
	out    *ExtractedScene

	materialIndex map[*scene.Material]int32
	imageSlot     [scene.AtlasKindCount]map[*scene.Image]int32
}

// Walk the scene graph once and flatten every mesh into world-space
// triangles. Materials are deduplicated by identity; mesh node transforms are
// accumulated down the tree and applied to positions directly and to normals
// via the inverse-transpose.
func Extract(root scene.Node) *ExtractedScene {
	ex := &extractor{
		logger: log.New("extractor"),
		out: &ExtractedScene{
			Triangles: make([]scene.Triangle, 0),
			Materials: make([]*scene.Material, 0),
			Lights:    make([]scene.CompiledLight, 0),
		},
		materialIndex: make(map[*scene.Material]int32),
	}
	for kind := range ex.imageSlot {
		ex.imageSlot[kind] = make(map[*scene.Image]int32)
	}

	start := time.Now()
	ex.visit(root, types.Ident4())
	ex.logger.Debugf(
		"extracted %d triangles, %d materials, %d lights in %d ms",
		len(ex.out.Triangles), len(ex.out.Materials), len(ex.out.Lights),
		time.Since(start).Nanoseconds()/1e6,
	)
	return ex.out
}

func (ex *extractor) visit(node scene.Node, parent types.Mat4) {
	world := parent.Mul4(node.LocalTransform())

	switch n := node.(type) {
	case *scene.Group:
		for _, child := range n.Children {
			ex.visit(child, world)
		}
	case *scene.Mesh:
		ex.extractMesh(n, world)
	case *scene.DirectionalLight:
		ex.out.Lights = append(ex.out.Lights, scene.CompiledLight{
			Direction: types.TransformDir(world, n.Direction).Normalize(),
			Color:     n.Color,
			Intensity: n.Intensity,
		})
	}
}

func (ex *extractor) extractMesh(mesh *scene.Mesh, world types.Mat4) {
	if mesh.Geometry == nil || mesh.Material == nil {
		return
	}

	matIndex := ex.internMaterial(mesh.Material)
	normalMat := types.NormalMat3(world)

	geom := mesh.Geometry
	triCount := geom.TriangleCount()
	for t := 0; t < triCount; t++ {
		indices := geom.VertexIndices(t)

		var tri scene.Triangle
		tri.MaterialIndex = matIndex
		for v := 0; v < 3; v++ {
			tri.Positions[v] = types.TransformPoint(world, geom.Position(indices[v]))
			tri.Normals[v] = types.TransformDir3(normalMat, geom.Normal(indices[v])).Normalize()
			tri.UVs[v] = geom.UV(indices[v])
		}
		tri.UpdateBounds()
		ex.out.Triangles = append(ex.out.Triangles, tri)
	}
}

// Look up a material in the running list, appending it if new. First use of a
// material also registers its texture maps.
func (ex *extractor) internMaterial(mat *scene.Material) int32 {
	if index, exists := ex.materialIndex[mat]; exists {
		return index
	}

	index := int32(len(ex.out.Materials))
	ex.materialIndex[mat] = index
	ex.out.Materials = append(ex.out.Materials, mat)

	ex.internImage(scene.AtlasAlbedo, mat.AlbedoMap)
	ex.internImage(scene.AtlasNormal, mat.NormalMap)
	ex.internImage(scene.AtlasRoughness, mat.RoughnessMap)
	ex.internImage(scene.AtlasMetalness, mat.MetalnessMap)
	ex.internImage(scene.AtlasEmissive, mat.EmissiveMap)
	ex.internImage(scene.AtlasBump, mat.BumpMap)

	return index
}

// Register an image with the typed image list, deduplicating by identity.
func (ex *extractor) internImage(kind scene.AtlasKind, img *scene.Image) {
	if img == nil {
		return
	}
	if _, exists := ex.imageSlot[kind][img]; exists {
		return
	}
	ex.imageSlot[kind][img] = int32(len(ex.out.Images[kind]))
	ex.out.Images[kind] = append(ex.out.Images[kind], img)
}

// The atlas slot assigned to an image, or -1 when the image is absent or was
// dropped by the atlas layer cap.
func (s *ExtractedScene) ImageSlot(kind scene.AtlasKind, img *scene.Image) int32 {
	if img == nil {
		return -1
	}
	for index, candidate := range s.Images[kind] {
		if candidate == img {
			if index >= maxAtlasLayers {
				return -1
			}
			return int32(index)
		}
	}
	return -1
}
