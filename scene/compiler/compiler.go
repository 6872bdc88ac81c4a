package compiler

import (
	"time"

	"github.com/atul-mourya/RayTracing-sub004/log"
	"github.com/atul-mourya/RayTracing-sub004/scene"
	"github.com/atul-mourya/RayTracing-sub004/scene/texel"
	"github.com/atul-mourya/RayTracing-sub004/types"
)

const (
	// Default leaf capacity for the triangle BVH.
	DefaultMaxTrianglesPerLeaf = 6

	maxAtlasLayers = texel.MaxAtlasLayers
)

// Compiler options. The zero value selects the defaults.
type Options struct {
	// Leaf capacity for the triangle BVH; DefaultMaxTrianglesPerLeaf if zero.
	MaxTrianglesPerLeaf int

	// Hardware texture size ceiling; texel.DefaultMaxTextureSize if zero.
	MaxTextureSize int

	// BVH split strategy; SurfaceAreaHeuristic if nil.
	Strategy SplitStrategy
}

func (o Options) withDefaults() Options {
	if o.MaxTrianglesPerLeaf == 0 {
		o.MaxTrianglesPerLeaf = DefaultMaxTrianglesPerLeaf
	}
	if o.MaxTextureSize == 0 {
		o.MaxTextureSize = texel.DefaultMaxTextureSize
	}
	if o.Strategy == nil {
		o.Strategy = SurfaceAreaHeuristic
	}
	return o
}

type sceneCompiler struct {
	extracted *ExtractedScene
	snapshot  *scene.Snapshot
	opts      Options
	logger    log.Logger
}

// Compile a scene graph into an immutable GPU-ready snapshot: extract
// geometry, build the BVH and encode everything into texel arrays. The
// returned snapshot replaces any previous one wholesale; compilation never
// mutates earlier snapshots.
func Compile(root scene.Node, camera *scene.Camera, opts Options) (*scene.Snapshot, error) {
	sc := &sceneCompiler{
		snapshot: &scene.Snapshot{},
		opts:     opts.withDefaults(),
		logger:   log.New("scene compiler"),
	}

	start := time.Now()
	sc.logger.Noticef("compiling scene")

	sc.extractGeometry(root)
	sc.compileMaterials()
	sc.partitionGeometry()
	if err := sc.encodeSnapshot(); err != nil {
		return nil, err
	}
	sc.snapshot.Camera = camera

	sc.logger.Noticef("compiled scene in %d ms", time.Since(start).Nanoseconds()/1e6)
	return sc.snapshot, nil
}

func (sc *sceneCompiler) extractGeometry(root scene.Node) {
	start := time.Now()

	sc.extracted = Extract(root)
	sc.snapshot.Lights = sc.extracted.Lights

	sc.logger.Noticef(
		"extracted %d triangles and %d materials in %d ms",
		len(sc.extracted.Triangles), len(sc.extracted.Materials),
		time.Since(start).Nanoseconds()/1e6,
	)
}

// Convert the deduplicated source materials into GPU-facing records,
// resolving texture references to atlas slots. Textures beyond the atlas
// layer cap resolve to the absent sentinel; this is a silent visual
// degradation by policy, not an error.
func (sc *sceneCompiler) compileMaterials() {
	start := time.Now()

	ext := sc.extracted
	sc.snapshot.Materials = make([]scene.MaterialRecord, len(ext.Materials))
	for index, mat := range ext.Materials {
		rec := &sc.snapshot.Materials[index]
		rec.Color = mat.Color
		rec.Emissive = mat.Emissive
		rec.EmissiveIntensity = mat.EmissiveIntensity
		rec.Roughness = mat.Roughness
		rec.Metalness = mat.Metalness
		rec.IOR = mat.IOR
		rec.Transmission = mat.Transmission
		rec.Thickness = mat.Thickness
		rec.Clearcoat = mat.Clearcoat
		rec.ClearcoatRoughness = mat.ClearcoatRoughness
		rec.CullMode = int32(mat.CullMode)

		rec.AlbedoTex = ext.ImageSlot(scene.AtlasAlbedo, mat.AlbedoMap)
		rec.NormalTex = ext.ImageSlot(scene.AtlasNormal, mat.NormalMap)
		rec.RoughnessTex = ext.ImageSlot(scene.AtlasRoughness, mat.RoughnessMap)
		rec.MetalnessTex = ext.ImageSlot(scene.AtlasMetalness, mat.MetalnessMap)
		rec.EmissiveTex = ext.ImageSlot(scene.AtlasEmissive, mat.EmissiveMap)
		rec.BumpTex = ext.ImageSlot(scene.AtlasBump, mat.BumpMap)

		rec.UVScale = types.Vec2{1, 1}
		if mat.MapTransform != nil {
			rec.UVScale = mat.MapTransform.Scale
			rec.UVOffset = mat.MapTransform.Offset
			rec.UVRotation = mat.MapTransform.Rotation
		}
	}

	for kind := scene.AtlasKind(0); kind < scene.AtlasKindCount; kind++ {
		if dropped := len(ext.Images[kind]) - maxAtlasLayers; dropped > 0 {
			sc.logger.Warningf(
				"%d %s textures exceed the %d-slot atlas cap and were dropped",
				dropped, kind, maxAtlasLayers,
			)
		}
	}

	sc.logger.Noticef("compiled %d materials in %d ms", len(ext.Materials), time.Since(start).Nanoseconds()/1e6)
}

// Build the triangle BVH. The leaf callback appends each leaf's triangles to
// the snapshot's flat triangle array, which fixes the final triangle order.
func (sc *sceneCompiler) partitionGeometry() {
	start := time.Now()

	triangles := sc.extracted.Triangles
	volList := make([]BoundedVolume, len(triangles))
	for index := range triangles {
		volList[index] = &triangles[index]
	}

	sc.snapshot.Triangles = make([]scene.Triangle, 0, len(triangles))
	sc.snapshot.Nodes = BuildBVH(volList, sc.opts.MaxTrianglesPerLeaf, sc.opts.Strategy, func(leaf *scene.BVHNode, workList []BoundedVolume) {
		offset := uint32(len(sc.snapshot.Triangles))
		for _, item := range workList {
			sc.snapshot.Triangles = append(sc.snapshot.Triangles, *item.(*scene.Triangle))
		}
		leaf.SetTriangles(offset, uint32(len(workList)))
	})

	sc.logger.Noticef(
		"partitioned %d triangles into %d BVH nodes in %d ms",
		len(triangles), len(sc.snapshot.Nodes), time.Since(start).Nanoseconds()/1e6,
	)
}

// Serialize triangles, materials and BVH nodes into texel arrays and pack the
// per-type image atlases.
func (sc *sceneCompiler) encodeSnapshot() error {
	start := time.Now()

	var err error
	snap := sc.snapshot
	if snap.TriangleTex, err = texel.EncodeTriangles(snap.Triangles, sc.opts.MaxTextureSize); err != nil {
		return err
	}
	if snap.MaterialTex, err = texel.EncodeMaterials(snap.Materials, sc.opts.MaxTextureSize); err != nil {
		return err
	}
	if snap.BVHTex, err = texel.EncodeBVHNodes(snap.Nodes, sc.opts.MaxTextureSize); err != nil {
		return err
	}

	for kind := scene.AtlasKind(0); kind < scene.AtlasKindCount; kind++ {
		images := sc.extracted.Images[kind]
		if len(images) > maxAtlasLayers {
			images = images[:maxAtlasLayers]
		}
		snap.Atlases[kind] = texel.PackAtlas(images, sc.opts.MaxTextureSize)
	}

	sc.logger.Noticef("encoded snapshot in %d ms", time.Since(start).Nanoseconds()/1e6)
	return nil
}
