package software

import (
	"testing"

	"github.com/atul-mourya/RayTracing-sub004/scene"
	"github.com/atul-mourya/RayTracing-sub004/types"
)

func unitTriangle(z float32) scene.Triangle {
	var tri scene.Triangle
	tri.Positions = [3]types.Vec3{{0, 0, z}, {1, 0, z}, {0, 1, z}}
	tri.Normals = [3]types.Vec3{{0, 0, 1}, {0, 0, 1}, {0, 0, 1}}
	tri.UpdateBounds()
	return tri
}

func TestRayTriangleHit(t *testing.T) {
	tri := unitTriangle(0)
	r := newRay(types.Vec3{0.25, 0.25, 5}, types.Vec3{0, 0, -1})

	dist, u, v, ok := rayTriangleHit(r, &tri)
	if !ok {
		t.Fatalf("expected ray to hit the triangle")
	}
	if dist < 4.999 || dist > 5.001 {
		t.Fatalf("expected hit distance 5; got %f", dist)
	}
	if u < 0.249 || u > 0.251 || v < 0.249 || v > 0.251 {
		t.Fatalf("expected barycentric (0.25, 0.25); got (%f, %f)", u, v)
	}

	// Outside the triangle.
	r = newRay(types.Vec3{0.9, 0.9, 5}, types.Vec3{0, 0, -1})
	if _, _, _, ok = rayTriangleHit(r, &tri); ok {
		t.Fatalf("expected ray outside the triangle to miss")
	}

	// Parallel to the triangle plane.
	r = newRay(types.Vec3{0.25, 0.25, 5}, types.Vec3{1, 0, 0})
	if _, _, _, ok = rayTriangleHit(r, &tri); ok {
		t.Fatalf("expected parallel ray to miss")
	}

	// Triangle behind the ray origin.
	r = newRay(types.Vec3{0.25, 0.25, -5}, types.Vec3{0, 0, -1})
	if _, _, _, ok = rayTriangleHit(r, &tri); ok {
		t.Fatalf("expected triangle behind the origin to miss")
	}
}

func TestClosestHitTraversal(t *testing.T) {
	// Two triangles along the ray; traversal must report the nearer one even
	// though the farther leaf may be visited first.
	tris := []scene.Triangle{unitTriangle(0), unitTriangle(-3)}

	nodes := make([]scene.BVHNode, 3)
	nodes[0].Min = types.Vec3{0, 0, -3.1}
	nodes[0].Max = types.Vec3{1, 1, 0.1}
	nodes[0].SetChildNodes(1, 2)

	nodes[1].Min = types.Vec3{0, 0, -0.1}
	nodes[1].Max = types.Vec3{1, 1, 0.1}
	nodes[1].SetTriangles(0, 1)

	nodes[2].Min = types.Vec3{0, 0, -3.1}
	nodes[2].Max = types.Vec3{1, 1, -2.9}
	nodes[2].SetTriangles(1, 1)

	snap := &scene.Snapshot{Triangles: tris, Nodes: nodes}

	hit, ok := closestHit(snap, newRay(types.Vec3{0.25, 0.25, 5}, types.Vec3{0, 0, -1}))
	if !ok {
		t.Fatalf("expected a hit")
	}
	if hit.triIndex != 0 {
		t.Fatalf("expected the nearer triangle 0; got %d", hit.triIndex)
	}
	if hit.t < 4.999 || hit.t > 5.001 {
		t.Fatalf("expected hit distance 5; got %f", hit.t)
	}

	// A ray outside both boxes misses entirely.
	if _, ok = closestHit(snap, newRay(types.Vec3{5, 5, 5}, types.Vec3{0, 0, -1})); ok {
		t.Fatalf("expected a miss outside the BVH bounds")
	}

	// An empty snapshot misses without traversing.
	if _, ok = closestHit(&scene.Snapshot{}, newRay(types.Vec3{}, types.Vec3{0, 0, -1})); ok {
		t.Fatalf("expected a miss for an empty snapshot")
	}
}

func TestShadingNormalFacesRay(t *testing.T) {
	tri := unitTriangle(0)

	// A ray travelling along +z must see the normal flipped towards it.
	n := shadingNormal(&tri, 0.25, 0.25, types.Vec3{0, 0, 1})
	if n.Sub(types.Vec3{0, 0, -1}).Len() > 1e-5 {
		t.Fatalf("expected flipped normal (0, 0, -1); got %v", n)
	}

	// Missing vertex normals fall back to the geometric normal.
	tri.Normals = [3]types.Vec3{}
	n = shadingNormal(&tri, 0.25, 0.25, types.Vec3{0, 0, -1})
	if n.Sub(types.Vec3{0, 0, 1}).Len() > 1e-5 {
		t.Fatalf("expected geometric normal (0, 0, 1); got %v", n)
	}
}

func TestRNGDeterminism(t *testing.T) {
	a := newRNG(3, 5, 9, 64)
	b := newRNG(3, 5, 9, 64)
	for i := 0; i < 16; i++ {
		if a.next() != b.next() {
			t.Fatalf("expected identical sequences for identical seeds")
		}
	}

	// A different frame produces a different sequence.
	c := newRNG(3, 5, 10, 64)
	d := newRNG(3, 5, 9, 64)
	same := true
	for i := 0; i < 16; i++ {
		if c.next() != d.next() {
			same = false
		}
	}
	if same {
		t.Fatalf("expected different sequences for different frames")
	}

	// float samples stay in [0, 1).
	gen := newRNG(0, 0, 0, 64)
	for i := 0; i < 1000; i++ {
		if v := gen.float(); v < 0 || v >= 1 {
			t.Fatalf("expected sample in [0, 1); got %f", v)
		}
	}
}
