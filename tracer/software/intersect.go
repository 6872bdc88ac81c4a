package software

import (
	"math"

	"github.com/atul-mourya/RayTracing-sub004/scene"
	"github.com/atul-mourya/RayTracing-sub004/types"
)

const (
	intersectEpsilon float32 = 1e-7

	// Offset applied to secondary ray origins to escape the surface.
	originBias float32 = 1e-4

	maxTraversalDepth = 64
)

type ray struct {
	origin types.Vec3
	dir    types.Vec3
	invDir types.Vec3
}

func newRay(origin, dir types.Vec3) ray {
	return ray{
		origin: origin,
		dir:    dir,
		invDir: types.Vec3{1 / dir[0], 1 / dir[1], 1 / dir[2]},
	}
}

type hitRecord struct {
	t        float32
	triIndex int
	u, v     float32
}

// Find the closest triangle intersection by walking the flattened BVH with an
// explicit node stack. Internal nodes are culled with slab tests; leaves run
// the triangle test over their (offset, count) range.
func closestHit(snap *scene.Snapshot, r ray) (hitRecord, bool) {
	hit := hitRecord{t: float32(math.MaxFloat32), triIndex: -1}
	if len(snap.Nodes) == 0 {
		return hit, false
	}

	var stack [maxTraversalDepth]uint32
	stackLen := 1
	stack[0] = 0

	for stackLen > 0 {
		stackLen--
		node := &snap.Nodes[stack[stackLen]]

		if !rayBoxHit(r, node.Min, node.Max, hit.t) {
			continue
		}

		if node.IsLeaf() {
			offset, count := node.TriangleRange()
			for i := offset; i < offset+count; i++ {
				if t, u, v, ok := rayTriangleHit(r, &snap.Triangles[i]); ok && t < hit.t {
					hit.t = t
					hit.triIndex = int(i)
					hit.u = u
					hit.v = v
				}
			}
			continue
		}

		left, right := node.ChildNodes()
		if stackLen+2 <= maxTraversalDepth {
			stack[stackLen] = left
			stack[stackLen+1] = right
			stackLen += 2
		}
	}

	return hit, hit.triIndex >= 0
}

// Slab test against an axis-aligned box, bounded by the closest hit so far.
func rayBoxHit(r ray, min, max types.Vec3, tMax float32) bool {
	tNear := float32(-math.MaxFloat32)
	tFar := tMax

	for axis := 0; axis < 3; axis++ {
		t0 := (min[axis] - r.origin[axis]) * r.invDir[axis]
		t1 := (max[axis] - r.origin[axis]) * r.invDir[axis]
		if t0 > t1 {
			t0, t1 = t1, t0
		}
		if t0 > tNear {
			tNear = t0
		}
		if t1 < tFar {
			tFar = t1
		}
		if tNear > tFar {
			return false
		}
	}
	return tFar > 0
}

// Möller–Trumbore ray/triangle intersection. Returns the distance along the
// ray and the barycentric coordinates of the hit.
func rayTriangleHit(r ray, tri *scene.Triangle) (t, u, v float32, ok bool) {
	edge1 := tri.Positions[1].Sub(tri.Positions[0])
	edge2 := tri.Positions[2].Sub(tri.Positions[0])

	pvec := r.dir.Cross(edge2)
	det := edge1.Dot(pvec)
	if det > -intersectEpsilon && det < intersectEpsilon {
		return 0, 0, 0, false
	}
	invDet := 1 / det

	tvec := r.origin.Sub(tri.Positions[0])
	u = tvec.Dot(pvec) * invDet
	if u < 0 || u > 1 {
		return 0, 0, 0, false
	}

	qvec := tvec.Cross(edge1)
	v = r.dir.Dot(qvec) * invDet
	if v < 0 || u+v > 1 {
		return 0, 0, 0, false
	}

	t = edge2.Dot(qvec) * invDet
	if t <= intersectEpsilon {
		return 0, 0, 0, false
	}
	return t, u, v, true
}

// Interpolate the shading normal at a hit via its barycentric coordinates,
// falling back to the geometric normal when vertex normals are absent.
func shadingNormal(tri *scene.Triangle, u, v float32, rayDir types.Vec3) types.Vec3 {
	w := 1 - u - v
	n := tri.Normals[0].Mul(w).Add(tri.Normals[1].Mul(u)).Add(tri.Normals[2].Mul(v))
	if n.Len() < intersectEpsilon {
		edge1 := tri.Positions[1].Sub(tri.Positions[0])
		edge2 := tri.Positions[2].Sub(tri.Positions[0])
		n = edge1.Cross(edge2)
	}
	n = n.Normalize()

	// Orient against the incoming ray.
	if n.Dot(rayDir) > 0 {
		n = n.Mul(-1)
	}
	return n
}
