package compiler

import (
	"math/rand"
	"testing"

	"github.com/atul-mourya/RayTracing-sub004/scene"
	"github.com/atul-mourya/RayTracing-sub004/types"
)

type testVolume struct {
	min types.Vec3
	max types.Vec3
}

func (v *testVolume) BBox() [2]types.Vec3 {
	return [2]types.Vec3{v.min, v.max}
}

func (v *testVolume) Center() types.Vec3 {
	return v.min.Add(v.max).Mul(0.5)
}

func randomVolumes(count int, seed int64) []BoundedVolume {
	rng := rand.New(rand.NewSource(seed))
	itemList := make([]BoundedVolume, count)
	for idx := range itemList {
		min := types.Vec3{
			rng.Float32()*20 - 10,
			rng.Float32()*20 - 10,
			rng.Float32()*20 - 10,
		}
		max := min.Add(types.Vec3{
			rng.Float32() + 0.01,
			rng.Float32() + 0.01,
			rng.Float32() + 0.01,
		})
		itemList[idx] = &testVolume{min: min, max: max}
	}
	return itemList
}

func TestLeafCallback(t *testing.T) {
	primSpecs := []testVolume{
		{types.Vec3{-2, 0, -2}, types.Vec3{-1, 1, -1}},
		{types.Vec3{1, 0, -2}, types.Vec3{2, 1, -1}},
		{types.Vec3{-2, 0, 1}, types.Vec3{-1, 1, 2}},
		{types.Vec3{1, 0, 1}, types.Vec3{2, 1, 2}},
	}

	itemList := make([]BoundedVolume, len(primSpecs))
	for idx := range primSpecs {
		itemList[idx] = &primSpecs[idx]
	}

	var cbCount = 0
	var expItemListCount = 0
	cb := func(leaf *scene.BVHNode, itemList []BoundedVolume) {
		cbCount++
		if len(itemList) != expItemListCount {
			t.Fatalf("expected leaf callback to be called with %d items; got %d", expItemListCount, len(itemList))
		}
		leaf.SetTriangles(0, uint32(len(itemList)))
	}

	var expCount = 0

	// Partition each item in a single leaf
	cbCount = 0
	expItemListCount = 1
	treeNodes := BuildBVH(itemList, 1, SurfaceAreaHeuristic, cb)

	expCount = 4
	if cbCount != expCount {
		t.Fatalf("expected leaf callback to be called %d times; called %d", expCount, cbCount)
	}
	expCount = 7
	if len(treeNodes) != expCount {
		t.Fatalf("expected bvh tree to have %d nodes; got %d", expCount, len(treeNodes))
	}

	// Partition two items in a single leaf
	cbCount = 0
	expItemListCount = 2
	treeNodes = BuildBVH(itemList, 2, SurfaceAreaHeuristic, cb)

	expCount = 2
	if cbCount != expCount {
		t.Fatalf("expected leaf callback to be called %d times; called %d", expCount, cbCount)
	}
	expCount = 3
	if len(treeNodes) != expCount {
		t.Fatalf("expected bvh tree to have %d nodes; got %d", expCount, len(treeNodes))
	}
}

// Every node's bounding box must tightly contain its children; leaf boxes must
// contain the items assigned to them.
func TestBoundsInvariant(t *testing.T) {
	for _, strategy := range []SplitStrategy{SurfaceAreaHeuristic, MedianSplit} {
		for _, count := range []int{1, 6, 7, 1000} {
			itemList := randomVolumes(count, int64(count))

			var leafList [][]BoundedVolume
			nodes := BuildBVH(itemList, 6, strategy, func(leaf *scene.BVHNode, items []BoundedVolume) {
				copied := make([]BoundedVolume, len(items))
				copy(copied, items)
				leafList = append(leafList, copied)
				leaf.SetTriangles(uint32(len(leafList)-1), uint32(len(items)))
			})

			if len(nodes) == 0 {
				t.Fatalf("expected at least one node for %d items", count)
			}

			var visit func(index uint32)
			visit = func(index uint32) {
				node := &nodes[index]
				if node.IsLeaf() {
					offset, _ := node.TriangleRange()
					for _, item := range leafList[offset] {
						bbox := item.BBox()
						for axis := 0; axis < 3; axis++ {
							if bbox[0][axis] < node.Min[axis]-1e-4 || bbox[1][axis] > node.Max[axis]+1e-4 {
								t.Fatalf("leaf node %d does not contain its item bbox on axis %d", index, axis)
							}
						}
					}
					return
				}

				left, right := node.ChildNodes()
				for _, child := range []uint32{left, right} {
					childNode := &nodes[child]
					for axis := 0; axis < 3; axis++ {
						if childNode.Min[axis] < node.Min[axis]-1e-4 || childNode.Max[axis] > node.Max[axis]+1e-4 {
							t.Fatalf("node %d does not contain child %d on axis %d", index, child, axis)
						}
					}
					visit(child)
				}
			}
			visit(0)
		}
	}
}

// The leaves must partition the input: every item lands in exactly one leaf.
func TestPartitionInvariant(t *testing.T) {
	itemList := randomVolumes(1000, 42)

	seen := make(map[BoundedVolume]int)
	BuildBVH(itemList, 6, SurfaceAreaHeuristic, func(leaf *scene.BVHNode, items []BoundedVolume) {
		for _, item := range items {
			seen[item]++
		}
		leaf.SetTriangles(0, uint32(len(items)))
	})

	if len(seen) != len(itemList) {
		t.Fatalf("expected %d partitioned items; got %d", len(itemList), len(seen))
	}
	for item, count := range seen {
		if count != 1 {
			t.Fatalf("expected item %v to appear in exactly one leaf; appeared in %d", item, count)
		}
	}
}

func TestLeafCapacity(t *testing.T) {
	itemList := randomVolumes(1000, 7)

	maxLeafItems := 6
	BuildBVH(itemList, maxLeafItems, SurfaceAreaHeuristic, func(leaf *scene.BVHNode, items []BoundedVolume) {
		if len(items) > maxLeafItems {
			t.Fatalf("expected leaf to contain at most %d items; got %d", maxLeafItems, len(items))
		}
		leaf.SetTriangles(0, uint32(len(items)))
	})
}

// Coincident centroids defeat both split strategies; the builder must still
// terminate by emitting an oversized leaf.
func TestDegenerateCentroids(t *testing.T) {
	itemList := make([]BoundedVolume, 20)
	for idx := range itemList {
		itemList[idx] = &testVolume{
			min: types.Vec3{0, 0, 0},
			max: types.Vec3{1, 1, 1},
		}
	}

	for _, strategy := range []SplitStrategy{SurfaceAreaHeuristic, MedianSplit} {
		total := 0
		nodes := BuildBVH(itemList, 4, strategy, func(leaf *scene.BVHNode, items []BoundedVolume) {
			total += len(items)
			leaf.SetTriangles(0, uint32(len(items)))
		})
		if total != len(itemList) {
			t.Fatalf("expected %d partitioned items; got %d", len(itemList), total)
		}
		if len(nodes) == 0 {
			t.Fatalf("expected at least one node")
		}
	}
}

func TestMedianSplitAxisCycling(t *testing.T) {
	// Items separated only along the y axis; a depth-1 median split must still
	// find the separation once the axis cycles to y.
	itemList := []BoundedVolume{
		&testVolume{types.Vec3{0, -2, 0}, types.Vec3{1, -1, 1}},
		&testVolume{types.Vec3{0, 1, 0}, types.Vec3{1, 2, 1}},
	}

	left, right, ok := MedianSplit.Split(itemList, [2]types.Vec3{{0, -2, 0}, {1, 2, 1}}, 1)
	if !ok {
		t.Fatalf("expected median split to succeed")
	}
	if len(left) != 1 || len(right) != 1 {
		t.Fatalf("expected a 1/1 split; got %d/%d", len(left), len(right))
	}
	if left[0].Center()[1] > right[0].Center()[1] {
		t.Fatalf("expected left side to hold the lower centroid")
	}
}
