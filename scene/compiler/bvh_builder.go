package compiler

import (
	"math"
	"sort"
	"time"

	"github.com/atul-mourya/RayTracing-sub004/log"
	"github.com/atul-mourya/RayTracing-sub004/scene"
	"github.com/atul-mourya/RayTracing-sub004/types"
)

const (
	// Default number of SAH bins evaluated per axis.
	DefaultSAHBins = 8

	// Centroid extents below this threshold are treated as degenerate and
	// skipped when evaluating split candidates.
	minAxisExtent float32 = 1e-6
)

// The BoundedVolume interface is implemented by anything that can be
// partitioned by the BVH builder.
type BoundedVolume interface {
	BBox() [2]types.Vec3
	Center() types.Vec3
}

// A callback invoked whenever the builder creates a new leaf. The callback
// owns final item ordering: it must append the leaf items to the caller's
// flat output array and store the resulting (offset, count) on the node.
type LeafCallback func(leaf *scene.BVHNode, itemList []BoundedVolume)

// A split strategy partitions a work list into two non-empty halves. A false
// return signals that no acceptable split exists and the builder should fall
// back to a median split.
type SplitStrategy interface {
	Split(workList []BoundedVolume, nodeBBox [2]types.Vec3, depth int) (left, right []BoundedVolume, ok bool)
}

var (
	// Median-centroid splitting with the axis cycling through x/y/z by depth.
	MedianSplit SplitStrategy = medianSplit{}

	// Binned surface-area-heuristic splitting.
	SurfaceAreaHeuristic SplitStrategy = sahSplit{bins: DefaultSAHBins}
)

type buildStats struct {
	partitionedItems int
	totalItems       int
	nodes            int
	leafs            int
	maxDepth         int
}

type builder struct {
	logger log.Logger

	// BVH nodes stored as a contiguous list.
	nodes []scene.BVHNode

	// Invoked to set up leaves for the partitioned bounding volumes.
	leafCb LeafCallback

	// Leaves are created once a work list holds at most this many items.
	maxLeafItems int

	strategy SplitStrategy

	stats buildStats
}

// Construct a BVH over a set of bounded volumes, returning the nodes as a
// flat array with integer child indices. maxLeafItems caps the number of
// items per leaf; the builder always generates a leaf once the incoming work
// list is at or below the cap. Degenerate inputs (coincident centroids,
// zero-area boxes) terminate via a median fallback or, failing that, an
// oversized leaf.
func BuildBVH(workList []BoundedVolume, maxLeafItems int, strategy SplitStrategy, leafCb LeafCallback) []scene.BVHNode {
	b := &builder{
		logger:       log.New("bvh builder"),
		nodes:        make([]scene.BVHNode, 0),
		leafCb:       leafCb,
		maxLeafItems: maxLeafItems,
		strategy:     strategy,
		stats: buildStats{
			totalItems: len(workList),
		},
	}

	start := time.Now()
	b.partition(workList, 0)
	b.logger.Debugf(
		"BVH tree build time: %d ms, maxDepth: %d, nodes: %d, leafs: %d",
		time.Since(start).Nanoseconds()/1e6,
		b.stats.maxDepth, b.stats.nodes, b.stats.leafs,
	)
	return b.nodes
}

// Partition the work list and return the node index.
func (b *builder) partition(workList []BoundedVolume, depth int) uint32 {
	if depth > b.stats.maxDepth {
		b.stats.maxDepth = depth
	}

	node := scene.BVHNode{
		Min: types.Vec3{math.MaxFloat32, math.MaxFloat32, math.MaxFloat32},
		Max: types.Vec3{-math.MaxFloat32, -math.MaxFloat32, -math.MaxFloat32},
	}

	// Calculate the tight bounding box for the node.
	for _, item := range workList {
		itemBBox := item.BBox()
		node.Min = types.MinVec3(node.Min, itemBBox[0])
		node.Max = types.MaxVec3(node.Max, itemBBox[1])
	}

	if len(workList) <= b.maxLeafItems {
		return b.createLeaf(&node, workList)
	}

	left, right, ok := b.strategy.Split(workList, [2]types.Vec3{node.Min, node.Max}, depth)
	if !ok || len(left) == 0 || len(right) == 0 {
		// The strategy found no acceptable split or produced an empty side;
		// retry with a plain median split on the x-axis.
		left, right = splitAtMedian(workList, 0)
	}
	if len(left) == 0 || len(right) == 0 {
		// Even the median split failed to shrink the set. Force an oversized
		// leaf instead of recursing forever.
		return b.createLeaf(&node, workList)
	}

	nodeIndex := len(b.nodes)
	b.nodes = append(b.nodes, node)
	b.stats.nodes++

	// Partition children and update node indices.
	leftNodeIndex := b.partition(left, depth+1)
	rightNodeIndex := b.partition(right, depth+1)
	b.nodes[nodeIndex].SetChildNodes(leftNodeIndex, rightNodeIndex)

	return uint32(nodeIndex)
}

// Set up the given node as a leaf containing all items in the work list and
// return its index in the node array.
func (b *builder) createLeaf(node *scene.BVHNode, workList []BoundedVolume) uint32 {
	b.leafCb(node, workList)

	nodeIndex := len(b.nodes)
	b.nodes = append(b.nodes, *node)

	b.stats.leafs++
	b.stats.partitionedItems += len(workList)

	return uint32(nodeIndex)
}

// Sort a copy of the work list by centroid along axis and split it down the
// middle.
func splitAtMedian(workList []BoundedVolume, axis int) (left, right []BoundedVolume) {
	sorted := make([]BoundedVolume, len(workList))
	copy(sorted, workList)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Center()[axis] < sorted[j].Center()[axis]
	})

	mid := len(sorted) / 2
	return sorted[:mid], sorted[mid:]
}

// Median-centroid splitting. The split axis cycles through x/y/z with tree
// depth; the work list is sorted by centroid along that axis and split at the
// midpoint.
type medianSplit struct{}

func (medianSplit) Split(workList []BoundedVolume, nodeBBox [2]types.Vec3, depth int) (left, right []BoundedVolume, ok bool) {
	left, right = splitAtMedian(workList, depth%3)
	return left, right, len(left) > 0 && len(right) > 0
}

// Binned SAH splitting. For each axis the items are bucketed into a fixed
// number of bins by centroid and the surface-area-heuristic cost
//
//	cost = area(left)*count(left) + area(right)*count(right)
//
// is evaluated at every bin boundary. The globally cheapest candidate wins;
// if no candidate improves on the unsplit leaf cost the strategy reports
// failure so the builder can fall back to a median split.
type sahSplit struct {
	bins int
}

type sahBin struct {
	count int
	min   types.Vec3
	max   types.Vec3
}

func (s sahSplit) Split(workList []BoundedVolume, nodeBBox [2]types.Vec3, depth int) (left, right []BoundedVolume, ok bool) {
	leafCost := float32(len(workList)) * boxArea(nodeBBox[0], nodeBBox[1])

	bestCost := float32(math.MaxFloat32)
	bestAxis := -1
	var bestPoint float32

	for axis := 0; axis < 3; axis++ {
		cMin := float32(math.MaxFloat32)
		cMax := float32(-math.MaxFloat32)
		for _, item := range workList {
			c := item.Center()[axis]
			if c < cMin {
				cMin = c
			}
			if c > cMax {
				cMax = c
			}
		}
		extent := cMax - cMin
		if extent < minAxisExtent {
			continue
		}

		bins := make([]sahBin, s.bins)
		for i := range bins {
			bins[i].min = types.Vec3{math.MaxFloat32, math.MaxFloat32, math.MaxFloat32}
			bins[i].max = types.Vec3{-math.MaxFloat32, -math.MaxFloat32, -math.MaxFloat32}
		}

		binScale := float32(s.bins) / extent
		for _, item := range workList {
			bin := int((item.Center()[axis] - cMin) * binScale)
			if bin >= s.bins {
				bin = s.bins - 1
			}
			itemBBox := item.BBox()
			bins[bin].count++
			bins[bin].min = types.MinVec3(bins[bin].min, itemBBox[0])
			bins[bin].max = types.MaxVec3(bins[bin].max, itemBBox[1])
		}

		// Evaluate the SAH cost at each bin boundary via a prefix sweep from
		// the left and a suffix sweep from the right.
		leftCost := make([]float32, s.bins)
		leftCount := make([]int, s.bins)
		accMin := types.Vec3{math.MaxFloat32, math.MaxFloat32, math.MaxFloat32}
		accMax := types.Vec3{-math.MaxFloat32, -math.MaxFloat32, -math.MaxFloat32}
		accCount := 0
		for i := 0; i < s.bins; i++ {
			if bins[i].count > 0 {
				accMin = types.MinVec3(accMin, bins[i].min)
				accMax = types.MaxVec3(accMax, bins[i].max)
			}
			accCount += bins[i].count
			leftCount[i] = accCount
			leftCost[i] = float32(accCount) * boxArea(accMin, accMax)
		}

		accMin = types.Vec3{math.MaxFloat32, math.MaxFloat32, math.MaxFloat32}
		accMax = types.Vec3{-math.MaxFloat32, -math.MaxFloat32, -math.MaxFloat32}
		accCount = 0
		for i := s.bins - 1; i > 0; i-- {
			if bins[i].count > 0 {
				accMin = types.MinVec3(accMin, bins[i].min)
				accMax = types.MaxVec3(accMax, bins[i].max)
			}
			accCount += bins[i].count

			// Empty-bin degeneracy: skip boundaries that leave a side empty.
			if leftCount[i-1] == 0 || accCount == 0 {
				continue
			}

			cost := leftCost[i-1] + float32(accCount)*boxArea(accMin, accMax)
			if cost < bestCost {
				bestCost = cost
				bestAxis = axis
				bestPoint = cMin + float32(i)*extent/float32(s.bins)
			}
		}
	}

	if bestAxis < 0 || bestCost >= leafCost {
		return nil, nil, false
	}

	left = make([]BoundedVolume, 0, len(workList)/2)
	right = make([]BoundedVolume, 0, len(workList)/2)
	for _, item := range workList {
		if item.Center()[bestAxis] < bestPoint {
			left = append(left, item)
		} else {
			right = append(right, item)
		}
	}
	return left, right, len(left) > 0 && len(right) > 0
}

// Surface area of a bounding box; zero for an inverted (empty) box.
func boxArea(min, max types.Vec3) float32 {
	side := max.Sub(min)
	if side[0] < 0 || side[1] < 0 || side[2] < 0 {
		return 0
	}
	return 2 * (side[0]*side[1] + side[1]*side[2] + side[0]*side[2])
}
