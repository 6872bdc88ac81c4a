package software

import (
	"math"

	"github.com/atul-mourya/RayTracing-sub004/types"
)

// A deterministic per-pixel pseudo-random sequence. The state is seeded from
// the pixel coordinates and frame counter via a Wang hash, so identical
// (pixel, frame) pairs replay exactly the same sampling decisions.
type rng struct {
	state uint32
}

func newRNG(x, y, frame, width uint32) *rng {
	seed := (y*width+x)*9781 + frame*6271 + 1
	return &rng{state: wangHash(seed)}
}

func wangHash(seed uint32) uint32 {
	seed = (seed ^ 61) ^ (seed >> 16)
	seed *= 9
	seed = seed ^ (seed >> 4)
	seed *= 0x27d4eb2d
	seed = seed ^ (seed >> 15)
	return seed
}

// Advance the xorshift state.
func (r *rng) next() uint32 {
	r.state ^= r.state << 13
	r.state ^= r.state >> 17
	r.state ^= r.state << 5
	return r.state
}

// A uniform float in [0, 1).
func (r *rng) float() float32 {
	return float32(r.next()) / float32(1<<32)
}

// Sample a cosine-weighted direction on the hemisphere around n.
func cosineSampleHemisphere(n types.Vec3, r *rng) types.Vec3 {
	r1 := r.float()
	r2 := r.float()

	phi := 2 * math.Pi * float64(r1)
	radius := float32(math.Sqrt(float64(r2)))
	x := radius * float32(math.Cos(phi))
	y := radius * float32(math.Sin(phi))
	z := float32(math.Sqrt(float64(1 - r2)))

	tangent, bitangent := orthonormalBasis(n)
	return tangent.Mul(x).Add(bitangent.Mul(y)).Add(n.Mul(z)).Normalize()
}

// Build a tangent/bitangent pair orthogonal to n.
func orthonormalBasis(n types.Vec3) (tangent, bitangent types.Vec3) {
	up := types.Vec3{0, 1, 0}
	if absf(n[1]) > 0.999 {
		up = types.Vec3{1, 0, 0}
	}
	tangent = up.Cross(n).Normalize()
	bitangent = n.Cross(tangent)
	return tangent, bitangent
}

func absf(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
