// Package software provides a CPU realization of the path-tracing integrator
// contract. It consumes a compiled scene snapshot and produces one raw
// radiance sample per pixel per invocation, exactly as a GPU compute stage
// would, which makes the full pipeline executable and testable without a
// device.
package software

import (
	"errors"
	"math"
	"runtime"
	"sync"

	"github.com/atul-mourya/RayTracing-sub004/log"
	"github.com/atul-mourya/RayTracing-sub004/scene"
	"github.com/atul-mourya/RayTracing-sub004/tracer"
	"github.com/atul-mourya/RayTracing-sub004/types"
)

var (
	ErrNoCamera = errors.New("software: snapshot defines no camera")
)

// Environment and execution options for the software integrator.
type Options struct {
	// Environment light returned on ray miss.
	SkyColor     types.Vec3
	SkyIntensity float32

	// Number of worker goroutines; 0 selects the CPU count.
	NumWorkers int
}

// A CPU path-tracing integrator implementing tracer.Integrator. Each pixel is
// traced independently with a deterministic hash-seeded random sequence;
// rows are distributed across worker goroutines.
type Integrator struct {
	opts   Options
	logger log.Logger
}

// Create a software integrator.
func New(opts Options) *Integrator {
	if opts.NumWorkers <= 0 {
		opts.NumWorkers = runtime.NumCPU()
	}
	if opts.SkyIntensity == 0 {
		opts.SkyIntensity = 1
	}
	return &Integrator{
		opts:   opts,
		logger: log.New("software tracer"),
	}
}

// Implements tracer.Integrator.
func (in *Integrator) Close() {}

// Trace one frame of raw radiance samples into the sample buffer. When gbuf
// is non-nil the primary hit's world-space normal and linear depth are
// recorded alongside.
func (in *Integrator) Trace(snap *scene.Snapshot, uniforms tracer.Uniforms, sample *tracer.Framebuffer, gbuf *tracer.GBuffer) error {
	if snap.Camera == nil {
		return ErrNoCamera
	}
	width := int(uniforms.Width)
	height := int(uniforms.Height)
	if sample.Width != width || sample.Height != height {
		return tracer.ErrInvalidResolution
	}

	camForward := snap.Camera.LookAt.Sub(snap.Camera.Position).Normalize()

	var wg sync.WaitGroup
	rowChunk := (height + in.opts.NumWorkers - 1) / in.opts.NumWorkers
	for startRow := 0; startRow < height; startRow += rowChunk {
		endRow := startRow + rowChunk
		if endRow > height {
			endRow = height
		}

		wg.Add(1)
		go func(y0, y1 int) {
			defer wg.Done()
			for y := y0; y < y1; y++ {
				for x := 0; x < width; x++ {
					in.tracePixel(snap, uniforms, sample, gbuf, x, y, camForward)
				}
			}
		}(startRow, endRow)
	}
	wg.Wait()
	return nil
}

func (in *Integrator) tracePixel(snap *scene.Snapshot, uniforms tracer.Uniforms, sample *tracer.Framebuffer, gbuf *tracer.GBuffer, x, y int, camForward types.Vec3) {
	gen := newRNG(uint32(x), uint32(y), uniforms.Frame, uniforms.Width)

	var radiance types.Vec3
	var coverage float32
	primaryRecorded := false

	spp := int(uniforms.NumRaysPerPixel)
	if spp < 1 {
		spp = 1
	}
	for s := 0; s < spp; s++ {
		r := in.primaryRay(snap.Camera, uniforms, x, y, gen)

		throughput := types.Vec3{1, 1, 1}
		for bounce := uint32(0); bounce <= uniforms.MaxBounceCount; bounce++ {
			hit, ok := closestHit(snap, r)
			if !ok {
				radiance = radiance.Add(throughput.MulVec(in.environment(snap, r.dir)))
				break
			}

			tri := &snap.Triangles[hit.triIndex]
			mat := &snap.Materials[tri.MaterialIndex]
			hitPos := r.origin.Add(r.dir.Mul(hit.t))
			normal := shadingNormal(tri, hit.u, hit.v, r.dir)

			if bounce == 0 {
				coverage++
				if gbuf != nil && !primaryRecorded {
					depth := hitPos.Sub(snap.Camera.Position).Dot(camForward)
					gbuf.Set(x, y, normal, depth)
					primaryRecorded = true
				}
			}

			emission := mat.Emissive.Mul(mat.EmissiveIntensity)
			radiance = radiance.Add(throughput.MulVec(emission))
			throughput = throughput.MulVec(mat.Color)

			dir := cosineSampleHemisphere(normal, gen)
			r = newRay(hitPos.Add(normal.Mul(originBias)), dir)
		}
	}

	invSpp := 1 / float32(spp)
	if gbuf != nil && !primaryRecorded {
		gbuf.Set(x, y, types.Vec3{}, 0)
	}
	sample.Set(x, y, radiance.Mul(invSpp), coverage*invSpp)
}

// Generate a jittered pinhole camera ray by interpolating the frustum corner
// rays.
func (in *Integrator) primaryRay(cam *scene.Camera, uniforms tracer.Uniforms, x, y int, gen *rng) ray {
	u := (float32(x) + gen.float()) / float32(uniforms.Width)
	v := (float32(y) + gen.float()) / float32(uniforms.Height)

	top := types.LerpVec3(cam.Frustum[0].Vec3(), cam.Frustum[1].Vec3(), u)
	bottom := types.LerpVec3(cam.Frustum[2].Vec3(), cam.Frustum[3].Vec3(), u)
	dir := types.LerpVec3(top, bottom, v).Normalize()

	return newRay(cam.Position, dir)
}

// Evaluate the environment term for a ray that escaped the scene: a constant
// sky plus a soft lobe per directional light.
func (in *Integrator) environment(snap *scene.Snapshot, dir types.Vec3) types.Vec3 {
	out := in.opts.SkyColor.Mul(in.opts.SkyIntensity)
	for _, light := range snap.Lights {
		cos := dir.Dot(light.Direction.Mul(-1))
		if cos <= 0 {
			continue
		}
		falloff := float32(math.Pow(float64(cos), 64))
		out = out.Add(light.Color.Mul(light.Intensity * falloff))
	}
	return out
}
