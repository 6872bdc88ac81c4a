// Package tracer defines the data contract between the compiled scene
// snapshot and a path-tracing integrator. The integrator itself is an
// external compute stage; this package only fixes its inputs (snapshot plus
// per-invocation uniforms) and outputs (one raw radiance sample per pixel,
// optionally a geometry buffer). The software subpackage provides a CPU
// realization of the contract.
package tracer

import (
	"github.com/atul-mourya/RayTracing-sub004/scene"
)

// Per-invocation uniforms accompanying each integrator dispatch.
type Uniforms struct {
	// Maximum number of path segments per sample.
	MaxBounceCount uint32

	// Rays emitted per pixel per invocation.
	NumRaysPerPixel uint32

	// Monotonic frame counter. Together with the pixel coordinates it seeds
	// the integrator's deterministic random sequence, so identical
	// (pixel, frame) pairs reproduce exactly.
	Frame uint32

	// Target resolution.
	Width  uint32
	Height uint32
}

// An integrator consumes a scene snapshot and produces one raw, un-averaged
// radiance value per pixel per invocation.
type Integrator interface {
	// Trace one frame worth of samples into the sample buffer. When gbuf is
	// non-nil the integrator also records primary-hit normals and linear
	// depth for the denoiser.
	Trace(snap *scene.Snapshot, uniforms Uniforms, sample *Framebuffer, gbuf *GBuffer) error

	// Shutdown and cleanup the integrator.
	Close()
}
