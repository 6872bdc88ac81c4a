package renderer

import (
	"image"
	"image/color"
	"sync/atomic"
	"time"

	"github.com/atul-mourya/RayTracing-sub004/log"
	"github.com/atul-mourya/RayTracing-sub004/scene"
	"github.com/atul-mourya/RayTracing-sub004/tracer"
)

// Renderer options.
type Options struct {
	// Frame dims.
	Width  int
	Height int

	// Number of indirect bounces per path.
	MaxBounceCount uint32

	// Rays emitted per pixel per frame.
	NumRaysPerPixel uint32

	// Route raw samples through the ASVGF stage instead of the progressive
	// accumulator.
	UseASVGF bool

	Accumulator AccumulatorOptions
	ASVGF       ASVGFOptions
}

func (o Options) withDefaults() Options {
	if o.MaxBounceCount == 0 {
		o.MaxBounceCount = 4
	}
	if o.NumRaysPerPixel == 0 {
		o.NumRaysPerPixel = 1
	}
	return o
}

// Renderer drives the per-frame pipeline: integrate one sample buffer from
// the current snapshot, fold it through the accumulation or ASVGF stage and
// resolve a display image. Stages execute strictly in order; no buffer is
// ever read and written within the same pass.
type Renderer struct {
	opts   Options
	logger log.Logger

	integrator tracer.Integrator

	// The active snapshot, replaced wholesale by SetSnapshot. Loads never
	// observe a partially compiled scene.
	snapshot atomic.Pointer[scene.Snapshot]

	accum *Accumulator
	asvgf *ASVGF

	sample  *tracer.Framebuffer
	gbuf    *tracer.GBuffer
	display *tracer.Framebuffer

	frame        uint32
	cameraMoving bool
	stats        FrameStats
}

// Create a renderer around an integrator.
func New(integrator tracer.Integrator, opts Options) (*Renderer, error) {
	if integrator == nil {
		return nil, ErrNoIntegrator
	}

	r := &Renderer{
		opts:       opts.withDefaults(),
		logger:     log.New("renderer"),
		integrator: integrator,
	}

	var err error
	if r.accum, err = NewAccumulator(opts.Width, opts.Height, opts.Accumulator); err != nil {
		return nil, err
	}
	if r.asvgf, err = NewASVGF(opts.Width, opts.Height, opts.ASVGF); err != nil {
		return nil, err
	}
	if err = r.allocTargets(opts.Width, opts.Height); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Renderer) allocTargets(width, height int) error {
	var err error
	if r.sample, err = tracer.NewFramebuffer(width, height); err != nil {
		return err
	}
	if r.display, err = tracer.NewFramebuffer(width, height); err != nil {
		return err
	}
	if r.gbuf, err = tracer.NewGBuffer(width, height); err != nil {
		return err
	}
	return nil
}

// Attach a new scene snapshot, atomically replacing the previous one, and
// restart accumulation. Safe to call between frames at any time.
func (r *Renderer) SetSnapshot(snap *scene.Snapshot) {
	r.snapshot.Store(snap)
	r.Reset()
}

// The currently attached snapshot.
func (r *Renderer) Snapshot() *scene.Snapshot {
	return r.snapshot.Load()
}

// Flag whether the camera is currently in motion. The display resolve blends
// towards the reconstruction filter while the camera moves.
func (r *Renderer) SetCameraMoving(moving bool) {
	r.cameraMoving = moving
}

// Clear all temporal state (accumulation history, denoiser history, frame
// counter). Reset is idempotent and never touches the snapshot.
func (r *Renderer) Reset() {
	r.accum.Reset()
	r.asvgf.Reset()
	r.frame = 0
}

// Resize all render targets. History buffers are fully cleared before the
// next frame so no stale or resolution-mismatched reads can occur.
func (r *Renderer) Resize(width, height int) error {
	if err := r.accum.Resize(width, height); err != nil {
		return err
	}
	if err := r.asvgf.Resize(width, height); err != nil {
		return err
	}
	if err := r.allocTargets(width, height); err != nil {
		return err
	}
	r.opts.Width = width
	r.opts.Height = height
	r.frame = 0
	return nil
}

// Render one frame and resolve it into a display image.
func (r *Renderer) RenderFrame() (*image.RGBA, error) {
	snap := r.snapshot.Load()
	if snap == nil {
		return nil, ErrNoSnapshot
	}

	start := time.Now()
	uniforms := tracer.Uniforms{
		MaxBounceCount:  r.opts.MaxBounceCount,
		NumRaysPerPixel: r.opts.NumRaysPerPixel,
		Frame:           r.frame,
		Width:           uint32(r.opts.Width),
		Height:          uint32(r.opts.Height),
	}

	if err := r.integrator.Trace(snap, uniforms, r.sample, r.gbuf); err != nil {
		return nil, err
	}
	traceTime := time.Since(start)

	filterStart := time.Now()
	if r.opts.UseASVGF && r.asvgf.Enabled() {
		if err := r.asvgf.Process(r.sample, r.gbuf, snap.Camera.ViewMat, snap.Camera.ProjMat, r.display); err != nil {
			return nil, err
		}
	} else {
		if err := r.accum.Accumulate(r.sample); err != nil {
			return nil, err
		}
		if err := r.accum.Resolve(r.display, r.cameraMoving); err != nil {
			return nil, err
		}
	}
	r.frame++

	r.stats = FrameStats{
		Frame:      r.frame,
		Iteration:  r.accum.Iteration(),
		TraceTime:  traceTime,
		FilterTime: time.Since(filterStart),
		RenderTime: time.Since(start),
	}

	return toRGBA(r.display), nil
}

// Get statistics for the last rendered frame.
func (r *Renderer) Stats() FrameStats {
	return r.stats
}

// Shutdown renderer and the attached integrator.
func (r *Renderer) Close() {
	r.integrator.Close()
}

// Convert a linear float framebuffer to an 8-bit RGBA image, clamping to
// [0, 1].
func toRGBA(fb *tracer.Framebuffer) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	for y := 0; y < fb.Height; y++ {
		for x := 0; x < fb.Width; x++ {
			c, _ := fb.At(x, y)
			img.SetRGBA(x, y, color.RGBA{
				R: toByte(c[0]),
				G: toByte(c[1]),
				B: toByte(c[2]),
				A: 255,
			})
		}
	}
	return img
}

func toByte(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}
