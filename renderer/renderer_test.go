package renderer

import (
	"testing"

	"github.com/atul-mourya/RayTracing-sub004/scene"
	"github.com/atul-mourya/RayTracing-sub004/tracer"
	"github.com/atul-mourya/RayTracing-sub004/types"
)

// A stub integrator emitting a constant color with full coverage.
type constantIntegrator struct {
	color  types.Vec3
	traces int
}

func (in *constantIntegrator) Trace(snap *scene.Snapshot, uniforms tracer.Uniforms, sample *tracer.Framebuffer, gbuf *tracer.GBuffer) error {
	in.traces++
	for y := 0; y < sample.Height; y++ {
		for x := 0; x < sample.Width; x++ {
			sample.Set(x, y, in.color, 1)
			if gbuf != nil {
				gbuf.Set(x, y, types.Vec3{0, 0, 1}, 1)
			}
		}
	}
	return nil
}

func (in *constantIntegrator) Close() {}

func testSnapshot() *scene.Snapshot {
	camera := scene.NewCamera(45)
	camera.SetupProjection(1)
	return &scene.Snapshot{Camera: camera}
}

func TestRendererRequiresIntegrator(t *testing.T) {
	if _, err := New(nil, Options{Width: 4, Height: 4}); err != ErrNoIntegrator {
		t.Fatalf("expected ErrNoIntegrator; got %v", err)
	}
}

func TestRendererRequiresSnapshot(t *testing.T) {
	r, err := New(&constantIntegrator{}, Options{Width: 4, Height: 4})
	if err != nil {
		t.Fatalf("expected renderer creation to succeed; got %v", err)
	}
	if _, err = r.RenderFrame(); err != ErrNoSnapshot {
		t.Fatalf("expected ErrNoSnapshot; got %v", err)
	}
}

func TestRenderFrameProgressive(t *testing.T) {
	in := &constantIntegrator{color: types.Vec3{0.4, 0.2, 0.8}}
	r, err := New(in, Options{Width: 8, Height: 8})
	if err != nil {
		t.Fatalf("expected renderer creation to succeed; got %v", err)
	}
	r.SetSnapshot(testSnapshot())

	img, err := r.RenderFrame()
	if err != nil {
		t.Fatalf("expected render to succeed; got %v", err)
	}

	// Constant full-coverage input resolves to the constant color clamped to
	// bytes.
	px := img.RGBAAt(4, 4)
	if px.R != 102 || px.G != 51 || px.B != 204 {
		t.Fatalf("expected display color (102, 51, 204); got (%d, %d, %d)", px.R, px.G, px.B)
	}

	stats := r.Stats()
	if stats.Frame != 1 || stats.Iteration != 1 {
		t.Fatalf("expected frame 1 iteration 1; got frame %d iteration %d", stats.Frame, stats.Iteration)
	}

	if _, err = r.RenderFrame(); err != nil {
		t.Fatalf("expected second render to succeed; got %v", err)
	}
	if r.Stats().Iteration != 2 {
		t.Fatalf("expected iteration 2; got %d", r.Stats().Iteration)
	}
	if in.traces != 2 {
		t.Fatalf("expected 2 integrator invocations; got %d", in.traces)
	}
}

func TestRendererResetRestartsAccumulation(t *testing.T) {
	r, err := New(&constantIntegrator{color: types.Vec3{1, 1, 1}}, Options{Width: 4, Height: 4})
	if err != nil {
		t.Fatalf("expected renderer creation to succeed; got %v", err)
	}
	r.SetSnapshot(testSnapshot())

	for i := 0; i < 5; i++ {
		if _, err = r.RenderFrame(); err != nil {
			t.Fatalf("expected render to succeed; got %v", err)
		}
	}
	if r.Stats().Iteration != 5 {
		t.Fatalf("expected iteration 5; got %d", r.Stats().Iteration)
	}

	r.Reset()
	if _, err = r.RenderFrame(); err != nil {
		t.Fatalf("expected render after reset to succeed; got %v", err)
	}
	if r.Stats().Iteration != 1 {
		t.Fatalf("expected iteration 1 after reset; got %d", r.Stats().Iteration)
	}
}

func TestRendererSetSnapshotResets(t *testing.T) {
	r, err := New(&constantIntegrator{color: types.Vec3{1, 1, 1}}, Options{Width: 4, Height: 4})
	if err != nil {
		t.Fatalf("expected renderer creation to succeed; got %v", err)
	}
	r.SetSnapshot(testSnapshot())
	if _, err = r.RenderFrame(); err != nil {
		t.Fatalf("expected render to succeed; got %v", err)
	}

	r.SetSnapshot(testSnapshot())
	if _, err = r.RenderFrame(); err != nil {
		t.Fatalf("expected render to succeed; got %v", err)
	}
	if r.Stats().Iteration != 1 {
		t.Fatalf("expected accumulation restart on snapshot swap; got iteration %d", r.Stats().Iteration)
	}
}

func TestRendererResize(t *testing.T) {
	r, err := New(&constantIntegrator{color: types.Vec3{1, 1, 1}}, Options{Width: 4, Height: 4})
	if err != nil {
		t.Fatalf("expected renderer creation to succeed; got %v", err)
	}
	r.SetSnapshot(testSnapshot())
	if _, err = r.RenderFrame(); err != nil {
		t.Fatalf("expected render to succeed; got %v", err)
	}

	if err = r.Resize(16, 8); err != nil {
		t.Fatalf("expected resize to succeed; got %v", err)
	}

	img, err := r.RenderFrame()
	if err != nil {
		t.Fatalf("expected render after resize to succeed; got %v", err)
	}
	bounds := img.Bounds()
	if bounds.Dx() != 16 || bounds.Dy() != 8 {
		t.Fatalf("expected 16x8 display image; got %dx%d", bounds.Dx(), bounds.Dy())
	}
	if r.Stats().Iteration != 1 {
		t.Fatalf("expected accumulation restart on resize; got iteration %d", r.Stats().Iteration)
	}
}

func TestRenderFrameASVGF(t *testing.T) {
	in := &constantIntegrator{color: types.Vec3{0.2, 0.4, 0.6}}
	r, err := New(in, Options{Width: 8, Height: 8, UseASVGF: true})
	if err != nil {
		t.Fatalf("expected renderer creation to succeed; got %v", err)
	}
	r.SetSnapshot(testSnapshot())

	// A constant image survives the denoiser unchanged.
	img, err := r.RenderFrame()
	if err != nil {
		t.Fatalf("expected render to succeed; got %v", err)
	}
	px := img.RGBAAt(4, 4)
	if px.R != 51 || px.G != 102 || px.B != 153 {
		t.Fatalf("expected display color (51, 102, 153); got (%d, %d, %d)", px.R, px.G, px.B)
	}
}
