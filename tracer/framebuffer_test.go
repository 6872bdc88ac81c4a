package tracer

import (
	"testing"

	"github.com/atul-mourya/RayTracing-sub004/types"
)

func TestFramebufferSetAt(t *testing.T) {
	fb, err := NewFramebuffer(4, 3)
	if err != nil {
		t.Fatalf("expected framebuffer allocation to succeed; got %v", err)
	}

	fb.Set(3, 2, types.Vec3{0.1, 0.2, 0.3}, 0.5)
	c, alpha := fb.At(3, 2)
	if c != (types.Vec3{0.1, 0.2, 0.3}) || alpha != 0.5 {
		t.Fatalf("expected stored pixel (0.1, 0.2, 0.3, 0.5); got %v %f", c, alpha)
	}

	fb.Clear()
	if c, alpha = fb.At(3, 2); c.Len() != 0 || alpha != 0 {
		t.Fatalf("expected cleared pixel; got %v %f", c, alpha)
	}
}

func TestFramebufferInvalidResolution(t *testing.T) {
	if _, err := NewFramebuffer(0, 4); err != ErrInvalidResolution {
		t.Fatalf("expected ErrInvalidResolution; got %v", err)
	}
	if _, err := NewGBuffer(4, -1); err != ErrInvalidResolution {
		t.Fatalf("expected ErrInvalidResolution; got %v", err)
	}
}

func TestFramebufferClone(t *testing.T) {
	fb, _ := NewFramebuffer(2, 2)
	fb.Set(1, 1, types.Vec3{1, 2, 3}, 1)

	clone := fb.Clone()
	fb.Set(1, 1, types.Vec3{9, 9, 9}, 0)

	if c, alpha := clone.At(1, 1); c != (types.Vec3{1, 2, 3}) || alpha != 1 {
		t.Fatalf("expected clone to be independent of the source; got %v %f", c, alpha)
	}
}

func TestGBufferSetAt(t *testing.T) {
	gb, err := NewGBuffer(4, 4)
	if err != nil {
		t.Fatalf("expected gbuffer allocation to succeed; got %v", err)
	}

	gb.Set(2, 1, types.Vec3{0, 1, 0}, 5.5)
	if n := gb.NormalAt(2, 1); n != (types.Vec3{0, 1, 0}) {
		t.Fatalf("expected stored normal (0, 1, 0); got %v", n)
	}
	if d := gb.DepthAt(2, 1); d != 5.5 {
		t.Fatalf("expected stored depth 5.5; got %f", d)
	}

	gb.Clear()
	if d := gb.DepthAt(2, 1); d != 0 {
		t.Fatalf("expected cleared depth; got %f", d)
	}
}
