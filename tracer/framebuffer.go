package tracer

import (
	"errors"

	"github.com/atul-mourya/RayTracing-sub004/types"
)

var (
	ErrInvalidResolution = errors.New("tracer: render target dimensions must be positive")
)

// A HDR color render target storing 4 float32 channels per pixel. The alpha
// channel carries primary-ray coverage; downstream filters use it as an edge
// hint.
type Framebuffer struct {
	Width  int
	Height int
	Pix    []float32
}

// Allocate a framebuffer. Allocation failure for render targets is fatal to
// the owning stage, hence the error return.
func NewFramebuffer(width, height int) (*Framebuffer, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidResolution
	}
	return &Framebuffer{
		Width:  width,
		Height: height,
		Pix:    make([]float32, width*height*4),
	}, nil
}

// Offset of pixel (x, y) into Pix.
func (fb *Framebuffer) Index(x, y int) int {
	return (y*fb.Width + x) * 4
}

// Read a pixel's color and alpha.
func (fb *Framebuffer) At(x, y int) (types.Vec3, float32) {
	i := fb.Index(x, y)
	return types.Vec3{fb.Pix[i], fb.Pix[i+1], fb.Pix[i+2]}, fb.Pix[i+3]
}

// Write a pixel's color and alpha.
func (fb *Framebuffer) Set(x, y int, c types.Vec3, alpha float32) {
	i := fb.Index(x, y)
	fb.Pix[i] = c[0]
	fb.Pix[i+1] = c[1]
	fb.Pix[i+2] = c[2]
	fb.Pix[i+3] = alpha
}

// Zero all pixels.
func (fb *Framebuffer) Clear() {
	for i := range fb.Pix {
		fb.Pix[i] = 0
	}
}

// Copy pixel data from another buffer of the same dimensions.
func (fb *Framebuffer) CopyFrom(src *Framebuffer) {
	copy(fb.Pix, src.Pix)
}

// Allocate an identical copy of the buffer.
func (fb *Framebuffer) Clone() *Framebuffer {
	out := &Framebuffer{
		Width:  fb.Width,
		Height: fb.Height,
		Pix:    make([]float32, len(fb.Pix)),
	}
	copy(out.Pix, fb.Pix)
	return out
}

// The geometry buffer accompanying a sample buffer: per-pixel world-space
// normal and linear depth from the primary hit. Depth 0 marks a miss.
type GBuffer struct {
	Width  int
	Height int

	// xyz per pixel.
	Normals []float32

	// Linear depth per pixel.
	Depth []float32
}

// Allocate a geometry buffer.
func NewGBuffer(width, height int) (*GBuffer, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidResolution
	}
	return &GBuffer{
		Width:   width,
		Height:  height,
		Normals: make([]float32, width*height*3),
		Depth:   make([]float32, width*height),
	}, nil
}

// Read a pixel's normal.
func (gb *GBuffer) NormalAt(x, y int) types.Vec3 {
	i := (y*gb.Width + x) * 3
	return types.Vec3{gb.Normals[i], gb.Normals[i+1], gb.Normals[i+2]}
}

// Read a pixel's linear depth.
func (gb *GBuffer) DepthAt(x, y int) float32 {
	return gb.Depth[y*gb.Width+x]
}

// Write a pixel's normal and depth.
func (gb *GBuffer) Set(x, y int, normal types.Vec3, depth float32) {
	i := (y*gb.Width + x) * 3
	gb.Normals[i] = normal[0]
	gb.Normals[i+1] = normal[1]
	gb.Normals[i+2] = normal[2]
	gb.Depth[y*gb.Width+x] = depth
}

// Zero all pixels.
func (gb *GBuffer) Clear() {
	for i := range gb.Normals {
		gb.Normals[i] = 0
	}
	for i := range gb.Depth {
		gb.Depth[i] = 0
	}
}
