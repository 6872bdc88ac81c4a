// Package texel maps compiled scene records onto rectangular float texel
// arrays and bin-packs source images into fixed-footprint texture atlases.
// Encoders are pure functions; each defines a fixed per-record stride and
// field order and its decoder is the exact inverse.
package texel

import (
	"errors"
	"math"

	"github.com/atul-mourya/RayTracing-sub004/scene"
	"github.com/atul-mourya/RayTracing-sub004/types"
)

const (
	// Floats per record for each encoder. Strides are padded to a whole
	// number of RGBA texels.
	MaterialStride = 28
	TriangleStride = 28
	BVHNodeStride  = 8

	// The maximum number of layers a single atlas may hold. Textures beyond
	// this cap are dropped by the compiler and their material slots fall back
	// to the absent sentinel.
	MaxAtlasLayers = 48

	// Default hardware texture size ceiling.
	DefaultMaxTextureSize = 4096

	floatsPerTexel = 4
)

var (
	ErrTextureTooLarge = errors.New("texel: record data exceeds maximum texture dimensions")
)

// Choose width/height for a texel array holding texelCount texels. The width
// approximates a square, rounded up to a power of two, and both dimensions
// are kept under the hardware texture size ceiling.
func layoutDims(texelCount, maxTextureSize int) (width, height int, err error) {
	if texelCount == 0 {
		return 0, 0, nil
	}

	width = nextPow2(int(math.Ceil(math.Sqrt(float64(texelCount)))))
	if width > maxTextureSize {
		width = maxTextureSize
	}
	height = (texelCount + width - 1) / width
	if height > maxTextureSize {
		return 0, 0, ErrTextureTooLarge
	}
	return width, height, nil
}

// Allocate a texel image large enough to hold texelCount texels.
func newTexelImage(texelCount, maxTextureSize int) (*scene.TexelImage, error) {
	width, height, err := layoutDims(texelCount, maxTextureSize)
	if err != nil {
		return nil, err
	}
	return &scene.TexelImage{
		Width:  width,
		Height: height,
		Texels: make([]float32, width*height*floatsPerTexel),
	}, nil
}

// Round up to the next power of two.
func nextPow2(v int) int {
	out := 1
	for out < v {
		out <<= 1
	}
	return out
}

// A cursor for writing fixed-layout records into a float array.
type recordWriter struct {
	data []float32
	off  int
}

func (w *recordWriter) seek(off int) { w.off = off }

func (w *recordWriter) putF(v float32) {
	w.data[w.off] = v
	w.off++
}

func (w *recordWriter) putI(v int32) {
	w.putF(float32(v))
}

func (w *recordWriter) putVec2(v types.Vec2) {
	w.putF(v[0])
	w.putF(v[1])
}

func (w *recordWriter) putVec3(v types.Vec3) {
	w.putF(v[0])
	w.putF(v[1])
	w.putF(v[2])
}

// The reading counterpart of recordWriter.
type recordReader struct {
	data []float32
	off  int
}

func (r *recordReader) seek(off int) { r.off = off }

func (r *recordReader) getF() float32 {
	v := r.data[r.off]
	r.off++
	return v
}

func (r *recordReader) getI() int32 {
	return int32(r.getF())
}

func (r *recordReader) getVec2() types.Vec2 {
	return types.Vec2{r.getF(), r.getF()}
}

func (r *recordReader) getVec3() types.Vec3 {
	return types.Vec3{r.getF(), r.getF(), r.getF()}
}
