package texel

import (
	"image"

	"golang.org/x/image/draw"

	"github.com/atul-mourya/RayTracing-sub004/scene"
)

// Pack a list of source images into a layered atlas with a shared footprint.
// The footprint is the per-axis maximum across all sources rounded up to the
// next power of two, halved until it fits under the hardware texture size
// ceiling. Every source is rescaled into that footprint and stacked in
// insertion order, so atlas layer N always corresponds to images[N].
//
// Callers are responsible for capping the image list at MaxAtlasLayers; the
// packer itself packs whatever it is given.
func PackAtlas(images []*scene.Image, maxTextureSize int) *scene.Atlas {
	if len(images) == 0 {
		return nil
	}

	width, height := 1, 1
	for _, img := range images {
		if img.Width() > width {
			width = img.Width()
		}
		if img.Height() > height {
			height = img.Height()
		}
	}

	width = nextPow2(width)
	height = nextPow2(height)
	for width > maxTextureSize {
		width >>= 1
	}
	for height > maxTextureSize {
		height >>= 1
	}

	atlas := &scene.Atlas{
		Width:  width,
		Height: height,
		Layers: len(images),
		Data:   make([]uint8, width*height*4*len(images)),
	}

	layerLen := width * height * 4
	scratch := image.NewRGBA(image.Rect(0, 0, width, height))
	for layer, img := range images {
		if img.Width() == width && img.Height() == height {
			// Fast path for sources that already match the footprint.
			draw.Draw(scratch, scratch.Bounds(), img.Data, img.Data.Bounds().Min, draw.Src)
		} else {
			draw.ApproxBiLinear.Scale(scratch, scratch.Bounds(), img.Data, img.Data.Bounds(), draw.Src, nil)
		}
		copy(atlas.Data[layer*layerLen:(layer+1)*layerLen], scratch.Pix)
	}

	return atlas
}
