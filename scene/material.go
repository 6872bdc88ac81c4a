package scene

import (
	"image"

	"github.com/atul-mourya/RayTracing-sub004/types"
)

// Triangle face culling modes.
type CullMode int32

const (
	CullNone CullMode = iota
	CullBack
	CullFront
)

// A decoded texture image. Materials reference images by pointer; the
// compiler deduplicates them by identity when assigning atlas slots.
type Image struct {
	Name string
	Data image.Image
}

// Image width in pixels.
func (im *Image) Width() int {
	return im.Data.Bounds().Dx()
}

// Image height in pixels.
func (im *Image) Height() int {
	return im.Data.Bounds().Dy()
}

// An affine UV transform applied to all of a material's texture lookups.
type UVTransform struct {
	Scale    types.Vec2
	Offset   types.Vec2
	Rotation float32
}

// A physically-based surface description. Zero-valued maps mean the
// corresponding parameter is uniform across the surface.
type Material struct {
	Name string

	// Base color.
	Color types.Vec3

	// Emission color and scale.
	Emissive          types.Vec3
	EmissiveIntensity float32

	Roughness    float32
	Metalness    float32
	IOR          float32
	Transmission float32
	Thickness    float32

	Clearcoat          float32
	ClearcoatRoughness float32

	CullMode CullMode

	// Parameter-modulating textures.
	AlbedoMap    *Image
	NormalMap    *Image
	RoughnessMap *Image
	MetalnessMap *Image
	EmissiveMap  *Image
	BumpMap      *Image

	// Optional shared transform for all of the material's maps.
	MapTransform *UVTransform
}

// Create a material with neutral defaults.
func NewMaterial(name string) *Material {
	return &Material{
		Name:              name,
		Color:             types.Vec3{0.8, 0.8, 0.8},
		EmissiveIntensity: 1.0,
		Roughness:         1.0,
		IOR:               1.5,
	}
}

// Return true if the material contributes light to the scene.
func (m *Material) IsEmissive() bool {
	return m.EmissiveIntensity > 0 && m.Emissive.Len() > 0
}
