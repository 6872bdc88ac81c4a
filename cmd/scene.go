package cmd

import (
	"image"
	"image/color"

	"github.com/atul-mourya/RayTracing-sub004/scene"
	"github.com/atul-mourya/RayTracing-sub004/types"
)

// Build the demo scene used by the render and inspect commands: a cornell-style
// box with a checkered floor, an emissive ceiling panel and a warm directional
// light entering from above.
func buildDemoScene() (*scene.Group, *scene.Camera) {
	root := scene.NewGroup("root")

	white := scene.NewMaterial("white")
	white.Color = types.Vec3{0.73, 0.73, 0.73}

	red := scene.NewMaterial("red")
	red.Color = types.Vec3{0.65, 0.05, 0.05}

	green := scene.NewMaterial("green")
	green.Color = types.Vec3{0.12, 0.45, 0.15}

	floor := scene.NewMaterial("floor")
	floor.Color = types.Vec3{1, 1, 1}
	floor.Roughness = 0.8
	floor.AlbedoMap = &scene.Image{
		Name: "checker",
		Data: checkerImage(128, 16),
	}

	light := scene.NewMaterial("light")
	light.Emissive = types.Vec3{1, 0.9, 0.7}
	light.EmissiveIntensity = 15

	// Box interior; normals face inward.
	root.Add(quad("floor", floor,
		types.Vec3{-1, 0, -1}, types.Vec3{1, 0, -1},
		types.Vec3{1, 0, 1}, types.Vec3{-1, 0, 1},
		types.Vec3{0, 1, 0}))
	root.Add(quad("ceiling", white,
		types.Vec3{-1, 2, 1}, types.Vec3{1, 2, 1},
		types.Vec3{1, 2, -1}, types.Vec3{-1, 2, -1},
		types.Vec3{0, -1, 0}))
	root.Add(quad("back wall", white,
		types.Vec3{-1, 0, -1}, types.Vec3{-1, 2, -1},
		types.Vec3{1, 2, -1}, types.Vec3{1, 0, -1},
		types.Vec3{0, 0, 1}))
	root.Add(quad("left wall", red,
		types.Vec3{-1, 0, 1}, types.Vec3{-1, 2, 1},
		types.Vec3{-1, 2, -1}, types.Vec3{-1, 0, -1},
		types.Vec3{1, 0, 0}))
	root.Add(quad("right wall", green,
		types.Vec3{1, 0, -1}, types.Vec3{1, 2, -1},
		types.Vec3{1, 2, 1}, types.Vec3{1, 0, 1},
		types.Vec3{-1, 0, 0}))
	root.Add(quad("light", light,
		types.Vec3{-0.4, 1.99, 0.4}, types.Vec3{0.4, 1.99, 0.4},
		types.Vec3{0.4, 1.99, -0.4}, types.Vec3{-0.4, 1.99, -0.4},
		types.Vec3{0, -1, 0}))

	root.Add(scene.NewDirectionalLight(
		"sun",
		types.Vec3{-0.3, -1, -0.2}.Normalize(),
		types.Vec3{1, 0.95, 0.8},
		0.5,
	))

	camera := scene.NewCamera(45)
	camera.Position = types.Vec3{0, 1, 3.4}
	camera.LookAt = types.Vec3{0, 1, 0}
	camera.Update()

	return root, camera
}

// Create a two-triangle quad mesh from four corners in counter-clockwise
// order.
func quad(name string, mat *scene.Material, p0, p1, p2, p3, normal types.Vec3) *scene.Mesh {
	geo := &scene.Geometry{
		Positions: []types.Vec3{p0, p1, p2, p3},
		Normals:   []types.Vec3{normal, normal, normal, normal},
		UVs: []types.Vec2{
			{0, 0}, {1, 0}, {1, 1}, {0, 1},
		},
		Indices: []uint32{0, 1, 2, 0, 2, 3},
	}
	return scene.NewMesh(name, geo, mat)
}

// Generate a procedural checkerboard texture.
func checkerImage(size, cells int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	cellSize := size / cells
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			c := color.RGBA{235, 235, 235, 255}
			if (x/cellSize+y/cellSize)%2 == 0 {
				c = color.RGBA{40, 40, 40, 255}
			}
			img.SetRGBA(x, y, c)
		}
	}
	return img
}
