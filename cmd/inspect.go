package cmd

import (
	"bytes"
	"fmt"

	"github.com/atul-mourya/RayTracing-sub004/scene"
	"github.com/atul-mourya/RayTracing-sub004/scene/compiler"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

// Compile the demo scene and print a breakdown of the generated snapshot:
// geometry and BVH sizes, texel texture dimensions and atlas contents.
func InspectScene(ctx *cli.Context) error {
	setupLogging(ctx)

	root, camera := buildDemoScene()
	camera.SetupProjection(1)

	snapshot, err := compiler.Compile(root, camera, compiler.Options{
		MaxTrianglesPerLeaf: ctx.Int("max-leaf-size"),
	})
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Buffer", "Count", "Texture size", "Texels"})
	table.Append([]string{
		"Triangles",
		fmt.Sprintf("%d", len(snapshot.Triangles)),
		texDims(snapshot.TriangleTex),
		texCount(snapshot.TriangleTex),
	})
	table.Append([]string{
		"Materials",
		fmt.Sprintf("%d", len(snapshot.Materials)),
		texDims(snapshot.MaterialTex),
		texCount(snapshot.MaterialTex),
	})
	table.Append([]string{
		"BVH nodes",
		fmt.Sprintf("%d", len(snapshot.Nodes)),
		texDims(snapshot.BVHTex),
		texCount(snapshot.BVHTex),
	})
	table.Append([]string{
		"Lights",
		fmt.Sprintf("%d", len(snapshot.Lights)),
		"-",
		"-",
	})
	table.Render()
	logger.Noticef("snapshot buffers\n%s", buf.String())

	buf.Reset()
	table = tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Atlas", "Layers", "Layer size"})
	for kind := scene.AtlasKind(0); kind < scene.AtlasKindCount; kind++ {
		atlas := snapshot.Atlases[kind]
		if atlas == nil {
			table.Append([]string{kind.String(), "0", "-"})
			continue
		}
		table.Append([]string{
			kind.String(),
			fmt.Sprintf("%d", atlas.Layers),
			fmt.Sprintf("%dx%d", atlas.Width, atlas.Height),
		})
	}
	table.Render()
	logger.Noticef("texture atlases\n%s", buf.String())

	return nil
}

func texDims(tex *scene.TexelImage) string {
	if tex == nil {
		return "-"
	}
	return fmt.Sprintf("%dx%d", tex.Width, tex.Height)
}

func texCount(tex *scene.TexelImage) string {
	if tex == nil {
		return "-"
	}
	return fmt.Sprintf("%d", tex.TexelCount())
}
