package cmd

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"os"
	"time"

	"github.com/atul-mourya/RayTracing-sub004/renderer"
	"github.com/atul-mourya/RayTracing-sub004/scene/compiler"
	"github.com/atul-mourya/RayTracing-sub004/tracer/software"
	"github.com/atul-mourya/RayTracing-sub004/types"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

// Render the demo scene by running the progressive pipeline for a number of
// frames and writing the resolved display buffer to a PNG file.
func RenderFrame(ctx *cli.Context) error {
	setupLogging(ctx)

	width := ctx.Int("width")
	height := ctx.Int("height")

	root, camera := buildDemoScene()
	camera.SetupProjection(float32(width) / float32(height))

	snapshot, err := compiler.Compile(root, camera, compiler.Options{})
	if err != nil {
		return err
	}

	integrator := software.New(software.Options{
		SkyColor:     types.Vec3{0.5, 0.7, 0.9},
		SkyIntensity: 0.4,
	})

	r, err := renderer.New(integrator, renderer.Options{
		Width:           width,
		Height:          height,
		MaxBounceCount:  uint32(ctx.Int("num-bounces")),
		NumRaysPerPixel: uint32(ctx.Int("spp")),
		UseASVGF:        ctx.Bool("asvgf"),
	})
	if err != nil {
		return err
	}
	defer r.Close()
	r.SetSnapshot(snapshot)

	numFrames := ctx.Int("frames")
	if numFrames < 1 {
		numFrames = 1
	}

	logger.Noticef("rendering %d frame(s) at %dx%d", numFrames, width, height)
	start := time.Now()

	var frame *image.RGBA
	for i := 0; i < numFrames; i++ {
		if frame, err = r.RenderFrame(); err != nil {
			return err
		}
	}
	logger.Noticef("rendered %d frame(s) in %d ms", numFrames, time.Since(start).Nanoseconds()/1e6)
	displayFrameStats(r.Stats())

	out := ctx.String("out")
	f, err := os.Create(out)
	if err != nil {
		return err
	}
	defer f.Close()

	if err = png.Encode(f, frame); err != nil {
		return err
	}
	logger.Noticef("wrote frame to %s", out)
	return nil
}

func displayFrameStats(stats renderer.FrameStats) {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Frame", "Iteration", "Trace time", "Filter time", "Total"})
	table.Append([]string{
		fmt.Sprintf("%d", stats.Frame),
		fmt.Sprintf("%d", stats.Iteration),
		stats.TraceTime.String(),
		stats.FilterTime.String(),
		stats.RenderTime.String(),
	})

	table.Render()
	logger.Noticef("frame statistics\n%s", buf.String())
}
