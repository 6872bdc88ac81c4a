package main

import (
	"os"

	"github.com/atul-mourya/RayTracing-sub004/cmd"
	"github.com/urfave/cli"
)

func main() {
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	app := cli.NewApp()
	app.Name = "raytracing"
	app.Usage = "progressive path tracing renderer with ASVGF denoising"
	app.Version = "0.0.1"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:  "render",
			Usage: "render the demo scene to a png file",
			Description: `
Compile the built-in demo scene into a GPU-ready snapshot and run the
progressive render pipeline for a number of frames. Each frame traces one
sample per pixel and folds it into the running accumulation; more frames give
a cleaner image. The resolved display buffer of the final frame is written to
a png file.`,
			Flags: []cli.Flag{
				cli.IntFlag{
					Name:  "width",
					Value: 512,
					Usage: "frame width",
				},
				cli.IntFlag{
					Name:  "height",
					Value: 512,
					Usage: "frame height",
				},
				cli.IntFlag{
					Name:  "spp",
					Value: 1,
					Usage: "rays per pixel per frame",
				},
				cli.IntFlag{
					Name:  "num-bounces",
					Value: 4,
					Usage: "number of indirect ray bounces",
				},
				cli.IntFlag{
					Name:  "frames",
					Value: 32,
					Usage: "number of progressive frames to accumulate",
				},
				cli.BoolFlag{
					Name:  "asvgf",
					Usage: "denoise with the ASVGF filter instead of plain accumulation",
				},
				cli.StringFlag{
					Name:  "out, o",
					Value: "frame.png",
					Usage: "image filename for the rendered frame",
				},
			},
			Action: cmd.RenderFrame,
		},
		{
			Name:  "inspect",
			Usage: "compile the demo scene and print snapshot statistics",
			Flags: []cli.Flag{
				cli.IntFlag{
					Name:  "max-leaf-size",
					Value: 0,
					Usage: "max triangles per BVH leaf (0 for default)",
				},
			},
			Action: cmd.InspectScene,
		},
	}

	app.Run(os.Args)
}
