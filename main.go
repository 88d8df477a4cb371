package main

import (
	"fmt"
	"os"

	"github.com/df07/go-bvh-pathtracer/cmd"
	"github.com/df07/go-bvh-pathtracer/pkg/log"
	"github.com/df07/go-bvh-pathtracer/pkg/scene"
	"github.com/urfave/cli"
)

func newApp() *cli.App {
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	sceneFlag := cli.StringFlag{
		Name:  "scene, s",
		Value: "still-life",
		Usage: "built-in scene name or path to a YAML scene file",
	}
	seedFlag := cli.Uint64Flag{
		Name:  "seed",
		Value: 1,
		Usage: "base seed for all random sampling",
	}

	app := cli.NewApp()
	app.Name = "pathtracer"
	app.Usage = "render sphere scenes with a BVH-accelerated path tracer"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "log-level",
			Value: log.Notice.String(),
			Usage: "log verbosity: debug, info, notice, warning or error",
		},
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
			Usage: "render a scene to an image file",
			Description: `
Render a built-in scene or a YAML scene file. Width, samples per pixel and
max depth default to the scene's own settings. The output format follows the
file extension: png, ppm, bmp or tiff.

With --watch the scene file is re-rendered every time it is saved.`,
			Flags: []cli.Flag{
				sceneFlag,
				cli.IntFlag{
					Name:  "width",
					Usage: "image width; height follows from the camera aspect ratio (0 = scene default)",
				},
				cli.IntFlag{
					Name:  "spp",
					Usage: "samples per pixel (0 = scene default)",
				},
				cli.IntFlag{
					Name:  "max-depth",
					Usage: "maximum bounces per path (0 = scene default)",
				},
				cli.IntFlag{
					Name:  "workers",
					Usage: "number of render workers (0 = one per logical CPU)",
				},
				seedFlag,
				cli.StringFlag{
					Name:  "out, o",
					Value: "output/image.png",
					Usage: "image filename for the rendered frame",
				},
				cli.BoolFlag{
					Name:  "watch",
					Usage: "re-render whenever the scene file changes",
				},
				cli.BoolFlag{
					Name:  "no-bvh",
					Usage: "intersect primitives by linear scan instead of a BVH",
				},
			},
			Action: cmd.RenderScene,
		},
		{
			Name:  "scenes",
			Usage: "list built-in scenes and scene files",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "dir",
					Value: scene.DefaultScenesDir,
					Usage: "directory searched for YAML scene files",
				},
			},
			Action: cmd.ListScenes,
		},
		{
			Name:   "bvh",
			Usage:  "build a scene's BVH and print its statistics",
			Flags:  []cli.Flag{sceneFlag, seedFlag},
			Action: cmd.DescribeBVH,
		},
		{
			Name:  "export",
			Usage: "write a scene as YAML",
			Flags: []cli.Flag{
				sceneFlag,
				cli.StringFlag{
					Name:  "out, o",
					Usage: "destination file (default: standard output)",
				},
			},
			Action: cmd.ExportScene,
		},
	}

	return app
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
