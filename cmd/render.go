package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/urfave/cli"

	"github.com/df07/go-bvh-pathtracer/pkg/core"
	"github.com/df07/go-bvh-pathtracer/pkg/geometry"
	"github.com/df07/go-bvh-pathtracer/pkg/log"
	"github.com/df07/go-bvh-pathtracer/pkg/output"
	"github.com/df07/go-bvh-pathtracer/pkg/renderer"
	"github.com/df07/go-bvh-pathtracer/pkg/scene"
	"github.com/df07/go-bvh-pathtracer/pkg/watcher"
)

// watchDebounce is the quiet time after the last scene edit before re-rendering
const watchDebounce = 500 * time.Millisecond

// renderOptions are the render command flags after validation
type renderOptions struct {
	scene    string
	width    int
	spp      int
	maxDepth int
	workers  int
	seed     uint64
	out      string
	useBVH   bool
}

func renderOptionsFromFlags(ctx *cli.Context) (renderOptions, error) {
	opts := renderOptions{
		scene:    ctx.String("scene"),
		width:    ctx.Int("width"),
		spp:      ctx.Int("spp"),
		maxDepth: ctx.Int("max-depth"),
		workers:  ctx.Int("workers"),
		seed:     ctx.Uint64("seed"),
		out:      ctx.String("out"),
		useBVH:   !ctx.Bool("no-bvh"),
	}

	if opts.width < 0 || opts.spp < 0 || opts.maxDepth < 0 || opts.workers < 0 {
		return opts, errors.New("width, spp, max-depth and workers must not be negative")
	}
	if _, err := output.FormatFromPath(opts.out); err != nil {
		return opts, err
	}
	return opts, nil
}

// RenderScene renders a scene to an image file, optionally re-rendering
// whenever the scene file changes.
func RenderScene(ctx *cli.Context) error {
	if err := setupLogging(ctx); err != nil {
		return err
	}

	opts, err := renderOptionsFromFlags(ctx)
	if err != nil {
		return err
	}

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if !ctx.Bool("watch") {
		return renderOnce(runCtx, opts)
	}

	if _, err := os.Stat(opts.scene); err != nil {
		return fmt.Errorf("--watch requires a scene file, got %q", opts.scene)
	}
	if err := renderOnce(runCtx, opts); err != nil {
		logger.Errorf("render failed: %v", err)
	}
	return watchAndRender(runCtx, opts)
}

func watchAndRender(ctx context.Context, opts renderOptions) error {
	sw, err := watcher.New(watchDebounce, log.Printer{Logger: logger})
	if err != nil {
		return err
	}
	defer sw.Close()

	changes := make(chan struct{}, 1)
	err = sw.Watch(opts.scene, func(string) {
		select {
		case changes <- struct{}{}:
		default:
		}
	})
	if err != nil {
		return err
	}
	sw.Start()
	logger.Noticef("watching %s for changes (ctrl-c to stop)", opts.scene)

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-changes:
			logger.Notice("scene changed, re-rendering")
			if err := renderOnce(ctx, opts); err != nil {
				logger.Errorf("render failed: %v", err)
			}
		}
	}
}

// bvhSampler draws BVH split axes from a stream no render row uses
func bvhSampler(seed uint64) *core.XorShiftSampler {
	return core.NewXorShiftSampler(core.SeedFor(seed, core.BVHStream))
}

// renderOnce loads the scene, builds the world and writes one image
func renderOnce(ctx context.Context, opts renderOptions) error {
	s, err := scene.Lookup(opts.scene)
	if err != nil {
		return err
	}

	config := s.RenderConfig()
	if opts.width > 0 {
		config.Width = opts.width
		config.Height = int(float64(opts.width) / s.Camera.AspectRatio)
	}
	if opts.spp > 0 {
		config.SamplesPerPixel = opts.spp
	}
	if opts.maxDepth > 0 {
		config.MaxDepth = opts.maxDepth
	}
	config.NumWorkers = opts.workers
	config.Seed = opts.seed

	logger.Noticef("rendering %q: %dx%d, %d samples per pixel, max depth %d",
		s.Name, config.Width, config.Height, config.SamplesPerPixel, config.MaxDepth)

	world, buildTime, err := s.World(opts.useBVH, bvhSampler(opts.seed))
	if err != nil {
		if errors.Is(err, geometry.ErrUnboundedPrimitive) {
			return fmt.Errorf("%w (scenes with planes must be rendered with --no-bvh)", err)
		}
		return err
	}
	if opts.useBVH {
		logger.Infof("BVH built in %s", buildTime)
	}

	rt := renderer.NewRaytracer(world, renderer.NewCamera(s.Camera), config)
	rt.SetLogger(log.Printer{Logger: logger})

	img, stats, err := rt.Render(ctx)
	if err != nil {
		return fmt.Errorf("render of %q failed: %w", s.Name, err)
	}
	stats.BuildTime = buildTime

	if err := output.Save(opts.out, img); err != nil {
		return err
	}

	logger.Noticef("render statistics\n%s", stats.Table(renderer.DetectHost()))
	logger.Noticef("wrote %s", opts.out)
	return nil
}
