package renderer

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"math"
	"time"

	"github.com/df07/go-bvh-pathtracer/pkg/core"
	"github.com/df07/go-bvh-pathtracer/pkg/integrator"
)

// Config contains rendering configuration
type Config struct {
	Width           int    // Image width in pixels
	Height          int    // Image height in pixels
	SamplesPerPixel int    // Number of rays per pixel
	MaxDepth        int    // Maximum ray bounce depth
	NumWorkers      int    // Parallel workers; 0 picks one per logical CPU
	Seed            uint64 // Base seed for every per-row sampler
}

// DefaultConfig returns sensible default values
func DefaultConfig() Config {
	return Config{
		Width:           400,
		Height:          225,
		SamplesPerPixel: 100,
		MaxDepth:        10,
		NumWorkers:      0,
		Seed:            1,
	}
}

// Validate reports the first unusable setting
func (c Config) Validate() error {
	if c.Width < 2 || c.Height < 2 {
		return fmt.Errorf("image must be at least 2x2 pixels, got %dx%d", c.Width, c.Height)
	}
	if c.SamplesPerPixel < 1 {
		return fmt.Errorf("samples per pixel must be positive, got %d", c.SamplesPerPixel)
	}
	if c.MaxDepth < 0 {
		return fmt.Errorf("max depth must not be negative, got %d", c.MaxDepth)
	}
	return nil
}

type nopLogger struct{}

func (nopLogger) Printf(format string, args ...interface{}) {}

// Raytracer drives pixel sampling over a fixed world and camera
type Raytracer struct {
	world      core.Hittable
	camera     *Camera
	config     Config
	integrator integrator.Integrator
	logger     core.Logger
}

// NewRaytracer creates a new raytracer using naive path tracing with the default sky
func NewRaytracer(world core.Hittable, camera *Camera, config Config) *Raytracer {
	return &Raytracer{
		world:      world,
		camera:     camera,
		config:     config,
		integrator: integrator.NewPathTracer(config.MaxDepth),
		logger:     nopLogger{},
	}
}

// SetIntegrator replaces the light transport algorithm
func (rt *Raytracer) SetIntegrator(i integrator.Integrator) {
	rt.integrator = i
}

// SetLogger sets the progress logger
func (rt *Raytracer) SetLogger(logger core.Logger) {
	rt.logger = logger
}

// Config returns the render configuration
func (rt *Raytracer) Config() Config {
	return rt.config
}

// Render renders the full image. The world must not be modified while
// rendering. When ctx is cancelled the partial image is discarded and
// ctx.Err() is returned along with the stats gathered so far.
func (rt *Raytracer) Render(ctx context.Context) (*image.RGBA, RenderStats, error) {
	stats := RenderStats{
		Width:           rt.config.Width,
		Height:          rt.config.Height,
		SamplesPerPixel: rt.config.SamplesPerPixel,
		MaxDepth:        rt.config.MaxDepth,
	}
	if err := rt.config.Validate(); err != nil {
		return nil, stats, err
	}

	img := image.NewRGBA(image.Rect(0, 0, rt.config.Width, rt.config.Height))

	pool := NewWorkerPool(rt, rt.config.NumWorkers)
	stats.Workers = pool.GetNumWorkers()
	start := time.Now()

	pool.Start(ctx)
	// Top scanline first, like a PPM stream
	for row := rt.config.Height - 1; row >= 0; row-- {
		pool.SubmitTask(RowTask{Row: row, Image: img})
	}
	go pool.Stop()

	var renderErr error
	nextReport := 10
	for result := range pool.Results() {
		if result.Error != nil {
			renderErr = result.Error
			continue
		}
		stats.RowsCompleted++
		stats.TotalSamples += result.Samples

		if percent := stats.RowsCompleted * 100 / rt.config.Height; percent >= nextReport {
			rt.logger.Printf("%d%% (%d/%d scanlines)", percent, stats.RowsCompleted, rt.config.Height)
			nextReport = (percent/10 + 1) * 10
		}
	}
	stats.Duration = time.Since(start)

	if renderErr != nil {
		return nil, stats, renderErr
	}

	return img, stats, nil
}

// renderRow samples every pixel of scanline row and writes it flipped, so
// row 0 (bottom of the viewport) lands on the last image row
func (rt *Raytracer) renderRow(row int, sampler core.Sampler, img *image.RGBA) int {
	width, height := rt.config.Width, rt.config.Height
	spp := rt.config.SamplesPerPixel

	for i := 0; i < width; i++ {
		pixel := core.Vec3{}
		for s := 0; s < spp; s++ {
			u := (float64(i) + sampler.Get1D()) / float64(width-1)
			v := (float64(row) + sampler.Get1D()) / float64(height-1)
			ray := rt.camera.GetRay(u, v)
			pixel = pixel.Add(rt.integrator.RayColor(ray, rt.world, sampler))
		}
		img.SetRGBA(i, height-1-row, ToRGBA(pixel, spp))
	}

	return width * spp
}

// ToRGBA converts an accumulated sample sum into an 8-bit pixel: average,
// gamma 2, clamp to [0, 0.999] and scale by 256
func ToRGBA(sum core.Vec3, samples int) color.RGBA {
	c := sum.Divide(float64(samples)).Sqrt()
	return color.RGBA{
		R: quantize(c.X),
		G: quantize(c.Y),
		B: quantize(c.Z),
		A: 255,
	}
}

func quantize(x float64) uint8 {
	// NaN samples would otherwise poison the pixel
	if math.IsNaN(x) {
		return 0
	}
	return uint8(256 * math.Max(0, math.Min(x, 0.999)))
}
