package renderer

import (
	"context"
	"runtime"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/integrator"
)

// Options controls how a render is scheduled
type Options struct {
	Workers   int   // Maximum rows rendered concurrently (0 = use CPU count)
	Seed      int64 // Base seed; each row derives its own sampler from it
	Auxiliary bool  // Also accumulate albedo and normal passes
}

// DefaultOptions returns sensible default values
func DefaultOptions() Options {
	return Options{
		Workers:   0,
		Seed:      42,
		Auxiliary: false,
	}
}

// RowProgress reports a completed scanline
type RowProgress struct {
	Row           int // Index of the finished row, 0 at the top
	RowsCompleted int
	TotalRows     int
}

// Raytracer renders a world through a camera into a framebuffer
type Raytracer struct {
	world      geometry.Hittable
	lights     geometry.Hittable
	camera     *Camera
	integrator *integrator.PathTracer
	options    Options
	logger     core.Logger
}

// NewRaytracer creates a new raytracer. lights may be nil.
func NewRaytracer(world, lights geometry.Hittable, config CameraConfig, options Options, logger core.Logger) *Raytracer {
	if options.Workers <= 0 {
		options.Workers = runtime.NumCPU()
	}
	if logger == nil {
		logger = NewDiscardLogger()
	}
	return &Raytracer{
		world:      world,
		lights:     lights,
		camera:     NewCamera(config),
		integrator: integrator.NewPathTracer(config.Background),
		options:    options,
		logger:     logger,
	}
}

// Camera returns the camera used for primary rays
func (rt *Raytracer) Camera() *Camera {
	return rt.camera
}

// Render traces every pixel. Rows are independent jobs bounded by
// Options.Workers; onRow, when non-nil, is called once per finished row and
// never concurrently. On cancellation the partially filled framebuffer is
// returned along with the context error.
func (rt *Raytracer) Render(ctx context.Context, onRow func(RowProgress)) (*Framebuffer, RenderStats, error) {
	width, height := rt.camera.Width(), rt.camera.Height()
	spp := rt.camera.SamplesPerPixel()
	fb := NewFramebuffer(width, height, spp, rt.options.Auxiliary)

	stats := RenderStats{
		Width:           width,
		Height:          height,
		SamplesPerPixel: spp,
		Workers:         rt.options.Workers,
	}
	startTime := time.Now()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(rt.options.Workers)

	var mu sync.Mutex
	for j := 0; j < height; j++ {
		if gctx.Err() != nil {
			break
		}
		row := j
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			sampler := core.NewSeededSampler(rowSeed(rt.options.Seed, row))
			rt.renderRow(row, fb, sampler)

			mu.Lock()
			defer mu.Unlock()
			stats.RowsCompleted++
			stats.TotalSamples += int64(width * spp)
			rt.logger.Printf("\rScanlines remaining: %d ", height-stats.RowsCompleted)
			if onRow != nil {
				onRow(RowProgress{Row: row, RowsCompleted: stats.RowsCompleted, TotalRows: height})
			}
			return nil
		})
	}

	err := g.Wait()
	stats.Duration = time.Since(startTime)
	if err == nil {
		err = ctx.Err()
	}
	if err != nil && stats.RowsCompleted < height {
		rt.logger.Printf("\nRender stopped: %v\n", err)
		return fb, stats, err
	}

	rt.logger.Printf("\rDone.                        \n")
	return fb, stats, nil
}

// renderRow accumulates every stratum of every pixel in row j
func (rt *Raytracer) renderRow(j int, fb *Framebuffer, sampler core.Sampler) {
	sqrtSpp := rt.camera.SqrtSPP()
	maxDepth := rt.camera.Config().MaxDepth

	for i := 0; i < fb.Width; i++ {
		var color, albedo, normal core.Vec3
		for sj := 0; sj < sqrtSpp; sj++ {
			for si := 0; si < sqrtSpp; si++ {
				ray := rt.camera.GetRay(i, j, si, sj, sampler)
				color = color.Add(rt.integrator.RayColor(ray, maxDepth, rt.world, rt.lights, sampler))
				if fb.HasAuxiliary() {
					albedo = albedo.Add(rt.integrator.RayAlbedo(ray, rt.world, sampler))
					normal = normal.Add(rt.integrator.RayNormal(ray, rt.world, sampler))
				}
			}
		}

		idx := j*fb.Width + i
		fb.Color[idx] = color
		if fb.HasAuxiliary() {
			fb.Albedo[idx] = albedo
			fb.Normal[idx] = normal
		}
	}
}

// rowSeed derives a distinct deterministic seed for each row
func rowSeed(seed int64, row int) int64 {
	return seed*1000003 + int64(row)
}
