package renderer

import (
	"image/color"
	"runtime"
	"sync"
	"time"

	"github.com/voxelray/go-voxel-raytracer/pkg/core"
	"github.com/voxelray/go-voxel-raytracer/pkg/scene"
)

// rowTask is a single row of pixels for a worker to render
type rowTask struct {
	y int
}

// Dispatcher maps every pixel of a frame to a color across a fixed-size
// worker pool. Rows are distributed over workers; each worker writes only
// its own rows of the shared buffer, so the pass needs no locks, and the
// buffer keeps row-major order regardless of which worker ran which row.
type Dispatcher struct {
	numWorkers int
	logger     core.Logger
}

// NewDispatcher creates a dispatcher with the given worker count
// (0 = one per CPU)
func NewDispatcher(numWorkers int) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	return &Dispatcher{numWorkers: numWorkers}
}

// SetLogger installs a logger for frame completion output
func (d *Dispatcher) SetLogger(logger core.Logger) {
	d.logger = logger
}

// NumWorkers returns the size of the worker pool
func (d *Dispatcher) NumWorkers() int {
	return d.numWorkers
}

// Render traces one ray per pixel and returns the frame buffer in
// row-major order (y outer, x inner), always exactly width*height entries.
// The scene snapshot is read-only for the duration of the pass.
func (d *Dispatcher) Render(camera *Camera, width, height int, s *scene.Scene) ([]color.RGBA, FrameStats) {
	start := time.Now()

	buffer := make([]color.RGBA, width*height)
	raytracer := NewRaytracer(s)

	tasks := make(chan rowTask, height)
	var wg sync.WaitGroup

	for w := 0; w < d.numWorkers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for task := range tasks {
				row := buffer[task.y*width : (task.y+1)*width]
				for x := 0; x < width; x++ {
					ray := camera.GetRay(x, task.y, width, height)
					row[x] = vec3ToRGBA(raytracer.CastRay(ray, 0))
				}
			}
		}()
	}

	for y := 0; y < height; y++ {
		tasks <- rowTask{y: y}
	}
	close(tasks)
	wg.Wait()

	stats := FrameStats{
		Width:   width,
		Height:  height,
		Workers: d.numWorkers,
		Elapsed: time.Since(start),
	}

	if d.logger != nil {
		d.logger.Printf("frame %dx%d rendered in %v with %d workers\n",
			width, height, stats.Elapsed, stats.Workers)
	}

	return buffer, stats
}

// vec3ToRGBA converts a color vector to 8-bit RGBA with clamping
func vec3ToRGBA(c core.Vec3) color.RGBA {
	c = c.Clamp(0, 1)
	return color.RGBA{
		R: uint8(255 * c.X),
		G: uint8(255 * c.Y),
		B: uint8(255 * c.Z),
		A: 255,
	}
}
