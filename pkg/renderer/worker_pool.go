package renderer

import (
	"context"
	"image"
	"sync"

	"github.com/df07/go-bvh-pathtracer/pkg/core"
)

// RowTask asks a worker to render one scanline. Row 0 is the bottom of the image.
// Rows never overlap, so workers write into the shared image without locking.
type RowTask struct {
	Row   int
	Image *image.RGBA
}

// RowResult reports a finished (or skipped) scanline
type RowResult struct {
	Row     int
	Samples int
	Error   error
}

// WorkerPool renders scanlines in parallel
type WorkerPool struct {
	taskQueue   chan RowTask
	resultQueue chan RowResult
	workers     []*Worker
	numWorkers  int
	wg          sync.WaitGroup
}

// Worker owns its sampler; nothing else on the render path is mutable
type Worker struct {
	ID          int
	raytracer   *Raytracer
	sampler     *core.XorShiftSampler
	taskQueue   chan RowTask
	resultQueue chan RowResult
}

// NewWorkerPool creates a worker pool with the specified number of workers.
// Queues are sized to hold every row so submission never blocks.
func NewWorkerPool(rt *Raytracer, numWorkers int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = DefaultWorkerCount()
	}

	rows := rt.config.Height
	wp := &WorkerPool{
		taskQueue:   make(chan RowTask, rows),
		resultQueue: make(chan RowResult, rows),
		numWorkers:  numWorkers,
	}

	for i := 0; i < numWorkers; i++ {
		wp.workers = append(wp.workers, &Worker{
			ID:          i,
			raytracer:   rt,
			sampler:     core.NewXorShiftSampler(0), // reseeded for every row in run
			taskQueue:   wp.taskQueue,
			resultQueue: wp.resultQueue,
		})
	}

	return wp
}

// Start begins all workers. Workers skip any row taken after ctx is done.
func (wp *WorkerPool) Start(ctx context.Context) {
	for _, worker := range wp.workers {
		wp.wg.Add(1)
		go worker.run(ctx, &wp.wg)
	}
}

// Stop closes the task queue, waits for workers to drain it and closes the results
func (wp *WorkerPool) Stop() {
	close(wp.taskQueue)
	wp.wg.Wait()
	close(wp.resultQueue)
}

// SubmitTask submits a row task to the worker pool
func (wp *WorkerPool) SubmitTask(task RowTask) {
	wp.taskQueue <- task
}

// Results returns the channel of completed rows; it is closed by Stop
func (wp *WorkerPool) Results() <-chan RowResult {
	return wp.resultQueue
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}

// run is the main worker loop
func (w *Worker) run(ctx context.Context, wg *sync.WaitGroup) {
	defer wg.Done()

	for task := range w.taskQueue {
		if err := ctx.Err(); err != nil {
			w.resultQueue <- RowResult{Row: task.Row, Error: err}
			continue
		}

		// Seeding by row makes the image independent of which worker took the row
		w.sampler.Seed(core.SeedFor(w.raytracer.config.Seed, task.Row))
		samples := w.raytracer.renderRow(task.Row, w.sampler, task.Image)

		w.resultQueue <- RowResult{Row: task.Row, Samples: samples}
	}
}
