package converter

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/gnana997/react2ts/pkg/util"
)

// FileJob represents a file to be converted by the worker pool.
type FileJob struct {
	FilePath string
	JobID    int
}

// ProcessFunc converts one file. It must not panic; the pool recovers
// panics anyway and turns them into failed results.
type ProcessFunc func(ctx context.Context, job FileJob) *FileResult

// WorkerPool manages a pool of goroutines for parallel file conversion.
//
// Jobs go in through Submit, results come out of Results. Every submitted
// job produces exactly one result, failed or not.
//
// **Usage:**
//
//	pool := NewWorkerPool(ctx, numWorkers, process, logger)
//	pool.Start()
//
//	go func() {
//	    for i, file := range files {
//	        pool.Submit(FileJob{FilePath: file, JobID: i})
//	    }
//	    pool.Stop() // drains in-flight jobs, then closes Results
//	}()
//
//	for result := range pool.Results() {
//	    // collect
//	}
type WorkerPool struct {
	numWorkers int
	jobs       chan FileJob
	results    chan *FileResult
	wg         sync.WaitGroup
	process    ProcessFunc
	logger     *slog.Logger

	// Lifecycle management
	ctx        context.Context
	cancel     context.CancelFunc
	started    atomic.Bool
	stopped    atomic.Bool
	jobsClosed atomic.Bool

	// Statistics
	jobsSubmitted atomic.Int64
	jobsProcessed atomic.Int64
	jobsFailed    atomic.Int64
}

// NewWorkerPool creates a new worker pool.
//
// numWorkers of 0 uses util.GetOptimalPoolSize(), the same size as the
// parser pool, so a worker never waits on a parser while holding a file.
func NewWorkerPool(parent context.Context, numWorkers int, process ProcessFunc, logger *slog.Logger) *WorkerPool {
	if logger == nil {
		logger = slog.Default()
	}
	numWorkers = util.GetOptimalPoolSizeWithOverride(numWorkers)

	ctx, cancel := context.WithCancel(parent)

	return &WorkerPool{
		numWorkers: numWorkers,
		jobs:       make(chan FileJob, numWorkers*2),
		results:    make(chan *FileResult, numWorkers),
		process:    process,
		logger:     logger,
		ctx:        ctx,
		cancel:     cancel,
	}
}

// Start spawns all worker goroutines.
func (wp *WorkerPool) Start() {
	if !wp.started.CompareAndSwap(false, true) {
		wp.logger.Warn("WorkerPool already started")
		return
	}

	wp.logger.Debug("Starting worker pool", "workers", wp.numWorkers)

	for i := 0; i < wp.numWorkers; i++ {
		wp.wg.Add(1)
		go wp.worker(i)
	}
}

func (wp *WorkerPool) worker(id int) {
	defer wp.wg.Done()

	for {
		select {
		case <-wp.ctx.Done():
			wp.logger.Debug("Worker cancelled", "worker_id", id)
			return

		case job, ok := <-wp.jobs:
			if !ok {
				return
			}
			result := wp.run(id, job)
			if result.Status == StatusFailed {
				wp.jobsFailed.Add(1)
			} else {
				wp.jobsProcessed.Add(1)
			}
			wp.results <- result
		}
	}
}

// run calls the process function, turning a panic into a failed result.
func (wp *WorkerPool) run(workerID int, job FileJob) (result *FileResult) {
	defer func() {
		if r := recover(); r != nil {
			wp.logger.Error("Conversion panicked",
				"worker_id", workerID,
				"file", job.FilePath,
				"panic", r)
			result = &FileResult{
				Path:   job.FilePath,
				JobID:  job.JobID,
				Status: StatusFailed,
				Error:  fmt.Sprintf("panic: %v", r),
			}
		}
	}()

	wp.logger.Debug("Worker received job", "worker_id", workerID, "file", job.FilePath, "job_id", job.JobID)
	result = wp.process(wp.ctx, job)
	if result == nil {
		result = &FileResult{Path: job.FilePath, Status: StatusUnchanged}
	}
	result.JobID = job.JobID
	return result
}

// Submit enqueues a job for processing. It blocks while the queue is full.
func (wp *WorkerPool) Submit(job FileJob) error {
	if wp.stopped.Load() || wp.jobsClosed.Load() {
		return fmt.Errorf("worker pool is stopped")
	}

	select {
	case <-wp.ctx.Done():
		return fmt.Errorf("worker pool cancelled: %w", wp.ctx.Err())
	case wp.jobs <- job:
		wp.jobsSubmitted.Add(1)
		return nil
	}
}

// Results returns the results channel. It is closed by Stop once every
// worker has exited.
func (wp *WorkerPool) Results() <-chan *FileResult {
	return wp.results
}

// Stop closes the job queue, waits for in-flight jobs and closes Results.
// Results must be drained concurrently or Stop blocks.
//
// **Thread Safety:** Safe to call multiple times (idempotent).
func (wp *WorkerPool) Stop() {
	if !wp.stopped.CompareAndSwap(false, true) {
		return
	}

	if wp.jobsClosed.CompareAndSwap(false, true) {
		close(wp.jobs)
	}

	wp.wg.Wait()
	close(wp.results)
	wp.cancel()

	wp.logger.Debug("Worker pool stopped",
		"jobs_submitted", wp.jobsSubmitted.Load(),
		"jobs_processed", wp.jobsProcessed.Load(),
		"jobs_failed", wp.jobsFailed.Load())
}

// GetStats returns current worker pool statistics.
func (wp *WorkerPool) GetStats() WorkerPoolStats {
	return WorkerPoolStats{
		NumWorkers:    wp.numWorkers,
		JobsSubmitted: wp.jobsSubmitted.Load(),
		JobsProcessed: wp.jobsProcessed.Load(),
		JobsFailed:    wp.jobsFailed.Load(),
		QueueLength:   len(wp.jobs),
	}
}

// WorkerPoolStats contains statistics about the worker pool.
type WorkerPoolStats struct {
	NumWorkers    int
	JobsSubmitted int64
	JobsProcessed int64
	JobsFailed    int64
	QueueLength   int // Current jobs in queue
}
