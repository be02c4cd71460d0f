package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// ErrStopped is returned by Submit once the orchestrator has been stopped.
var ErrStopped = errors.New("orchestrator stopped")

const cleanupInterval = 5 * time.Minute

// Options configures the asynchronous job pipeline.
type Options struct {
	JobWorkers   int
	FileWorkers  int
	MaxQueueSize int
	JobTTL       time.Duration
}

// Orchestrator queues conversion jobs and runs them on a fixed worker pool.
type Orchestrator struct {
	jobs      *JobStore
	queue     chan *Job
	extractor TextExtractor
	stats     *ParseStats
	log       *slog.Logger
	opts      Options

	mu      sync.RWMutex
	stopped bool
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

// NewOrchestrator creates the pipeline. Call Start to launch workers.
func NewOrchestrator(opts Options, extractor TextExtractor, stats *ParseStats, log *slog.Logger) *Orchestrator {
	if opts.JobWorkers <= 0 {
		opts.JobWorkers = 2
	}
	if opts.MaxQueueSize <= 0 {
		opts.MaxQueueSize = 100
	}
	if opts.JobTTL <= 0 {
		opts.JobTTL = time.Hour
	}
	if log == nil {
		log = slog.Default()
	}
	if stats == nil {
		stats = NewParseStats(time.Hour)
	}
	return &Orchestrator{
		jobs:      NewJobStore(opts.JobTTL),
		queue:     make(chan *Job, opts.MaxQueueSize),
		extractor: extractor,
		stats:     stats,
		log:       log,
		opts:      opts,
	}
}

// Start launches the job workers and the expired-job sweeper.
func (o *Orchestrator) Start(ctx context.Context) {
	ctx, o.cancel = context.WithCancel(ctx)

	for range o.opts.JobWorkers {
		o.wg.Add(1)
		go o.work(ctx, NewWorker(o.NewBatch(), o.log))
	}

	o.wg.Add(1)
	go o.sweep(ctx)

	o.log.Info("pipeline started",
		"job_workers", o.opts.JobWorkers,
		"file_workers", o.opts.FileWorkers,
		"queue_size", o.opts.MaxQueueSize,
	)
}

func (o *Orchestrator) work(ctx context.Context, w *Worker) {
	defer o.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case job, ok := <-o.queue:
			if !ok {
				return
			}
			w.Process(ctx, job)
		}
	}
}

func (o *Orchestrator) sweep(ctx context.Context) {
	defer o.wg.Done()
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			o.jobs.Cleanup()
		}
	}
}

// Stop cancels running jobs and waits for the workers to exit. Jobs still
// queued are marked failed. It is safe to call more than once.
func (o *Orchestrator) Stop() {
	o.mu.Lock()
	if o.stopped {
		o.mu.Unlock()
		return
	}
	o.stopped = true
	close(o.queue)
	o.mu.Unlock()

	if o.cancel != nil {
		o.cancel()
	}
	o.wg.Wait()

	for job := range o.queue {
		job.Abort("shutdown")
		o.log.Warn("job dropped at shutdown", "job_id", job.ID)
	}
}

// NewBatch returns a batch runner sharing the orchestrator's extractor and stats.
func (o *Orchestrator) NewBatch() *Batch {
	return &Batch{
		Extractor: o.extractor,
		Workers:   o.opts.FileWorkers,
		Log:       o.log,
		Stats:     o.stats,
	}
}

// Submit registers the job and queues it. A full queue marks the job failed.
func (o *Orchestrator) Submit(job *Job) error {
	o.mu.RLock()
	defer o.mu.RUnlock()
	if o.stopped {
		return ErrStopped
	}

	o.jobs.Put(job)
	select {
	case o.queue <- job:
		return nil
	default:
		job.SetStatus(StatusFailed, "queue_full")
		return fmt.Errorf("job queue is full (%d)", o.opts.MaxQueueSize)
	}
}

// GetJob returns a job by ID, or nil.
func (o *Orchestrator) GetJob(id string) *Job {
	return o.jobs.Get(id)
}

// QueueDepth returns the number of jobs waiting for a worker.
func (o *Orchestrator) QueueDepth() int {
	return len(o.queue)
}

// Stats returns the shared parse statistics.
func (o *Orchestrator) Stats() *ParseStats {
	return o.stats
}
