package pipeline

import (
	"context"
	"log/slog"
	"time"
)

// Worker runs queued jobs through a Batch.
type Worker struct {
	batch *Batch
	log   *slog.Logger
}

func NewWorker(batch *Batch, log *slog.Logger) *Worker {
	return &Worker{batch: batch, log: log}
}

// Process runs the batch for a job and stores its result on the job.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("job_id", job.ID, "family", string(job.Family))
	start := time.Now()

	inputs := job.Inputs()
	job.SetStatus(StatusExtracting, "extracting")
	log.Info("job started", "files", len(inputs))

	b := *w.batch
	b.Log = log
	b.OnProgress = job.Advance
	res := b.Run(ctx, inputs, job.Family)

	job.Finish(res)
	snap := job.Snapshot()
	if res.NoData() {
		log.Warn("no valid data extracted", "errors", len(res.Errors))
	}
	log.Info("job finished",
		"status", snap.Status,
		"records", len(res.Records),
		"errors", len(res.Errors),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
}
