package pipeline

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/illusionist-creator/NB-RTV-PDF-to-Excel/internal/extract"
)

// JobStatus represents the state of a conversion job.
type JobStatus string

const (
	StatusQueued     JobStatus = "queued"
	StatusExtracting JobStatus = "extracting"
	StatusCompleted  JobStatus = "completed"
	StatusPartial    JobStatus = "partial"
	StatusFailed     JobStatus = "failed"
)

// Job tracks one asynchronous batch conversion.
type Job struct {
	mu sync.Mutex

	ID     string
	Family extract.Family

	Status   JobStatus
	Phase    string
	Progress JobProgress

	CreatedAt time.Time
	UpdatedAt time.Time

	// Internal: not serialized.
	inputs []Input
	result *Result
}

// JobProgress tracks files and records as the batch advances.
type JobProgress struct {
	TotalFiles     int      `json:"total_files"`
	FilesProcessed int      `json:"files_processed"`
	Records        int      `json:"records"`
	Errors         []string `json:"errors"`
}

// NewJob creates a queued job for the given inputs.
func NewJob(family extract.Family, inputs []Input) *Job {
	now := time.Now()
	return &Job{
		ID:        uuid.NewString(),
		Family:    family,
		Status:    StatusQueued,
		Phase:     "queued",
		Progress:  JobProgress{TotalFiles: len(inputs)},
		CreatedAt: now,
		UpdatedAt: now,
		inputs:    inputs,
	}
}

// SetStatus updates job status atomically.
func (j *Job) SetStatus(status JobStatus, phase string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Status = status
	j.Phase = phase
	j.UpdatedAt = time.Now()
}

// Advance records one finished file.
func (j *Job) Advance(p Progress) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Progress.FilesProcessed = p.Done
	j.Progress.Records += p.Records
	j.Phase = "processed " + p.Filename
	j.UpdatedAt = time.Now()
}

// Inputs returns the documents queued with the job.
func (j *Job) Inputs() []Input {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.inputs
}

// Finish stores the batch result, releases the input bytes and derives the
// final status.
func (j *Job) Finish(res Result) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.result = &res
	j.inputs = nil
	j.Progress.FilesProcessed = res.Files
	j.Progress.Records = len(res.Records)
	j.Progress.Errors = res.ErrorLines()
	switch {
	case len(res.Records) == 0:
		j.Status = StatusFailed
	case len(res.Errors) > 0:
		j.Status = StatusPartial
	default:
		j.Status = StatusCompleted
	}
	j.Phase = "done"
	j.UpdatedAt = time.Now()
}

// Abort fails a job that never reached a worker and releases its inputs.
func (j *Job) Abort(phase string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.inputs = nil
	j.Status = StatusFailed
	j.Phase = phase
	j.UpdatedAt = time.Now()
}

// Result returns the batch result once the job has finished.
func (j *Job) Result() (Result, bool) {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.result == nil {
		return Result{}, false
	}
	return *j.result, true
}

// JobSnapshot is a read-only, JSON-safe copy of job state.
type JobSnapshot struct {
	ID       string         `json:"job_id"`
	Family   extract.Family `json:"family"`
	Status   JobStatus      `json:"status"`
	Phase    string         `json:"phase"`
	Progress JobProgress    `json:"progress"`
}

// Snapshot returns a JSON-safe copy of the job state.
func (j *Job) Snapshot() JobSnapshot {
	j.mu.Lock()
	defer j.mu.Unlock()
	errs := append([]string{}, j.Progress.Errors...)
	p := j.Progress
	p.Errors = errs
	return JobSnapshot{
		ID:       j.ID,
		Family:   j.Family,
		Status:   j.Status,
		Phase:    j.Phase,
		Progress: p,
	}
}

// JobStore is a thread-safe in-memory job registry with TTL eviction.
type JobStore struct {
	mu   sync.Mutex
	jobs map[string]*Job
	ttl  time.Duration
}

func NewJobStore(ttl time.Duration) *JobStore {
	return &JobStore{
		jobs: make(map[string]*Job),
		ttl:  ttl,
	}
}

func (s *JobStore) Put(job *Job) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs[job.ID] = job
}

func (s *JobStore) Get(id string) *Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.jobs[id]
}

// Cleanup removes expired jobs.
func (s *JobStore) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for id, job := range s.jobs {
		job.mu.Lock()
		updated := job.UpdatedAt
		job.mu.Unlock()
		if now.Sub(updated) > s.ttl {
			delete(s.jobs, id)
		}
	}
}
