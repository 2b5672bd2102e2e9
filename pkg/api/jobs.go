package api

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type JobStatus string

const (
	JobRunning JobStatus = "running"
	JobDone    JobStatus = "done"
	JobFailed  JobStatus = "failed"
)

//Job is a background split run
type Job struct {
	ID       string      `json:"id"`
	Kind     string      `json:"kind"`
	Status   JobStatus   `json:"status"`
	Error    string      `json:"error,omitempty"`
	Result   interface{} `json:"result,omitempty"`
	Started  time.Time   `json:"started"`
	Finished *time.Time  `json:"finished,omitempty"`
}

//JobFunc is the work of a job, it's result is stored on the job when done
type JobFunc func(ctx context.Context) (interface{}, error)

//Jobs keeps every job started since the server is up
type Jobs struct {
	mu   sync.RWMutex
	jobs map[string]*Job
	ctx  context.Context
	wg   sync.WaitGroup
}

//NewJobs returns an empty registry, jobs are cancelled with ctx
func NewJobs(ctx context.Context) *Jobs {
	return &Jobs{jobs: make(map[string]*Job), ctx: ctx}
}

//Start runs fn in background and returns the new job id
func (j *Jobs) Start(kind string, fn JobFunc) string {
	job := &Job{ID: uuid.NewString(), Kind: kind, Status: JobRunning, Started: time.Now()}

	j.mu.Lock()
	j.jobs[job.ID] = job
	j.mu.Unlock()

	j.wg.Add(1)
	go func() {
		defer j.wg.Done()
		result, err := fn(j.ctx)
		finished := time.Now()

		j.mu.Lock()
		defer j.mu.Unlock()
		job.Finished = &finished
		job.Result = result
		if err != nil {
			zap.S().Errorf("api/Jobs: Job '%s' (%s) failed, got '%v'", job.ID, kind, err)
			job.Status = JobFailed
			job.Error = err.Error()
			return
		}
		zap.S().Infof("api/Jobs: Job '%s' (%s) done in %v", job.ID, kind, finished.Sub(job.Started))
		job.Status = JobDone
	}()

	return job.ID
}

//Get returns a copy of the job with given id
func (j *Jobs) Get(id string) (Job, bool) {
	j.mu.RLock()
	defer j.mu.RUnlock()
	job, ok := j.jobs[id]
	if !ok {
		return Job{}, false
	}
	return *job, true
}

//Wait blocks until every started job returned
func (j *Jobs) Wait() {
	j.wg.Wait()
}
