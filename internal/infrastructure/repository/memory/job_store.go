// Package memory keeps analysis jobs in process memory. Nothing here
// survives a restart; uploads and results are session-scoped.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/Piyush-6177/Exam-Pilot/internal/core/domain"
)

const defaultMaxJobs = 256

type JobStore struct {
	mu      sync.RWMutex
	jobs    map[string]*domain.AnalysisJob
	maxJobs int
}

func NewJobStore(maxJobs int) *JobStore {
	if maxJobs <= 0 {
		maxJobs = defaultMaxJobs
	}
	return &JobStore{
		jobs:    make(map[string]*domain.AnalysisJob),
		maxJobs: maxJobs,
	}
}

func (s *JobStore) Create(_ context.Context, job *domain.AnalysisJob) error {
	if job == nil || job.ID == "" {
		return fmt.Errorf("%w: job id is required", domain.ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.jobs[job.ID]; exists {
		return fmt.Errorf("%w: job %s already exists", domain.ErrInvalidInput, job.ID)
	}
	s.pruneLocked()

	stored := *job
	s.jobs[job.ID] = &stored
	return nil
}

// Get returns a copy so callers can never race with the running pipeline.
func (s *JobStore) Get(_ context.Context, id string) (*domain.AnalysisJob, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	job, ok := s.jobs[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrJobNotFound, id)
	}
	snapshot := *job
	snapshot.Result = cloneResult(job.Result)
	return &snapshot, nil
}

// cloneResult deep-copies a result so a snapshot never aliases stored slices.
func cloneResult(result *domain.AnalysisResult) *domain.AnalysisResult {
	if result == nil {
		return nil
	}
	clone := *result
	clone.Topics = append([]domain.Topic(nil), result.Topics...)
	for i := range clone.Topics {
		clone.Topics[i].KeyConcepts = append([]string(nil), result.Topics[i].KeyConcepts...)
	}
	return &clone
}

func (s *JobStore) MarkRunning(_ context.Context, id string) error {
	return s.update(id, func(job *domain.AnalysisJob) {
		job.Status = domain.JobRunning
		job.StartedAt = time.Now().UTC()
	})
}

func (s *JobStore) SetStage(_ context.Context, id, stage string) error {
	return s.update(id, func(job *domain.AnalysisJob) {
		job.Stage = stage
	})
}

func (s *JobStore) Complete(_ context.Context, id string, result *domain.AnalysisResult) error {
	return s.update(id, func(job *domain.AnalysisJob) {
		job.Status = domain.JobSucceeded
		job.FinishedAt = time.Now().UTC()
		job.Result = result
	})
}

func (s *JobStore) Fail(_ context.Context, id string, cause error) error {
	return s.update(id, func(job *domain.AnalysisJob) {
		job.Status = domain.JobFailed
		job.FinishedAt = time.Now().UTC()
		job.ErrorKind = domain.ErrorKind(cause)
		job.ErrorMessage = domain.UserMessage(cause)
		if invalid, ok := domain.AsInvalidDocument(cause); ok {
			job.DetectedType = invalid.DetectedType
		}
	})
}

func (s *JobStore) update(id string, apply func(*domain.AnalysisJob)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	job, ok := s.jobs[id]
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrJobNotFound, id)
	}
	apply(job)
	return nil
}

// pruneLocked drops the oldest finished jobs once the cap is reached. Running
// jobs are never evicted.
func (s *JobStore) pruneLocked() {
	if len(s.jobs) < s.maxJobs {
		return
	}

	type finished struct {
		id string
		at time.Time
	}
	var done []finished
	for id, job := range s.jobs {
		if job.Status == domain.JobSucceeded || job.Status == domain.JobFailed {
			done = append(done, finished{id: id, at: job.FinishedAt})
		}
	}
	sort.Slice(done, func(i, j int) bool { return done[i].at.Before(done[j].at) })

	excess := len(s.jobs) - s.maxJobs + 1
	for i := 0; i < len(done) && i < excess; i++ {
		delete(s.jobs, done[i].id)
	}
}
