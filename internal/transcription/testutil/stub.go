// Package testutil provides a scriptable transcription.Provider for tests.
package testutil

import (
	"context"
	"sync"

	"github.com/skillsenselab/insightd/internal/transcription"
)

// StubProvider is a test double for transcription.Provider. Jobs returns a
// fixed job per id; unknown ids surface as ErrJobNotFound.
type StubProvider struct {
	mu sync.Mutex

	// Jobs maps job id to the job GetJob should report.
	Jobs map[string]*transcription.Job

	// GetErr, if set, is returned by GetJob regardless of Jobs.
	GetErr error

	// StartErr, if set, is returned by StartJob.
	StartErr error

	// StartCalls records every StartJob input, in order.
	StartCalls []transcription.StartJobInput
}

// NewStubProvider creates an empty stub.
func NewStubProvider() *StubProvider {
	return &StubProvider{Jobs: make(map[string]*transcription.Job)}
}

// Name returns the stub provider name.
func (s *StubProvider) Name() string { return "stub" }

// IsAvailable always reports true.
func (s *StubProvider) IsAvailable(_ context.Context) bool { return true }

// GetJob returns the scripted job, or ErrJobNotFound for unknown ids.
func (s *StubProvider) GetJob(_ context.Context, jobID string) (*transcription.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.GetErr != nil {
		return nil, s.GetErr
	}
	job, ok := s.Jobs[jobID]
	if !ok {
		return nil, transcription.ErrJobNotFound
	}
	return job, nil
}

// StartJob records the submission and marks the job queued.
func (s *StubProvider) StartJob(_ context.Context, input transcription.StartJobInput) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.StartErr != nil {
		return s.StartErr
	}
	s.StartCalls = append(s.StartCalls, input)
	s.Jobs[input.JobID] = &transcription.Job{ID: input.JobID, Status: transcription.StatusQueued}
	return nil
}

// compile-time check
var _ transcription.Provider = (*StubProvider)(nil)
