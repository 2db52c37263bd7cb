// Package transcription defines the asynchronous transcription provider
// interface and common types for interacting with speech-to-text backends.
//
// Providers expose a job-oriented contract: StartJob submits audio for
// transcription and returns immediately, GetJob reports the job's current
// state. A job unknown to the provider surfaces as ErrJobNotFound, which is
// the signal the orchestrator uses to submit it for the first time.
package transcription

import (
	"context"
	"errors"

	"github.com/skillsenselab/insightd/internal/provider"
)

// ErrJobNotFound is returned by GetJob when the provider has no job with the
// given id.
var ErrJobNotFound = errors.New("transcription: job not found")

// ErrJobAlreadyExists is returned by StartJob when a job with the given id
// was already submitted. Callers that derive ids deterministically treat
// this as losing a harmless race, not as a failure.
var ErrJobAlreadyExists = errors.New("transcription: job already exists")

// Provider is the interface that transcription backends must implement.
type Provider interface {
	provider.Provider // embeds Name() and IsAvailable()

	// GetJob returns the current state of the job with the given id, or
	// ErrJobNotFound if the provider does not know it.
	GetJob(ctx context.Context, jobID string) (*Job, error)

	// StartJob submits a new transcription job. It returns once the provider
	// has accepted the job; it never waits for completion.
	StartJob(ctx context.Context, input StartJobInput) error
}
