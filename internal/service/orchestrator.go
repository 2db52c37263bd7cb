// Package service implements the request pipeline: validation, the
// transcription job orchestrator, and insight extraction.
package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	stderrors "errors"
	"fmt"

	"github.com/skillsenselab/insightd/internal/errors"
	"github.com/skillsenselab/insightd/internal/logger"
	"github.com/skillsenselab/insightd/internal/storage"
	"github.com/skillsenselab/insightd/internal/transcription"
)

// Status is the tri-state outcome of one orchestrator invocation.
type Status string

const (
	// StatusStarted means the job was submitted by this invocation.
	StatusStarted Status = "STARTED"
	// StatusPending means the job exists and is still processing.
	StatusPending Status = "PENDING"
	// StatusCompleted means the transcript is ready.
	StatusCompleted Status = "COMPLETED"
	// StatusFailed means the provider reported a terminal failure.
	StatusFailed Status = "FAILED"
)

// Fixed submission parameters; the service transcribes mp3 audio in a
// single language.
const (
	MediaFormat  = "mp3"
	LanguageCode = "en-US"

	transcriptKeySuffix = ".json"
)

// DeriveJobID returns the deterministic transcription job id for a source
// audio object. The same (bucket, key) pair always yields the same id, so
// repeated requests converge on one job. The key is hashed rather than
// embedded because provider job names are bounded in length and character
// set while object keys are not.
func DeriveJobID(bucket, key string) string {
	sum := sha256.Sum256([]byte(bucket + "/" + key))
	return fmt.Sprintf("insight-%s-%s", bucket, hex.EncodeToString(sum[:8]))
}

// Orchestrator owns the transcription job lifecycle: it derives the job id,
// submits the job if the provider does not know it, translates provider
// state, and retrieves the transcript artifact once the job completes.
//
// It holds no job state across invocations. Each call performs at most one
// status check and returns; the caller re-polls until a terminal status.
// Racing submissions for the same object are harmless: the deterministic id
// plus the provider's "job already exists" signal collapse them onto one job.
type Orchestrator struct {
	provider transcription.Provider
	store    storage.Storage
	log      *logger.Logger
}

// NewOrchestrator creates an orchestrator with explicit collaborators.
func NewOrchestrator(p transcription.Provider, store storage.Storage, log *logger.Logger) *Orchestrator {
	return &Orchestrator{
		provider: p,
		store:    store,
		log:      log.WithComponent("orchestrator"),
	}
}

// Process advances the transcription job for the given source object by one
// poll. It returns the job status and, when COMPLETED, the transcript text.
// A FAILED status is returned as a status, not an error; the job is never
// resubmitted.
func (o *Orchestrator) Process(ctx context.Context, bucket, key string) (Status, string, error) {
	jobID := DeriveJobID(bucket, key)
	log := o.log.WithFields(map[string]interface{}{
		logger.FieldJobID:  jobID,
		logger.FieldBucket: bucket,
		logger.FieldKey:    key,
	})

	job, err := o.provider.GetJob(ctx, jobID)
	if stderrors.Is(err, transcription.ErrJobNotFound) {
		return o.submit(ctx, jobID, bucket, key, log)
	}
	if err != nil {
		return "", "", errors.ExternalServiceError("transcription", err)
	}

	switch job.Status {
	case transcription.StatusCompleted:
		log.Info("Transcription job completed")
		text, terr := o.fetchTranscript(ctx, bucket, jobID)
		if terr != nil {
			return "", "", terr
		}
		return StatusCompleted, text, nil
	case transcription.StatusFailed:
		log.Warn("Transcription job failed", map[string]interface{}{
			"failure_reason": job.FailureReason,
		})
		return StatusFailed, "", nil
	default:
		log.Debug("Transcription job still processing", map[string]interface{}{
			logger.FieldStatus: string(job.Status),
		})
		return StatusPending, "", nil
	}
}

// submit starts a new job and returns without waiting for completion.
func (o *Orchestrator) submit(ctx context.Context, jobID, bucket, key string, log *logger.Logger) (Status, string, error) {
	input := transcription.StartJobInput{
		JobID:        jobID,
		MediaURI:     fmt.Sprintf("s3://%s/%s", bucket, key),
		MediaFormat:  MediaFormat,
		Language:     LanguageCode,
		OutputBucket: bucket,
	}
	if err := o.provider.StartJob(ctx, input); err != nil {
		if stderrors.Is(err, transcription.ErrJobAlreadyExists) {
			// Lost the submit race to a concurrent invocation; the job
			// exists now, which is the outcome we wanted.
			return StatusStarted, "", nil
		}
		return "", "", errors.ExternalServiceError("transcription", err)
	}
	log.Info("Transcription job started")
	return StatusStarted, "", nil
}

// transcriptDocument is the provider's transcript artifact shape.
type transcriptDocument struct {
	Results struct {
		Transcripts []struct {
			Transcript string `json:"transcript"`
		} `json:"transcripts"`
	} `json:"results"`
}

// fetchTranscript reads the transcript artifact the provider persisted next
// to the source audio and extracts its nested transcript text. A missing or
// malformed artifact is a storage-object error, never silently empty text.
func (o *Orchestrator) fetchTranscript(ctx context.Context, bucket, jobID string) (string, error) {
	artifactKey := jobID + transcriptKeySuffix

	body, err := o.store.Download(ctx, bucket, artifactKey)
	if err != nil {
		if appErr, ok := errors.AsAppError(err); ok && appErr.Code == errors.ErrCodeNotFound {
			return "", errors.StorageObject("the transcript artifact does not exist").
				WithDetail(logger.FieldKey, artifactKey)
		}
		return "", errors.ExternalServiceError("storage", err)
	}
	defer body.Close()

	var doc transcriptDocument
	if err := json.NewDecoder(body).Decode(&doc); err != nil {
		return "", errors.StorageObject("the transcript artifact is not valid JSON").
			WithDetail(logger.FieldKey, artifactKey).WithCause(err)
	}
	if len(doc.Results.Transcripts) == 0 {
		return "", errors.StorageObject("the transcript artifact is missing its transcript field").
			WithDetail(logger.FieldKey, artifactKey)
	}
	return doc.Results.Transcripts[0].Transcript, nil
}
