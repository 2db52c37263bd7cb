package transcription

// JobStatus is the provider-reported state of a transcription job.
type JobStatus string

const (
	// StatusQueued means the job is accepted but not yet running.
	StatusQueued JobStatus = "QUEUED"
	// StatusInProgress means the job is being transcribed.
	StatusInProgress JobStatus = "IN_PROGRESS"
	// StatusCompleted means the transcript artifact is ready.
	StatusCompleted JobStatus = "COMPLETED"
	// StatusFailed means the job failed terminally.
	StatusFailed JobStatus = "FAILED"
)

// Terminal reports whether the status is final. A terminal job is never
// resubmitted.
func (s JobStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// Job describes the provider's view of a transcription job.
type Job struct {
	// ID is the deterministic job identifier.
	ID string `json:"id"`
	// Status is the provider-reported job state.
	Status JobStatus `json:"status"`
	// FailureReason carries the provider's failure message when Status is FAILED.
	FailureReason string `json:"failure_reason,omitempty"`
}

// StartJobInput holds parameters for submitting a transcription job.
type StartJobInput struct {
	// JobID is the deterministic identifier for the job.
	JobID string `json:"job_id"`
	// MediaURI is the storage address of the source audio (e.g. s3://bucket/key.mp3).
	MediaURI string `json:"media_uri"`
	// MediaFormat is the audio container format (e.g. "mp3").
	MediaFormat string `json:"media_format"`
	// Language is the expected language of the audio (e.g. "en-US").
	Language string `json:"language"`
	// OutputBucket is where the provider writes the transcript artifact.
	OutputBucket string `json:"output_bucket,omitempty"`
}
