package service

import (
	"context"

	"github.com/skillsenselab/insightd/internal/errors"
	"github.com/skillsenselab/insightd/internal/insight"
	"github.com/skillsenselab/insightd/internal/logger"
	"github.com/skillsenselab/insightd/internal/storage"
	"github.com/skillsenselab/insightd/internal/validation"
)

// Content types accepted for source audio. The transcription job is always
// submitted with the mp3 media format, so anything else is rejected up front.
var allowedContentTypes = map[string]bool{
	"audio/mpeg": true,
	"audio/mp3":  true,
}

// Request is one insight extraction request.
type Request struct {
	InteractionURL string
	Trackers       []string
	Strategy       insight.Strategy
}

// Result is the outcome of one request. JobID is always populated; Insights
// is non-nil only when Status is COMPLETED.
type Result struct {
	Status   Status
	JobID    string
	Insights []insight.Insight
}

// InsightService ties the pipeline together: request validation, the source
// media gate, transcription orchestration, and tracker extraction.
type InsightService struct {
	store        storage.Storage
	orchestrator *Orchestrator
	exact        insight.Extractor
	semantic     insight.Extractor
	log          *logger.Logger
}

// NewInsightService creates the service with explicit collaborators.
func NewInsightService(store storage.Storage, orch *Orchestrator, exact, semantic insight.Extractor, log *logger.Logger) *InsightService {
	return &InsightService{
		store:        store,
		orchestrator: orch,
		exact:        exact,
		semantic:     semantic,
		log:          log.WithComponent("insight_service"),
	}
}

// Process validates the request, checks the source object, advances the
// transcription job, and extracts insights once the transcript is ready.
//
// A FAILED transcription job surfaces as a TranscriptionFailed error so the
// transport layer renders it like every other client error.
func (s *InsightService) Process(ctx context.Context, req Request) (*Result, error) {
	ref, appErr := s.validate(req)
	if appErr != nil {
		return nil, appErr
	}

	if err := s.checkSourceObject(ctx, ref); err != nil {
		return nil, err
	}

	jobID := DeriveJobID(ref.Bucket, ref.Key)
	log := s.log.WithFields(map[string]interface{}{
		logger.FieldJobID:    jobID,
		logger.FieldBucket:   ref.Bucket,
		logger.FieldStrategy: string(req.Strategy),
	})

	status, transcript, err := s.orchestrator.Process(ctx, ref.Bucket, ref.Key)
	if err != nil {
		return nil, err
	}

	switch status {
	case StatusCompleted:
		insights, err := s.extractor(req.Strategy).Extract(ctx, transcript, req.Trackers)
		if err != nil {
			return nil, errors.ExternalServiceError("similarity", err)
		}
		log.Info("Insights extracted", map[string]interface{}{
			"tracker_count": len(req.Trackers),
			"insight_count": len(insights),
		})
		return &Result{Status: StatusCompleted, JobID: jobID, Insights: insights}, nil
	case StatusFailed:
		return nil, errors.TranscriptionFailed(jobID)
	default:
		return &Result{Status: status, JobID: jobID}, nil
	}
}

// validate applies field-level rules and parses the interaction URL.
func (s *InsightService) validate(req Request) (*validation.InteractionRef, *errors.AppError) {
	v := validation.New()
	v.Required("interaction_url", req.InteractionURL)
	v.NonEmptyList("trackers", req.Trackers)
	v.EachNonBlank("trackers", req.Trackers)
	if appErr := v.Validate(); appErr != nil {
		return nil, appErr
	}
	return validation.ParseInteractionURL(req.InteractionURL)
}

// checkSourceObject verifies the audio object exists and carries an accepted
// content type before any job is submitted for it.
func (s *InsightService) checkSourceObject(ctx context.Context, ref *validation.InteractionRef) error {
	info, err := s.store.Head(ctx, ref.Bucket, ref.Key)
	if err != nil {
		if appErr, ok := errors.AsAppError(err); ok && appErr.Code == errors.ErrCodeNotFound {
			return errors.StorageObject("the requested audio object does not exist").
				WithDetail(logger.FieldBucket, ref.Bucket).
				WithDetail(logger.FieldKey, ref.Key)
		}
		return errors.ExternalServiceError("storage", err)
	}
	if !allowedContentTypes[info.ContentType] {
		return errors.StorageObject("the requested object is not mp3 audio").
			WithDetail("content_type", info.ContentType)
	}
	return nil
}

// extractor selects the extraction strategy; exact is the default.
func (s *InsightService) extractor(strategy insight.Strategy) insight.Extractor {
	if strategy == insight.StrategySemantic {
		return s.semantic
	}
	return s.exact
}
