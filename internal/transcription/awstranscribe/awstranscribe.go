// Package awstranscribe implements transcription.Provider on the AWS
// Transcribe service.
package awstranscribe

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	awstranscribe "github.com/aws/aws-sdk-go-v2/service/transcribe"
	"github.com/aws/aws-sdk-go-v2/service/transcribe/types"

	"github.com/skillsenselab/insightd/internal/provider"
	"github.com/skillsenselab/insightd/internal/transcription"
)

// ProviderName is the registered name for the AWS Transcribe provider.
const ProviderName = "aws"

// Provider implements transcription.Provider using AWS Transcribe.
type Provider struct {
	client *awstranscribe.Client
}

// NewProvider creates a new AWS Transcribe provider from the given config.
func NewProvider(ctx context.Context, cfg *transcription.Config) (*Provider, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}

	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("transcription: load aws config: %w", err)
	}

	var svcOpts []func(*awstranscribe.Options)
	if cfg.Endpoint != "" {
		svcOpts = append(svcOpts, func(o *awstranscribe.Options) {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		})
	}

	return &Provider{client: awstranscribe.NewFromConfig(awsCfg, svcOpts...)}, nil
}

// Factory returns a provider.Factory that creates AWS Transcribe providers
// from a generic config map.
func Factory() provider.Factory[transcription.Provider] {
	return func(cfg map[string]any) (transcription.Provider, error) {
		tc := transcription.Config{Provider: ProviderName}
		if v, ok := cfg["region"].(string); ok {
			tc.Region = v
		}
		if v, ok := cfg["endpoint"].(string); ok {
			tc.Endpoint = v
		}
		if v, ok := cfg["access_key"].(string); ok {
			tc.AccessKey = v
		}
		if v, ok := cfg["secret_key"].(string); ok {
			tc.SecretKey = v
		}
		tc.ApplyDefaults()
		if err := tc.Validate(); err != nil {
			return nil, err
		}
		return NewProvider(context.Background(), &tc)
	}
}

// Name returns the provider name.
func (p *Provider) Name() string { return ProviderName }

// IsAvailable checks if the Transcribe endpoint is reachable.
func (p *Provider) IsAvailable(ctx context.Context) bool {
	_, err := p.client.ListTranscriptionJobs(ctx, &awstranscribe.ListTranscriptionJobsInput{
		MaxResults: aws.Int32(1),
	})
	return err == nil
}

// GetJob returns the current state of a transcription job.
func (p *Provider) GetJob(ctx context.Context, jobID string) (*transcription.Job, error) {
	out, err := p.client.GetTranscriptionJob(ctx, &awstranscribe.GetTranscriptionJobInput{
		TranscriptionJobName: aws.String(jobID),
	})
	if err != nil {
		if isJobNotFound(err) {
			return nil, transcription.ErrJobNotFound
		}
		return nil, fmt.Errorf("transcription: get job %s: %w", jobID, err)
	}

	job := &transcription.Job{
		ID:     jobID,
		Status: mapStatus(out.TranscriptionJob.TranscriptionJobStatus),
	}
	if out.TranscriptionJob.FailureReason != nil {
		job.FailureReason = *out.TranscriptionJob.FailureReason
	}
	return job, nil
}

// StartJob submits a new transcription job. It returns once AWS has accepted
// the job and never waits for completion.
func (p *Provider) StartJob(ctx context.Context, input transcription.StartJobInput) error {
	in := &awstranscribe.StartTranscriptionJobInput{
		TranscriptionJobName: aws.String(input.JobID),
		Media:                &types.Media{MediaFileUri: aws.String(input.MediaURI)},
		MediaFormat:          types.MediaFormat(input.MediaFormat),
		LanguageCode:         types.LanguageCode(input.Language),
	}
	if input.OutputBucket != "" {
		in.OutputBucketName = aws.String(input.OutputBucket)
	}

	if _, err := p.client.StartTranscriptionJob(ctx, in); err != nil {
		var conflict *types.ConflictException
		if stderrors.As(err, &conflict) {
			return transcription.ErrJobAlreadyExists
		}
		return fmt.Errorf("transcription: start job %s: %w", input.JobID, err)
	}
	return nil
}

// isJobNotFound reports whether the error means the job is unknown to AWS.
// Transcribe signals this either with NotFoundException or with a
// BadRequestException whose message says the job couldn't be found.
func isJobNotFound(err error) bool {
	var nfe *types.NotFoundException
	if stderrors.As(err, &nfe) {
		return true
	}
	var bre *types.BadRequestException
	if stderrors.As(err, &bre) && bre.Message != nil &&
		strings.Contains(*bre.Message, "couldn't be found") {
		return true
	}
	return false
}

func mapStatus(s types.TranscriptionJobStatus) transcription.JobStatus {
	switch s {
	case types.TranscriptionJobStatusQueued:
		return transcription.StatusQueued
	case types.TranscriptionJobStatusInProgress:
		return transcription.StatusInProgress
	case types.TranscriptionJobStatusCompleted:
		return transcription.StatusCompleted
	case types.TranscriptionJobStatusFailed:
		return transcription.StatusFailed
	default:
		return transcription.StatusInProgress
	}
}

// compile-time check
var _ transcription.Provider = (*Provider)(nil)
