// Package s3 implements storage.Storage using Amazon S3 (or S3-compatible
// services such as MinIO and LocalStack).
package s3

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/skillsenselab/insightd/internal/errors"
	"github.com/skillsenselab/insightd/internal/storage"
)

// Storage implements storage.Storage backed by an S3 client.
type Storage struct {
	client *awss3.Client
}

// NewStorage creates a new S3 storage client from the given config.
func NewStorage(ctx context.Context, cfg *storage.Config) (*Storage, error) {
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
		return nil, fmt.Errorf("storage: load aws config: %w", err)
	}

	var s3Opts []func(*awss3.Options)
	if cfg.Endpoint != "" {
		s3Opts = append(s3Opts, func(o *awss3.Options) {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		})
	} else if cfg.ForcePathStyle {
		s3Opts = append(s3Opts, func(o *awss3.Options) {
			o.UsePathStyle = true
		})
	}

	return &Storage{client: awss3.NewFromConfig(awsCfg, s3Opts...)}, nil
}

// Head returns metadata for an S3 object without reading its body.
func (s *Storage) Head(ctx context.Context, bucket, key string) (*storage.ObjectInfo, error) {
	out, err := s.client.HeadObject(ctx, &awss3.HeadObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var nf *types.NotFound
		if stderrors.As(err, &nf) {
			return nil, errors.NotFound("object", key)
		}
		return nil, fmt.Errorf("storage: s3 head %s/%s: %w", bucket, key, err)
	}

	info := &storage.ObjectInfo{
		Key:         key,
		Size:        aws.ToInt64(out.ContentLength),
		ContentType: aws.ToString(out.ContentType),
	}
	if out.LastModified != nil {
		info.LastModified = *out.LastModified
	}
	return info, nil
}

// Download returns a reader for the S3 object at the given key.
func (s *Storage) Download(ctx context.Context, bucket, key string) (io.ReadCloser, error) {
	out, err := s.client.GetObject(ctx, &awss3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var nsk *types.NoSuchKey
		if stderrors.As(err, &nsk) {
			return nil, errors.NotFound("object", key)
		}
		return nil, fmt.Errorf("storage: s3 download %s/%s: %w", bucket, key, err)
	}
	return out.Body, nil
}

// compile-time check
var _ storage.Storage = (*Storage)(nil)
