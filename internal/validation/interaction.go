package validation

import (
	"net/url"
	"strings"

	"github.com/skillsenselab/insightd/internal/errors"
)

// Expected shape of an interaction URL.
const (
	InteractionScheme = "s3"
	AudioExtension    = ".mp3"
)

// InteractionRef is a validated storage address of a source audio object.
type InteractionRef struct {
	Bucket string
	Key    string
}

// ParseInteractionURL validates an interaction URL of the form
// s3://bucket/key...final-segment.mp3 and resolves it into its storage
// address. All failures surface as a validation AppError.
func ParseInteractionURL(raw string) (*InteractionRef, *errors.AppError) {
	if strings.TrimSpace(raw) == "" {
		return nil, errors.MissingField("interaction_url")
	}

	u, err := url.Parse(raw)
	if err != nil || u.Scheme != InteractionScheme || u.Host == "" {
		return nil, errors.InvalidFormat("interaction_url", "s3://<bucket_name>/<file_name>"+AudioExtension)
	}

	key := strings.TrimPrefix(u.Path, "/")
	if key == "" {
		return nil, errors.InvalidFormat("interaction_url", "s3://<bucket_name>/<file_name>"+AudioExtension)
	}
	if !strings.HasSuffix(key, AudioExtension) {
		return nil, errors.InvalidInput("interaction_url", "the object key must end in "+AudioExtension).
			WithDetail("key", key)
	}

	if msg := bucketNameError(u.Host); msg != "" {
		return nil, errors.InvalidInput("interaction_url", "invalid bucket name: "+msg).
			WithDetail("bucket", u.Host)
	}

	return &InteractionRef{Bucket: u.Host, Key: key}, nil
}
