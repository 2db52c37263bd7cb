package validation

import (
	"testing"

	"github.com/skillsenselab/insightd/internal/errors"
)

func TestValidatorRequired(t *testing.T) {
	v := New()
	v.Required("interaction_url", "s3://bucket/a.mp3")
	if v.HasErrors() {
		t.Error("expected no errors for valid input")
	}

	v2 := New()
	v2.Required("interaction_url", "")
	if !v2.HasErrors() {
		t.Error("expected error for empty required field")
	}

	v3 := New()
	v3.Required("interaction_url", "   ")
	if !v3.HasErrors() {
		t.Error("expected error for whitespace-only required field")
	}
}

func TestValidatorTrackerList(t *testing.T) {
	v := New()
	v.NonEmptyList("trackers", []string{}).EachNonBlank("trackers", nil)
	if !v.HasErrors() {
		t.Error("expected error for empty tracker list")
	}

	v2 := New()
	v2.NonEmptyList("trackers", []string{"", "ok"}).EachNonBlank("trackers", []string{"", "ok"})
	if !v2.HasErrors() {
		t.Error("expected error for blank tracker entry")
	}

	v3 := New()
	v3.NonEmptyList("trackers", []string{"pricing"}).EachNonBlank("trackers", []string{"pricing"})
	if v3.HasErrors() {
		t.Errorf("expected no errors, got %v", v3.Errors())
	}
}

func TestValidatorValidateReturnsAppError(t *testing.T) {
	v := New()
	v.Required("interaction_url", "")
	appErr := v.Validate()
	if appErr == nil {
		t.Fatal("expected AppError")
	}
	if appErr.Code != errors.ErrCodeInvalidInput {
		t.Errorf("expected INVALID_INPUT, got %s", appErr.Code)
	}
	fields, ok := appErr.Details["fields"].([]FieldError)
	if !ok || len(fields) != 1 {
		t.Errorf("expected one field error detail, got %v", appErr.Details["fields"])
	}
}

func TestValidBucketName(t *testing.T) {
	valid := []string{
		"mini-sedric-bucket-data",
		"my.bucket.01",
		"abc",
	}
	for _, name := range valid {
		if !ValidBucketName(name) {
			t.Errorf("expected %q to be valid", name)
		}
	}

	invalid := map[string]string{
		"Bad_Bucket":               "uppercase and underscore",
		"ab":                       "too short",
		"-leading":                 "leading punctuation",
		"trailing-":                "trailing punctuation",
		"double..dot":              "adjacent dots",
		"192.168.5.4":              "IP-literal shape",
		"xn--punycode":             "reserved prefix",
		"sthree-reserved":          "reserved prefix",
		"alias-s3alias":            "reserved suffix",
		"outpost--ol-s3":           "reserved suffix",
		"UPPER":                    "uppercase",
		"has space":                "whitespace",
		"waaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaay-too-long": "over 63 chars",
	}
	for name, why := range invalid {
		if ValidBucketName(name) {
			t.Errorf("expected %q to be invalid (%s)", name, why)
		}
	}
}

func TestParseInteractionURL(t *testing.T) {
	ref, appErr := ParseInteractionURL("s3://mini-sedric-bucket/media/sample.mp3")
	if appErr != nil {
		t.Fatalf("unexpected error: %v", appErr)
	}
	if ref.Bucket != "mini-sedric-bucket" {
		t.Errorf("unexpected bucket %q", ref.Bucket)
	}
	if ref.Key != "media/sample.mp3" {
		t.Errorf("unexpected key %q", ref.Key)
	}
}

func TestParseInteractionURLRejections(t *testing.T) {
	cases := map[string]string{
		"":                          "empty",
		"http://bucket/a.mp3":       "wrong scheme",
		"s3://bucket":               "missing key",
		"s3://bucket/a.wav":         "wrong extension",
		"s3://Bad_Bucket/x.mp3":     "invalid bucket characters",
		"s3://192.168.5.4/x.mp3":    "IP-shaped bucket",
		"s3://xn--reserved/x.mp3":   "reserved bucket prefix",
		"s3://double..dots/x.mp3":   "adjacent dots in bucket",
	}
	for raw, why := range cases {
		if _, appErr := ParseInteractionURL(raw); appErr == nil {
			t.Errorf("expected rejection for %q (%s)", raw, why)
		}
	}
}

func TestStructValidate(t *testing.T) {
	type req struct {
		InteractionURL string   `json:"interaction_url" validate:"required"`
		Trackers       []string `json:"trackers" validate:"required,min=1"`
	}

	if err := Validate(&req{InteractionURL: "s3://b/a.mp3", Trackers: []string{"x"}}); err != nil {
		t.Errorf("expected valid struct, got %v", err)
	}

	err := Validate(&req{})
	if err == nil {
		t.Fatal("expected validation error")
	}
	appErr, ok := errors.AsAppError(err)
	if !ok {
		t.Fatalf("expected AppError, got %T", err)
	}
	if appErr.Code != errors.ErrCodeInvalidInput {
		t.Errorf("expected INVALID_INPUT, got %s", appErr.Code)
	}
}
