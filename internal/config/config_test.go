package config

import (
	"os"
	"path/filepath"
	"testing"
)

// noFiles is a FileSystem that finds nothing, forcing pure defaults.
type noFiles struct{}

func (noFiles) Exists(string) bool   { return false }
func (noFiles) LoadEnv(string) error { return nil }

func loadIsolated(t *testing.T, opts ...LoaderOption) (*Config, error) {
	t.Helper()
	opts = append(opts, WithFileSystem(noFiles{}))
	return Load(opts...)
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := loadIsolated(t)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Name != "insightd" {
		t.Errorf("Name = %q, want insightd", cfg.Name)
	}
	if cfg.Environment != "development" {
		t.Errorf("Environment = %q, want development", cfg.Environment)
	}
	if !cfg.Debug {
		t.Error("Debug should default on in development")
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Storage.Provider != "s3" {
		t.Errorf("Storage.Provider = %q, want s3", cfg.Storage.Provider)
	}
	if cfg.Transcription.Provider != "aws" {
		t.Errorf("Transcription.Provider = %q, want aws", cfg.Transcription.Provider)
	}
	if cfg.Logging.ServiceName != "insightd" {
		t.Errorf("Logging.ServiceName = %q, want insightd", cfg.Logging.ServiceName)
	}
}

func TestLoadFromYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	yaml := `
name: insightd
environment: production
server:
  port: 9100
storage:
  region: eu-west-1
insights:
  similarity_threshold: 0.8
`
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(WithConfigFile(path), WithEnvFile(filepath.Join(dir, "absent.env")))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Environment != "production" {
		t.Errorf("Environment = %q, want production", cfg.Environment)
	}
	if cfg.Server.Port != 9100 {
		t.Errorf("Server.Port = %d, want 9100", cfg.Server.Port)
	}
	if cfg.Storage.Region != "eu-west-1" {
		t.Errorf("Storage.Region = %q, want eu-west-1", cfg.Storage.Region)
	}
	if cfg.Insights.SimilarityThreshold != 0.8 {
		t.Errorf("SimilarityThreshold = %v, want 0.8", cfg.Insights.SimilarityThreshold)
	}
}

func TestLoadEnvOverridesYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	if err := os.WriteFile(path, []byte("server:\n  port: 9100\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("SERVER_PORT", "9200")

	cfg, err := Load(WithConfigFile(path), WithEnvFile(filepath.Join(dir, "absent.env")))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Port != 9200 {
		t.Errorf("Server.Port = %d, want env override 9200", cfg.Server.Port)
	}
}

func TestLoadRejectsBadEnvironment(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	if err := os.WriteFile(path, []byte("environment: sandbox\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(WithConfigFile(path), WithEnvFile(filepath.Join(dir, "absent.env"))); err == nil {
		t.Error("Load() should reject an unknown environment")
	}
}

func TestEnvKeyVariants(t *testing.T) {
	got := envKeyVariants("STORAGE_ACCESS_KEY")
	want := map[string]bool{
		"storage_access_key": false,
		"storage.access.key": false,
		"storage.access_key": false,
	}
	for _, v := range got {
		if _, ok := want[v]; ok {
			want[v] = true
		}
	}
	for k, seen := range want {
		if !seen {
			t.Errorf("envKeyVariants missing %q (got %v)", k, got)
		}
	}
}
