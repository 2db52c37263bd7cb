package provider

import (
	"context"
	"testing"
)

type fakeProvider struct {
	name string
}

func (f *fakeProvider) Name() string                       { return f.name }
func (f *fakeProvider) IsAvailable(_ context.Context) bool { return true }

func TestRegistryCreate(t *testing.T) {
	reg := NewRegistry[*fakeProvider]()
	reg.RegisterFactory("fake", func(cfg map[string]any) (*fakeProvider, error) {
		name := "fake"
		if v, ok := cfg["name"].(string); ok {
			name = v
		}
		return &fakeProvider{name: name}, nil
	})

	p, err := reg.Create("fake", map[string]any{"name": "custom"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Name() != "custom" {
		t.Errorf("expected name 'custom', got %q", p.Name())
	}
}

func TestRegistryCreateUnknown(t *testing.T) {
	reg := NewRegistry[*fakeProvider]()
	if _, err := reg.Create("missing", nil); err == nil {
		t.Error("expected error for unregistered factory")
	}
}

func TestRegistryList(t *testing.T) {
	reg := NewRegistry[*fakeProvider]()
	reg.RegisterFactory("b", func(map[string]any) (*fakeProvider, error) { return &fakeProvider{name: "b"}, nil })
	reg.RegisterFactory("a", func(map[string]any) (*fakeProvider, error) { return &fakeProvider{name: "a"}, nil })

	names := reg.List()
	if len(names) != 2 || names[0] != "a" || names[1] != "b" {
		t.Errorf("expected sorted [a b], got %v", names)
	}
}
