// Package testutil provides an in-memory storage.Storage for tests.
package testutil

import (
	"bytes"
	"context"
	"io"
	"sync"
	"time"

	"github.com/skillsenselab/insightd/internal/errors"
	"github.com/skillsenselab/insightd/internal/storage"
)

// memObject holds a stored object's data and metadata.
type memObject struct {
	data        []byte
	contentType string
	modTime     time.Time
}

// MemoryStorage is a test double for storage.Storage backed by a map keyed
// by "bucket/key".
type MemoryStorage struct {
	mu      sync.RWMutex
	objects map[string]*memObject

	// HeadCalls and DownloadCalls record the keys each operation was
	// invoked with, in order.
	HeadCalls     []string
	DownloadCalls []string
}

// NewMemoryStorage creates an empty in-memory storage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{objects: make(map[string]*memObject)}
}

// Put seeds an object.
func (m *MemoryStorage) Put(bucket, key, contentType string, data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[bucket+"/"+key] = &memObject{
		data:        data,
		contentType: contentType,
		modTime:     time.Now(),
	}
}

// Head returns metadata for a seeded object.
func (m *MemoryStorage) Head(_ context.Context, bucket, key string) (*storage.ObjectInfo, error) {
	m.mu.Lock()
	m.HeadCalls = append(m.HeadCalls, bucket+"/"+key)
	obj, ok := m.objects[bucket+"/"+key]
	m.mu.Unlock()
	if !ok {
		return nil, errors.NotFound("object", key)
	}
	return &storage.ObjectInfo{
		Key:          key,
		Size:         int64(len(obj.data)),
		ContentType:  obj.contentType,
		LastModified: obj.modTime,
	}, nil
}

// Download returns the body of a seeded object.
func (m *MemoryStorage) Download(_ context.Context, bucket, key string) (io.ReadCloser, error) {
	m.mu.Lock()
	m.DownloadCalls = append(m.DownloadCalls, bucket+"/"+key)
	obj, ok := m.objects[bucket+"/"+key]
	m.mu.Unlock()
	if !ok {
		return nil, errors.NotFound("object", key)
	}
	return io.NopCloser(bytes.NewReader(obj.data)), nil
}

// compile-time check
var _ storage.Storage = (*MemoryStorage)(nil)
