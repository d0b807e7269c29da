// Package storage persists the serialized event-log set as a single opaque
// blob under a fixed key. Backends differ only in where that one blob lives.
package storage

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"logpanel/config"
)

// DefaultBlobKey is the fixed identifier the serialized log set is stored under.
const DefaultBlobKey = "eventLogs"

// ErrBlobNotFound is returned by Load when nothing has been saved yet.
var ErrBlobNotFound = errors.New("blob not found")

type BlobStore interface {
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, data []byte) error
	Close() error
}

// Open builds the BlobStore selected by the environment configuration.
func Open(cfg config.EnvVariables) (BlobStore, error) {
	switch cfg.StorageBackend {
	case config.StorageBackendMemory:
		return NewMemoryBlobStore(), nil
	case config.StorageBackendFile:
		return NewFileBlobStore(cfg.BlobPath), nil
	case config.StorageBackendValkey:
		return NewValkeyBlobStore(cfg, DefaultBlobKey)
	case config.StorageBackendPostgres:
		return NewPostgresBlobStore(cfg.DatabaseDsn, DefaultBlobKey)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
}

// MemoryBlobStore keeps the blob in process memory. Used in tests and for
// sessions that do not want durability.
type MemoryBlobStore struct {
	mu   sync.RWMutex
	data []byte
}

func NewMemoryBlobStore() *MemoryBlobStore {
	return &MemoryBlobStore{}
}

func (s *MemoryBlobStore) Load(context.Context) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.data == nil {
		return nil, ErrBlobNotFound
	}

	out := make([]byte, len(s.data))
	copy(out, s.data)

	return out, nil
}

func (s *MemoryBlobStore) Save(_ context.Context, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data = make([]byte, len(data))
	copy(s.data, data)

	return nil
}

func (s *MemoryBlobStore) Close() error {
	return nil
}
