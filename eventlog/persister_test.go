package eventlog

import (
	"context"
	"sync"
	"testing"
	"time"

	"logpanel/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

// countingBlobStore wraps MemoryBlobStore and counts Save calls.
type countingBlobStore struct {
	storage.MemoryBlobStore

	mu    sync.Mutex
	saves int
}

func (s *countingBlobStore) Save(ctx context.Context, data []byte) error {
	s.mu.Lock()
	s.saves++
	s.mu.Unlock()

	return s.MemoryBlobStore.Save(ctx, data)
}

func (s *countingBlobStore) saveCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.saves
}

func Test_Persister_FlushesFinalStateOnClose(t *testing.T) {
	blob := storage.NewMemoryBlobStore()
	store := NewStore(blob, Options{
		WriteLimit: rate.Every(time.Hour),
	})

	for i := 0; i < 25; i++ {
		store.AddLog("entry", LogLevelInfo, LogCategorySystem, nil)
	}
	require.NoError(t, store.Close())

	reloaded := NewStore(blob, Options{})
	assert.Equal(t, 25, reloaded.Count())
}

func Test_Persister_CoalescesWrites(t *testing.T) {
	blob := &countingBlobStore{}
	store := NewStore(blob, Options{
		WriteLimit: rate.Every(time.Hour),
	})

	for i := 0; i < 100; i++ {
		store.AddLog("entry", LogLevelInfo, LogCategorySystem, nil)
	}
	require.NoError(t, store.Close())

	// One rate-limited flush at most while appending, plus the close flush:
	// far fewer writes than mutations.
	assert.LessOrEqual(t, blob.saveCount(), 3)
	assert.GreaterOrEqual(t, blob.saveCount(), 1)

	reloaded := NewStore(&blob.MemoryBlobStore, Options{})
	assert.Equal(t, 100, reloaded.Count())
}

func Test_Persister_ClearPersistsThroughCoalescing(t *testing.T) {
	blob := storage.NewMemoryBlobStore()
	store := NewStore(blob, Options{
		WriteLimit: rate.Every(time.Hour),
	})

	store.AddLog("entry", LogLevelInfo, LogCategorySystem, nil)
	store.ClearLogs()
	require.NoError(t, store.Close())

	reloaded := NewStore(blob, Options{})
	assert.Equal(t, 0, reloaded.Count())
}

func Test_Persister_SynchronousByDefault(t *testing.T) {
	blob := &countingBlobStore{}
	store := NewStore(blob, Options{})

	for i := 0; i < 10; i++ {
		store.AddLog("entry", LogLevelInfo, LogCategorySystem, nil)
	}

	// Without a write limit every mutation persists immediately.
	assert.Equal(t, 10, blob.saveCount())
	require.NoError(t, store.Close())
}
