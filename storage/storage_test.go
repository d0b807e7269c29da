package storage

import (
	"context"
	"testing"

	"logpanel/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_MemoryBlobStore_LoadBeforeSave(t *testing.T) {
	store := NewMemoryBlobStore()

	_, err := store.Load(context.Background())
	assert.ErrorIs(t, err, ErrBlobNotFound)
}

func Test_MemoryBlobStore_SaveThenLoad(t *testing.T) {
	store := NewMemoryBlobStore()

	require.NoError(t, store.Save(context.Background(), []byte(`{"a":1}`)))

	data, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, string(data))

	// Overwrite replaces the whole blob.
	require.NoError(t, store.Save(context.Background(), []byte(`{}`)))
	data, err = store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, `{}`, string(data))
}

func Test_MemoryBlobStore_LoadReturnsCopy(t *testing.T) {
	store := NewMemoryBlobStore()
	require.NoError(t, store.Save(context.Background(), []byte("original")))

	data, err := store.Load(context.Background())
	require.NoError(t, err)
	data[0] = 'X'

	again, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "original", string(again))
}

func Test_Open_MemoryBackend(t *testing.T) {
	store, err := Open(config.EnvVariables{StorageBackend: config.StorageBackendMemory})
	require.NoError(t, err)
	assert.IsType(t, &MemoryBlobStore{}, store)
}

func Test_Open_FileBackend(t *testing.T) {
	store, err := Open(config.EnvVariables{
		StorageBackend: config.StorageBackendFile,
		BlobPath:       t.TempDir() + "/eventlogs.json",
	})
	require.NoError(t, err)
	assert.IsType(t, &FileBlobStore{}, store)
}

func Test_Open_UnknownBackend(t *testing.T) {
	_, err := Open(config.EnvVariables{StorageBackend: "carrier-pigeon"})
	assert.Error(t, err)
}
