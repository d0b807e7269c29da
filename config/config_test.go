package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unsetEnv removes a variable for the duration of the test. t.Setenv is used
// first so the original value is restored on cleanup.
func unsetEnv(t *testing.T, key string) {
	t.Helper()

	t.Setenv(key, "")
	os.Unsetenv(key)
}

func Test_Load_Defaults(t *testing.T) {
	unsetEnv(t, "EVENTLOG_STORAGE")
	unsetEnv(t, "EVENTLOG_PATH")
	unsetEnv(t, "EVENTLOG_MAX_LOGS")

	env, err := Load()
	require.NoError(t, err)

	assert.Equal(t, StorageBackendFile, env.StorageBackend)
	assert.Equal(t, "eventlogs.json", env.BlobPath)
	assert.Equal(t, 1000, env.MaxLogs)
}

func Test_Load_UnknownBackendRejected(t *testing.T) {
	t.Setenv("EVENTLOG_STORAGE", "carrier-pigeon")

	_, err := Load()
	assert.Error(t, err)
}

func Test_Load_ValkeyBackendRequiresAddress(t *testing.T) {
	t.Setenv("EVENTLOG_STORAGE", StorageBackendValkey)
	t.Setenv("VALKEY_HOST", "")
	t.Setenv("VALKEY_PORT", "")

	_, err := Load()
	require.Error(t, err)

	t.Setenv("VALKEY_HOST", "localhost")
	t.Setenv("VALKEY_PORT", "6379")

	env, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "localhost", env.ValkeyHost)
}

func Test_Load_PostgresBackendRequiresDsn(t *testing.T) {
	t.Setenv("EVENTLOG_STORAGE", StorageBackendPostgres)
	t.Setenv("DATABASE_DSN", "")

	_, err := Load()
	require.Error(t, err)

	t.Setenv("DATABASE_DSN", "host=localhost user=app dbname=app")

	env, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "host=localhost user=app dbname=app", env.DatabaseDsn)
}

func Test_Load_RejectsNonPositiveMaxLogs(t *testing.T) {
	t.Setenv("EVENTLOG_STORAGE", StorageBackendMemory)
	t.Setenv("EVENTLOG_MAX_LOGS", "0")

	_, err := Load()
	assert.Error(t, err)
}
