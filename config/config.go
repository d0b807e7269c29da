package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Storage backend identifiers accepted in EVENTLOG_STORAGE.
const (
	StorageBackendMemory   = "memory"
	StorageBackendFile     = "file"
	StorageBackendValkey   = "valkey"
	StorageBackendPostgres = "postgres"
)

type EnvVariables struct {
	StorageBackend string `env:"EVENTLOG_STORAGE"  env-default:"file"`
	BlobPath       string `env:"EVENTLOG_PATH"     env-default:"eventlogs.json"`
	MaxLogs        int    `env:"EVENTLOG_MAX_LOGS" env-default:"1000"`
	// cache-backed persistence
	ValkeyHost     string `env:"VALKEY_HOST"`
	ValkeyPort     string `env:"VALKEY_PORT"`
	ValkeyUsername string `env:"VALKEY_USERNAME"`
	ValkeyPassword string `env:"VALKEY_PASSWORD"`
	ValkeyIsSsl    bool   `env:"VALKEY_IS_SSL"`
	// database-backed persistence
	DatabaseDsn string `env:"DATABASE_DSN"`
}

// Load reads configuration from the environment. A .env file is loaded first
// when one can be found in the working directory or any parent; a missing
// .env is not an error.
func Load() (EnvVariables, error) {
	var env EnvVariables

	loadDotEnv()

	if err := cleanenv.ReadEnv(&env); err != nil {
		return env, fmt.Errorf("configuration could not be loaded: %w", err)
	}

	if env.MaxLogs <= 0 {
		return env, fmt.Errorf("EVENTLOG_MAX_LOGS must be positive, got %d", env.MaxLogs)
	}

	switch env.StorageBackend {
	case StorageBackendMemory, StorageBackendFile:
	case StorageBackendValkey:
		if env.ValkeyHost == "" || env.ValkeyPort == "" {
			return env, fmt.Errorf("VALKEY_HOST and VALKEY_PORT are required for the valkey backend")
		}
	case StorageBackendPostgres:
		if env.DatabaseDsn == "" {
			return env, fmt.Errorf("DATABASE_DSN is required for the postgres backend")
		}
	default:
		return env, fmt.Errorf("unknown storage backend %q", env.StorageBackend)
	}

	return env, nil
}

func loadDotEnv() {
	cwd, err := os.Getwd()
	if err != nil {
		return
	}

	dir := cwd
	for {
		path := filepath.Join(dir, ".env")
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			return
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return
		}

		dir = parent
	}
}
