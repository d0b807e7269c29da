package storage

import (
	"context"
	"crypto/tls"
	"fmt"
	"time"

	"logpanel/config"

	"github.com/valkey-io/valkey-go"
)

const defaultValkeyTimeout = 10 * time.Second

// ValkeyBlobStore keeps the blob in a single Valkey string key.
type ValkeyBlobStore struct {
	client  valkey.Client
	key     string
	timeout time.Duration
}

func NewValkeyBlobStore(cfg config.EnvVariables, key string) (*ValkeyBlobStore, error) {
	options := valkey.ClientOption{
		InitAddress: []string{cfg.ValkeyHost + ":" + cfg.ValkeyPort},
		Password:    cfg.ValkeyPassword,
		Username:    cfg.ValkeyUsername,
	}

	if cfg.ValkeyIsSsl {
		options.TLSConfig = &tls.Config{
			ServerName: cfg.ValkeyHost,
		}
	}

	client, err := valkey.NewClient(options)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to valkey: %w", err)
	}

	return &ValkeyBlobStore{
		client:  client,
		key:     key,
		timeout: defaultValkeyTimeout,
	}, nil
}

func (s *ValkeyBlobStore) Load(ctx context.Context) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	result := s.client.Do(ctx, s.client.B().Get().Key(s.key).Build())
	if result.Error() != nil {
		if result.Error() == valkey.Nil {
			return nil, ErrBlobNotFound
		}

		return nil, fmt.Errorf("failed to load blob from valkey: %w", result.Error())
	}

	return result.AsBytes()
}

func (s *ValkeyBlobStore) Save(ctx context.Context, data []byte) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	result := s.client.Do(ctx, s.client.B().Set().Key(s.key).Value(string(data)).Build())
	if result.Error() != nil {
		return fmt.Errorf("failed to save blob to valkey: %w", result.Error())
	}

	return nil
}

func (s *ValkeyBlobStore) Close() error {
	s.client.Close()
	return nil
}
