package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// EventLogBlob is the single row holding the serialized log set.
type EventLogBlob struct {
	Key       string    `json:"key"       gorm:"column:key;primaryKey"`
	Data      []byte    `json:"data"      gorm:"column:data"`
	UpdatedAt time.Time `json:"updatedAt" gorm:"column:updated_at"`
}

func (EventLogBlob) TableName() string {
	return "event_log_blobs"
}

// PostgresBlobStore keeps the blob in one keyed row of a Postgres table.
type PostgresBlobStore struct {
	db  *gorm.DB
	key string
}

func NewPostgresBlobStore(dsn string, key string) (*PostgresBlobStore, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.AutoMigrate(&EventLogBlob{}); err != nil {
		return nil, fmt.Errorf("failed to migrate blob table: %w", err)
	}

	return &PostgresBlobStore{db: db, key: key}, nil
}

func (s *PostgresBlobStore) Load(ctx context.Context) ([]byte, error) {
	var blob EventLogBlob

	err := s.db.WithContext(ctx).First(&blob, "key = ?", s.key).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBlobNotFound
		}

		return nil, fmt.Errorf("failed to load blob row: %w", err)
	}

	return blob.Data, nil
}

func (s *PostgresBlobStore) Save(ctx context.Context, data []byte) error {
	blob := EventLogBlob{
		Key:       s.key,
		Data:      data,
		UpdatedAt: time.Now().UTC(),
	}

	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
		}).
		Create(&blob).Error
	if err != nil {
		return fmt.Errorf("failed to save blob row: %w", err)
	}

	return nil
}

func (s *PostgresBlobStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}

	return sqlDB.Close()
}
