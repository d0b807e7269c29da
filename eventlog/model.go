package eventlog

import (
	"time"

	"github.com/google/uuid"
)

// LogEntry is immutable once created. ID and Timestamp are assigned by the
// store at insertion time, never by the caller.
type LogEntry struct {
	ID          uuid.UUID      `json:"id"`
	Timestamp   time.Time      `json:"timestamp"`
	Level       LogLevel       `json:"level"`
	Message     string         `json:"message"`
	Category    LogCategory    `json:"category"`
	Details     map[string]any `json:"details,omitempty"`
	SubCategory string         `json:"subCategory,omitempty"`
	Duration    *int64         `json:"duration,omitempty"` // milliseconds
	StatusCode  *int           `json:"statusCode,omitempty"`
}
