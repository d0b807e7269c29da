package eventlog

import "time"

// AppendEntryRequest is the full-shape insert used by the typed helpers.
// Level and Category are normalized, never rejected.
type AppendEntryRequest struct {
	Message     string
	Level       LogLevel
	Category    LogCategory
	Details     map[string]any
	SubCategory string
	Duration    *int64
	StatusCode  *int
}

// Filter narrows GetFilteredLogs output. All predicates are conjunctive.
// Zero values mean "no constraint"; Limit == 0 disables pagination.
type Filter struct {
	Level       LogLevel
	Category    LogCategory
	SearchQuery string
	Limit       int
	Offset      int
}

// Stats summarizes the resident log set.
type Stats struct {
	Total         int                 `json:"total"`
	ByLevel       map[LogLevel]int    `json:"byLevel"`
	ByCategory    map[LogCategory]int `json:"byCategory"`
	OldestLogTime time.Time           `json:"oldestLogTime"`
	NewestLogTime time.Time           `json:"newestLogTime"`
}
