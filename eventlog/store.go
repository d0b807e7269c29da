// Package eventlog implements a capacity-bounded, persisted event-log store.
//
// Entries are appended through AddLog or the typed helpers on Service, held
// in memory keyed by a generated ID, trimmed to the capacity bound
// oldest-first, and persisted as one serialized blob after every mutation.
// Readers query through GetLogs / GetFilteredLogs; a view layer can follow
// changes through Subscribe and the ShowLogs visibility flag.
package eventlog

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"logpanel/internal/util/logger"
	"logpanel/storage"

	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

// MaxLogs is the default capacity bound of the store.
const MaxLogs = 1000

// Options tunes a Store. The zero value gives the default capacity with a
// synchronous blob write after every mutation.
type Options struct {
	// MaxLogs overrides the capacity bound. Values <= 0 mean MaxLogs.
	MaxLogs int
	// Logger receives diagnostics. Defaults to the shared process logger.
	Logger *slog.Logger
	// WriteLimit, when positive, coalesces blob writes through a background
	// persister capped at this rate instead of writing on every mutation.
	WriteLimit rate.Limit
	// WriteBurst is the burst for WriteLimit. Values <= 0 mean 1.
	WriteBurst int
}

type storedEntry struct {
	entry LogEntry
	seq   uint64 // insertion order, tie-break for equal timestamps
}

// Store is the capacity-bounded, persisted event-log store. All methods are
// safe for concurrent use; the mutex is held across mutate + persist so the
// blob always reflects a consistent snapshot.
type Store struct {
	mu       sync.Mutex
	entries  map[uuid.UUID]*storedEntry
	seq      uint64
	maxLogs  int
	showLogs bool

	blob      storage.BlobStore
	persister *persister
	logger    *slog.Logger
	now       func() time.Time

	subMu       sync.RWMutex
	subscribers map[uint64]chan ChangeEvent
	nextSubID   uint64
}

// NewStore loads the persisted log set from blob (best-effort: a missing or
// corrupt blob yields an empty store, never an error) and returns a ready
// store.
func NewStore(blob storage.BlobStore, opts Options) *Store {
	maxLogs := opts.MaxLogs
	if maxLogs <= 0 {
		maxLogs = MaxLogs
	}

	log := opts.Logger
	if log == nil {
		log = logger.GetLogger()
	}

	s := &Store{
		entries:     make(map[uuid.UUID]*storedEntry),
		maxLogs:     maxLogs,
		showLogs:    true,
		blob:        blob,
		logger:      log,
		now:         time.Now,
		subscribers: make(map[uint64]chan ChangeEvent),
	}

	s.loadLogs()

	if opts.WriteLimit > 0 {
		s.persister = newPersister(s, opts.WriteLimit, opts.WriteBurst)
	}

	return s
}

// AddLog is the generic entry point. Invalid levels and categories are
// normalized to the defaults rather than rejected. Returns the generated ID.
func (s *Store) AddLog(message string, level LogLevel, category LogCategory, details map[string]any) uuid.UUID {
	return s.Append(AppendEntryRequest{
		Message:  message,
		Level:    level,
		Category: category,
		Details:  details,
	})
}

// Append inserts a fully-shaped entry. The store assigns identity and
// timestamp, enforces the capacity bound and persists the result.
func (s *Store) Append(req AppendEntryRequest) uuid.UUID {
	s.mu.Lock()

	id := uuid.New()
	s.seq++

	entry := LogEntry{
		ID:          id,
		Timestamp:   s.now().UTC(),
		Level:       req.Level.Normalize(),
		Message:     req.Message,
		Category:    req.Category.Normalize(),
		Details:     req.Details,
		SubCategory: req.SubCategory,
		Duration:    req.Duration,
		StatusCode:  req.StatusCode,
	}

	s.entries[id] = &storedEntry{entry: entry, seq: s.seq}
	removed := s.trimLogsLocked()
	s.persistLocked()
	s.mu.Unlock()

	s.publish(ChangeEvent{Type: ChangeTypeAppended, EntryID: id})
	if removed > 0 {
		s.publish(ChangeEvent{Type: ChangeTypeTrimmed, Removed: removed})
	}

	return id
}

// ClearLogs removes every entry and persists the empty state. Irreversible.
func (s *Store) ClearLogs() {
	s.mu.Lock()
	s.entries = make(map[uuid.UUID]*storedEntry)
	s.persistLocked()
	s.mu.Unlock()

	s.publish(ChangeEvent{Type: ChangeTypeCleared})
}

// GetLogs returns all resident entries, most recent first.
func (s *Store) GetLogs() []LogEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	ordered := s.sortedLocked()

	out := make([]LogEntry, len(ordered))
	for i, stored := range ordered {
		out[i] = stored.entry
	}

	return out
}

// GetFilteredLogs applies the filter conjunctively over GetLogs output.
// Filtering by LogLevelDebug matches every entry regardless of its level;
// the store keeps the historical behavior of the API it replaces.
func (s *Store) GetFilteredLogs(filter Filter) []LogEntry {
	logs := s.GetLogs()
	query := strings.ToLower(filter.SearchQuery)

	filtered := make([]LogEntry, 0, len(logs))
	for _, entry := range logs {
		if filter.Level != "" && filter.Level != LogLevelDebug && entry.Level != filter.Level {
			continue
		}

		if filter.Category != "" && entry.Category != filter.Category {
			continue
		}

		if query != "" && !matchesQuery(entry, query) {
			continue
		}

		filtered = append(filtered, entry)
	}

	return paginate(filtered, filter.Limit, filter.Offset)
}

// GetStats summarizes the resident log set by level and category.
func (s *Store) GetStats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	stats := Stats{
		Total:      len(s.entries),
		ByLevel:    make(map[LogLevel]int),
		ByCategory: make(map[LogCategory]int),
	}

	for _, stored := range s.entries {
		stats.ByLevel[stored.entry.Level]++
		stats.ByCategory[stored.entry.Category]++

		ts := stored.entry.Timestamp
		if stats.OldestLogTime.IsZero() || ts.Before(stats.OldestLogTime) {
			stats.OldestLogTime = ts
		}
		if stats.NewestLogTime.IsZero() || ts.After(stats.NewestLogTime) {
			stats.NewestLogTime = ts
		}
	}

	return stats
}

// TrimOlderThan removes entries whose timestamp is before cutoff and
// persists the result. Returns the number of removed entries.
func (s *Store) TrimOlderThan(cutoff time.Time) int {
	s.mu.Lock()

	removed := 0
	for id, stored := range s.entries {
		if stored.entry.Timestamp.Before(cutoff) {
			delete(s.entries, id)
			removed++
		}
	}

	if removed > 0 {
		s.persistLocked()
	}
	s.mu.Unlock()

	if removed > 0 {
		s.publish(ChangeEvent{Type: ChangeTypeTrimmed, Removed: removed})
	}

	return removed
}

// Count returns the number of resident entries.
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.entries)
}

// ShowLogs reports the UI visibility flag. The flag is observable but not
// part of the persisted model.
func (s *Store) ShowLogs() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.showLogs
}

func (s *Store) SetShowLogs(show bool) {
	s.mu.Lock()
	changed := s.showLogs != show
	s.showLogs = show
	s.mu.Unlock()

	if changed {
		s.publish(ChangeEvent{Type: ChangeTypeVisibility, ShowLogs: show})
	}
}

// Close flushes the coalescing persister when one is enabled. It does not
// close the underlying blob store.
func (s *Store) Close() error {
	if s.persister != nil {
		s.persister.close()
	}

	return nil
}

func (s *Store) loadLogs() {
	data, err := s.blob.Load(context.Background())
	if err != nil {
		if !errors.Is(err, storage.ErrBlobNotFound) {
			s.logger.Error("failed to load persisted logs, starting empty", "error", err)
		}
		return
	}

	var persisted map[uuid.UUID]*LogEntry
	if err := json.Unmarshal(data, &persisted); err != nil {
		s.logger.Error("failed to parse persisted logs, starting empty", "error", err)
		return
	}

	for id, entry := range persisted {
		if entry == nil {
			continue
		}

		entry.ID = id
		s.seq++
		s.entries[id] = &storedEntry{entry: *entry, seq: s.seq}
	}
}

// trimLogsLocked enforces the capacity bound, evicting the oldest entries by
// timestamp. A full re-sort per insertion is fine at this scale (n <= 1000).
func (s *Store) trimLogsLocked() int {
	if len(s.entries) <= s.maxLogs {
		return 0
	}

	ordered := s.sortedLocked()

	removed := 0
	for _, stored := range ordered[s.maxLogs:] {
		delete(s.entries, stored.entry.ID)
		removed++
	}

	return removed
}

// sortedLocked returns all resident entries, most recent first. Equal
// timestamps fall back to insertion order.
func (s *Store) sortedLocked() []*storedEntry {
	ordered := make([]*storedEntry, 0, len(s.entries))
	for _, stored := range s.entries {
		ordered = append(ordered, stored)
	}

	sort.Slice(ordered, func(i, j int) bool {
		if ordered[i].entry.Timestamp.Equal(ordered[j].entry.Timestamp) {
			return ordered[i].seq > ordered[j].seq
		}

		return ordered[i].entry.Timestamp.After(ordered[j].entry.Timestamp)
	})

	return ordered
}

// persistLocked serializes the whole log set and writes it through the blob
// store. Failures are logged and swallowed: the in-memory state stays the
// source of truth and persistence is best-effort.
func (s *Store) persistLocked() {
	if s.persister != nil {
		s.persister.markDirty()
		return
	}

	data, ok := s.serializeLocked()
	if !ok {
		return
	}

	if err := s.blob.Save(context.Background(), data); err != nil {
		s.logger.Error("failed to persist logs", "error", err)
	}
}

func (s *Store) serializeLocked() ([]byte, bool) {
	persisted := make(map[uuid.UUID]*LogEntry, len(s.entries))
	for id, stored := range s.entries {
		entry := stored.entry
		persisted[id] = &entry
	}

	data, err := json.Marshal(persisted)
	if err != nil {
		s.logger.Error("failed to serialize logs, skipping persistence", "error", err)
		return nil, false
	}

	return data, true
}

func matchesQuery(entry LogEntry, loweredQuery string) bool {
	if strings.Contains(strings.ToLower(entry.Message), loweredQuery) {
		return true
	}

	if entry.Details == nil {
		return false
	}

	serialized, err := json.Marshal(entry.Details)
	if err != nil {
		return false
	}

	return strings.Contains(strings.ToLower(string(serialized)), loweredQuery)
}

func paginate(logs []LogEntry, limit, offset int) []LogEntry {
	if limit <= 0 && offset <= 0 {
		return logs
	}

	if offset < 0 {
		offset = 0
	}
	if offset >= len(logs) {
		return []LogEntry{}
	}

	logs = logs[offset:]
	if limit > 0 && limit < len(logs) {
		logs = logs[:limit]
	}

	return logs
}
