package eventlog

import "github.com/google/uuid"

type ChangeType string

const (
	ChangeTypeAppended   ChangeType = "appended"
	ChangeTypeCleared    ChangeType = "cleared"
	ChangeTypeTrimmed    ChangeType = "trimmed"
	ChangeTypeVisibility ChangeType = "visibility"
)

// ChangeEvent is published to subscribers on every store mutation and on
// visibility toggles.
type ChangeEvent struct {
	Type     ChangeType
	EntryID  uuid.UUID // set for appends
	Removed  int       // set for trims
	ShowLogs bool      // set for visibility changes
}

const subscriberBuffer = 16

// Subscribe registers a listener for store change events. The returned
// cancel func releases the subscription and closes the channel. Delivery is
// best-effort: a subscriber that falls behind misses events rather than
// blocking writers.
func (s *Store) Subscribe() (<-chan ChangeEvent, func()) {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	ch := make(chan ChangeEvent, subscriberBuffer)
	id := s.nextSubID
	s.nextSubID++
	s.subscribers[id] = ch

	cancel := func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()

		if _, ok := s.subscribers[id]; ok {
			delete(s.subscribers, id)
			close(ch)
		}
	}

	return ch, cancel
}

func (s *Store) publish(event ChangeEvent) {
	s.subMu.RLock()
	defer s.subMu.RUnlock()

	for _, ch := range s.subscribers {
		select {
		case ch <- event:
		default:
		}
	}
}
