package progress

import (
	"context"
	"sync"
)

// MemorySink keeps published updates in memory, for tests and for
// single-process runs without an external poller.
type MemorySink struct {
	mu      sync.Mutex
	history map[string][]Update
}

func NewMemorySink() *MemorySink {
	return &MemorySink{history: make(map[string][]Update)}
}

func (s *MemorySink) Publish(_ context.Context, searchID string, update Update) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history[searchID] = append(s.history[searchID], update)
	return nil
}

// Current returns the last published update for the search, if any.
func (s *MemorySink) Current(searchID string) (Update, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	updates := s.history[searchID]
	if len(updates) == 0 {
		return Update{}, false
	}
	return updates[len(updates)-1], true
}

// History returns a copy of all published updates for the search.
func (s *MemorySink) History(searchID string) []Update {
	s.mu.Lock()
	defer s.mu.Unlock()

	updates := s.history[searchID]
	out := make([]Update, len(updates))
	copy(out, updates)
	return out
}
