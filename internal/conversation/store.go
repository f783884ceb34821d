package conversation

import (
	"sync"
)

// Store keeps the last MaxExchanges exchanges per user in memory.
// It is safe for concurrent use; state is lost on restart.
type Store struct {
	mu   sync.RWMutex
	logs map[string][]Exchange
	max  int
}

// NewStore returns an empty store bounded at MaxExchanges per user.
func NewStore() *Store {
	return &Store{logs: make(map[string][]Exchange), max: MaxExchanges}
}

// Recent returns up to n of the user's most recent exchanges, oldest first.
// The returned slice is a copy.
func (s *Store) Recent(userID string, n int) []Exchange {
	if n <= 0 {
		return []Exchange{}
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	log := s.logs[userID]
	if len(log) > n {
		log = log[len(log)-n:]
	}
	out := make([]Exchange, len(log))
	copy(out, log)
	return out
}

// Append records ex for userID, creating the log on first use and trimming
// it to the most recent exchanges.
func (s *Store) Append(userID string, ex Exchange) {
	s.mu.Lock()
	defer s.mu.Unlock()

	log := append(s.logs[userID], ex)
	if len(log) > s.max {
		trimmed := make([]Exchange, s.max)
		copy(trimmed, log[len(log)-s.max:])
		log = trimmed
	}
	s.logs[userID] = log
}

// Len reports how many exchanges are retained for userID.
func (s *Store) Len(userID string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.logs[userID])
}

// Users reports how many distinct users have a log.
func (s *Store) Users() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.logs)
}
