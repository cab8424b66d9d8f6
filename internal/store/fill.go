package store

import (
	"sync"

	"github.com/efreitasn/matchbook/internal/domain"
)

// FillStore is a thread-safe in-memory log of fills. Fills are kept in
// execution order; once more than capacity fills have been appended the
// oldest are discarded.
type FillStore struct {
	mu       sync.RWMutex
	fills    []domain.Fill
	capacity int
	total    uint64 // fills ever appended, including discarded ones
}

// NewFillStore creates an empty FillStore that retains at most capacity
// fills. A capacity below 1 is treated as 1.
func NewFillStore(capacity int) *FillStore {
	if capacity < 1 {
		capacity = 1
	}
	return &FillStore{
		fills:    make([]domain.Fill, 0, min(capacity, 1024)),
		capacity: capacity,
	}
}

// Append adds fills to the end of the log.
func (s *FillStore) Append(fills ...domain.Fill) {
	if len(fills) == 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.fills = append(s.fills, fills...)
	s.total += uint64(len(fills))
	if over := len(s.fills) - s.capacity; over > 0 {
		n := copy(s.fills, s.fills[over:])
		s.fills = s.fills[:n]
	}
}

// Recent returns up to n of the most recent fills, oldest first.
// Returns an empty slice if there are none.
func (s *FillStore) Recent(n int) []domain.Fill {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if n <= 0 {
		return []domain.Fill{}
	}
	start := len(s.fills) - n
	if start < 0 {
		start = 0
	}

	// Return a copy to avoid callers mutating the internal slice.
	result := make([]domain.Fill, len(s.fills)-start)
	copy(result, s.fills[start:])
	return result
}

// Len returns the number of retained fills.
func (s *FillStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.fills)
}

// Total returns the number of fills ever appended.
func (s *FillStore) Total() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.total
}
