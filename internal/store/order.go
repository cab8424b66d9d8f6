package store

import (
	"sync"

	"github.com/efreitasn/matchbook/internal/domain"
)

// OrderStore is a thread-safe in-memory record of every accepted order,
// keyed by order ID. Entries are never removed so that IDs can be checked
// for reuse.
type OrderStore struct {
	mu     sync.RWMutex
	orders map[uint64]*domain.Order
}

// NewOrderStore creates an empty OrderStore.
func NewOrderStore() *OrderStore {
	return &OrderStore{
		orders: make(map[uint64]*domain.Order),
	}
}

// Create records a copy of o. An existing record with the same ID is
// replaced.
func (s *OrderStore) Create(o domain.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.orders[o.ID] = &o
}

// Exists reports whether an order with the given ID was ever recorded.
func (s *OrderStore) Exists(id uint64) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.orders[id]
	return ok
}

// Get returns a copy of the order. It returns domain.ErrOrderNotFound
// if the order does not exist.
func (s *OrderStore) Get(id uint64) (domain.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	o, ok := s.orders[id]
	if !ok {
		return domain.Order{}, domain.ErrOrderNotFound
	}
	return *o, nil
}

// ApplyFill adds qty to the recorded filled quantity of order id. It
// returns domain.ErrOrderNotFound if the order does not exist.
func (s *OrderStore) ApplyFill(id uint64, qty int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.orders[id]
	if !ok {
		return domain.ErrOrderNotFound
	}
	o.Filled += qty
	return nil
}

// Len returns the number of recorded orders.
func (s *OrderStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.orders)
}
