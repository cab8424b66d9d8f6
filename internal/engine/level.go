package engine

import "github.com/efreitasn/matchbook/internal/domain"

// compactThreshold is the number of consumed slots at the head of a level's
// queue after which the backing slice is compacted.
const compactThreshold = 32

// PriceLevel is a FIFO queue of resting orders sharing one price.
// TotalQuantity caches the sum of Remaining() over the queue.
type PriceLevel struct {
	Price         int64
	TotalQuantity int64

	orders []*domain.Order
	head   int
}

// NewPriceLevel creates an empty level at price.
func NewPriceLevel(price int64) *PriceLevel {
	return &PriceLevel{Price: price}
}

// Add appends an order to the tail of the queue. The order must have
// remaining quantity.
func (l *PriceLevel) Add(o *domain.Order) {
	l.orders = append(l.orders, o)
	l.TotalQuantity += o.Remaining()
}

// Front returns the oldest order, or nil if the level is empty.
func (l *PriceLevel) Front() *domain.Order {
	if l.IsEmpty() {
		return nil
	}
	return l.orders[l.head]
}

// PopFront removes and returns the oldest order, or nil if the level is
// empty. It does not touch TotalQuantity: a popped order is expected to be
// fully filled already.
func (l *PriceLevel) PopFront() *domain.Order {
	if l.IsEmpty() {
		return nil
	}
	o := l.orders[l.head]
	l.orders[l.head] = nil
	l.head++

	switch {
	case l.head == len(l.orders):
		l.orders = l.orders[:0]
		l.head = 0
	case l.head >= compactThreshold && l.head*2 >= len(l.orders):
		n := copy(l.orders, l.orders[l.head:])
		clear(l.orders[n:])
		l.orders = l.orders[:n]
		l.head = 0
	}
	return o
}

// Fill records qty matched against the level.
func (l *PriceLevel) Fill(qty int64) {
	l.TotalQuantity -= qty
}

// IsEmpty reports whether the queue holds no orders.
func (l *PriceLevel) IsEmpty() bool {
	return l.head == len(l.orders)
}

// Len returns the number of orders in the queue.
func (l *PriceLevel) Len() int {
	return len(l.orders) - l.head
}

// each visits queued orders oldest first until fn returns false.
func (l *PriceLevel) each(fn func(*domain.Order) bool) bool {
	for _, o := range l.orders[l.head:] {
		if !fn(o) {
			return false
		}
	}
	return true
}
