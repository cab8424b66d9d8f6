package engine

import (
	"github.com/google/uuid"

	"github.com/efreitasn/matchbook/internal/domain"
)

// Stats is a point-in-time snapshot of the matcher's counters and book
// shape.
type Stats struct {
	OrdersProcessed uint64
	TotalFills      uint64
	TotalVolume     uint64
	BidLevels       int
	AskLevels       int
	RestingOrders   int
}

// Option configures a Matcher.
type Option func(*Matcher)

// WithFillIDs overrides the generator used for Fill.FillID. The default
// generates random UUIDs.
func WithFillIDs(gen func() string) Option {
	return func(m *Matcher) {
		m.newFillID = gen
	}
}

// WithFillCapacity sets the initial capacity of the fill buffer.
func WithFillCapacity(n int) Option {
	return func(m *Matcher) {
		m.fills = make([]domain.Fill, 0, n)
	}
}

// Matcher is a continuous price-time priority matching engine for a single
// two-sided market.
//
// A Matcher is not safe for concurrent use. Callers that submit from more
// than one goroutine must serialize access themselves.
type Matcher struct {
	bids    *bookSide
	asks    *bookSide
	resting map[uint64]*domain.Order // order_id → resting order
	fills   []domain.Fill

	ordersProcessed uint64
	totalFills      uint64
	totalVolume     uint64

	newFillID func() string
}

// NewMatcher creates a Matcher with an empty book.
func NewMatcher(opts ...Option) *Matcher {
	m := &Matcher{
		bids:      newBookSide(bidLess),
		asks:      newBookSide(askLess),
		resting:   make(map[uint64]*domain.Order),
		fills:     make([]domain.Fill, 0, 1024),
		newFillID: func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// ProcessOrder matches an incoming order against the opposite side of the
// book and rests any unfilled remainder on its own side.
//
// The caller must ensure order.Quantity > 0, order.Filled == 0 and that
// order.ID is not already resting. These preconditions are not checked.
// The order is copied; the caller's value is never retained.
//
// The returned slice is owned by the Matcher and is only valid until the
// next call to ProcessOrder.
func (m *Matcher) ProcessOrder(order domain.Order) []domain.Fill {
	m.fills = m.fills[:0]
	m.ordersProcessed++

	o := &order
	if o.Side == domain.SideBid {
		m.match(o, m.asks, func(levelPrice int64) bool { return levelPrice <= o.Price })
		m.rest(o, m.bids)
	} else {
		m.match(o, m.bids, func(levelPrice int64) bool { return levelPrice >= o.Price })
		m.rest(o, m.asks)
	}

	return m.fills
}

// match walks the opposite side from its best level inward while the
// incoming order has remaining quantity and the level is crossable.
func (m *Matcher) match(taker *domain.Order, opposite *bookSide, crosses func(int64) bool) {
	for taker.Remaining() > 0 {
		level := opposite.best()
		if level == nil || !crosses(level.Price) {
			return
		}

		for taker.Remaining() > 0 && !level.IsEmpty() {
			maker := level.Front()
			fillQty := min(taker.Remaining(), maker.Remaining())

			maker.Filled += fillQty
			taker.Filled += fillQty

			m.fills = append(m.fills, domain.Fill{
				FillID:    m.newFillID(),
				MakerID:   maker.ID,
				TakerID:   taker.ID,
				TakerSide: taker.Side,
				Price:     maker.Price,
				Quantity:  fillQty,
			})

			level.Fill(fillQty)
			m.totalFills++
			m.totalVolume += uint64(fillQty)

			if maker.IsFilled() {
				level.PopFront()
				delete(m.resting, maker.ID)
			}
		}

		if level.IsEmpty() {
			opposite.remove(level.Price)
		}
	}
}

// rest inserts the remainder of o into side at its own price.
func (m *Matcher) rest(o *domain.Order, side *bookSide) {
	if o.Remaining() <= 0 {
		return
	}
	side.getOrCreate(o.Price).Add(o)
	m.resting[o.ID] = o
}

// BestBid returns the highest resting bid price.
func (m *Matcher) BestBid() (int64, bool) {
	lvl := m.bids.best()
	if lvl == nil {
		return 0, false
	}
	return lvl.Price, true
}

// BestAsk returns the lowest resting ask price.
func (m *Matcher) BestAsk() (int64, bool) {
	lvl := m.asks.best()
	if lvl == nil {
		return 0, false
	}
	return lvl.Price, true
}

// Stats returns a snapshot of the matcher's counters. It never mutates
// state.
func (m *Matcher) Stats() Stats {
	return Stats{
		OrdersProcessed: m.ordersProcessed,
		TotalFills:      m.totalFills,
		TotalVolume:     m.totalVolume,
		BidLevels:       m.bids.len(),
		AskLevels:       m.asks.len(),
		RestingOrders:   len(m.resting),
	}
}

// Resting returns a copy of the resting order with the given ID.
func (m *Matcher) Resting(id uint64) (domain.Order, bool) {
	o, ok := m.resting[id]
	if !ok {
		return domain.Order{}, false
	}
	return *o, true
}

// TopBids returns up to n aggregated bid levels, highest price first.
func (m *Matcher) TopBids(n int) []LevelSnapshot {
	return m.bids.top(n)
}

// TopAsks returns up to n aggregated ask levels, lowest price first.
func (m *Matcher) TopAsks(n int) []LevelSnapshot {
	return m.asks.top(n)
}

// WalkBids visits resting bids in priority order (highest price, then
// oldest). fn receives a copy and returns false to stop.
func (m *Matcher) WalkBids(fn func(domain.Order) bool) {
	walkOrders(m.bids, fn)
}

// WalkAsks visits resting asks in priority order (lowest price, then
// oldest). fn receives a copy and returns false to stop.
func (m *Matcher) WalkAsks(fn func(domain.Order) bool) {
	walkOrders(m.asks, fn)
}

func walkOrders(side *bookSide, fn func(domain.Order) bool) {
	side.walk(func(lvl *PriceLevel) bool {
		return lvl.each(func(o *domain.Order) bool {
			return fn(*o)
		})
	})
}
