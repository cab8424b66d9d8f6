package engine

import "github.com/efreitasn/matchbook/internal/domain"

// QuoteLevel is the quantity a quoted order would take at one price.
type QuoteLevel struct {
	Price    int64
	Quantity int64
}

// QuoteResult estimates what an aggressive order would execute against the
// current book.
type QuoteResult struct {
	QuantityAvailable int64
	FullyFillable     bool
	Notional          int64 // sum of price × quantity in ticks
	Levels            []QuoteLevel
}

// AveragePrice returns the quantity-weighted price in ticks, truncated, or
// false when nothing is available.
func (q QuoteResult) AveragePrice() (int64, bool) {
	if q.QuantityAvailable == 0 {
		return 0, false
	}
	return q.Notional / q.QuantityAvailable, true
}

// Quote walks the side opposite to side, best price first, and reports how
// much of quantity could execute and at which prices, with no price limit.
// It does not modify the book.
func (m *Matcher) Quote(side domain.Side, quantity int64) QuoteResult {
	opposite := m.asks
	if side == domain.SideAsk {
		opposite = m.bids
	}

	result := QuoteResult{Levels: []QuoteLevel{}}
	remaining := quantity
	opposite.walk(func(lvl *PriceLevel) bool {
		if remaining <= 0 {
			return false
		}
		qty := min(lvl.TotalQuantity, remaining)
		result.Levels = append(result.Levels, QuoteLevel{Price: lvl.Price, Quantity: qty})
		result.QuantityAvailable += qty
		result.Notional += lvl.Price * qty
		remaining -= qty
		return true
	})
	result.FullyFillable = remaining <= 0
	return result
}
