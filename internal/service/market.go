package service

import (
	"github.com/efreitasn/matchbook/internal/domain"
	"github.com/efreitasn/matchbook/internal/engine"
)

// PriceSummary is the reference price derived from recent fills.
type PriceSummary struct {
	LastPrice     *int64 // nil until the first fill
	VWAP          *int64 // nil until the first fill
	Window        int    // fills considered for VWAP
	FillsInWindow int
}

// MarketService derives market data from the fills and book of an
// OrderService.
type MarketService struct {
	orders    *OrderService
	vwapFills int
}

// NewMarketService creates a MarketService that computes VWAP over the
// most recent vwapFills fills.
func NewMarketService(orders *OrderService, vwapFills int) *MarketService {
	if vwapFills < 1 {
		vwapFills = 1
	}
	return &MarketService{orders: orders, vwapFills: vwapFills}
}

// Price returns the last fill price and the volume-weighted average price
// over the window. VWAP is truncated to whole ticks.
func (s *MarketService) Price() PriceSummary {
	fills := s.orders.RecentFills(s.vwapFills)

	resp := PriceSummary{Window: s.vwapFills, FillsInWindow: len(fills)}
	if len(fills) == 0 {
		return resp
	}

	last := fills[len(fills)-1].Price
	resp.LastPrice = &last

	var sumPriceQty, sumQty int64
	for _, f := range fills {
		sumPriceQty += f.Notional()
		sumQty += f.Quantity
	}
	vwap := sumPriceQty / sumQty
	resp.VWAP = &vwap
	return resp
}

// Quote estimates the execution of an aggressive order of quantity on side
// against the current book without placing it.
func (s *MarketService) Quote(side domain.Side, quantity int64) (engine.QuoteResult, error) {
	if !side.Valid() {
		return engine.QuoteResult{}, &domain.ValidationError{
			Field:   "side",
			Message: "side must be 'bid' or 'ask'",
			Err:     domain.ErrInvalidSide,
		}
	}
	if quantity <= 0 {
		return engine.QuoteResult{}, &domain.ValidationError{
			Field:   "quantity",
			Message: "quantity must be a positive integer",
			Err:     domain.ErrInvalidQuantity,
		}
	}
	return s.orders.Quote(side, quantity), nil
}
