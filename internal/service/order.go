package service

import (
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/efreitasn/matchbook/internal/domain"
	"github.com/efreitasn/matchbook/internal/engine"
	"github.com/efreitasn/matchbook/internal/store"
)

// SubmitOrderRequest represents the input for order submission. The ID is
// assigned by the caller and must never be reused.
type SubmitOrderRequest struct {
	ID       uint64
	Side     domain.Side
	Price    int64 // ticks
	Quantity int64
	Filled   int64 // must be 0
}

// SubmitResult is the outcome of one submission.
type SubmitResult struct {
	Order   domain.Order // incoming order after matching
	Fills   []domain.Fill
	Resting bool // remainder was placed on the book
}

// Depth holds aggregated levels for both sides of the book.
type Depth struct {
	Bids []engine.LevelSnapshot
	Asks []engine.LevelSnapshot
}

// OrderService validates submissions and serializes all access to a single
// Matcher. It stamps each accepted order with the next submission sequence
// number, so FIFO priority reflects the order in which Submit calls
// acquired the lock.
type OrderService struct {
	mu      sync.Mutex
	matcher *engine.Matcher
	nextSeq uint64

	orderStore *store.OrderStore
	fillStore  *store.FillStore
	logger     *slog.Logger
}

// NewOrderService creates a new OrderService with the given dependencies.
// A nil logger discards log output.
func NewOrderService(
	matcher *engine.Matcher,
	orderStore *store.OrderStore,
	fillStore *store.FillStore,
	logger *slog.Logger,
) *OrderService {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &OrderService{
		matcher:    matcher,
		orderStore: orderStore,
		fillStore:  fillStore,
		logger:     logger,
	}
}

// Submit validates the request, runs it through the matching engine, and
// records the resulting fills and order progress.
func (s *OrderService) Submit(req SubmitOrderRequest) (*SubmitResult, error) {
	if err := validateRequest(req); err != nil {
		s.logger.Warn("order rejected",
			slog.Uint64("order_id", req.ID),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.orderStore.Exists(req.ID) {
		s.logger.Warn("order rejected",
			slog.Uint64("order_id", req.ID),
			slog.String("error", domain.ErrDuplicateOrderID.Error()),
		)
		return nil, &domain.ValidationError{
			Field:   "id",
			Message: fmt.Sprintf("order id %d has already been used", req.ID),
			Err:     domain.ErrDuplicateOrderID,
		}
	}

	s.nextSeq++
	order := domain.Order{
		ID:        req.ID,
		Side:      req.Side,
		Price:     req.Price,
		Quantity:  req.Quantity,
		Timestamp: s.nextSeq,
	}
	s.orderStore.Create(order)

	// The engine's buffer is reused on the next call, so copy it out.
	fills := append([]domain.Fill(nil), s.matcher.ProcessOrder(order)...)

	for _, f := range fills {
		order.Filled += f.Quantity
		if err := s.orderStore.ApplyFill(f.MakerID, f.Quantity); err != nil {
			return nil, fmt.Errorf("record fill for maker %d: %w", f.MakerID, err)
		}
	}
	if err := s.orderStore.ApplyFill(order.ID, order.Filled); err != nil {
		return nil, fmt.Errorf("record fill for taker %d: %w", order.ID, err)
	}
	s.fillStore.Append(fills...)

	_, resting := s.matcher.Resting(order.ID)

	s.logger.Debug("order processed",
		slog.Uint64("order_id", order.ID),
		slog.String("side", string(order.Side)),
		slog.Int64("price", order.Price),
		slog.Int64("quantity", order.Quantity),
		slog.Int64("filled", order.Filled),
		slog.Int("fills", len(fills)),
		slog.Bool("resting", resting),
	)

	return &SubmitResult{
		Order:   order,
		Fills:   fills,
		Resting: resting,
	}, nil
}

// validateRequest checks the fields the engine assumes are well formed.
func validateRequest(req SubmitOrderRequest) error {
	if !req.Side.Valid() {
		return &domain.ValidationError{
			Field:   "side",
			Message: "side must be 'bid' or 'ask'",
			Err:     domain.ErrInvalidSide,
		}
	}
	if req.Price <= 0 {
		return &domain.ValidationError{
			Field:   "price",
			Message: "price must be greater than 0",
			Err:     domain.ErrInvalidPrice,
		}
	}
	if req.Quantity <= 0 {
		return &domain.ValidationError{
			Field:   "quantity",
			Message: "quantity must be a positive integer",
			Err:     domain.ErrInvalidQuantity,
		}
	}
	if req.Filled != 0 {
		return &domain.ValidationError{
			Field:   "filled",
			Message: "new orders must not carry filled quantity",
			Err:     domain.ErrOrderAlreadyFilled,
		}
	}
	return nil
}

// GetOrder returns the latest known state of an order, including fills
// received while resting.
func (s *OrderService) GetOrder(id uint64) (domain.Order, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, err := s.orderStore.Get(id)
	if err != nil {
		return domain.Order{}, false, err
	}
	_, resting := s.matcher.Resting(id)
	return o, resting, nil
}

// BestBid returns the highest resting bid price.
func (s *OrderService) BestBid() (int64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.matcher.BestBid()
}

// BestAsk returns the lowest resting ask price.
func (s *OrderService) BestAsk() (int64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.matcher.BestAsk()
}

// Stats returns a snapshot of the engine's counters.
func (s *OrderService) Stats() engine.Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.matcher.Stats()
}

// Depth returns up to n aggregated levels per side.
func (s *OrderService) Depth(n int) Depth {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Depth{
		Bids: s.matcher.TopBids(n),
		Asks: s.matcher.TopAsks(n),
	}
}

// RecentFills returns up to n of the most recent fills, oldest first.
func (s *OrderService) RecentFills(n int) []domain.Fill {
	return s.fillStore.Recent(n)
}

// Quote estimates what an order of quantity on side would execute against
// the current book without placing it.
func (s *OrderService) Quote(side domain.Side, quantity int64) engine.QuoteResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.matcher.Quote(side, quantity)
}
