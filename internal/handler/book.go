package handler

import (
	"net/http"

	"github.com/efreitasn/matchbook/internal/domain"
	"github.com/efreitasn/matchbook/internal/engine"
	"github.com/efreitasn/matchbook/internal/service"
)

const (
	defaultBookDepth = 10
	maxBookDepth     = 100
	defaultFillLimit = 50
	maxFillLimit     = 1000
)

// BookHandler handles HTTP requests for book, stats, and fill endpoints.
type BookHandler struct {
	orderSvc *service.OrderService
	tick     domain.TickSize
}

// NewBookHandler creates a new BookHandler.
func NewBookHandler(orderSvc *service.OrderService, tick domain.TickSize) *BookHandler {
	return &BookHandler{orderSvc: orderSvc, tick: tick}
}

// statsResponse is the JSON response for GET /stats.
type statsResponse struct {
	OrdersProcessed uint64  `json:"orders_processed"`
	TotalFills      uint64  `json:"total_fills"`
	TotalVolume     uint64  `json:"total_volume"`
	BidLevels       int     `json:"bid_levels"`
	AskLevels       int     `json:"ask_levels"`
	RestingOrders   int     `json:"resting_orders"`
	BestBid         *string `json:"best_bid"`
	BestAsk         *string `json:"best_ask"`
}

// bookLevelResponse is a single price level in the book response.
type bookLevelResponse struct {
	Price         string `json:"price"`
	TotalQuantity int64  `json:"total_quantity"`
	OrderCount    int    `json:"order_count"`
}

// bookResponse is the JSON response for GET /book.
type bookResponse struct {
	Bids   []bookLevelResponse `json:"bids"`
	Asks   []bookLevelResponse `json:"asks"`
	Spread *string             `json:"spread"`
}

// fillResponse is a single fill in the GET /fills response.
type fillResponse struct {
	FillID    string `json:"fill_id"`
	MakerID   uint64 `json:"maker_id"`
	TakerID   uint64 `json:"taker_id"`
	TakerSide string `json:"taker_side"`
	Price     string `json:"price"`
	Quantity  int64  `json:"quantity"`
	Notional  string `json:"notional"`
}

// GetStats handles GET /stats.
func (h *BookHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats := h.orderSvc.Stats()

	resp := statsResponse{
		OrdersProcessed: stats.OrdersProcessed,
		TotalFills:      stats.TotalFills,
		TotalVolume:     stats.TotalVolume,
		BidLevels:       stats.BidLevels,
		AskLevels:       stats.AskLevels,
		RestingOrders:   stats.RestingOrders,
	}
	if bb, ok := h.orderSvc.BestBid(); ok {
		resp.BestBid = h.price(bb)
	}
	if ba, ok := h.orderSvc.BestAsk(); ok {
		resp.BestAsk = h.price(ba)
	}

	WriteJSON(w, http.StatusOK, resp)
}

// GetBook handles GET /book.
func (h *BookHandler) GetBook(w http.ResponseWriter, r *http.Request) {
	depth, err := queryInt(r, "depth", defaultBookDepth, 1, maxBookDepth)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	book := h.orderSvc.Depth(depth)
	resp := bookResponse{
		Bids: h.levels(book.Bids),
		Asks: h.levels(book.Asks),
	}
	if len(book.Bids) > 0 && len(book.Asks) > 0 {
		resp.Spread = h.price(book.Asks[0].Price - book.Bids[0].Price)
	}

	WriteJSON(w, http.StatusOK, resp)
}

// GetFills handles GET /fills.
func (h *BookHandler) GetFills(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit", defaultFillLimit, 1, maxFillLimit)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	fills := h.orderSvc.RecentFills(limit)
	resp := make([]fillResponse, len(fills))
	for i, f := range fills {
		resp[i] = fillResponse{
			FillID:    f.FillID,
			MakerID:   f.MakerID,
			TakerID:   f.TakerID,
			TakerSide: string(f.TakerSide),
			Price:     h.tick.FormatTicks(f.Price),
			Quantity:  f.Quantity,
			Notional:  h.tick.FormatTicks(f.Notional()),
		}
	}

	WriteJSON(w, http.StatusOK, resp)
}

func (h *BookHandler) levels(snaps []engine.LevelSnapshot) []bookLevelResponse {
	result := make([]bookLevelResponse, len(snaps))
	for i, s := range snaps {
		result[i] = bookLevelResponse{
			Price:         h.tick.FormatTicks(s.Price),
			TotalQuantity: s.TotalQuantity,
			OrderCount:    s.OrderCount,
		}
	}
	return result
}

func (h *BookHandler) price(ticks int64) *string {
	s := h.tick.FormatTicks(ticks)
	return &s
}
