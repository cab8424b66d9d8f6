package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/efreitasn/matchbook/internal/domain"
	"github.com/efreitasn/matchbook/internal/service"
)

// MarketHandler handles HTTP requests for price and quote endpoints.
type MarketHandler struct {
	marketSvc *service.MarketService
	tick      domain.TickSize
}

// NewMarketHandler creates a new MarketHandler.
func NewMarketHandler(marketSvc *service.MarketService, tick domain.TickSize) *MarketHandler {
	return &MarketHandler{marketSvc: marketSvc, tick: tick}
}

// priceResponse is the JSON response for GET /price.
type priceResponse struct {
	LastPrice     *string `json:"last_price"`
	VWAP          *string `json:"vwap"`
	Window        int     `json:"window"`
	FillsInWindow int     `json:"fills_in_window"`
}

// quoteLevelResponse is a single price level in the quote response.
type quoteLevelResponse struct {
	Price    string `json:"price"`
	Quantity int64  `json:"quantity"`
}

// quoteResponse is the JSON response for GET /quote.
type quoteResponse struct {
	Side              string               `json:"side"`
	QuantityRequested int64                `json:"quantity_requested"`
	QuantityAvailable int64                `json:"quantity_available"`
	FullyFillable     bool                 `json:"fully_fillable"`
	EstimatedAvgPrice *string              `json:"estimated_average_price"`
	EstimatedTotal    *string              `json:"estimated_total"`
	PriceLevels       []quoteLevelResponse `json:"price_levels"`
}

// GetPrice handles GET /price.
func (h *MarketHandler) GetPrice(w http.ResponseWriter, r *http.Request) {
	price := h.marketSvc.Price()

	resp := priceResponse{
		Window:        price.Window,
		FillsInWindow: price.FillsInWindow,
	}
	if price.LastPrice != nil {
		s := h.tick.FormatTicks(*price.LastPrice)
		resp.LastPrice = &s
	}
	if price.VWAP != nil {
		s := h.tick.FormatTicks(*price.VWAP)
		resp.VWAP = &s
	}

	WriteJSON(w, http.StatusOK, resp)
}

// GetQuote handles GET /quote.
func (h *MarketHandler) GetQuote(w http.ResponseWriter, r *http.Request) {
	side := domain.Side(r.URL.Query().Get("side"))

	quantity, err := strconv.ParseInt(r.URL.Query().Get("quantity"), 10, 64)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "validation_error", "quantity must be a positive integer")
		return
	}

	quote, err := h.marketSvc.Quote(side, quantity)
	if err != nil {
		var validationErr *domain.ValidationError
		if errors.As(err, &validationErr) {
			WriteError(w, http.StatusBadRequest, "validation_error", validationErr.Message)
			return
		}
		WriteError(w, http.StatusInternalServerError, "internal_error", "An unexpected error occurred")
		return
	}

	levels := make([]quoteLevelResponse, len(quote.Levels))
	for i, lvl := range quote.Levels {
		levels[i] = quoteLevelResponse{
			Price:    h.tick.FormatTicks(lvl.Price),
			Quantity: lvl.Quantity,
		}
	}

	resp := quoteResponse{
		Side:              string(side),
		QuantityRequested: quantity,
		QuantityAvailable: quote.QuantityAvailable,
		FullyFillable:     quote.FullyFillable,
		PriceLevels:       levels,
	}
	if avg, ok := quote.AveragePrice(); ok {
		s := h.tick.FormatTicks(avg)
		resp.EstimatedAvgPrice = &s
		total := h.tick.FormatTicks(quote.Notional)
		resp.EstimatedTotal = &total
	}

	WriteJSON(w, http.StatusOK, resp)
}
