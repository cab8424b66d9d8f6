package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/efreitasn/matchbook/internal/domain"
	"github.com/efreitasn/matchbook/internal/service"
)

// OrderHandler handles HTTP requests for order endpoints.
type OrderHandler struct {
	orderSvc *service.OrderService
	tick     domain.TickSize
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(orderSvc *service.OrderService, tick domain.TickSize) *OrderHandler {
	return &OrderHandler{orderSvc: orderSvc, tick: tick}
}

// orderResponse is the JSON response for GET /orders/{order_id}.
type orderResponse struct {
	OrderID           uint64 `json:"order_id"`
	Side              string `json:"side"`
	Price             string `json:"price"`
	Quantity          int64  `json:"quantity"`
	FilledQuantity    int64  `json:"filled_quantity"`
	RemainingQuantity int64  `json:"remaining_quantity"`
	Sequence          uint64 `json:"sequence"`
	Status            string `json:"status"`
}

// GetOrder handles GET /orders/{order_id}.
func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(chi.URLParam(r, "order_id"), 10, 64)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "validation_error", "order_id must be a non-negative integer")
		return
	}

	order, resting, err := h.orderSvc.GetOrder(id)
	if err != nil {
		mapOrderError(w, err)
		return
	}

	status := "filled"
	if resting {
		status = "resting"
	}

	WriteJSON(w, http.StatusOK, orderResponse{
		OrderID:           order.ID,
		Side:              string(order.Side),
		Price:             h.tick.FormatTicks(order.Price),
		Quantity:          order.Quantity,
		FilledQuantity:    order.Filled,
		RemainingQuantity: order.Remaining(),
		Sequence:          order.Timestamp,
		Status:            status,
	})
}

// mapOrderError maps domain errors to HTTP responses for order endpoints.
func mapOrderError(w http.ResponseWriter, err error) {
	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) {
		WriteError(w, http.StatusBadRequest, "validation_error", validationErr.Message)
		return
	}

	switch {
	case errors.Is(err, domain.ErrOrderNotFound):
		WriteError(w, http.StatusNotFound, "order_not_found", err.Error())
	default:
		WriteError(w, http.StatusInternalServerError, "internal_error", "An unexpected error occurred")
	}
}
