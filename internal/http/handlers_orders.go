package httpx

import (
	"errors"
	"net/http"
	"time"

	"github.com/rutaflow/rutaflow/internal/domain/model"
	"github.com/rutaflow/rutaflow/internal/service"
)

// OrderHandlers provides HTTP handlers for customer order operations.
type OrderHandlers struct {
	Svc *service.OrderService
}

// Create handles POST /api/orders.
func (h *OrderHandlers) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateOrderRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	order, err := h.Svc.Create(r.Context(), &req)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusCreated, order)
}

// List handles GET /api/orders with optional status and date filters.
func (h *OrderHandlers) List(w http.ResponseWriter, r *http.Request) {
	opts := model.OrderListOptions{
		Status: r.URL.Query().Get("status"),
		Date:   r.URL.Query().Get("date"),
	}

	orders, err := h.Svc.List(r.Context(), opts)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	if orders == nil {
		orders = []*model.Order{}
	}
	WriteJSON(w, http.StatusOK, orders)
}

// UpdateStatus handles PUT /api/orders/{id}.
func (h *OrderHandlers) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("order id is required")})
		return
	}

	var req model.UpdateOrderStatusRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	order, err := h.Svc.UpdateStatus(r.Context(), id, req)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, order)
}

// Track handles GET /api/orders/{id}/track.
func (h *OrderHandlers) Track(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("order id is required")})
		return
	}

	resp, err := h.Svc.Track(r.Context(), id)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, resp)
}

// DriverRoute handles GET /api/driver/route. The date defaults to today.
func (h *OrderHandlers) DriverRoute(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		date = time.Now().Format("2006-01-02")
	} else if _, err := time.Parse("2006-01-02", date); err != nil {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_date", Err: err})
		return
	}

	resp, err := h.Svc.DriverRoute(r.Context(), date)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, resp)
}
