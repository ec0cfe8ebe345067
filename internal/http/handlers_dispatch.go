// Package httpx provides HTTP handlers and utilities for the rutaflow delivery API.
package httpx

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	apperrors "github.com/rutaflow/rutaflow/internal/errors"
	"github.com/rutaflow/rutaflow/internal/service"
)

// maxDispatchBodyBytes bounds the accepted optimization payload size.
const maxDispatchBodyBytes = 1 << 20

// DispatchHandlers provides HTTP handlers for route optimization dispatch
// and result polling.
type DispatchHandlers struct {
	Dispatch *service.DispatchService
	Results  *service.ResultService
}

// CreateDispatch handles POST /api/dispatch. The raw body is passed through
// to the service, which accepts both the enveloped and the flat payload
// shape.
func (h *DispatchHandlers) CreateDispatch(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxDispatchBodyBytes))
	if err != nil {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_body", Err: err})
		return
	}

	resp, err := h.Dispatch.Dispatch(r.Context(), body)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, resp)
}

// GetResult handles GET /api/result?id=<pending_route_id>.
func (h *DispatchHandlers) GetResult(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		WriteError(w, ErrorParams{
			Code:    http.StatusBadRequest,
			ErrCode: "missing_id",
			Err:     errors.New("id query parameter is required"),
		})
		return
	}

	resp, err := h.Results.Lookup(r.Context(), id)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, resp)
}

// ListPending handles GET /api/pending-routes, an operator view of recent
// submissions and their latest result status.
func (h *DispatchHandlers) ListPending(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		n, convErr := strconv.Atoi(v)
		if convErr != nil {
			WriteAppError(w, apperrors.ValidationField("limit", "limit must be an integer"))
			return
		}
		limit = n
	}

	infos, err := h.Dispatch.ListPending(r.Context(), limit)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, infos)
}
