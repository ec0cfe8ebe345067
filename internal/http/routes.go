package httpx

import (
	"log/slog"
	"net/http"
)

// RouterServices groups the services and settings the router needs.
type RouterServices struct {
	Dispatch *DispatchHandlers
	Orders   *OrderHandlers
	Logger   *slog.Logger

	// CORSAllowedOrigins lists origins allowed to call the API from a
	// browser. ["*"] allows any origin.
	CORSAllowedOrigins []string
}

// NewRouter builds the API router with the standard middleware chain
// applied outermost-first: Recover, Logging, CORS.
func NewRouter(services RouterServices) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", handleHealth)
	mux.HandleFunc("HEAD /healthz", handleHealth)

	registerDispatchRoutes(mux, services.Dispatch)
	registerOrderRoutes(mux, services.Orders)

	logger := services.Logger
	if logger == nil {
		logger = slog.Default()
	}

	var handler http.Handler = mux
	handler = CORS(services.CORSAllowedOrigins)(handler)
	handler = Logging(logger)(handler)
	handler = Recover(logger)(handler)
	return handler
}

// handleHealth answers readiness/liveness probes.
func handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodHead {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func registerDispatchRoutes(mux *http.ServeMux, h *DispatchHandlers) {
	mux.HandleFunc("POST /api/dispatch", h.CreateDispatch)
	mux.HandleFunc("GET /api/result", h.GetResult)
	mux.HandleFunc("GET /api/pending-routes", h.ListPending)
}

func registerOrderRoutes(mux *http.ServeMux, h *OrderHandlers) {
	mux.HandleFunc("POST /api/orders", h.Create)
	mux.HandleFunc("GET /api/orders", h.List)
	mux.HandleFunc("PUT /api/orders/{id}", h.UpdateStatus)
	mux.HandleFunc("GET /api/orders/{id}/track", h.Track)
	mux.HandleFunc("GET /api/driver/route", h.DriverRoute)
}
