// Package core defines the repository and collaborator interfaces (ports in
// hexagonal architecture) between the service layer and its adapters.
// Service implementations depend on these interfaces, not on the concrete
// Postgres/Redis/HTTP implementations.
package core

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rutaflow/rutaflow/internal/domain/model"
)

// RouteRepository defines pending-route and route-result data operations.
type RouteRepository interface {
	// CreatePending durably inserts a pending route with status 'pending'
	// and returns the row with its server-generated id. The insert must be
	// visible before any trigger attempt references the id.
	CreatePending(ctx context.Context, payload json.RawMessage) (*model.PendingRoute, error)

	// LatestResult returns the newest result row for the given pending
	// route id, or (nil, nil) when no result exists yet. "No result yet"
	// is a normal state during the waiting window, not an error.
	LatestResult(ctx context.Context, pendingRouteID string) (*model.RouteResult, error)

	// ListPending returns recent pending routes (newest first) together
	// with the status of their latest result, if any.
	ListPending(ctx context.Context, limit int) ([]*model.PendingRouteInfo, error)

	// InsertResult writes a result row under the given correlation id.
	// The production writer is the external compute job; this method backs
	// the admin seeding tool and tests.
	InsertResult(ctx context.Context, params InsertRouteResultParams) error
}

// InsertRouteResultParams groups parameters for RouteRepository.InsertResult.
type InsertRouteResultParams struct {
	PendingRouteID string
	Status         model.ResultStatus
	Result         json.RawMessage
}

// OrderRepository defines customer order data operations.
type OrderRepository interface {
	Create(ctx context.Context, req *model.CreateOrderRequest) (*model.Order, error)
	List(ctx context.Context, opts model.OrderListOptions) ([]*model.Order, error)
	// UpdateStatus transitions an order and appends a status-history row in
	// the same transaction. Returns NotFound when the id is unknown.
	UpdateStatus(ctx context.Context, id string, req model.UpdateOrderStatusRequest) (*model.Order, error)
	// GetTracking returns the order and its status history, newest first.
	GetTracking(ctx context.Context, id string) (*model.Order, []model.StatusHistoryEntry, error)
	// ListStopsForDate returns assigned/in_progress orders for the date,
	// in driving order (in_progress first, then by time window).
	ListStopsForDate(ctx context.Context, date string) ([]*model.Order, error)
}

// CacheRepository defines the optional byte cache used to short-circuit
// polls for already-terminal results. Implementations must treat a missing
// key as (nil, nil), not an error.
type CacheRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) (bool, error)
}

// Trigger notifies the external compute runner that new work exists. The
// call is best-effort by contract: failures are reported as a status value,
// never as an error, so they can never be conflated with the persistence
// outcome.
type Trigger interface {
	Dispatch(ctx context.Context, pendingRouteID string) model.DispatchStatus
}
