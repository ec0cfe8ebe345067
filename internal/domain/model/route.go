// Package model defines the core data types used throughout the rutaflow
// delivery dispatch system.
package model

import (
	"encoding/json"
	"time"
)

// PendingStatus represents the lifecycle status of a pending route request.
// Only StatusPending is ever written by this service; the external compute
// job owns the later transitions.
type PendingStatus string

const (
	// PendingStatusPending is the initial status set at creation.
	PendingStatusPending PendingStatus = "pending"
	// PendingStatusProcessing is set by the external job when it picks up the request.
	PendingStatusProcessing PendingStatus = "processing"
	// PendingStatusDone is set by the external job after writing a result row.
	PendingStatusDone PendingStatus = "done"
	// PendingStatusFailed is set by the external job when optimization fails.
	PendingStatusFailed PendingStatus = "failed"
)

// PendingRoute represents a submitted optimization request awaiting an
// external result. The id is server-generated and is the sole correlation
// key between submission and result; it is never reused.
type PendingRoute struct {
	ID        string          `json:"id"              db:"id"`
	Payload   json.RawMessage `json:"payload"         db:"payload"`
	Status    PendingStatus   `json:"status"          db:"status"`
	Error     *string         `json:"error,omitempty" db:"error"`
	CreatedAt time.Time       `json:"created_at"      db:"created_at"`
}

// ResultStatus is the status marker the external compute job writes with a
// route result. Only the values in the terminal set settle a poll loop; any
// other marker is treated as intermediate and polling continues.
type ResultStatus string

const (
	// ResultStatusOK indicates routes were computed successfully.
	ResultStatusOK ResultStatus = "ok"
	// ResultStatusNoSolution indicates the solver proved no feasible assignment exists.
	ResultStatusNoSolution ResultStatus = "no_solution"
)

// Terminal reports whether the status means the external job will not
// produce further updates for this id.
func (s ResultStatus) Terminal() bool {
	return s == ResultStatusOK || s == ResultStatusNoSolution
}

// RouteResult represents one result row written by the external compute job.
// Multiple rows may exist per pending route id; the newest by creation time
// wins. Read-only from this service's perspective.
type RouteResult struct {
	PendingRouteID string          `json:"pending_route_id" db:"pending_route_id"`
	Status         ResultStatus    `json:"status"           db:"status"`
	Result         json.RawMessage `json:"result"           db:"result"`
	CreatedAt      time.Time       `json:"created_at"       db:"created_at"`
}

// PendingRouteInfo pairs a pending route with the status of its latest
// result row, for operator inspection of stuck requests.
type PendingRouteInfo struct {
	PendingRoute
	ResultStatus *ResultStatus `json:"result_status,omitempty"`
}

// DispatchStatus reports the outcome of the best-effort compute-job trigger.
// It is data, not an error: any value here still accompanies a 200 response
// with a valid pending route id.
type DispatchStatus string

const (
	// DispatchSent means the trigger call was accepted by the automation API.
	DispatchSent DispatchStatus = "sent"
	// DispatchSkipped means trigger configuration is absent; valid, not a failure.
	DispatchSkipped DispatchStatus = "skipped"
	// DispatchFailed means the automation API answered with a non-2xx status.
	DispatchFailed DispatchStatus = "failed"
	// DispatchError means the trigger call failed at the transport level.
	DispatchError DispatchStatus = "error"
)

// DispatchResponse is the body returned by the dispatch endpoint.
type DispatchResponse struct {
	PendingRouteID string         `json:"pending_route_id"`
	GitHubDispatch DispatchStatus `json:"github_dispatch"`
}

// ResultResponse is the body returned by the result endpoint. Found=false is
// a normal response during the waiting window, not an error; Status and
// Result are only present when Found is true.
type ResultResponse struct {
	Found          bool            `json:"found"`
	PendingRouteID string          `json:"pending_route_id"`
	Status         ResultStatus    `json:"status,omitempty"`
	Result         json.RawMessage `json:"result,omitempty"`
}
