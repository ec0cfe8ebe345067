package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rutaflow/rutaflow/internal/core"
	"github.com/rutaflow/rutaflow/internal/domain/model"
	apperrors "github.com/rutaflow/rutaflow/internal/errors"
)

// DispatchServiceOptions groups dependencies for DispatchService.
type DispatchServiceOptions struct {
	Repo    core.RouteRepository
	Trigger core.Trigger
	Logger  *slog.Logger
}

// DispatchService accepts raw optimization payloads, persists them as
// pending routes and notifies the external compute runner. Persistence is
// the source of truth: the trigger is best effort and its outcome is
// reported to the caller without ever failing the dispatch.
type DispatchService struct {
	repo    core.RouteRepository
	trigger core.Trigger
	logger  *slog.Logger
}

// NewDispatchService constructs a DispatchService.
func NewDispatchService(opts DispatchServiceOptions) *DispatchService {
	if opts.Repo == nil {
		panic("RouteRepository is required")
	}
	if opts.Trigger == nil {
		panic("Trigger is required")
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &DispatchService{
		repo:    opts.Repo,
		trigger: opts.Trigger,
		logger:  opts.Logger,
	}
}

// Dispatch normalizes the request body, stores it as a pending route and
// fires the runner trigger. The pending route id is returned even when the
// trigger fails, so the caller can poll for a result produced by a later
// manual run.
func (s *DispatchService) Dispatch(ctx context.Context, body []byte) (*model.DispatchResponse, error) {
	payload, err := model.NormalizeDispatchPayload(body)
	if err != nil {
		// Empty payloads and malformed JSON are caller mistakes, not
		// server faults.
		return nil, apperrors.Wrap(err, apperrors.ErrCodeValidation, "invalid dispatch payload")
	}

	pending, err := s.repo.CreatePending(ctx, payload)
	if err != nil {
		return nil, fmt.Errorf("create pending route: %w", err)
	}

	status := s.trigger.Dispatch(ctx, pending.ID)

	s.logger.InfoContext(ctx, "optimization dispatched",
		"pending_route_id", pending.ID,
		"github_dispatch", string(status),
	)

	return &model.DispatchResponse{
		PendingRouteID: pending.ID,
		GitHubDispatch: status,
	}, nil
}

// ListPending returns recent pending routes with their latest result
// status, newest first.
func (s *DispatchService) ListPending(ctx context.Context, limit int) ([]*model.PendingRouteInfo, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 200 {
		limit = 200
	}

	infos, err := s.repo.ListPending(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list pending routes: %w", err)
	}
	return infos, nil
}
