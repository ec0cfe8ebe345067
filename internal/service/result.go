package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/rutaflow/rutaflow/internal/core"
	"github.com/rutaflow/rutaflow/internal/domain/model"
	apperrors "github.com/rutaflow/rutaflow/internal/errors"
)

// ResultServiceConfig groups tuning knobs for ResultService.
type ResultServiceConfig struct {
	// ResultTTL bounds how long terminal results stay in the cache.
	ResultTTL time.Duration
	Logger    *slog.Logger
}

// ResultServiceOptions groups dependencies for ResultService.
type ResultServiceOptions struct {
	Repo   core.RouteRepository
	Cache  core.CacheRepository // optional
	Config ResultServiceConfig
}

// ResultService answers result lookups for pending route ids. Lookups are
// read-only and idempotent, so terminal results are cached: once a result
// settles it never changes, and repeated polls for it can skip the database.
type ResultService struct {
	repo      core.RouteRepository
	cache     core.CacheRepository
	resultTTL time.Duration
	logger    *slog.Logger
}

const defaultResultTTL = 30 * time.Minute

// NewResultService constructs a ResultService.
func NewResultService(opts ResultServiceOptions) *ResultService {
	if opts.Repo == nil {
		panic("RouteRepository is required")
	}
	cfg := opts.Config
	if cfg.ResultTTL <= 0 {
		cfg.ResultTTL = defaultResultTTL
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &ResultService{
		repo:      opts.Repo,
		cache:     opts.Cache,
		resultTTL: cfg.ResultTTL,
		logger:    cfg.Logger,
	}
}

// Lookup returns the newest result for the given pending route id. A
// malformed id is a validation error; an unknown or not-yet-answered id is
// a normal Found=false response.
func (s *ResultService) Lookup(ctx context.Context, pendingRouteID string) (*model.ResultResponse, error) {
	if _, err := uuid.Parse(pendingRouteID); err != nil {
		return nil, apperrors.ValidationField("id", "id must be a valid UUID")
	}

	if cached := s.cachedResult(ctx, pendingRouteID); cached != nil {
		return cached, nil
	}

	result, err := s.repo.LatestResult(ctx, pendingRouteID)
	if err != nil {
		return nil, fmt.Errorf("latest result: %w", err)
	}

	resp := &model.ResultResponse{
		Found:          result != nil,
		PendingRouteID: pendingRouteID,
	}
	if result != nil {
		resp.Status = result.Status
		resp.Result = result.Result
	}

	if result != nil && result.Status.Terminal() {
		s.cacheResult(ctx, pendingRouteID, resp)
	}

	return resp, nil
}

func cacheKey(pendingRouteID string) string {
	return "route_result:" + pendingRouteID
}

// cachedResult returns a cached terminal response, or nil on miss or any
// cache trouble. The cache is an optimization; it never turns a lookup into
// an error.
func (s *ResultService) cachedResult(ctx context.Context, pendingRouteID string) *model.ResultResponse {
	if s.cache == nil {
		return nil
	}
	raw, err := s.cache.Get(ctx, cacheKey(pendingRouteID))
	if err != nil {
		s.logger.WarnContext(ctx, "result cache read failed", "pending_route_id", pendingRouteID, "error", err)
		return nil
	}
	if raw == nil {
		return nil
	}
	var resp model.ResultResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		s.logger.WarnContext(ctx, "result cache entry corrupt", "pending_route_id", pendingRouteID, "error", err)
		_, _ = s.cache.Delete(ctx, cacheKey(pendingRouteID))
		return nil
	}
	return &resp
}

func (s *ResultService) cacheResult(ctx context.Context, pendingRouteID string, resp *model.ResultResponse) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(resp)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, cacheKey(pendingRouteID), raw, s.resultTTL); err != nil {
		s.logger.WarnContext(ctx, "result cache write failed", "pending_route_id", pendingRouteID, "error", err)
	}
}
