package data

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/rutaflow/rutaflow/internal/core"
	"github.com/rutaflow/rutaflow/internal/domain/model"
	apperrors "github.com/rutaflow/rutaflow/internal/errors"
)

// RouteRepo provides database operations for pending routes and their
// optimization results.
type RouteRepo struct {
	DB     *sql.DB
	logger *slog.Logger
}

// NewRouteRepo creates a new RouteRepo instance with the given database connection.
func NewRouteRepo(db *sql.DB, logger *slog.Logger) *RouteRepo {
	return &RouteRepo{DB: db, logger: logger}
}

// CreatePending durably inserts a pending route row and returns it with the
// server-generated uuid. The caller must not reference the id (e.g. in a
// trigger call) before this returns.
func (r *RouteRepo) CreatePending(ctx context.Context, payload json.RawMessage) (*model.PendingRoute, error) {
	if len(payload) == 0 {
		return nil, apperrors.Validation("payload is required and cannot be empty")
	}

	var pr model.PendingRoute
	err := r.DB.QueryRowContext(ctx, `
		INSERT INTO pending_routes (payload, status)
		VALUES ($1::jsonb, $2)
		RETURNING id::text, payload, status, created_at
	`, []byte(payload), model.PendingStatusPending).
		Scan(&pr.ID, &pr.Payload, &pr.Status, &pr.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert pending route: %w", apperrors.MapDBError(err))
	}

	return &pr, nil
}

// LatestResult returns the newest result row for the given pending route id,
// or (nil, nil) when no result exists yet. Multiple rows may share an id
// (intermediate and final markers); creation-time ordering makes the read
// stable.
func (r *RouteRepo) LatestResult(ctx context.Context, pendingRouteID string) (*model.RouteResult, error) {
	var (
		res    model.RouteResult
		result []byte
	)
	err := r.DB.QueryRowContext(ctx, `
		SELECT pending_route_id::text, status, result, created_at
		FROM optimized_routes
		WHERE pending_route_id = $1::uuid
		ORDER BY created_at DESC
		LIMIT 1
	`, pendingRouteID).
		Scan(&res.PendingRouteID, &res.Status, &result, &res.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select latest result: %w", apperrors.MapDBError(err))
	}

	res.Result = json.RawMessage(result)
	return &res, nil
}

// ListPending returns recent pending routes, newest first, each joined with
// the status of its latest result row when one exists.
func (r *RouteRepo) ListPending(ctx context.Context, limit int) ([]*model.PendingRouteInfo, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := r.DB.QueryContext(ctx, `
		SELECT pr.id::text, pr.payload, pr.status, pr.error, pr.created_at, res.status
		FROM pending_routes pr
		LEFT JOIN LATERAL (
			SELECT status FROM optimized_routes o
			WHERE o.pending_route_id = pr.id
			ORDER BY o.created_at DESC
			LIMIT 1
		) res ON true
		ORDER BY pr.created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("list pending routes: %w", apperrors.MapDBError(err))
	}
	defer func() {
		_ = rows.Close()
	}()

	var infos []*model.PendingRouteInfo
	for rows.Next() {
		var (
			info         model.PendingRouteInfo
			resultStatus sql.NullString
		)
		if scanErr := rows.Scan(
			&info.ID, &info.Payload, &info.Status, &info.Error, &info.CreatedAt, &resultStatus,
		); scanErr != nil {
			return nil, fmt.Errorf("scan pending route: %w", scanErr)
		}
		if resultStatus.Valid {
			s := model.ResultStatus(resultStatus.String)
			info.ResultStatus = &s
		}
		infos = append(infos, &info)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate pending routes: %w", err)
	}

	return infos, nil
}

// InsertResult writes a result row under the given correlation id. Backs the
// admin seeding tool and tests; the production writer is the external job.
func (r *RouteRepo) InsertResult(ctx context.Context, params core.InsertRouteResultParams) error {
	if params.PendingRouteID == "" {
		return apperrors.Validation("pending route id is required and cannot be empty")
	}

	result := params.Result
	if len(result) == 0 {
		result = json.RawMessage(`null`)
	}

	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO optimized_routes (pending_route_id, status, result)
		VALUES ($1::uuid, $2, $3::jsonb)
	`, params.PendingRouteID, params.Status, []byte(result))
	if err != nil {
		return fmt.Errorf("insert route result: %w", apperrors.MapDBError(err))
	}
	return nil
}
