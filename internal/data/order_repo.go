package data

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"github.com/rutaflow/rutaflow/internal/data/pgxutil"
	"github.com/rutaflow/rutaflow/internal/domain/model"
	apperrors "github.com/rutaflow/rutaflow/internal/errors"
)

// RepoConfig holds configuration options for the data repositories.
type RepoConfig struct {
	Logger       *slog.Logger
	TimeProvider TimeProvider
}

// OrderRepo provides database operations for customer orders and their
// status history.
type OrderRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
	logger       *slog.Logger
}

// NewOrderRepo creates a new OrderRepo instance with the given database
// connection and configuration.
func NewOrderRepo(db *sql.DB, cfg RepoConfig) *OrderRepo {
	tp := cfg.TimeProvider
	if tp == nil {
		tp = &RealTimeProvider{}
	}
	return &OrderRepo{
		DB:           db,
		timeProvider: tp,
		logger:       cfg.Logger,
	}
}

const orderColumns = `
  id,
  customer_name,
  customer_phone,
  customer_email,
  address,
  lat,
  lon,
  package_name,
  weight,
  volume,
  delivery_date::text,
  time_window,
  special_instructions,
  photos,
  status,
  driver_name,
  driver_phone,
  estimated_arrival,
  created_at,
  updated_at
`

func scanOrder(row interface{ Scan(dest ...any) error }) (*model.Order, error) {
	var o model.Order
	err := row.Scan(
		&o.ID,
		&o.CustomerName,
		&o.CustomerPhone,
		&o.CustomerEmail,
		&o.Address,
		&o.Lat,
		&o.Lon,
		&o.PackageName,
		&o.Weight,
		&o.Volume,
		&o.DeliveryDate,
		&o.TimeWindow,
		&o.SpecialInstructions,
		&o.Photos,
		&o.Status,
		&o.DriverName,
		&o.DriverPhone,
		&o.EstimatedArrival,
		&o.CreatedAt,
		&o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// Create inserts a new order with a generated id and appends the initial
// 'pending' row to the status history, in one transaction.
func (r *OrderRepo) Create(ctx context.Context, req *model.CreateOrderRequest) (*model.Order, error) {
	if req == nil {
		return nil, apperrors.Validation("create order request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeValidation, "invalid order")
	}

	now := r.timeProvider.Now()
	req.ApplyDefaults(now)
	id := model.NewOrderID(now)

	var email *string
	if strings.TrimSpace(req.CustomerEmail) != "" {
		email = &req.CustomerEmail
	}

	var order *model.Order
	txErr := pgxutil.WithSQLTx(ctx, r.DB, pgxutil.SQLTxConfig{Fn: func(tx *sql.Tx) error {
		row := tx.QueryRowContext(ctx, `
			INSERT INTO customer_orders (
				id, customer_name, customer_phone, customer_email,
				address, lat, lon, package_name, weight, volume,
				delivery_date, time_window, special_instructions,
				photos, status
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11::date, $12, $13, $14::jsonb, $15)
			RETURNING `+orderColumns,
			id, req.CustomerName, req.CustomerPhone, email,
			req.Address, req.Lat, req.Lon, req.PackageName, req.Weight, req.Volume,
			req.DeliveryDate, req.TimeWindow, req.SpecialInstructions,
			[]byte(req.Photos), model.OrderStatusPending,
		)

		var scanErr error
		order, scanErr = scanOrder(row)
		if scanErr != nil {
			return fmt.Errorf("insert order: %w", scanErr)
		}

		if _, histErr := tx.ExecContext(ctx, `
			INSERT INTO order_status_history (order_id, status, notes)
			VALUES ($1, $2, $3)
		`, order.ID, model.OrderStatusPending, "order created"); histErr != nil {
			return fmt.Errorf("append status history: %w", histErr)
		}
		return nil
	}})
	if txErr != nil {
		return nil, apperrors.MapDBError(txErr)
	}

	return order, nil
}

// List returns orders with optional status and delivery-date filters,
// newest first.
func (r *OrderRepo) List(ctx context.Context, opts model.OrderListOptions) ([]*model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM customer_orders`
	var (
		where []string
		args  []any
	)

	if opts.Status != "" && opts.Status != "all" {
		args = append(args, opts.Status)
		where = append(where, fmt.Sprintf("status = $%d", len(args)))
	}
	if opts.Date != "" {
		args = append(args, opts.Date)
		where = append(where, fmt.Sprintf("delivery_date = $%d::date", len(args)))
	}
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", apperrors.MapDBError(err))
	}
	defer func() {
		_ = rows.Close()
	}()

	var orders []*model.Order
	for rows.Next() {
		o, scanErr := scanOrder(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("scan order: %w", scanErr)
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate orders: %w", err)
	}

	return orders, nil
}

// UpdateStatus transitions an order to a new status, optionally recording
// driver details, and appends a status-history row in the same transaction.
// Returns a NotFound error when the id is unknown.
func (r *OrderRepo) UpdateStatus(
	ctx context.Context,
	id string,
	req model.UpdateOrderStatusRequest,
) (*model.Order, error) {
	if err := req.Validate(); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeValidation, "invalid status update")
	}

	var driverName, driverPhone *string
	if strings.TrimSpace(req.DriverName) != "" {
		driverName = &req.DriverName
	}
	if strings.TrimSpace(req.DriverPhone) != "" {
		driverPhone = &req.DriverPhone
	}

	var order *model.Order
	txErr := pgxutil.WithSQLTx(ctx, r.DB, pgxutil.SQLTxConfig{Fn: func(tx *sql.Tx) error {
		row := tx.QueryRowContext(ctx, `
			UPDATE customer_orders
			SET status = $1,
			    driver_name = COALESCE($2, driver_name),
			    driver_phone = COALESCE($3, driver_phone),
			    updated_at = now()
			WHERE id = $4
			RETURNING `+orderColumns,
			req.Status, driverName, driverPhone, id,
		)

		var scanErr error
		order, scanErr = scanOrder(row)
		if scanErr != nil {
			return scanErr
		}

		var notes *string
		if strings.TrimSpace(req.Notes) != "" {
			notes = &req.Notes
		}
		if _, histErr := tx.ExecContext(ctx, `
			INSERT INTO order_status_history (order_id, status, notes)
			VALUES ($1, $2, $3)
		`, order.ID, req.Status, notes); histErr != nil {
			return fmt.Errorf("append status history: %w", histErr)
		}
		return nil
	}})
	if txErr != nil {
		mapped := apperrors.MapDBError(txErr)
		if apperrors.IsNotFound(mapped) {
			return nil, apperrors.NotFoundf("order %s not found", id)
		}
		return nil, mapped
	}

	return order, nil
}

// GetTracking returns the order and its status history, newest entries first.
func (r *OrderRepo) GetTracking(
	ctx context.Context,
	id string,
) (*model.Order, []model.StatusHistoryEntry, error) {
	row := r.DB.QueryRowContext(ctx, `SELECT `+orderColumns+` FROM customer_orders WHERE id = $1`, id)
	order, err := scanOrder(row)
	if err != nil {
		mapped := apperrors.MapDBError(err)
		if apperrors.IsNotFound(mapped) {
			return nil, nil, apperrors.NotFoundf("order %s not found", id)
		}
		return nil, nil, fmt.Errorf("select order: %w", mapped)
	}

	rows, err := r.DB.QueryContext(ctx, `
		SELECT status, timestamp, notes
		FROM order_status_history
		WHERE order_id = $1
		ORDER BY timestamp DESC
	`, id)
	if err != nil {
		return nil, nil, fmt.Errorf("select status history: %w", apperrors.MapDBError(err))
	}
	defer func() {
		_ = rows.Close()
	}()

	var history []model.StatusHistoryEntry
	for rows.Next() {
		var entry model.StatusHistoryEntry
		if scanErr := rows.Scan(&entry.Status, &entry.Timestamp, &entry.Notes); scanErr != nil {
			return nil, nil, fmt.Errorf("scan status history: %w", scanErr)
		}
		history = append(history, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("iterate status history: %w", err)
	}

	return order, history, nil
}

// ListStopsForDate returns assigned and in-progress orders for the delivery
// date, in driving order: in-progress stops first, then by time window.
func (r *OrderRepo) ListStopsForDate(ctx context.Context, date string) ([]*model.Order, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT `+orderColumns+`
		FROM customer_orders
		WHERE status IN ('assigned', 'in_progress')
		  AND delivery_date = $1::date
		ORDER BY
		  CASE status
		    WHEN 'in_progress' THEN 1
		    WHEN 'assigned' THEN 2
		    ELSE 3
		  END,
		  time_window
	`, date)
	if err != nil {
		return nil, fmt.Errorf("list driver stops: %w", apperrors.MapDBError(err))
	}
	defer func() {
		_ = rows.Close()
	}()

	var orders []*model.Order
	for rows.Next() {
		o, scanErr := scanOrder(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("scan driver stop: %w", scanErr)
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate driver stops: %w", err)
	}

	return orders, nil
}
