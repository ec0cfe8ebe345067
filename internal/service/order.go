package service

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/rutaflow/rutaflow/internal/core"
	"github.com/rutaflow/rutaflow/internal/domain/model"
	apperrors "github.com/rutaflow/rutaflow/internal/errors"
)

// OrderServiceOptions groups dependencies for OrderService.
type OrderServiceOptions struct {
	Repo   core.OrderRepository
	Logger *slog.Logger
}

// OrderService provides business logic for customer order operations.
type OrderService struct {
	repo   core.OrderRepository
	logger *slog.Logger
}

// NewOrderService constructs an OrderService.
func NewOrderService(opts OrderServiceOptions) *OrderService {
	if opts.Repo == nil {
		panic("OrderRepository is required")
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &OrderService{
		repo:   opts.Repo,
		logger: opts.Logger,
	}
}

// Create validates and stores a new customer order.
func (s *OrderService) Create(ctx context.Context, req *model.CreateOrderRequest) (*model.Order, error) {
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	order, err := s.repo.Create(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	s.logger.InfoContext(ctx, "order created",
		"order_id", order.ID,
		"delivery_date", order.DeliveryDate,
	)
	return order, nil
}

// List returns orders matching the given filters, newest first.
func (s *OrderService) List(ctx context.Context, opts model.OrderListOptions) ([]*model.Order, error) {
	if opts.Status != "" && opts.Status != "all" {
		status := model.OrderStatus(opts.Status)
		if !status.Valid() {
			return nil, apperrors.ValidationField("status", fmt.Sprintf("unknown order status %q", opts.Status))
		}
	}

	orders, err := s.repo.List(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}

// UpdateStatus transitions an order and records the transition in its
// status history.
func (s *OrderService) UpdateStatus(ctx context.Context, id string, req model.UpdateOrderStatusRequest) (*model.Order, error) {
	if err := req.Validate(); err != nil {
		return nil, apperrors.ValidationField("status", err.Error())
	}

	order, err := s.repo.UpdateStatus(ctx, id, req)
	if err != nil {
		return nil, fmt.Errorf("update order status: %w", err)
	}

	s.logger.InfoContext(ctx, "order status updated",
		"order_id", order.ID,
		"status", string(order.Status),
	)
	return order, nil
}

// Track returns the customer-facing tracking view for an order.
func (s *OrderService) Track(ctx context.Context, id string) (*model.TrackResponse, error) {
	order, history, err := s.repo.GetTracking(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get tracking: %w", err)
	}

	resp := &model.TrackResponse{
		ID:               order.ID,
		Status:           order.Status,
		CustomerName:     order.CustomerName,
		CustomerPhone:    order.CustomerPhone,
		Address:          order.Address,
		DeliveryDate:     order.DeliveryDate,
		TimeWindow:       order.TimeWindow,
		DriverName:       order.DriverName,
		DriverPhone:      order.DriverPhone,
		EstimatedArrival: order.EstimatedArrival,
		History:          history,
		CreatedAt:        order.CreatedAt,
		UpdatedAt:        order.UpdatedAt,
	}
	// Location is only meaningful while the driver is actually moving.
	if order.Status == model.OrderStatusInProgress {
		resp.CurrentLocation = &model.GeoPoint{Lat: order.Lat, Lon: order.Lon}
	}
	return resp, nil
}

// DriverRoute returns the stop list for the given delivery date, in driving
// order.
func (s *OrderService) DriverRoute(ctx context.Context, date string) (*model.DriverRouteResponse, error) {
	orders, err := s.repo.ListStopsForDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("list stops: %w", err)
	}

	stops := make([]model.DriverStop, 0, len(orders))
	for i, o := range orders {
		stops = append(stops, model.DriverStop{
			ID:                  o.ID,
			CustomerName:        o.CustomerName,
			CustomerPhone:       o.CustomerPhone,
			Address:             o.Address,
			Lat:                 o.Lat,
			Lon:                 o.Lon,
			TimeWindow:          o.TimeWindow,
			SpecialInstructions: o.SpecialInstructions,
			Status:              o.Status,
			OrderInRoute:        i + 1,
			TotalStops:          len(orders),
		})
	}

	distance := routeDistanceKm(orders)

	return &model.DriverRouteResponse{
		VehicleID:         "VEH-001",
		Date:              date,
		Deliveries:        stops,
		TotalDistance:     math.Round(distance*10) / 10,
		EstimatedDuration: estimateDurationMin(distance, len(orders)),
	}, nil
}

const (
	earthRadiusKm      = 6371.0
	avgSpeedKmh        = 30.0
	serviceTimePerStop = 10 // minutes
)

// routeDistanceKm sums straight-line distances between consecutive stops.
// A rough figure for the driver view, not a road-network distance.
func routeDistanceKm(orders []*model.Order) float64 {
	var total float64
	for i := 1; i < len(orders); i++ {
		total += haversineKm(orders[i-1].Lat, orders[i-1].Lon, orders[i].Lat, orders[i].Lon)
	}
	return total
}

func haversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := (lat2 - lat1) * math.Pi / 180
	dLon := (lon2 - lon1) * math.Pi / 180
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*math.Pi/180)*math.Cos(lat2*math.Pi/180)*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * earthRadiusKm * math.Asin(math.Sqrt(a))
}

// estimateDurationMin is driving time at city speed plus fixed service time
// per stop, in minutes.
func estimateDurationMin(distanceKm float64, stops int) int {
	if stops == 0 {
		return 0
	}
	driving := distanceKm / avgSpeedKmh * 60
	return int(math.Round(driving)) + stops*serviceTimePerStop
}
