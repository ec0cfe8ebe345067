package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// OrderStatus represents the delivery status of a customer order.
//
//nolint:recvcheck // UnmarshalText needs pointer receiver, Valid needs value receiver
type OrderStatus string

const (
	// OrderStatusPending indicates a new order awaiting planner triage.
	OrderStatusPending OrderStatus = "pending"
	// OrderStatusConfirmed indicates the planner accepted the order.
	OrderStatusConfirmed OrderStatus = "confirmed"
	// OrderStatusAssigned indicates the order is on a vehicle route.
	OrderStatusAssigned OrderStatus = "assigned"
	// OrderStatusInProgress indicates the driver is en route to the stop.
	OrderStatusInProgress OrderStatus = "in_progress"
	// OrderStatusDelivered indicates the package was delivered.
	OrderStatusDelivered OrderStatus = "delivered"
	// OrderStatusCancelled indicates the order was cancelled.
	OrderStatusCancelled OrderStatus = "cancelled"
)

// Valid returns true if the OrderStatus is one of the known enum values.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusAssigned,
		OrderStatusInProgress, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// UnmarshalText implements encoding.TextUnmarshaler for OrderStatus.
func (s *OrderStatus) UnmarshalText(text []byte) error {
	v := OrderStatus(strings.ToLower(strings.TrimSpace(string(text))))
	if !v.Valid() {
		return fmt.Errorf("invalid OrderStatus: %q", v)
	}
	*s = v
	return nil
}

// Order represents a customer order row.
type Order struct {
	ID                  string          `json:"id"                           db:"id"`
	CustomerName        string          `json:"customer_name"                db:"customer_name"`
	CustomerPhone       string          `json:"customer_phone"               db:"customer_phone"`
	CustomerEmail       *string         `json:"customer_email,omitempty"     db:"customer_email"`
	Address             string          `json:"address"                      db:"address"`
	Lat                 float64         `json:"lat"                          db:"lat"`
	Lon                 float64         `json:"lon"                          db:"lon"`
	PackageName         string          `json:"package_name"                 db:"package_name"`
	Weight              float64         `json:"weight"                       db:"weight"`
	Volume              float64         `json:"volume"                       db:"volume"`
	DeliveryDate        string          `json:"delivery_date"                db:"delivery_date"`
	TimeWindow          string          `json:"time_window"                  db:"time_window"`
	SpecialInstructions string          `json:"special_instructions"         db:"special_instructions"`
	Photos              json.RawMessage `json:"photos,omitempty"             db:"photos"`
	Status              OrderStatus     `json:"status"                       db:"status"`
	DriverName          *string         `json:"driver_name,omitempty"        db:"driver_name"`
	DriverPhone         *string         `json:"driver_phone,omitempty"       db:"driver_phone"`
	EstimatedArrival    *time.Time      `json:"estimated_arrival,omitempty"  db:"estimated_arrival"`
	CreatedAt           time.Time       `json:"created_at"                   db:"created_at"`
	UpdatedAt           time.Time       `json:"updated_at"                   db:"updated_at"`
}

// CreateOrderRequest is the customer-facing order submission body. Field
// names stay camelCase for compatibility with the existing order form.
type CreateOrderRequest struct {
	CustomerName        string          `json:"customerName"`
	CustomerPhone       string          `json:"customerPhone"`
	CustomerEmail       string          `json:"customerEmail,omitempty"`
	Address             string          `json:"address"`
	Lat                 float64         `json:"lat,omitempty"`
	Lon                 float64         `json:"lon,omitempty"`
	PackageName         string          `json:"packageName,omitempty"`
	Weight              float64         `json:"weight,omitempty"`
	Volume              float64         `json:"volume,omitempty"`
	DeliveryDate        string          `json:"deliveryDate,omitempty"`
	TimeWindow          string          `json:"timeWindow,omitempty"`
	SpecialInstructions string          `json:"specialInstructions,omitempty"`
	Photos              json.RawMessage `json:"photos,omitempty"`
}

// Validate checks the required customer fields.
func (r *CreateOrderRequest) Validate() error {
	if strings.TrimSpace(r.CustomerName) == "" {
		return errors.New("customerName is required and cannot be empty")
	}
	if strings.TrimSpace(r.CustomerPhone) == "" {
		return errors.New("customerPhone is required and cannot be empty")
	}
	if strings.TrimSpace(r.Address) == "" {
		return errors.New("address is required and cannot be empty")
	}
	return nil
}

// ApplyDefaults fills optional fields the way the order form does: one-kilo
// packages, a morning window, same-day delivery.
func (r *CreateOrderRequest) ApplyDefaults(now time.Time) {
	if r.Weight <= 0 {
		r.Weight = 1
	}
	if r.Volume <= 0 {
		r.Volume = 0.1
	}
	if r.DeliveryDate == "" {
		r.DeliveryDate = now.Format("2006-01-02")
	}
	if r.TimeWindow == "" {
		r.TimeWindow = "09:00-12:00"
	}
	if len(r.Photos) == 0 {
		r.Photos = json.RawMessage(`[]`)
	}
}

// UpdateOrderStatusRequest is the planner/driver status transition body.
type UpdateOrderStatusRequest struct {
	Status      OrderStatus `json:"status"`
	DriverName  string      `json:"driverName,omitempty"`
	DriverPhone string      `json:"driverPhone,omitempty"`
	Notes       string      `json:"notes,omitempty"`
}

// Validate checks the status transition request.
func (r *UpdateOrderStatusRequest) Validate() error {
	if r.Status == "" {
		return errors.New("status is required and cannot be empty")
	}
	if !r.Status.Valid() {
		return fmt.Errorf("status must be one of: pending, confirmed, assigned, in_progress, delivered, cancelled")
	}
	return nil
}

// StatusHistoryEntry is one row of the append-only order status log.
type StatusHistoryEntry struct {
	Status    OrderStatus `json:"status"    db:"status"`
	Timestamp time.Time   `json:"timestamp" db:"timestamp"`
	Notes     *string     `json:"notes"     db:"notes"`
}

// NewOrderID generates an order identifier of the form ORD-<date>-<random>,
// e.g. ORD-20250615-3FA85F64. The random part is taken from a UUID so ids
// stay distinct under concurrent order creation.
func NewOrderID(now time.Time) string {
	random := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return fmt.Sprintf("ORD-%s-%s", now.Format("20060102"), random)
}

// OrderListOptions are optional listing filters. Status "all" (or empty)
// means no status filter; Date filters on delivery_date.
type OrderListOptions struct {
	Status string
	Date   string
}

// TrackResponse is the customer-facing tracking view: the order plus its
// status history, in the camelCase shape the tracking page renders.
type TrackResponse struct {
	ID               string               `json:"id"`
	Status           OrderStatus          `json:"status"`
	CustomerName     string               `json:"customerName"`
	CustomerPhone    string               `json:"customerPhone"`
	Address          string               `json:"address"`
	DeliveryDate     string               `json:"deliveryDate"`
	TimeWindow       string               `json:"timeWindow"`
	DriverName       *string              `json:"driverName"`
	DriverPhone      *string              `json:"driverPhone"`
	EstimatedArrival *time.Time           `json:"estimatedArrival"`
	CurrentLocation  *GeoPoint            `json:"currentLocation"`
	History          []StatusHistoryEntry `json:"history"`
	CreatedAt        time.Time            `json:"createdAt"`
	UpdatedAt        time.Time            `json:"updatedAt"`
}

// GeoPoint is a lat/lon pair.
type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// DriverStop is one delivery in a driver's route for the day.
type DriverStop struct {
	ID                  string      `json:"id"`
	CustomerName        string      `json:"customerName"`
	CustomerPhone       string      `json:"customerPhone"`
	Address             string      `json:"address"`
	Lat                 float64     `json:"lat"`
	Lon                 float64     `json:"lon"`
	TimeWindow          string      `json:"timeWindow"`
	SpecialInstructions string      `json:"specialInstructions"`
	Status              OrderStatus `json:"status"`
	OrderInRoute        int         `json:"orderInRoute"`
	TotalStops          int         `json:"totalStops"`
}

// DriverRouteResponse is the driver's stop list for a delivery date.
type DriverRouteResponse struct {
	VehicleID         string       `json:"vehicleId"`
	Date              string       `json:"date"`
	Deliveries        []DriverStop `json:"deliveries"`
	TotalDistance     float64      `json:"totalDistance"`
	EstimatedDuration int          `json:"estimatedDuration"`
}
