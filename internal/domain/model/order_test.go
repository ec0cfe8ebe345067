package model

import (
	"encoding/json"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderStatus_Valid(t *testing.T) {
	for _, s := range []OrderStatus{
		OrderStatusPending, OrderStatusConfirmed, OrderStatusAssigned,
		OrderStatusInProgress, OrderStatusDelivered, OrderStatusCancelled,
	} {
		assert.True(t, s.Valid(), "expected %q to be valid", s)
	}
	assert.False(t, OrderStatus("shipped").Valid())
	assert.False(t, OrderStatus("").Valid())
}

func TestOrderStatus_UnmarshalText(t *testing.T) {
	var s OrderStatus
	require.NoError(t, s.UnmarshalText([]byte(" In_Progress ")))
	assert.Equal(t, OrderStatusInProgress, s)

	assert.Error(t, s.UnmarshalText([]byte("shipped")))
}

func TestCreateOrderRequest_Validate(t *testing.T) {
	valid := CreateOrderRequest{
		CustomerName:  "Ana Torres",
		CustomerPhone: "+56 9 1234 5678",
		Address:       "Av. Providencia 1234",
	}
	assert.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*CreateOrderRequest)
	}{
		{name: "missing name", mutate: func(r *CreateOrderRequest) { r.CustomerName = "  " }},
		{name: "missing phone", mutate: func(r *CreateOrderRequest) { r.CustomerPhone = "" }},
		{name: "missing address", mutate: func(r *CreateOrderRequest) { r.Address = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.mutate(&req)
			assert.Error(t, req.Validate())
		})
	}
}

func TestCreateOrderRequest_ApplyDefaults(t *testing.T) {
	now := time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)

	var req CreateOrderRequest
	req.ApplyDefaults(now)

	assert.Equal(t, 1.0, req.Weight)
	assert.Equal(t, 0.1, req.Volume)
	assert.Equal(t, "2024-06-15", req.DeliveryDate)
	assert.Equal(t, "09:00-12:00", req.TimeWindow)
	assert.Equal(t, json.RawMessage(`[]`), req.Photos)
}

func TestCreateOrderRequest_ApplyDefaultsKeepsExplicitValues(t *testing.T) {
	req := CreateOrderRequest{
		Weight:       12,
		Volume:       2,
		DeliveryDate: "2024-07-01",
		TimeWindow:   "15:00-18:00",
		Photos:       json.RawMessage(`["a.jpg"]`),
	}
	req.ApplyDefaults(time.Now())

	assert.Equal(t, 12.0, req.Weight)
	assert.Equal(t, 2.0, req.Volume)
	assert.Equal(t, "2024-07-01", req.DeliveryDate)
	assert.Equal(t, "15:00-18:00", req.TimeWindow)
	assert.Equal(t, json.RawMessage(`["a.jpg"]`), req.Photos)
}

func TestUpdateOrderStatusRequest_Validate(t *testing.T) {
	req := UpdateOrderStatusRequest{Status: OrderStatusAssigned}
	assert.NoError(t, req.Validate())

	assert.Error(t, (&UpdateOrderStatusRequest{}).Validate())
	assert.Error(t, (&UpdateOrderStatusRequest{Status: "shipped"}).Validate())
}

func TestNewOrderID(t *testing.T) {
	now := time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)

	id := NewOrderID(now)
	assert.Regexp(t, regexp.MustCompile(`^ORD-20240615-[0-9A-F]{8}$`), id)

	// Ids stay distinct for the same timestamp.
	assert.NotEqual(t, id, NewOrderID(now))
}
