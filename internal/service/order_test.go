package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/rutaflow/rutaflow/internal/domain/model"
	apperrors "github.com/rutaflow/rutaflow/internal/errors"
	"github.com/rutaflow/rutaflow/internal/mocks"
)

func testOrder(id string, status model.OrderStatus) *model.Order {
	return &model.Order{
		ID:            id,
		CustomerName:  "Ana Torres",
		CustomerPhone: "+56 9 1234 5678",
		Address:       "Av. Providencia 1234",
		Lat:           -33.4263,
		Lon:           -70.6200,
		DeliveryDate:  "2025-06-15",
		TimeWindow:    "09:00-12:00",
		Status:        status,
		CreatedAt:     time.Date(2025, 6, 15, 8, 0, 0, 0, time.UTC),
		UpdatedAt:     time.Date(2025, 6, 15, 8, 0, 0, 0, time.UTC),
	}
}

func TestOrderService_Create_RejectsMissingCustomerName(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockOrderRepository(ctrl)
	svc := NewOrderService(OrderServiceOptions{Repo: mockRepo})

	mockRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Times(0)

	_, err := svc.Create(context.Background(), &model.CreateOrderRequest{
		CustomerPhone: "+56 9 1234 5678",
		Address:       "Av. Providencia 1234",
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
	assert.Contains(t, err.Error(), "customerName")
}

func TestOrderService_Create_DelegatesToRepo(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	mockRepo := mocks.NewMockOrderRepository(ctrl)
	svc := NewOrderService(OrderServiceOptions{Repo: mockRepo})

	req := &model.CreateOrderRequest{
		CustomerName:  "Ana Torres",
		CustomerPhone: "+56 9 1234 5678",
		Address:       "Av. Providencia 1234",
	}
	created := testOrder("ORD-20250615-3FA85F64", model.OrderStatusPending)
	mockRepo.EXPECT().Create(ctx, req).Return(created, nil)

	got, err := svc.Create(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, created, got)
}

func TestOrderService_List_RejectsUnknownStatusFilter(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockOrderRepository(ctrl)
	svc := NewOrderService(OrderServiceOptions{Repo: mockRepo})

	mockRepo.EXPECT().List(gomock.Any(), gomock.Any()).Times(0)

	_, err := svc.List(context.Background(), model.OrderListOptions{Status: "teleported"})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}

func TestOrderService_List_AllStatusMeansNoFilter(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	mockRepo := mocks.NewMockOrderRepository(ctrl)
	svc := NewOrderService(OrderServiceOptions{Repo: mockRepo})

	mockRepo.EXPECT().List(ctx, model.OrderListOptions{Status: "all"}).Return([]*model.Order{}, nil)

	orders, err := svc.List(ctx, model.OrderListOptions{Status: "all"})
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestOrderService_UpdateStatus_RejectsInvalidStatus(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockOrderRepository(ctrl)
	svc := NewOrderService(OrderServiceOptions{Repo: mockRepo})

	mockRepo.EXPECT().UpdateStatus(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	_, err := svc.UpdateStatus(context.Background(), "ORD-20250615-3FA85F64", model.UpdateOrderStatusRequest{
		Status: model.OrderStatus("shipped"),
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}

func TestOrderService_UpdateStatus_PropagatesNotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	mockRepo := mocks.NewMockOrderRepository(ctrl)
	svc := NewOrderService(OrderServiceOptions{Repo: mockRepo})

	mockRepo.EXPECT().
		UpdateStatus(ctx, "ORD-20250615-DEADBEEF", gomock.Any()).
		Return(nil, apperrors.NotFound("Order not found."))

	_, err := svc.UpdateStatus(ctx, "ORD-20250615-DEADBEEF", model.UpdateOrderStatusRequest{
		Status: model.OrderStatusConfirmed,
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestOrderService_Track_LocationOnlyWhileInProgress(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	mockRepo := mocks.NewMockOrderRepository(ctrl)
	svc := NewOrderService(OrderServiceOptions{Repo: mockRepo})

	history := []model.StatusHistoryEntry{
		{Status: model.OrderStatusInProgress, Timestamp: time.Now()},
		{Status: model.OrderStatusPending, Timestamp: time.Now().Add(-time.Hour)},
	}

	mockRepo.EXPECT().
		GetTracking(ctx, "ORD-1").
		Return(testOrder("ORD-1", model.OrderStatusInProgress), history, nil)
	resp, err := svc.Track(ctx, "ORD-1")
	require.NoError(t, err)
	require.NotNil(t, resp.CurrentLocation)
	assert.InDelta(t, -33.4263, resp.CurrentLocation.Lat, 1e-9)
	assert.Len(t, resp.History, 2)

	mockRepo.EXPECT().
		GetTracking(ctx, "ORD-2").
		Return(testOrder("ORD-2", model.OrderStatusDelivered), nil, nil)
	resp, err = svc.Track(ctx, "ORD-2")
	require.NoError(t, err)
	assert.Nil(t, resp.CurrentLocation)
}

func TestOrderService_DriverRoute_NumbersStops(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	mockRepo := mocks.NewMockOrderRepository(ctrl)
	svc := NewOrderService(OrderServiceOptions{Repo: mockRepo})

	stops := []*model.Order{
		testOrder("ORD-1", model.OrderStatusInProgress),
		testOrder("ORD-2", model.OrderStatusAssigned),
		testOrder("ORD-3", model.OrderStatusAssigned),
	}
	mockRepo.EXPECT().ListStopsForDate(ctx, "2025-06-15").Return(stops, nil)

	resp, err := svc.DriverRoute(ctx, "2025-06-15")
	require.NoError(t, err)
	require.Len(t, resp.Deliveries, 3)
	assert.Equal(t, 1, resp.Deliveries[0].OrderInRoute)
	assert.Equal(t, 3, resp.Deliveries[2].OrderInRoute)
	assert.Equal(t, 3, resp.Deliveries[0].TotalStops)
	assert.Equal(t, "2025-06-15", resp.Date)

	// All fixture stops share one location, so the estimate is service time only.
	assert.Equal(t, 0.0, resp.TotalDistance)
	assert.Equal(t, 30, resp.EstimatedDuration)
}
