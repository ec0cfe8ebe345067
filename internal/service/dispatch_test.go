package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/rutaflow/rutaflow/internal/domain/model"
	apperrors "github.com/rutaflow/rutaflow/internal/errors"
	"github.com/rutaflow/rutaflow/internal/mocks"
)

const testPendingID = "9f2c1d34-0000-4000-8000-000000000001"

func testPendingRoute(payload string) *model.PendingRoute {
	return &model.PendingRoute{
		ID:        testPendingID,
		Payload:   json.RawMessage(payload),
		Status:    model.PendingStatusPending,
		CreatedAt: time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC),
	}
}

func TestDispatchService_Dispatch_PersistsThenTriggers(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	mockRepo := mocks.NewMockRouteRepository(ctrl)
	mockTrigger := mocks.NewMockTrigger(ctrl)
	svc := NewDispatchService(DispatchServiceOptions{Repo: mockRepo, Trigger: mockTrigger})

	body := []byte(`{"payload":{"depot":{"lat":1,"lon":2},"orders":[{"id_pedido":"ORD-1"}]}}`)

	gomock.InOrder(
		mockRepo.EXPECT().
			CreatePending(ctx, json.RawMessage(`{"depot":{"lat":1,"lon":2},"orders":[{"id_pedido":"ORD-1"}]}`)).
			Return(testPendingRoute(`{}`), nil),
		mockTrigger.EXPECT().Dispatch(ctx, testPendingID).Return(model.DispatchSent),
	)

	resp, err := svc.Dispatch(ctx, body)
	require.NoError(t, err)
	assert.Equal(t, testPendingID, resp.PendingRouteID)
	assert.Equal(t, model.DispatchSent, resp.GitHubDispatch)
}

func TestDispatchService_Dispatch_FlatBodyAccepted(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	mockRepo := mocks.NewMockRouteRepository(ctrl)
	mockTrigger := mocks.NewMockTrigger(ctrl)
	svc := NewDispatchService(DispatchServiceOptions{Repo: mockRepo, Trigger: mockTrigger})

	body := []byte(`{"depot":{"lat":1,"lon":2},"orders":[]}`)

	mockRepo.EXPECT().
		CreatePending(ctx, json.RawMessage(body)).
		Return(testPendingRoute(string(body)), nil)
	mockTrigger.EXPECT().Dispatch(ctx, testPendingID).Return(model.DispatchSkipped)

	resp, err := svc.Dispatch(ctx, body)
	require.NoError(t, err)
	assert.Equal(t, model.DispatchSkipped, resp.GitHubDispatch)
}

func TestDispatchService_Dispatch_TriggerFailureStillReturnsID(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	mockRepo := mocks.NewMockRouteRepository(ctrl)
	mockTrigger := mocks.NewMockTrigger(ctrl)
	svc := NewDispatchService(DispatchServiceOptions{Repo: mockRepo, Trigger: mockTrigger})

	body := []byte(`{"orders":[{"id_pedido":"ORD-1"}]}`)

	mockRepo.EXPECT().CreatePending(ctx, gomock.Any()).Return(testPendingRoute(string(body)), nil)
	mockTrigger.EXPECT().Dispatch(ctx, testPendingID).Return(model.DispatchError)

	resp, err := svc.Dispatch(ctx, body)
	require.NoError(t, err)
	assert.Equal(t, testPendingID, resp.PendingRouteID)
	assert.Equal(t, model.DispatchError, resp.GitHubDispatch)
}

func TestDispatchService_Dispatch_EmptyPayloadRejectedBeforePersist(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	mockRepo := mocks.NewMockRouteRepository(ctrl)
	mockTrigger := mocks.NewMockTrigger(ctrl)
	svc := NewDispatchService(DispatchServiceOptions{Repo: mockRepo, Trigger: mockTrigger})

	mockRepo.EXPECT().CreatePending(gomock.Any(), gomock.Any()).Times(0)
	mockTrigger.EXPECT().Dispatch(gomock.Any(), gomock.Any()).Times(0)

	_, err := svc.Dispatch(ctx, []byte(`{}`))
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}

func TestDispatchService_Dispatch_MalformedJSONIsValidation(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	mockRepo := mocks.NewMockRouteRepository(ctrl)
	mockTrigger := mocks.NewMockTrigger(ctrl)
	svc := NewDispatchService(DispatchServiceOptions{Repo: mockRepo, Trigger: mockTrigger})

	mockRepo.EXPECT().CreatePending(gomock.Any(), gomock.Any()).Times(0)
	mockTrigger.EXPECT().Dispatch(gomock.Any(), gomock.Any()).Times(0)

	for _, body := range [][]byte{nil, []byte(`not json`), []byte(`[1,2]`)} {
		_, err := svc.Dispatch(ctx, body)
		require.Error(t, err)
		assert.True(t, apperrors.IsValidation(err), "body %q should map to validation", body)
	}
}

func TestDispatchService_Dispatch_RepoErrorSkipsTrigger(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	mockRepo := mocks.NewMockRouteRepository(ctrl)
	mockTrigger := mocks.NewMockTrigger(ctrl)
	svc := NewDispatchService(DispatchServiceOptions{Repo: mockRepo, Trigger: mockTrigger})

	dbErr := apperrors.Wrap(errors.New("connection reset"), apperrors.ErrCodeInternal, "Database operation failed.")
	mockRepo.EXPECT().CreatePending(ctx, gomock.Any()).Return(nil, dbErr)
	mockTrigger.EXPECT().Dispatch(gomock.Any(), gomock.Any()).Times(0)

	_, err := svc.Dispatch(ctx, []byte(`{"orders":[{"id_pedido":"ORD-1"}]}`))
	require.Error(t, err)
	assert.True(t, apperrors.IsInternal(err))
}

func TestDispatchService_ListPending_ClampsLimit(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	mockRepo := mocks.NewMockRouteRepository(ctrl)
	mockTrigger := mocks.NewMockTrigger(ctrl)
	svc := NewDispatchService(DispatchServiceOptions{Repo: mockRepo, Trigger: mockTrigger})

	mockRepo.EXPECT().ListPending(ctx, 20).Return(nil, nil)
	_, err := svc.ListPending(ctx, 0)
	require.NoError(t, err)

	mockRepo.EXPECT().ListPending(ctx, 200).Return(nil, nil)
	_, err = svc.ListPending(ctx, 5000)
	require.NoError(t, err)
}
