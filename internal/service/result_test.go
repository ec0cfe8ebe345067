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

func TestResultService_Lookup_MalformedIDIsValidationError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockRouteRepository(ctrl)
	svc := NewResultService(ResultServiceOptions{Repo: mockRepo})

	mockRepo.EXPECT().LatestResult(gomock.Any(), gomock.Any()).Times(0)

	_, err := svc.Lookup(context.Background(), "not-a-uuid")
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
	assert.Equal(t, "id", apperrors.GetField(err))
}

func TestResultService_Lookup_NoResultYet(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	mockRepo := mocks.NewMockRouteRepository(ctrl)
	svc := NewResultService(ResultServiceOptions{Repo: mockRepo})

	mockRepo.EXPECT().LatestResult(ctx, testPendingID).Return(nil, nil)

	resp, err := svc.Lookup(ctx, testPendingID)
	require.NoError(t, err)
	assert.False(t, resp.Found)
	assert.Equal(t, testPendingID, resp.PendingRouteID)
	assert.Empty(t, resp.Status)
	assert.Nil(t, resp.Result)
}

func TestResultService_Lookup_ReturnsNewestResult(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	mockRepo := mocks.NewMockRouteRepository(ctrl)
	svc := NewResultService(ResultServiceOptions{Repo: mockRepo})

	result := &model.RouteResult{
		PendingRouteID: testPendingID,
		Status:         model.ResultStatusOK,
		Result:         json.RawMessage(`{"vehicles":[{"id":"VEH-001"}]}`),
		CreatedAt:      time.Now(),
	}
	mockRepo.EXPECT().LatestResult(ctx, testPendingID).Return(result, nil)

	resp, err := svc.Lookup(ctx, testPendingID)
	require.NoError(t, err)
	assert.True(t, resp.Found)
	assert.Equal(t, model.ResultStatusOK, resp.Status)
	assert.JSONEq(t, `{"vehicles":[{"id":"VEH-001"}]}`, string(resp.Result))
}

func TestResultService_Lookup_IdempotentReads(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	mockRepo := mocks.NewMockRouteRepository(ctrl)
	svc := NewResultService(ResultServiceOptions{Repo: mockRepo})

	result := &model.RouteResult{
		PendingRouteID: testPendingID,
		Status:         model.ResultStatusNoSolution,
		Result:         json.RawMessage(`null`),
	}
	mockRepo.EXPECT().LatestResult(ctx, testPendingID).Return(result, nil).Times(2)

	first, err := svc.Lookup(ctx, testPendingID)
	require.NoError(t, err)
	second, err := svc.Lookup(ctx, testPendingID)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestResultService_Lookup_CachesTerminalResults(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	mockRepo := mocks.NewMockRouteRepository(ctrl)
	mockCache := mocks.NewMockCacheRepository(ctrl)
	svc := NewResultService(ResultServiceOptions{
		Repo:   mockRepo,
		Cache:  mockCache,
		Config: ResultServiceConfig{ResultTTL: time.Minute},
	})

	result := &model.RouteResult{
		PendingRouteID: testPendingID,
		Status:         model.ResultStatusOK,
		Result:         json.RawMessage(`{"vehicles":[]}`),
	}

	key := "route_result:" + testPendingID
	var stored []byte

	gomock.InOrder(
		// first lookup: miss, db hit, terminal result cached
		mockCache.EXPECT().Get(ctx, key).Return(nil, nil),
		mockRepo.EXPECT().LatestResult(ctx, testPendingID).Return(result, nil),
		mockCache.EXPECT().Set(ctx, key, gomock.Any(), time.Minute).DoAndReturn(
			func(_ context.Context, _ string, value []byte, _ time.Duration) error {
				stored = value
				return nil
			},
		),
		// second lookup: served from cache, db untouched
		mockCache.EXPECT().Get(ctx, key).DoAndReturn(
			func(context.Context, string) ([]byte, error) { return stored, nil },
		),
	)

	first, err := svc.Lookup(ctx, testPendingID)
	require.NoError(t, err)
	second, err := svc.Lookup(ctx, testPendingID)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestResultService_Lookup_IntermediateResultNotCached(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	mockRepo := mocks.NewMockRouteRepository(ctrl)
	mockCache := mocks.NewMockCacheRepository(ctrl)
	svc := NewResultService(ResultServiceOptions{Repo: mockRepo, Cache: mockCache})

	result := &model.RouteResult{
		PendingRouteID: testPendingID,
		Status:         model.ResultStatus("progress"),
		Result:         json.RawMessage(`{"percent":40}`),
	}

	mockCache.EXPECT().Get(ctx, "route_result:"+testPendingID).Return(nil, nil)
	mockRepo.EXPECT().LatestResult(ctx, testPendingID).Return(result, nil)
	mockCache.EXPECT().Set(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	resp, err := svc.Lookup(ctx, testPendingID)
	require.NoError(t, err)
	assert.True(t, resp.Found)
	assert.False(t, resp.Status.Terminal())
}

func TestResultService_Lookup_CacheFailureFallsThroughToDB(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	mockRepo := mocks.NewMockRouteRepository(ctrl)
	mockCache := mocks.NewMockCacheRepository(ctrl)
	svc := NewResultService(ResultServiceOptions{Repo: mockRepo, Cache: mockCache})

	mockCache.EXPECT().Get(ctx, gomock.Any()).Return(nil, errors.New("redis down"))
	mockRepo.EXPECT().LatestResult(ctx, testPendingID).Return(nil, nil)

	resp, err := svc.Lookup(ctx, testPendingID)
	require.NoError(t, err)
	assert.False(t, resp.Found)
}

func TestResultService_Lookup_CorruptCacheEntryEvicted(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	mockRepo := mocks.NewMockRouteRepository(ctrl)
	mockCache := mocks.NewMockCacheRepository(ctrl)
	svc := NewResultService(ResultServiceOptions{Repo: mockRepo, Cache: mockCache})

	key := "route_result:" + testPendingID
	mockCache.EXPECT().Get(ctx, key).Return([]byte(`{"found":`), nil)
	mockCache.EXPECT().Delete(ctx, key).Return(true, nil)
	mockRepo.EXPECT().LatestResult(ctx, testPendingID).Return(nil, nil)

	resp, err := svc.Lookup(ctx, testPendingID)
	require.NoError(t, err)
	assert.False(t, resp.Found)
}
