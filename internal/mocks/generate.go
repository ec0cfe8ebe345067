// Package mocks provides mock implementations for testing the rutaflow services.
//
// This package uses go.uber.org/mock (gomock) to generate type-safe mocks for our repository interfaces.
// The mocks are generated using go:generate directives and provide a fluent API for setting up test expectations.
//
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	defer ctrl.Finish()
//	mockRepo := mocks.NewMockRouteRepository(ctrl)
//	mockRepo.EXPECT().CreatePending(gomock.Any(), gomock.Any()).Return(pending, nil)
package mocks

// Generate mock for RouteRepository interface from internal/core package.
// This creates MockRouteRepository with methods for all RouteRepository interface methods:
// CreatePending, LatestResult, ListPending, InsertResult
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=route_repository_mock.go github.com/rutaflow/rutaflow/internal/core RouteRepository

// Generate mock for OrderRepository interface from internal/core package.
// This creates MockOrderRepository with methods for all OrderRepository interface methods:
// Create, List, UpdateStatus, GetTracking, ListStopsForDate
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=order_repository_mock.go github.com/rutaflow/rutaflow/internal/core OrderRepository

// Generate mock for CacheRepository interface from internal/core package.
// This creates MockCacheRepository with methods for all CacheRepository interface methods:
// Get, Set, Delete
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=cache_repository_mock.go github.com/rutaflow/rutaflow/internal/core CacheRepository

// Generate mock for Trigger interface from internal/core package.
// This creates MockTrigger with methods for all Trigger interface methods:
// Dispatch
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=trigger_mock.go github.com/rutaflow/rutaflow/internal/core Trigger
