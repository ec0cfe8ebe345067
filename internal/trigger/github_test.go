package trigger

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rutaflow/rutaflow/config"
	"github.com/rutaflow/rutaflow/internal/domain/model"
)

func testTriggerConfig(baseURL string) config.TriggerConfig {
	return config.TriggerConfig{
		Owner:     "acme",
		Repo:      "route-solver",
		Token:     "test-token",
		EventType: "calculate_routes",
		BaseURL:   baseURL,
		Timeout:   5 * time.Second,
	}
}

func TestGitHubClientDispatchSent(t *testing.T) {
	var gotPath atomic.Value
	var gotAuth atomic.Value
	var gotBody atomic.Value

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath.Store(r.URL.Path)
		gotAuth.Store(r.Header.Get("Authorization"))

		var ev dispatchEvent
		require.NoError(t, json.NewDecoder(r.Body).Decode(&ev))
		gotBody.Store(ev)

		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	client := NewGitHubClient(testTriggerConfig(srv.URL), srv.Client(), slog.Default())

	status := client.Dispatch(context.Background(), "9f2c1d34-0000-4000-8000-000000000001")
	assert.Equal(t, model.DispatchSent, status)

	assert.Equal(t, "/repos/acme/route-solver/dispatches", gotPath.Load())
	assert.Equal(t, "token test-token", gotAuth.Load())

	ev, ok := gotBody.Load().(dispatchEvent)
	require.True(t, ok)
	assert.Equal(t, "calculate_routes", ev.EventType)
	assert.Equal(t, "9f2c1d34-0000-4000-8000-000000000001", ev.ClientPayload.PendingRouteID)
}

func TestGitHubClientDispatchSkippedWhenUnconfigured(t *testing.T) {
	cfg := testTriggerConfig("https://api.github.com")
	cfg.Token = ""

	client := NewGitHubClient(cfg, nil, slog.Default())

	status := client.Dispatch(context.Background(), "9f2c1d34-0000-4000-8000-000000000001")
	assert.Equal(t, model.DispatchSkipped, status)
}

func TestGitHubClientDispatchFailedOnAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"Bad credentials"}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	client := NewGitHubClient(testTriggerConfig(srv.URL), srv.Client(), slog.Default())

	status := client.Dispatch(context.Background(), "9f2c1d34-0000-4000-8000-000000000001")
	assert.Equal(t, model.DispatchFailed, status)
}

func TestGitHubClientDispatchErrorOnTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	srv.Close() // connection refused from here on

	client := NewGitHubClient(testTriggerConfig(srv.URL), nil, slog.Default())

	status := client.Dispatch(context.Background(), "9f2c1d34-0000-4000-8000-000000000001")
	assert.Equal(t, model.DispatchError, status)
}

func TestGitHubClientDispatchErrorOnCanceledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	client := NewGitHubClient(testTriggerConfig(srv.URL), srv.Client(), slog.Default())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	status := client.Dispatch(ctx, "9f2c1d34-0000-4000-8000-000000000001")
	assert.Equal(t, model.DispatchError, status)
}
