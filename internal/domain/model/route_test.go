package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResultStatus_Terminal(t *testing.T) {
	assert.True(t, ResultStatusOK.Terminal())
	assert.True(t, ResultStatusNoSolution.Terminal())

	// Anything else is an intermediate marker: clients keep polling.
	assert.False(t, ResultStatus("progress").Terminal())
	assert.False(t, ResultStatus("queued").Terminal())
	assert.False(t, ResultStatus("").Terminal())
}

func TestResultResponse_JSONShape(t *testing.T) {
	miss := ResultResponse{Found: false, PendingRouteID: "abc"}
	data, err := json.Marshal(miss)
	require.NoError(t, err)
	assert.JSONEq(t, `{"found":false,"pending_route_id":"abc"}`, string(data))

	hit := ResultResponse{
		Found:          true,
		PendingRouteID: "abc",
		Status:         ResultStatusOK,
		Result:         json.RawMessage(`{"vehicles":[]}`),
	}
	data, err = json.Marshal(hit)
	require.NoError(t, err)
	assert.JSONEq(t, `{"found":true,"pending_route_id":"abc","status":"ok","result":{"vehicles":[]}}`, string(data))
}
