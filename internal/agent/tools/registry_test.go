package tools

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopassist-poc/server/internal/agent/model"
	errx "github.com/shopassist-poc/server/internal/core/error"
)

func newTestRegistry(now time.Time) *Registry {
	return NewRegistry(testCatalog(), testOrders(now.Add(-10*time.Minute)), func() time.Time { return now })
}

func TestRegistryInvoke(t *testing.T) {
	now := time.Date(2025, 1, 5, 10, 0, 0, 0, time.UTC)
	r := newTestRegistry(now)

	result, err := r.Invoke(model.ToolProductSearch, map[string]any{
		"query":     "dress",
		"price_max": float64(100),
		"tags":      []any{"wedding"},
	})
	require.NoError(t, err)
	products, ok := result.([]model.ProductSummary)
	require.True(t, ok)
	assert.Len(t, products, 2)

	result, err = r.Invoke(model.ToolSizeRecommender, map[string]any{"user_inputs": "between M and L"})
	require.NoError(t, err)
	rec, ok := result.(model.SizeRecommendation)
	require.True(t, ok)
	assert.Equal(t, "L", rec.RecommendedSize)

	result, err = r.Invoke(model.ToolETA, map[string]any{"zip": "560001"})
	require.NoError(t, err)
	est, ok := result.(model.DeliveryEstimate)
	require.True(t, ok)
	assert.Equal(t, 3, est.MinDays)

	result, err = r.Invoke(model.ToolOrderLookup, map[string]any{
		"order_id": "A1001",
		"email":    "rehan@example.com",
	})
	require.NoError(t, err)
	ord, ok := result.(model.Order)
	require.True(t, ok)
	assert.Equal(t, "A1001", ord.OrderID)

	// lookup misses are a nil result, not an error
	result, err = r.Invoke(model.ToolOrderLookup, map[string]any{
		"order_id": "A1001",
		"email":    "wrong@example.com",
	})
	require.NoError(t, err)
	assert.Nil(t, result)

	result, err = r.Invoke(model.ToolOrderCancel, map[string]any{"order_id": "A1001"})
	require.NoError(t, err)
	res, ok := result.(model.CancelResult)
	require.True(t, ok)
	assert.True(t, res.Success)

	// an explicit timestamp overrides the registry clock
	result, err = r.Invoke(model.ToolOrderCancel, map[string]any{
		"order_id":  "A1001",
		"timestamp": now.Add(2 * time.Hour).Format(time.RFC3339),
	})
	require.NoError(t, err)
	res, ok = result.(model.CancelResult)
	require.True(t, ok)
	assert.False(t, res.Success)
}

func TestRegistryInvokeValidation(t *testing.T) {
	r := newTestRegistry(time.Now())

	tests := []struct {
		tool    string
		params  map[string]any
		message string
	}{
		{model.ToolETA, nil, "Zip code is required for ETA tool"},
		{model.ToolOrderLookup, map[string]any{"order_id": "A1001"}, "Order ID and email are required for order lookup"},
		{model.ToolOrderCancel, nil, "Order ID is required for cancellation"},
		{"teleport", nil, "Unknown tool: teleport"},
	}
	for _, tt := range tests {
		_, err := r.Invoke(tt.tool, tt.params)
		require.Error(t, err, "tool %q", tt.tool)

		var appErr *errx.AppError
		require.ErrorAs(t, err, &appErr, "tool %q", tt.tool)
		assert.Equal(t, http.StatusBadRequest, appErr.Status)
		assert.Equal(t, tt.message, appErr.Message)
	}
}

func TestRegistryDemo(t *testing.T) {
	now := time.Date(2025, 1, 5, 10, 0, 0, 0, time.UTC)
	r := newTestRegistry(now)

	result, err := r.Demo(model.ToolProductSearch)
	require.NoError(t, err)
	products, ok := result.([]model.ProductSummary)
	require.True(t, ok)
	assert.NotEmpty(t, products)

	result, err = r.Demo(model.ToolOrderCancel)
	require.NoError(t, err)
	res, ok := result.(model.CancelResult)
	require.True(t, ok)
	assert.True(t, res.Success)

	_, err = r.Demo("teleport")
	require.Error(t, err)
}
