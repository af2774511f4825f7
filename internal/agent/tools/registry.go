package tools

import (
	"fmt"
	"net/http"
	"time"

	"github.com/shopassist-poc/server/internal/agent/model"
	"github.com/shopassist-poc/server/internal/agent/store"
	errx "github.com/shopassist-poc/server/internal/core/error"
)

// Registry invokes tools by wire name with loosely-typed parameters, for the
// tools API endpoint. Parameter validation errors come back as AppError with
// a 400 status so the HTTP layer can map them directly.
type Registry struct {
	catalog *store.Catalog
	orders  *store.Orders
	now     func() time.Time
}

// NewRegistry wires the registry to its read-only data sources. A nil now
// falls back to wall-clock time.
func NewRegistry(catalog *store.Catalog, orders *store.Orders, now func() time.Time) *Registry {
	if now == nil {
		now = time.Now
	}
	return &Registry{catalog: catalog, orders: orders, now: now}
}

// Invoke runs the named tool with the given parameters.
func (r *Registry) Invoke(name string, params map[string]any) (any, error) {
	switch name {
	case model.ToolProductSearch:
		return SearchProducts(r.catalog,
			stringParam(params, "query"),
			floatParam(params, "price_max"),
			stringsParam(params, "tags"),
		), nil

	case model.ToolSizeRecommender:
		return RecommendSize(stringParam(params, "user_inputs")), nil

	case model.ToolETA:
		zip := stringParam(params, "zip")
		if zip == "" {
			return nil, errx.New(nil, http.StatusBadRequest, "Zip code is required for ETA tool")
		}
		return EstimateDelivery(zip), nil

	case model.ToolOrderLookup:
		orderID := stringParam(params, "order_id")
		email := stringParam(params, "email")
		if orderID == "" || email == "" {
			return nil, errx.New(nil, http.StatusBadRequest, "Order ID and email are required for order lookup")
		}
		ord, ok := LookupOrder(r.orders, orderID, email)
		if !ok {
			return nil, nil
		}
		return ord, nil

	case model.ToolOrderCancel:
		orderID := stringParam(params, "order_id")
		if orderID == "" {
			return nil, errx.New(nil, http.StatusBadRequest, "Order ID is required for cancellation")
		}
		ref := r.now()
		if ts := stringParam(params, "timestamp"); ts != "" {
			if parsed, err := time.Parse(time.RFC3339, ts); err == nil {
				ref = parsed
			}
		}
		return CancelOrder(r.orders, orderID, ref), nil

	default:
		return nil, errx.New(nil, http.StatusBadRequest, fmt.Sprintf("Unknown tool: %s", name))
	}
}

// Demo runs the named tool with canned parameters, for quick manual checks
// over the GET endpoint.
func (r *Registry) Demo(name string) (any, error) {
	switch name {
	case model.ToolProductSearch:
		return SearchProducts(r.catalog, "dress", 100, []string{"wedding"}), nil
	case model.ToolSizeRecommender:
		return RecommendSize("I am between M and L"), nil
	case model.ToolETA:
		return EstimateDelivery("560001"), nil
	case model.ToolOrderLookup:
		ord, ok := LookupOrder(r.orders, "A1001", "rehan@example.com")
		if !ok {
			return nil, nil
		}
		return ord, nil
	case model.ToolOrderCancel:
		return CancelOrder(r.orders, "A1001", r.now()), nil
	default:
		return nil, errx.New(nil, http.StatusBadRequest, fmt.Sprintf("Unknown tool: %s", name))
	}
}

func stringParam(params map[string]any, key string) string {
	if v, ok := params[key]; ok {
		switch vv := v.(type) {
		case string:
			return vv
		default:
			return fmt.Sprint(v)
		}
	}
	return ""
}

func floatParam(params map[string]any, key string) float64 {
	if v, ok := params[key]; ok {
		switch vv := v.(type) {
		case float64:
			return vv
		case int:
			return float64(vv)
		}
	}
	return 0
}

func stringsParam(params map[string]any, key string) []string {
	v, ok := params[key]
	if !ok {
		return nil
	}
	items, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, it := range items {
		if s, ok := it.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
