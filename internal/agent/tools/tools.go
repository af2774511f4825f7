// Package tools implements the deterministic business tools behind the agent:
// product search, size recommendation, delivery estimation, order lookup and
// the time-windowed cancellation policy. All functions are pure over the
// read-only stores and an explicit reference time.
package tools

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopassist-poc/server/internal/agent/model"
	"github.com/shopassist-poc/server/internal/agent/store"
)

// MaxSearchResults caps how many products a search surfaces to the customer.
const MaxSearchResults = 2

// CancelWindow is the period after purchase during which cancellation is
// allowed, inclusive at the boundary.
const CancelWindow = 60 * time.Minute

// CancelDeniedMessage is the fixed customer-facing explanation on denial.
const CancelDeniedMessage = "Cancellation not allowed. Order was placed more than 60 minutes ago."

// SearchProducts filters the catalog by title substring, price ceiling and
// tag overlap, returning at most MaxSearchResults summaries in catalog order.
func SearchProducts(catalog *store.Catalog, query string, priceMax float64, tags []string) []model.ProductSummary {
	matched := catalog.Search(query, priceMax, tags)
	if len(matched) > MaxSearchResults {
		matched = matched[:MaxSearchResults]
	}

	summaries := make([]model.ProductSummary, 0, len(matched))
	for _, p := range matched {
		summaries = append(summaries, model.ProductSummary{
			ID:    p.ID,
			Title: p.Title,
			Price: p.Price,
			Color: p.Color,
			Sizes: p.Sizes,
		})
	}
	return summaries
}

// RecommendSize maps free-form sizing hints to a recommendation. The
// heuristic only understands "between M and L" style hints; anything else
// gets the standard M.
func RecommendSize(userInput string) model.SizeRecommendation {
	input := strings.ToLower(userInput)

	if strings.Contains(input, "m/l") || strings.Contains(input, "between m and l") {
		return model.SizeRecommendation{
			RecommendedSize: "L",
			Rationale:       "Based on your mention of being between M and L, I recommend size L for a more comfortable fit that allows for movement, especially for wedding events.",
		}
	}

	if strings.Contains(input, "s/m") || strings.Contains(input, "between s and m") {
		return model.SizeRecommendation{
			RecommendedSize: "M",
			Rationale:       "Since you mentioned being between S and M, I recommend size M for a balanced fit that accommodates most body types.",
		}
	}

	return model.SizeRecommendation{
		RecommendedSize: "M",
		Rationale:       "Based on standard sizing, I recommend size M which fits most average body types comfortably.",
	}
}

// EstimateDelivery bands the delivery window by the zip's leading two digits:
// [10,30] gives 2-3 days, [31,60] gives 3-5, everything else (including
// malformed zips) 4-6. Bands are inclusive on both ends.
func EstimateDelivery(zip string) model.DeliveryEstimate {
	prefix := -1
	if len(zip) >= 2 {
		if n, err := strconv.Atoi(zip[:2]); err == nil {
			prefix = n
		}
	}

	switch {
	case prefix >= 10 && prefix <= 30:
		return model.DeliveryEstimate{MinDays: 2, MaxDays: 3}
	case prefix >= 31 && prefix <= 60:
		return model.DeliveryEstimate{MinDays: 3, MaxDays: 5}
	default:
		return model.DeliveryEstimate{MinDays: 4, MaxDays: 6}
	}
}

// LookupOrder finds an order by exact id and email match.
func LookupOrder(orders *store.Orders, orderID, email string) (model.Order, bool) {
	return orders.Find(orderID, email)
}

// CancelOrder enforces the cancellation policy against the given reference
// time. Elapsed time of exactly CancelWindow is still allowed. The order
// record itself is never mutated; a later attempt re-evaluates the same
// timestamps.
func CancelOrder(orders *store.Orders, orderID string, now time.Time) model.CancelResult {
	ord, ok := orders.Get(orderID)
	if !ok {
		return model.CancelResult{Success: false, Message: "Order not found"}
	}

	if now.Sub(ord.CreatedAt) <= CancelWindow {
		return model.CancelResult{
			Success: true,
			Message: fmt.Sprintf("Order %s has been successfully cancelled.", orderID),
		}
	}

	return model.CancelResult{Success: false, Message: CancelDeniedMessage}
}
