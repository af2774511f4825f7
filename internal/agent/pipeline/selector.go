package pipeline

import (
	"strings"
	"time"

	"github.com/shopassist-poc/server/internal/agent/extract"
	"github.com/shopassist-poc/server/internal/agent/model"
	"github.com/shopassist-poc/server/internal/agent/tools"
	logx "github.com/shopassist-poc/server/pkg/logger"
)

const (
	// searchQueryTerm is the fixed catalog query for product assistance.
	searchQueryTerm = "dress"
	// defaultPriceCap applies when the text names no budget.
	defaultPriceCap = 1000
	// policyDeniedReason is the fixed reason recorded on a denied cancellation.
	policyDeniedReason = "Order was placed more than 60 minutes ago"
)

// policyHint carries the selector's cancellation outcome forward to the guard.
type policyHint struct {
	decision *model.PolicyDecision
}

// selectAndRun invokes the tools implied by the intent, appending invocations
// and evidence in fixed order. Extraction misses degrade to defaults or skip
// the dependent call; this stage never fails.
func (r *Runner) selectAndRun(s *model.RunState) policyHint {
	switch s.Intent {
	case model.IntentProductAssist:
		r.runProductAssist(s)
	case model.IntentOrderHelp:
		return r.runOrderHelp(s)
	}
	return policyHint{}
}

// runProductAssist runs search, then eta when a zip-like token is present,
// then size recommendation, always in that order.
func (r *Runner) runProductAssist(s *model.RunState) {
	priceMax, ok := extract.MaxPrice(s.Query)
	if !ok {
		priceMax = defaultPriceCap
	}
	searchTags := extract.Tags(s.Query)

	products := tools.SearchProducts(r.catalog, searchQueryTerm, priceMax, searchTags)
	s.AppendInvocation(model.ToolProductSearch, map[string]any{
		"query":     searchQueryTerm,
		"price_max": priceMax,
		"tags":      searchTags,
	}, products)
	for _, p := range products {
		s.AppendEvidence(p)
	}

	if zip, ok := extract.Zip(s.Query); ok {
		est := tools.EstimateDelivery(zip)
		s.AppendInvocation(model.ToolETA, map[string]any{"zip": zip}, est)
		s.AppendEvidence(model.DeliveryEvidence{Zip: zip, ETA: est})
	}

	rec := tools.RecommendSize(s.Query)
	s.AppendInvocation(model.ToolSizeRecommender, map[string]any{"user_inputs": s.Query}, rec)
	s.AppendEvidence(rec)
}

// runOrderHelp looks up the order when both id and email are present, and
// derives the policy decision in the same step as the cancel invocation.
func (r *Runner) runOrderHelp(s *model.RunState) policyHint {
	orderID, okID := extract.OrderID(s.Query)
	email, okEmail := extract.Email(s.Query)
	if !okID || !okEmail {
		logx.Debug().Bool("order_id", okID).Bool("email", okEmail).Msg("order lookup skipped, missing identifiers")
		return policyHint{}
	}

	ord, found := tools.LookupOrder(r.orders, orderID, email)
	var lookupResult any
	if found {
		lookupResult = ord
	}
	s.AppendInvocation(model.ToolOrderLookup, map[string]any{
		"order_id": orderID,
		"email":    email,
	}, lookupResult)
	if !found {
		return policyHint{}
	}

	s.AppendEvidence(model.OrderEvidence{
		OrderID:   ord.OrderID,
		CreatedAt: ord.CreatedAt.Format(time.RFC3339),
	})

	if !strings.Contains(strings.ToLower(s.Query), "cancel") {
		return policyHint{}
	}

	result := tools.CancelOrder(r.orders, orderID, r.now())
	s.AppendInvocation(model.ToolOrderCancel, map[string]any{"order_id": orderID}, result)

	decision := &model.PolicyDecision{CancelAllowed: result.Success}
	if !result.Success {
		decision.Reason = policyDeniedReason
	}
	return policyHint{decision: decision}
}
