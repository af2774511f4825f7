package pipeline

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopassist-poc/server/internal/agent/model"
)

// respond renders the final message from the accumulated state. Pure string
// templating keyed by intent; no tool calls, no failure path, always a
// non-empty result.
func (r *Runner) respond(s *model.RunState) {
	var msg string
	switch s.Intent {
	case model.IntentProductAssist:
		msg = renderProductAssist(s)
	case model.IntentOrderHelp:
		msg = renderOrderHelp(s)
	default:
		msg = renderOther(s.Query)
	}
	s.SetFinalMessage(msg)
}

func renderProductAssist(s *model.RunState) string {
	var products []model.ProductSummary
	var sizeRec *model.SizeRecommendation
	var est *model.DeliveryEstimate

	for _, inv := range s.Invocations {
		switch inv.Tool {
		case model.ToolProductSearch:
			if p, ok := inv.Result.([]model.ProductSummary); ok {
				products = p
			}
		case model.ToolSizeRecommender:
			if rec, ok := inv.Result.(model.SizeRecommendation); ok {
				sizeRec = &rec
			}
		case model.ToolETA:
			if e, ok := inv.Result.(model.DeliveryEstimate); ok {
				est = &e
			}
		}
	}

	if len(products) == 0 {
		return "I couldn't find any dresses matching your criteria. Would you like to try a different search?"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "I found %d dress(es) matching your criteria:\n\n", len(products))
	for i, p := range products {
		fmt.Fprintf(&b, "%d) %s ($%s) in %s, available sizes: %s\n",
			i+1, p.Title, formatPrice(p.Price), p.Color, strings.Join(p.Sizes, ", "))
	}
	if sizeRec != nil {
		fmt.Fprintf(&b, "\nSize recommendation: %s - %s\n", sizeRec.RecommendedSize, sizeRec.Rationale)
	}
	if est != nil {
		fmt.Fprintf(&b, "\nDelivery estimate: %d-%d days\n", est.MinDays, est.MaxDays)
	}
	b.WriteString("\nLet me know if you'd like more details about any of these options!")
	return b.String()
}

func renderOrderHelp(s *model.RunState) string {
	var order *model.Order
	var cancelResult *model.CancelResult

	for _, inv := range s.Invocations {
		switch inv.Tool {
		case model.ToolOrderLookup:
			if ord, ok := inv.Result.(model.Order); ok {
				order = &ord
			}
		case model.ToolOrderCancel:
			if res, ok := inv.Result.(model.CancelResult); ok {
				cancelResult = &res
			}
		}
	}

	if order == nil {
		return "I couldn't find your order. Please check that the order ID and email address are correct."
	}

	if cancelResult != nil {
		if cancelResult.Success {
			return fmt.Sprintf(
				"I've successfully cancelled your order %s. You should receive a confirmation email shortly.",
				order.OrderID)
		}
		return fmt.Sprintf(
			"I'm unable to cancel order %s as it was placed more than 60 minutes ago. "+
				"Our policy allows cancellations only within the first hour after purchase. "+
				"Would you like to:\n"+
				"1) Edit the shipping address instead?\n"+
				"2) Receive store credit for future purchases?\n"+
				"3) Speak with our support team for other options?",
			order.OrderID)
	}

	return fmt.Sprintf(
		"I found your order %s placed on %s. It contains %d item(s). How can I help you with this order?",
		order.OrderID, order.CreatedAt.Format("January 2, 2006"), len(order.Items))
}

func renderOther(query string) string {
	lower := strings.ToLower(query)
	if strings.Contains(lower, "discount") && strings.Contains(lower, "code") {
		return "I can't provide discount codes that aren't in our system. " +
			"However, you might enjoy our newsletter subscriber discount (10% off first order) " +
			"or our seasonal sales. Would you like me to tell you more about these?"
	}
	return "I'm here to help with product recommendations and order assistance. How can I help you today?"
}

// formatPrice renders a price without trailing zeros, so whole-dollar prices
// stay "$89" and cents survive as "$89.99".
func formatPrice(p float64) string {
	return strconv.FormatFloat(p, 'f', -1, 64)
}
