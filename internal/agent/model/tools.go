package model

// Tool names as exposed on the wire (trace tools_called and the tools API).
const (
	ToolProductSearch   = "product_search"
	ToolSizeRecommender = "size_recommender"
	ToolETA             = "eta"
	ToolOrderLookup     = "order_lookup"
	ToolOrderCancel     = "order_cancel"
)

// ProductSummary is the customer-facing slice of a Product surfaced as evidence.
type ProductSummary struct {
	ID    string   `json:"id"`
	Title string   `json:"title"`
	Price float64  `json:"price"`
	Color string   `json:"color"`
	Sizes []string `json:"sizes"`
}

// SizeRecommendation is the size_recommender result.
type SizeRecommendation struct {
	RecommendedSize string `json:"recommended_size"`
	Rationale       string `json:"rationale"`
}

// DeliveryEstimate is the eta result, an inclusive band in days.
type DeliveryEstimate struct {
	MinDays int `json:"min_days"`
	MaxDays int `json:"max_days"`
}

// DeliveryEvidence pairs a delivery estimate with the zip it was computed for.
type DeliveryEvidence struct {
	Zip string           `json:"zip"`
	ETA DeliveryEstimate `json:"eta"`
}

// OrderEvidence is the order metadata surfaced after a successful lookup.
type OrderEvidence struct {
	OrderID   string `json:"order_id"`
	CreatedAt string `json:"created_at"`
}

// CancelResult is the order_cancel outcome.
type CancelResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
