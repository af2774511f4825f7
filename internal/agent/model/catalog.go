package model

import "time"

// Product is a read-only catalog entity sourced from the catalog store.
type Product struct {
	ID    string   `json:"id"`
	Title string   `json:"title"`
	Price float64  `json:"price"`
	Tags  []string `json:"tags"`
	Sizes []string `json:"sizes"`
	Color string   `json:"color"`
}

// OrderItem is one line of an order.
type OrderItem struct {
	ID   string `json:"id"`
	Size string `json:"size"`
}

// Order is a read-only order record. Cancellation never mutates it; the
// 60-minute policy is re-evaluated against CreatedAt on every attempt.
type Order struct {
	OrderID   string      `json:"order_id"`
	Email     string      `json:"email"`
	CreatedAt time.Time   `json:"created_at"`
	Items     []OrderItem `json:"items"`
}
