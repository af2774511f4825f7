package store

import (
	"strings"

	"github.com/shopassist-poc/server/internal/agent/model"
)

// Catalog is a read-only ordered product collection, shared across concurrent
// runs without locking. Load it once per process via LoadEmbedded or
// LoadFromRedis.
type Catalog struct {
	products []model.Product
}

func NewCatalog(products []model.Product) *Catalog {
	return &Catalog{products: products}
}

// Search filters by title substring (case-insensitive, skipped when query is
// empty), price ceiling (skipped when priceMax <= 0) and tag intersection
// (any overlap, skipped when tags is empty). Result order follows catalog
// order.
func (c *Catalog) Search(query string, priceMax float64, tags []string) []model.Product {
	queryLower := strings.ToLower(query)

	var matched []model.Product
	for _, p := range c.products {
		if query != "" && !strings.Contains(strings.ToLower(p.Title), queryLower) {
			continue
		}
		if priceMax > 0 && p.Price > priceMax {
			continue
		}
		if len(tags) > 0 && !anyTagOverlap(p.Tags, tags) {
			continue
		}
		matched = append(matched, p)
	}
	return matched
}

// Len reports the number of catalog entries.
func (c *Catalog) Len() int {
	return len(c.products)
}

func anyTagOverlap(have, want []string) bool {
	for _, w := range want {
		for _, h := range have {
			if strings.EqualFold(h, w) {
				return true
			}
		}
	}
	return false
}

// Orders is a read-only ordered order collection, shared across concurrent
// runs without locking.
type Orders struct {
	orders []model.Order
}

func NewOrders(orders []model.Order) *Orders {
	return &Orders{orders: orders}
}

// Find returns the order matching both id and email exactly.
func (o *Orders) Find(orderID, email string) (model.Order, bool) {
	for _, ord := range o.orders {
		if ord.OrderID == orderID && ord.Email == email {
			return ord, true
		}
	}
	return model.Order{}, false
}

// Get returns the order matching the id, regardless of email.
func (o *Orders) Get(orderID string) (model.Order, bool) {
	for _, ord := range o.orders {
		if ord.OrderID == orderID {
			return ord, true
		}
	}
	return model.Order{}, false
}

// Len reports the number of order records.
func (o *Orders) Len() int {
	return len(o.orders)
}
