package store

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/shopassist-poc/server/internal/agent/model"
)

//go:embed data/products.json
var productsData []byte

//go:embed data/orders.json
var ordersData []byte

// LoadEmbedded builds the catalog and order sources from the mock datasets
// compiled into the binary. This is the offline default when no Redis is
// configured.
func LoadEmbedded() (*Catalog, *Orders, error) {
	var products []model.Product
	if err := json.Unmarshal(productsData, &products); err != nil {
		return nil, nil, fmt.Errorf("unmarshal embedded products: %w", err)
	}

	var orders []model.Order
	if err := json.Unmarshal(ordersData, &orders); err != nil {
		return nil, nil, fmt.Errorf("unmarshal embedded orders: %w", err)
	}

	return NewCatalog(products), NewOrders(orders), nil
}
