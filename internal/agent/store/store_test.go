package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopassist-poc/server/internal/agent/model"
)

func TestLoadEmbedded(t *testing.T) {
	catalog, orders, err := LoadEmbedded()
	require.NoError(t, err)

	assert.Equal(t, 8, catalog.Len())
	assert.Equal(t, 3, orders.Len())

	ord, ok := orders.Find("A1001", "rehan@example.com")
	require.True(t, ok)
	assert.Equal(t, time.Date(2025, 1, 5, 10, 0, 0, 0, time.UTC), ord.CreatedAt)
	assert.Len(t, ord.Items, 2)
}

func TestCatalogSearch(t *testing.T) {
	catalog, _, err := LoadEmbedded()
	require.NoError(t, err)

	// all filters combined, catalog order preserved
	got := catalog.Search("dress", 100, []string{"wedding"})
	require.Len(t, got, 3)
	assert.Equal(t, "P1001", got[0].ID)
	assert.Equal(t, "P1002", got[1].ID)
	assert.Equal(t, "P1007", got[2].ID)

	// empty query skips the title filter
	got = catalog.Search("", 50, nil)
	require.Len(t, got, 1)
	assert.Equal(t, "P1008", got[0].ID)

	// non-positive ceiling skips the price filter
	got = catalog.Search("sequin", 0, nil)
	require.Len(t, got, 1)
	assert.Equal(t, "P1006", got[0].ID)

	// tag match is any-overlap and case-insensitive
	got = catalog.Search("", 0, []string{"DAYWEAR"})
	require.Len(t, got, 3)

	got = catalog.Search("no such title", 0, nil)
	assert.Empty(t, got)
}

func TestOrdersFindAndGet(t *testing.T) {
	orders := NewOrders([]model.Order{
		{OrderID: "A1", Email: "a@example.com"},
		{OrderID: "B2", Email: "b@example.com"},
	})

	ord, ok := orders.Find("B2", "b@example.com")
	require.True(t, ok)
	assert.Equal(t, "B2", ord.OrderID)

	// Find requires both fields to match
	_, ok = orders.Find("B2", "a@example.com")
	assert.False(t, ok)

	// Get matches on id alone
	ord, ok = orders.Get("B2")
	require.True(t, ok)
	assert.Equal(t, "b@example.com", ord.Email)

	_, ok = orders.Get("C3")
	assert.False(t, ok)
}
