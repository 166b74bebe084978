package models

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func product(price string, stock int) *Product {
	return &Product{ID: uuid.New(), Name: "Widget", Price: decimal.RequireFromString(price), Stock: stock}
}

func TestCart_IncrementKeepsLockedPrice(t *testing.T) {
	cart := NewCart(uuid.New())
	p := product("10.00", 5)

	cart.Increment(p, 2)
	p.Price = decimal.RequireFromString("12.50")
	cart.Increment(p, 1)

	require.Len(t, cart.Items, 1)
	assert.Equal(t, 3, cart.Items[0].Quantity)
	assert.True(t, cart.Total.Equal(decimal.RequireFromString("30.00")), cart.Total.String())
}

func TestCart_SetRefreshesPrice(t *testing.T) {
	cart := NewCart(uuid.New())
	p := product("10.00", 5)
	cart.Increment(p, 2)

	p.Price = decimal.RequireFromString("12.50")
	cart.Set(p, 4)

	assert.Equal(t, 4, cart.QuantityOf(p.ID))
	assert.True(t, cart.Total.Equal(decimal.RequireFromString("50.00")), cart.Total.String())
}

func TestCart_RemovePreservesOrder(t *testing.T) {
	cart := NewCart(uuid.New())
	a, b, c := product("1.00", 9), product("2.00", 9), product("3.00", 9)
	cart.Increment(a, 1)
	cart.Increment(b, 1)
	cart.Increment(c, 1)

	assert.True(t, cart.Remove(b.ID))
	assert.False(t, cart.Remove(b.ID))

	require.Len(t, cart.Items, 2)
	assert.Equal(t, a.ID, cart.Items[0].ProductID)
	assert.Equal(t, c.ID, cart.Items[1].ProductID)
	assert.True(t, cart.Total.Equal(decimal.RequireFromString("4")))
}

func TestCart_EmptyCartJSON(t *testing.T) {
	b, err := json.Marshal(NewCart(uuid.New()))
	require.NoError(t, err)

	assert.Contains(t, string(b), `"items":[]`)
	assert.Contains(t, string(b), `"total":"0"`)
	assert.NotContains(t, string(b), "userId")
}
