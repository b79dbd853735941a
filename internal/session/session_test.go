package session

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookstore/internal/domain"
)

func TestMemoryStore_EmptyCartRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	items, err := store.GetCart(ctx, "missing-key")
	require.NoError(t, err)
	assert.Empty(t, items)

	require.NoError(t, store.SetCart(ctx, "k", []domain.CartItem{}))
	items, err = store.GetCart(ctx, "k")
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestMemoryStore_PopulatedCartRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	in := []domain.CartItem{
		{BookID: 1, BookTitle: "Dune", Quantity: 2, UnitPrice: decimal.RequireFromString("9.99")},
		{BookID: 2, BookTitle: "Hyperion", Quantity: 1, UnitPrice: decimal.RequireFromString("14.99")},
	}
	require.NoError(t, store.SetCart(ctx, "k", in))

	out, err := store.GetCart(ctx, "k")
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, int64(1), out[0].BookID)
	assert.Equal(t, "Dune", out[0].BookTitle)
	assert.Equal(t, 2, out[0].Quantity)
	assert.True(t, out[0].UnitPrice.Equal(decimal.RequireFromString("9.99")))
	assert.True(t, out[1].UnitPrice.Equal(decimal.RequireFromString("14.99")))
}

func TestMemoryStore_Clear(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	require.NoError(t, store.SetCart(ctx, "k", []domain.CartItem{{BookID: 5, Quantity: 1, UnitPrice: decimal.New(100, -2)}}))
	require.NoError(t, store.Clear(ctx, "k"))

	items, err := store.GetCart(ctx, "k")
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestMemoryStore_KeysIsolated(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	require.NoError(t, store.SetCart(ctx, "a", []domain.CartItem{{BookID: 1, Quantity: 1}}))

	items, err := store.GetCart(ctx, "b")
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestCartSubtotal(t *testing.T) {
	items := []domain.CartItem{
		{BookID: 1, Quantity: 2, UnitPrice: decimal.RequireFromString("9.99")},
		{BookID: 2, Quantity: 1, UnitPrice: decimal.RequireFromString("12.00")},
	}
	assert.True(t, domain.CartSubtotal(items).Equal(decimal.RequireFromString("31.98")))
	assert.True(t, domain.CartSubtotal(nil).Equal(decimal.Zero))
}
