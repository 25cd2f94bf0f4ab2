package order

import (
	"testing"

	"fstore-be/internal/cart"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lockedCarts(carts ...*cart.Cart) map[uint]*cart.Cart {
	m := make(map[uint]*cart.Cart, len(carts))
	for _, c := range carts {
		m[c.ID] = c
	}
	return m
}

func TestAssembleItems(t *testing.T) {
	c1 := func() *cart.Cart { return &cart.Cart{ID: 1, UserID: 1, Price: decimal.NewFromInt(10)} }
	c2 := func() *cart.Cart { return &cart.Cart{ID: 2, UserID: 1, Price: decimal.NewFromInt(15)} }

	t.Run("SumsInRequestOrder", func(t *testing.T) {
		items, total, err := assembleItems(1, []uint{2, 1}, lockedCarts(c1(), c2()))
		require.NoError(t, err)
		assert.True(t, decimal.NewFromInt(25).Equal(total))
		require.Len(t, items, 2)
		assert.Equal(t, uint(2), items[0].ID)
		assert.Equal(t, uint(1), items[1].ID)
	})

	t.Run("ExactDecimalSum", func(t *testing.T) {
		prices := []string{"0.10", "0.20", "0.30", "19.99"}
		carts := make([]*cart.Cart, 0, len(prices))
		ids := make([]uint, 0, len(prices))
		for i, p := range prices {
			id := uint(i + 1)
			carts = append(carts, &cart.Cart{ID: id, UserID: 1, Price: decimal.RequireFromString(p)})
			ids = append(ids, id)
		}

		_, total, err := assembleItems(1, ids, lockedCarts(carts...))
		require.NoError(t, err)
		assert.Equal(t, "20.59", total.StringFixed(2))
		assert.True(t, decimal.RequireFromString("20.59").Equal(total))
	})

	t.Run("Empty", func(t *testing.T) {
		items, total, err := assembleItems(1, nil, lockedCarts())
		require.NoError(t, err)
		assert.Empty(t, items)
		assert.True(t, total.IsZero())
	})

	tests := []struct {
		name    string
		ids     []uint
		carts   map[uint]*cart.Cart
		wantErr error
	}{
		{"missing cart", []uint{1, 99}, lockedCarts(c1()), cart.ErrCartNotFound},
		{"other user's cart", []uint{3}, lockedCarts(&cart.Cart{ID: 3, UserID: 2}), cart.ErrNotCartOwner},
		{"already ordered", []uint{4}, lockedCarts(&cart.Cart{ID: 4, UserID: 1, Ordered: true}), cart.ErrCartAlreadyOrdered},
		{"listed twice", []uint{1, 1}, lockedCarts(c1()), ErrDuplicateCart},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items, total, err := assembleItems(1, tt.ids, tt.carts)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, items)
			assert.True(t, total.IsZero())
		})
	}

	t.Run("NoMutation", func(t *testing.T) {
		c := c1()
		_, _, err := assembleItems(1, []uint{1, 99}, lockedCarts(c))
		assert.Error(t, err)
		assert.False(t, c.Ordered)
		assert.Nil(t, c.OrderID)
	})
}
