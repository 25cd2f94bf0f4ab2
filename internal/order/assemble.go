package order

import (
	"fstore-be/internal/cart"

	"github.com/shopspring/decimal"
)

// assembleItems validates the requested carts against the locked rows and
// returns them in request order with their summed price. Nothing is written;
// the caller persists the result only when err is nil.
func assembleItems(userID uint, ids []uint, locked map[uint]*cart.Cart) ([]*cart.Cart, decimal.Decimal, error) {
	total := decimal.Zero
	items := make([]*cart.Cart, 0, len(ids))
	seen := make(map[uint]bool, len(ids))

	for _, id := range ids {
		c, ok := locked[id]
		if !ok {
			return nil, decimal.Zero, cart.ErrCartNotFound
		}
		if c.UserID != userID {
			return nil, decimal.Zero, cart.ErrNotCartOwner
		}
		if seen[id] {
			return nil, decimal.Zero, ErrDuplicateCart
		}
		if c.Ordered {
			return nil, decimal.Zero, cart.ErrCartAlreadyOrdered
		}
		seen[id] = true

		items = append(items, c)
		total = total.Add(c.Price)
	}

	return items, total, nil
}
