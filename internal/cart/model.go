package cart

import (
	"time"

	"fstore-be/internal/food"

	"github.com/shopspring/decimal"
)

// Cart is one line item of a user's basket. Once Ordered is set it belongs
// to the order referenced by OrderID and is never reused.
type Cart struct {
	ID         uint
	UserID     uint
	FoodID     uint
	FoodSizeID uint
	Quantity   int
	Price      decimal.Decimal
	Note       string
	Ordered    bool
	OrderID    *uint
	CreatedAt  time.Time

	Food     *food.Food
	FoodSize *food.FoodSize
}

type AddToCartParams struct {
	FoodID     uint   `json:"food_id"`
	FoodSizeID uint   `json:"food_size_id"`
	Quantity   int    `json:"quantity"`
	Note       string `json:"note"`
}
