package cart

import (
	"fstore-be/internal/food"

	"github.com/shopspring/decimal"
)

type CartDTO struct {
	ID       uint              `json:"id"`
	Quantity int               `json:"quantity"`
	Food     *food.FoodDTO     `json:"food,omitempty"`
	FoodSize *food.FoodSizeDTO `json:"food_size,omitempty"`
	Price    decimal.Decimal   `json:"price"`
	Note     string            `json:"note"`
	Ordered  bool              `json:"ordered"`
}
