package cart

import "fstore-be/internal/food"

func ToCartDTO(c *Cart) *CartDTO {
	if c == nil {
		return nil
	}
	return &CartDTO{
		ID:       c.ID,
		Quantity: c.Quantity,
		Food:     food.ToFoodDTO(c.Food),
		FoodSize: food.ToFoodSizeDTO(c.FoodSize),
		Price:    c.Price,
		Note:     c.Note,
		Ordered:  c.Ordered,
	}
}

func ToCartDTOs(carts []*Cart) []*CartDTO {
	out := make([]*CartDTO, 0, len(carts))
	for _, c := range carts {
		out = append(out, ToCartDTO(c))
	}
	return out
}
