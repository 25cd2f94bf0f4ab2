package order

import (
	"fstore-be/internal/cart"
)

func ToOrderDTO(o *Order) *OrderDTO {
	if o == nil {
		return nil
	}

	items := cart.ToCartDTOs(o.Items)
	return &OrderDTO{
		ID:            o.ID,
		Items:         items,
		Total:         o.Total,
		Status:        o.Status,
		PaymentMethod: o.PaymentMethod,
		Note:          o.Note,
		Feedback:      ToFeedbackDTO(o.Feedback),
		CreatedAt:     o.CreatedAt,
	}
}

func ToOrderDTOs(orders []*Order) []*OrderDTO {
	out := make([]*OrderDTO, 0, len(orders))
	for _, o := range orders {
		out = append(out, ToOrderDTO(o))
	}
	return out
}

// ToFeedback copies rating and content; the timestamp is assigned on insert.
func ToFeedback(dto FeedbackDTO) *Feedback {
	return &Feedback{Rating: dto.Rating, Content: dto.Content}
}

func ToFeedbackDTO(f *Feedback) *FeedbackDTO {
	if f == nil {
		return nil
	}
	createdAt := f.CreatedAt
	return &FeedbackDTO{Rating: f.Rating, Content: f.Content, CreatedAt: &createdAt}
}

// CartIDs returns the referenced cart ids in request order. Nil entries are
// skipped.
func CartIDs(dto OrderDTO) []uint {
	ids := make([]uint, 0, len(dto.Items))
	for _, it := range dto.Items {
		if it == nil {
			continue
		}
		ids = append(ids, it.ID)
	}
	return ids
}
