package order

import (
	"time"

	"fstore-be/internal/cart"

	"github.com/shopspring/decimal"
)

// OrderDTO is both the placement request and the response shape. On
// placement only Items[].ID, Status, PaymentMethod and Note are read.
type OrderDTO struct {
	ID            uint            `json:"id"`
	Items         []*cart.CartDTO `json:"items"`
	Total         decimal.Decimal `json:"total"`
	Status        Status          `json:"status"`
	PaymentMethod string          `json:"payment_method,omitempty"`
	Note          string          `json:"note,omitempty"`
	Feedback      *FeedbackDTO    `json:"feedback,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

type FeedbackDTO struct {
	Rating    int        `json:"rating"`
	Content   string     `json:"content"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
}
