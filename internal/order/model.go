package order

import (
	"time"

	"fstore-be/internal/cart"

	"github.com/shopspring/decimal"
)

// Status is free-form; these are the values the storefront uses.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusAccepted  Status = "ACCEPTED"
	StatusDelivered Status = "DELIVERED"
	StatusCancelled Status = "CANCELLED"
)

type Order struct {
	ID            uint
	UserID        uint
	Items         []*cart.Cart
	Total         decimal.Decimal
	Status        Status
	PaymentMethod string
	Note          string
	FeedbackID    *uint
	Feedback      *Feedback
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type Feedback struct {
	ID        uint
	OrderID   uint
	Rating    int
	Content   string
	CreatedAt time.Time
}

// CustomerReport aggregates one customer's orders placed in a date range.
// Cancelled orders count as returned revenue.
type CustomerReport struct {
	CustomerID    uint            `json:"customerId"`
	CustomerName  string          `json:"customerName"`
	OrderCount    int             `json:"orderCount"`
	Revenue       decimal.Decimal `json:"revenue"`
	ReturnRevenue decimal.Decimal `json:"returnRevenue"`
	NetRevenue    decimal.Decimal `json:"netRevenue"`
}
