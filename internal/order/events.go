package order

import "time"

const (
	RoutingOrderPlaced        = "order.placed"
	RoutingOrderStatusChanged = "order.status_changed"
	RoutingOrderFeedback      = "order.feedback"
	RoutingOrderDeleted       = "order.deleted"
)

type OrderPlacedEvent struct {
	OrderID  uint      `json:"order_id"`
	UserID   uint      `json:"user_id"`
	CartIDs  []uint    `json:"cart_ids"`
	Total    string    `json:"total"`
	Status   Status    `json:"status"`
	PlacedAt time.Time `json:"placed_at"`
}

type OrderStatusChangedEvent struct {
	OrderID   uint      `json:"order_id"`
	UserID    uint      `json:"user_id"`
	OldStatus Status    `json:"old_status"`
	NewStatus Status    `json:"new_status"`
	ChangedAt time.Time `json:"changed_at"`
}

type OrderFeedbackEvent struct {
	OrderID    uint      `json:"order_id"`
	FeedbackID uint      `json:"feedback_id"`
	Rating     int       `json:"rating"`
	CreatedAt  time.Time `json:"created_at"`
}

type OrderDeletedEvent struct {
	OrderID   uint      `json:"order_id"`
	UserID    uint      `json:"user_id"`
	CartIDs   []uint    `json:"cart_ids"`
	DeletedBy uint      `json:"deleted_by"`
	DeletedAt time.Time `json:"deleted_at"`
}
