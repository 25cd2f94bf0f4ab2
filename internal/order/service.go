package order

import (
	"context"
	"strings"
	"time"

	"fstore-be/internal/logger"
	"fstore-be/internal/metrics"
	"fstore-be/internal/user"

	"go.uber.org/zap"
)

// EventPublisher delivers order events to the broker. Implemented by
// messaging.Publisher and messaging.NoopPublisher.
type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, payload any) error
}

type Service interface {
	MakeOrder(ctx context.Context, u *user.User, dto OrderDTO) (*OrderDTO, error)
	UpdateOrder(ctx context.Context, u *user.User, orderID uint, dto OrderDTO) (*OrderDTO, error)
	GetOrders(ctx context.Context, u *user.User) ([]*OrderDTO, error)
	GetOrder(ctx context.Context, u *user.User, orderID uint) (*OrderDTO, error)
	Feedback(ctx context.Context, orderID uint, dto FeedbackDTO) (*OrderDTO, error)
	DeleteOrder(ctx context.Context, u *user.User, orderID uint) error
	// CustomerReport covers the calendar days from..to, both inclusive.
	CustomerReport(ctx context.Context, u *user.User, from, to time.Time) ([]*CustomerReport, error)
}

type service struct {
	repo      Repository
	publisher EventPublisher
	metrics   *metrics.Registry
}

func NewService(repo Repository, publisher EventPublisher, reg *metrics.Registry) Service {
	return &service{repo: repo, publisher: publisher, metrics: reg}
}

func (s *service) MakeOrder(ctx context.Context, u *user.User, dto OrderDTO) (*OrderDTO, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "MakeOrder"),
	)

	if u == nil {
		return nil, user.ErrNotAuthenticated
	}

	timer := metrics.StartTimer()
	cartIDs := CartIDs(dto)

	status := Status(strings.TrimSpace(string(dto.Status)))
	if status == "" {
		status = StatusPending
	}

	o := &Order{
		UserID:        u.ID,
		Status:        status,
		PaymentMethod: dto.PaymentMethod,
		Note:          dto.Note,
	}

	if err := s.repo.CreateOrderTx(ctx, o, cartIDs); err != nil {
		s.count(metrics.OrdersFailed)
		log.Warn("order placement failed",
			zap.Uints("cart_ids", cartIDs),
			zap.Error(err),
		)
		return nil, err
	}

	s.count(metrics.OrdersPlaced)
	log.Info("order placed",
		zap.Uint("order_id", o.ID),
		zap.Int("items", len(o.Items)),
		zap.String("total", o.Total.String()),
		zap.Duration("duration", timer.Duration()),
	)

	s.publish(ctx, RoutingOrderPlaced, OrderPlacedEvent{
		OrderID:  o.ID,
		UserID:   o.UserID,
		CartIDs:  cartIDs,
		Total:    o.Total.String(),
		Status:   o.Status,
		PlacedAt: o.CreatedAt,
	})

	return ToOrderDTO(o), nil
}

func (s *service) UpdateOrder(ctx context.Context, u *user.User, orderID uint, dto OrderDTO) (*OrderDTO, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "UpdateOrder"),
		zap.Uint("order_id", orderID),
	)

	if u == nil {
		return nil, user.ErrNotAuthenticated
	}

	o, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o.UserID != u.ID {
		log.Warn("status update by non-owner", zap.Uint("owner_id", o.UserID))
		return nil, ErrNotOrderOwner
	}

	status := Status(strings.TrimSpace(string(dto.Status)))
	if status == "" {
		return nil, ErrEmptyStatus
	}

	if err := s.repo.UpdateStatus(ctx, o.ID, status); err != nil {
		log.Error("failed to update status", zap.Error(err))
		return nil, err
	}

	old := o.Status
	o.Status = status
	o.UpdatedAt = time.Now()
	s.count(metrics.OrderStatusUpdates)

	log.Info("order status updated",
		zap.String("old_status", string(old)),
		zap.String("new_status", string(status)),
	)
	s.publish(ctx, RoutingOrderStatusChanged, OrderStatusChangedEvent{
		OrderID:   o.ID,
		UserID:    o.UserID,
		OldStatus: old,
		NewStatus: status,
		ChangedAt: o.UpdatedAt,
	})

	return ToOrderDTO(o), nil
}

func (s *service) GetOrders(ctx context.Context, u *user.User) ([]*OrderDTO, error) {
	if u == nil {
		return nil, user.ErrNotAuthenticated
	}

	orders, err := s.repo.ListByUserID(ctx, u.ID)
	if err != nil {
		return nil, err
	}
	return ToOrderDTOs(orders), nil
}

func (s *service) GetOrder(ctx context.Context, u *user.User, orderID uint) (*OrderDTO, error) {
	if u == nil {
		return nil, user.ErrNotAuthenticated
	}

	o, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o.UserID != u.ID && !u.IsAdmin() {
		return nil, ErrNotOrderOwner
	}
	return ToOrderDTO(o), nil
}

// Feedback attaches a new feedback to the order, replacing any earlier one.
// Any caller may leave feedback on any order.
func (s *service) Feedback(ctx context.Context, orderID uint, dto FeedbackDTO) (*OrderDTO, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Feedback"),
		zap.Uint("order_id", orderID),
	)

	o, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	f := ToFeedback(dto)
	if err := s.repo.AttachFeedbackTx(ctx, o.ID, f); err != nil {
		log.Error("failed to attach feedback", zap.Error(err))
		return nil, err
	}

	feedbackID := f.ID
	o.FeedbackID = &feedbackID
	o.Feedback = f
	s.count(metrics.FeedbackSubmitted)

	log.Info("feedback attached", zap.Uint("feedback_id", f.ID), zap.Int("rating", f.Rating))
	s.publish(ctx, RoutingOrderFeedback, OrderFeedbackEvent{
		OrderID:    o.ID,
		FeedbackID: f.ID,
		Rating:     f.Rating,
		CreatedAt:  f.CreatedAt,
	})

	return ToOrderDTO(o), nil
}

// DeleteOrder lets the owner or an admin drop a PENDING order. Its carts
// return to the owner's pending cart.
func (s *service) DeleteOrder(ctx context.Context, u *user.User, orderID uint) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "DeleteOrder"),
		zap.Uint("order_id", orderID),
	)

	if u == nil {
		return user.ErrNotAuthenticated
	}

	o, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return err
	}
	if o.UserID != u.ID && !u.IsAdmin() {
		log.Warn("delete by non-owner", zap.Uint("owner_id", o.UserID))
		return ErrNotOrderOwner
	}
	if o.Status != StatusPending {
		return ErrOrderNotPending
	}

	if err := s.repo.DeleteOrderTx(ctx, o.ID); err != nil {
		log.Warn("failed to delete order", zap.Error(err))
		return err
	}

	cartIDs := make([]uint, 0, len(o.Items))
	for _, it := range o.Items {
		cartIDs = append(cartIDs, it.ID)
	}

	s.count(metrics.OrdersDeleted)
	log.Info("order deleted", zap.Uints("cart_ids", cartIDs))
	s.publish(ctx, RoutingOrderDeleted, OrderDeletedEvent{
		OrderID:   o.ID,
		UserID:    o.UserID,
		CartIDs:   cartIDs,
		DeletedBy: u.ID,
		DeletedAt: time.Now(),
	})
	return nil
}

func (s *service) CustomerReport(ctx context.Context, u *user.User, from, to time.Time) ([]*CustomerReport, error) {
	if u == nil {
		return nil, user.ErrNotAuthenticated
	}
	if !u.IsAdmin() {
		return nil, ErrReportForbidden
	}

	start := startOfDay(from)
	end := startOfDay(to).AddDate(0, 0, 1)
	if !end.After(start) {
		return nil, ErrInvalidRange
	}

	report, err := s.repo.CustomerReport(ctx, start, end)
	if err != nil {
		logger.FromCtx(ctx).Error("customer report failed",
			zap.String("layer", "service"),
			zap.Time("from", start),
			zap.Time("to", end),
			zap.Error(err),
		)
		return nil, err
	}
	if report == nil {
		report = []*CustomerReport{}
	}
	return report, nil
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// publish runs after the transaction committed; a broker failure is logged
// and never fails the request.
func (s *service) publish(ctx context.Context, routingKey string, payload any) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, routingKey, payload); err != nil {
		logger.FromCtx(ctx).Warn("failed to publish order event",
			zap.String("routing_key", routingKey),
			zap.Error(err),
		)
	}
}

func (s *service) count(name string) {
	if s.metrics != nil {
		s.metrics.Counter(name).Inc()
	}
}
