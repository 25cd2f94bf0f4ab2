package cart

import (
	"context"

	"fstore-be/internal/food"
	"fstore-be/internal/logger"
	"fstore-be/internal/metrics"
	"fstore-be/internal/user"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Service defines the business logic for carts. Every method acts on behalf
// of u and refuses to touch carts owned by someone else.
type Service interface {
	AddToCart(ctx context.Context, u *user.User, params AddToCartParams) (*Cart, error)
	GetCart(ctx context.Context, u *user.User) ([]*Cart, error)
	// UpdateQuantity returns nil, nil when quantity <= 0 removed the cart.
	UpdateQuantity(ctx context.Context, u *user.User, cartID uint, quantity int) (*Cart, error)
	RemoveFromCart(ctx context.Context, u *user.User, cartID uint) error
}

type service struct {
	repo    Repository
	foods   food.Service
	metrics *metrics.Registry
}

func NewService(repo Repository, foods food.Service, reg *metrics.Registry) Service {
	return &service{repo: repo, foods: foods, metrics: reg}
}

func (s *service) AddToCart(ctx context.Context, u *user.User, params AddToCartParams) (*Cart, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "AddToCart"),
		zap.Uint("food_id", params.FoodID),
		zap.Uint("food_size_id", params.FoodSizeID),
	)

	if u == nil {
		return nil, user.ErrNotAuthenticated
	}
	if params.Quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	f, size, err := s.foods.ResolveSize(ctx, params.FoodID, params.FoodSizeID)
	if err != nil {
		log.Warn("food not orderable", zap.Error(err))
		return nil, err
	}

	c := &Cart{
		UserID:     u.ID,
		FoodID:     f.ID,
		FoodSizeID: size.ID,
		Quantity:   params.Quantity,
		Price:      size.Price.Mul(decimal.NewFromInt(int64(params.Quantity))),
		Note:       params.Note,
		Food:       f,
		FoodSize:   size,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.Counter(metrics.CartItemsAdded).Inc()
	}
	log.Info("cart item added", zap.Uint("cart_id", c.ID), zap.String("price", c.Price.String()))
	return c, nil
}

func (s *service) GetCart(ctx context.Context, u *user.User) ([]*Cart, error) {
	if u == nil {
		return nil, user.ErrNotAuthenticated
	}
	return s.repo.ListPendingByUser(ctx, u.ID)
}

// ownedPending loads a cart that u may still change.
func (s *service) ownedPending(ctx context.Context, u *user.User, cartID uint) (*Cart, error) {
	if u == nil {
		return nil, user.ErrNotAuthenticated
	}

	c, err := s.repo.GetByID(ctx, cartID)
	if err != nil {
		return nil, err
	}
	if c.UserID != u.ID {
		logger.FromCtx(ctx).Warn("cart ownership mismatch",
			zap.Uint("cart_id", cartID),
			zap.Uint("owner_id", c.UserID),
		)
		return nil, ErrNotCartOwner
	}
	if c.Ordered {
		return nil, ErrCartAlreadyOrdered
	}
	return c, nil
}

func (s *service) UpdateQuantity(ctx context.Context, u *user.User, cartID uint, quantity int) (*Cart, error) {
	c, err := s.ownedPending(ctx, u, cartID)
	if err != nil {
		return nil, err
	}

	if quantity <= 0 {
		return nil, s.repo.Delete(ctx, c.ID)
	}

	price := c.FoodSize.Price.Mul(decimal.NewFromInt(int64(quantity)))
	if err := s.repo.UpdateQuantity(ctx, c.ID, quantity, price); err != nil {
		return nil, err
	}

	c.Quantity = quantity
	c.Price = price
	return c, nil
}

func (s *service) RemoveFromCart(ctx context.Context, u *user.User, cartID uint) error {
	c, err := s.ownedPending(ctx, u, cartID)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, c.ID)
}
