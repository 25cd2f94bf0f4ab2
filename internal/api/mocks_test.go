package api

import (
	"context"
	"time"

	"fstore-be/internal/cart"
	"fstore-be/internal/category"
	"fstore-be/internal/food"
	"fstore-be/internal/order"
	"fstore-be/internal/user"

	"github.com/stretchr/testify/mock"
)

type MockUserService struct{ mock.Mock }

func (m *MockUserService) Register(ctx context.Context, email, password, name string) (*user.User, error) {
	args := m.Called(ctx, email, password, name)
	u, _ := args.Get(0).(*user.User)
	return u, args.Error(1)
}

func (m *MockUserService) GetAuthorizedUser(ctx context.Context) (*user.User, error) {
	args := m.Called(ctx)
	u, _ := args.Get(0).(*user.User)
	return u, args.Error(1)
}

type MockCategoryService struct{ mock.Mock }

func (m *MockCategoryService) List(ctx context.Context, filter string) ([]*category.Category, error) {
	args := m.Called(ctx, filter)
	out, _ := args.Get(0).([]*category.Category)
	return out, args.Error(1)
}

func (m *MockCategoryService) Create(ctx context.Context, name string) (*category.Category, error) {
	args := m.Called(ctx, name)
	c, _ := args.Get(0).(*category.Category)
	return c, args.Error(1)
}

// MockFoodService only implements what the handlers call; the rest of the
// interface panics through the nil embed.
type MockFoodService struct {
	food.Service
	mock.Mock
}

func (m *MockFoodService) List(ctx context.Context, filter food.ListFilter) ([]*food.Food, error) {
	args := m.Called(ctx, filter)
	out, _ := args.Get(0).([]*food.Food)
	return out, args.Error(1)
}

func (m *MockFoodService) Get(ctx context.Context, id uint) (*food.Food, error) {
	args := m.Called(ctx, id)
	f, _ := args.Get(0).(*food.Food)
	return f, args.Error(1)
}

func (m *MockFoodService) Create(ctx context.Context, params food.CreateFoodParams) (*food.Food, error) {
	args := m.Called(ctx, params)
	f, _ := args.Get(0).(*food.Food)
	return f, args.Error(1)
}

func (m *MockFoodService) SoftDelete(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

type MockCartService struct{ mock.Mock }

func (m *MockCartService) AddToCart(ctx context.Context, u *user.User, params cart.AddToCartParams) (*cart.Cart, error) {
	args := m.Called(ctx, u, params)
	c, _ := args.Get(0).(*cart.Cart)
	return c, args.Error(1)
}

func (m *MockCartService) GetCart(ctx context.Context, u *user.User) ([]*cart.Cart, error) {
	args := m.Called(ctx, u)
	out, _ := args.Get(0).([]*cart.Cart)
	return out, args.Error(1)
}

func (m *MockCartService) UpdateQuantity(ctx context.Context, u *user.User, cartID uint, quantity int) (*cart.Cart, error) {
	args := m.Called(ctx, u, cartID, quantity)
	c, _ := args.Get(0).(*cart.Cart)
	return c, args.Error(1)
}

func (m *MockCartService) RemoveFromCart(ctx context.Context, u *user.User, cartID uint) error {
	return m.Called(ctx, u, cartID).Error(0)
}

type MockOrderService struct{ mock.Mock }

func (m *MockOrderService) MakeOrder(ctx context.Context, u *user.User, dto order.OrderDTO) (*order.OrderDTO, error) {
	args := m.Called(ctx, u, dto)
	o, _ := args.Get(0).(*order.OrderDTO)
	return o, args.Error(1)
}

func (m *MockOrderService) UpdateOrder(ctx context.Context, u *user.User, orderID uint, dto order.OrderDTO) (*order.OrderDTO, error) {
	args := m.Called(ctx, u, orderID, dto)
	o, _ := args.Get(0).(*order.OrderDTO)
	return o, args.Error(1)
}

func (m *MockOrderService) GetOrders(ctx context.Context, u *user.User) ([]*order.OrderDTO, error) {
	args := m.Called(ctx, u)
	out, _ := args.Get(0).([]*order.OrderDTO)
	return out, args.Error(1)
}

func (m *MockOrderService) GetOrder(ctx context.Context, u *user.User, orderID uint) (*order.OrderDTO, error) {
	args := m.Called(ctx, u, orderID)
	o, _ := args.Get(0).(*order.OrderDTO)
	return o, args.Error(1)
}

func (m *MockOrderService) Feedback(ctx context.Context, orderID uint, dto order.FeedbackDTO) (*order.OrderDTO, error) {
	args := m.Called(ctx, orderID, dto)
	o, _ := args.Get(0).(*order.OrderDTO)
	return o, args.Error(1)
}

func (m *MockOrderService) DeleteOrder(ctx context.Context, u *user.User, orderID uint) error {
	return m.Called(ctx, u, orderID).Error(0)
}

func (m *MockOrderService) CustomerReport(ctx context.Context, u *user.User, from, to time.Time) ([]*order.CustomerReport, error) {
	args := m.Called(ctx, u, from, to)
	out, _ := args.Get(0).([]*order.CustomerReport)
	return out, args.Error(1)
}
