package cart

import (
	"context"
	"database/sql"
	"errors"

	"fstore-be/internal/food"
	"fstore-be/internal/logger"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type Repository interface {
	Create(ctx context.Context, c *Cart) error
	GetByID(ctx context.Context, id uint) (*Cart, error)
	ListPendingByUser(ctx context.Context, userID uint) ([]*Cart, error)
	UpdateQuantity(ctx context.Context, id uint, quantity int, price decimal.Decimal) error
	Delete(ctx context.Context, id uint) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

// SelectCarts selects cart rows with their food name and size. Callers
// append their own WHERE/ORDER BY and read rows with ScanCart.
const SelectCarts = `
	SELECT
		c.id,
		c.user_id,
		c.food_id,
		c.food_size_id,
		c.quantity,
		c.price,
		c.note,
		c.ordered,
		c.order_id,
		c.created_at,
		f.name,
		fs.size,
		fs.price
	FROM carts c
	JOIN foods f ON f.id = c.food_id
	JOIN food_sizes fs ON fs.id = c.food_size_id
`

type rowScanner interface {
	Scan(dest ...any) error
}

func ScanCart(row rowScanner) (*Cart, error) {
	var (
		c       Cart
		orderID sql.NullInt64
		fd      food.Food
		size    food.FoodSize
	)
	if err := row.Scan(
		&c.ID,
		&c.UserID,
		&c.FoodID,
		&c.FoodSizeID,
		&c.Quantity,
		&c.Price,
		&c.Note,
		&c.Ordered,
		&orderID,
		&c.CreatedAt,
		&fd.Name,
		&size.Size,
		&size.Price,
	); err != nil {
		return nil, err
	}

	if orderID.Valid {
		id := uint(orderID.Int64)
		c.OrderID = &id
	}
	fd.ID = c.FoodID
	size.ID = c.FoodSizeID
	size.FoodID = c.FoodID
	c.Food = &fd
	c.FoodSize = &size
	return &c, nil
}

func (r *repository) Create(ctx context.Context, c *Cart) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Create"),
	)

	err := r.db.QueryRowContext(ctx, `
		INSERT INTO carts (user_id, food_id, food_size_id, quantity, price, note)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`, c.UserID, c.FoodID, c.FoodSizeID, c.Quantity, c.Price, c.Note).Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		log.Error("failed to insert cart", zap.Error(err))
		return err
	}
	return nil
}

func (r *repository) GetByID(ctx context.Context, id uint) (*Cart, error) {
	c, err := ScanCart(r.db.QueryRowContext(ctx, SelectCarts+" WHERE c.id = $1", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCartNotFound
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *repository) ListPendingByUser(ctx context.Context, userID uint) ([]*Cart, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "ListPendingByUser"),
	)

	rows, err := r.db.QueryContext(ctx,
		SelectCarts+" WHERE c.user_id = $1 AND c.ordered = false ORDER BY c.id ASC", userID)
	if err != nil {
		log.Error("DB query failed", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	carts := make([]*Cart, 0)
	for rows.Next() {
		c, err := ScanCart(rows)
		if err != nil {
			log.Error("Row scan failed", zap.Error(err))
			return nil, err
		}
		carts = append(carts, c)
	}
	return carts, rows.Err()
}

func (r *repository) UpdateQuantity(ctx context.Context, id uint, quantity int, price decimal.Decimal) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE carts
		SET quantity = $1, price = $2
		WHERE id = $3 AND ordered = false
	`, quantity, price, id)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		// The row was ordered between the service check and this write.
		return ErrCartAlreadyOrdered
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id uint) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM carts WHERE id = $1 AND ordered = false`, id)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrCartAlreadyOrdered
	}
	return nil
}
