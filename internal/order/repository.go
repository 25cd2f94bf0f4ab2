package order

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"time"

	"fstore-be/internal/cart"
	"fstore-be/internal/db"
	"fstore-be/internal/logger"
	"fstore-be/internal/utils"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

type Repository interface {
	// CreateOrderTx locks the referenced carts, validates them and inserts
	// the order in one transaction. It fills o.ID, o.Items, o.Total and the
	// timestamps.
	CreateOrderTx(ctx context.Context, o *Order, cartIDs []uint) error
	GetByID(ctx context.Context, id uint) (*Order, error)
	ListByUserID(ctx context.Context, userID uint) ([]*Order, error)
	UpdateStatus(ctx context.Context, id uint, status Status) error
	// AttachFeedbackTx inserts f and makes it the order's feedback,
	// replacing any previous one.
	AttachFeedbackTx(ctx context.Context, orderID uint, f *Feedback) error
	// DeleteOrderTx removes a PENDING order and hands its carts back to the
	// owner's pending cart.
	DeleteOrderTx(ctx context.Context, id uint) error
	// CustomerReport sums orders created in [from, to) per customer.
	CustomerReport(ctx context.Context, from, to time.Time) ([]*CustomerReport, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const selectOrders = `
	SELECT
		id,
		user_id,
		total,
		status,
		payment_method,
		note,
		feedback_id,
		created_at,
		updated_at
	FROM orders
`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner) (*Order, error) {
	var (
		o          Order
		feedbackID sql.NullInt64
	)
	if err := row.Scan(
		&o.ID,
		&o.UserID,
		&o.Total,
		&o.Status,
		&o.PaymentMethod,
		&o.Note,
		&feedbackID,
		&o.CreatedAt,
		&o.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if feedbackID.Valid {
		id := uint(feedbackID.Int64)
		o.FeedbackID = &id
	}
	return &o, nil
}

func (r *repository) CreateOrderTx(ctx context.Context, o *Order, cartIDs []uint) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "CreateOrderTx"),
		zap.Int("cart_count", len(cartIDs)),
	)

	return db.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		locked, err := lockCarts(ctx, tx, cartIDs)
		if err != nil {
			log.Error("failed to lock carts", zap.Error(err))
			return err
		}

		items, total, err := assembleItems(o.UserID, cartIDs, locked)
		if err != nil {
			log.Warn("cart validation failed", zap.Error(err))
			return err
		}

		if err := tx.QueryRowContext(ctx, `
			INSERT INTO orders (user_id, total, status, payment_method, note)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id, created_at, updated_at
		`, o.UserID, total, o.Status, o.PaymentMethod, o.Note).
			Scan(&o.ID, &o.CreatedAt, &o.UpdatedAt); err != nil {
			log.Error("failed to insert order", zap.Error(err))
			return fmt.Errorf("insert order: %w", err)
		}

		if len(items) > 0 {
			if _, err := tx.ExecContext(ctx, `
				UPDATE carts
				SET ordered = true, order_id = $1
				WHERE id = ANY($2)
			`, o.ID, pq.Array(utils.UintsToInt64s(cartIDs))); err != nil {
				log.Error("failed to link carts", zap.Error(err))
				return fmt.Errorf("link carts: %w", err)
			}
		}

		for _, c := range items {
			orderID := o.ID
			c.Ordered = true
			c.OrderID = &orderID
		}
		// Same order as loadDetails uses when the order is read back.
		sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
		o.Items = items
		o.Total = total
		return nil
	})
}

// lockCarts selects the carts FOR UPDATE so a concurrent placement blocks
// until this transaction finishes and then sees ordered = true.
func lockCarts(ctx context.Context, tx *sql.Tx, ids []uint) (map[uint]*cart.Cart, error) {
	locked := make(map[uint]*cart.Cart, len(ids))
	if len(ids) == 0 {
		return locked, nil
	}

	rows, err := tx.QueryContext(ctx,
		cart.SelectCarts+" WHERE c.id = ANY($1) FOR UPDATE OF c",
		pq.Array(utils.UintsToInt64s(ids)))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		c, err := cart.ScanCart(rows)
		if err != nil {
			return nil, err
		}
		locked[c.ID] = c
	}
	return locked, rows.Err()
}

func (r *repository) GetByID(ctx context.Context, id uint) (*Order, error) {
	o, err := scanOrder(r.db.QueryRowContext(ctx, selectOrders+" WHERE id = $1", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := r.loadDetails(ctx, []*Order{o}); err != nil {
		return nil, err
	}
	return o, nil
}

func (r *repository) ListByUserID(ctx context.Context, userID uint) ([]*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "ListByUserID"),
	)

	rows, err := r.db.QueryContext(ctx, selectOrders+" WHERE user_id = $1 ORDER BY id ASC", userID)
	if err != nil {
		log.Error("DB query failed", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	orders := make([]*Order, 0)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			log.Error("Row scan failed", zap.Error(err))
			return nil, err
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	rows.Close()

	if err := r.loadDetails(ctx, orders); err != nil {
		log.Error("failed to load order details", zap.Error(err))
		return nil, err
	}
	return orders, nil
}

// loadDetails attaches items (by cart id) and feedback to orders.
func (r *repository) loadDetails(ctx context.Context, orders []*Order) error {
	if len(orders) == 0 {
		return nil
	}

	byID := make(map[uint]*Order, len(orders))
	orderIDs := make([]int64, 0, len(orders))
	feedbackIDs := make([]int64, 0)
	for _, o := range orders {
		byID[o.ID] = o
		orderIDs = append(orderIDs, int64(o.ID))
		if o.FeedbackID != nil {
			feedbackIDs = append(feedbackIDs, int64(*o.FeedbackID))
		}
	}

	rows, err := r.db.QueryContext(ctx,
		cart.SelectCarts+" WHERE c.order_id = ANY($1) ORDER BY c.id ASC",
		pq.Array(orderIDs))
	if err != nil {
		return fmt.Errorf("load items: %w", err)
	}
	for rows.Next() {
		c, err := cart.ScanCart(rows)
		if err != nil {
			rows.Close()
			return fmt.Errorf("scan item: %w", err)
		}
		if c.OrderID == nil {
			continue
		}
		if o, ok := byID[*c.OrderID]; ok {
			o.Items = append(o.Items, c)
		}
	}
	rows.Close()

	if len(feedbackIDs) == 0 {
		return nil
	}

	rows, err = r.db.QueryContext(ctx, `
		SELECT id, order_id, rating, content, created_at
		FROM feedbacks
		WHERE id = ANY($1)
	`, pq.Array(feedbackIDs))
	if err != nil {
		return fmt.Errorf("load feedback: %w", err)
	}
	defer rows.Close()

	feedbacks := make(map[uint]*Feedback, len(feedbackIDs))
	for rows.Next() {
		var f Feedback
		if err := rows.Scan(&f.ID, &f.OrderID, &f.Rating, &f.Content, &f.CreatedAt); err != nil {
			return fmt.Errorf("scan feedback: %w", err)
		}
		feedbacks[f.ID] = &f
	}
	for _, o := range orders {
		if o.FeedbackID != nil {
			o.Feedback = feedbacks[*o.FeedbackID]
		}
	}
	return rows.Err()
}

func (r *repository) UpdateStatus(ctx context.Context, id uint, status Status) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE orders
		SET status = $1, updated_at = NOW()
		WHERE id = $2
	`, status, id)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrOrderNotFound
	}
	return nil
}

func (r *repository) AttachFeedbackTx(ctx context.Context, orderID uint, f *Feedback) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "AttachFeedbackTx"),
		zap.Uint("order_id", orderID),
	)

	f.OrderID = orderID
	return db.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		if err := tx.QueryRowContext(ctx, `
			INSERT INTO feedbacks (order_id, rating, content, created_at)
			VALUES ($1, $2, $3, NOW())
			RETURNING id, created_at
		`, orderID, f.Rating, f.Content).Scan(&f.ID, &f.CreatedAt); err != nil {
			log.Error("failed to insert feedback", zap.Error(err))
			return fmt.Errorf("insert feedback: %w", err)
		}

		res, err := tx.ExecContext(ctx,
			`UPDATE orders SET feedback_id = $1 WHERE id = $2`, f.ID, orderID)
		if err != nil {
			return fmt.Errorf("link feedback: %w", err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if affected == 0 {
			return ErrOrderNotFound
		}
		return nil
	})
}

func (r *repository) DeleteOrderTx(ctx context.Context, id uint) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "DeleteOrderTx"),
		zap.Uint("order_id", id),
	)

	return db.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		var status Status
		err := tx.QueryRowContext(ctx,
			`SELECT status FROM orders WHERE id = $1 FOR UPDATE`, id).Scan(&status)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrOrderNotFound
		}
		if err != nil {
			return fmt.Errorf("lock order: %w", err)
		}
		// Re-checked under the lock; a concurrent UpdateStatus may have won.
		if status != StatusPending {
			return ErrOrderNotPending
		}

		if _, err := tx.ExecContext(ctx, `
			UPDATE carts
			SET ordered = false, order_id = NULL
			WHERE order_id = $1
		`, id); err != nil {
			log.Error("failed to unlink carts", zap.Error(err))
			return fmt.Errorf("unlink carts: %w", err)
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM orders WHERE id = $1`, id); err != nil {
			log.Error("failed to delete order", zap.Error(err))
			return fmt.Errorf("delete order: %w", err)
		}
		return nil
	})
}

func (r *repository) CustomerReport(ctx context.Context, from, to time.Time) ([]*CustomerReport, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT
			u.id,
			u.name,
			COUNT(o.id),
			COALESCE(SUM(o.total), 0),
			COALESCE(SUM(o.total) FILTER (WHERE o.status = $3), 0)
		FROM orders o
		JOIN users u ON u.id = o.user_id
		WHERE o.created_at >= $1 AND o.created_at < $2
		GROUP BY u.id, u.name
		ORDER BY u.id ASC
	`, from, to, StatusCancelled)
	if err != nil {
		return nil, fmt.Errorf("customer report: %w", err)
	}
	defer rows.Close()

	var out []*CustomerReport
	for rows.Next() {
		var cr CustomerReport
		if err := rows.Scan(
			&cr.CustomerID,
			&cr.CustomerName,
			&cr.OrderCount,
			&cr.Revenue,
			&cr.ReturnRevenue,
		); err != nil {
			return nil, err
		}
		cr.NetRevenue = cr.Revenue.Sub(cr.ReturnRevenue)
		out = append(out, &cr)
	}
	return out, rows.Err()
}
