package food

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"fstore-be/internal/category"
	"fstore-be/internal/db"
	"fstore-be/internal/logger"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

type Repository interface {
	List(ctx context.Context, filter ListFilter) ([]*Food, error)
	GetByID(ctx context.Context, id uint) (*Food, error)
	Create(ctx context.Context, params CreateFoodParams) (*Food, error)
	SoftDelete(ctx context.Context, id uint) error
	GetSize(ctx context.Context, sizeID uint) (*FoodSize, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const selectFood = `
	SELECT
		f.id,
		f.name,
		f.description,
		f.is_deleted,
		f.category_id,
		c.name,
		f.created_at
	FROM foods f
	LEFT JOIN categories c ON c.id = f.category_id
`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanFood(row rowScanner) (*Food, error) {
	var (
		f            Food
		categoryID   sql.NullInt64
		categoryName sql.NullString
	)
	if err := row.Scan(
		&f.ID,
		&f.Name,
		&f.Description,
		&f.IsDeleted,
		&categoryID,
		&categoryName,
		&f.CreatedAt,
	); err != nil {
		return nil, err
	}

	if categoryID.Valid {
		id := uint(categoryID.Int64)
		f.CategoryID = &id
		f.Category = &category.Category{ID: id, Name: categoryName.String}
	}
	return &f, nil
}

func (r *repository) List(ctx context.Context, filter ListFilter) ([]*Food, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "List"),
	)

	query := selectFood
	where := []string{}
	args := []interface{}{}

	if !filter.IncludeDeleted {
		where = append(where, "f.is_deleted = false")
	}
	if filter.CategoryID != nil {
		where = append(where, fmt.Sprintf("f.category_id = $%d", len(args)+1))
		args = append(args, *filter.CategoryID)
	}
	if s := strings.TrimSpace(filter.Search); s != "" {
		where = append(where, fmt.Sprintf("f.name ILIKE $%d", len(args)+1))
		args = append(args, "%"+s+"%")
	}

	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY f.id ASC"

	log.Debug("Executing List query", zap.String("query", query), zap.Any("args", args))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("DB query failed", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	foods := make([]*Food, 0)
	for rows.Next() {
		f, err := scanFood(rows)
		if err != nil {
			log.Error("Row scan failed", zap.Error(err))
			return nil, err
		}
		foods = append(foods, f)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	rows.Close()

	if err := r.loadDetails(ctx, foods); err != nil {
		log.Error("failed to load food details", zap.Error(err))
		return nil, err
	}
	return foods, nil
}

func (r *repository) GetByID(ctx context.Context, id uint) (*Food, error) {
	f, err := scanFood(r.db.QueryRowContext(ctx, selectFood+" WHERE f.id = $1", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrFoodNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := r.loadDetails(ctx, []*Food{f}); err != nil {
		return nil, err
	}
	return f, nil
}

// loadDetails fills sizes, images and tags for foods with one query each.
func (r *repository) loadDetails(ctx context.Context, foods []*Food) error {
	if len(foods) == 0 {
		return nil
	}

	byID := make(map[uint]*Food, len(foods))
	ids := make([]int64, 0, len(foods))
	for _, f := range foods {
		byID[f.ID] = f
		ids = append(ids, int64(f.ID))
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, food_id, size, price
		FROM food_sizes
		WHERE food_id = ANY($1)
		ORDER BY id ASC
	`, pq.Array(ids))
	if err != nil {
		return fmt.Errorf("load sizes: %w", err)
	}
	for rows.Next() {
		var s FoodSize
		if err := rows.Scan(&s.ID, &s.FoodID, &s.Size, &s.Price); err != nil {
			rows.Close()
			return fmt.Errorf("scan size: %w", err)
		}
		if f, ok := byID[s.FoodID]; ok {
			f.Sizes = append(f.Sizes, &s)
		}
	}
	rows.Close()

	rows, err = r.db.QueryContext(ctx, `
		SELECT fi.food_id, i.id, i.url
		FROM food_image fi
		JOIN images i ON i.id = fi.image_id
		WHERE fi.food_id = ANY($1)
		ORDER BY i.id ASC
	`, pq.Array(ids))
	if err != nil {
		return fmt.Errorf("load images: %w", err)
	}
	for rows.Next() {
		var (
			foodID uint
			img    Image
		)
		if err := rows.Scan(&foodID, &img.ID, &img.URL); err != nil {
			rows.Close()
			return fmt.Errorf("scan image: %w", err)
		}
		if f, ok := byID[foodID]; ok {
			f.Images = append(f.Images, &img)
		}
	}
	rows.Close()

	rows, err = r.db.QueryContext(ctx, `
		SELECT ft.food_id, t.id, t.name
		FROM food_tag ft
		JOIN tags t ON t.id = ft.tag_id
		WHERE ft.food_id = ANY($1)
		ORDER BY t.name ASC
	`, pq.Array(ids))
	if err != nil {
		return fmt.Errorf("load tags: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			foodID uint
			tag    Tag
		)
		if err := rows.Scan(&foodID, &tag.ID, &tag.Name); err != nil {
			return fmt.Errorf("scan tag: %w", err)
		}
		if f, ok := byID[foodID]; ok {
			f.Tags = append(f.Tags, &tag)
		}
	}
	return rows.Err()
}

func (r *repository) Create(ctx context.Context, params CreateFoodParams) (*Food, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Create"),
		zap.String("food_name", params.Name),
	)

	f := &Food{
		Name:        params.Name,
		Description: params.Description,
		CategoryID:  params.CategoryID,
	}

	err := db.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		if err := tx.QueryRowContext(ctx, `
			INSERT INTO foods (name, description, category_id)
			VALUES ($1, $2, $3)
			RETURNING id, created_at
		`, params.Name, params.Description, params.CategoryID).Scan(&f.ID, &f.CreatedAt); err != nil {
			return fmt.Errorf("insert food: %w", err)
		}

		for _, in := range params.Sizes {
			s := &FoodSize{FoodID: f.ID, Size: in.Size, Price: in.Price}
			if err := tx.QueryRowContext(ctx, `
				INSERT INTO food_sizes (food_id, size, price)
				VALUES ($1, $2, $3)
				RETURNING id
			`, f.ID, in.Size, in.Price).Scan(&s.ID); err != nil {
				return fmt.Errorf("insert size: %w", err)
			}
			f.Sizes = append(f.Sizes, s)
		}

		for _, url := range params.ImageURLs {
			img := &Image{URL: url}
			if err := tx.QueryRowContext(ctx,
				`INSERT INTO images (url) VALUES ($1) RETURNING id`, url,
			).Scan(&img.ID); err != nil {
				return fmt.Errorf("insert image: %w", err)
			}
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO food_image (food_id, image_id) VALUES ($1, $2)`, f.ID, img.ID,
			); err != nil {
				return fmt.Errorf("link image: %w", err)
			}
			f.Images = append(f.Images, img)
		}

		for _, name := range params.Tags {
			tag := &Tag{Name: name}
			// Tags are shared between foods; reuse the row when the name exists.
			if err := tx.QueryRowContext(ctx, `
				INSERT INTO tags (name) VALUES ($1)
				ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
				RETURNING id
			`, name).Scan(&tag.ID); err != nil {
				return fmt.Errorf("upsert tag: %w", err)
			}
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO food_tag (food_id, tag_id) VALUES ($1, $2)
				ON CONFLICT DO NOTHING
			`, f.ID, tag.ID); err != nil {
				return fmt.Errorf("link tag: %w", err)
			}
			f.Tags = append(f.Tags, tag)
		}

		return nil
	})
	if err != nil {
		log.Error("failed to create food", zap.Error(err))
		return nil, err
	}

	log.Info("food created", zap.Uint("food_id", f.ID), zap.Int("sizes", len(f.Sizes)))
	return f, nil
}

func (r *repository) SoftDelete(ctx context.Context, id uint) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE foods
		SET is_deleted = true
		WHERE id = $1 AND is_deleted = false
	`, id)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrFoodNotFound
	}
	return nil
}

func (r *repository) GetSize(ctx context.Context, sizeID uint) (*FoodSize, error) {
	var s FoodSize
	err := r.db.QueryRowContext(ctx, `
		SELECT id, food_id, size, price
		FROM food_sizes
		WHERE id = $1
	`, sizeID).Scan(&s.ID, &s.FoodID, &s.Size, &s.Price)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrFoodSizeNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}
