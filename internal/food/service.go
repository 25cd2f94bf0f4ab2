package food

import (
	"context"
	"strings"

	"fstore-be/internal/category"
	"fstore-be/internal/logger"

	"go.uber.org/zap"
)

type Service interface {
	List(ctx context.Context, filter ListFilter) ([]*Food, error)
	Get(ctx context.Context, id uint) (*Food, error)
	Create(ctx context.Context, params CreateFoodParams) (*Food, error)
	SoftDelete(ctx context.Context, id uint) error
	// ResolveSize returns an orderable food together with one of its sizes.
	ResolveSize(ctx context.Context, foodID, sizeID uint) (*Food, *FoodSize, error)
}

type service struct {
	repo         Repository
	categoryRepo category.Repository
}

func NewService(repo Repository, categoryRepo category.Repository) Service {
	return &service{repo: repo, categoryRepo: categoryRepo}
}

func (s *service) List(ctx context.Context, filter ListFilter) ([]*Food, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Get(ctx context.Context, id uint) (*Food, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) Create(ctx context.Context, params CreateFoodParams) (*Food, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Create"),
	)

	params.Name = strings.TrimSpace(params.Name)
	if params.Name == "" {
		return nil, ErrEmptyName
	}
	if len(params.Sizes) == 0 {
		return nil, ErrNoSizes
	}
	for i, sz := range params.Sizes {
		if strings.TrimSpace(sz.Size) == "" {
			return nil, ErrEmptySizeName
		}
		if sz.Price.IsNegative() {
			return nil, ErrInvalidPrice
		}
		params.Sizes[i].Size = strings.TrimSpace(sz.Size)
	}

	tags := make([]string, 0, len(params.Tags))
	seen := make(map[string]bool, len(params.Tags))
	for _, t := range params.Tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		tags = append(tags, t)
	}
	params.Tags = tags

	var cat *category.Category
	if params.CategoryID != nil {
		c, err := s.categoryRepo.GetByID(ctx, *params.CategoryID)
		if err != nil {
			log.Warn("category lookup failed", zap.Uint("category_id", *params.CategoryID), zap.Error(err))
			return nil, err
		}
		cat = c
	}

	f, err := s.repo.Create(ctx, params)
	if err != nil {
		return nil, err
	}
	f.Category = cat
	return f, nil
}

func (s *service) SoftDelete(ctx context.Context, id uint) error {
	if err := s.repo.SoftDelete(ctx, id); err != nil {
		return err
	}
	logger.FromCtx(ctx).Info("food soft-deleted", zap.Uint("food_id", id))
	return nil
}

func (s *service) ResolveSize(ctx context.Context, foodID, sizeID uint) (*Food, *FoodSize, error) {
	f, err := s.repo.GetByID(ctx, foodID)
	if err != nil {
		return nil, nil, err
	}
	if f.IsDeleted {
		return nil, nil, ErrFoodNotFound
	}

	size, err := s.repo.GetSize(ctx, sizeID)
	if err != nil {
		return nil, nil, err
	}
	if size.FoodID != f.ID {
		return nil, nil, ErrFoodSizeNotFound
	}
	return f, size, nil
}
