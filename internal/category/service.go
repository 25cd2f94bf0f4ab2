package category

import (
	"context"
	"strings"
)

type Service interface {
	List(ctx context.Context, filter string) ([]*Category, error)
	Create(ctx context.Context, name string) (*Category, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) List(ctx context.Context, filter string) ([]*Category, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Create(ctx context.Context, name string) (*Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	return s.repo.Create(ctx, name)
}
