package category

import "fstore-be/internal/apperror"

var (
	ErrCategoryNotFound = apperror.NotFound("category not found")
	ErrCategoryExists   = apperror.Conflict("category already exists")
	ErrEmptyName        = apperror.Invalid("category name cannot be empty")
)
