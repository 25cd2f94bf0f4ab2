package food

import "fstore-be/internal/apperror"

var (
	ErrFoodNotFound     = apperror.NotFound("food not found")
	ErrFoodSizeNotFound = apperror.NotFound("food size not found")

	ErrEmptyName     = apperror.Invalid("food name cannot be empty")
	ErrNoSizes       = apperror.Invalid("food needs at least one size")
	ErrInvalidPrice  = apperror.Invalid("size price must not be negative")
	ErrEmptySizeName = apperror.Invalid("size label cannot be empty")
)
