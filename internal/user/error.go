package user

import "fstore-be/internal/apperror"

var (
	ErrUserNotFound      = apperror.NotFound("user not found")
	ErrEmailExists       = apperror.Conflict("email already registered")
	ErrNotAuthenticated  = apperror.Unauthorized("user not authenticated")
	ErrInvalidCredential = apperror.Invalid("email and password are required")
)
