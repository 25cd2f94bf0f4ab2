package cart

import "fstore-be/internal/apperror"

var (
	ErrInvalidQuantity    = apperror.Invalid("quantity must be greater than zero")
	ErrCartNotFound       = apperror.NotFound("cart not found")
	ErrNotCartOwner       = apperror.Unauthorized("cart belongs to another user")
	ErrCartAlreadyOrdered = apperror.Conflict("cart already ordered")
)
