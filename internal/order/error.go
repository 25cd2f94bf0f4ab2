package order

import "fstore-be/internal/apperror"

var (
	ErrOrderNotFound = apperror.NotFound("order not found")
	ErrNotOrderOwner = apperror.Unauthorized("order belongs to another user")
	ErrDuplicateCart = apperror.Conflict("cart listed more than once")
	ErrEmptyStatus   = apperror.Invalid("status is required")

	ErrOrderNotPending = apperror.Conflict("only pending orders can be deleted")
	ErrReportForbidden = apperror.Forbidden("reports are restricted to admins")
	ErrInvalidRange    = apperror.Invalid("end date must not be before start date")
)
