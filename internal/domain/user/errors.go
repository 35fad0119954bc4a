package user

import appErrors "bookstore-management/pkg/errors"

var (
	ErrUserNotFound          = appErrors.NotFound("User not found")
	ErrNoUsers               = appErrors.NotFound("No users found.")
	ErrUserNotFoundForUpdate = appErrors.NotFound("User not found for update")
	ErrUserNotFoundForDelete = appErrors.NotFound("User not found for delete")
	ErrUserAlreadyExists     = appErrors.Conflict("User already registered.")
)
