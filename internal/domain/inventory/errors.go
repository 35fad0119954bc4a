package inventory

import appErrors "bookstore-management/pkg/errors"

var (
	ErrISBNExists  = appErrors.Conflict("ISBN already exists")
	ErrTitleExists = appErrors.Conflict("Title already exists")

	ErrReservedExceedsTotal = appErrors.Validation("Reserved stock cannot exceed total stock.")
)

func ErrNotFound(c Collection) *appErrors.AppError {
	return appErrors.NotFound(c.Name + " not found")
}

func ErrNoneFound(c Collection) *appErrors.AppError {
	return appErrors.NotFound("No " + c.Plural + " found.")
}

func ErrNotFoundForUpdate(c Collection) *appErrors.AppError {
	return appErrors.NotFound(c.Name + " not found for update")
}

func ErrNotFoundForDelete(c Collection) *appErrors.AppError {
	return appErrors.NotFound(c.Name + " not found for delete")
}
