package inventory

import (
	"context"
)

//go:generate mockgen -source=repository.go -destination=mocks/repository_mock.go -package=mocks

// Repository stores items of a single Collection. Failures are always
// *errors.AppError values.
type Repository interface {
	Collection() Collection
	// Create fails with ErrISBNExists or ErrTitleExists, checked in that order.
	Create(ctx context.Context, item *Item) error
	GetByID(ctx context.Context, itemID uint) (*Item, error)
	GetAll(ctx context.Context) ([]*Item, error)
	Update(ctx context.Context, itemID uint, patch *Patch) error
	Delete(ctx context.Context, itemID uint) error
}
