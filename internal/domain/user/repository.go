package user

import (
	"context"
)

//go:generate mockgen -source=repository.go -destination=mocks/repository_mock.go -package=mocks

// Repository defines the interface for user repository operations. Failures are
// always *errors.AppError values; persistence errors never cross this boundary raw.
type Repository interface {
	// Create fails with ErrUserAlreadyExists when the email is taken.
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, userID uint) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	// GetAll fails with ErrNoUsers when there is nothing to return.
	GetAll(ctx context.Context) ([]*User, error)
	Update(ctx context.Context, userID uint, patch *Patch) error
	Delete(ctx context.Context, userID uint) error
}
