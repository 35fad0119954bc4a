package postgres

import (
	"context"
	"errors"
	"time"

	"bookstore-management/internal/domain/user"
	"bookstore-management/internal/infrastructure/database/postgres/models"

	"gorm.io/gorm"
)

// UserRepository implements user.Repository on top of gorm.
type UserRepository struct {
	db *DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *DB) user.Repository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	taken, err := r.emailTaken(ctx, u.Email, 0)
	if err != nil {
		return err
	}
	if taken {
		return user.ErrUserAlreadyExists
	}

	now := time.Now()
	u.CreatedAt = now
	u.UpdatedAt = now

	dbModel := toUserModel(u)
	if err := r.db.DB.WithContext(ctx).Create(dbModel).Error; err != nil {
		return translate(err, user.ErrUserAlreadyExists, "failed to create user")
	}

	u.ID = dbModel.ID
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, userID uint) (*user.User, error) {
	var dbModel models.UserModel
	err := r.db.DB.WithContext(ctx).First(&dbModel, "id = ?", userID).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, user.ErrUserNotFound
	}
	if err != nil {
		return nil, translate(err, nil, "failed to get user")
	}

	return toUserEntity(&dbModel), nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	var dbModel models.UserModel
	err := r.db.DB.WithContext(ctx).Where("email = ?", email).First(&dbModel).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, user.ErrUserNotFound
	}
	if err != nil {
		return nil, translate(err, nil, "failed to get user")
	}

	return toUserEntity(&dbModel), nil
}

func (r *UserRepository) GetAll(ctx context.Context) ([]*user.User, error) {
	var dbModels []models.UserModel
	if err := r.db.DB.WithContext(ctx).Order("id").Find(&dbModels).Error; err != nil {
		return nil, translate(err, nil, "failed to get users")
	}
	if len(dbModels) == 0 {
		return nil, user.ErrNoUsers
	}

	users := make([]*user.User, len(dbModels))
	for i := range dbModels {
		users[i] = toUserEntity(&dbModels[i])
	}

	return users, nil
}

func (r *UserRepository) Update(ctx context.Context, userID uint, patch *user.Patch) error {
	exists, err := r.exists(ctx, userID)
	if err != nil {
		return err
	}
	if !exists {
		return user.ErrUserNotFoundForUpdate
	}

	if patch.Email != nil {
		taken, err := r.emailTaken(ctx, *patch.Email, userID)
		if err != nil {
			return err
		}
		if taken {
			return user.ErrUserAlreadyExists
		}
	}

	updates := map[string]interface{}{"updated_at": time.Now()}
	if patch.Name != nil {
		updates["name"] = *patch.Name
	}
	if patch.Email != nil {
		updates["email"] = *patch.Email
	}
	if patch.PasswordHashed != nil {
		updates["password_hashed"] = *patch.PasswordHashed
	}
	if patch.IsActive != nil {
		updates["is_active"] = *patch.IsActive
	}

	result := r.db.DB.WithContext(ctx).Model(&models.UserModel{}).
		Where("id = ?", userID).
		Updates(updates)
	if result.Error != nil {
		return translate(result.Error, user.ErrUserAlreadyExists, "failed to update user")
	}
	if result.RowsAffected == 0 {
		return user.ErrUserNotFoundForUpdate
	}

	return nil
}

func (r *UserRepository) Delete(ctx context.Context, userID uint) error {
	exists, err := r.exists(ctx, userID)
	if err != nil {
		return err
	}
	if !exists {
		return user.ErrUserNotFoundForDelete
	}

	result := r.db.DB.WithContext(ctx).Delete(&models.UserModel{}, "id = ?", userID)
	if result.Error != nil {
		return translate(result.Error, nil, "failed to delete user")
	}
	if result.RowsAffected == 0 {
		return user.ErrUserNotFoundForDelete
	}

	return nil
}

func (r *UserRepository) exists(ctx context.Context, userID uint) (bool, error) {
	var count int64
	err := r.db.DB.WithContext(ctx).Model(&models.UserModel{}).
		Where("id = ?", userID).
		Count(&count).Error
	if err != nil {
		return false, translate(err, nil, "failed to look up user")
	}
	return count > 0, nil
}

// emailTaken ignores the row with id exceptID so an update may keep its own email.
func (r *UserRepository) emailTaken(ctx context.Context, email string, exceptID uint) (bool, error) {
	var count int64
	query := r.db.DB.WithContext(ctx).Model(&models.UserModel{}).Where("email = ?", email)
	if exceptID != 0 {
		query = query.Where("id <> ?", exceptID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, translate(err, nil, "failed to check email")
	}
	return count > 0, nil
}

func toUserModel(u *user.User) *models.UserModel {
	return &models.UserModel{
		ID:             u.ID,
		Name:           u.Name,
		Email:          u.Email,
		PasswordHashed: u.PasswordHashed,
		IsActive:       u.IsActive,
		CreatedAt:      u.CreatedAt,
		UpdatedAt:      u.UpdatedAt,
	}
}

func toUserEntity(m *models.UserModel) *user.User {
	return &user.User{
		ID:             m.ID,
		Name:           m.Name,
		Email:          m.Email,
		PasswordHashed: m.PasswordHashed,
		IsActive:       m.IsActive,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}
