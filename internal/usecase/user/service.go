package user

import (
	"context"
	"errors"

	"bookstore-management/internal/config"
	domainUser "bookstore-management/internal/domain/user"
	"bookstore-management/internal/logger"
	"bookstore-management/internal/observability/metrics"
	"bookstore-management/internal/validator"
	appErrors "bookstore-management/pkg/errors"
	"bookstore-management/pkg/utils"

	"go.uber.org/zap"
)

// Service implements user use cases
type Service struct {
	userRepo domainUser.Repository
	config   *config.Config
}

// NewService creates a new user service
func NewService(userRepo domainUser.Repository, cfg *config.Config) *Service {
	return &Service{
		userRepo: userRepo,
		config:   cfg,
	}
}

func (s *Service) Register(ctx context.Context, req *CreateUserRequest) (*UserResponse, error) {
	// Presence is judged on sanitized text so markup-only values count as empty.
	name, email := sanitizedName(req.Name), sanitizedEmail(req.Email)
	if err := validator.RequiredFields(
		validator.Required("name", name),
		validator.Required("email", email),
		validator.Required("password", req.Password),
		validator.RequiredFlag("isActive", req.IsActive),
	); err != nil {
		return nil, err
	}

	if !validator.IsValidEmail(*email) {
		return nil, appErrors.ErrInvalidEmail
	}

	hashedPassword, err := utils.HashPassword(*req.Password)
	if err != nil {
		return nil, appErrors.Internal("failed to hash password", err)
	}

	user := &domainUser.User{
		Name:           *name,
		Email:          *email,
		PasswordHashed: hashedPassword,
		IsActive:       req.IsActive.(bool),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domainUser.ErrUserAlreadyExists) {
			logger.Warn("Registration attempt with existing email",
				zap.String("email", user.Email),
				zap.String("event", "registration_failed_duplicate_email"),
			)
		}
		return nil, err
	}

	logger.Info("User registered successfully",
		zap.Uint("user_id", user.ID),
		zap.String("email", user.Email),
		zap.String("event", "user_registered"),
	)

	return ToUserResponse(user), nil
}

// Authenticate verifies the credentials and issues a session token.
func (s *Service) Authenticate(ctx context.Context, req *AuthRequest) (*TokenResponse, error) {
	email := utils.SanitizeEmail(req.Email)
	if email == "" || req.Password == "" {
		return nil, appErrors.ErrMissingCredentials
	}
	if !validator.IsValidEmail(email) {
		return nil, appErrors.ErrInvalidEmail
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domainUser.ErrUserNotFound) {
			logger.Warn("Login attempt with non-existent email",
				zap.String("email", email),
				zap.String("event", "user_not_found"),
			)
			metrics.ObserveAuth("unknown_email")
			return nil, appErrors.ErrUnknownEmail
		}
		return nil, err
	}

	if !user.IsActive {
		logger.Warn("Login attempt for inactive user",
			zap.Uint("user_id", user.ID),
			zap.String("event", "login_failed_inactive_user"),
		)
		metrics.ObserveAuth("inactive")
		return nil, appErrors.ErrUserInactive
	}

	if !utils.CheckPassword(user.PasswordHashed, req.Password) {
		logger.Warn("Login attempt with invalid password",
			zap.Uint("user_id", user.ID),
			zap.String("event", "login_failed_invalid_password"),
		)
		metrics.ObserveAuth("invalid_password")
		return nil, appErrors.ErrInvalidCredentials
	}

	token, err := utils.GenerateToken(user.ID, user.Name, user.Email, s.config.JWT.Secret, utils.TokenTTL)
	if err != nil {
		return nil, appErrors.Internal("failed to generate token", err)
	}

	logger.Info("User logged in successfully",
		zap.Uint("user_id", user.ID),
		zap.String("event", "login_success"),
	)
	metrics.ObserveAuth("success")

	return &TokenResponse{Token: token}, nil
}

func (s *Service) GetUser(ctx context.Context, userID uint) (*UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return ToUserResponse(user), nil
}

func (s *Service) ListUsers(ctx context.Context) ([]*UserResponse, error) {
	users, err := s.userRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return ToUserResponses(users), nil
}

// UpdateUser applies a partial update. A new password is hashed before it is stored.
func (s *Service) UpdateUser(ctx context.Context, userID uint, req *UpdateUserRequest) error {
	patch, err := s.buildPatch(req)
	if err != nil {
		return err
	}
	if patch.IsEmpty() {
		return appErrors.ErrEmptyUpdate
	}

	if err := s.userRepo.Update(ctx, userID, patch); err != nil {
		return err
	}

	logger.Info("User updated",
		zap.Uint("user_id", userID),
		zap.Bool("password_changed", patch.PasswordHashed != nil),
		zap.String("event", "user_updated"),
	)
	return nil
}

func (s *Service) buildPatch(req *UpdateUserRequest) (*domainUser.Patch, error) {
	patch := &domainUser.Patch{IsActive: req.IsActive}

	name := sanitizedName(req.Name)

	var provided []validator.Field
	if name != nil {
		provided = append(provided, validator.Required("name", name))
	}
	if req.Password != nil {
		provided = append(provided, validator.Required("password", req.Password))
	}
	if err := validator.RequiredFields(provided...); err != nil {
		return nil, err
	}

	patch.Name = name
	if req.Email != nil {
		email := utils.SanitizeEmail(*req.Email)
		if !validator.IsValidEmail(email) {
			return nil, appErrors.ErrInvalidEmail
		}
		patch.Email = &email
	}
	if req.Password != nil {
		hashed, err := utils.HashPassword(*req.Password)
		if err != nil {
			return nil, appErrors.Internal("failed to hash password", err)
		}
		patch.PasswordHashed = &hashed
	}
	return patch, nil
}

func (s *Service) DeleteUser(ctx context.Context, userID uint) error {
	if err := s.userRepo.Delete(ctx, userID); err != nil {
		return err
	}

	logger.Info("User deleted",
		zap.Uint("user_id", userID),
		zap.String("event", "user_deleted"),
	)
	return nil
}

func sanitizedName(s *string) *string {
	if s == nil {
		return nil
	}
	return utils.StringPtr(utils.SanitizeString(*s))
}

func sanitizedEmail(s *string) *string {
	if s == nil {
		return nil
	}
	return utils.StringPtr(utils.SanitizeEmail(*s))
}
