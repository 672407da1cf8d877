package identity

import (
	"context"

	"github.com/google/uuid"
	"github.com/movilshop/backend/internal/domain/identity"
	"github.com/movilshop/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// UserService handles staff account administration
type UserService struct {
	userRepo identity.UserRepository
	logger   *zap.Logger
}

// NewUserService creates a new user service
func NewUserService(userRepo identity.UserRepository, logger *zap.Logger) *UserService {
	return &UserService{
		userRepo: userRepo,
		logger:   logger,
	}
}

// Create creates a new staff account
func (s *UserService) Create(ctx context.Context, req CreateUserRequest) (*UserResponse, error) {
	exists, err := s.userRepo.ExistsByUsername(ctx, req.Username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("USERNAME_TAKEN", "Username is already in use")
	}

	user, err := identity.NewUser(req.Username, req.DisplayName, req.Password, identity.Role(req.Role))
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("staff account created",
		zap.String("username", user.Username),
		zap.String("role", string(user.Role)))

	resp := ToUserResponse(user)
	return &resp, nil
}

// GetByID returns a user by ID
func (s *UserService) GetByID(ctx context.Context, id uuid.UUID) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, shared.ErrNotFound
	}
	resp := ToUserResponse(user)
	return &resp, nil
}

// List returns all users with a total count for pagination
func (s *UserService) List(ctx context.Context, filter shared.Filter) ([]UserResponse, int64, error) {
	users, err := s.userRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.userRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	items := make([]UserResponse, 0, len(users))
	for _, u := range users {
		items = append(items, ToUserResponse(u))
	}
	return items, total, nil
}

// Update updates a user's display name and/or role
func (s *UserService) Update(ctx context.Context, id uuid.UUID, req UpdateUserRequest) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, shared.ErrNotFound
	}

	if req.DisplayName != nil {
		if err := user.SetDisplayName(*req.DisplayName); err != nil {
			return nil, err
		}
	}
	if req.Role != nil {
		if err := user.ChangeRole(identity.Role(*req.Role)); err != nil {
			return nil, err
		}
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	resp := ToUserResponse(user)
	return &resp, nil
}

// ResetPassword sets a new password on a user without the old one
func (s *UserService) ResetPassword(ctx context.Context, id uuid.UUID, req ResetPasswordRequest) error {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return shared.ErrNotFound
	}

	if err := user.SetPassword(req.NewPassword); err != nil {
		return err
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		return err
	}

	s.logger.Info("password reset by admin", zap.String("username", user.Username))
	return nil
}

// Deactivate disables a user account
func (s *UserService) Deactivate(ctx context.Context, id uuid.UUID) error {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return shared.ErrNotFound
	}
	if err := user.Deactivate(); err != nil {
		return err
	}
	return s.userRepo.Save(ctx, user)
}

// Activate re-enables a user account and clears any lockout
func (s *UserService) Activate(ctx context.Context, id uuid.UUID) error {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return shared.ErrNotFound
	}
	if err := user.Activate(); err != nil {
		return err
	}
	return s.userRepo.Save(ctx, user)
}
