package identity

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/movilshop/backend/internal/domain/identity"
	"github.com/movilshop/backend/internal/domain/shared"
	"github.com/movilshop/backend/internal/infrastructure/auth"
	"go.uber.org/zap"
)

// AuthService handles authentication workflows
type AuthService struct {
	userRepo       identity.UserRepository
	jwtService     *auth.JWTService
	blacklist      auth.TokenBlacklist
	logger         *zap.Logger
	maxAttempts    int
	lockDuration   time.Duration
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo identity.UserRepository,
	jwtService *auth.JWTService,
	blacklist auth.TokenBlacklist,
	logger *zap.Logger,
	maxAttempts int,
	lockDuration time.Duration,
) *AuthService {
	if maxAttempts <= 0 {
		maxAttempts = 5
	}
	if lockDuration <= 0 {
		lockDuration = 15 * time.Minute
	}
	return &AuthService{
		userRepo:     userRepo,
		jwtService:   jwtService,
		blacklist:    blacklist,
		logger:       logger,
		maxAttempts:  maxAttempts,
		lockDuration: lockDuration,
	}
}

// Login authenticates a user and issues a token pair
func (s *AuthService) Login(ctx context.Context, req LoginRequest, clientIP string) (*LoginResponse, error) {
	user, err := s.userRepo.FindByUsername(ctx, req.Username)
	if err != nil {
		s.logger.Info("login failed: unknown username",
			zap.String("username", req.Username),
			zap.String("ip", clientIP))
		// same error as bad password so usernames cannot be probed
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid username or password")
	}

	if !user.CanLogin() {
		s.logger.Warn("login rejected: account not available",
			zap.String("username", user.Username),
			zap.String("status", string(user.Status)),
			zap.String("ip", clientIP))
		if user.IsLocked() {
			return nil, shared.NewDomainError("ACCOUNT_LOCKED", "Account is temporarily locked")
		}
		return nil, shared.NewDomainError("ACCOUNT_DISABLED", "Account is disabled")
	}

	if !user.VerifyPassword(req.Password) {
		locked := user.RecordLoginFailure(s.maxAttempts, s.lockDuration)
		if saveErr := s.userRepo.Save(ctx, user); saveErr != nil {
			s.logger.Error("failed to persist login failure", zap.Error(saveErr))
		}
		if locked {
			s.logger.Warn("account locked after repeated failures",
				zap.String("username", user.Username),
				zap.String("ip", clientIP))
			return nil, shared.NewDomainError("ACCOUNT_LOCKED", "Account is temporarily locked")
		}
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid username or password")
	}

	user.RecordLoginSuccess(clientIP)
	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	tokens, err := s.jwtService.GenerateTokenPair(auth.GenerateTokenInput{
		UserID:   user.ID,
		Username: user.Username,
		Role:     string(user.Role),
	})
	if err != nil {
		s.logger.Error("failed to generate tokens", zap.Error(err))
		return nil, shared.NewDomainError("TOKEN_GENERATION_FAILED", "Failed to generate tokens")
	}

	s.logger.Info("login successful",
		zap.String("username", user.Username),
		zap.String("role", string(user.Role)),
		zap.String("ip", clientIP))

	return &LoginResponse{
		User:   ToUserResponse(user),
		Tokens: tokens,
	}, nil
}

// RefreshToken issues a new token pair from a valid refresh token
func (s *AuthService) RefreshToken(ctx context.Context, req RefreshTokenRequest) (*auth.TokenPair, error) {
	claims, err := s.jwtService.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		return nil, mapTokenError(err)
	}

	blacklisted, err := s.blacklist.IsBlacklisted(ctx, claims.ID)
	if err != nil {
		s.logger.Error("blacklist check failed", zap.Error(err))
		return nil, shared.NewDomainError("TOKEN_CHECK_FAILED", "Failed to verify token")
	}
	if blacklisted {
		return nil, shared.NewDomainError("TOKEN_REVOKED", "Token has been revoked")
	}

	userID, err := claims.GetUserUUID()
	if err != nil {
		return nil, shared.NewDomainError("INVALID_TOKEN", "Invalid token claims")
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_TOKEN", "User no longer exists")
	}
	if !user.CanLogin() {
		return nil, shared.NewDomainError("ACCOUNT_DISABLED", "Account is disabled")
	}

	invalidated, err := s.blacklist.IsUserTokenInvalidated(ctx, claims.UserID, claims.GetIssuedAtTime())
	if err != nil {
		s.logger.Error("user invalidation check failed", zap.Error(err))
		return nil, shared.NewDomainError("TOKEN_CHECK_FAILED", "Failed to verify token")
	}
	if invalidated {
		return nil, shared.NewDomainError("TOKEN_REVOKED", "Token has been revoked")
	}

	// old refresh token is single-use
	if err := s.blacklist.AddToBlacklist(ctx, claims.ID, claims.GetRemainingTTL()); err != nil {
		s.logger.Error("failed to revoke used refresh token", zap.Error(err))
	}

	tokens, err := s.jwtService.RefreshTokenPair(req.RefreshToken, user.Username, string(user.Role))
	if err != nil {
		return nil, mapTokenError(err)
	}
	return tokens, nil
}

// Logout revokes the current access token
func (s *AuthService) Logout(ctx context.Context, claims *auth.Claims) error {
	if err := s.blacklist.AddToBlacklist(ctx, claims.ID, claims.GetRemainingTTL()); err != nil {
		s.logger.Error("failed to blacklist token on logout", zap.Error(err))
		return shared.NewDomainError("LOGOUT_FAILED", "Failed to revoke token")
	}
	s.logger.Info("user logged out", zap.String("username", claims.Username))
	return nil
}

// GetCurrentUser returns the authenticated user's profile
func (s *AuthService) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, shared.ErrNotFound
	}
	resp := ToUserResponse(user)
	return &resp, nil
}

// ChangePassword changes the authenticated user's password and invalidates
// all previously issued tokens
func (s *AuthService) ChangePassword(ctx context.Context, userID uuid.UUID, req ChangePasswordRequest) error {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return shared.ErrNotFound
	}

	if err := user.ChangePassword(req.OldPassword, req.NewPassword); err != nil {
		return err
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		return err
	}

	if err := s.blacklist.AddUserTokensToBlacklist(ctx, userID.String(), 7*24*time.Hour); err != nil {
		s.logger.Error("failed to invalidate user tokens after password change", zap.Error(err))
	}

	s.logger.Info("password changed", zap.String("username", user.Username))
	return nil
}

func mapTokenError(err error) error {
	switch err {
	case auth.ErrExpiredToken:
		return shared.NewDomainError("TOKEN_EXPIRED", "Token has expired")
	case auth.ErrMaxRefreshExceeded:
		return shared.NewDomainError("SESSION_EXPIRED", "Session expired, please log in again")
	case auth.ErrTokenBlacklisted:
		return shared.NewDomainError("TOKEN_REVOKED", "Token has been revoked")
	default:
		return shared.NewDomainError("INVALID_TOKEN", "Invalid token")
	}
}
