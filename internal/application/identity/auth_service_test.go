package identity

import (
	"context"
	"testing"
	"time"

	"github.com/movilshop/backend/internal/domain/identity"
	"github.com/movilshop/backend/internal/domain/shared"
	"github.com/movilshop/backend/internal/infrastructure/auth"
	"github.com/movilshop/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestJWTService() *auth.JWTService {
	return auth.NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-key-for-unit-tests-only",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 24 * time.Hour,
		Issuer:                 "movilshop-test",
		MaxRefreshCount:        3,
	})
}

func newTestAuthService(userRepo *MockUserRepository) (*AuthService, *auth.InMemoryTokenBlacklist) {
	blacklist := auth.NewInMemoryTokenBlacklist()
	svc := NewAuthService(userRepo, newTestJWTService(), blacklist, zap.NewNop(), 3, 15*time.Minute)
	return svc, blacklist
}

func newTestUser(t *testing.T) *identity.User {
	t.Helper()
	user, err := identity.NewUser("mrodriguez", "Marta Rodriguez", "counter2024", identity.RoleClerk)
	require.NoError(t, err)
	return user
}

func TestAuthServiceLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("issues tokens on valid credentials", func(t *testing.T) {
		user := newTestUser(t)
		userRepo := new(MockUserRepository)
		userRepo.On("FindByUsername", ctx, "mrodriguez").Return(user, nil)
		userRepo.On("Save", ctx, user).Return(nil)

		svc, _ := newTestAuthService(userRepo)

		resp, err := svc.Login(ctx, LoginRequest{Username: "mrodriguez", Password: "counter2024"}, "10.0.0.5")
		require.NoError(t, err)

		assert.Equal(t, "mrodriguez", resp.User.Username)
		assert.Equal(t, "clerk", resp.User.Role)
		assert.NotEmpty(t, resp.Tokens.AccessToken)
		assert.NotEmpty(t, resp.Tokens.RefreshToken)
		assert.Equal(t, "Bearer", resp.Tokens.TokenType)
		assert.NotNil(t, user.LastLoginAt)
		assert.Equal(t, "10.0.0.5", user.LastLoginIP)
	})

	t.Run("rejects wrong password and counts the failure", func(t *testing.T) {
		user := newTestUser(t)
		userRepo := new(MockUserRepository)
		userRepo.On("FindByUsername", ctx, "mrodriguez").Return(user, nil)
		userRepo.On("Save", ctx, user).Return(nil)

		svc, _ := newTestAuthService(userRepo)

		_, err := svc.Login(ctx, LoginRequest{Username: "mrodriguez", Password: "wrong9999"}, "10.0.0.5")
		require.Error(t, err)
		assert.Equal(t, "INVALID_CREDENTIALS", err.(*shared.DomainError).Code)
		assert.Equal(t, 1, user.FailedAttempts)
	})

	t.Run("locks the account after repeated failures", func(t *testing.T) {
		user := newTestUser(t)
		userRepo := new(MockUserRepository)
		userRepo.On("FindByUsername", ctx, "mrodriguez").Return(user, nil)
		userRepo.On("Save", ctx, user).Return(nil)

		svc, _ := newTestAuthService(userRepo)

		req := LoginRequest{Username: "mrodriguez", Password: "wrong9999"}
		var err error
		for i := 0; i < 3; i++ {
			_, err = svc.Login(ctx, req, "10.0.0.5")
			require.Error(t, err)
		}
		assert.Equal(t, "ACCOUNT_LOCKED", err.(*shared.DomainError).Code)
		assert.True(t, user.IsLocked())

		// even the right password is refused while locked
		_, err = svc.Login(ctx, LoginRequest{Username: "mrodriguez", Password: "counter2024"}, "10.0.0.5")
		require.Error(t, err)
		assert.Equal(t, "ACCOUNT_LOCKED", err.(*shared.DomainError).Code)
	})

	t.Run("returns generic error for unknown username", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		userRepo.On("FindByUsername", ctx, "nobody").Return(nil, shared.ErrNotFound)

		svc, _ := newTestAuthService(userRepo)

		_, err := svc.Login(ctx, LoginRequest{Username: "nobody", Password: "whatever1"}, "10.0.0.5")
		require.Error(t, err)
		assert.Equal(t, "INVALID_CREDENTIALS", err.(*shared.DomainError).Code)
	})

	t.Run("rejects deactivated account", func(t *testing.T) {
		user := newTestUser(t)
		require.NoError(t, user.Deactivate())

		userRepo := new(MockUserRepository)
		userRepo.On("FindByUsername", ctx, "mrodriguez").Return(user, nil)

		svc, _ := newTestAuthService(userRepo)

		_, err := svc.Login(ctx, LoginRequest{Username: "mrodriguez", Password: "counter2024"}, "10.0.0.5")
		require.Error(t, err)
		assert.Equal(t, "ACCOUNT_DISABLED", err.(*shared.DomainError).Code)
	})
}

func TestAuthServiceRefreshToken(t *testing.T) {
	ctx := context.Background()

	login := func(t *testing.T, svc *AuthService) *LoginResponse {
		t.Helper()
		resp, err := svc.Login(ctx, LoginRequest{Username: "mrodriguez", Password: "counter2024"}, "10.0.0.5")
		require.NoError(t, err)
		return resp
	}

	t.Run("issues a new pair from a valid refresh token", func(t *testing.T) {
		user := newTestUser(t)
		userRepo := new(MockUserRepository)
		userRepo.On("FindByUsername", ctx, "mrodriguez").Return(user, nil)
		userRepo.On("FindByID", ctx, user.ID).Return(user, nil)
		userRepo.On("Save", ctx, user).Return(nil)

		svc, _ := newTestAuthService(userRepo)
		resp := login(t, svc)

		tokens, err := svc.RefreshToken(ctx, RefreshTokenRequest{RefreshToken: resp.Tokens.RefreshToken})
		require.NoError(t, err)
		assert.NotEmpty(t, tokens.AccessToken)
		assert.NotEqual(t, resp.Tokens.RefreshToken, tokens.RefreshToken)
	})

	t.Run("refresh token is single use", func(t *testing.T) {
		user := newTestUser(t)
		userRepo := new(MockUserRepository)
		userRepo.On("FindByUsername", ctx, "mrodriguez").Return(user, nil)
		userRepo.On("FindByID", ctx, user.ID).Return(user, nil)
		userRepo.On("Save", ctx, user).Return(nil)

		svc, _ := newTestAuthService(userRepo)
		resp := login(t, svc)

		_, err := svc.RefreshToken(ctx, RefreshTokenRequest{RefreshToken: resp.Tokens.RefreshToken})
		require.NoError(t, err)

		_, err = svc.RefreshToken(ctx, RefreshTokenRequest{RefreshToken: resp.Tokens.RefreshToken})
		require.Error(t, err)
		assert.Equal(t, "TOKEN_REVOKED", err.(*shared.DomainError).Code)
	})

	t.Run("rejects garbage token", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		svc, _ := newTestAuthService(userRepo)

		_, err := svc.RefreshToken(ctx, RefreshTokenRequest{RefreshToken: "not-a-token"})
		require.Error(t, err)
		assert.Equal(t, "INVALID_TOKEN", err.(*shared.DomainError).Code)
	})
}

func TestAuthServiceLogout(t *testing.T) {
	ctx := context.Background()

	t.Run("blacklists the access token", func(t *testing.T) {
		user := newTestUser(t)
		userRepo := new(MockUserRepository)
		userRepo.On("FindByUsername", ctx, "mrodriguez").Return(user, nil)
		userRepo.On("Save", ctx, user).Return(nil)

		svc, blacklist := newTestAuthService(userRepo)

		resp, err := svc.Login(ctx, LoginRequest{Username: "mrodriguez", Password: "counter2024"}, "10.0.0.5")
		require.NoError(t, err)

		jwtSvc := newTestJWTService()
		claims, err := jwtSvc.ValidateAccessToken(resp.Tokens.AccessToken)
		require.NoError(t, err)

		require.NoError(t, svc.Logout(ctx, claims))

		revoked, err := blacklist.IsBlacklisted(ctx, claims.ID)
		require.NoError(t, err)
		assert.True(t, revoked)
	})
}

func TestAuthServiceChangePassword(t *testing.T) {
	ctx := context.Background()

	t.Run("changes password and invalidates existing tokens", func(t *testing.T) {
		user := newTestUser(t)
		issuedAt := time.Now().Add(-time.Minute)

		userRepo := new(MockUserRepository)
		userRepo.On("FindByID", ctx, user.ID).Return(user, nil)
		userRepo.On("Save", ctx, user).Return(nil)

		svc, blacklist := newTestAuthService(userRepo)

		err := svc.ChangePassword(ctx, user.ID, ChangePasswordRequest{
			OldPassword: "counter2024",
			NewPassword: "newsecret77",
		})
		require.NoError(t, err)
		assert.True(t, user.VerifyPassword("newsecret77"))

		invalidated, err := blacklist.IsUserTokenInvalidated(ctx, user.ID.String(), issuedAt)
		require.NoError(t, err)
		assert.True(t, invalidated)
	})

	t.Run("rejects wrong current password", func(t *testing.T) {
		user := newTestUser(t)
		userRepo := new(MockUserRepository)
		userRepo.On("FindByID", ctx, user.ID).Return(user, nil)

		svc, _ := newTestAuthService(userRepo)

		err := svc.ChangePassword(ctx, user.ID, ChangePasswordRequest{
			OldPassword: "wrong9999",
			NewPassword: "newsecret77",
		})
		require.Error(t, err)
		assert.Equal(t, "INVALID_PASSWORD", err.(*shared.DomainError).Code)
		userRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestUserService(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a staff account", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		userRepo.On("ExistsByUsername", ctx, "jperez").Return(false, nil)
		userRepo.On("Save", ctx, mock.AnythingOfType("*identity.User")).Return(nil)

		svc := NewUserService(userRepo, zap.NewNop())

		resp, err := svc.Create(ctx, CreateUserRequest{
			Username:    "jperez",
			DisplayName: "Jorge Perez",
			Password:    "workshop88",
			Role:        "technician",
		})
		require.NoError(t, err)
		assert.Equal(t, "jperez", resp.Username)
		assert.Equal(t, "technician", resp.Role)
		userRepo.AssertExpectations(t)
	})

	t.Run("rejects duplicate username", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		userRepo.On("ExistsByUsername", ctx, "jperez").Return(true, nil)

		svc := NewUserService(userRepo, zap.NewNop())

		_, err := svc.Create(ctx, CreateUserRequest{
			Username:    "jperez",
			DisplayName: "Jorge Perez",
			Password:    "workshop88",
			Role:        "technician",
		})
		require.Error(t, err)
		assert.Equal(t, "USERNAME_TAKEN", err.(*shared.DomainError).Code)
	})

	t.Run("admin resets a password without the old one", func(t *testing.T) {
		user := newTestUser(t)
		userRepo := new(MockUserRepository)
		userRepo.On("FindByID", ctx, user.ID).Return(user, nil)
		userRepo.On("Save", ctx, user).Return(nil)

		svc := NewUserService(userRepo, zap.NewNop())

		err := svc.ResetPassword(ctx, user.ID, ResetPasswordRequest{NewPassword: "reset2024x"})
		require.NoError(t, err)
		assert.True(t, user.VerifyPassword("reset2024x"))
	})
}
