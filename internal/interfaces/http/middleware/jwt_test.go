package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/movilshop/backend/internal/infrastructure/auth"
	"github.com/movilshop/backend/internal/infrastructure/config"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestJWTService() *auth.JWTService {
	cfg := config.JWTConfig{
		Secret:                 "test-secret-key-at-least-32-chars",
		RefreshSecret:          "test-refresh-secret-key-32-chars",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 7 * 24 * time.Hour,
		Issuer:                 "movilshop-test",
		MaxRefreshCount:        10,
	}
	return auth.NewJWTService(cfg)
}

func newTestTokenPair(t *testing.T, jwtService *auth.JWTService, role string) (*auth.TokenPair, auth.GenerateTokenInput) {
	t.Helper()
	input := auth.GenerateTokenInput{
		UserID:   uuid.New(),
		Username: "mrodriguez",
		Role:     role,
	}
	pair, err := jwtService.GenerateTokenPair(input)
	require.NoError(t, err)
	return pair, input
}

func newProtectedRouter(jwtService *auth.JWTService, blacklist auth.TokenBlacklist, handlers ...gin.HandlerFunc) *gin.Engine {
	router := gin.New()
	router.Use(JWTAuth(JWTConfig{JWTService: jwtService, TokenBlacklist: blacklist}))
	final := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
	router.GET("/test", append(handlers, final)...)
	return router
}

func TestJWTAuth_ValidToken(t *testing.T) {
	jwtService := newTestJWTService()
	pair, input := newTestTokenPair(t, jwtService, "admin")

	router := gin.New()
	router.Use(JWTAuth(JWTConfig{JWTService: jwtService}))
	router.GET("/test", func(c *gin.Context) {
		claims := MustGetJWTClaims(c)
		assert.Equal(t, input.UserID.String(), claims.UserID)
		assert.Equal(t, "mrodriguez", GetJWTUsername(c))
		assert.Equal(t, "admin", GetJWTRole(c))
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("Authorization", "Bearer "+pair.AccessToken)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestJWTAuth_MissingHeader(t *testing.T) {
	router := newProtectedRouter(newTestJWTService(), nil)

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuth_InvalidHeaderFormat(t *testing.T) {
	router := newProtectedRouter(newTestJWTService(), nil)

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("Authorization", "Token abc123")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuth_RefreshTokenRejected(t *testing.T) {
	jwtService := newTestJWTService()
	pair, _ := newTestTokenPair(t, jwtService, "clerk")

	router := newProtectedRouter(jwtService, nil)

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("Authorization", "Bearer "+pair.RefreshToken)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuth_BlacklistedToken(t *testing.T) {
	jwtService := newTestJWTService()
	pair, _ := newTestTokenPair(t, jwtService, "clerk")

	claims, err := jwtService.ValidateAccessToken(pair.AccessToken)
	require.NoError(t, err)

	blacklist := auth.NewInMemoryTokenBlacklist()
	require.NoError(t, blacklist.AddToBlacklist(context.Background(), claims.ID, time.Hour))

	router := newProtectedRouter(jwtService, blacklist)

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("Authorization", "Bearer "+pair.AccessToken)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "TOKEN_REVOKED")
}

func TestJWTAuth_UserTokensInvalidated(t *testing.T) {
	jwtService := newTestJWTService()
	pair, input := newTestTokenPair(t, jwtService, "clerk")

	blacklist := auth.NewInMemoryTokenBlacklist()
	// Invalidate after issuance so the freshly issued token is caught
	time.Sleep(time.Millisecond)
	require.NoError(t, blacklist.AddUserTokensToBlacklist(context.Background(), input.UserID.String(), time.Hour))

	router := newProtectedRouter(jwtService, blacklist)

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("Authorization", "Bearer "+pair.AccessToken)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "SESSION_EXPIRED")
}

func TestJWTAuth_SkipPaths(t *testing.T) {
	router := gin.New()
	router.Use(JWTAuth(JWTConfig{
		JWTService: newTestJWTService(),
		SkipPaths:  []string{"/api/v1/auth/login"},
	}))
	router.POST("/api/v1/auth/login", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireRole(t *testing.T) {
	jwtService := newTestJWTService()

	t.Run("allows listed role", func(t *testing.T) {
		pair, _ := newTestTokenPair(t, jwtService, "admin")
		router := newProtectedRouter(jwtService, nil, RequireRole("admin"))

		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set("Authorization", "Bearer "+pair.AccessToken)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("rejects other roles", func(t *testing.T) {
		pair, _ := newTestTokenPair(t, jwtService, "clerk")
		router := newProtectedRouter(jwtService, nil, RequireRole("admin"))

		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set("Authorization", "Bearer "+pair.AccessToken)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("rejects unauthenticated requests", func(t *testing.T) {
		router := gin.New()
		router.GET("/test", RequireRole("admin"), func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
