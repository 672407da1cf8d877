package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/movilshop/backend/internal/infrastructure/auth"
	"github.com/movilshop/backend/internal/interfaces/http/dto"
)

// Context keys for JWT claims
const (
	JWTClaimsKey   = "jwt_claims"
	JWTUserIDKey   = "jwt_user_id"
	JWTUsernameKey = "jwt_username"
	JWTRoleKey     = "jwt_role"
)

// JWTConfig holds JWT middleware configuration
type JWTConfig struct {
	JWTService       *auth.JWTService
	TokenBlacklist   auth.TokenBlacklist
	SkipPaths        []string
	SkipPathPrefixes []string
	Logger           *zap.Logger
}

// DefaultJWTConfig returns a config with the public endpoints skipped
func DefaultJWTConfig(jwtService *auth.JWTService, blacklist auth.TokenBlacklist) JWTConfig {
	return JWTConfig{
		JWTService:     jwtService,
		TokenBlacklist: blacklist,
		SkipPaths: []string{
			"/health",
			"/ready",
			"/api/v1/auth/login",
			"/api/v1/auth/refresh",
		},
	}
}

// JWTAuth returns a middleware that validates the Bearer access token,
// checks it against the blacklist and stores the claims on the context.
func JWTAuth(cfg JWTConfig) gin.HandlerFunc {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		path := c.Request.URL.Path
		for _, skip := range cfg.SkipPaths {
			if path == skip {
				c.Next()
				return
			}
		}
		for _, prefix := range cfg.SkipPathPrefixes {
			if strings.HasPrefix(path, prefix) {
				c.Next()
				return
			}
		}

		tokenString, err := extractBearerToken(c)
		if err != nil {
			abortUnauthorized(c, dto.ErrCodeUnauthorized, err.Error())
			return
		}

		claims, err := cfg.JWTService.ValidateAccessToken(tokenString)
		if err != nil {
			handleAuthError(c, err)
			return
		}

		if cfg.TokenBlacklist != nil {
			revoked, err := cfg.TokenBlacklist.IsBlacklisted(c.Request.Context(), claims.ID)
			if err != nil {
				// Fail open: a blacklist outage must not lock every caller
				// out, so the signed claims stand and a revoked token may be
				// accepted until the store is reachable again. Revocation is
				// best-effort; signature and expiry checks above are not.
				logger.Warn("token blacklist check failed",
					zap.String("jti", claims.ID),
					zap.Error(err))
			} else if revoked {
				abortUnauthorized(c, "TOKEN_REVOKED", "Token has been revoked")
				return
			}

			invalidated, err := cfg.TokenBlacklist.IsUserTokenInvalidated(
				c.Request.Context(), claims.UserID, claims.GetIssuedAtTime())
			if err != nil {
				logger.Warn("user token invalidation check failed",
					zap.String("user_id", claims.UserID),
					zap.Error(err))
			} else if invalidated {
				abortUnauthorized(c, "SESSION_EXPIRED", "Session has expired, please log in again")
				return
			}
		}

		c.Set(JWTClaimsKey, claims)
		c.Set(JWTUserIDKey, claims.UserID)
		c.Set(JWTUsernameKey, claims.Username)
		c.Set(JWTRoleKey, claims.Role)

		c.Next()
	}
}

// extractBearerToken pulls the token out of the Authorization header
func extractBearerToken(c *gin.Context) (string, error) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return "", errors.New("missing authorization header")
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", errors.New("invalid authorization header format")
	}

	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", errors.New("empty bearer token")
	}
	return token, nil
}

// handleAuthError maps token validation errors to API error codes
func handleAuthError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		abortUnauthorized(c, "TOKEN_EXPIRED", "Token has expired")
	case errors.Is(err, auth.ErrInvalidTokenType):
		abortUnauthorized(c, "INVALID_TOKEN", "Invalid token type")
	case errors.Is(err, auth.ErrTokenNotYetValid):
		abortUnauthorized(c, "INVALID_TOKEN", "Token is not yet valid")
	case errors.Is(err, auth.ErrTokenBlacklisted):
		abortUnauthorized(c, "TOKEN_REVOKED", "Token has been revoked")
	default:
		abortUnauthorized(c, "INVALID_TOKEN", "Invalid token")
	}
}

func abortUnauthorized(c *gin.Context, code, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(code, message))
}

// GetJWTClaims returns the validated claims from the context
func GetJWTClaims(c *gin.Context) (*auth.Claims, bool) {
	value, exists := c.Get(JWTClaimsKey)
	if !exists {
		return nil, false
	}
	claims, ok := value.(*auth.Claims)
	return claims, ok
}

// MustGetJWTClaims returns the claims or panics; for handlers behind JWTAuth
func MustGetJWTClaims(c *gin.Context) *auth.Claims {
	claims, ok := GetJWTClaims(c)
	if !ok {
		panic("jwt claims not found in context; is JWTAuth installed?")
	}
	return claims
}

// GetJWTUserID returns the authenticated user's ID from the context
func GetJWTUserID(c *gin.Context) string {
	return c.GetString(JWTUserIDKey)
}

// GetJWTUsername returns the authenticated user's username from the context
func GetJWTUsername(c *gin.Context) string {
	return c.GetString(JWTUsernameKey)
}

// GetJWTRole returns the authenticated user's role from the context
func GetJWTRole(c *gin.Context) string {
	return c.GetString(JWTRoleKey)
}
