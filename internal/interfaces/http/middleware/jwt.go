package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/invento/backend/internal/infrastructure/auth"
	"github.com/invento/backend/internal/interfaces/http/dto"
)

// Context keys for authenticated request data
const (
	JWTClaimsKey = "jwt_claims"
	JWTUserIDKey = "jwt_user_id"
	JWTEmailKey  = "jwt_email"
	JWTRoleKey   = "jwt_role"
)

// JWTMiddlewareConfig holds JWT middleware configuration
type JWTMiddlewareConfig struct {
	JWTService *auth.JWTService
	Blacklist  auth.TokenBlacklist
	Logger     *zap.Logger
	// SkipPaths are request paths that bypass authentication
	SkipPaths []string
}

// JWTAuth validates the Bearer token on each request and stores the claims in
// the gin context.
func JWTAuth(cfg JWTMiddlewareConfig) gin.HandlerFunc {
	skip := make(map[string]struct{}, len(cfg.SkipPaths))
	for _, p := range cfg.SkipPaths {
		skip[p] = struct{}{}
	}

	return func(c *gin.Context) {
		if _, ok := skip[c.Request.URL.Path]; ok {
			c.Next()
			return
		}

		tokenString, err := extractBearerToken(c)
		if err != nil {
			abortUnauthorized(c, dto.ErrCodeUnauthorized, err.Error())
			return
		}

		claims, err := cfg.JWTService.ValidateAccessToken(tokenString)
		if err != nil {
			handleTokenError(c, err)
			return
		}

		if cfg.Blacklist != nil && claims.ID != "" {
			blacklisted, err := cfg.Blacklist.IsBlacklisted(c.Request.Context(), claims.ID)
			if err != nil {
				// Fail open on blacklist backend errors so an outage does not
				// lock every user out
				cfg.Logger.Warn("token blacklist check failed",
					zap.String("path", c.Request.URL.Path),
					zap.Error(err))
			} else if blacklisted {
				abortUnauthorized(c, dto.ErrCodeTokenInvalid, "Token has been revoked.")
				return
			}
		}

		c.Set(JWTClaimsKey, claims)
		c.Set(JWTUserIDKey, claims.UserID)
		c.Set(JWTEmailKey, claims.Email)
		c.Set(JWTRoleKey, claims.Role)
		c.Next()
	}
}

func extractBearerToken(c *gin.Context) (string, error) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return "", errors.New("Authorization header is required.")
	}
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return "", errors.New("Authorization header must use the Bearer scheme.")
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, prefix))
	if token == "" {
		return "", errors.New("Bearer token is empty.")
	}
	return token, nil
}

func handleTokenError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		abortUnauthorized(c, dto.ErrCodeTokenExpired, "Token has expired.")
	case errors.Is(err, auth.ErrInvalidTokenType):
		abortUnauthorized(c, dto.ErrCodeTokenInvalid, "Token type is not valid for this endpoint.")
	default:
		abortUnauthorized(c, dto.ErrCodeTokenInvalid, "Token is invalid.")
	}
}

func abortUnauthorized(c *gin.Context, code, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized,
		dto.NewErrorResponseWithRequestID(code, message, GetRequestID(c)))
}

// GetJWTClaims returns the validated claims from the gin context
func GetJWTClaims(c *gin.Context) (*auth.Claims, bool) {
	v, exists := c.Get(JWTClaimsKey)
	if !exists {
		return nil, false
	}
	claims, ok := v.(*auth.Claims)
	return claims, ok
}

// GetJWTUserID returns the authenticated user ID from the gin context
func GetJWTUserID(c *gin.Context) (string, bool) {
	v, exists := c.Get(JWTUserIDKey)
	if !exists {
		return "", false
	}
	id, ok := v.(string)
	return id, ok
}

// GetJWTRole returns the authenticated user's role from the gin context
func GetJWTRole(c *gin.Context) (string, bool) {
	v, exists := c.Get(JWTRoleKey)
	if !exists {
		return "", false
	}
	role, ok := v.(string)
	return role, ok
}
