package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/flavr-travel/flavr-backend/internal/errors"
	"github.com/flavr-travel/flavr-backend/pkg/redis"
	"github.com/flavr-travel/flavr-backend/pkg/util"
	"github.com/gin-gonic/gin"
)

// Context keys for user information
const (
	UserIDKey    = "user_id"
	UserEmailKey = "user_email"
	UserAdminKey = "user_is_admin"
)

// blacklistChecker reports whether a session token has been revoked.
type blacklistChecker interface {
	IsTokenBlacklisted(ctx context.Context, token string) (bool, error)
}

// redisBlacklist checks pkg/redis. Without a connection no token can have
// been revoked, so everything reads as clean.
type redisBlacklist struct{}

func (redisBlacklist) IsTokenBlacklisted(ctx context.Context, token string) (bool, error) {
	if !redis.Available() {
		return false, nil
	}
	return redis.IsTokenBlacklisted(ctx, token)
}

type AuthMiddleware struct {
	jwtSecret string
	blacklist blacklistChecker
}

func NewAuthMiddleware(jwtSecret string) *AuthMiddleware {
	return &AuthMiddleware{
		jwtSecret: jwtSecret,
		blacklist: redisBlacklist{},
	}
}

// Authenticate validates the bearer token and loads its claims into the
// request context. Revoked tokens are rejected when Redis is available.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		log := GetLoggerFromContext(c)

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			log.Warn("Missing authorization header", map[string]interface{}{
				"path": c.Request.URL.Path,
			})
			errors.Unauthorized(c, "Sign in required")
			c.Abort()
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			log.Warn("Invalid authorization header format", map[string]interface{}{
				"path": c.Request.URL.Path,
			})
			errors.RespondWithError(c, http.StatusUnauthorized, errors.AuthTokenInvalid, "Invalid authorization format")
			c.Abort()
			return
		}
		token := parts[1]

		claims, err := util.ValidateToken(token, m.jwtSecret)
		if err != nil {
			log.Warn("Token validation failed", map[string]interface{}{
				"path":  c.Request.URL.Path,
				"error": err.Error(),
			})

			if err == util.ErrExpiredToken {
				errors.RespondWithError(c, http.StatusUnauthorized, errors.AuthTokenExpired, "Session expired, sign in again")
			} else {
				errors.RespondWithError(c, http.StatusUnauthorized, errors.AuthTokenInvalid, "Invalid authentication token")
			}
			c.Abort()
			return
		}

		blacklisted, err := m.blacklist.IsTokenBlacklisted(c.Request.Context(), token)
		if err != nil {
			log.Warn("Token blacklist check failed", map[string]interface{}{
				"error": err.Error(),
			})
		} else if blacklisted {
			log.Warn("Rejected revoked token", map[string]interface{}{
				"user_id": claims.UserID,
				"path":    c.Request.URL.Path,
			})
			errors.RespondWithError(c, http.StatusUnauthorized, errors.AuthTokenRevoked, "Session has been signed out")
			c.Abort()
			return
		}

		// Set user information in context
		c.Set(UserIDKey, claims.UserID)
		c.Set(UserEmailKey, claims.Email)
		c.Set(UserAdminKey, claims.IsAdmin)

		log.Debug("User authenticated successfully", map[string]interface{}{
			"user_id":  claims.UserID,
			"email":    claims.Email,
			"is_admin": claims.IsAdmin,
		})

		c.Next()
	}
}

// RequireAdmin rejects authenticated requests whose token lacks the admin
// flag. The flag mirrors profiles.is_admin at sign-in time.
func (m *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		log := GetLoggerFromContext(c)

		isAdmin, exists := GetIsAdmin(c)
		if !exists {
			log.Warn("Admin flag not found in context", map[string]interface{}{
				"path": c.Request.URL.Path,
			})
			errors.RespondWithError(c, http.StatusForbidden, errors.AuthzForbidden, "Permission information not found")
			c.Abort()
			return
		}

		if !isAdmin {
			userID, _ := GetUserID(c)
			log.Warn("Non-admin access attempt", map[string]interface{}{
				"user_id": userID,
				"path":    c.Request.URL.Path,
			})
			errors.RespondWithError(c, http.StatusForbidden, errors.AuthzAdminOnly, "Admin access only")
			c.Abort()
			return
		}

		c.Next()
	}
}

// GetUserID extracts user ID from context
func GetUserID(c *gin.Context) (string, bool) {
	userID, exists := c.Get(UserIDKey)
	if !exists {
		return "", false
	}
	return userID.(string), true
}

// GetUserEmail extracts user email from context
func GetUserEmail(c *gin.Context) (string, bool) {
	email, exists := c.Get(UserEmailKey)
	if !exists {
		return "", false
	}
	return email.(string), true
}

// GetIsAdmin extracts the admin flag from context
func GetIsAdmin(c *gin.Context) (bool, bool) {
	isAdmin, exists := c.Get(UserAdminKey)
	if !exists {
		return false, false
	}
	return isAdmin.(bool), true
}
