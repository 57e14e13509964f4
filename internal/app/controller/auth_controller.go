package controller

import (
	"errors"
	"net/http"
	"strings"

	"github.com/flavr-travel/flavr-backend/internal/app/service"
	apperrors "github.com/flavr-travel/flavr-backend/internal/errors"
	"github.com/flavr-travel/flavr-backend/internal/middleware"
	"github.com/flavr-travel/flavr-backend/pkg/util"
	"github.com/gin-gonic/gin"
)

type AuthController struct {
	authService service.AuthService
}

func NewAuthController(authService service.AuthService) *AuthController {
	return &AuthController{
		authService: authService,
	}
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LogoutRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// bearerToken extracts the raw token from an Authorization header,
// returning "" when the header is absent or malformed.
func bearerToken(c *gin.Context) string {
	parts := strings.Split(c.GetHeader("Authorization"), " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}

// Login handles dashboard sign-in
// POST /api/v1/auth/login
func (ctrl *AuthController) Login(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid login request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Email and password are required")
		return
	}

	log.Debug("Processing login", map[string]interface{}{
		"email": req.Email,
	})

	profile, tokens, err := ctrl.authService.Login(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			log.Warn("Login failed: invalid credentials", map[string]interface{}{
				"email": req.Email,
			})
			apperrors.RespondWithError(c, http.StatusUnauthorized, apperrors.AuthInvalidCredentials, "Email or password is incorrect")
			return
		}
		if errors.Is(err, service.ErrNotAdmin) {
			log.Warn("Login failed: not an admin", map[string]interface{}{
				"email": req.Email,
			})
			apperrors.RespondWithError(c, http.StatusForbidden, apperrors.AuthzAdminOnly, "This account does not have dashboard access")
			return
		}
		log.Error("Login failed", err, map[string]interface{}{
			"email": req.Email,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "login")
		return
	}

	log.Info("Login successful", map[string]interface{}{
		"profile_id": profile.ID,
		"email":      profile.Email,
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"profile": gin.H{
			"id":       profile.ID,
			"email":    profile.Email,
			"name":     profile.Name,
			"is_admin": profile.IsAdmin,
		},
		"tokens": tokens,
	})
}

// GetMe returns the signed-in profile
// GET /api/v1/auth/me
func (ctrl *AuthController) GetMe(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		log.Warn("Unauthorized access to GetMe endpoint", nil)
		apperrors.Unauthorized(c, "Sign in required")
		return
	}

	profile, err := ctrl.authService.GetProfileByID(userID)
	if err != nil {
		if errors.Is(err, service.ErrProfileNotFound) {
			log.Warn("Profile not found", map[string]interface{}{
				"profile_id": userID,
			})
			apperrors.NotFound(c, apperrors.ResourceNotFound, "Account not found")
			return
		}
		log.Error("Failed to get profile", err, map[string]interface{}{
			"profile_id": userID,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "get profile")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"profile": gin.H{
			"id":       profile.ID,
			"email":    profile.Email,
			"name":     profile.Name,
			"is_admin": profile.IsAdmin,
		},
	})
}

// Logout revokes the submitted refresh token
// POST /api/v1/auth/logout
func (ctrl *AuthController) Logout(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req LogoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid logout request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Refresh token is required")
		return
	}

	if userID, exists := middleware.GetUserID(c); exists {
		log.Info("User logged out", map[string]interface{}{
			"profile_id": userID,
		})
	}

	// Logout always succeeds from the caller's perspective. Both tokens are
	// revoked: the refresh token from the body and the access token the
	// request was made with, so the session stops working immediately.
	if err := ctrl.authService.RevokeTokens(c.Request.Context(), bearerToken(c), req.RefreshToken); err != nil {
		log.Error("Failed to revoke tokens during logout", err, nil)
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Logged out successfully",
	})
}

// RefreshToken exchanges a refresh token for a new token pair
// POST /api/v1/auth/refresh
func (ctrl *AuthController) RefreshToken(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid refresh token request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Refresh token is required")
		return
	}

	tokens, err := ctrl.authService.RefreshToken(c.Request.Context(), req.RefreshToken)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTokenRevoked):
			log.Warn("Token refresh failed: token revoked", nil)
			apperrors.RespondWithError(c, http.StatusUnauthorized, apperrors.AuthTokenRevoked, "Session has been signed out, sign in again")
			return
		case errors.Is(err, util.ErrExpiredToken):
			log.Warn("Token refresh failed: token expired", nil)
			apperrors.RespondWithError(c, http.StatusUnauthorized, apperrors.AuthTokenExpired, "Session expired, sign in again")
			return
		case errors.Is(err, util.ErrInvalidToken), errors.Is(err, service.ErrProfileNotFound):
			log.Warn("Token refresh failed: invalid token", nil)
			apperrors.RespondWithError(c, http.StatusUnauthorized, apperrors.AuthTokenInvalid, "Invalid refresh token, sign in again")
			return
		case errors.Is(err, service.ErrNotAdmin):
			log.Warn("Token refresh rejected: no longer an admin", nil)
			apperrors.RespondWithError(c, http.StatusForbidden, apperrors.AuthzAdminOnly, "This account does not have dashboard access")
			return
		}
		log.Error("Failed to refresh token", err, nil)
		apperrors.InternalError(c, "Failed to refresh session")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Token refreshed",
		"tokens":  tokens,
	})
}
