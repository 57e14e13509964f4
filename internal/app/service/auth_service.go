package service

import (
	"context"
	"errors"
	"time"

	"github.com/flavr-travel/flavr-backend/internal/app/model"
	"github.com/flavr-travel/flavr-backend/internal/app/repository"
	"github.com/flavr-travel/flavr-backend/pkg/logger"
	"github.com/flavr-travel/flavr-backend/pkg/redis"
	"github.com/flavr-travel/flavr-backend/pkg/util"
	"gorm.io/gorm"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrNotAdmin           = errors.New("account is not an admin")
	ErrProfileNotFound    = errors.New("profile not found")
	ErrTokenRevoked       = errors.New("token has been revoked")
)

// AuthService issues session tokens for dashboard accounts. The is_admin
// flag on the profiles row is the only authority consulted; non-admin
// accounts cannot sign in to the dashboard at all.
type AuthService interface {
	Login(email, password string) (*model.Profile, *util.TokenPair, error)
	RefreshToken(ctx context.Context, refreshToken string) (*util.TokenPair, error)
	RevokeTokens(ctx context.Context, accessToken, refreshToken string) error
	GetProfileByID(id string) (*model.Profile, error)
}

// tokenBlacklist abstracts the revocation store so the service works, in
// degraded form, without Redis.
type tokenBlacklist interface {
	IsTokenBlacklisted(ctx context.Context, token string) (bool, error)
	BlacklistToken(ctx context.Context, token string, expiry time.Duration) error
}

// redisBlacklist forwards to pkg/redis. Without a connection nothing is
// revocable and every token reads as clean, so revoked sessions only die at
// their natural expiry.
type redisBlacklist struct{}

func (redisBlacklist) IsTokenBlacklisted(ctx context.Context, token string) (bool, error) {
	if !redis.Available() {
		return false, nil
	}
	return redis.IsTokenBlacklisted(ctx, token)
}

func (redisBlacklist) BlacklistToken(ctx context.Context, token string, expiry time.Duration) error {
	if !redis.Available() {
		return nil
	}
	return redis.BlacklistToken(ctx, token, expiry)
}

type authService struct {
	profileRepo   repository.ProfileRepository
	jwtSecret     string
	accessExpiry  time.Duration
	refreshExpiry time.Duration
	blacklist     tokenBlacklist
}

func NewAuthService(
	profileRepo repository.ProfileRepository,
	jwtSecret string,
	accessExpiry, refreshExpiry time.Duration,
) AuthService {
	return &authService{
		profileRepo:   profileRepo,
		jwtSecret:     jwtSecret,
		accessExpiry:  accessExpiry,
		refreshExpiry: refreshExpiry,
		blacklist:     redisBlacklist{},
	}
}

func (s *authService) Login(email, password string) (*model.Profile, *util.TokenPair, error) {
	logger.Info("Attempting dashboard login", map[string]interface{}{
		"email": email,
	})

	profile, err := s.profileRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Login failed: unknown email", map[string]interface{}{
				"email": email,
			})
			return nil, nil, ErrInvalidCredentials
		}
		logger.Error("Failed to look up profile", err, map[string]interface{}{
			"email": email,
		})
		return nil, nil, err
	}

	if !util.VerifyPassword(profile.PasswordHash, password) {
		logger.Warn("Login failed: wrong password", map[string]interface{}{
			"email": email,
		})
		return nil, nil, ErrInvalidCredentials
	}

	if !profile.IsAdmin {
		logger.Warn("Login rejected: profile is not an admin", map[string]interface{}{
			"email":      email,
			"profile_id": profile.ID,
		})
		return nil, nil, ErrNotAdmin
	}

	tokens, err := util.GenerateTokenPair(
		profile.ID,
		profile.Email,
		profile.IsAdmin,
		s.jwtSecret,
		s.accessExpiry,
		s.refreshExpiry,
	)
	if err != nil {
		logger.Error("Failed to generate tokens", err, map[string]interface{}{
			"profile_id": profile.ID,
		})
		return nil, nil, err
	}

	logger.Info("Dashboard login succeeded", map[string]interface{}{
		"profile_id": profile.ID,
		"email":      profile.Email,
	})
	return profile, tokens, nil
}

// RefreshToken exchanges a valid refresh token for a fresh pair. The admin
// flag is re-read from the profiles row, so a demoted account loses access
// at its next refresh rather than at token expiry.
func (s *authService) RefreshToken(ctx context.Context, refreshToken string) (*util.TokenPair, error) {
	claims, err := util.ValidateToken(refreshToken, s.jwtSecret)
	if err != nil {
		return nil, err
	}

	if claims.Subject != "refresh" {
		logger.Warn("Refresh attempted with a non-refresh token", map[string]interface{}{
			"profile_id": claims.UserID,
		})
		return nil, util.ErrInvalidToken
	}

	revoked, err := s.blacklist.IsTokenBlacklisted(ctx, refreshToken)
	if err != nil {
		logger.Error("Token blacklist check failed", err, nil)
		return nil, err
	}
	if revoked {
		logger.Warn("Refresh attempted with a revoked token", map[string]interface{}{
			"profile_id": claims.UserID,
		})
		return nil, ErrTokenRevoked
	}

	profile, err := s.profileRepo.FindByID(claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	if !profile.IsAdmin {
		return nil, ErrNotAdmin
	}

	tokens, err := util.GenerateTokenPair(
		profile.ID,
		profile.Email,
		profile.IsAdmin,
		s.jwtSecret,
		s.accessExpiry,
		s.refreshExpiry,
	)
	if err != nil {
		logger.Error("Failed to generate tokens", err, map[string]interface{}{
			"profile_id": profile.ID,
		})
		return nil, err
	}

	logger.Info("Session refreshed", map[string]interface{}{
		"profile_id": profile.ID,
	})
	return tokens, nil
}

// RevokeTokens blacklists both session tokens for the rest of their
// configured lifetimes, so a signed-out session stops working immediately
// instead of aging out.
func (s *authService) RevokeTokens(ctx context.Context, accessToken, refreshToken string) error {
	var firstErr error
	if accessToken != "" {
		if err := s.blacklist.BlacklistToken(ctx, accessToken, s.accessExpiry); err != nil {
			logger.Error("Failed to revoke access token", err, nil)
			firstErr = err
		}
	}
	if refreshToken != "" {
		if err := s.blacklist.BlacklistToken(ctx, refreshToken, s.refreshExpiry); err != nil {
			logger.Error("Failed to revoke refresh token", err, nil)
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

func (s *authService) GetProfileByID(id string) (*model.Profile, error) {
	profile, err := s.profileRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return profile, nil
}
