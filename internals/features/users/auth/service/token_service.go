// internals/features/users/auth/service/token_service.go
package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	database "readingroom_backend/internals/databases"
	authModel "readingroom_backend/internals/features/users/auth/model"
	userModel "readingroom_backend/internals/features/users/user/model"
	helpersAuth "readingroom_backend/internals/helpers/auth"
)

// blacklist entries outlive the token by this much to absorb clock skew
const blacklistGrace = time.Minute

type TokenPair struct {
	AccessToken      string    `json:"access_token"`
	AccessExpiresAt  time.Time `json:"access_expires_at"`
	RefreshToken     string    `json:"refresh_token"`
	RefreshExpiresAt time.Time `json:"refresh_expires_at"`
}

func (s *AuthService) secrets() (string, string, error) {
	if strings.TrimSpace(s.JWTSecret) == "" {
		return "", "", fiber.NewError(fiber.StatusInternalServerError, "JWT_SECRET is not set")
	}
	if strings.TrimSpace(s.RefreshSecret) == "" {
		return "", "", fiber.NewError(fiber.StatusInternalServerError, "JWT_REFRESH_SECRET is not set")
	}
	return s.JWTSecret, s.RefreshSecret, nil
}

func (s *AuthService) issueTokens(ctx context.Context, user *userModel.UserModel, client ClientInfo) (*TokenPair, error) {
	jwtSecret, refreshSecret, err := s.secrets()
	if err != nil {
		return nil, err
	}
	now := s.Now()

	access, accessExp, err := helpersAuth.SignAccessToken(jwtSecret, helpersAuth.Subject{
		UserID:   user.ID,
		UserName: user.UserName,
		Role:     user.Role,
	}, now)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to create access token")
	}
	refresh, refreshExp, err := helpersAuth.SignRefreshToken(refreshSecret, user.ID, now)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to create refresh token")
	}

	if err := s.Tokens.CreateRefreshToken(ctx, &authModel.RefreshTokenModel{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		TokenHash: helpersAuth.HashRefreshToken(refresh, refreshSecret),
		ExpiresAt: refreshExp,
		UserAgent: client.UserAgent,
		IP:        client.IP,
		CreatedAt: now,
	}); err != nil {
		return nil, err
	}

	return &TokenPair{
		AccessToken:      access,
		AccessExpiresAt:  accessExp,
		RefreshToken:     refresh,
		RefreshExpiresAt: refreshExp,
	}, nil
}

// ========================== REFRESH TOKEN ==========================

// Refresh rotates a refresh token: the old one is consumed, a new pair is issued.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string, client ClientInfo) (*LoginResult, error) {
	refreshToken = strings.TrimSpace(refreshToken)
	if refreshToken == "" {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "Refresh token is missing")
	}
	_, refreshSecret, err := s.secrets()
	if err != nil {
		return nil, err
	}

	claims, err := helpersAuth.ParseToken(refreshSecret, refreshToken, helpersAuth.TypeRefresh)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "Refresh token invalid")
	}
	subject, err := helpersAuth.SubjectFromClaims(claims)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "Refresh token invalid")
	}

	hash := helpersAuth.HashRefreshToken(refreshToken, refreshSecret)
	// consumed up front so two concurrent refreshes cannot both rotate it
	stored, err := s.Tokens.ConsumeRefreshToken(ctx, hash, s.Now())
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, fiber.NewError(fiber.StatusUnauthorized, "Refresh token not recognised")
		}
		return nil, err
	}
	if stored.UserID != subject.UserID {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "Refresh token invalid")
	}

	user, err := s.Users.FindByID(ctx, subject.UserID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, fiber.NewError(fiber.StatusUnauthorized, "User not found")
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, fiber.NewError(fiber.StatusForbidden, "Your account has been deactivated")
	}

	pair, err := s.issueTokens(ctx, user, client)
	if err != nil {
		return nil, err
	}
	return &LoginResult{User: user, Tokens: pair}, nil
}

// ========================== LOGOUT ==========================

// Logout blacklists the access token until it expires and drops the refresh token.
// It is idempotent.
func (s *AuthService) Logout(ctx context.Context, accessToken, refreshToken string) error {
	if accessToken != "" {
		if err := s.Tokens.BlacklistToken(ctx, accessToken, s.blacklistUntil(accessToken)); err != nil {
			s.Log.Warn("logout: failed to blacklist token", zap.Error(err))
			return err
		}
	}
	if refreshToken != "" && s.RefreshSecret != "" {
		hash := helpersAuth.HashRefreshToken(refreshToken, s.RefreshSecret)
		if err := s.Tokens.DeleteRefreshToken(ctx, hash); err != nil {
			s.Log.Warn("logout: failed to delete refresh token", zap.Error(err))
		}
	}
	return nil
}

func (s *AuthService) blacklistUntil(accessToken string) time.Time {
	now := s.Now()
	claims, err := helpersAuth.ParseToken(s.JWTSecret, accessToken, helpersAuth.TypeAccess)
	if err != nil {
		return now.Add(helpersAuth.AccessTTL)
	}
	if exp := helpersAuth.ExpiryOf(claims); !exp.IsZero() {
		return exp.Add(blacklistGrace)
	}
	return now.Add(helpersAuth.AccessTTL)
}
