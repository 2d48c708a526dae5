package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

const (
	AccessTTL  = 24 * time.Hour
	RefreshTTL = 7 * 24 * time.Hour

	TypeAccess  = "access"
	TypeRefresh = "refresh"
)

var (
	ErrMissingSecret = errors.New("jwt secret is not configured")
	ErrWrongType     = errors.New("unexpected token type")
	ErrNoSubject     = errors.New("token has no subject")
)

// Subject is the identity carried by an access token.
type Subject struct {
	UserID   string
	UserName string
	Role     string
}

func SignAccessToken(secret string, s Subject, now time.Time) (string, time.Time, error) {
	if secret == "" {
		return "", time.Time{}, ErrMissingSecret
	}
	exp := now.Add(AccessTTL)
	claims := jwt.MapClaims{
		"typ":       TypeAccess,
		"sub":       s.UserID,
		"id":        s.UserID,
		"user_name": s.UserName,
		"role":      s.Role,
		"iat":       now.Unix(),
		"exp":       exp.Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	return signed, exp, err
}

func SignRefreshToken(secret, userID string, now time.Time) (string, time.Time, error) {
	if secret == "" {
		return "", time.Time{}, ErrMissingSecret
	}
	exp := now.Add(RefreshTTL)
	claims := jwt.MapClaims{
		"typ": TypeRefresh,
		"sub": userID,
		"jti": uuid.NewString(),
		"iat": now.Unix(),
		"exp": exp.Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	return signed, exp, err
}

// ParseToken verifies signature, expiry and token type.
func ParseToken(secret, raw, wantType string) (jwt.MapClaims, error) {
	if secret == "" {
		return nil, ErrMissingSecret
	}
	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	if typ, _ := claims["typ"].(string); typ != wantType {
		return nil, ErrWrongType
	}
	return claims, nil
}

func SubjectFromClaims(claims jwt.MapClaims) (Subject, error) {
	sub, _ := claims["sub"].(string)
	if _, err := uuid.Parse(sub); err != nil {
		return Subject{}, ErrNoSubject
	}
	name, _ := claims["user_name"].(string)
	role, _ := claims["role"].(string)
	return Subject{UserID: sub, UserName: name, Role: role}, nil
}

// ExpiryOf returns the exp claim, or the zero time when absent.
func ExpiryOf(claims jwt.MapClaims) time.Time {
	if exp, ok := claims["exp"].(float64); ok {
		return time.Unix(int64(exp), 0).UTC()
	}
	return time.Time{}
}

// HashRefreshToken is what gets stored instead of the raw refresh token.
func HashRefreshToken(token, secret string) string {
	m := hmac.New(sha256.New, []byte(secret))
	_, _ = m.Write([]byte(token))
	return hex.EncodeToString(m.Sum(nil))
}
