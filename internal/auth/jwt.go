// Package auth issues and verifies the JWT credentials consumed by the
// HTTP layer, and hashes user passwords.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"article-api/internal/domain"
)

// Token types carried in the token_type claim.
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// JWTConfig holds JWT generation configuration.
type JWTConfig struct {
	Secret     string
	Issuer     string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

// Claims are the JWT claims for API authentication.
type Claims struct {
	Username  string `json:"username"`
	Staff     bool   `json:"staff"`
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

// JWTManager signs and parses API tokens.
type JWTManager struct {
	cfg JWTConfig
}

// NewJWTManager creates a new JWT manager.
func NewJWTManager(cfg JWTConfig) *JWTManager {
	return &JWTManager{cfg: cfg}
}

// IssueAccessToken generates a signed access token for the user.
func (m *JWTManager) IssueAccessToken(user *domain.User) (string, error) {
	return m.issue(user, TokenTypeAccess, m.cfg.AccessTTL)
}

// IssueRefreshToken generates a signed refresh token for the user.
func (m *JWTManager) IssueRefreshToken(user *domain.User) (string, error) {
	return m.issue(user, TokenTypeRefresh, m.cfg.RefreshTTL)
}

func (m *JWTManager) issue(user *domain.User, tokenType string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Username:  user.Username,
		Staff:     user.Staff,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    m.cfg.Issuer,
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(m.cfg.Secret))
}

// VerifyAccessToken parses an access token and returns the principal it
// encodes.
func (m *JWTManager) VerifyAccessToken(raw string) (domain.Principal, error) {
	claims, err := m.parse(raw)
	if err != nil {
		return domain.Anonymous, err
	}
	if claims.TokenType != TokenTypeAccess {
		return domain.Anonymous, errors.New("not an access token")
	}

	return domain.Principal{
		ID:            claims.Subject,
		Username:      claims.Username,
		Staff:         claims.Staff,
		Authenticated: true,
	}, nil
}

// VerifyRefreshToken parses a refresh token and returns the subject
// user ID.
func (m *JWTManager) VerifyRefreshToken(raw string) (string, error) {
	claims, err := m.parse(raw)
	if err != nil {
		return "", err
	}
	if claims.TokenType != TokenTypeRefresh {
		return "", errors.New("not a refresh token")
	}
	return claims.Subject, nil
}

func (m *JWTManager) parse(raw string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(raw, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(m.cfg.Secret), nil
	}, jwt.WithIssuer(m.cfg.Issuer))
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}
