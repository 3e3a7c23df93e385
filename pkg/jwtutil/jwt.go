package jwtutil

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"notes-service/internal/model"
	"notes-service/pkg/config"
)

var (
	signingKey []byte
	tokenTTL   time.Duration
)

// ErrInvalidToken covers every verification failure: bad signature,
// malformed token, or past expiry.
var ErrInvalidToken = errors.New("invalid or expired token")

// UserClaims are the identity claims carried inside a bearer token.
type UserClaims struct {
	UserID   uint   `json:"user_id"`
	TenantID uint   `json:"tenant_id"`
	Role     string `json:"role"`
	Email    string `json:"email"`
	jwt.RegisteredClaims
}

// Initialize sets the process-wide signing key and token lifetime. Must be
// called once at startup before any token is issued or verified.
func Initialize(cfg *config.JWTConfig) {
	signingKey = []byte(cfg.SigningKey)
	tokenTTL = time.Duration(cfg.ExpirationHours) * time.Hour
}

// TokenTTL returns the configured token lifetime.
func TokenTTL() time.Duration {
	return tokenTTL
}

// GenerateToken issues a signed HS256 token carrying the user's identity.
func GenerateToken(user *model.User) (string, error) {
	now := time.Now()
	claims := UserClaims{
		UserID:   user.ID,
		TenantID: user.TenantID,
		Role:     user.Role,
		Email:    user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(signingKey)
}

// ValidateToken parses and verifies a token, returning its claims.
// Verification is stateless: signature and expiry only, no session lookup.
func ValidateToken(tokenString string) (*UserClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &UserClaims{}, func(token *jwt.Token) (interface{}, error) {
		return signingKey, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*UserClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// TokenHash returns a deterministic keyed hash of a raw token, used to store
// and look up session records without persisting the token itself. Tokens are
// high-entropy, so a fast HMAC is the right primitive here; bcrypt stays
// reserved for passwords.
func TokenHash(token string) string {
	mac := hmac.New(sha256.New, signingKey)
	mac.Write([]byte(token))
	return hex.EncodeToString(mac.Sum(nil))
}
