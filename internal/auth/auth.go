// Package auth is the login/logout entry point: it verifies credentials,
// issues bearer tokens, records sessions and holds the authorization guards.
package auth

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"notes-service/internal/apperror"
	"notes-service/internal/model"
	"notes-service/internal/store"
	"notes-service/pkg/jwtutil"
)

// Result is what a successful login returns: the user (the password hash is
// stripped by the model's json tags) and the raw bearer token.
type Result struct {
	User  *model.User `json:"user"`
	Token string      `json:"token"`
}

// Authenticate verifies the credentials, issues a token and records the
// session. Unknown email, missing stored hash and wrong password all fail
// with the identical message so the endpoint cannot be used to enumerate
// accounts.
func Authenticate(email, password string) (*Result, error) {
	user, err := store.GetUserByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.Auth("Invalid credentials")
		}
		return nil, apperror.Auth("Authentication failed")
	}

	if user.PasswordHash == "" || !CheckPassword(password, user.PasswordHash) {
		return nil, apperror.Auth("Invalid credentials")
	}

	token, err := jwtutil.GenerateToken(user)
	if err != nil {
		return nil, apperror.Auth("Authentication failed")
	}

	session := &model.Session{
		UserID:    user.ID,
		TokenHash: jwtutil.TokenHash(token),
		ExpiresAt: time.Now().Add(jwtutil.TokenTTL()),
	}
	if err := store.CreateSession(session); err != nil {
		return nil, apperror.Auth("Authentication failed")
	}

	return &Result{User: user, Token: token}, nil
}

// Logout removes the session record for the token. Best effort: a missing
// record or a store error is swallowed, because the real logout is the
// client discarding its token.
func Logout(token string) {
	_ = store.DeleteSessionByTokenHash(jwtutil.TokenHash(token))
}
