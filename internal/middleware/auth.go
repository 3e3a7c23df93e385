package middleware

import (
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"notes-service/internal/apperror"
	"notes-service/internal/auth"
	"notes-service/internal/model"
	"notes-service/internal/store"
	"notes-service/pkg/jwtutil"
	"notes-service/pkg/logger"
	"notes-service/prometheus"
)

// AuthCookieName is the fallback cookie for token extraction. The
// Authorization header wins when both are present.
const AuthCookieName = "auth_token"

// Context keys set by Auth for downstream handlers.
const (
	userContextKey   = "user"
	tokenContextKey  = "token"
	claimsContextKey = "claims"
)

// ExtractToken pulls the bearer token from the Authorization header, falling
// back to the auth cookie. Returns "" when neither carries one.
func ExtractToken(c echo.Context) string {
	authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			return parts[1]
		}
		return ""
	}

	if cookie, err := c.Cookie(AuthCookieName); err == nil {
		return cookie.Value
	}
	return ""
}

// Auth validates the bearer token and resolves it to a live user before any
// handler logic runs. The user is re-fetched from the store so the role and
// tenant are current, not whatever the claims said at issuance.
func Auth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		log := logger.FromContext(c)

		token := ExtractToken(c)
		if token == "" {
			log.Debug("Missing or malformed authorization")
			prometheus.RecordAuthError("missing_token")
			return apperror.Respond(c, apperror.Auth("Missing or invalid authorization header"))
		}

		claims, err := jwtutil.ValidateToken(token)
		if err != nil {
			log.Debug("Token validation failed", zap.Error(err))
			prometheus.RecordAuthError("invalid_token")
			return apperror.Respond(c, apperror.Auth("Invalid token"))
		}

		defer prometheus.TrackDBOperation("query")(time.Now())
		user, err := store.GetUserByID(claims.UserID)
		if err != nil {
			log.Warn("Token for nonexistent user", zap.Uint("user_id", claims.UserID))
			prometheus.RecordAuthError("user_not_found")
			return apperror.Respond(c, apperror.Auth("User not found"))
		}

		c.Set(userContextKey, user)
		c.Set(tokenContextKey, token)
		c.Set(claimsContextKey, claims)

		return next(c)
	}
}

// RequireAdmin gates admin-only routes. Must run after Auth.
func RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		user := CurrentUser(c)
		if user == nil {
			prometheus.RecordAuthError("missing_token")
			return apperror.Respond(c, apperror.Auth("Missing or invalid authorization header"))
		}
		if err := auth.RequireAdmin(user); err != nil {
			logger.FromContext(c).Warn("Admin access denied",
				zap.String("email", user.Email),
				zap.String("role", user.Role))
			prometheus.RecordAuthError("admin_required")
			return apperror.Respond(c, err)
		}
		return next(c)
	}
}

// CurrentUser returns the authenticated user placed in context by Auth, or
// nil on unauthenticated requests.
func CurrentUser(c echo.Context) *model.User {
	user, _ := c.Get(userContextKey).(*model.User)
	return user
}

// CurrentClaims returns the verified token claims, or nil.
func CurrentClaims(c echo.Context) *jwtutil.UserClaims {
	claims, _ := c.Get(claimsContextKey).(*jwtutil.UserClaims)
	return claims
}
