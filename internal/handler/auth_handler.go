package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"notes-service/internal/apperror"
	"notes-service/internal/auth"
	"notes-service/internal/middleware"
	"notes-service/pkg/logger"
	"notes-service/prometheus"
)

// Login handles POST /auth/login.
func Login(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.LoginCounter.Inc()

	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	if err := c.Bind(&req); err != nil {
		log.Debug("Failed to parse login request", zap.Error(err))
		prometheus.RecordAuthError("invalid_request")
		return fail(c, apperror.Validation("Email and password are required"))
	}

	if req.Email == "" || req.Password == "" {
		prometheus.RecordAuthError("missing_credentials")
		return fail(c, apperror.Validation("Email and password are required"))
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	result, err := auth.Authenticate(req.Email, req.Password)
	if err != nil {
		// Same log level and response for unknown email and wrong password.
		log.Warn("Login failed", zap.String("email", req.Email))
		prometheus.RecordAuthError("invalid_credentials")
		return fail(c, err)
	}

	prometheus.ActiveSessionsGauge.Inc()
	log.Info("User logged in",
		zap.String("email", result.User.Email),
		zap.Uint("tenant_id", result.User.TenantID))

	return success(c, http.StatusOK, result, "Login successful")
}

// Logout handles POST /auth/logout. The token is optional and failures are
// swallowed: logout always reports success.
func Logout(c echo.Context) error {
	if token := middleware.ExtractToken(c); token != "" {
		auth.Logout(token)
		prometheus.ActiveSessionsGauge.Dec()
		logger.FromContext(c).Info("User logged out")
	}
	return success(c, http.StatusOK, nil, "Logged out successfully")
}

// Me handles GET /api/me, returning the authenticated user with their
// tenant. The password hash never serializes.
func Me(c echo.Context) error {
	user := middleware.CurrentUser(c)
	return success(c, http.StatusOK, user, "")
}
