package apperror

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
)

// Stable machine-readable error codes surfaced to clients.
const (
	CodeAuth              = "AUTH_ERROR"
	CodeTenantIsolation   = "TENANT_ISOLATION_ERROR"
	CodeNotFound          = "NOT_FOUND"
	CodeValidation        = "VALIDATION_ERROR"
	CodeSubscriptionLimit = "SUBSCRIPTION_LIMIT_ERROR"
)

// Error is a classified application error: a stable code, the HTTP status it
// renders with, and a message safe to show the client. Anything that is not
// an *Error is treated as unclassified and rendered as a generic 500.
type Error struct {
	Code    string `json:"code"`
	Status  int    `json:"-"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	return e.Message
}

// Auth builds a 401 credential/token error.
func Auth(message string) *Error {
	return &Error{Code: CodeAuth, Status: http.StatusUnauthorized, Message: message}
}

// Permission builds a 403 error for authenticated callers lacking the
// required role. Same code family as Auth.
func Permission(message string) *Error {
	return &Error{Code: CodeAuth, Status: http.StatusForbidden, Message: message}
}

// TenantIsolation builds a 403 cross-tenant access error.
func TenantIsolation(message string) *Error {
	return &Error{Code: CodeTenantIsolation, Status: http.StatusForbidden, Message: message}
}

// NotFound builds a 404 error, also used for resources that exist but belong
// to another tenant.
func NotFound(message string) *Error {
	return &Error{Code: CodeNotFound, Status: http.StatusNotFound, Message: message}
}

// Validation builds a 400 malformed-input error.
func Validation(message string) *Error {
	return &Error{Code: CodeValidation, Status: http.StatusBadRequest, Message: message}
}

// SubscriptionLimit builds a 402 quota error. Distinct from generic failures
// so clients can render an upgrade prompt instead of an error banner.
func SubscriptionLimit(message string) *Error {
	return &Error{Code: CodeSubscriptionLimit, Status: http.StatusPaymentRequired, Message: message}
}

// Respond renders err on the echo context. Classified errors keep their
// status and message; anything else becomes a 500 with a generic body so
// internals never leak to the client.
func Respond(c echo.Context, err error) error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return c.JSON(appErr.Status, echo.Map{"success": false, "error": appErr.Message})
	}
	return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": "Internal server error"})
}
