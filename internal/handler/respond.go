package handler

import (
	"errors"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"notes-service/internal/apperror"
	"notes-service/pkg/logger"
)

// success renders the standard envelope. The message is omitted when empty.
func success(c echo.Context, status int, data interface{}, message string) error {
	body := echo.Map{"success": true, "data": data}
	if message != "" {
		body["message"] = message
	}
	return c.JSON(status, body)
}

// fail renders an error through the apperror boundary. Unclassified errors
// are logged here; the client only ever sees the generic 500 body.
func fail(c echo.Context, err error) error {
	var appErr *apperror.Error
	if !errors.As(err, &appErr) {
		logger.FromContext(c).Error("Unhandled error", zap.Error(err))
	}
	return apperror.Respond(c, err)
}
