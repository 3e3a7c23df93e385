package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"notes-service/internal/router"
	"notes-service/internal/testutil"
)

// envelope is the standard response body shape.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
}

func newServer(t *testing.T) (*echo.Echo, *gorm.DB) {
	t.Helper()
	db := testutil.OpenDB(t)
	testutil.InitJWT(t)
	return router.New(zap.NewNop()), db
}

// do issues a request against the full middleware chain.
func do(t *testing.T, e *echo.Echo, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func parse(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), "body: %s", rec.Body.String())
	return env
}

// decodeData unmarshals the envelope's data field into out.
func decodeData(t *testing.T, env envelope, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(env.Data, out))
}

// login authenticates through the HTTP surface and returns the bearer token.
func login(t *testing.T, e *echo.Echo, email, password string) string {
	t.Helper()
	rec := do(t, e, http.MethodPost, "/auth/login", "", `{"email":"`+email+`","password":"`+password+`"}`)
	require.Equal(t, http.StatusOK, rec.Code, "login failed: %s", rec.Body.String())

	var data struct {
		Token string `json:"token"`
	}
	decodeData(t, parse(t, rec), &data)
	require.NotEmpty(t, data.Token)
	return data.Token
}
