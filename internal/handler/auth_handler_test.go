package handler_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notes-service/internal/model"
	"notes-service/internal/testutil"
)

func TestLoginValidation(t *testing.T) {
	e, _ := newServer(t)

	for _, body := range []string{``, `{}`, `{"email":"user@acme.test"}`, `{"password":"password"}`} {
		rec := do(t, e, http.MethodPost, "/auth/login", "", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "body %q", body)
		assert.Equal(t, "Email and password are required", parse(t, rec).Error)
	}
}

func TestLoginInvalidCredentials(t *testing.T) {
	e, db := newServer(t)
	tenant := testutil.SeedTenant(t, db, "Acme Corporation", "acme", model.PlanFree)
	testutil.SeedUser(t, db, tenant, "user@acme.test", model.RoleMember, "password")

	wrongPassword := do(t, e, http.MethodPost, "/auth/login", "",
		`{"email":"user@acme.test","password":"wrong"}`)
	unknownEmail := do(t, e, http.MethodPost, "/auth/login", "",
		`{"email":"ghost@acme.test","password":"password"}`)

	assert.Equal(t, http.StatusUnauthorized, wrongPassword.Code)
	assert.Equal(t, http.StatusUnauthorized, unknownEmail.Code)
	// Identical bodies: the endpoint must not reveal which accounts exist.
	assert.Equal(t, wrongPassword.Body.String(), unknownEmail.Body.String())
	assert.Equal(t, "Invalid credentials", parse(t, wrongPassword).Error)
}

func TestLoginSuccess(t *testing.T) {
	e, db := newServer(t)
	tenant := testutil.SeedTenant(t, db, "Acme Corporation", "acme", model.PlanFree)
	testutil.SeedUser(t, db, tenant, "user@acme.test", model.RoleMember, "password")

	rec := do(t, e, http.MethodPost, "/auth/login", "",
		`{"email":"user@acme.test","password":"password"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	env := parse(t, rec)
	assert.True(t, env.Success)
	assert.Equal(t, "Login successful", env.Message)

	var data struct {
		User  map[string]json.RawMessage `json:"user"`
		Token string                     `json:"token"`
	}
	decodeData(t, env, &data)
	assert.NotEmpty(t, data.Token)
	assert.Contains(t, data.User, "email")
	assert.Contains(t, data.User, "tenant")
	// The hash must never serialize, under any key.
	assert.NotContains(t, data.User, "password_hash")
	assert.NotContains(t, data.User, "password")

	// A session record was written for the issued token.
	var count int64
	db.Model(&model.Session{}).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestMe(t *testing.T) {
	e, db := newServer(t)
	tenant := testutil.SeedTenant(t, db, "Acme Corporation", "acme", model.PlanFree)
	testutil.SeedUser(t, db, tenant, "user@acme.test", model.RoleMember, "password")

	rec := do(t, e, http.MethodGet, "/api/me", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	token := login(t, e, "user@acme.test", "password")
	rec = do(t, e, http.MethodGet, "/api/me", token, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var user struct {
		Email  string `json:"email"`
		Tenant struct {
			Slug             string `json:"slug"`
			SubscriptionPlan string `json:"subscription_plan"`
		} `json:"tenant"`
	}
	decodeData(t, parse(t, rec), &user)
	assert.Equal(t, "user@acme.test", user.Email)
	assert.Equal(t, "acme", user.Tenant.Slug)
	assert.Equal(t, model.PlanFree, user.Tenant.SubscriptionPlan)
}

func TestLogout(t *testing.T) {
	e, db := newServer(t)
	tenant := testutil.SeedTenant(t, db, "Acme Corporation", "acme", model.PlanFree)
	testutil.SeedUser(t, db, tenant, "user@acme.test", model.RoleMember, "password")
	token := login(t, e, "user@acme.test", "password")

	rec := do(t, e, http.MethodPost, "/auth/logout", token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Logged out successfully", parse(t, rec).Message)

	// The session record is gone.
	var count int64
	db.Model(&model.Session{}).Count(&count)
	assert.EqualValues(t, 0, count)

	// Token verification is stateless, so the token itself stays valid until
	// expiry. The real logout is the client discarding it.
	rec = do(t, e, http.MethodGet, "/api/me", token, "")
	assert.Equal(t, http.StatusOK, rec.Code)

	// Logout without a token is still a success.
	rec = do(t, e, http.MethodPost, "/auth/logout", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}
