package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notes-service/internal/apperror"
	"notes-service/internal/model"
	"notes-service/internal/testutil"
	"notes-service/pkg/jwtutil"
)

func TestHashPassword(t *testing.T) {
	h1, err := HashPassword("secret")
	require.NoError(t, err)
	h2, err := HashPassword("secret")
	require.NoError(t, err)

	// Random salt per call.
	assert.NotEqual(t, h1, h2)
	assert.True(t, CheckPassword("secret", h1))
	assert.True(t, CheckPassword("secret", h2))
	assert.False(t, CheckPassword("wrong", h1))
	assert.False(t, CheckPassword("secret", "not-a-hash"))
}

func TestAuthenticateSuccess(t *testing.T) {
	db := testutil.OpenDB(t)
	testutil.InitJWT(t)
	tenant := testutil.SeedTenant(t, db, "Acme Corporation", "acme", model.PlanFree)
	user := testutil.SeedUser(t, db, tenant, "user@acme.test", model.RoleMember, "password")

	result, err := Authenticate("user@acme.test", "password")
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, user.ID, result.User.ID)
	assert.NotEmpty(t, result.Token)
	require.NotNil(t, result.User.Tenant)
	assert.Equal(t, "acme", result.User.Tenant.Slug)

	// A session record exists, keyed by the token's hash, expiring 7 days out.
	var session model.Session
	require.NoError(t, db.Where("token_hash = ?", jwtutil.TokenHash(result.Token)).First(&session).Error)
	assert.Equal(t, user.ID, session.UserID)
	assert.WithinDuration(t, time.Now().Add(7*24*time.Hour), session.ExpiresAt, time.Minute)

	// The token round-trips through verification.
	claims, err := jwtutil.ValidateToken(result.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, tenant.ID, claims.TenantID)
}

func TestAuthenticateEnumerationResistance(t *testing.T) {
	db := testutil.OpenDB(t)
	testutil.InitJWT(t)
	tenant := testutil.SeedTenant(t, db, "Acme Corporation", "acme", model.PlanFree)
	testutil.SeedUser(t, db, tenant, "user@acme.test", model.RoleMember, "password")

	_, wrongPassword := Authenticate("user@acme.test", "nope")
	_, unknownEmail := Authenticate("nobody@acme.test", "password")

	// Identical message for both failure modes.
	require.Error(t, wrongPassword)
	require.Error(t, unknownEmail)
	assert.Equal(t, wrongPassword.Error(), unknownEmail.Error())
	assert.Equal(t, "Invalid credentials", wrongPassword.Error())

	var appErr *apperror.Error
	require.ErrorAs(t, wrongPassword, &appErr)
	assert.Equal(t, 401, appErr.Status)
	assert.Equal(t, apperror.CodeAuth, appErr.Code)
}

func TestAuthenticateEmptyStoredHash(t *testing.T) {
	db := testutil.OpenDB(t)
	testutil.InitJWT(t)
	tenant := testutil.SeedTenant(t, db, "Acme Corporation", "acme", model.PlanFree)
	user := testutil.SeedUser(t, db, tenant, "user@acme.test", model.RoleMember, "password")
	require.NoError(t, db.Model(user).Update("password_hash", "").Error)

	_, err := Authenticate("user@acme.test", "password")
	require.Error(t, err)
	assert.Equal(t, "Invalid credentials", err.Error())
}

func TestLogout(t *testing.T) {
	db := testutil.OpenDB(t)
	testutil.InitJWT(t)
	tenant := testutil.SeedTenant(t, db, "Acme Corporation", "acme", model.PlanFree)
	testutil.SeedUser(t, db, tenant, "user@acme.test", model.RoleMember, "password")

	result, err := Authenticate("user@acme.test", "password")
	require.NoError(t, err)

	var count int64
	db.Model(&model.Session{}).Count(&count)
	require.EqualValues(t, 1, count)

	Logout(result.Token)
	db.Model(&model.Session{}).Count(&count)
	assert.EqualValues(t, 0, count)

	// Best effort: a second logout of the same token is a silent no-op.
	Logout(result.Token)
	Logout("never-issued")
}

func TestGuards(t *testing.T) {
	admin := &model.User{Role: model.RoleAdmin, TenantID: 1}
	member := &model.User{Role: model.RoleMember, TenantID: 1}

	assert.NoError(t, RequireAdmin(admin))

	err := RequireAdmin(member)
	require.Error(t, err)
	var appErr *apperror.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 403, appErr.Status)
	assert.Equal(t, apperror.CodeAuth, appErr.Code)
	assert.Equal(t, "Admin access required", appErr.Message)

	assert.NoError(t, RequireSameTenant(1, 1))

	err = RequireSameTenant(1, 2)
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 403, appErr.Status)
	assert.Equal(t, apperror.CodeTenantIsolation, appErr.Code)
}
