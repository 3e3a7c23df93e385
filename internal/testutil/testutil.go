// Package testutil wires an isolated in-memory database and test fixtures
// into the global handles for the duration of a test.
package testutil

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"notes-service/internal/model"
	"notes-service/pkg/config"
	"notes-service/pkg/database"
	"notes-service/pkg/jwtutil"
)

// OpenDB opens a fresh in-memory database, migrates the schema and installs
// it as the global handle until the test ends. Each call gets its own
// database, so parallel tests do not share state.
func OpenDB(t *testing.T) *gorm.DB {
	t.Helper()

	// A named shared-cache memory database keeps all pool connections on the
	// same data.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.New().String())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}

	if err := db.AutoMigrate(&model.Tenant{}, &model.User{}, &model.Note{}, &model.Session{}); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}

	prev := database.DB
	database.DB = db
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
		database.DB = prev
	})

	return db
}

// InitJWT configures the token service with a test signing key and the
// standard 7-day lifetime.
func InitJWT(t *testing.T) {
	t.Helper()
	jwtutil.Initialize(&config.JWTConfig{
		SigningKey:      "test-signing-key",
		ExpirationHours: 168,
	})
}

// SeedTenant inserts a tenant.
func SeedTenant(t *testing.T, db *gorm.DB, name, slug, plan string) *model.Tenant {
	t.Helper()
	tenant := &model.Tenant{Name: name, Slug: slug, SubscriptionPlan: plan}
	if err := db.Create(tenant).Error; err != nil {
		t.Fatalf("seed tenant %s: %v", slug, err)
	}
	return tenant
}

// SeedUser inserts a user into the tenant. MinCost keeps the fixture fast;
// production hashing uses the default cost.
func SeedUser(t *testing.T, db *gorm.DB, tenant *model.Tenant, email, role, password string) *model.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	user := &model.User{
		TenantID:     tenant.ID,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("seed user %s: %v", email, err)
	}
	return user
}

// SeedNote inserts a note for the user's tenant.
func SeedNote(t *testing.T, db *gorm.DB, user *model.User, title, content string) *model.Note {
	t.Helper()
	note := &model.Note{
		TenantID: user.TenantID,
		UserID:   user.ID,
		Title:    title,
		Content:  content,
	}
	if err := db.Create(note).Error; err != nil {
		t.Fatalf("seed note %q: %v", title, err)
	}
	return note
}
