// Package store holds the row-level operations the service relies on. Every
// note operation is scoped by (id, tenant_id); that WHERE clause is one of
// the two tenant-isolation choke points (the other is auth.RequireSameTenant).
package store

import (
	"time"

	"gorm.io/gorm"

	"notes-service/internal/model"
	"notes-service/pkg/database"
)

// FreePlanNoteLimit is the note cap for free tenants.
const FreePlanNoteLimit = 3

// GetUserByEmail fetches a user with their tenant preloaded.
func GetUserByEmail(email string) (*model.User, error) {
	var user model.User
	if err := database.GetDB().Preload("Tenant").Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByID fetches a user with their tenant preloaded.
func GetUserByID(id uint) (*model.User, error) {
	var user model.User
	if err := database.GetDB().Preload("Tenant").First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetTenantBySlug fetches a tenant by its immutable slug.
func GetTenantBySlug(slug string) (*model.Tenant, error) {
	var tenant model.Tenant
	if err := database.GetDB().Where("slug = ?", slug).First(&tenant).Error; err != nil {
		return nil, err
	}
	return &tenant, nil
}

// GetTenantByID fetches a tenant by id.
func GetTenantByID(id uint) (*model.Tenant, error) {
	var tenant model.Tenant
	if err := database.GetDB().First(&tenant, id).Error; err != nil {
		return nil, err
	}
	return &tenant, nil
}

// UpgradeTenant moves the tenant to the pro plan and persists it. There is
// no downgrade path.
func UpgradeTenant(tenant *model.Tenant) error {
	tenant.SubscriptionPlan = model.PlanPro
	return database.GetDB().Model(tenant).Update("subscription_plan", model.PlanPro).Error
}

// ListNotesByTenant returns the tenant's notes, newest first, with author
// info preloaded.
func ListNotesByTenant(tenantID uint) ([]model.Note, error) {
	var notes []model.Note
	err := database.GetDB().
		Preload("User").
		Where("tenant_id = ?", tenantID).
		Order("created_at DESC").
		Find(&notes).Error
	if err != nil {
		return nil, err
	}
	return notes, nil
}

// GetNoteByID fetches a note scoped to the tenant. A note belonging to
// another tenant is indistinguishable from one that does not exist.
func GetNoteByID(id, tenantID uint) (*model.Note, error) {
	var note model.Note
	err := database.GetDB().
		Preload("User").
		Where("id = ? AND tenant_id = ?", id, tenantID).
		First(&note).Error
	if err != nil {
		return nil, err
	}
	return &note, nil
}

// CreateNote inserts a note.
func CreateNote(note *model.Note) error {
	return database.GetDB().Create(note).Error
}

// UpdateNote applies the given column updates to a note scoped to the
// tenant, returning gorm.ErrRecordNotFound when no row matched.
func UpdateNote(id, tenantID uint, updates map[string]interface{}) (*model.Note, error) {
	result := database.GetDB().
		Model(&model.Note{}).
		Where("id = ? AND tenant_id = ?", id, tenantID).
		Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return GetNoteByID(id, tenantID)
}

// DeleteNote removes a note scoped to the tenant, returning
// gorm.ErrRecordNotFound when no row matched.
func DeleteNote(id, tenantID uint) error {
	result := database.GetDB().
		Where("id = ? AND tenant_id = ?", id, tenantID).
		Delete(&model.Note{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CountNotesByTenant returns the tenant's current note count.
func CountNotesByTenant(tenantID uint) (int64, error) {
	var count int64
	err := database.GetDB().
		Model(&model.Note{}).
		Where("tenant_id = ?", tenantID).
		Count(&count).Error
	return count, err
}

// CanTenantCreateNote decides whether the tenant may create another note.
// Pro tenants always may; free tenants are capped at FreePlanNoteLimit.
// The count check and the subsequent insert are not atomic: two concurrent
// creates near the cap can both pass and overshoot by one. The cap is a soft
// business limit, so that is accepted.
func CanTenantCreateNote(tenantID uint) (bool, error) {
	tenant, err := GetTenantByID(tenantID)
	if err != nil {
		return false, err
	}
	if tenant.IsPro() {
		return true, nil
	}

	count, err := CountNotesByTenant(tenantID)
	if err != nil {
		return false, err
	}
	return count < FreePlanNoteLimit, nil
}

// CreateSession records an issued token's hash for revocation bookkeeping.
func CreateSession(session *model.Session) error {
	return database.GetDB().Create(session).Error
}

// DeleteSessionByTokenHash removes the session record matching the hash.
// Deleting a hash with no matching row is not an error.
func DeleteSessionByTokenHash(tokenHash string) error {
	return database.GetDB().Where("token_hash = ?", tokenHash).Delete(&model.Session{}).Error
}

// DeleteExpiredSessions removes session records that expired before the
// cutoff, returning how many were deleted.
func DeleteExpiredSessions(cutoff time.Time) (int64, error) {
	result := database.GetDB().Where("expires_at < ?", cutoff).Delete(&model.Session{})
	return result.RowsAffected, result.Error
}
