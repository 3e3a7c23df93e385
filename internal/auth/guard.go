package auth

import (
	"notes-service/internal/apperror"
	"notes-service/internal/model"
)

// RequireAdmin fails unless the user holds the admin role.
func RequireAdmin(user *model.User) error {
	if !user.IsAdmin() {
		return apperror.Permission("Admin access required")
	}
	return nil
}

// RequireSameTenant fails when the caller's tenant does not own the
// resource. Every operation on a tenant-owned resource passes either through
// here or through a store-level tenant_id filter.
func RequireSameTenant(callerTenantID, resourceTenantID uint) error {
	if callerTenantID != resourceTenantID {
		return apperror.TenantIsolation("Access denied: different tenant")
	}
	return nil
}
