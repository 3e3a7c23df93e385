package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"notes-service/internal/apperror"
	"notes-service/internal/auth"
	"notes-service/internal/middleware"
	"notes-service/internal/model"
	"notes-service/internal/store"
	"notes-service/pkg/logger"
	"notes-service/prometheus"
)

// UpgradeTenant handles POST /api/tenants/:slug/upgrade. The route is
// admin-gated; on top of that an admin may only upgrade their own tenant,
// so the tenant-match check runs even for authenticated admins.
func UpgradeTenant(c echo.Context) error {
	log := logger.FromContext(c)
	user := middleware.CurrentUser(c)
	slug := c.Param("slug")
	prometheus.RecordTenantOperation("upgrade")

	defer prometheus.TrackDBOperation("query")(time.Now())
	tenant, err := store.GetTenantBySlug(slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fail(c, apperror.NotFound("Tenant not found"))
		}
		return fail(c, err)
	}

	if err := auth.RequireSameTenant(user.TenantID, tenant.ID); err != nil {
		log.Warn("Cross-tenant upgrade attempt",
			zap.Uint("caller_tenant_id", user.TenantID),
			zap.String("target_slug", slug))
		prometheus.RecordAuthError("tenant_isolation")
		return fail(c, apperror.TenantIsolation("You can only upgrade your own tenant subscription"))
	}

	// An upgrade of an already-pro tenant is rejected, not silently absorbed.
	if tenant.IsPro() {
		return fail(c, apperror.Validation("Tenant is already on Pro plan"))
	}

	defer prometheus.TrackDBOperation("update")(time.Now())
	if err := store.UpgradeTenant(tenant); err != nil {
		return fail(c, err)
	}

	log.Info("Tenant upgraded",
		zap.String("slug", tenant.Slug),
		zap.Uint("tenant_id", tenant.ID),
		zap.String("plan", model.PlanPro))

	return success(c, http.StatusOK, tenant, "Subscription upgraded to Pro successfully")
}
