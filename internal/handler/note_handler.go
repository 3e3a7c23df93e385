package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"notes-service/internal/apperror"
	"notes-service/internal/middleware"
	"notes-service/internal/model"
	"notes-service/internal/store"
	"notes-service/pkg/logger"
	"notes-service/prometheus"
)

// noteID parses the :id route param. A non-numeric id cannot match any note,
// so it renders the same 404 as a miss.
func noteID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, apperror.NotFound("Note not found")
	}
	return uint(id), nil
}

// ListNotes handles GET /api/notes.
func ListNotes(c echo.Context) error {
	user := middleware.CurrentUser(c)
	prometheus.RecordNoteOperation("list")

	defer prometheus.TrackDBOperation("query")(time.Now())
	notes, err := store.ListNotesByTenant(user.TenantID)
	if err != nil {
		return fail(c, err)
	}

	return success(c, http.StatusOK, notes, "")
}

// GetNote handles GET /api/notes/:id.
func GetNote(c echo.Context) error {
	user := middleware.CurrentUser(c)
	prometheus.RecordNoteOperation("get")

	id, err := noteID(c)
	if err != nil {
		return fail(c, err)
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	note, err := store.GetNoteByID(id, user.TenantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fail(c, apperror.NotFound("Note not found"))
		}
		return fail(c, err)
	}

	return success(c, http.StatusOK, note, "")
}

// CreateNote handles POST /api/notes. Creation is gated by the tenant's
// subscription quota.
func CreateNote(c echo.Context) error {
	log := logger.FromContext(c)
	user := middleware.CurrentUser(c)
	prometheus.RecordNoteOperation("create")

	var req struct {
		Title   string `json:"title"`
		Content string `json:"content"`
	}

	if err := c.Bind(&req); err != nil {
		log.Debug("Failed to parse note creation request", zap.Error(err))
		return fail(c, apperror.Validation("Title is required"))
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		return fail(c, apperror.Validation("Title is required"))
	}

	canCreate, err := store.CanTenantCreateNote(user.TenantID)
	if err != nil {
		return fail(c, err)
	}
	if !canCreate {
		prometheus.QuotaRejectionCounter.Inc()
		log.Info("Note creation rejected by quota", zap.Uint("tenant_id", user.TenantID))
		return fail(c, apperror.SubscriptionLimit(
			"Free plan limited to 3 notes. Upgrade to Pro for unlimited notes."))
	}

	note := &model.Note{
		TenantID: user.TenantID,
		UserID:   user.ID,
		Title:    title,
		Content:  strings.TrimSpace(req.Content),
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())
	if err := store.CreateNote(note); err != nil {
		return fail(c, err)
	}
	note.User = user

	log.Info("Note created",
		zap.Uint("note_id", note.ID),
		zap.Uint("tenant_id", note.TenantID),
		zap.Uint("user_id", note.UserID))

	return success(c, http.StatusCreated, note, "Note created successfully")
}

// UpdateNote handles PUT /api/notes/:id with partial updates.
func UpdateNote(c echo.Context) error {
	log := logger.FromContext(c)
	user := middleware.CurrentUser(c)
	prometheus.RecordNoteOperation("update")

	id, err := noteID(c)
	if err != nil {
		return fail(c, err)
	}

	// Pointers distinguish "field absent" from "field set to empty".
	var req struct {
		Title   *string `json:"title"`
		Content *string `json:"content"`
	}

	if err := c.Bind(&req); err != nil {
		log.Debug("Failed to parse note update request", zap.Error(err))
		return fail(c, apperror.Validation("No valid updates provided"))
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return fail(c, apperror.Validation("Title cannot be empty"))
		}
		updates["title"] = title
	}
	if req.Content != nil {
		updates["content"] = strings.TrimSpace(*req.Content)
	}
	if len(updates) == 0 {
		return fail(c, apperror.Validation("No valid updates provided"))
	}

	defer prometheus.TrackDBOperation("update")(time.Now())
	note, err := store.UpdateNote(id, user.TenantID, updates)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fail(c, apperror.NotFound("Note not found"))
		}
		return fail(c, err)
	}

	log.Info("Note updated", zap.Uint("note_id", note.ID), zap.Uint("tenant_id", note.TenantID))
	return success(c, http.StatusOK, note, "Note updated successfully")
}

// DeleteNote handles DELETE /api/notes/:id.
func DeleteNote(c echo.Context) error {
	log := logger.FromContext(c)
	user := middleware.CurrentUser(c)
	prometheus.RecordNoteOperation("delete")

	id, err := noteID(c)
	if err != nil {
		return fail(c, err)
	}

	defer prometheus.TrackDBOperation("delete")(time.Now())
	if err := store.DeleteNote(id, user.TenantID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fail(c, apperror.NotFound("Note not found"))
		}
		return fail(c, err)
	}

	log.Info("Note deleted", zap.Uint("note_id", id), zap.Uint("tenant_id", user.TenantID))
	return success(c, http.StatusOK, nil, "Note deleted successfully")
}
