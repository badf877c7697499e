package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shaunkitch/WorkforceOne-Production-sub001/internal/domain/model"
	domainRepo "github.com/shaunkitch/WorkforceOne-Production-sub001/internal/domain/repository"
	"github.com/shaunkitch/WorkforceOne-Production-sub001/internal/infrastructure/messaging"
	"github.com/shaunkitch/WorkforceOne-Production-sub001/internal/middleware/auth"
	"github.com/shaunkitch/WorkforceOne-Production-sub001/internal/usecase"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CreateFormRequest is the payload for creating a form
type CreateFormRequest struct {
	Name        string             `json:"name" validate:"required,max=255"`
	Description string             `json:"description"`
	Fields      []FormFieldRequest `json:"fields" validate:"dive"`
}

// FormFieldRequest describes one field of a new form
type FormFieldRequest struct {
	ID       string `json:"id" validate:"required"`
	Type     string `json:"type" validate:"required"`
	Label    string `json:"label" validate:"required"`
	Required bool   `json:"required"`
}

// FormHandler serves form CRUD. Every mutation writes a change record so it
// can be reverted from the audit log.
type FormHandler struct {
	logger      *zap.Logger
	formRepo    domainRepo.FormRepository
	recorder    *usecase.AuditRecorder
	revalidator messaging.Revalidator
}

// NewFormHandler creates a new form handler
func NewFormHandler(logger *zap.Logger, formRepo domainRepo.FormRepository, recorder *usecase.AuditRecorder, revalidator messaging.Revalidator) *FormHandler {
	return &FormHandler{
		logger:      logger,
		formRepo:    formRepo,
		recorder:    recorder,
		revalidator: revalidator,
	}
}

// CreateForm creates a workspace form
func (h *FormHandler) CreateForm(c echo.Context) error {
	actor, err := auth.GetActorFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Authentication required"})
	}

	var req CreateFormRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	fields := make(model.FormFields, len(req.Fields))
	for i, f := range req.Fields {
		fields[i] = model.FormField{
			ID:       f.ID,
			Type:     f.Type,
			Label:    f.Label,
			Required: f.Required,
		}
	}

	form := &model.Form{
		WorkspaceID: actor.WorkspaceID,
		Name:        req.Name,
		Description: req.Description,
		Fields:      fields,
	}

	ctx := c.Request().Context()
	if err := h.formRepo.Create(ctx, form); err != nil {
		h.logger.Error("Failed to create form",
			zap.String("workspace_id", actor.WorkspaceID.String()),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to create form"})
	}

	h.recorder.Record(ctx, actor, usecase.ChangeEntry{
		Action:         "Created form " + form.Name,
		TargetResource: "forms",
		Table:          model.Form{}.TableName(),
		RecordID:       form.ID.String(),
		NewData:        model.Snapshot(form),
	})
	h.revalidator.Revalidate(ctx, "/forms")

	return c.JSON(http.StatusCreated, form)
}

// ListForms returns the workspace's forms
func (h *FormHandler) ListForms(c echo.Context) error {
	actor, err := auth.GetActorFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Authentication required"})
	}

	limit, offset := pageParams(c)
	forms, err := h.formRepo.List(c.Request().Context(), actor.WorkspaceID, limit, offset)
	if err != nil {
		h.logger.Error("Failed to list forms",
			zap.String("workspace_id", actor.WorkspaceID.String()),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to list forms"})
	}

	return c.JSON(http.StatusOK, echo.Map{"data": forms})
}

// GetForm returns one form by id
func (h *FormHandler) GetForm(c echo.Context) error {
	actor, err := auth.GetActorFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Authentication required"})
	}

	formID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Form id must be a valid UUID"})
	}

	form, err := h.formRepo.GetByID(c.Request().Context(), actor.WorkspaceID, formID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Form not found"})
		}
		h.logger.Error("Failed to load form",
			zap.String("form_id", formID.String()),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to load form"})
	}

	return c.JSON(http.StatusOK, form)
}

// DeleteForm deletes a form. The pre-delete snapshot goes into the change
// record so the delete is revertible.
func (h *FormHandler) DeleteForm(c echo.Context) error {
	actor, err := auth.GetActorFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Authentication required"})
	}

	formID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Form id must be a valid UUID"})
	}

	ctx := c.Request().Context()
	form, err := h.formRepo.GetByID(ctx, actor.WorkspaceID, formID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Form not found"})
		}
		h.logger.Error("Failed to load form",
			zap.String("form_id", formID.String()),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to delete form"})
	}

	if err := h.formRepo.Delete(ctx, actor.WorkspaceID, formID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Form not found"})
		}
		h.logger.Error("Failed to delete form",
			zap.String("form_id", formID.String()),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to delete form"})
	}

	h.recorder.Record(ctx, actor, usecase.ChangeEntry{
		Action:         "Deleted form " + form.Name,
		TargetResource: "forms",
		Table:          model.Form{}.TableName(),
		RecordID:       form.ID.String(),
		PreviousData:   model.Snapshot(form),
	})
	h.revalidator.Revalidate(ctx, "/forms")

	return c.NoContent(http.StatusNoContent)
}

// pageParams reads limit/offset query params with a sane default and cap.
func pageParams(c echo.Context) (int, int) {
	limit := defaultAuditPageSize
	offset := 0
	if raw := c.QueryParam("limit"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			limit = v
		}
	}
	if limit > maxAuditPageSize {
		limit = maxAuditPageSize
	}
	if raw := c.QueryParam("offset"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			offset = v
		}
	}
	return limit, offset
}
