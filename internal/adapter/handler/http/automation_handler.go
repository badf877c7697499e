package http

import (
	"errors"
	"net/http"

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

// CreateAutomationRequest is the payload for creating an automation rule
type CreateAutomationRequest struct {
	FormID     string                       `json:"form_id" validate:"required,uuid"`
	Name       string                       `json:"name" validate:"required,max=255"`
	Conditions []AutomationConditionRequest `json:"conditions" validate:"dive"`
	Actions    []AutomationActionRequest    `json:"actions" validate:"required,min=1,dive"`
}

// AutomationConditionRequest describes one condition of a rule
type AutomationConditionRequest struct {
	FieldID  string `json:"field_id" validate:"required"`
	Operator string `json:"operator" validate:"required"`
	Value    string `json:"value"`
}

// AutomationActionRequest describes one action of a rule
type AutomationActionRequest struct {
	Type    string `json:"type" validate:"required"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// AutomationHandler serves automation rule CRUD. Rules are read-only to the
// evaluator; only workspace admins create and delete them here.
type AutomationHandler struct {
	logger         *zap.Logger
	automationRepo domainRepo.AutomationRepository
	formRepo       domainRepo.FormRepository
	recorder       *usecase.AuditRecorder
	revalidator    messaging.Revalidator
}

// NewAutomationHandler creates a new automation handler
func NewAutomationHandler(
	logger *zap.Logger,
	automationRepo domainRepo.AutomationRepository,
	formRepo domainRepo.FormRepository,
	recorder *usecase.AuditRecorder,
	revalidator messaging.Revalidator,
) *AutomationHandler {
	return &AutomationHandler{
		logger:         logger,
		automationRepo: automationRepo,
		formRepo:       formRepo,
		recorder:       recorder,
		revalidator:    revalidator,
	}
}

// CreateAutomation creates an automation rule for a form
func (h *AutomationHandler) CreateAutomation(c echo.Context) error {
	actor, err := auth.GetActorFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Authentication required"})
	}

	var req CreateAutomationRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	formID, err := uuid.Parse(req.FormID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "form_id must be a valid UUID"})
	}

	ctx := c.Request().Context()
	if _, err := h.formRepo.GetByID(ctx, actor.WorkspaceID, formID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Form not found"})
		}
		h.logger.Error("Failed to load form for automation",
			zap.String("form_id", formID.String()),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to create automation"})
	}

	conditions := make(model.AutomationConditions, len(req.Conditions))
	for i, cond := range req.Conditions {
		conditions[i] = model.AutomationCondition{
			FieldID:  cond.FieldID,
			Operator: cond.Operator,
			Value:    cond.Value,
		}
	}
	actions := make(model.AutomationActions, len(req.Actions))
	for i, action := range req.Actions {
		actions[i] = model.AutomationAction{
			Type:    action.Type,
			To:      action.To,
			Subject: action.Subject,
			Body:    action.Body,
		}
	}

	rule := &model.AutomationRule{
		WorkspaceID: actor.WorkspaceID,
		FormID:      formID,
		Name:        req.Name,
		Conditions:  conditions,
		Actions:     actions,
	}

	if err := h.automationRepo.Create(ctx, rule); err != nil {
		h.logger.Error("Failed to create automation rule",
			zap.String("workspace_id", actor.WorkspaceID.String()),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to create automation"})
	}

	h.recorder.Record(ctx, actor, usecase.ChangeEntry{
		Action:         "Created automation " + rule.Name,
		TargetResource: "forms/automations",
		Table:          model.AutomationRule{}.TableName(),
		RecordID:       rule.ID.String(),
		NewData:        model.Snapshot(rule),
	})
	h.revalidator.Revalidate(ctx, "/forms/automations")

	return c.JSON(http.StatusCreated, rule)
}

// ListAutomations returns the automation rules of a form
func (h *AutomationHandler) ListAutomations(c echo.Context) error {
	actor, err := auth.GetActorFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Authentication required"})
	}

	formID, err := uuid.Parse(c.QueryParam("form_id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "form_id query parameter must be a valid UUID"})
	}

	rules, err := h.automationRepo.ListByForm(c.Request().Context(), actor.WorkspaceID, formID)
	if err != nil {
		h.logger.Error("Failed to list automation rules",
			zap.String("form_id", formID.String()),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to list automations"})
	}

	return c.JSON(http.StatusOK, echo.Map{"data": rules})
}

// DeleteAutomation deletes an automation rule
func (h *AutomationHandler) DeleteAutomation(c echo.Context) error {
	actor, err := auth.GetActorFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Authentication required"})
	}

	ruleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Automation id must be a valid UUID"})
	}

	ctx := c.Request().Context()
	rule, err := h.automationRepo.GetByID(ctx, actor.WorkspaceID, ruleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Automation not found"})
		}
		h.logger.Error("Failed to load automation rule",
			zap.String("rule_id", ruleID.String()),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to delete automation"})
	}

	if err := h.automationRepo.Delete(ctx, actor.WorkspaceID, ruleID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Automation not found"})
		}
		h.logger.Error("Failed to delete automation rule",
			zap.String("rule_id", ruleID.String()),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to delete automation"})
	}

	h.recorder.Record(ctx, actor, usecase.ChangeEntry{
		Action:         "Deleted automation " + rule.Name,
		TargetResource: "forms/automations",
		Table:          model.AutomationRule{}.TableName(),
		RecordID:       rule.ID.String(),
		PreviousData:   model.Snapshot(rule),
	})
	h.revalidator.Revalidate(ctx, "/forms/automations")

	return c.NoContent(http.StatusNoContent)
}
