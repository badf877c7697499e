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
)

// CreateSubmissionRequest is the payload for submitting a form
type CreateSubmissionRequest struct {
	FormID string                 `json:"form_id" validate:"required,uuid"`
	Data   map[string]interface{} `json:"data" validate:"required"`
}

// SubmissionHandler serves form submissions. Automation evaluation runs
// inside the submission service; its failures never reach the submitter.
type SubmissionHandler struct {
	logger         *zap.Logger
	submissions    *usecase.SubmissionService
	submissionRepo domainRepo.SubmissionRepository
	revalidator    messaging.Revalidator
}

// NewSubmissionHandler creates a new submission handler
func NewSubmissionHandler(
	logger *zap.Logger,
	submissions *usecase.SubmissionService,
	submissionRepo domainRepo.SubmissionRepository,
	revalidator messaging.Revalidator,
) *SubmissionHandler {
	return &SubmissionHandler{
		logger:         logger,
		submissions:    submissions,
		submissionRepo: submissionRepo,
		revalidator:    revalidator,
	}
}

// CreateSubmission stores a submission and triggers its automations
func (h *SubmissionHandler) CreateSubmission(c echo.Context) error {
	actor, err := auth.GetActorFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Authentication required"})
	}

	var req CreateSubmissionRequest
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
	submission, err := h.submissions.Create(ctx, actor, formID, model.JSONB(req.Data))
	if err != nil {
		if errors.Is(err, usecase.ErrFormNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Form not found"})
		}
		h.logger.Error("Failed to create submission",
			zap.String("form_id", formID.String()),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to create submission"})
	}

	h.revalidator.Revalidate(ctx, "/forms/submissions")

	return c.JSON(http.StatusCreated, submission)
}

// ListSubmissions returns the submissions of a form, newest first
func (h *SubmissionHandler) ListSubmissions(c echo.Context) error {
	actor, err := auth.GetActorFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Authentication required"})
	}

	formID, err := uuid.Parse(c.QueryParam("form_id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "form_id query parameter must be a valid UUID"})
	}

	limit, offset := pageParams(c)
	submissions, err := h.submissionRepo.ListByForm(c.Request().Context(), actor.WorkspaceID, formID, limit, offset)
	if err != nil {
		h.logger.Error("Failed to list submissions",
			zap.String("form_id", formID.String()),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to list submissions"})
	}

	return c.JSON(http.StatusOK, echo.Map{"data": submissions})
}
