package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	domainErrors "github.com/shaunkitch/WorkforceOne-Production-sub001/internal/domain/errors"
	domainRepo "github.com/shaunkitch/WorkforceOne-Production-sub001/internal/domain/repository"
	"github.com/shaunkitch/WorkforceOne-Production-sub001/internal/infrastructure/messaging"
	"github.com/shaunkitch/WorkforceOne-Production-sub001/internal/middleware/auth"
	"github.com/shaunkitch/WorkforceOne-Production-sub001/internal/usecase"
	"go.uber.org/zap"
)

const (
	defaultAuditPageSize = 50
	maxAuditPageSize     = 200
)

// AuditHandler serves the audit log listing and the revert operation.
type AuditHandler struct {
	logger      *zap.Logger
	auditRepo   domainRepo.AuditLogRepository
	reverter    *usecase.ChangeReverter
	revalidator messaging.Revalidator
}

// NewAuditHandler creates a new audit handler
func NewAuditHandler(logger *zap.Logger, auditRepo domainRepo.AuditLogRepository, reverter *usecase.ChangeReverter, revalidator messaging.Revalidator) *AuditHandler {
	return &AuditHandler{
		logger:      logger,
		auditRepo:   auditRepo,
		reverter:    reverter,
		revalidator: revalidator,
	}
}

// ListAuditLogs returns the workspace's change records, newest first.
func (h *AuditHandler) ListAuditLogs(c echo.Context) error {
	actor, err := auth.GetActorFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Authentication required"})
	}

	filters := domainRepo.AuditLogFilters{
		Table:  c.QueryParam("table"),
		Action: c.QueryParam("action"),
		Limit:  defaultAuditPageSize,
	}
	if raw := c.QueryParam("limit"); raw != "" {
		if limit, err := strconv.Atoi(raw); err == nil && limit > 0 {
			filters.Limit = limit
		}
	}
	if filters.Limit > maxAuditPageSize {
		filters.Limit = maxAuditPageSize
	}
	if raw := c.QueryParam("offset"); raw != "" {
		if offset, err := strconv.Atoi(raw); err == nil && offset > 0 {
			filters.Offset = offset
		}
	}

	ctx := c.Request().Context()
	logs, err := h.auditRepo.List(ctx, actor.WorkspaceID, filters)
	if err != nil {
		h.logger.Error("Failed to list audit logs",
			zap.String("workspace_id", actor.WorkspaceID.String()),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to list audit logs"})
	}

	total, err := h.auditRepo.Count(ctx, actor.WorkspaceID, filters)
	if err != nil {
		h.logger.Error("Failed to count audit logs",
			zap.String("workspace_id", actor.WorkspaceID.String()),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to list audit logs"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"data": logs,
		"pagination": echo.Map{
			"total":    total,
			"limit":    filters.Limit,
			"offset":   filters.Offset,
			"has_more": int64(filters.Offset+len(logs)) < total,
		},
	})
}

// RevertChange applies the inverse of a recorded change.
func (h *AuditHandler) RevertChange(c echo.Context) error {
	actor, err := auth.GetActorFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Authentication required"})
	}

	changeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Change id must be a valid UUID"})
	}

	result, err := h.reverter.Revert(c.Request().Context(), actor, changeID)
	if err != nil {
		return h.revertErrorResponse(c, changeID, err)
	}

	h.revalidator.Revalidate(c.Request().Context(), "/"+result.Change.TargetResource)

	return c.JSON(http.StatusOK, echo.Map{
		"success":        true,
		"change_id":      result.Change.ID,
		"classification": result.Classification,
	})
}

func (h *AuditHandler) revertErrorResponse(c echo.Context, changeID uuid.UUID, err error) error {
	var workspaceErr *domainErrors.WorkspaceError
	if errors.As(err, &workspaceErr) {
		switch workspaceErr.Type {
		case domainErrors.ErrTypeInsufficientPermissions, domainErrors.ErrTypeUserNotMember:
			return c.JSON(http.StatusForbidden, echo.Map{
				"error": "Insufficient permissions to revert changes",
				"code":  workspaceErr.Type,
			})
		default:
			h.logger.Error("Membership verification failed during revert",
				zap.String("change_id", changeID.String()),
				zap.Error(err))
			return c.JSON(http.StatusInternalServerError, echo.Map{
				"error": "Failed to verify workspace membership",
				"code":  workspaceErr.Type,
			})
		}
	}

	var revertErr *domainErrors.RevertError
	if errors.As(err, &revertErr) {
		switch revertErr.Type {
		case domainErrors.ErrTypeChangeNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{
				"error": "Change record not found",
				"code":  revertErr.Type,
			})
		case domainErrors.ErrTypeTargetRowNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{
				"error": "The affected record no longer exists",
				"code":  revertErr.Type,
			})
		case domainErrors.ErrTypeUnrevertibleChange:
			return c.JSON(http.StatusBadRequest, echo.Map{
				"error": "This action cannot be automatically reverted",
				"code":  revertErr.Type,
			})
		default:
			h.logger.Error("Revert mutation failed",
				zap.String("change_id", changeID.String()),
				zap.Error(err))
			return c.JSON(http.StatusInternalServerError, echo.Map{
				"error": "Failed to revert change",
				"code":  revertErr.Type,
			})
		}
	}

	h.logger.Error("Unexpected revert failure",
		zap.String("change_id", changeID.String()),
		zap.Error(err))
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to revert change"})
}
