package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/shaunkitch/WorkforceOne-Production-sub001/internal/domain/model"
)

// AuditLogFilters narrows audit log listings.
type AuditLogFilters struct {
	Table   string
	Action  string
	ActorID *uuid.UUID
	Limit   int
	Offset  int
}

type AuditLogRepository interface {
	Create(ctx context.Context, log *model.AuditLog) error
	GetByID(ctx context.Context, workspaceID, id uuid.UUID) (*model.AuditLog, error)
	List(ctx context.Context, workspaceID uuid.UUID, filters AuditLogFilters) ([]model.AuditLog, error)
	Count(ctx context.Context, workspaceID uuid.UUID, filters AuditLogFilters) (int64, error)
}
