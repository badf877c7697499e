package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/shaunkitch/WorkforceOne-Production-sub001/internal/domain/model"
)

type AutomationRepository interface {
	Create(ctx context.Context, rule *model.AutomationRule) error
	GetByID(ctx context.Context, workspaceID, id uuid.UUID) (*model.AutomationRule, error)
	ListByForm(ctx context.Context, workspaceID, formID uuid.UUID) ([]model.AutomationRule, error)
	Delete(ctx context.Context, workspaceID, id uuid.UUID) error
}
