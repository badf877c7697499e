package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/shaunkitch/WorkforceOne-Production-sub001/internal/domain/model"
)

type FormRepository interface {
	Create(ctx context.Context, form *model.Form) error
	GetByID(ctx context.Context, workspaceID, id uuid.UUID) (*model.Form, error)
	List(ctx context.Context, workspaceID uuid.UUID, limit, offset int) ([]model.Form, error)
	Delete(ctx context.Context, workspaceID, id uuid.UUID) error
}
