package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/shaunkitch/WorkforceOne-Production-sub001/internal/domain/model"
)

type SubmissionRepository interface {
	Create(ctx context.Context, submission *model.Submission) error
	GetByID(ctx context.Context, workspaceID, id uuid.UUID) (*model.Submission, error)
	ListByForm(ctx context.Context, workspaceID, formID uuid.UUID, limit, offset int) ([]model.Submission, error)
}
