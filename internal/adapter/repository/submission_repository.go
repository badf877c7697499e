package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/shaunkitch/WorkforceOne-Production-sub001/internal/domain/model"
	domainRepo "github.com/shaunkitch/WorkforceOne-Production-sub001/internal/domain/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type submissionRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewSubmissionRepository creates a gorm-backed submission repository
func NewSubmissionRepository(db *gorm.DB, logger *zap.Logger) domainRepo.SubmissionRepository {
	return &submissionRepository{
		db:     db,
		logger: logger,
	}
}

func (r *submissionRepository) Create(ctx context.Context, submission *model.Submission) error {
	return r.db.WithContext(ctx).Create(submission).Error
}

func (r *submissionRepository) GetByID(ctx context.Context, workspaceID, id uuid.UUID) (*model.Submission, error) {
	var submission model.Submission
	err := r.db.WithContext(ctx).
		Where("id = ? AND workspace_id = ?", id, workspaceID).
		First(&submission).Error
	if err != nil {
		return nil, err
	}
	return &submission, nil
}

func (r *submissionRepository) ListByForm(ctx context.Context, workspaceID, formID uuid.UUID, limit, offset int) ([]model.Submission, error) {
	var submissions []model.Submission
	q := r.db.WithContext(ctx).
		Where("workspace_id = ? AND form_id = ?", workspaceID, formID).
		Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if offset > 0 {
		q = q.Offset(offset)
	}
	if err := q.Find(&submissions).Error; err != nil {
		return nil, err
	}
	return submissions, nil
}
