package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/shaunkitch/WorkforceOne-Production-sub001/internal/domain/model"
	domainRepo "github.com/shaunkitch/WorkforceOne-Production-sub001/internal/domain/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type formRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewFormRepository creates a gorm-backed form repository
func NewFormRepository(db *gorm.DB, logger *zap.Logger) domainRepo.FormRepository {
	return &formRepository{
		db:     db,
		logger: logger,
	}
}

func (r *formRepository) Create(ctx context.Context, form *model.Form) error {
	return r.db.WithContext(ctx).Create(form).Error
}

func (r *formRepository) GetByID(ctx context.Context, workspaceID, id uuid.UUID) (*model.Form, error) {
	var form model.Form
	err := r.db.WithContext(ctx).
		Where("id = ? AND workspace_id = ?", id, workspaceID).
		First(&form).Error
	if err != nil {
		return nil, err
	}
	return &form, nil
}

func (r *formRepository) List(ctx context.Context, workspaceID uuid.UUID, limit, offset int) ([]model.Form, error) {
	var forms []model.Form
	q := r.db.WithContext(ctx).
		Where("workspace_id = ?", workspaceID).
		Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if offset > 0 {
		q = q.Offset(offset)
	}
	if err := q.Find(&forms).Error; err != nil {
		return nil, err
	}
	return forms, nil
}

func (r *formRepository) Delete(ctx context.Context, workspaceID, id uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND workspace_id = ?", id, workspaceID).
		Delete(&model.Form{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
