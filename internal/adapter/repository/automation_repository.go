package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/shaunkitch/WorkforceOne-Production-sub001/internal/domain/model"
	domainRepo "github.com/shaunkitch/WorkforceOne-Production-sub001/internal/domain/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type automationRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewAutomationRepository creates a gorm-backed automation rule repository
func NewAutomationRepository(db *gorm.DB, logger *zap.Logger) domainRepo.AutomationRepository {
	return &automationRepository{
		db:     db,
		logger: logger,
	}
}

func (r *automationRepository) Create(ctx context.Context, rule *model.AutomationRule) error {
	return r.db.WithContext(ctx).Create(rule).Error
}

func (r *automationRepository) GetByID(ctx context.Context, workspaceID, id uuid.UUID) (*model.AutomationRule, error) {
	var rule model.AutomationRule
	err := r.db.WithContext(ctx).
		Where("id = ? AND workspace_id = ?", id, workspaceID).
		First(&rule).Error
	if err != nil {
		return nil, err
	}
	return &rule, nil
}

func (r *automationRepository) ListByForm(ctx context.Context, workspaceID, formID uuid.UUID) ([]model.AutomationRule, error) {
	var rules []model.AutomationRule
	err := r.db.WithContext(ctx).
		Where("workspace_id = ? AND form_id = ?", workspaceID, formID).
		Order("created_at ASC").
		Find(&rules).Error
	if err != nil {
		return nil, err
	}
	return rules, nil
}

func (r *automationRepository) Delete(ctx context.Context, workspaceID, id uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND workspace_id = ?", id, workspaceID).
		Delete(&model.AutomationRule{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
