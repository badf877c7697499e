package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/shaunkitch/WorkforceOne-Production-sub001/internal/domain/model"
	domainRepo "github.com/shaunkitch/WorkforceOne-Production-sub001/internal/domain/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type auditLogRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewAuditLogRepository creates a gorm-backed audit log repository
func NewAuditLogRepository(db *gorm.DB, logger *zap.Logger) domainRepo.AuditLogRepository {
	return &auditLogRepository{
		db:     db,
		logger: logger,
	}
}

func (r *auditLogRepository) Create(ctx context.Context, log *model.AuditLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

func (r *auditLogRepository) GetByID(ctx context.Context, workspaceID, id uuid.UUID) (*model.AuditLog, error) {
	var log model.AuditLog
	err := r.db.WithContext(ctx).
		Where("id = ? AND workspace_id = ?", id, workspaceID).
		First(&log).Error
	if err != nil {
		return nil, err
	}
	return &log, nil
}

func (r *auditLogRepository) List(ctx context.Context, workspaceID uuid.UUID, filters domainRepo.AuditLogFilters) ([]model.AuditLog, error) {
	var logs []model.AuditLog
	q := r.applyFilters(ctx, workspaceID, filters).
		Order("created_at DESC")
	if filters.Limit > 0 {
		q = q.Limit(filters.Limit)
	}
	if filters.Offset > 0 {
		q = q.Offset(filters.Offset)
	}
	if err := q.Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

func (r *auditLogRepository) Count(ctx context.Context, workspaceID uuid.UUID, filters domainRepo.AuditLogFilters) (int64, error) {
	var count int64
	err := r.applyFilters(ctx, workspaceID, filters).Count(&count).Error
	return count, err
}

func (r *auditLogRepository) applyFilters(ctx context.Context, workspaceID uuid.UUID, filters domainRepo.AuditLogFilters) *gorm.DB {
	q := r.db.WithContext(ctx).
		Model(&model.AuditLog{}).
		Where("workspace_id = ?", workspaceID)
	if filters.Table != "" {
		q = q.Where("table_name = ?", filters.Table)
	}
	if filters.Action != "" {
		q = q.Where("action = ?", filters.Action)
	}
	if filters.ActorID != nil {
		q = q.Where("actor_id = ?", *filters.ActorID)
	}
	return q
}
