package usecase

import (
	"context"

	"github.com/shaunkitch/WorkforceOne-Production-sub001/internal/domain/model"
	domainRepo "github.com/shaunkitch/WorkforceOne-Production-sub001/internal/domain/repository"
	"go.uber.org/zap"
)

// ChangeEntry describes one mutation to be recorded. Table and RecordID
// point at the affected row and make the entry revertible; entries without
// them are descriptive only.
type ChangeEntry struct {
	Action         string
	TargetResource string
	Table          string
	RecordID       string
	PreviousData   model.JSONB
	NewData        model.JSONB
	Details        model.JSONB
}

// AuditRecorder appends change records. Recording is strictly best-effort:
// it never returns an error, because an audit failure must not block the
// mutation that triggered it. Failures go to the operational log only.
type AuditRecorder struct {
	auditRepo domainRepo.AuditLogRepository
	logger    *zap.Logger
}

// NewAuditRecorder creates a new audit recorder
func NewAuditRecorder(auditRepo domainRepo.AuditLogRepository, logger *zap.Logger) *AuditRecorder {
	return &AuditRecorder{
		auditRepo: auditRepo,
		logger:    logger,
	}
}

// Record appends a change record on behalf of actor. A nil actor means no
// authenticated identity could be resolved and the entry is dropped. An
// entry carrying neither snapshot is meaningless and is also dropped.
func (r *AuditRecorder) Record(ctx context.Context, actor *model.Actor, entry ChangeEntry) {
	if actor == nil {
		r.logger.Debug("Skipping audit record without an authenticated actor",
			zap.String("action", entry.Action),
			zap.String("target", entry.TargetResource))
		return
	}

	if len(entry.PreviousData) == 0 && len(entry.NewData) == 0 {
		r.logger.Warn("Rejecting audit record with neither snapshot",
			zap.String("action", entry.Action),
			zap.String("target", entry.TargetResource),
			zap.String("workspace_id", actor.WorkspaceID.String()))
		return
	}

	actorID := actor.UserID
	log := &model.AuditLog{
		WorkspaceID:    actor.WorkspaceID,
		ActorID:        &actorID,
		Action:         entry.Action,
		TargetResource: entry.TargetResource,
		Table:          entry.Table,
		RecordID:       entry.RecordID,
		PreviousData:   entry.PreviousData,
		NewData:        entry.NewData,
		Details:        entry.Details,
	}

	if err := r.auditRepo.Create(ctx, log); err != nil {
		r.logger.Error("Failed to write audit record",
			zap.String("action", entry.Action),
			zap.String("target", entry.TargetResource),
			zap.String("workspace_id", actor.WorkspaceID.String()),
			zap.Error(err))
	}
}
