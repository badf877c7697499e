package usecase

import (
	"context"
	"errors"

	"github.com/google/uuid"
	domainErrors "github.com/shaunkitch/WorkforceOne-Production-sub001/internal/domain/errors"
	"github.com/shaunkitch/WorkforceOne-Production-sub001/internal/domain/model"
	domainRepo "github.com/shaunkitch/WorkforceOne-Production-sub001/internal/domain/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Revert classifications, inferred structurally from which snapshots a
// change record carries. The action label is descriptive text and is never
// parsed for dispatch.
const (
	ClassificationInsert = "insert"
	ClassificationDelete = "delete"
	ClassificationUpdate = "update"
)

// ChangeReverter computes and applies the inverse of a recorded mutation.
// The inverse mutation and the audit record describing the revert are not
// transactional: a revert that lands but fails to be audited still stands.
type ChangeReverter struct {
	membershipRepo domainRepo.MembershipRepository
	auditRepo      domainRepo.AuditLogRepository
	store          domainRepo.RecordStore
	recorder       *AuditRecorder
	logger         *zap.Logger
}

// NewChangeReverter creates a new change reverter
func NewChangeReverter(
	membershipRepo domainRepo.MembershipRepository,
	auditRepo domainRepo.AuditLogRepository,
	store domainRepo.RecordStore,
	recorder *AuditRecorder,
	logger *zap.Logger,
) *ChangeReverter {
	return &ChangeReverter{
		membershipRepo: membershipRepo,
		auditRepo:      auditRepo,
		store:          store,
		recorder:       recorder,
		logger:         logger,
	}
}

// RevertResult describes a successfully applied revert.
type RevertResult struct {
	Change         *model.AuditLog
	Classification string
}

// Revert applies the inverse of the change identified by changeID within
// the actor's workspace. The actor must hold an owner or admin role; the
// check happens before any data is read or touched. Exactly one inverse
// mutation is performed; if it fails, nothing is written.
func (r *ChangeReverter) Revert(ctx context.Context, actor *model.Actor, changeID uuid.UUID) (*RevertResult, error) {
	member, err := r.membershipRepo.GetMember(ctx, actor.UserID.String(), actor.WorkspaceID.String())
	if err != nil {
		return nil, err
	}
	if !member.HasElevatedRole() {
		return nil, domainErrors.NewInsufficientPermissionsError(actor.UserID.String(), actor.WorkspaceID.String())
	}

	change, err := r.auditRepo.GetByID(ctx, actor.WorkspaceID, changeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainErrors.NewChangeNotFoundError(changeID.String())
		}
		return nil, domainErrors.NewStoreFailureError(changeID.String(), err)
	}

	if !change.HasRowPointer() {
		return nil, domainErrors.NewUnrevertibleChangeError(changeID.String())
	}

	classification, err := r.applyInverse(ctx, change)
	if err != nil {
		return nil, err
	}

	r.logger.Info("Change reverted",
		zap.String("change_id", change.ID.String()),
		zap.String("classification", classification),
		zap.String("table", change.Table),
		zap.String("record_id", change.RecordID),
		zap.String("reverted_by", actor.UserID.String()))

	// Best-effort: the revert already stands even if this write fails.
	// Snapshots are swapped so the revert entry is itself revertible.
	r.recorder.Record(ctx, actor, ChangeEntry{
		Action:         "Reverted: " + change.Action,
		TargetResource: change.TargetResource,
		Table:          change.Table,
		RecordID:       change.RecordID,
		PreviousData:   change.NewData,
		NewData:        change.PreviousData,
		Details: model.JSONB{
			"reverted_change_id": change.ID.String(),
			"classification":     classification,
		},
	})

	return &RevertResult{Change: change, Classification: classification}, nil
}

// applyInverse classifies the change and performs exactly one inverse
// mutation against the record store.
func (r *ChangeReverter) applyInverse(ctx context.Context, change *model.AuditLog) (string, error) {
	hasPrevious := len(change.PreviousData) > 0
	hasNew := len(change.NewData) > 0
	changeID := change.ID.String()
	rowFilter := domainRepo.Filter{"id": change.RecordID}

	switch {
	case hasNew && !hasPrevious:
		// The change inserted a row; the inverse is deleting it. A missing
		// row fails loudly rather than diverging silently.
		affected, err := r.store.Delete(ctx, change.Table, rowFilter)
		if err != nil {
			return "", domainErrors.NewStoreFailureError(changeID, err)
		}
		if affected == 0 {
			return "", domainErrors.NewTargetRowNotFoundError(changeID)
		}
		return ClassificationInsert, nil

	case hasPrevious && !hasNew:
		// The change deleted a row; the inverse is re-inserting exactly the
		// previous snapshot.
		if _, err := r.store.Insert(ctx, change.Table, domainRepo.Row(change.PreviousData)); err != nil {
			return "", domainErrors.NewStoreFailureError(changeID, err)
		}
		return ClassificationDelete, nil

	case hasPrevious && hasNew:
		// The change updated a row; the inverse sets its fields back to the
		// previous snapshot.
		affected, err := r.store.Update(ctx, change.Table, domainRepo.Row(change.PreviousData), rowFilter)
		if err != nil {
			return "", domainErrors.NewStoreFailureError(changeID, err)
		}
		if affected == 0 {
			return "", domainErrors.NewTargetRowNotFoundError(changeID)
		}
		return ClassificationUpdate, nil

	default:
		return "", domainErrors.NewUnrevertibleChangeError(changeID)
	}
}
