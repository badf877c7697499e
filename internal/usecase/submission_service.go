package usecase

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shaunkitch/WorkforceOne-Production-sub001/internal/domain/model"
	domainRepo "github.com/shaunkitch/WorkforceOne-Production-sub001/internal/domain/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ErrFormNotFound is returned when a submission references a form that does
// not exist in the workspace.
var ErrFormNotFound = errors.New("form not found")

// SubmissionService creates form submissions and triggers the follow-on
// work: an audit record for the insert and automation evaluation. Both are
// best-effort and invisible to the submitter.
type SubmissionService struct {
	formRepo       domainRepo.FormRepository
	submissionRepo domainRepo.SubmissionRepository
	recorder       *AuditRecorder
	evaluator      *AutomationEvaluator
	logger         *zap.Logger
}

// NewSubmissionService creates a new submission service
func NewSubmissionService(
	formRepo domainRepo.FormRepository,
	submissionRepo domainRepo.SubmissionRepository,
	recorder *AuditRecorder,
	evaluator *AutomationEvaluator,
	logger *zap.Logger,
) *SubmissionService {
	return &SubmissionService{
		formRepo:       formRepo,
		submissionRepo: submissionRepo,
		recorder:       recorder,
		evaluator:      evaluator,
		logger:         logger,
	}
}

// Create stores a submission for the given form and runs its automations.
func (s *SubmissionService) Create(ctx context.Context, actor *model.Actor, formID uuid.UUID, data model.JSONB) (*model.Submission, error) {
	form, err := s.formRepo.GetByID(ctx, actor.WorkspaceID, formID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFormNotFound
		}
		return nil, err
	}

	submittedBy := actor.UserID
	submission := &model.Submission{
		WorkspaceID: actor.WorkspaceID,
		FormID:      form.ID,
		SubmittedBy: &submittedBy,
		Data:        data,
	}
	if err := s.submissionRepo.Create(ctx, submission); err != nil {
		return nil, err
	}

	s.recorder.Record(ctx, actor, ChangeEntry{
		Action:         "Created submission for form " + form.Name,
		TargetResource: "forms/submissions",
		Table:          model.Submission{}.TableName(),
		RecordID:       submission.ID.String(),
		NewData:        model.Snapshot(submission),
	})

	s.evaluator.EvaluateSubmission(ctx, actor.WorkspaceID, form.ID, data)

	return submission, nil
}
