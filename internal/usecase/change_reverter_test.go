package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	domainErrors "github.com/shaunkitch/WorkforceOne-Production-sub001/internal/domain/errors"
	"github.com/shaunkitch/WorkforceOne-Production-sub001/internal/domain/model"
	domainRepo "github.com/shaunkitch/WorkforceOne-Production-sub001/internal/domain/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// MockMembershipRepository is a mock implementation of MembershipRepository
type MockMembershipRepository struct {
	mock.Mock
}

func (m *MockMembershipRepository) GetMember(ctx context.Context, userID, workspaceID string) (*domainRepo.WorkspaceMember, error) {
	args := m.Called(ctx, userID, workspaceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domainRepo.WorkspaceMember), args.Error(1)
}

// MockAuditLogRepository is a mock implementation of AuditLogRepository
type MockAuditLogRepository struct {
	mock.Mock
}

func (m *MockAuditLogRepository) Create(ctx context.Context, log *model.AuditLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}

func (m *MockAuditLogRepository) GetByID(ctx context.Context, workspaceID, id uuid.UUID) (*model.AuditLog, error) {
	args := m.Called(ctx, workspaceID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AuditLog), args.Error(1)
}

func (m *MockAuditLogRepository) List(ctx context.Context, workspaceID uuid.UUID, filters domainRepo.AuditLogFilters) ([]model.AuditLog, error) {
	args := m.Called(ctx, workspaceID, filters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.AuditLog), args.Error(1)
}

func (m *MockAuditLogRepository) Count(ctx context.Context, workspaceID uuid.UUID, filters domainRepo.AuditLogFilters) (int64, error) {
	args := m.Called(ctx, workspaceID, filters)
	return args.Get(0).(int64), args.Error(1)
}

// MockRecordStore is a mock implementation of RecordStore
type MockRecordStore struct {
	mock.Mock
}

func (m *MockRecordStore) Select(ctx context.Context, table string, filter domainRepo.Filter, opts domainRepo.SelectOptions) ([]domainRepo.Row, error) {
	args := m.Called(ctx, table, filter, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domainRepo.Row), args.Error(1)
}

func (m *MockRecordStore) SelectOne(ctx context.Context, table string, filter domainRepo.Filter) (domainRepo.Row, error) {
	args := m.Called(ctx, table, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(domainRepo.Row), args.Error(1)
}

func (m *MockRecordStore) Insert(ctx context.Context, table string, row domainRepo.Row) (domainRepo.Row, error) {
	args := m.Called(ctx, table, row)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(domainRepo.Row), args.Error(1)
}

func (m *MockRecordStore) Update(ctx context.Context, table string, patch domainRepo.Row, filter domainRepo.Filter) (int64, error) {
	args := m.Called(ctx, table, patch, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRecordStore) Delete(ctx context.Context, table string, filter domainRepo.Filter) (int64, error) {
	args := m.Called(ctx, table, filter)
	return args.Get(0).(int64), args.Error(1)
}

func elevatedMember(actor *model.Actor) *domainRepo.WorkspaceMember {
	return &domainRepo.WorkspaceMember{
		ID:          uuid.NewString(),
		WorkspaceID: actor.WorkspaceID.String(),
		UserID:      actor.UserID.String(),
		Role:        domainRepo.RoleAdmin,
		JoinedAt:    "2024-01-01T00:00:00Z",
	}
}

func testActor() *model.Actor {
	return &model.Actor{
		UserID:      uuid.New(),
		WorkspaceID: uuid.New(),
		Email:       "admin@example.com",
	}
}

func newReverter(membership *MockMembershipRepository, audit *MockAuditLogRepository, store *MockRecordStore) *ChangeReverter {
	logger := zap.NewNop()
	return NewChangeReverter(membership, audit, store, NewAuditRecorder(audit, logger), logger)
}

func TestChangeReverter_RevertInsert(t *testing.T) {
	actor := testActor()
	changeID := uuid.New()
	recordID := uuid.NewString()

	change := &model.AuditLog{
		ID:             changeID,
		WorkspaceID:    actor.WorkspaceID,
		Action:         "Created employee record",
		TargetResource: "employees",
		Table:          "employees",
		RecordID:       recordID,
		NewData:        model.JSONB{"id": recordID, "name": "Dana"},
	}

	membership := new(MockMembershipRepository)
	audit := new(MockAuditLogRepository)
	store := new(MockRecordStore)

	membership.On("GetMember", mock.Anything, actor.UserID.String(), actor.WorkspaceID.String()).
		Return(elevatedMember(actor), nil)
	audit.On("GetByID", mock.Anything, actor.WorkspaceID, changeID).Return(change, nil)
	store.On("Delete", mock.Anything, "employees", domainRepo.Filter{"id": recordID}).
		Return(int64(1), nil)
	audit.On("Create", mock.Anything, mock.AnythingOfType("*model.AuditLog")).Return(nil)

	result, err := newReverter(membership, audit, store).Revert(context.Background(), actor, changeID)

	assert.NoError(t, err)
	assert.Equal(t, ClassificationInsert, result.Classification)
	store.AssertNumberOfCalls(t, "Delete", 1)
	store.AssertNotCalled(t, "Insert")
	store.AssertNotCalled(t, "Update")
}

func TestChangeReverter_RevertDelete(t *testing.T) {
	actor := testActor()
	changeID := uuid.New()
	recordID := uuid.NewString()
	previous := model.JSONB{"id": recordID, "name": "Dana", "status": "active"}

	change := &model.AuditLog{
		ID:           changeID,
		WorkspaceID:  actor.WorkspaceID,
		Action:       "Deleted employee record",
		Table:        "employees",
		RecordID:     recordID,
		PreviousData: previous,
	}

	membership := new(MockMembershipRepository)
	audit := new(MockAuditLogRepository)
	store := new(MockRecordStore)

	membership.On("GetMember", mock.Anything, actor.UserID.String(), actor.WorkspaceID.String()).
		Return(elevatedMember(actor), nil)
	audit.On("GetByID", mock.Anything, actor.WorkspaceID, changeID).Return(change, nil)
	store.On("Insert", mock.Anything, "employees", domainRepo.Row(previous)).
		Return(domainRepo.Row(previous), nil)
	audit.On("Create", mock.Anything, mock.AnythingOfType("*model.AuditLog")).Return(nil)

	result, err := newReverter(membership, audit, store).Revert(context.Background(), actor, changeID)

	assert.NoError(t, err)
	assert.Equal(t, ClassificationDelete, result.Classification)
	store.AssertNumberOfCalls(t, "Insert", 1)
	store.AssertNotCalled(t, "Delete")
	store.AssertNotCalled(t, "Update")
}

func TestChangeReverter_RevertUpdate(t *testing.T) {
	actor := testActor()
	changeID := uuid.New()
	recordID := uuid.NewString()
	previous := model.JSONB{"id": recordID, "status": "active"}

	change := &model.AuditLog{
		ID:           changeID,
		WorkspaceID:  actor.WorkspaceID,
		Action:       "Updated employee status",
		Table:        "employees",
		RecordID:     recordID,
		PreviousData: previous,
		NewData:      model.JSONB{"id": recordID, "status": "terminated"},
	}

	membership := new(MockMembershipRepository)
	audit := new(MockAuditLogRepository)
	store := new(MockRecordStore)

	membership.On("GetMember", mock.Anything, actor.UserID.String(), actor.WorkspaceID.String()).
		Return(elevatedMember(actor), nil)
	audit.On("GetByID", mock.Anything, actor.WorkspaceID, changeID).Return(change, nil)
	store.On("Update", mock.Anything, "employees", domainRepo.Row(previous), domainRepo.Filter{"id": recordID}).
		Return(int64(1), nil)
	audit.On("Create", mock.Anything, mock.AnythingOfType("*model.AuditLog")).Return(nil)

	result, err := newReverter(membership, audit, store).Revert(context.Background(), actor, changeID)

	assert.NoError(t, err)
	assert.Equal(t, ClassificationUpdate, result.Classification)
	store.AssertNumberOfCalls(t, "Update", 1)
}

func TestChangeReverter_RevertWritesSwappedAuditRecord(t *testing.T) {
	actor := testActor()
	changeID := uuid.New()
	recordID := uuid.NewString()
	previous := model.JSONB{"id": recordID, "status": "active"}
	current := model.JSONB{"id": recordID, "status": "terminated"}

	change := &model.AuditLog{
		ID:             changeID,
		WorkspaceID:    actor.WorkspaceID,
		Action:         "Updated employee status",
		TargetResource: "employees",
		Table:          "employees",
		RecordID:       recordID,
		PreviousData:   previous,
		NewData:        current,
	}

	membership := new(MockMembershipRepository)
	audit := new(MockAuditLogRepository)
	store := new(MockRecordStore)

	membership.On("GetMember", mock.Anything, actor.UserID.String(), actor.WorkspaceID.String()).
		Return(elevatedMember(actor), nil)
	audit.On("GetByID", mock.Anything, actor.WorkspaceID, changeID).Return(change, nil)
	store.On("Update", mock.Anything, "employees", mock.Anything, mock.Anything).Return(int64(1), nil)
	audit.On("Create", mock.Anything, mock.MatchedBy(func(log *model.AuditLog) bool {
		return log.Action == "Reverted: Updated employee status" &&
			assert.ObjectsAreEqual(log.PreviousData, current) &&
			assert.ObjectsAreEqual(log.NewData, previous) &&
			log.Details["reverted_change_id"] == changeID.String() &&
			log.Details["classification"] == ClassificationUpdate
	})).Return(nil)

	_, err := newReverter(membership, audit, store).Revert(context.Background(), actor, changeID)

	assert.NoError(t, err)
	audit.AssertExpectations(t)
}

func TestChangeReverter_AuditFailureDoesNotUndoRevert(t *testing.T) {
	actor := testActor()
	changeID := uuid.New()
	recordID := uuid.NewString()

	change := &model.AuditLog{
		ID:          changeID,
		WorkspaceID: actor.WorkspaceID,
		Action:      "Created employee record",
		Table:       "employees",
		RecordID:    recordID,
		NewData:     model.JSONB{"id": recordID},
	}

	membership := new(MockMembershipRepository)
	audit := new(MockAuditLogRepository)
	store := new(MockRecordStore)

	membership.On("GetMember", mock.Anything, actor.UserID.String(), actor.WorkspaceID.String()).
		Return(elevatedMember(actor), nil)
	audit.On("GetByID", mock.Anything, actor.WorkspaceID, changeID).Return(change, nil)
	store.On("Delete", mock.Anything, "employees", mock.Anything).Return(int64(1), nil)
	audit.On("Create", mock.Anything, mock.Anything).Return(errors.New("audit table unavailable"))

	result, err := newReverter(membership, audit, store).Revert(context.Background(), actor, changeID)

	assert.NoError(t, err)
	assert.Equal(t, ClassificationInsert, result.Classification)
}

func TestChangeReverter_PermissionDeniedBeforeAnyRead(t *testing.T) {
	actor := testActor()
	changeID := uuid.New()

	tests := []struct {
		name      string
		mockSetup func(*MockMembershipRepository)
		errorType string
	}{
		{
			name: "member role is not elevated",
			mockSetup: func(repo *MockMembershipRepository) {
				repo.On("GetMember", mock.Anything, actor.UserID.String(), actor.WorkspaceID.String()).
					Return(&domainRepo.WorkspaceMember{
						UserID:      actor.UserID.String(),
						WorkspaceID: actor.WorkspaceID.String(),
						Role:        domainRepo.RoleMember,
					}, nil)
			},
			errorType: domainErrors.ErrTypeInsufficientPermissions,
		},
		{
			name: "user is not a member",
			mockSetup: func(repo *MockMembershipRepository) {
				repo.On("GetMember", mock.Anything, actor.UserID.String(), actor.WorkspaceID.String()).
					Return(nil, domainErrors.NewUserNotMemberError(actor.UserID.String(), actor.WorkspaceID.String()))
			},
			errorType: domainErrors.ErrTypeUserNotMember,
		},
		{
			name: "membership lookup unreachable",
			mockSetup: func(repo *MockMembershipRepository) {
				repo.On("GetMember", mock.Anything, actor.UserID.String(), actor.WorkspaceID.String()).
					Return(nil, domainErrors.NewSupabaseConnectionError(actor.UserID.String(), actor.WorkspaceID.String(),
						errors.New("network timeout")))
			},
			errorType: domainErrors.ErrTypeSupabaseConnectionFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			membership := new(MockMembershipRepository)
			audit := new(MockAuditLogRepository)
			store := new(MockRecordStore)
			tt.mockSetup(membership)

			result, err := newReverter(membership, audit, store).Revert(context.Background(), actor, changeID)

			assert.Nil(t, result)
			var workspaceErr *domainErrors.WorkspaceError
			assert.ErrorAs(t, err, &workspaceErr)
			assert.Equal(t, tt.errorType, workspaceErr.Type)

			audit.AssertNotCalled(t, "GetByID")
			store.AssertNotCalled(t, "Delete")
			store.AssertNotCalled(t, "Insert")
			store.AssertNotCalled(t, "Update")
		})
	}
}

func TestChangeReverter_ChangeNotFound(t *testing.T) {
	actor := testActor()
	changeID := uuid.New()

	membership := new(MockMembershipRepository)
	audit := new(MockAuditLogRepository)
	store := new(MockRecordStore)

	membership.On("GetMember", mock.Anything, actor.UserID.String(), actor.WorkspaceID.String()).
		Return(elevatedMember(actor), nil)
	audit.On("GetByID", mock.Anything, actor.WorkspaceID, changeID).
		Return(nil, gorm.ErrRecordNotFound)

	result, err := newReverter(membership, audit, store).Revert(context.Background(), actor, changeID)

	assert.Nil(t, result)
	var revertErr *domainErrors.RevertError
	assert.ErrorAs(t, err, &revertErr)
	assert.Equal(t, domainErrors.ErrTypeChangeNotFound, revertErr.Type)
}

func TestChangeReverter_MissingRowPointerIsUnrevertible(t *testing.T) {
	actor := testActor()
	changeID := uuid.New()

	change := &model.AuditLog{
		ID:          changeID,
		WorkspaceID: actor.WorkspaceID,
		Action:      "Exported payroll report",
		NewData:     model.JSONB{"format": "csv"},
	}

	membership := new(MockMembershipRepository)
	audit := new(MockAuditLogRepository)
	store := new(MockRecordStore)

	membership.On("GetMember", mock.Anything, actor.UserID.String(), actor.WorkspaceID.String()).
		Return(elevatedMember(actor), nil)
	audit.On("GetByID", mock.Anything, actor.WorkspaceID, changeID).Return(change, nil)

	result, err := newReverter(membership, audit, store).Revert(context.Background(), actor, changeID)

	assert.Nil(t, result)
	var revertErr *domainErrors.RevertError
	assert.ErrorAs(t, err, &revertErr)
	assert.Equal(t, domainErrors.ErrTypeUnrevertibleChange, revertErr.Type)

	store.AssertNotCalled(t, "Delete")
	store.AssertNotCalled(t, "Insert")
	store.AssertNotCalled(t, "Update")
	audit.AssertNotCalled(t, "Create")
}

func TestChangeReverter_MissingSnapshotsAreUnrevertible(t *testing.T) {
	actor := testActor()
	changeID := uuid.New()

	change := &model.AuditLog{
		ID:          changeID,
		WorkspaceID: actor.WorkspaceID,
		Action:      "Touched employee record",
		Table:       "employees",
		RecordID:    uuid.NewString(),
	}

	membership := new(MockMembershipRepository)
	audit := new(MockAuditLogRepository)
	store := new(MockRecordStore)

	membership.On("GetMember", mock.Anything, actor.UserID.String(), actor.WorkspaceID.String()).
		Return(elevatedMember(actor), nil)
	audit.On("GetByID", mock.Anything, actor.WorkspaceID, changeID).Return(change, nil)

	_, err := newReverter(membership, audit, store).Revert(context.Background(), actor, changeID)

	var revertErr *domainErrors.RevertError
	assert.ErrorAs(t, err, &revertErr)
	assert.Equal(t, domainErrors.ErrTypeUnrevertibleChange, revertErr.Type)
}

func TestChangeReverter_TargetRowGone(t *testing.T) {
	actor := testActor()
	recordID := uuid.NewString()

	tests := []struct {
		name   string
		change *model.AuditLog
		setup  func(*MockRecordStore)
	}{
		{
			name: "insert revert finds no row to delete",
			change: &model.AuditLog{
				Table:    "employees",
				RecordID: recordID,
				NewData:  model.JSONB{"id": recordID},
			},
			setup: func(store *MockRecordStore) {
				store.On("Delete", mock.Anything, "employees", mock.Anything).Return(int64(0), nil)
			},
		},
		{
			name: "update revert finds no row to patch",
			change: &model.AuditLog{
				Table:        "employees",
				RecordID:     recordID,
				PreviousData: model.JSONB{"id": recordID, "status": "active"},
				NewData:      model.JSONB{"id": recordID, "status": "terminated"},
			},
			setup: func(store *MockRecordStore) {
				store.On("Update", mock.Anything, "employees", mock.Anything, mock.Anything).Return(int64(0), nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			changeID := uuid.New()
			tt.change.ID = changeID
			tt.change.WorkspaceID = actor.WorkspaceID

			membership := new(MockMembershipRepository)
			audit := new(MockAuditLogRepository)
			store := new(MockRecordStore)

			membership.On("GetMember", mock.Anything, actor.UserID.String(), actor.WorkspaceID.String()).
				Return(elevatedMember(actor), nil)
			audit.On("GetByID", mock.Anything, actor.WorkspaceID, changeID).Return(tt.change, nil)
			tt.setup(store)

			_, err := newReverter(membership, audit, store).Revert(context.Background(), actor, changeID)

			var revertErr *domainErrors.RevertError
			assert.ErrorAs(t, err, &revertErr)
			assert.Equal(t, domainErrors.ErrTypeTargetRowNotFound, revertErr.Type)
			audit.AssertNotCalled(t, "Create")
		})
	}
}

func TestChangeReverter_StoreFailureWritesNoAudit(t *testing.T) {
	actor := testActor()
	changeID := uuid.New()
	recordID := uuid.NewString()

	change := &model.AuditLog{
		ID:          changeID,
		WorkspaceID: actor.WorkspaceID,
		Action:      "Created employee record",
		Table:       "employees",
		RecordID:    recordID,
		NewData:     model.JSONB{"id": recordID},
	}

	membership := new(MockMembershipRepository)
	audit := new(MockAuditLogRepository)
	store := new(MockRecordStore)

	membership.On("GetMember", mock.Anything, actor.UserID.String(), actor.WorkspaceID.String()).
		Return(elevatedMember(actor), nil)
	audit.On("GetByID", mock.Anything, actor.WorkspaceID, changeID).Return(change, nil)
	store.On("Delete", mock.Anything, "employees", mock.Anything).
		Return(int64(0), errors.New("connection reset"))

	result, err := newReverter(membership, audit, store).Revert(context.Background(), actor, changeID)

	assert.Nil(t, result)
	var revertErr *domainErrors.RevertError
	assert.ErrorAs(t, err, &revertErr)
	assert.Equal(t, domainErrors.ErrTypeStoreFailure, revertErr.Type)
	audit.AssertNotCalled(t, "Create")
}
