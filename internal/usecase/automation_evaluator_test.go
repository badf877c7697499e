package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shaunkitch/WorkforceOne-Production-sub001/internal/domain/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

// MockAutomationRepository is a mock implementation of AutomationRepository
type MockAutomationRepository struct {
	mock.Mock
}

func (m *MockAutomationRepository) Create(ctx context.Context, rule *model.AutomationRule) error {
	args := m.Called(ctx, rule)
	return args.Error(0)
}

func (m *MockAutomationRepository) GetByID(ctx context.Context, workspaceID, id uuid.UUID) (*model.AutomationRule, error) {
	args := m.Called(ctx, workspaceID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AutomationRule), args.Error(1)
}

func (m *MockAutomationRepository) ListByForm(ctx context.Context, workspaceID, formID uuid.UUID) ([]model.AutomationRule, error) {
	args := m.Called(ctx, workspaceID, formID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.AutomationRule), args.Error(1)
}

func (m *MockAutomationRepository) Delete(ctx context.Context, workspaceID, id uuid.UUID) error {
	args := m.Called(ctx, workspaceID, id)
	return args.Error(0)
}

// MockMailer is a mock implementation of Mailer
type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) Send(to, subject, body string) error {
	args := m.Called(to, subject, body)
	return args.Error(0)
}

func emailRule(name string, conditions ...model.AutomationCondition) model.AutomationRule {
	return model.AutomationRule{
		ID:         uuid.New(),
		Name:       name,
		Conditions: conditions,
		Actions: model.AutomationActions{
			{Type: model.ActionTypeEmail, To: "hr@example.com", Subject: name, Body: "triggered"},
		},
	}
}

func evaluate(t *testing.T, rules []model.AutomationRule, data model.JSONB, mailerSetup func(*MockMailer)) *MockMailer {
	t.Helper()
	workspaceID := uuid.New()
	formID := uuid.New()

	repo := new(MockAutomationRepository)
	repo.On("ListByForm", mock.Anything, workspaceID, formID).Return(rules, nil)

	mailer := new(MockMailer)
	if mailerSetup != nil {
		mailerSetup(mailer)
	}

	evaluator := NewAutomationEvaluator(repo, mailer, zap.NewNop())
	evaluator.EvaluateSubmission(context.Background(), workspaceID, formID, data)
	return mailer
}

func TestAutomationEvaluator_ConditionMatching(t *testing.T) {
	tests := []struct {
		name       string
		conditions []model.AutomationCondition
		data       model.JSONB
		fires      bool
	}{
		{
			name:       "equals matches case-insensitively",
			conditions: []model.AutomationCondition{{FieldID: "department", Operator: model.OperatorEquals, Value: "Sales"}},
			data:       model.JSONB{"department": "sales"},
			fires:      true,
		},
		{
			name:       "numeric field matches its string form",
			conditions: []model.AutomationCondition{{FieldID: "age", Operator: model.OperatorEquals, Value: "30"}},
			data:       model.JSONB{"age": float64(30)},
			fires:      true,
		},
		{
			name:       "numeric field off by one does not match",
			conditions: []model.AutomationCondition{{FieldID: "age", Operator: model.OperatorEquals, Value: "30"}},
			data:       model.JSONB{"age": float64(31)},
			fires:      false,
		},
		{
			name:       "contains is case-insensitive",
			conditions: []model.AutomationCondition{{FieldID: "email", Operator: model.OperatorContains, Value: "@acme.com"}},
			data:       model.JSONB{"email": "a@ACME.com"},
			fires:      true,
		},
		{
			name:       "not_equals matches different values",
			conditions: []model.AutomationCondition{{FieldID: "status", Operator: model.OperatorNotEquals, Value: "approved"}},
			data:       model.JSONB{"status": "pending"},
			fires:      true,
		},
		{
			name:       "not_equals rejects equal values regardless of case",
			conditions: []model.AutomationCondition{{FieldID: "status", Operator: model.OperatorNotEquals, Value: "Approved"}},
			data:       model.JSONB{"status": "approved"},
			fires:      false,
		},
		{
			name:       "empty condition list always fires",
			conditions: nil,
			data:       model.JSONB{"anything": "at all"},
			fires:      true,
		},
		{
			name:       "absent field never matches",
			conditions: []model.AutomationCondition{{FieldID: "missing", Operator: model.OperatorNotEquals, Value: "x"}},
			data:       model.JSONB{"present": "value"},
			fires:      false,
		},
		{
			name:       "null field never matches",
			conditions: []model.AutomationCondition{{FieldID: "age", Operator: model.OperatorEquals, Value: "30"}},
			data:       model.JSONB{"age": nil},
			fires:      false,
		},
		{
			name:       "unknown operator never matches",
			conditions: []model.AutomationCondition{{FieldID: "age", Operator: "greater_than", Value: "18"}},
			data:       model.JSONB{"age": float64(30)},
			fires:      false,
		},
		{
			name: "all conditions must hold",
			conditions: []model.AutomationCondition{
				{FieldID: "department", Operator: model.OperatorEquals, Value: "sales"},
				{FieldID: "age", Operator: model.OperatorEquals, Value: "30"},
			},
			data:  model.JSONB{"department": "sales", "age": float64(31)},
			fires: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rules := []model.AutomationRule{emailRule("notify hr", tt.conditions...)}

			mailer := evaluate(t, rules, tt.data, func(m *MockMailer) {
				if tt.fires {
					m.On("Send", "hr@example.com", "notify hr", "triggered").Return(nil)
				}
			})

			if tt.fires {
				mailer.AssertNumberOfCalls(t, "Send", 1)
			} else {
				mailer.AssertNotCalled(t, "Send")
			}
		})
	}
}

func TestAutomationEvaluator_FailedActionDoesNotBlockOthers(t *testing.T) {
	rules := []model.AutomationRule{
		{
			ID:   uuid.New(),
			Name: "double notify",
			Actions: model.AutomationActions{
				{Type: model.ActionTypeEmail, To: "first@example.com", Subject: "s1", Body: "b1"},
				{Type: model.ActionTypeEmail, To: "second@example.com", Subject: "s2", Body: "b2"},
			},
		},
		emailRule("follow-up"),
	}

	mailer := evaluate(t, rules, model.JSONB{}, func(m *MockMailer) {
		m.On("Send", "first@example.com", "s1", "b1").Return(errors.New("smtp refused"))
		m.On("Send", "second@example.com", "s2", "b2").Return(nil)
		m.On("Send", "hr@example.com", "follow-up", "triggered").Return(nil)
	})

	mailer.AssertNumberOfCalls(t, "Send", 3)
}

func TestAutomationEvaluator_UnknownActionTypeIsSkipped(t *testing.T) {
	rules := []model.AutomationRule{
		{
			ID:   uuid.New(),
			Name: "mixed actions",
			Actions: model.AutomationActions{
				{Type: "webhook", To: "https://example.com/hook"},
				{Type: model.ActionTypeEmail, To: "hr@example.com", Subject: "s", Body: "b"},
			},
		},
	}

	mailer := evaluate(t, rules, model.JSONB{}, func(m *MockMailer) {
		m.On("Send", "hr@example.com", "s", "b").Return(nil)
	})

	mailer.AssertNumberOfCalls(t, "Send", 1)
}

func TestAutomationEvaluator_RepositoryFailureSendsNothing(t *testing.T) {
	workspaceID := uuid.New()
	formID := uuid.New()

	repo := new(MockAutomationRepository)
	repo.On("ListByForm", mock.Anything, workspaceID, formID).
		Return(nil, errors.New("connection reset"))

	mailer := new(MockMailer)
	evaluator := NewAutomationEvaluator(repo, mailer, zap.NewNop())
	evaluator.EvaluateSubmission(context.Background(), workspaceID, formID, model.JSONB{"age": float64(30)})

	mailer.AssertNotCalled(t, "Send")
}

func TestStringify(t *testing.T) {
	assert.Equal(t, "30", stringify(float64(30)))
	assert.Equal(t, "30.5", stringify(float64(30.5)))
	assert.Equal(t, "true", stringify(true))
	assert.Equal(t, "hello", stringify("hello"))
}
