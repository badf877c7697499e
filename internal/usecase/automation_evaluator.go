package usecase

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	domainErrors "github.com/shaunkitch/WorkforceOne-Production-sub001/internal/domain/errors"
	"github.com/shaunkitch/WorkforceOne-Production-sub001/internal/domain/model"
	domainRepo "github.com/shaunkitch/WorkforceOne-Production-sub001/internal/domain/repository"
	"go.uber.org/zap"
)

// Mailer dispatches automation email actions.
type Mailer interface {
	Send(to, subject, body string) error
}

// AutomationEvaluator decides which automation rules fire for a submission
// and executes their actions. One broken automation must not block others:
// every failure is caught, logged and isolated, and nothing propagates back
// to the submission flow that triggered evaluation.
type AutomationEvaluator struct {
	automationRepo domainRepo.AutomationRepository
	mailer         Mailer
	logger         *zap.Logger
}

// NewAutomationEvaluator creates a new automation evaluator
func NewAutomationEvaluator(automationRepo domainRepo.AutomationRepository, mailer Mailer, logger *zap.Logger) *AutomationEvaluator {
	return &AutomationEvaluator{
		automationRepo: automationRepo,
		mailer:         mailer,
		logger:         logger,
	}
}

// EvaluateSubmission runs every automation rule of the form against the
// submitted data. Success means evaluation completed, not that every action
// succeeded.
func (e *AutomationEvaluator) EvaluateSubmission(ctx context.Context, workspaceID, formID uuid.UUID, data model.JSONB) {
	rules, err := e.automationRepo.ListByForm(ctx, workspaceID, formID)
	if err != nil {
		e.logger.Error("Failed to load automation rules",
			zap.String("workspace_id", workspaceID.String()),
			zap.String("form_id", formID.String()),
			zap.Error(err))
		return
	}

	for i := range rules {
		rule := &rules[i]
		if !e.matches(rule, data) {
			continue
		}

		e.logger.Info("Automation rule matched",
			zap.String("rule_id", rule.ID.String()),
			zap.String("rule_name", rule.Name),
			zap.String("form_id", formID.String()))

		for _, action := range rule.Actions {
			e.executeAction(rule, action)
		}
	}
}

// matches reports whether the submission satisfies every condition of the
// rule. An empty condition list always matches; a condition whose field is
// absent from the submission never does, regardless of operator.
func (e *AutomationEvaluator) matches(rule *model.AutomationRule, data model.JSONB) bool {
	for _, cond := range rule.Conditions {
		value, ok := data[cond.FieldID]
		if !ok || value == nil {
			return false
		}
		if !conditionHolds(cond.Operator, stringify(value), cond.Value) {
			return false
		}
	}
	return true
}

// executeAction runs one action, swallowing its failure so that subsequent
// actions and rules still run.
func (e *AutomationEvaluator) executeAction(rule *model.AutomationRule, action model.AutomationAction) {
	switch action.Type {
	case model.ActionTypeEmail:
		if err := e.mailer.Send(action.To, action.Subject, action.Body); err != nil {
			e.logger.Error("Automation email action failed",
				zap.String("rule_id", rule.ID.String()),
				zap.String("to", action.To),
				zap.Error(domainErrors.NewDeliveryError(rule.ID.String(), err)))
		}
	default:
		e.logger.Debug("Skipping automation action of unknown type",
			zap.String("rule_id", rule.ID.String()),
			zap.String("type", action.Type))
	}
}

// conditionHolds compares the string forms of both sides case-insensitively.
// Unrecognized operators never match.
func conditionHolds(operator, got, want string) bool {
	switch operator {
	case model.OperatorEquals:
		return strings.EqualFold(got, want)
	case model.OperatorNotEquals:
		return !strings.EqualFold(got, want)
	case model.OperatorContains:
		return strings.Contains(strings.ToLower(got), strings.ToLower(want))
	default:
		return false
	}
}

// stringify renders a submitted value the way it was typed: JSON numbers
// come back as float64, so 30 must compare equal to "30".
func stringify(value interface{}) string {
	switch v := value.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}
