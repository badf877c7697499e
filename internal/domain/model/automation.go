package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Condition operators. Comparison is case-insensitive over the string forms
// of both sides; an unrecognized operator never matches.
const (
	OperatorEquals    = "equals"
	OperatorNotEquals = "not_equals"
	OperatorContains  = "contains"
)

// Automation action types. Only email actions have defined behavior; actions
// of unknown type are skipped during evaluation.
const (
	ActionTypeEmail = "email"
)

// AutomationCondition compares one submission field against a target value.
type AutomationCondition struct {
	FieldID  string `json:"field_id"`
	Operator string `json:"operator"`
	Value    string `json:"value"`
}

// AutomationConditions is a JSONB-backed list of conditions combined with
// AND semantics. An empty list always matches.
type AutomationConditions []AutomationCondition

func (c AutomationConditions) Value() (driver.Value, error) {
	if c == nil {
		return json.Marshal(AutomationConditions{})
	}
	return json.Marshal(c)
}

func (c *AutomationConditions) Scan(value interface{}) error {
	return scanJSONColumn(value, c)
}

// AutomationAction describes one action executed when a rule matches.
type AutomationAction struct {
	Type    string `json:"type"`
	To      string `json:"to,omitempty"`
	Subject string `json:"subject,omitempty"`
	Body    string `json:"body,omitempty"`
}

// AutomationActions is a JSONB-backed ordered list of actions.
type AutomationActions []AutomationAction

func (a AutomationActions) Value() (driver.Value, error) {
	if a == nil {
		return json.Marshal(AutomationActions{})
	}
	return json.Marshal(a)
}

func (a *AutomationActions) Scan(value interface{}) error {
	return scanJSONColumn(value, a)
}

// AutomationRule fires its actions when a submission to its form satisfies
// every condition.
type AutomationRule struct {
	ID          uuid.UUID            `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	WorkspaceID uuid.UUID            `gorm:"type:uuid;not null;index" json:"workspace_id"`
	FormID      uuid.UUID            `gorm:"type:uuid;not null;index" json:"form_id"`
	Name        string               `gorm:"not null;size:255" json:"name"`
	Conditions  AutomationConditions `gorm:"type:jsonb;default:'[]'" json:"conditions"`
	Actions     AutomationActions    `gorm:"type:jsonb;default:'[]'" json:"actions"`
	CreatedAt   time.Time            `gorm:"default:now()" json:"created_at"`
	UpdatedAt   time.Time            `gorm:"default:now()" json:"updated_at"`
}

// TableName specifies the table name for GORM
func (AutomationRule) TableName() string {
	return "automation_rules"
}

func scanJSONColumn(value interface{}, dest interface{}) error {
	if value == nil {
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported type for JSON column: %T", value)
	}

	return json.Unmarshal(data, dest)
}
