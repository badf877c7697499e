package model

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// FormField describes one field of a form. The ID is what submissions and
// automation conditions reference.
type FormField struct {
	ID       string `json:"id"`
	Type     string `json:"type"`
	Label    string `json:"label"`
	Required bool   `json:"required,omitempty"`
}

// FormFields is a JSONB-backed ordered field list.
type FormFields []FormField

func (f FormFields) Value() (driver.Value, error) {
	if f == nil {
		return json.Marshal(FormFields{})
	}
	return json.Marshal(f)
}

func (f *FormFields) Scan(value interface{}) error {
	return scanJSONColumn(value, f)
}

// Form is a workspace-scoped form definition.
type Form struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	WorkspaceID uuid.UUID  `gorm:"type:uuid;not null;index" json:"workspace_id"`
	Name        string     `gorm:"not null;size:255" json:"name"`
	Description string     `gorm:"type:text" json:"description,omitempty"`
	Fields      FormFields `gorm:"type:jsonb;default:'[]'" json:"fields"`
	CreatedAt   time.Time  `gorm:"default:now()" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"default:now()" json:"updated_at"`
}

// TableName specifies the table name for GORM
func (Form) TableName() string {
	return "forms"
}
