package model

import (
	"time"

	"github.com/google/uuid"
)

// Submission is one submitted instance of a form. Data maps field IDs to the
// submitted values; automation conditions look their fields up in it.
type Submission struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	WorkspaceID uuid.UUID  `gorm:"type:uuid;not null;index" json:"workspace_id"`
	FormID      uuid.UUID  `gorm:"type:uuid;not null;index" json:"form_id"`
	SubmittedBy *uuid.UUID `gorm:"type:uuid" json:"submitted_by,omitempty"`
	Data        JSONB      `gorm:"type:jsonb;default:'{}'" json:"data"`
	CreatedAt   time.Time  `gorm:"default:now();index" json:"created_at"`
}

// TableName specifies the table name for GORM
func (Submission) TableName() string {
	return "submissions"
}
