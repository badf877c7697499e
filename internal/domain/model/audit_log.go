package model

import (
	"time"

	"github.com/google/uuid"
)

// AuditLog represents an immutable change record. PreviousData and NewData
// are row snapshots taken around the mutation; their presence determines how
// the change can be reverted (insert, update or delete). Action is a
// human-readable label and is never used for dispatch.
type AuditLog struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	WorkspaceID    uuid.UUID  `gorm:"type:uuid;not null;index:idx_audit_logs_workspace_created,priority:1" json:"workspace_id"`
	ActorID        *uuid.UUID `gorm:"type:uuid;index" json:"actor_id,omitempty"` // nil for system-initiated changes
	Action         string     `gorm:"not null;size:255" json:"action"`
	TargetResource string     `gorm:"not null;size:255" json:"target_resource"`
	Table          string     `gorm:"column:table_name;size:100;index" json:"table_name,omitempty"`
	RecordID       string     `gorm:"size:64" json:"record_id,omitempty"`
	PreviousData   JSONB      `gorm:"type:jsonb" json:"previous_data,omitempty"`
	NewData        JSONB      `gorm:"type:jsonb" json:"new_data,omitempty"`
	Details        JSONB      `gorm:"type:jsonb;default:'{}'" json:"details"`
	CreatedAt      time.Time  `gorm:"default:now();index:idx_audit_logs_workspace_created,priority:2,sort:desc" json:"created_at"`
}

// TableName specifies the table name for GORM
func (AuditLog) TableName() string {
	return "audit_logs"
}

// HasRowPointer reports whether the record identifies the specific row it
// changed. Records without a row pointer cannot be auto-reverted.
func (a *AuditLog) HasRowPointer() bool {
	return a.Table != "" && a.RecordID != ""
}
