package database

import (
	"github.com/shaunkitch/WorkforceOne-Production-sub001/internal/adapter/repository"
	"github.com/shaunkitch/WorkforceOne-Production-sub001/internal/config"
	domainRepo "github.com/shaunkitch/WorkforceOne-Production-sub001/internal/domain/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Repositories holds all repository instances
type Repositories struct {
	AuditLog   domainRepo.AuditLogRepository
	Automation domainRepo.AutomationRepository
	Form       domainRepo.FormRepository
	Submission domainRepo.SubmissionRepository
	Store      domainRepo.RecordStore
	Membership domainRepo.MembershipRepository
}

// NewRepositories creates new repository instances with database connection
func NewRepositories(db *gorm.DB, supabase *config.SupabaseConfig, logger *zap.Logger) *Repositories {
	return &Repositories{
		AuditLog:   repository.NewAuditLogRepository(db, logger),
		Automation: repository.NewAutomationRepository(db, logger),
		Form:       repository.NewFormRepository(db, logger),
		Submission: repository.NewSubmissionRepository(db, logger),
		Store:      repository.NewRecordStore(db, logger),
		Membership: repository.NewSupabaseMembershipRepository(supabase.ProjectURL, supabase.APIKey, logger),
	}
}
