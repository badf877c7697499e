package database

import (
	"github.com/shaunkitch/WorkforceOne-Production-sub001/internal/domain/model"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Migrate runs database migrations
func Migrate(db *gorm.DB, logger *zap.Logger) error {
	logger.Info("Running database migrations...")

	if err := createExtensions(db); err != nil {
		logger.Error("Failed to create extensions", zap.Error(err))
		return err
	}

	err := db.AutoMigrate(
		&model.Form{},
		&model.Submission{},
		&model.AutomationRule{},
		&model.AuditLog{},
	)
	if err != nil {
		logger.Error("Failed to run migrations", zap.Error(err))
		return err
	}

	if err := createCustomIndexes(db); err != nil {
		logger.Error("Failed to create custom indexes", zap.Error(err))
		return err
	}

	logger.Info("Database migrations completed successfully")
	return nil
}

// createExtensions creates required PostgreSQL extensions
func createExtensions(db *gorm.DB) error {
	// gen_random_uuid defaults on primary keys
	return db.Exec(`CREATE EXTENSION IF NOT EXISTS "pgcrypto"`).Error
}

// createCustomIndexes creates indexes that GORM doesn't handle automatically
func createCustomIndexes(db *gorm.DB) error {
	// Revertible entries are looked up by row pointer
	if err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_audit_logs_row_pointer ON audit_logs (table_name, record_id) WHERE record_id <> ''`).Error; err != nil {
		return err
	}

	// Automation rules are loaded per form on every submission
	if err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_automation_rules_form_created ON automation_rules (form_id, created_at)`).Error; err != nil {
		return err
	}

	return nil
}
