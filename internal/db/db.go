package db

import (
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/ClinicaVitaBR/crm-followup/internal/audit"
	"github.com/ClinicaVitaBR/crm-followup/internal/config"
	"github.com/ClinicaVitaBR/crm-followup/internal/models"
)

func NewDB(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
	})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("failed to get sql.DB: %v", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	// Schema mismatch is fatal at startup, never silently skipped.
	if err := db.AutoMigrate(
		&models.User{},
		&models.Client{},
		&models.Action{},
		&models.AuditLog{},
	); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	// The recorder lives on the shared handle so no write path can skip it.
	if err := audit.Register(db); err != nil {
		log.Fatalf("failed to register audit recorder: %v", err)
	}

	return db
}
