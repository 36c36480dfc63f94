package service

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ndewijer/Finance-Tracker-Backend/internal/database"
	"github.com/ndewijer/Finance-Tracker-Backend/internal/model"
	"github.com/ndewijer/Finance-Tracker-Backend/internal/version"
)

// SystemService handles system-related operations
type SystemService struct {
	db *sql.DB
}

// NewSystemService creates a new SystemService
func NewSystemService(db *sql.DB) *SystemService {
	return &SystemService{
		db: db,
	}
}

// CheckHealth checks the health of the system
func (s *SystemService) CheckHealth() error {
	return database.HealthCheck(s.db)
}

// CheckVersion reports the application version, the applied schema version
// and whether migrations are still pending.
func (s *SystemService) CheckVersion(ctx context.Context) (model.VersionInfo, error) {
	dbVersion, pending, err := database.SchemaVersion(ctx, s.db)
	if err != nil {
		return model.VersionInfo{}, err
	}

	info := model.VersionInfo{
		AppVersion: version.Version,
		DbVersion:  fmt.Sprintf("%d", dbVersion),
		Features: map[string]bool{
			"loan_schedule":   true,
			"session_sweeper": true,
			"admin_stats":     true,
		},
		MigrationNeeded: pending,
	}
	if pending {
		msg := "database schema is behind the application; restart to apply pending migrations"
		info.MigrationMessage = &msg
	}
	return info, nil
}
