package di

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/foliotracker/folio/internal/config"
	"github.com/foliotracker/folio/internal/database"
	"github.com/foliotracker/folio/internal/reliability"
)

// InitializeJobs initializes background maintenance and backup services
func InitializeJobs(container *Container, cfg *config.Config, log zerolog.Logger) error {
	databases := map[string]*database.DB{
		container.FolioDB.Name(): container.FolioDB,
		container.CacheDB.Name(): container.CacheDB,
	}

	container.MaintenanceJob = reliability.NewMaintenanceJob(
		databases,
		container.SnapshotCache,
		cfg.DataDir,
		log,
	)

	if cfg.Backup.Enabled {
		s3Client, err := reliability.NewS3Client(cfg.Backup, log)
		if err != nil {
			return fmt.Errorf("failed to initialize backup storage: %w", err)
		}
		container.BackupService = reliability.NewBackupService(s3Client, databases, cfg.DataDir, log)
	}

	return nil
}
