package reliability

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

const backupRetentionDays = 30

// BackupJob runs the nightly backup and rotation via the scheduler.
type BackupJob struct {
	service *BackupService
	log     zerolog.Logger
}

// NewBackupJob creates a new backup job
func NewBackupJob(service *BackupService, log zerolog.Logger) *BackupJob {
	return &BackupJob{
		service: service,
		log:     log.With().Str("job", "backup").Logger(),
	}
}

// Name returns the job name for the scheduler
func (j *BackupJob) Name() string {
	return "backup"
}

// Run executes the backup job
func (j *BackupJob) Run() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	if err := j.service.CreateAndUploadBackup(ctx); err != nil {
		return err
	}

	if err := j.service.RotateOldBackups(ctx, backupRetentionDays); err != nil {
		j.log.Warn().Err(err).Msg("Backup rotation failed")
	}

	return nil
}
