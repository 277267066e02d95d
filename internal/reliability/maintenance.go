// Package reliability contains database maintenance and backup services.
package reliability

import (
	"context"
	"fmt"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/foliotracker/folio/internal/database"
)

// SnapshotPurger removes expired cached snapshots.
type SnapshotPurger interface {
	PurgeExpired() (int64, error)
}

// MaintenanceJob performs nightly database maintenance: integrity checks,
// WAL checkpoints, expired snapshot cleanup and a disk space check.
type MaintenanceJob struct {
	databases map[string]*database.DB
	purger    SnapshotPurger
	dataDir   string
	log       zerolog.Logger
}

// NewMaintenanceJob creates a new maintenance job
func NewMaintenanceJob(
	databases map[string]*database.DB,
	purger SnapshotPurger,
	dataDir string,
	log zerolog.Logger,
) *MaintenanceJob {
	return &MaintenanceJob{
		databases: databases,
		purger:    purger,
		dataDir:   dataDir,
		log:       log.With().Str("job", "maintenance").Logger(),
	}
}

// Name returns the job name for the scheduler
func (j *MaintenanceJob) Name() string {
	return "maintenance"
}

// Run executes the maintenance job
func (j *MaintenanceJob) Run() error {
	j.log.Info().Msg("Starting maintenance")
	startTime := time.Now()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	for name, db := range j.databases {
		j.log.Debug().Str("database", name).Msg("Running integrity check")

		if err := db.HealthCheck(ctx); err != nil {
			j.log.Error().
				Str("database", name).
				Err(err).
				Msg("Integrity check failed")
			return fmt.Errorf("integrity check failed for %s: %w", name, err)
		}
	}

	// Checkpoint WALs to keep them from growing unbounded
	for name, db := range j.databases {
		j.log.Debug().Str("database", name).Msg("Running WAL checkpoint")

		if err := db.WALCheckpoint("TRUNCATE"); err != nil {
			j.log.Warn().
				Str("database", name).
				Err(err).
				Msg("WAL checkpoint failed")
			// Not critical, continue
		}
	}

	// Reclaim space once the WALs are checkpointed. VACUUM rewrites the
	// whole file, which is acceptable inside the maintenance window.
	for name, db := range j.databases {
		j.log.Debug().Str("database", name).Msg("Running vacuum")

		if err := db.Vacuum(); err != nil {
			j.log.Warn().
				Str("database", name).
				Err(err).
				Msg("Vacuum failed")
			// Not critical, continue
		}
	}

	if j.purger != nil {
		purged, err := j.purger.PurgeExpired()
		if err != nil {
			j.log.Warn().Err(err).Msg("Snapshot purge failed")
		} else if purged > 0 {
			j.log.Info().Int64("purged", purged).Msg("Purged expired snapshots")
		}
	}

	if err := j.checkDiskSpace(); err != nil {
		return err
	}

	j.log.Info().
		Dur("duration_ms", time.Since(startTime)).
		Msg("Maintenance completed successfully")

	return nil
}

// checkDiskSpace verifies sufficient disk space is available
func (j *MaintenanceJob) checkDiskSpace() error {
	stat := syscall.Statfs_t{}
	if err := syscall.Statfs(j.dataDir, &stat); err != nil {
		return fmt.Errorf("failed to stat filesystem: %w", err)
	}

	availableBytes := stat.Bavail * uint64(stat.Bsize)
	availableGB := float64(availableBytes) / 1e9

	j.log.Debug().Float64("available_gb", availableGB).Msg("Disk space check")

	if availableGB < 0.5 {
		j.log.Error().
			Float64("available_gb", availableGB).
			Msg("Insufficient disk space")
		return fmt.Errorf("only %.2f GB free", availableGB)
	}

	if availableGB < 5.0 {
		j.log.Warn().
			Float64("available_gb", availableGB).
			Msg("Disk space running low")
	}

	return nil
}
