package reliability

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foliotracker/folio/internal/database"
)

type fakePurger struct {
	purged int64
	err    error
	calls  int
}

func (p *fakePurger) PurgeExpired() (int64, error) {
	p.calls++
	return p.purged, p.err
}

func newTestDatabases(t *testing.T, dir string) map[string]*database.DB {
	folio, err := database.New(database.Config{
		Path:    filepath.Join(dir, "folio.db"),
		Profile: database.ProfileStandard,
		Name:    "folio",
	})
	require.NoError(t, err)
	t.Cleanup(func() { folio.Close() })

	cache, err := database.New(database.Config{
		Path:    filepath.Join(dir, "cache.db"),
		Profile: database.ProfileCache,
		Name:    "cache",
	})
	require.NoError(t, err)
	t.Cleanup(func() { cache.Close() })

	return map[string]*database.DB{"folio": folio, "cache": cache}
}

func TestMaintenanceRun_ChecksCheckpointsAndVacuums(t *testing.T) {
	dir := t.TempDir()
	log := zerolog.New(nil).Level(zerolog.Disabled)
	purger := &fakePurger{purged: 3}

	job := NewMaintenanceJob(newTestDatabases(t, dir), purger, dir, log)

	require.NoError(t, job.Run())
	assert.Equal(t, 1, purger.calls)
}

func TestMaintenanceRun_PurgeFailureIsNotFatal(t *testing.T) {
	dir := t.TempDir()
	log := zerolog.New(nil).Level(zerolog.Disabled)
	purger := &fakePurger{err: errors.New("cache unavailable")}

	job := NewMaintenanceJob(newTestDatabases(t, dir), purger, dir, log)

	assert.NoError(t, job.Run())
}

func TestMaintenanceRun_NilPurgerSkipsPurge(t *testing.T) {
	dir := t.TempDir()
	log := zerolog.New(nil).Level(zerolog.Disabled)

	job := NewMaintenanceJob(newTestDatabases(t, dir), nil, dir, log)

	assert.NoError(t, job.Run())
}

func TestMaintenanceName(t *testing.T) {
	log := zerolog.New(nil).Level(zerolog.Disabled)
	job := NewMaintenanceJob(nil, nil, ".", log)

	assert.Equal(t, "maintenance", job.Name())
}
