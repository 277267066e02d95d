package di

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/foliotracker/folio/internal/config"
	"github.com/foliotracker/folio/internal/database"
)

// InitializeDatabases initializes both databases and applies schemas
func InitializeDatabases(cfg *config.Config, log zerolog.Logger) (*Container, error) {
	container := &Container{}

	// folio.db - Record store (users, investments, transactions, journal)
	folioDB, err := database.New(database.Config{
		Path:    cfg.DataDir + "/folio.db",
		Profile: database.ProfileStandard,
		Name:    "folio",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize folio database: %w", err)
	}
	container.FolioDB = folioDB

	// cache.db - Ephemeral data (dashboard snapshots)
	cacheDB, err := database.New(database.Config{
		Path:    cfg.DataDir + "/cache.db",
		Profile: database.ProfileCache,
		Name:    "cache",
	})
	if err != nil {
		folioDB.Close()
		return nil, fmt.Errorf("failed to initialize cache database: %w", err)
	}
	container.CacheDB = cacheDB

	for _, db := range []*database.DB{folioDB, cacheDB} {
		if err := db.Migrate(); err != nil {
			folioDB.Close()
			cacheDB.Close()
			return nil, fmt.Errorf("failed to apply schema to %s: %w", db.Name(), err)
		}
	}

	log.Info().Msg("Databases initialized and schemas applied")

	return container, nil
}
