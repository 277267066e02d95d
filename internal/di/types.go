// Package di provides dependency injection wiring and initialization.
package di

import (
	"github.com/foliotracker/folio/internal/database"
	"github.com/foliotracker/folio/internal/modules/analytics"
	analyticshandlers "github.com/foliotracker/folio/internal/modules/analytics/handlers"
	"github.com/foliotracker/folio/internal/modules/auth"
	authhandlers "github.com/foliotracker/folio/internal/modules/auth/handlers"
	"github.com/foliotracker/folio/internal/modules/dashboard"
	dashboardhandlers "github.com/foliotracker/folio/internal/modules/dashboard/handlers"
	"github.com/foliotracker/folio/internal/modules/investment"
	investmenthandlers "github.com/foliotracker/folio/internal/modules/investment/handlers"
	"github.com/foliotracker/folio/internal/modules/journal"
	journalhandlers "github.com/foliotracker/folio/internal/modules/journal/handlers"
	"github.com/foliotracker/folio/internal/modules/settings"
	settingshandlers "github.com/foliotracker/folio/internal/modules/settings/handlers"
	"github.com/foliotracker/folio/internal/reliability"
)

// Container holds all initialized dependencies
type Container struct {
	// Databases
	FolioDB *database.DB
	CacheDB *database.DB

	// Repositories
	UserRepo       *auth.UserRepository
	InvestmentRepo *investment.Repository
	JournalRepo    *journal.Repository
	SettingsRepo   *settings.Repository
	SnapshotCache  *dashboard.SnapshotCache

	// Services
	JWT               auth.JWT
	AuthService       *auth.Service
	InvestmentService *investment.Service
	JournalService    *journal.Service
	SettingsService   *settings.Service
	AnalyticsService  *analytics.Service
	DashboardService  *dashboard.Service

	// Handlers
	AuthHandlers       *authhandlers.Handler
	InvestmentHandlers *investmenthandlers.Handler
	JournalHandlers    *journalhandlers.Handler
	SettingsHandlers   *settingshandlers.Handler
	AnalyticsHandlers  *analyticshandlers.Handler
	DashboardHandlers  *dashboardhandlers.Handler

	// Background services (BackupService is nil when backups are disabled)
	BackupService  *reliability.BackupService
	MaintenanceJob *reliability.MaintenanceJob
}

// Close closes all database connections
func (c *Container) Close() {
	if c.FolioDB != nil {
		c.FolioDB.Close()
	}
	if c.CacheDB != nil {
		c.CacheDB.Close()
	}
}
