package di

import (
	"github.com/rs/zerolog"

	"github.com/foliotracker/folio/internal/config"
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
)

// InitializeRepositories initializes all repositories
func InitializeRepositories(container *Container, cfg *config.Config, log zerolog.Logger) {
	folioConn := container.FolioDB.Conn()

	container.UserRepo = auth.NewUserRepository(folioConn, log)
	container.InvestmentRepo = investment.NewRepository(folioConn, log)
	container.JournalRepo = journal.NewRepository(folioConn, log)
	container.SettingsRepo = settings.NewRepository(folioConn, log)
	container.SnapshotCache = dashboard.NewSnapshotCache(container.CacheDB.Conn(), cfg.SnapshotTTL, log)
}

// InitializeServices initializes all services and handlers.
// Repositories must be initialized first.
func InitializeServices(container *Container, cfg *config.Config, log zerolog.Logger) {
	container.JWT = auth.JWT{Secret: []byte(cfg.JWTSecret), TokenTTL: cfg.TokenTTL}

	container.SettingsService = settings.NewService(container.SettingsRepo, cfg.CurrencyCode, log)
	container.AuthService = auth.NewService(container.UserRepo, container.SettingsService, container.JWT, log)
	container.InvestmentService = investment.NewService(container.InvestmentRepo, container.SnapshotCache, log)
	container.JournalService = journal.NewService(container.JournalRepo, container.InvestmentRepo, container.SnapshotCache, log)
	container.AnalyticsService = analytics.NewService(container.InvestmentRepo, container.InvestmentRepo, container.JournalRepo, log)
	container.DashboardService = dashboard.NewService(container.AnalyticsService, container.SettingsService, container.SnapshotCache, log)

	container.AuthHandlers = authhandlers.NewHandler(container.AuthService, log)
	container.InvestmentHandlers = investmenthandlers.NewHandler(container.InvestmentService, log)
	container.JournalHandlers = journalhandlers.NewHandler(container.JournalService, log)
	container.SettingsHandlers = settingshandlers.NewHandler(container.SettingsService, log)
	container.AnalyticsHandlers = analyticshandlers.NewHandler(container.AnalyticsService, log)
	container.DashboardHandlers = dashboardhandlers.NewHandler(container.DashboardService, log)
}
