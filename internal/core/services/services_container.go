package services

import (
	portsrepo "github.com/reifenmarkt/accounting_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/reifenmarkt/accounting_ledger_app/internal/core/ports/services"
	"github.com/reifenmarkt/accounting_ledger_app/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Account = NewAccountService(repos.AccountRepo)
	container.Period = NewPeriodService(repos.PeriodRepo, repos.EntryRepo)

	// The ledger service sits under both manual bookings and the templates.
	container.Ledger = NewLedgerService(repos.EntryRepo, repos.AccountRepo, repos.PeriodRepo)
	container.AutoBooking = NewAutoBookingService(container.Ledger)

	container.Reporting = NewReportingService(repos.ReportingRepo)
	container.User = NewUserService(repos.UserRepo)

	// Initialize TokenService
	container.TokenService = NewTokenService(cfg, container.User)

	// Initialize GoogleOAuthHandlerSvcFacade
	container.GoogleOAuthHandler = NewGoogleOAuthHandlerService(cfg)

	return container
}
