package services

// ServiceContainer holds instances of all the application services.
// This is the main entry point for accessing service functionality and
// is used throughout the application, particularly in the handlers.
type ServiceContainer struct {
	Account     AccountSvcFacade
	Ledger      LedgerSvcFacade
	Period      PeriodSvcFacade
	AutoBooking AutoBookingSvcFacade
	Reporting   ReportingService
	User        UserSvcFacade

	// TokenService handles JWT and refresh token operations
	TokenService TokenSvcFacade

	// GoogleOAuthHandler handles the Google OAuth login flow
	GoogleOAuthHandler GoogleOAuthHandlerSvcFacade
}
