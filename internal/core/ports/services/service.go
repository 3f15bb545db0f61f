package services

// ServiceContainer holds instances of all the application services.
// This is the main entry point for accessing service functionality and
// is used by both the HTTP handlers and the CLI.
type ServiceContainer struct {
	Currency     CurrencySvcFacade
	ExchangeRate ExchangeRateSvcFacade
	Portfolio    PortfolioSvcFacade
	Trade        TradeSvcFacade
	User         UserSvcFacade
	Token        TokenSvcFacade
}
