package services

// ServiceContainer groups the service facades handed to the HTTP layer.
type ServiceContainer struct {
	Rate      RateSvcFacade
	Ingestion IngestionSvcFacade
	Market    MarketSvcFacade
	User      UserSvcFacade
}
