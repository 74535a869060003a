package services

import (
	portsrepo "github.com/fintrackd/fintrack_backend/internal/core/ports/repositories"
)

// ServiceContainer holds instances of all the application services.
// This is the main entry point for accessing service functionality and
// is used throughout the application, particularly in the handlers.
type ServiceContainer struct {
	Txm       portsrepo.TransactionManager
	Currency  CurrencySvcFacade
	RateDatum RateDatumSvcFacade
	Rate      RateSvcFacade
}
