package services

import (
	"github.com/fintrackd/fintrack_backend/internal/cache"
	portsrepo "github.com/fintrackd/fintrack_backend/internal/core/ports/repositories"
	portssvc "github.com/fintrackd/fintrack_backend/internal/core/ports/services"
	"github.com/fintrackd/fintrack_backend/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}
	container.Txm = repos.Txm

	currencyCache := cache.NewCurrencyCache(cfg.CurrencyCacheSize)
	datumCache := cache.NewRateDatumCache(cfg.RateDatumCacheSize)

	// Currency service first since the datum and rate services look up
	// currencies through it.
	container.Currency = NewCurrencyService(repos.CurrencyRepo, currencyCache)
	container.RateDatum = NewRateDatumService(repos.RateDatum, container.Currency, datumCache)
	container.Rate = NewRateService(container.Currency, container.RateDatum)

	return container
}

// Compile time interface implementation checks
var (
	_ portssvc.CurrencySvcFacade  = (*CurrencyService)(nil)
	_ portssvc.RateDatumSvcFacade = (*RateDatumService)(nil)
)
