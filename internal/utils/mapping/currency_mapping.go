package mapping

import (
	"github.com/fintrackd/fintrack_backend/internal/core/domain"
	"github.com/fintrackd/fintrack_backend/internal/models"
)

// ToModelCurrency converts a domain Currency to a model Currency
func ToModelCurrency(d domain.Currency) models.Currency {
	return models.Currency{
		ID:                     d.ID,
		OwnerID:                d.OwnerID,
		Name:                   d.Name,
		Ticker:                 d.Ticker,
		IsBase:                 d.IsBase,
		FallbackRateAmount:     d.FallbackRateAmount,
		FallbackRateCurrencyID: d.FallbackRateCurrencyID,
		CreatedAt:              d.CreatedAt,
	}
}

// ToDomainCurrency converts a model Currency to a domain Currency
func ToDomainCurrency(m models.Currency) domain.Currency {
	return domain.Currency{
		ID:                     m.ID,
		OwnerID:                m.OwnerID,
		Name:                   m.Name,
		Ticker:                 m.Ticker,
		IsBase:                 m.IsBase,
		FallbackRateAmount:     m.FallbackRateAmount,
		FallbackRateCurrencyID: m.FallbackRateCurrencyID,
		CreatedAt:              m.CreatedAt,
	}
}

// ToDomainCurrencySlice converts a slice of model Currencies to a slice of domain Currencies
func ToDomainCurrencySlice(ms []models.Currency) []domain.Currency {
	ds := make([]domain.Currency, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainCurrency(m)
	}
	return ds
}
