package mapping

import (
	"github.com/fintrackd/fintrack_backend/internal/core/domain"
	"github.com/fintrackd/fintrack_backend/internal/models"
)

// ToModelRateDatum converts a domain CurrencyRateDatum to a model CurrencyRateDatum
func ToModelRateDatum(d domain.CurrencyRateDatum) models.CurrencyRateDatum {
	return models.CurrencyRateDatum{
		ID:                  d.ID,
		OwnerID:             d.OwnerID,
		RefCurrencyID:       d.RefCurrencyID,
		RefAmountCurrencyID: d.RefAmountCurrencyID,
		Amount:              d.Amount,
		Date:                d.Date,
		CreatedAt:           d.CreatedAt,
	}
}

// ToDomainRateDatum converts a model CurrencyRateDatum to a domain CurrencyRateDatum
func ToDomainRateDatum(m models.CurrencyRateDatum) domain.CurrencyRateDatum {
	return domain.CurrencyRateDatum{
		ID:                  m.ID,
		OwnerID:             m.OwnerID,
		RefCurrencyID:       m.RefCurrencyID,
		RefAmountCurrencyID: m.RefAmountCurrencyID,
		Amount:              m.Amount,
		Date:                m.Date,
		CreatedAt:           m.CreatedAt,
	}
}

// ToDomainRateDatumSlice converts a slice of model datums to domain datums
func ToDomainRateDatumSlice(ms []models.CurrencyRateDatum) []domain.CurrencyRateDatum {
	ds := make([]domain.CurrencyRateDatum, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainRateDatum(m)
	}
	return ds
}
