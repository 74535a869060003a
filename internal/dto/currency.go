package dto

import (
	"github.com/fintrackd/fintrack_backend/internal/core/domain"
)

// CreateCurrencyRequest defines the data needed to create a new currency.
// FallbackRateAmount and FallbackRateCurrencyID must be present together
// (normal currency) or absent together (base currency); amounts travel as
// base-10 decimal strings.
type CreateCurrencyRequest struct {
	Name                   string  `json:"name" binding:"required"`
	Ticker                 string  `json:"ticker" binding:"required"`
	FallbackRateAmount     *string `json:"fallbackRateAmount"`
	FallbackRateCurrencyID *string `json:"fallbackRateCurrencyId"`
}

// CreateCurrencyResponse returns the id of the created currency.
type CreateCurrencyResponse struct {
	ID string `json:"id"`
}

// CurrencyResponse defines the data returned for a currency, including its
// rate against the owner's base currency at the queried date.
type CurrencyResponse struct {
	ID                     string  `json:"id"`
	Name                   string  `json:"name"`
	Ticker                 string  `json:"ticker"`
	Owner                  string  `json:"owner"`
	IsBase                 bool    `json:"isBase"`
	FallbackRateAmount     *string `json:"fallbackRateAmount"`
	FallbackRateCurrencyID *string `json:"fallbackRateCurrencyId"`
	RateToBase             string  `json:"rateToBase"`
}

// ToCurrencyResponse converts a domain Currency plus its resolved rate to a response DTO.
func ToCurrencyResponse(curr *domain.Currency, rateToBase string) CurrencyResponse {
	resp := CurrencyResponse{
		ID:                 curr.ID.String(),
		Name:               curr.Name,
		Ticker:             curr.Ticker,
		Owner:              curr.OwnerID.String(),
		IsBase:             curr.IsBase,
		FallbackRateAmount: curr.FallbackRateAmount,
		RateToBase:         rateToBase,
	}
	if curr.FallbackRateCurrencyID != nil {
		id := curr.FallbackRateCurrencyID.String()
		resp.FallbackRateCurrencyID = &id
	}
	return resp
}

// ListCurrenciesResponse wraps the currency listing.
type ListCurrenciesResponse struct {
	Items []CurrencyResponse `json:"items"`
}
