package models

import (
	"time"

	"github.com/google/uuid"
)

// CurrencyRateDatum is the currency_rate_datums table row.
type CurrencyRateDatum struct {
	ID                  uuid.UUID `json:"id"`
	OwnerID             uuid.UUID `json:"ownerId"`
	RefCurrencyID       uuid.UUID `json:"refCurrencyId"`
	RefAmountCurrencyID uuid.UUID `json:"refAmountCurrencyId"`
	Amount              string    `json:"amount"`
	Date                time.Time `json:"date"`
	CreatedAt           time.Time `json:"createdAt"`
}
