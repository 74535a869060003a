package domain

import (
	"time"

	"github.com/google/uuid"
)

// CurrencyRateDatum is a timestamped rate observation: as of Date, one unit of
// the currency RefCurrencyID is worth Amount units of RefAmountCurrencyID.
// Datums are append-only and never mutated.
type CurrencyRateDatum struct {
	ID                  uuid.UUID
	OwnerID             uuid.UUID
	RefCurrencyID       uuid.UUID
	RefAmountCurrencyID uuid.UUID
	Amount              string
	Date                time.Time
	CreatedAt           time.Time
}
