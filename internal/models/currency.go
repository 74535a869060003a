package models

import (
	"time"

	"github.com/google/uuid"
)

// Currency is the currencies table row.
// Fallback amounts are stored as text so the submitted decimal string
// round-trips without binary-float precision loss.
type Currency struct {
	ID                     uuid.UUID  `json:"id"`
	OwnerID                uuid.UUID  `json:"ownerId"`
	Name                   string     `json:"name"`
	Ticker                 string     `json:"ticker"`
	IsBase                 bool       `json:"isBase"`
	FallbackRateAmount     *string    `json:"fallbackRateAmount"`
	FallbackRateCurrencyID *uuid.UUID `json:"fallbackRateCurrencyId"`
	CreatedAt              time.Time  `json:"createdAt"`
}
