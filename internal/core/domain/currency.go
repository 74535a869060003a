package domain

import (
	"time"

	"github.com/google/uuid"
)

// Currency is an owner-scoped currency definition.
//
// A base currency (IsBase true) is the unit every rate is expressed in; each
// owner has at most one. A normal currency carries a static fallback rate to
// another currency of the same owner, used when no usable time-series bracket
// exists. Currencies are immutable once created.
//
// FallbackRateAmount is kept as the submitted decimal string; it is parsed
// with checked arithmetic at resolution time so a malformed stored value
// surfaces as an InvalidDecimalValueError rather than a corrupted rate.
type Currency struct {
	ID                     uuid.UUID
	OwnerID                uuid.UUID
	Name                   string
	Ticker                 string
	IsBase                 bool
	FallbackRateAmount     *string
	FallbackRateCurrencyID *uuid.UUID
	CreatedAt              time.Time
}
