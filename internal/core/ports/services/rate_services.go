package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	portsrepo "github.com/fintrackd/fintrack_backend/internal/core/ports/repositories"
)

// RateSvcFacade resolves currency rates against the owner's base currency.
type RateSvcFacade interface {
	// RateToBase computes the value of one unit of currencyID expressed in
	// the owner's base currency as of date.
	RateToBase(ctx context.Context, tx portsrepo.Tx, ownerID, currencyID uuid.UUID, date time.Time) (decimal.Decimal, error)
}
