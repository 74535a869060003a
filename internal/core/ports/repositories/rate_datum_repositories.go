package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/fintrackd/fintrack_backend/internal/core/domain"
)

// RateDatumReader defines read operations for currency rate datums.
type RateDatumReader interface {
	// FindNearestTwoDatums retrieves up to two datums for the owner's
	// currency with minimal absolute time distance to date. The result is
	// unordered; callers bracket it themselves.
	FindNearestTwoDatums(ctx context.Context, tx Tx, ownerID, currencyID uuid.UUID, date time.Time) ([]domain.CurrencyRateDatum, error)
}

// RateDatumWriter defines write operations for currency rate datums
type RateDatumWriter interface {
	// SaveRateDatum persists a new datum row; apperrors.ErrDuplicate when the
	// (owner, currency, date) slot is already taken.
	SaveRateDatum(ctx context.Context, tx Tx, datum domain.CurrencyRateDatum) error
}

// RateDatumRepositoryFacade combines all rate-datum repository interfaces
type RateDatumRepositoryFacade interface {
	RateDatumReader
	RateDatumWriter
}
