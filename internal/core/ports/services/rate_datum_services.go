package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/fintrackd/fintrack_backend/internal/core/domain"
	portsrepo "github.com/fintrackd/fintrack_backend/internal/core/ports/repositories"
	"github.com/fintrackd/fintrack_backend/internal/dto"
)

// RateDatumReaderSvc defines read operations for rate datums.
type RateDatumReaderSvc interface {
	// GetNearestTwoDatums returns the true (left, right) bracket of the
	// owner's datums for currencyID around date. When the bracket collapses
	// on an exact date match both returns refer to the same datum.
	GetNearestTwoDatums(ctx context.Context, tx portsrepo.Tx, ownerID, currencyID uuid.UUID, date time.Time) (left, right *domain.CurrencyRateDatum, err error)
}

// RateDatumWriterSvc defines write operations for rate datums
type RateDatumWriterSvc interface {
	// CreateRateDatum validates and persists a new datum, returning its id.
	CreateRateDatum(ctx context.Context, tx portsrepo.Tx, req dto.CreateRateDatumRequest, ownerID uuid.UUID) (uuid.UUID, error)
}

// RateDatumSvcFacade combines all rate-datum service interfaces
type RateDatumSvcFacade interface {
	RateDatumReaderSvc
	RateDatumWriterSvc
}
