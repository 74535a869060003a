package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fintrackd/fintrack_backend/internal/apperrors"
	"github.com/fintrackd/fintrack_backend/internal/cache"
	"github.com/fintrackd/fintrack_backend/internal/core/domain"
	portsrepo "github.com/fintrackd/fintrack_backend/internal/core/ports/repositories"
	portssvc "github.com/fintrackd/fintrack_backend/internal/core/ports/services"
	"github.com/fintrackd/fintrack_backend/internal/dto"
	"github.com/fintrackd/fintrack_backend/internal/utils"
	"github.com/fintrackd/fintrack_backend/internal/utils/rates"
)

// RateDatumService provides owner-scoped CRUD over rate observations and the
// nearest-neighbor bracket query the resolver interpolates between.
type RateDatumService struct {
	datumRepo   portsrepo.RateDatumRepositoryFacade
	currencySvc portssvc.CurrencyReaderSvc
	datumCache  *cache.RateDatumCache
}

// NewRateDatumService creates a new RateDatumService.
func NewRateDatumService(datumRepo portsrepo.RateDatumRepositoryFacade, currencySvc portssvc.CurrencyReaderSvc, datumCache *cache.RateDatumCache) *RateDatumService {
	return &RateDatumService{
		datumRepo:   datumRepo,
		currencySvc: currencySvc,
		datumCache:  datumCache,
	}
}

var _ portssvc.RateDatumSvcFacade = (*RateDatumService)(nil)

// CreateRateDatum validates and persists a new rate observation.
//
// Both referenced currencies must exist for the owner (checked in request
// order, short-circuiting on the first unknown id) and must differ from each
// other. Validation completes before the insert; the datum cache is appended
// through a post-commit callback.
func (s *RateDatumService) CreateRateDatum(ctx context.Context, tx portsrepo.Tx, req dto.CreateRateDatumRequest, ownerID uuid.UUID) (uuid.UUID, error) {
	refCurrencyID, err := uuid.Parse(req.RefCurrencyID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: refCurrencyId is not a valid uuid", apperrors.ErrValidation)
	}
	refAmountCurrencyID, err := uuid.Parse(req.RefAmountCurrencyID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: refAmountCurrencyId is not a valid uuid", apperrors.ErrValidation)
	}

	date, err := utils.ParseUTCDate(req.Date)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return uuid.Nil, &apperrors.InvalidDecimalValueError{Raw: req.Amount}
	}

	unknown, err := s.currencySvc.FindFirstUnknownCurrency(ctx, tx, ownerID, []uuid.UUID{refCurrencyID, refAmountCurrencyID})
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to check datum currencies: %w", err)
	}
	if unknown != nil {
		return uuid.Nil, &apperrors.CurrencyNotFoundError{CurrencyID: *unknown}
	}

	if refCurrencyID == refAmountCurrencyID {
		return uuid.Nil, &apperrors.CyclicRefAmountCurrencyError{CurrencyID: refCurrencyID}
	}

	datum := domain.CurrencyRateDatum{
		ID:                  uuid.New(),
		OwnerID:             ownerID,
		RefCurrencyID:       refCurrencyID,
		RefAmountCurrencyID: refAmountCurrencyID,
		Amount:              amount.String(),
		Date:                date,
		CreatedAt:           time.Now().UTC(),
	}

	if err := s.datumRepo.SaveRateDatum(ctx, tx, datum); err != nil {
		return uuid.Nil, fmt.Errorf("failed to create rate datum in service: %w", err)
	}

	tx.QueueCallback(func() error {
		s.datumCache.Register(datum)
		return nil
	})

	return datum.ID, nil
}

// GetNearestTwoDatums returns the true (left, right) bracket of the owner's
// datums for currencyID around date. The store supplies the two rows with
// minimal absolute time distance; the selector orders them into a bracket.
// When both chosen neighbors sit exactly on date the bracket collapses onto a
// single datum.
func (s *RateDatumService) GetNearestTwoDatums(ctx context.Context, tx portsrepo.Tx, ownerID, currencyID uuid.UUID, date time.Time) (*domain.CurrencyRateDatum, *domain.CurrencyRateDatum, error) {
	datums, err := s.datumRepo.FindNearestTwoDatums(ctx, tx, ownerID, currencyID, date)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query nearest datums in service: %w", err)
	}

	var a, b *rates.Candidate[int64, domain.CurrencyRateDatum]
	if len(datums) > 0 {
		a = &rates.Candidate[int64, domain.CurrencyRateDatum]{X: datums[0].Date.UnixMilli(), Value: datums[0]}
	}
	if len(datums) > 1 {
		b = &rates.Candidate[int64, domain.CurrencyRateDatum]{X: datums[1].Date.UnixMilli(), Value: datums[1]}
	}

	left, right := rates.FindNeighborsLeftBiased(date.UnixMilli(), a, b)

	target := date.UnixMilli()
	if left != nil && right != nil && left.Date.UnixMilli() == target && right.Date.UnixMilli() == target {
		collapsed := *right
		return &collapsed, right, nil
	}
	return left, right, nil
}
