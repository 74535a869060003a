package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fintrackd/fintrack_backend/internal/apperrors"
	"github.com/fintrackd/fintrack_backend/internal/core/domain"
	portsrepo "github.com/fintrackd/fintrack_backend/internal/core/ports/repositories"
	portssvc "github.com/fintrackd/fintrack_backend/internal/core/ports/services"
	"github.com/fintrackd/fintrack_backend/internal/utils/rates"
)

// RateService resolves the value of a currency against the owner's base
// currency at an arbitrary date by recursing through the currency graph.
type RateService struct {
	currencySvc portssvc.CurrencyReaderSvc
	datumSvc    portssvc.RateDatumReaderSvc
}

// NewRateService creates a new RateService.
func NewRateService(currencySvc portssvc.CurrencyReaderSvc, datumSvc portssvc.RateDatumReaderSvc) *RateService {
	return &RateService{
		currencySvc: currencySvc,
		datumSvc:    datumSvc,
	}
}

var _ portssvc.RateSvcFacade = (*RateService)(nil)

// RateToBase computes the value of one unit of currencyID expressed in the
// owner's base currency as of date.
//
// A base currency is 1 by definition. A normal currency is priced from the
// nearest-two datum bracket around date: each bracket endpoint is itself
// resolved recursively (the rate of the datum's quote currency at the datum's
// own date, times the datum amount) and the two anchors are interpolated on a
// millisecond axis. With no usable bracket the currency's static fallback
// rate applies, recursively. A repeat of a currency already on the resolution
// path reports ErrCyclicFallbackChain instead of recursing forever.
func (s *RateService) RateToBase(ctx context.Context, tx portsrepo.Tx, ownerID, currencyID uuid.UUID, date time.Time) (decimal.Decimal, error) {
	return s.resolve(ctx, tx, ownerID, currencyID, date, make(map[uuid.UUID]struct{}))
}

func (s *RateService) resolve(ctx context.Context, tx portsrepo.Tx, ownerID, currencyID uuid.UUID, date time.Time, visiting map[uuid.UUID]struct{}) (decimal.Decimal, error) {
	if _, onPath := visiting[currencyID]; onPath {
		return decimal.Decimal{}, fmt.Errorf("%w: currency %s revisited during resolution", apperrors.ErrCyclicFallbackChain, currencyID)
	}
	visiting[currencyID] = struct{}{}
	defer delete(visiting, currencyID)

	currency, err := s.currencySvc.GetCurrencyByID(ctx, tx, ownerID, currencyID)
	if err != nil {
		return decimal.Decimal{}, err
	}
	if currency == nil {
		return decimal.Decimal{}, &apperrors.CurrencyNotFoundError{CurrencyID: currencyID}
	}
	if currency.IsBase {
		return decimal.NewFromInt(1), nil
	}

	left, right, err := s.datumSvc.GetNearestTwoDatums(ctx, tx, ownerID, currencyID, date)
	if err != nil {
		return decimal.Decimal{}, err
	}

	switch {
	case left != nil && right != nil:
		leftAnchor, err := s.datumAnchor(ctx, tx, ownerID, left, left.Date, visiting)
		if err != nil {
			return decimal.Decimal{}, err
		}
		rightAnchor, err := s.datumAnchor(ctx, tx, ownerID, right, right.Date, visiting)
		if err != nil {
			return decimal.Decimal{}, err
		}

		fullRange := decimal.NewFromInt(right.Date.UnixMilli() - left.Date.UnixMilli())
		elapsed := decimal.NewFromInt(date.UnixMilli() - left.Date.UnixMilli())

		interpolated, err := rates.TryLinearInterpolate(
			&rates.XY{X: decimal.Zero, Y: leftAnchor},
			&rates.XY{X: fullRange, Y: rightAnchor},
			elapsed,
		)
		if err != nil {
			return decimal.Decimal{}, err
		}
		if interpolated == nil {
			return s.fallbackRate(ctx, tx, ownerID, currency, date, visiting)
		}
		return *interpolated, nil

	case left != nil:
		// Single-sided bracket: the quote currency is resolved at the query
		// date rather than the datum's own date. Deliberate; see DESIGN.md
		// before changing this.
		return s.datumAnchor(ctx, tx, ownerID, left, date, visiting)

	default:
		return s.fallbackRate(ctx, tx, ownerID, currency, date, visiting)
	}
}

// datumAnchor converts a datum into a base-equivalent value: the rate of the
// datum's quote currency at the given date, times the datum amount.
func (s *RateService) datumAnchor(ctx context.Context, tx portsrepo.Tx, ownerID uuid.UUID, datum *domain.CurrencyRateDatum, date time.Time, visiting map[uuid.UUID]struct{}) (decimal.Decimal, error) {
	quoteRate, err := s.resolve(ctx, tx, ownerID, datum.RefAmountCurrencyID, date, visiting)
	if err != nil {
		return decimal.Decimal{}, err
	}
	return rates.MulStrChecked(quoteRate, datum.Amount)
}

// fallbackRate applies a currency's static fallback conversion recursively.
func (s *RateService) fallbackRate(ctx context.Context, tx portsrepo.Tx, ownerID uuid.UUID, currency *domain.Currency, date time.Time, visiting map[uuid.UUID]struct{}) (decimal.Decimal, error) {
	if currency.FallbackRateCurrencyID == nil || currency.FallbackRateAmount == nil {
		return decimal.Decimal{}, apperrors.NewDataAccessError("resolve fallback rate",
			fmt.Errorf("normal currency %s has no fallback rate", currency.ID))
	}

	referenceRate, err := s.resolve(ctx, tx, ownerID, *currency.FallbackRateCurrencyID, date, visiting)
	if err != nil {
		return decimal.Decimal{}, err
	}
	return rates.MulStrChecked(referenceRate, *currency.FallbackRateAmount)
}
