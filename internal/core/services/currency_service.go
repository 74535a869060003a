package services

import (
	"context"
	"errors"
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
)

// CurrencyService provides owner-scoped currency CRUD over the repository and
// the shared write-through currency cache.
type CurrencyService struct {
	currencyRepo  portsrepo.CurrencyRepositoryFacade
	currencyCache *cache.CurrencyCache
}

// NewCurrencyService creates a new CurrencyService.
func NewCurrencyService(currencyRepo portsrepo.CurrencyRepositoryFacade, currencyCache *cache.CurrencyCache) *CurrencyService {
	return &CurrencyService{
		currencyRepo:  currencyRepo,
		currencyCache: currencyCache,
	}
}

var _ portssvc.CurrencySvcFacade = (*CurrencyService)(nil)

// CreateCurrency validates and persists a new currency for the owner.
//
// All validation runs before the insert: the fallback pair must be both
// present (normal) or both absent (base), the amount must parse as a decimal,
// name and ticker must be new to the owner, a base currency must not already
// exist (cache first, then store), and a normal currency's fallback reference
// must resolve. Cache registration is queued as a post-commit callback so the
// shared cache never sees an uncommitted row.
func (s *CurrencyService) CreateCurrency(ctx context.Context, tx portsrepo.Tx, req dto.CreateCurrencyRequest, ownerID uuid.UUID) (uuid.UUID, error) {
	isBase := req.FallbackRateAmount == nil && req.FallbackRateCurrencyID == nil
	if !isBase && (req.FallbackRateAmount == nil || req.FallbackRateCurrencyID == nil) {
		return uuid.Nil, fmt.Errorf("%w: fallbackRateAmount and fallbackRateCurrencyId must be given together", apperrors.ErrValidation)
	}

	var fallbackAmount *string
	var fallbackCurrencyID *uuid.UUID
	if !isBase {
		parsed, err := decimal.NewFromString(*req.FallbackRateAmount)
		if err != nil {
			return uuid.Nil, &apperrors.InvalidDecimalValueError{Raw: *req.FallbackRateAmount}
		}
		normalized := parsed.String()
		fallbackAmount = &normalized

		refID, err := uuid.Parse(*req.FallbackRateCurrencyID)
		if err != nil {
			return uuid.Nil, fmt.Errorf("%w: fallbackRateCurrencyId is not a valid uuid", apperrors.ErrValidation)
		}
		fallbackCurrencyID = &refID
	}

	nameTaken, err := s.currencyRepo.CurrencyNameExists(ctx, tx, ownerID, req.Name)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to check currency name: %w", err)
	}
	if nameTaken {
		return uuid.Nil, fmt.Errorf("%w: currency name %q", apperrors.ErrDuplicate, req.Name)
	}

	tickerTaken, err := s.currencyRepo.CurrencyTickerExists(ctx, tx, ownerID, req.Ticker)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to check currency ticker: %w", err)
	}
	if tickerTaken {
		return uuid.Nil, fmt.Errorf("%w: currency ticker %q", apperrors.ErrDuplicate, req.Ticker)
	}

	if isBase {
		// Cheap cache probe first, then the authoritative owner-filtered query.
		if existing := s.currencyCache.FindBase(ownerID); existing != nil {
			return uuid.Nil, apperrors.ErrRepeatedBaseCurrency
		}
		existing, err := s.GetBaseCurrency(ctx, tx, ownerID)
		if err != nil {
			return uuid.Nil, err
		}
		if existing != nil {
			return uuid.Nil, apperrors.ErrRepeatedBaseCurrency
		}
	} else {
		referenced, err := s.GetCurrencyByID(ctx, tx, ownerID, *fallbackCurrencyID)
		if err != nil {
			return uuid.Nil, err
		}
		if referenced == nil {
			return uuid.Nil, &apperrors.ReferencedCurrencyNotExistError{CurrencyID: *fallbackCurrencyID}
		}
	}

	currency := domain.Currency{
		ID:                     uuid.New(),
		OwnerID:                ownerID,
		Name:                   req.Name,
		Ticker:                 req.Ticker,
		IsBase:                 isBase,
		FallbackRateAmount:     fallbackAmount,
		FallbackRateCurrencyID: fallbackCurrencyID,
		CreatedAt:              time.Now().UTC(),
	}

	if err := s.currencyRepo.SaveCurrency(ctx, tx, currency); err != nil {
		return uuid.Nil, fmt.Errorf("failed to create currency in service: %w", err)
	}

	tx.QueueCallback(func() error {
		s.currencyCache.Register(currency)
		return nil
	})

	return currency.ID, nil
}

// GetCurrencyByID retrieves one of the owner's currencies, consulting the
// cache before the store and registering store hits back into the cache.
// A miss is (nil, nil).
func (s *CurrencyService) GetCurrencyByID(ctx context.Context, tx portsrepo.Tx, ownerID, currencyID uuid.UUID) (*domain.Currency, error) {
	if cached := s.currencyCache.FindByID(ownerID, currencyID); cached != nil {
		return cached, nil
	}

	currency, err := s.currencyRepo.FindCurrencyByID(ctx, tx, ownerID, currencyID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get currency by id in service: %w", err)
	}

	s.currencyCache.Register(*currency)
	return currency, nil
}

// GetBaseCurrency retrieves the owner's base currency from the store,
// registering it into the cache on a hit. (nil, nil) when none exists.
func (s *CurrencyService) GetBaseCurrency(ctx context.Context, tx portsrepo.Tx, ownerID uuid.UUID) (*domain.Currency, error) {
	currency, err := s.currencyRepo.FindBaseCurrency(ctx, tx, ownerID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get base currency in service: %w", err)
	}

	s.currencyCache.Register(*currency)
	return currency, nil
}

// ListCurrencies retrieves all of the owner's currencies.
func (s *CurrencyService) ListCurrencies(ctx context.Context, tx portsrepo.Tx, ownerID uuid.UUID) ([]domain.Currency, error) {
	currencies, err := s.currencyRepo.ListCurrencies(ctx, tx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list currencies in service: %w", err)
	}
	// Return empty slice if no currencies found, not nil
	if currencies == nil {
		return []domain.Currency{}, nil
	}
	return currencies, nil
}

// FindFirstUnknownCurrency checks ids in order, short-circuiting on the first
// currency the owner does not have.
func (s *CurrencyService) FindFirstUnknownCurrency(ctx context.Context, tx portsrepo.Tx, ownerID uuid.UUID, ids []uuid.UUID) (*uuid.UUID, error) {
	for _, id := range ids {
		currency, err := s.GetCurrencyByID(ctx, tx, ownerID, id)
		if err != nil {
			return nil, err
		}
		if currency == nil {
			unknown := id
			return &unknown, nil
		}
	}
	return nil, nil
}
