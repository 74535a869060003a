package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/fintrackd/fintrack_backend/internal/core/domain"
)

// CurrencyReader defines read operations for currency data. All operations
// are owner-scoped and run inside the supplied transaction.
type CurrencyReader interface {
	// FindCurrencyByID retrieves one currency; apperrors.ErrNotFound on miss.
	FindCurrencyByID(ctx context.Context, tx Tx, ownerID, currencyID uuid.UUID) (*domain.Currency, error)

	// FindBaseCurrency retrieves the owner's base currency; apperrors.ErrNotFound on miss.
	FindBaseCurrency(ctx context.Context, tx Tx, ownerID uuid.UUID) (*domain.Currency, error)

	// ListCurrencies retrieves all of the owner's currencies.
	ListCurrencies(ctx context.Context, tx Tx, ownerID uuid.UUID) ([]domain.Currency, error)

	// CurrencyNameExists reports whether the owner already has a currency with name.
	CurrencyNameExists(ctx context.Context, tx Tx, ownerID uuid.UUID, name string) (bool, error)

	// CurrencyTickerExists reports whether the owner already has a currency with ticker.
	CurrencyTickerExists(ctx context.Context, tx Tx, ownerID uuid.UUID, ticker string) (bool, error)
}

// CurrencyWriter defines write operations for currency data
type CurrencyWriter interface {
	// SaveCurrency persists a new currency row.
	SaveCurrency(ctx context.Context, tx Tx, currency domain.Currency) error
}

// CurrencyRepositoryFacade combines all currency-related repository interfaces
type CurrencyRepositoryFacade interface {
	CurrencyReader
	CurrencyWriter
}
