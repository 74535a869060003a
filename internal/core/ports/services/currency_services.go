package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/fintrackd/fintrack_backend/internal/core/domain"
	portsrepo "github.com/fintrackd/fintrack_backend/internal/core/ports/repositories"
	"github.com/fintrackd/fintrack_backend/internal/dto"
)

// CurrencyReaderSvc defines read operations for currency data. Reads consult
// the shared currency cache before the store and run inside the caller's
// transaction.
type CurrencyReaderSvc interface {
	// GetCurrencyByID retrieves one of the owner's currencies; (nil, nil) on miss.
	GetCurrencyByID(ctx context.Context, tx portsrepo.Tx, ownerID, currencyID uuid.UUID) (*domain.Currency, error)

	// GetBaseCurrency retrieves the owner's base currency; (nil, nil) when none exists.
	GetBaseCurrency(ctx context.Context, tx portsrepo.Tx, ownerID uuid.UUID) (*domain.Currency, error)

	// ListCurrencies retrieves all of the owner's currencies.
	ListCurrencies(ctx context.Context, tx portsrepo.Tx, ownerID uuid.UUID) ([]domain.Currency, error)

	// FindFirstUnknownCurrency checks ids in order and returns the first one
	// the owner does not have, or nil when all exist.
	FindFirstUnknownCurrency(ctx context.Context, tx portsrepo.Tx, ownerID uuid.UUID, ids []uuid.UUID) (*uuid.UUID, error)
}

// CurrencyWriterSvc defines write operations for currency data
type CurrencyWriterSvc interface {
	// CreateCurrency validates and persists a new currency, returning its id.
	CreateCurrency(ctx context.Context, tx portsrepo.Tx, req dto.CreateCurrencyRequest, ownerID uuid.UUID) (uuid.UUID, error)
}

// CurrencySvcFacade combines all currency-related service interfaces
type CurrencySvcFacade interface {
	CurrencyReaderSvc
	CurrencyWriterSvc
}
