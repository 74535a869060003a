package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/fintrackd/fintrack_backend/internal/apperrors"
	"github.com/fintrackd/fintrack_backend/internal/core/domain"
	portsrepo "github.com/fintrackd/fintrack_backend/internal/core/ports/repositories"
	"github.com/fintrackd/fintrack_backend/internal/models"
	"github.com/fintrackd/fintrack_backend/internal/utils/mapping"
)

// uniqueViolation is the Postgres error code for unique constraint failures.
const uniqueViolation = "23505"

type PgxCurrencyRepository struct{}

// NewPgxCurrencyRepository creates a new repository for currency data.
func NewPgxCurrencyRepository() portsrepo.CurrencyRepositoryFacade {
	return &PgxCurrencyRepository{}
}

// Ensure implementation matches interface
var _ portsrepo.CurrencyRepositoryFacade = (*PgxCurrencyRepository)(nil)

const currencyColumns = `id, owner_id, name, ticker, is_base, fallback_rate_amount, fallback_rate_currency_id, created_at`

// SaveCurrency inserts a new currency row. The owner-scoped unique indexes on
// name, ticker and the single base currency back the validation done in the
// service layer.
func (r *PgxCurrencyRepository) SaveCurrency(ctx context.Context, tx portsrepo.Tx, currency domain.Currency) error {
	q, err := querierFrom(tx)
	if err != nil {
		return err
	}
	modelCurr := mapping.ToModelCurrency(currency)

	query := `
		INSERT INTO currencies (id, owner_id, name, ticker, is_base, fallback_rate_amount, fallback_rate_currency_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`

	_, err = q.Exec(ctx, query,
		modelCurr.ID,
		modelCurr.OwnerID,
		modelCurr.Name,
		modelCurr.Ticker,
		modelCurr.IsBase,
		modelCurr.FallbackRateAmount,
		modelCurr.FallbackRateCurrencyID,
		modelCurr.CreatedAt,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			if pgErr.ConstraintName == "uq_currencies_owner_base" {
				return apperrors.ErrRepeatedBaseCurrency
			}
			return fmt.Errorf("%w: currency %q/%q", apperrors.ErrDuplicate, modelCurr.Name, modelCurr.Ticker)
		}
		return fmt.Errorf("failed to save currency %s: %w", modelCurr.ID, err)
	}
	return nil
}

// FindCurrencyByID retrieves one of the owner's currencies by id.
func (r *PgxCurrencyRepository) FindCurrencyByID(ctx context.Context, tx portsrepo.Tx, ownerID, currencyID uuid.UUID) (*domain.Currency, error) {
	q, err := querierFrom(tx)
	if err != nil {
		return nil, err
	}
	query := `
		SELECT ` + currencyColumns + `
		FROM currencies
		WHERE owner_id = $1 AND id = $2;
	`
	return r.findOne(ctx, q, query, ownerID, currencyID)
}

// FindBaseCurrency retrieves the owner's base currency.
func (r *PgxCurrencyRepository) FindBaseCurrency(ctx context.Context, tx portsrepo.Tx, ownerID uuid.UUID) (*domain.Currency, error) {
	q, err := querierFrom(tx)
	if err != nil {
		return nil, err
	}
	query := `
		SELECT ` + currencyColumns + `
		FROM currencies
		WHERE owner_id = $1 AND is_base;
	`
	return r.findOne(ctx, q, query, ownerID)
}

func (r *PgxCurrencyRepository) findOne(ctx context.Context, q Querier, query string, args ...any) (*domain.Currency, error) {
	var modelCurr models.Currency
	err := q.QueryRow(ctx, query, args...).Scan(
		&modelCurr.ID,
		&modelCurr.OwnerID,
		&modelCurr.Name,
		&modelCurr.Ticker,
		&modelCurr.IsBase,
		&modelCurr.FallbackRateAmount,
		&modelCurr.FallbackRateCurrencyID,
		&modelCurr.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find currency: %w", err)
	}

	domainCurr := mapping.ToDomainCurrency(modelCurr)
	return &domainCurr, nil
}

// ListCurrencies retrieves all of the owner's currencies.
func (r *PgxCurrencyRepository) ListCurrencies(ctx context.Context, tx portsrepo.Tx, ownerID uuid.UUID) ([]domain.Currency, error) {
	q, err := querierFrom(tx)
	if err != nil {
		return nil, err
	}
	query := `
		SELECT ` + currencyColumns + `
		FROM currencies
		WHERE owner_id = $1
		ORDER BY created_at, id;
	`
	rows, err := q.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query currencies: %w", err)
	}
	defer rows.Close()

	modelCurrencies, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Currency, error) {
		var currency models.Currency
		err := row.Scan(
			&currency.ID,
			&currency.OwnerID,
			&currency.Name,
			&currency.Ticker,
			&currency.IsBase,
			&currency.FallbackRateAmount,
			&currency.FallbackRateCurrencyID,
			&currency.CreatedAt,
		)
		return currency, err
	})

	if err != nil {
		return nil, fmt.Errorf("failed to scan currencies: %w", err)
	}

	return mapping.ToDomainCurrencySlice(modelCurrencies), nil
}

// CurrencyNameExists reports whether the owner already has a currency with name.
func (r *PgxCurrencyRepository) CurrencyNameExists(ctx context.Context, tx portsrepo.Tx, ownerID uuid.UUID, name string) (bool, error) {
	return r.exists(ctx, tx, `SELECT EXISTS (SELECT 1 FROM currencies WHERE owner_id = $1 AND name = $2);`, ownerID, name)
}

// CurrencyTickerExists reports whether the owner already has a currency with ticker.
func (r *PgxCurrencyRepository) CurrencyTickerExists(ctx context.Context, tx portsrepo.Tx, ownerID uuid.UUID, ticker string) (bool, error) {
	return r.exists(ctx, tx, `SELECT EXISTS (SELECT 1 FROM currencies WHERE owner_id = $1 AND ticker = $2);`, ownerID, ticker)
}

func (r *PgxCurrencyRepository) exists(ctx context.Context, tx portsrepo.Tx, query string, args ...any) (bool, error) {
	q, err := querierFrom(tx)
	if err != nil {
		return false, err
	}
	var found bool
	if err := q.QueryRow(ctx, query, args...).Scan(&found); err != nil {
		return false, fmt.Errorf("failed to run existence check: %w", err)
	}
	return found, nil
}
