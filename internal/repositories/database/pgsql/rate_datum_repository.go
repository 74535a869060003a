package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/fintrackd/fintrack_backend/internal/apperrors"
	"github.com/fintrackd/fintrack_backend/internal/core/domain"
	portsrepo "github.com/fintrackd/fintrack_backend/internal/core/ports/repositories"
	"github.com/fintrackd/fintrack_backend/internal/models"
	"github.com/fintrackd/fintrack_backend/internal/utils/mapping"
)

type PgxRateDatumRepository struct{}

// NewPgxRateDatumRepository creates a new repository for currency rate datums.
func NewPgxRateDatumRepository() portsrepo.RateDatumRepositoryFacade {
	return &PgxRateDatumRepository{}
}

// Ensure implementation matches interface
var _ portsrepo.RateDatumRepositoryFacade = (*PgxRateDatumRepository)(nil)

// SaveRateDatum inserts a new rate observation. The unique index on
// (owner_id, ref_currency_id, date) keeps at most one datum per slot.
func (r *PgxRateDatumRepository) SaveRateDatum(ctx context.Context, tx portsrepo.Tx, datum domain.CurrencyRateDatum) error {
	q, err := querierFrom(tx)
	if err != nil {
		return err
	}
	modelDatum := mapping.ToModelRateDatum(datum)

	query := `
		INSERT INTO currency_rate_datums (id, owner_id, ref_currency_id, ref_amount_currency_id, amount, date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`

	_, err = q.Exec(ctx, query,
		modelDatum.ID,
		modelDatum.OwnerID,
		modelDatum.RefCurrencyID,
		modelDatum.RefAmountCurrencyID,
		modelDatum.Amount,
		modelDatum.Date,
		modelDatum.CreatedAt,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return fmt.Errorf("%w: rate datum for currency %s at %s", apperrors.ErrDuplicate, modelDatum.RefCurrencyID, modelDatum.Date)
		}
		return fmt.Errorf("failed to save rate datum %s: %w", modelDatum.ID, err)
	}
	return nil
}

// FindNearestTwoDatums retrieves the two datums for (owner, currency) with
// minimal absolute time distance to date. The returned slice is unordered.
func (r *PgxRateDatumRepository) FindNearestTwoDatums(ctx context.Context, tx portsrepo.Tx, ownerID, currencyID uuid.UUID, date time.Time) ([]domain.CurrencyRateDatum, error) {
	q, err := querierFrom(tx)
	if err != nil {
		return nil, err
	}
	query := `
		SELECT id, owner_id, ref_currency_id, ref_amount_currency_id, amount, date, created_at
		FROM currency_rate_datums
		WHERE owner_id = $1 AND ref_currency_id = $2
		ORDER BY abs(extract(epoch from (date - $3::timestamptz))) ASC
		LIMIT 2;
	`
	rows, err := q.Query(ctx, query, ownerID, currencyID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to query nearest rate datums: %w", err)
	}
	defer rows.Close()

	modelDatums, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.CurrencyRateDatum, error) {
		var datum models.CurrencyRateDatum
		err := row.Scan(
			&datum.ID,
			&datum.OwnerID,
			&datum.RefCurrencyID,
			&datum.RefAmountCurrencyID,
			&datum.Amount,
			&datum.Date,
			&datum.CreatedAt,
		)
		return datum, err
	})

	if err != nil {
		return nil, fmt.Errorf("failed to scan nearest rate datums: %w", err)
	}

	return mapping.ToDomainRateDatumSlice(modelDatums), nil
}
