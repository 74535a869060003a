package pgsql

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fintrackd/fintrack_backend/internal/apperrors"
	"github.com/fintrackd/fintrack_backend/internal/core/domain"
)

var currencyCols = []string{
	"id", "owner_id", "name", "ticker", "is_base",
	"fallback_rate_amount", "fallback_rate_currency_id", "created_at",
}

func sampleCurrency(ownerID uuid.UUID) domain.Currency {
	amount := "7.8"
	fallbackID := uuid.New()
	return domain.Currency{
		ID:                     uuid.New(),
		OwnerID:                ownerID,
		Name:                   "US Dollar",
		Ticker:                 "USD",
		IsBase:                 false,
		FallbackRateAmount:     &amount,
		FallbackRateCurrencyID: &fallbackID,
		CreatedAt:              time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestSaveCurrency_Success(t *testing.T) {
	mock, tx := newMockTx(t)
	repo := NewPgxCurrencyRepository()
	curr := sampleCurrency(uuid.New())

	mock.ExpectExec("INSERT INTO currencies").
		WithArgs(curr.ID, curr.OwnerID, curr.Name, curr.Ticker, curr.IsBase,
			curr.FallbackRateAmount, curr.FallbackRateCurrencyID, curr.CreatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := repo.SaveCurrency(context.Background(), tx, curr)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveCurrency_SecondBaseViolation(t *testing.T) {
	mock, tx := newMockTx(t)
	repo := NewPgxCurrencyRepository()
	curr := sampleCurrency(uuid.New())
	curr.IsBase = true
	curr.FallbackRateAmount = nil
	curr.FallbackRateCurrencyID = nil

	mock.ExpectExec("INSERT INTO currencies").
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "uq_currencies_owner_base"})

	err := repo.SaveCurrency(context.Background(), tx, curr)
	assert.ErrorIs(t, err, apperrors.ErrRepeatedBaseCurrency)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveCurrency_DuplicateNameViolation(t *testing.T) {
	mock, tx := newMockTx(t)
	repo := NewPgxCurrencyRepository()
	curr := sampleCurrency(uuid.New())

	mock.ExpectExec("INSERT INTO currencies").
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "uq_currencies_owner_name"})

	err := repo.SaveCurrency(context.Background(), tx, curr)
	assert.ErrorIs(t, err, apperrors.ErrDuplicate)
	assert.NotErrorIs(t, err, apperrors.ErrRepeatedBaseCurrency)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindCurrencyByID_Success(t *testing.T) {
	mock, tx := newMockTx(t)
	repo := NewPgxCurrencyRepository()
	want := sampleCurrency(uuid.New())

	mock.ExpectQuery("SELECT (.+) FROM currencies").
		WithArgs(want.OwnerID, want.ID).
		WillReturnRows(pgxmock.NewRows(currencyCols).AddRow(
			want.ID, want.OwnerID, want.Name, want.Ticker, want.IsBase,
			want.FallbackRateAmount, want.FallbackRateCurrencyID, want.CreatedAt,
		))

	got, err := repo.FindCurrencyByID(context.Background(), tx, want.OwnerID, want.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, want, *got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindCurrencyByID_NotFound(t *testing.T) {
	mock, tx := newMockTx(t)
	repo := NewPgxCurrencyRepository()
	ownerID, currencyID := uuid.New(), uuid.New()

	mock.ExpectQuery("SELECT (.+) FROM currencies").
		WithArgs(ownerID, currencyID).
		WillReturnError(pgx.ErrNoRows)

	got, err := repo.FindCurrencyByID(context.Background(), tx, ownerID, currencyID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.Nil(t, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindBaseCurrency_Success(t *testing.T) {
	mock, tx := newMockTx(t)
	repo := NewPgxCurrencyRepository()
	ownerID := uuid.New()
	baseID := uuid.New()
	createdAt := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	mock.ExpectQuery("SELECT (.+) FROM currencies").
		WithArgs(ownerID).
		WillReturnRows(pgxmock.NewRows(currencyCols).AddRow(
			baseID, ownerID, "Hong Kong Dollar", "HKD", true,
			(*string)(nil), (*uuid.UUID)(nil), createdAt,
		))

	got, err := repo.FindBaseCurrency(context.Background(), tx, ownerID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, baseID, got.ID)
	assert.True(t, got.IsBase)
	assert.Nil(t, got.FallbackRateAmount)
	assert.Nil(t, got.FallbackRateCurrencyID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindBaseCurrency_NotFound(t *testing.T) {
	mock, tx := newMockTx(t)
	repo := NewPgxCurrencyRepository()
	ownerID := uuid.New()

	mock.ExpectQuery("SELECT (.+) FROM currencies").
		WithArgs(ownerID).
		WillReturnError(pgx.ErrNoRows)

	got, err := repo.FindBaseCurrency(context.Background(), tx, ownerID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.Nil(t, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListCurrencies_Success(t *testing.T) {
	mock, tx := newMockTx(t)
	repo := NewPgxCurrencyRepository()
	ownerID := uuid.New()
	base := sampleCurrency(ownerID)
	base.Name, base.Ticker, base.IsBase = "Hong Kong Dollar", "HKD", true
	base.FallbackRateAmount, base.FallbackRateCurrencyID = nil, nil
	usd := sampleCurrency(ownerID)

	mock.ExpectQuery("SELECT (.+) FROM currencies").
		WithArgs(ownerID).
		WillReturnRows(pgxmock.NewRows(currencyCols).
			AddRow(base.ID, base.OwnerID, base.Name, base.Ticker, base.IsBase,
				(*string)(nil), (*uuid.UUID)(nil), base.CreatedAt).
			AddRow(usd.ID, usd.OwnerID, usd.Name, usd.Ticker, usd.IsBase,
				usd.FallbackRateAmount, usd.FallbackRateCurrencyID, usd.CreatedAt))

	got, err := repo.ListCurrencies(context.Background(), tx, ownerID)
	require.NoError(t, err)
	assert.Equal(t, []domain.Currency{base, usd}, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCurrencyNameExists(t *testing.T) {
	mock, tx := newMockTx(t)
	repo := NewPgxCurrencyRepository()
	ownerID := uuid.New()

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs(ownerID, "US Dollar").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))

	found, err := repo.CurrencyNameExists(context.Background(), tx, ownerID, "US Dollar")
	require.NoError(t, err)
	assert.True(t, found)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCurrencyTickerExists(t *testing.T) {
	mock, tx := newMockTx(t)
	repo := NewPgxCurrencyRepository()
	ownerID := uuid.New()

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs(ownerID, "EUR").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))

	found, err := repo.CurrencyTickerExists(context.Background(), tx, ownerID, "EUR")
	require.NoError(t, err)
	assert.False(t, found)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveCurrency_FinishedTxRejected(t *testing.T) {
	mock, tx := newMockTx(t)
	repo := NewPgxCurrencyRepository()

	mock.ExpectCommit()
	require.NoError(t, tx.Commit(context.Background()))

	err := repo.SaveCurrency(context.Background(), tx, sampleCurrency(uuid.New()))
	assert.ErrorIs(t, err, apperrors.ErrTxFinished)
	assert.NoError(t, mock.ExpectationsWereMet())
}
