package services_test

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/fintrackd/fintrack_backend/internal/apperrors"
	"github.com/fintrackd/fintrack_backend/internal/cache"
	"github.com/fintrackd/fintrack_backend/internal/core/domain"
	portsrepo "github.com/fintrackd/fintrack_backend/internal/core/ports/repositories"
	"github.com/fintrackd/fintrack_backend/internal/core/services"
)

// stubCurrencyReader serves currencies straight from a map, standing in for
// the currency service so resolver tests can assemble arbitrary graphs.
type stubCurrencyReader struct {
	byID map[uuid.UUID]domain.Currency
}

func newStubCurrencyReader() *stubCurrencyReader {
	return &stubCurrencyReader{byID: make(map[uuid.UUID]domain.Currency)}
}

func (s *stubCurrencyReader) GetCurrencyByID(ctx context.Context, tx portsrepo.Tx, ownerID, currencyID uuid.UUID) (*domain.Currency, error) {
	c, ok := s.byID[currencyID]
	if !ok || c.OwnerID != ownerID {
		return nil, nil
	}
	return &c, nil
}

func (s *stubCurrencyReader) GetBaseCurrency(ctx context.Context, tx portsrepo.Tx, ownerID uuid.UUID) (*domain.Currency, error) {
	for _, c := range s.byID {
		if c.OwnerID == ownerID && c.IsBase {
			found := c
			return &found, nil
		}
	}
	return nil, nil
}

func (s *stubCurrencyReader) ListCurrencies(ctx context.Context, tx portsrepo.Tx, ownerID uuid.UUID) ([]domain.Currency, error) {
	out := []domain.Currency{}
	for _, c := range s.byID {
		if c.OwnerID == ownerID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *stubCurrencyReader) FindFirstUnknownCurrency(ctx context.Context, tx portsrepo.Tx, ownerID uuid.UUID, ids []uuid.UUID) (*uuid.UUID, error) {
	for _, id := range ids {
		if c, ok := s.byID[id]; !ok || c.OwnerID != ownerID {
			unknown := id
			return &unknown, nil
		}
	}
	return nil, nil
}

// fakeDatumRepo reproduces the store's nearest-two query over an in-memory
// slice: up to two datums with minimal absolute time distance, unordered.
type fakeDatumRepo struct {
	datums []domain.CurrencyRateDatum
}

func (r *fakeDatumRepo) SaveRateDatum(ctx context.Context, tx portsrepo.Tx, datum domain.CurrencyRateDatum) error {
	r.datums = append(r.datums, datum)
	return nil
}

func (r *fakeDatumRepo) FindNearestTwoDatums(ctx context.Context, tx portsrepo.Tx, ownerID, currencyID uuid.UUID, date time.Time) ([]domain.CurrencyRateDatum, error) {
	matched := []domain.CurrencyRateDatum{}
	for _, d := range r.datums {
		if d.OwnerID == ownerID && d.RefCurrencyID == currencyID {
			matched = append(matched, d)
		}
	}
	target := date.UnixMilli()
	sort.Slice(matched, func(i, j int) bool {
		di := absMillis(matched[i].Date.UnixMilli() - target)
		dj := absMillis(matched[j].Date.UnixMilli() - target)
		if di != dj {
			return di < dj
		}
		return matched[i].Date.Before(matched[j].Date)
	})
	if len(matched) > 2 {
		matched = matched[:2]
	}
	return matched, nil
}

func absMillis(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}

// --- Test Suite ---

type RateServiceTestSuite struct {
	suite.Suite
	currencies *stubCurrencyReader
	datumRepo  *fakeDatumRepo
	service    *services.RateService
	tx         *fakeTx
	ownerID    uuid.UUID
}

func (suite *RateServiceTestSuite) SetupTest() {
	suite.currencies = newStubCurrencyReader()
	suite.datumRepo = &fakeDatumRepo{}
	datumSvc := services.NewRateDatumService(suite.datumRepo, suite.currencies, cache.NewRateDatumCache(8))
	suite.service = services.NewRateService(suite.currencies, datumSvc)
	suite.tx = &fakeTx{}
	suite.ownerID = uuid.New()
}

func (suite *RateServiceTestSuite) addBase(name string) uuid.UUID {
	id := uuid.New()
	suite.currencies.byID[id] = domain.Currency{ID: id, OwnerID: suite.ownerID, Name: name, Ticker: name, IsBase: true}
	return id
}

func (suite *RateServiceTestSuite) addNormal(name, fallbackAmount string, fallbackCurrencyID uuid.UUID) uuid.UUID {
	id := uuid.New()
	suite.currencies.byID[id] = domain.Currency{
		ID:                     id,
		OwnerID:                suite.ownerID,
		Name:                   name,
		Ticker:                 name,
		FallbackRateAmount:     &fallbackAmount,
		FallbackRateCurrencyID: &fallbackCurrencyID,
	}
	return id
}

func (suite *RateServiceTestSuite) addDatum(currencyID, quoteCurrencyID uuid.UUID, amount string, date time.Time) {
	suite.datumRepo.datums = append(suite.datumRepo.datums, domain.CurrencyRateDatum{
		ID:                  uuid.New(),
		OwnerID:             suite.ownerID,
		RefCurrencyID:       currencyID,
		RefAmountCurrencyID: quoteCurrencyID,
		Amount:              amount,
		Date:                date,
	})
}

func (suite *RateServiceTestSuite) resolve(currencyID uuid.UUID, date time.Time) decimal.Decimal {
	rate, err := suite.service.RateToBase(context.Background(), suite.tx, suite.ownerID, currencyID, date)
	suite.Require().NoError(err)
	return rate
}

func (suite *RateServiceTestSuite) assertRate(currencyID uuid.UUID, date time.Time, expected string) {
	rate := suite.resolve(currencyID, date)
	suite.True(rate.Equal(decimal.RequireFromString(expected)),
		"expected %s at %s, got %s", expected, date.Format(time.RFC3339), rate.String())
}

func (suite *RateServiceTestSuite) TestRateToBase_BaseIsOne() {
	baseID := suite.addBase("HKD")
	suite.assertRate(baseID, time.Now().UTC(), "1")
}

func (suite *RateServiceTestSuite) TestRateToBase_UnknownCurrency() {
	suite.addBase("HKD")
	_, err := suite.service.RateToBase(context.Background(), suite.tx, suite.ownerID, uuid.New(), time.Now().UTC())

	var notFound *apperrors.CurrencyNotFoundError
	suite.Require().ErrorAs(err, &notFound)
}

func (suite *RateServiceTestSuite) TestRateToBase_FallbackOnly() {
	baseID := suite.addBase("HKD")
	eurID := suite.addNormal("EUR", "5", baseID)

	// No datums at all: the static fallback prices the currency at any date.
	suite.assertRate(eurID, time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC), "5")
	suite.assertRate(eurID, time.Date(2030, 6, 15, 12, 0, 0, 0, time.UTC), "5")
}

func (suite *RateServiceTestSuite) TestRateToBase_InterpolatedSeries() {
	baseID := suite.addBase("HKD")
	eurID := suite.addNormal("EUR", "5", baseID)

	at := func(h, m int) time.Time { return time.Date(2000, 1, 1, h, m, 0, 0, time.UTC) }
	suite.addDatum(eurID, baseID, "10", at(1, 0))
	suite.addDatum(eurID, baseID, "12", at(1, 1))
	suite.addDatum(eurID, baseID, "14", at(1, 2))
	suite.addDatum(eurID, baseID, "16", at(1, 3))

	// Exact datum dates reproduce the observations.
	suite.assertRate(eurID, at(1, 0), "10")
	suite.assertRate(eurID, at(1, 1), "12")
	suite.assertRate(eurID, at(1, 2), "14")
	suite.assertRate(eurID, at(1, 3), "16")

	// Halfway between observations interpolates linearly.
	suite.assertRate(eurID, time.Date(2000, 1, 1, 1, 2, 30, 0, time.UTC), "15")

	// Before the first observation the static fallback applies.
	suite.assertRate(eurID, at(0, 59), "5")

	// After the last observation the series clamps to its final value.
	suite.assertRate(eurID, at(1, 4), "16")
}

func (suite *RateServiceTestSuite) TestRateToBase_NestedDatumComposition() {
	baseID := suite.addBase("HKD")
	eurID := suite.addNormal("EUR", "5", baseID)
	gbpID := suite.addNormal("GBP", "1", eurID)

	at := func(h, m int) time.Time { return time.Date(2000, 1, 1, h, m, 0, 0, time.UTC) }
	suite.addDatum(eurID, baseID, "10", at(1, 0))
	suite.addDatum(eurID, baseID, "12", at(1, 1))

	// GBP is observed in EUR; its base rate composes through EUR's own rate.
	suite.addDatum(gbpID, eurID, "2", at(1, 1))

	suite.assertRate(gbpID, at(1, 1), "24")
}

func (suite *RateServiceTestSuite) TestRateToBase_LeftDatumOnlyUsesQueryDate() {
	baseID := suite.addBase("HKD")
	eurID := suite.addNormal("EUR", "1", baseID)
	gbpID := suite.addNormal("GBP", "1", baseID)

	t0 := time.Date(2000, 1, 1, 1, 0, 0, 0, time.UTC)
	t1 := time.Date(2000, 1, 1, 2, 0, 0, 0, time.UTC)

	// EUR doubles between t0 and t1.
	suite.addDatum(eurID, baseID, "2", t0)
	suite.addDatum(eurID, baseID, "4", t1)

	// GBP has a single observation at t0, quoted in EUR. Querying at t1
	// resolves the EUR leg at the query date, not the observation date.
	suite.addDatum(gbpID, eurID, "10", t0)

	suite.assertRate(gbpID, t1, "40")
	suite.assertRate(gbpID, t0, "20")
}

func (suite *RateServiceTestSuite) TestRateToBase_CyclicFallback() {
	suite.addBase("HKD")
	aID := uuid.New()
	bID := uuid.New()
	amount := "2"
	suite.currencies.byID[aID] = domain.Currency{
		ID: aID, OwnerID: suite.ownerID, Name: "A", Ticker: "A",
		FallbackRateAmount: &amount, FallbackRateCurrencyID: &bID,
	}
	suite.currencies.byID[bID] = domain.Currency{
		ID: bID, OwnerID: suite.ownerID, Name: "B", Ticker: "B",
		FallbackRateAmount: &amount, FallbackRateCurrencyID: &aID,
	}

	_, err := suite.service.RateToBase(context.Background(), suite.tx, suite.ownerID, aID, time.Now().UTC())
	suite.ErrorIs(err, apperrors.ErrCyclicFallbackChain)
}

// TestRateToBase_MultiCurrencyGraph exercises a four-currency graph where
// datums quote currencies against each other, not just the base: BTC is
// observed in USD, HKD and JPY across four dates, while USD and JPY move
// against HKD at the same time.
func (suite *RateServiceTestSuite) TestRateToBase_MultiCurrencyGraph() {
	hkdID := suite.addBase("HKD")
	usdID := suite.addNormal("USD", "7.8", hkdID)
	btcID := suite.addNormal("BTC", "20000", usdID)
	jpyID := suite.addNormal("JPY", "0.7", hkdID)

	epoch := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	at := func(v float64) time.Time {
		return epoch.Add(time.Duration(v*100_000) * time.Millisecond)
	}

	suite.addDatum(btcID, usdID, "50000", at(0))
	suite.addDatum(btcID, usdID, "60000", at(1))
	suite.addDatum(btcID, hkdID, "390000", at(2))
	suite.addDatum(btcID, jpyID, "600000", at(3))

	suite.addDatum(usdID, hkdID, "7.8", at(0))
	suite.addDatum(usdID, hkdID, "7.7", at(1))
	suite.addDatum(usdID, jpyID, "147.22", at(2))
	suite.addDatum(usdID, hkdID, "7.7", at(3))

	suite.addDatum(jpyID, hkdID, "0.06", at(0))
	suite.addDatum(jpyID, hkdID, "0.05", at(1))
	suite.addDatum(jpyID, hkdID, "0.04", at(2))
	suite.addDatum(jpyID, hkdID, "0.1", at(3))

	expected := []struct {
		currencyID uuid.UUID
		v          float64
		rate       string
	}{
		// Before the first observation the fallback chain applies:
		// BTC = 20000 USD, USD = 7.8 HKD, JPY = 0.7 HKD.
		{btcID, -0.5, "156000"},
		{usdID, -0.5, "7.8"},
		{jpyID, -0.5, "0.7"},

		{btcID, 0, "390000"},
		{btcID, 0.5, "426000"},
		{btcID, 1, "462000"},
		{btcID, 1.5, "426000"},
		{btcID, 2, "390000"},
		{btcID, 2.5, "225000"},
		{btcID, 3, "60000"},
		{btcID, 3.5, "60000"},

		{usdID, 0, "7.8"},
		{usdID, 0.5, "7.75"},
		{usdID, 1, "7.7"},
		{usdID, 1.5, "6.7944"},
		{usdID, 2, "5.8888"},
		{usdID, 2.5, "6.7944"},
		{usdID, 3, "7.7"},
		{usdID, 3.5, "7.7"},

		{jpyID, 0, "0.06"},
		{jpyID, 0.5, "0.055"},
		{jpyID, 1, "0.05"},
		{jpyID, 1.5, "0.045"},
		{jpyID, 2, "0.04"},
		{jpyID, 2.5, "0.07"},
		{jpyID, 3, "0.1"},
		{jpyID, 3.5, "0.1"},
	}

	for _, tc := range expected {
		suite.assertRate(tc.currencyID, at(tc.v), tc.rate)
	}
}

func (suite *RateServiceTestSuite) TestRateToBase_InterpolationStaysWithinAnchors() {
	baseID := suite.addBase("HKD")
	eurID := suite.addNormal("EUR", "1", baseID)

	t0 := time.Date(2000, 1, 1, 1, 0, 0, 0, time.UTC)
	t1 := t0.Add(time.Minute)
	suite.addDatum(eurID, baseID, "10", t0)
	suite.addDatum(eurID, baseID, "16", t1)

	low := decimal.RequireFromString("10")
	high := decimal.RequireFromString("16")
	for offset := time.Duration(0); offset <= time.Minute; offset += 5 * time.Second {
		rate := suite.resolve(eurID, t0.Add(offset))
		suite.True(rate.GreaterThanOrEqual(low) && rate.LessThanOrEqual(high),
			"rate %s at +%s escapes the anchor range", rate.String(), offset)
	}
}

func TestRateServiceTestSuite(t *testing.T) {
	suite.Run(t, new(RateServiceTestSuite))
}
