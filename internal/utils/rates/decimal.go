package rates

import (
	"github.com/shopspring/decimal"

	"github.com/fintrackd/fintrack_backend/internal/apperrors"
)

// maxCoefficientDigits caps the coefficient size of a checked multiplication.
// shopspring decimals grow without bound, so a runaway recursive product is
// reported instead of silently ballooning.
const maxCoefficientDigits = 57

// ParseDecimal parses a stored decimal string, reporting the raw value on failure.
func ParseDecimal(raw string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Decimal{}, &apperrors.InvalidDecimalValueError{Raw: raw}
	}
	return d, nil
}

// MulChecked multiplies a and b, failing with ErrOverflowOrUnderflow when the
// product leaves the supported range.
func MulChecked(a, b decimal.Decimal) (decimal.Decimal, error) {
	product := a.Mul(b)
	if product.NumDigits() > maxCoefficientDigits {
		return decimal.Decimal{}, apperrors.ErrOverflowOrUnderflow
	}
	return product, nil
}

// MulStrChecked multiplies a by the decimal encoded in raw with checked arithmetic.
func MulStrChecked(a decimal.Decimal, raw string) (decimal.Decimal, error) {
	b, err := ParseDecimal(raw)
	if err != nil {
		return decimal.Decimal{}, err
	}
	return MulChecked(a, b)
}
