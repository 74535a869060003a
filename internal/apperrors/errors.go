package apperrors

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrRepeatedBaseCurrency indicates the owner already has a base currency.
var ErrRepeatedBaseCurrency = errors.New("owner already has a base currency")

// ErrOverflowOrUnderflow indicates a decimal computation left the representable range.
var ErrOverflowOrUnderflow = errors.New("decimal overflow or underflow")

// ErrCyclicFallbackChain indicates a currency's fallback chain loops back on itself.
var ErrCyclicFallbackChain = errors.New("cyclic currency fallback chain")

// ErrTxFinished indicates a commit or rollback on an already-finished transaction.
var ErrTxFinished = errors.New("transaction already finished")

// CurrencyNotFoundError reports a currency id that does not exist for the owner.
type CurrencyNotFoundError struct {
	CurrencyID uuid.UUID
}

func (e *CurrencyNotFoundError) Error() string {
	return fmt.Sprintf("currency %s not found", e.CurrencyID)
}

func (e *CurrencyNotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// ReferencedCurrencyNotExistError reports a fallback reference to a missing currency.
type ReferencedCurrencyNotExistError struct {
	CurrencyID uuid.UUID
}

func (e *ReferencedCurrencyNotExistError) Error() string {
	return fmt.Sprintf("referenced currency %s does not exist", e.CurrencyID)
}

func (e *ReferencedCurrencyNotExistError) Is(target error) bool {
	return target == ErrValidation
}

// CyclicRefAmountCurrencyError reports a rate datum whose two currency references are identical.
type CyclicRefAmountCurrencyError struct {
	CurrencyID uuid.UUID
}

func (e *CyclicRefAmountCurrencyError) Error() string {
	return fmt.Sprintf("rate datum references currency %s on both sides of the rate", e.CurrencyID)
}

func (e *CyclicRefAmountCurrencyError) Is(target error) bool {
	return target == ErrValidation
}

// InvalidDecimalValueError reports a stored or submitted amount that is not a valid decimal.
type InvalidDecimalValueError struct {
	Raw string
}

func (e *InvalidDecimalValueError) Error() string {
	return fmt.Sprintf("invalid decimal value %q", e.Raw)
}

func (e *InvalidDecimalValueError) Is(target error) bool {
	return target == ErrValidation
}

// DataAccessError wraps a failure from the underlying store or transport.
type DataAccessError struct {
	Op  string
	Err error
}

func (e *DataAccessError) Error() string {
	return fmt.Sprintf("data access failure in %s: %v", e.Op, e.Err)
}

func (e *DataAccessError) Unwrap() error {
	return e.Err
}

// NewDataAccessError wraps err with the failing operation name.
func NewDataAccessError(op string, err error) error {
	return &DataAccessError{Op: op, Err: err}
}
