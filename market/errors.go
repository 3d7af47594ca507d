package market

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidSymbol        = errors.New("invalid symbol")
	ErrInvalidVariant       = errors.New("invalid stock type")
	ErrMissingFixedDividend = errors.New("preferred stock requires a fixed dividend")
	ErrInvalidFixedDividend = errors.New("invalid fixed dividend")
	ErrInvalidDividend      = errors.New("invalid last dividend")
	ErrInvalidParValue      = errors.New("invalid par value")
	ErrInvalidTrade         = errors.New("invalid trade")
	ErrUnknownSymbol        = errors.New("unknown symbol")
	ErrDuplicateSymbol      = errors.New("symbol already listed")
)

// ValidationError reports malformed input rejected before any state was
// touched. Err is one of the package sentinels.
type ValidationError struct {
	Op    string
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Field, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

func invalid(op, field string, err error) error {
	return &ValidationError{Op: op, Field: field, Err: err}
}

// DuplicateSymbolError is returned when a symbol is listed twice.
type DuplicateSymbolError struct {
	Symbol string
}

func (e *DuplicateSymbolError) Error() string {
	return fmt.Sprintf("list %q: %v", e.Symbol, ErrDuplicateSymbol)
}

func (e *DuplicateSymbolError) Unwrap() error { return ErrDuplicateSymbol }
