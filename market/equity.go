package market

import (
	"fmt"
	"math"
	"strings"
)

// Variant tags an equity as common or preferred stock.
type Variant string

const (
	Common    Variant = "Common"
	Preferred Variant = "Preferred"
)

func (v Variant) Valid() bool {
	return v == Common || v == Preferred
}

func (v Variant) String() string { return string(v) }

// ParseVariant accepts "Common" or "Preferred", ignoring case.
func ParseVariant(s string) (Variant, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "common":
		return Common, nil
	case "preferred":
		return Preferred, nil
	}
	return "", invalid("parse variant", s, ErrInvalidVariant)
}

// Equity is a listed instrument. It is immutable once built by NewEquity.
type Equity struct {
	symbol        string
	variant       Variant
	lastDividend  float64
	parValue      float64
	fixedDividend float64
}

// NewEquity validates the parameters and returns the equity. fixedDividend
// must be set for Preferred stock and nil for Common stock; it is a
// fraction of par value in [0, 1].
func NewEquity(symbol string, variant Variant, lastDividend, parValue float64, fixedDividend *float64) (Equity, error) {
	const op = "new equity"

	symbol = strings.TrimSpace(symbol)
	if symbol == "" {
		return Equity{}, invalid(op, "symbol", ErrInvalidSymbol)
	}
	if !variant.Valid() {
		return Equity{}, invalid(op, string(variant), ErrInvalidVariant)
	}
	if lastDividend < 0 || !finite(lastDividend) {
		return Equity{}, invalid(op, "last_dividend", ErrInvalidDividend)
	}
	if parValue <= 0 || !finite(parValue) {
		return Equity{}, invalid(op, "par_value", ErrInvalidParValue)
	}

	e := Equity{
		symbol:       symbol,
		variant:      variant,
		lastDividend: lastDividend,
		parValue:     parValue,
	}

	switch variant {
	case Preferred:
		if fixedDividend == nil {
			return Equity{}, invalid(op, "fixed_dividend", ErrMissingFixedDividend)
		}
		fd := *fixedDividend
		if fd < 0 || fd > 1 || math.IsNaN(fd) {
			return Equity{}, invalid(op, "fixed_dividend", ErrInvalidFixedDividend)
		}
		e.fixedDividend = fd
	case Common:
		if fixedDividend != nil {
			return Equity{}, invalid(op, "fixed_dividend", ErrInvalidFixedDividend)
		}
	}
	return e, nil
}

// CreateEquity dispatches on the stock type name, as read from config or
// the command line.
func CreateEquity(symbol, stockType string, lastDividend, parValue float64, fixedDividend *float64) (Equity, error) {
	v, err := ParseVariant(stockType)
	if err != nil {
		return Equity{}, fmt.Errorf("create %q: %w", symbol, err)
	}
	return NewEquity(symbol, v, lastDividend, parValue, fixedDividend)
}

func (e Equity) Symbol() string { return e.symbol }
func (e Equity) Variant() Variant { return e.variant }
func (e Equity) LastDividend() float64 { return e.lastDividend }
func (e Equity) ParValue() float64 { return e.parValue }
func (e Equity) IsZero() bool { return e.symbol == "" }

// FixedDividend returns the fixed dividend rate and whether the equity has
// one. Only preferred stock does.
func (e Equity) FixedDividend() (float64, bool) {
	if e.variant != Preferred {
		return 0, false
	}
	return e.fixedDividend, true
}

func (e Equity) String() string {
	if fd, ok := e.FixedDividend(); ok {
		return fmt.Sprintf("%s %s last=%g fixed=%g%% par=%g", e.symbol, e.variant, e.lastDividend, fd*100, e.parValue)
	}
	return fmt.Sprintf("%s %s last=%g par=%g", e.symbol, e.variant, e.lastDividend, e.parValue)
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
