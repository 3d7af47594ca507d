// Package metrics computes per-stock figures and the All Share Index from a
// market. Every function here is a pure read of its inputs.
package metrics

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rustyeddy/gbce/market"
)

// DefaultWindow is the trailing window used for the volume weighted price.
const DefaultWindow = 5 * time.Minute

var (
	ErrNonPositivePrice  = errors.New("price must be greater than zero")
	ErrNonPositiveWindow = errors.New("window must be greater than zero")
)

// DomainError reports a request that is undefined for otherwise valid
// state, such as a yield at a zero price.
type DomainError struct {
	Op     string
	Symbol string
	Err    error
}

func (e *DomainError) Error() string {
	if e.Symbol == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Symbol, e.Err)
}

func (e *DomainError) Unwrap() error { return e.Err }

// Unbounded is the P/E ratio of a stock that pays no dividend.
var Unbounded = math.Inf(1)

func IsUnbounded(x float64) bool { return math.IsInf(x, 1) }

func checkPrice(op string, e market.Equity, price float64) error {
	if !(price > 0) || math.IsInf(price, 0) {
		return &DomainError{Op: op, Symbol: e.Symbol(), Err: fmt.Errorf("%w: got %v", ErrNonPositivePrice, price)}
	}
	return nil
}

// DividendYield is last dividend / price for common stock and
// fixed dividend * par value / price for preferred stock.
func DividendYield(e market.Equity, price float64) (float64, error) {
	if err := checkPrice("dividend yield", e, price); err != nil {
		return 0, err
	}
	if fd, ok := e.FixedDividend(); ok {
		return fd * e.ParValue() / price, nil
	}
	return e.LastDividend() / price, nil
}

// PERatio is price / last dividend. A zero dividend gives Unbounded.
func PERatio(e market.Equity, price float64) (float64, error) {
	if err := checkPrice("pe ratio", e, price); err != nil {
		return 0, err
	}
	if e.LastDividend() == 0 {
		return Unbounded, nil
	}
	return price / e.LastDividend(), nil
}

// VolumeWeightedPrice is sum(quantity*price)/sum(quantity) over trades in
// [now-window, now]. It returns 0 when the window holds no trades.
func VolumeWeightedPrice(l *market.Ledger, now time.Time, window time.Duration) (float64, error) {
	if window <= 0 {
		return 0, &DomainError{Op: "vwsp", Symbol: l.Symbol(), Err: ErrNonPositiveWindow}
	}

	// Decimal sums are exact, so the result does not depend on the order
	// the trades were recorded in.
	notional := decimal.Zero
	volume := decimal.Zero
	for t := range l.Between(now.Add(-window), now) {
		q := decimal.NewFromInt(t.Quantity)
		notional = notional.Add(q.Mul(decimal.NewFromFloat(t.Price)))
		volume = volume.Add(q)
	}
	if volume.IsZero() {
		return 0, nil
	}
	return notional.DivRound(volume, 16).InexactFloat64(), nil
}
