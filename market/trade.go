package market

import (
	"fmt"
	"strings"
	"time"

	"github.com/rustyeddy/gbce/id"
)

type Side string

const (
	Buy  Side = "BUY"
	Sell Side = "SELL"
)

func (s Side) Valid() bool { return s == Buy || s == Sell }

func (s Side) String() string { return string(s) }

// ParseSide accepts BUY or SELL in any case.
func ParseSide(s string) (Side, error) {
	switch Side(strings.ToUpper(strings.TrimSpace(s))) {
	case Buy:
		return Buy, nil
	case Sell:
		return Sell, nil
	}
	return "", invalid("parse side", s, ErrInvalidTrade)
}

// Trade is an executed trade reported to the exchange. Trades are facts,
// not orders; nothing matches them.
type Trade struct {
	ID       string
	Symbol   string
	Time     time.Time
	Quantity int64
	Side     Side
	Price    float64
}

// NewTrade validates and stamps a trade. A zero ts means now.
func NewTrade(symbol string, quantity int64, side Side, price float64, ts time.Time) (Trade, error) {
	t := Trade{
		Symbol:   symbol,
		Time:     ts,
		Quantity: quantity,
		Side:     side,
		Price:    price,
	}
	if t.Time.IsZero() {
		t.Time = time.Now()
	}
	if err := t.Validate(); err != nil {
		return Trade{}, err
	}
	tid, err := id.New(t.Time)
	if err != nil {
		return Trade{}, invalid("new trade", "time", fmt.Errorf("%w: %w", ErrInvalidTrade, err))
	}
	t.ID = tid
	return t, nil
}

// Validate checks quantity > 0, price > 0, the side and that the time can
// be stamped into a trade ID.
func (t Trade) Validate() error {
	const op = "validate trade"
	switch {
	case t.Quantity <= 0:
		return invalid(op, "quantity", fmt.Errorf("%w: quantity %d must be positive", ErrInvalidTrade, t.Quantity))
	case t.Price <= 0 || !finite(t.Price):
		return invalid(op, "price", fmt.Errorf("%w: price %v must be positive", ErrInvalidTrade, t.Price))
	case !t.Side.Valid():
		return invalid(op, "side", fmt.Errorf("%w: side %q must be BUY or SELL", ErrInvalidTrade, t.Side))
	}
	if err := id.CheckTime(t.Time); err != nil {
		return invalid(op, "time", fmt.Errorf("%w: %w", ErrInvalidTrade, err))
	}
	return nil
}

// Notional is quantity times price.
func (t Trade) Notional() float64 {
	return float64(t.Quantity) * t.Price
}
