// journal/journal.go
package journal

import (
	"time"

	"github.com/rustyeddy/gbce/market"
)

// TradeRecord is one journaled trade.
type TradeRecord struct {
	TradeID  string
	Symbol   string
	Side     market.Side
	Quantity int64
	Price    float64
	Time     time.Time
}

func FromTrade(t market.Trade) TradeRecord {
	return TradeRecord{
		TradeID:  t.ID,
		Symbol:   t.Symbol,
		Side:     t.Side,
		Quantity: t.Quantity,
		Price:    t.Price,
		Time:     t.Time,
	}
}

// Trade converts the record back to a market trade.
func (r TradeRecord) Trade() market.Trade {
	return market.Trade{
		ID:       r.TradeID,
		Symbol:   r.Symbol,
		Time:     r.Time,
		Quantity: r.Quantity,
		Side:     r.Side,
		Price:    r.Price,
	}
}

// Journal is an audit sink for recorded trades. The exchange writes to it
// before a trade reaches the ledger and never reads it back.
type Journal interface {
	RecordTrade(TradeRecord) error
	Close() error
}

type discard struct{}

func (discard) RecordTrade(TradeRecord) error { return nil }
func (discard) Close() error { return nil }

// Discard is a Journal that drops every record.
var Discard Journal = discard{}
