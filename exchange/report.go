package exchange

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/rustyeddy/gbce/metrics"
)

// Row holds the figures of one equity at the quoted price. A failed metric
// leaves its field zero and its error in Err; the other fields are still set.
type Row struct {
	Symbol        string
	Price         float64
	DividendYield float64
	PERatio       float64
	VWSP          float64
	Err           error
}

type Report struct {
	Time          time.Time
	Window        time.Duration
	Rows          []Row
	AllShareIndex float64
}

// Report quotes every listed equity at price and adds the volume weighted
// prices and the All Share Index as of now.
func (e *Exchange) Report(ctx context.Context, price float64, now time.Time) (Report, error) {
	now = e.now(now)
	snap, snapErr := metrics.Snapshot(ctx, e.market, now, e.window)

	r := Report{Time: now, Window: e.window}
	for _, sym := range e.market.Symbols() {
		row := Row{Symbol: sym, Price: price, VWSP: snap[sym]}
		eq, err := e.market.Equity(sym)
		if err == nil {
			row.DividendYield, err = metrics.DividendYield(eq, price)
		}
		if err == nil {
			row.PERatio, err = metrics.PERatio(eq, price)
		}
		if err != nil {
			e.log.Warn("report row", zap.String("symbol", sym), zap.Error(err))
			row.Err = err
		}
		r.Rows = append(r.Rows, row)
	}

	values := make([]float64, 0, len(r.Rows))
	for _, row := range r.Rows {
		values = append(values, row.VWSP)
	}
	r.AllShareIndex = metrics.GeometricMean(values)
	return r, snapErr
}
