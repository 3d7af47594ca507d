package exchange

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/rustyeddy/gbce/config"
	"github.com/rustyeddy/gbce/journal"
	"github.com/rustyeddy/gbce/market"
	"github.com/rustyeddy/gbce/metrics"
)

// Exchange is the symbol-keyed surface over a market: it lists equities,
// records trades and answers metric queries. Logging and journaling happen
// here and nowhere below.
type Exchange struct {
	market  *market.Market
	journal journal.Journal
	log     *zap.Logger
	window  time.Duration
	clock   func() time.Time
}

type Option func(*Exchange)

func WithLogger(l *zap.Logger) Option {
	return func(e *Exchange) {
		if l != nil {
			e.log = l
		}
	}
}

func WithJournal(j journal.Journal) Option {
	return func(e *Exchange) {
		if j != nil {
			e.journal = j
		}
	}
}

// WithWindow sets the trailing window of the volume weighted price.
func WithWindow(d time.Duration) Option {
	return func(e *Exchange) { e.window = d }
}

func WithClock(clock func() time.Time) Option {
	return func(e *Exchange) {
		if clock != nil {
			e.clock = clock
		}
	}
}

func New(opts ...Option) *Exchange {
	e := &Exchange{
		market:  market.New(),
		journal: journal.Discard,
		log:     zap.NewNop(),
		window:  metrics.DefaultWindow,
		clock:   time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// FromConfig opens the configured journal and lists the configured equities.
func FromConfig(cfg *config.Config, log *zap.Logger) (*Exchange, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	window, err := cfg.Exchange.WindowDuration()
	if err != nil {
		return nil, err
	}

	var j journal.Journal = journal.Discard
	switch cfg.Journal.Type {
	case "csv":
		if j, err = journal.NewCSV(cfg.Journal.TradesFile); err != nil {
			return nil, fmt.Errorf("open csv journal: %w", err)
		}
	case "sqlite":
		if j, err = journal.NewSQLite(cfg.Journal.DBPath); err != nil {
			return nil, fmt.Errorf("open sqlite journal: %w", err)
		}
	}

	e := New(WithLogger(log), WithJournal(j), WithWindow(window))
	if cfg.Exchange.Name != "" {
		e.log = e.log.With(zap.String("exchange", cfg.Exchange.Name))
	}
	for _, ec := range cfg.Equities {
		eq, err := ec.Listing().Equity()
		if err == nil {
			err = e.List(eq)
		}
		if err != nil {
			return nil, errors.Join(err, e.Close())
		}
	}
	return e, nil
}

func (e *Exchange) Market() *market.Market { return e.market }

func (e *Exchange) Window() time.Duration { return e.window }

// Now reads the exchange clock.
func (e *Exchange) Now() time.Time { return e.clock() }

func (e *Exchange) Close() error {
	return e.journal.Close()
}

func (e *Exchange) now(t time.Time) time.Time {
	if t.IsZero() {
		return e.clock()
	}
	return t
}

// List adds an equity to the market. A symbol can be listed only once.
func (e *Exchange) List(eq market.Equity) error {
	if err := e.market.List(eq); err != nil {
		e.log.Warn("listing rejected", zap.String("symbol", eq.Symbol()), zap.Error(err))
		return err
	}
	e.log.Info("stock listed", zap.String("symbol", eq.Symbol()), zap.Stringer("type", eq.Variant()))
	return nil
}

// TradeRequest describes a trade to record. A zero Time means now.
type TradeRequest struct {
	Symbol   string
	Quantity int64
	Side     market.Side
	Price    float64
	Time     time.Time
}

// RecordTrade validates the request, writes it to the journal and appends
// it to the symbol's ledger. Nothing reaches the ledger if validation or
// the journal write fails.
func (e *Exchange) RecordTrade(ctx context.Context, req TradeRequest) (market.Trade, error) {
	if err := ctx.Err(); err != nil {
		return market.Trade{}, err
	}

	l, err := e.market.Ledger(req.Symbol)
	if err != nil {
		return market.Trade{}, err
	}
	t, err := market.NewTrade(req.Symbol, req.Quantity, req.Side, req.Price, e.now(req.Time))
	if err != nil {
		return market.Trade{}, err
	}

	if err := e.journal.RecordTrade(journal.FromTrade(t)); err != nil {
		e.log.Error("journal trade", zap.String("symbol", t.Symbol), zap.String("trade_id", t.ID), zap.Error(err))
		return market.Trade{}, fmt.Errorf("record trade: %w", err)
	}
	if err := l.Append(t); err != nil {
		return market.Trade{}, err
	}

	e.log.Info("trade recorded",
		zap.String("symbol", t.Symbol),
		zap.String("trade_id", t.ID),
		zap.Stringer("side", t.Side),
		zap.Int64("quantity", t.Quantity),
		zap.Float64("price", t.Price),
	)
	return t, nil
}

func (e *Exchange) DividendYield(symbol string, price float64) (float64, error) {
	eq, err := e.market.Equity(symbol)
	if err != nil {
		return 0, err
	}
	return metrics.DividendYield(eq, price)
}

// PERatio returns metrics.Unbounded for a stock without dividend.
func (e *Exchange) PERatio(symbol string, price float64) (float64, error) {
	eq, err := e.market.Equity(symbol)
	if err != nil {
		return 0, err
	}
	pe, err := metrics.PERatio(eq, price)
	if err == nil && metrics.IsUnbounded(pe) {
		e.log.Warn("dividend is zero, P/E ratio is unbounded", zap.String("symbol", symbol))
	}
	return pe, err
}

// VolumeWeightedPrice over the exchange window ending at now; a zero now
// uses the clock. No trades in the window gives 0.
func (e *Exchange) VolumeWeightedPrice(symbol string, now time.Time) (float64, error) {
	l, err := e.market.Ledger(symbol)
	if err != nil {
		return 0, err
	}
	now = e.now(now)
	v, err := metrics.VolumeWeightedPrice(l, now, e.window)
	if err == nil && v == 0 {
		e.log.Warn("no trades in window", zap.String("symbol", symbol), zap.Duration("window", e.window))
	}
	return v, err
}

// AllShareIndex over every listed equity as of now.
func (e *Exchange) AllShareIndex(ctx context.Context, now time.Time) (float64, error) {
	idx, err := metrics.AllShareIndex(ctx, e.market, e.now(now), e.window)
	if err != nil {
		e.log.Error("all share index", zap.Error(err))
	}
	if idx == 0 {
		e.log.Warn("no valid stock prices for the all share index")
	}
	return idx, err
}
