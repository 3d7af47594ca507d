package market

import (
	"fmt"
	"iter"
	"sort"
	"sync"
	"time"
)

// Ledger is the append-only trade history of one equity, kept in
// timestamp order. Each ledger has its own lock, so writers on one symbol
// never hold up readers of another.
type Ledger struct {
	symbol string

	mu     sync.RWMutex
	trades []Trade
}

func NewLedger(symbol string) *Ledger {
	return &Ledger{symbol: symbol}
}

func (l *Ledger) Symbol() string { return l.symbol }

// Append validates t and inserts it at its chronological position. Trades
// arriving in time order (the usual case) go to the tail.
func (l *Ledger) Append(t Trade) error {
	if err := t.Validate(); err != nil {
		return err
	}
	if t.Symbol == "" {
		t.Symbol = l.symbol
	}
	if t.Symbol != l.symbol {
		return invalid("append trade", "symbol", fmt.Errorf("%w: %s does not belong in the %s ledger", ErrInvalidTrade, t.Symbol, l.symbol))
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	n := len(l.trades)
	if n == 0 || !t.Time.Before(l.trades[n-1].Time) {
		l.trades = append(l.trades, t)
		return nil
	}

	// Late arrival from a concurrent writer. Copy instead of shifting in
	// place so snapshots handed to readers are never rewritten.
	i := sort.Search(n, func(i int) bool { return l.trades[i].Time.After(t.Time) })
	next := make([]Trade, 0, n+1+n/4)
	next = append(next, l.trades[:i]...)
	next = append(next, t)
	next = append(next, l.trades[i:]...)
	l.trades = next
	return nil
}

func (l *Ledger) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.trades)
}

// snapshot returns the current trades. Elements below len are never
// modified after being published, so the slice can be read without the lock.
func (l *Ledger) snapshot() []Trade {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.trades[:len(l.trades):len(l.trades)]
}

// Trades returns a copy of every trade in the ledger.
func (l *Ledger) Trades() []Trade {
	s := l.snapshot()
	out := make([]Trade, len(s))
	copy(out, s)
	return out
}

// Window yields trades with Time >= since. The sequence can be ranged over
// any number of times; each pass sees the ledger as of its start.
func (l *Ledger) Window(since time.Time) iter.Seq[Trade] {
	return func(yield func(Trade) bool) {
		s := l.snapshot()
		i := sort.Search(len(s), func(i int) bool { return !s[i].Time.Before(since) })
		for _, t := range s[i:] {
			if !yield(t) {
				return
			}
		}
	}
}

// Between yields trades with from <= Time <= to.
func (l *Ledger) Between(from, to time.Time) iter.Seq[Trade] {
	return func(yield func(Trade) bool) {
		for t := range l.Window(from) {
			if t.Time.After(to) {
				return
			}
			if !yield(t) {
				return
			}
		}
	}
}
