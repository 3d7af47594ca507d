package market

import (
	"sort"
	"sync"
	"time"
)

type listed struct {
	equity Equity
	ledger *Ledger
}

// Market maps symbols to their equity and trade ledger. The market lock
// only guards the map; trades go through the per-symbol ledger lock.
type Market struct {
	mu      sync.RWMutex
	entries map[string]listed
}

func New() *Market {
	return &Market{entries: make(map[string]listed)}
}

// List registers e with an empty ledger. Listing a symbol twice fails with
// a *DuplicateSymbolError.
func (m *Market) List(e Equity) error {
	if e.IsZero() {
		return invalid("list", "symbol", ErrInvalidSymbol)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.entries[e.Symbol()]; ok {
		return &DuplicateSymbolError{Symbol: e.Symbol()}
	}
	m.entries[e.Symbol()] = listed{equity: e, ledger: NewLedger(e.Symbol())}
	return nil
}

func (m *Market) get(symbol string) (listed, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	l, ok := m.entries[symbol]
	if !ok {
		return listed{}, invalid("lookup", symbol, ErrUnknownSymbol)
	}
	return l, nil
}

func (m *Market) Has(symbol string) bool {
	_, err := m.get(symbol)
	return err == nil
}

func (m *Market) Equity(symbol string) (Equity, error) {
	l, err := m.get(symbol)
	return l.equity, err
}

func (m *Market) Ledger(symbol string) (*Ledger, error) {
	l, err := m.get(symbol)
	return l.ledger, err
}

func (m *Market) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

// Symbols returns the listed symbols in sorted order.
func (m *Market) Symbols() []string {
	m.mu.RLock()
	out := make([]string, 0, len(m.entries))
	for s := range m.entries {
		out = append(out, s)
	}
	m.mu.RUnlock()
	sort.Strings(out)
	return out
}

// RecordTrade validates the trade and appends it to the symbol's ledger.
// On error the ledger is unchanged.
func (m *Market) RecordTrade(symbol string, quantity int64, side Side, price float64, ts time.Time) (Trade, error) {
	l, err := m.get(symbol)
	if err != nil {
		return Trade{}, err
	}
	t, err := NewTrade(symbol, quantity, side, price, ts)
	if err != nil {
		return Trade{}, err
	}
	if err := l.ledger.Append(t); err != nil {
		return Trade{}, err
	}
	return t, nil
}
