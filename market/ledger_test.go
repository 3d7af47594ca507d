package market

import (
	"fmt"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/gbce/id"
)

var t0 = time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC)

func mustTrade(t *testing.T, qty int64, side Side, price float64, ts time.Time) Trade {
	t.Helper()
	tr, err := NewTrade("POP", qty, side, price, ts)
	require.NoError(t, err)
	return tr
}

func collect(seq func(func(Trade) bool)) []Trade {
	var out []Trade
	seq(func(t Trade) bool {
		out = append(out, t)
		return true
	})
	return out
}

func TestNewTradeValidation(t *testing.T) {
	tests := []struct {
		name  string
		qty   int64
		side  Side
		price float64
	}{
		{"zero quantity", 0, Buy, 10},
		{"negative quantity", -5, Buy, 10},
		{"zero price", 10, Sell, 0},
		{"negative price", 10, Sell, -1},
		{"unknown side", 10, "HOLD", 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTrade("POP", tt.qty, tt.side, tt.price, t0)
			assert.ErrorIs(t, err, ErrInvalidTrade)
		})
	}
}

func TestNewTradeDefaultsToNow(t *testing.T) {
	before := time.Now()
	tr, err := NewTrade("POP", 1, Buy, 1, time.Time{})
	require.NoError(t, err)
	assert.False(t, tr.Time.Before(before))
	assert.NotEmpty(t, tr.ID)
}

func TestTradeNotional(t *testing.T) {
	assert.InDelta(t, 30000.0, mustTrade(t, 200, Buy, 150, t0).Notional(), 1e-9)
	assert.InDelta(t, 6.25, mustTrade(t, 5, Sell, 1.25, t0).Notional(), 1e-9)
}

func TestLedgerAppendRejectsInvalid(t *testing.T) {
	l := NewLedger("POP")
	err := l.Append(Trade{Symbol: "POP", Quantity: 0, Side: Buy, Price: 10, Time: t0})
	assert.ErrorIs(t, err, ErrInvalidTrade)
	assert.Equal(t, 0, l.Len())

	err = l.Append(Trade{Symbol: "TEA", Quantity: 1, Side: Buy, Price: 10, Time: t0})
	assert.ErrorIs(t, err, ErrInvalidTrade)
	assert.NotErrorIs(t, err, ErrUnknownSymbol)
	assert.Equal(t, 0, l.Len())

	err = l.Append(Trade{Symbol: "POP", Quantity: 1, Side: Buy, Price: 10})
	assert.ErrorIs(t, err, id.ErrTimeRange)
	assert.Equal(t, 0, l.Len())
}

func TestNewTradeRejectsPreEpochTime(t *testing.T) {
	for _, ts := range []time.Time{
		time.Date(1969, 12, 31, 23, 59, 0, 0, time.UTC),
		time.Date(12000, 1, 1, 0, 0, 0, 0, time.UTC),
	} {
		tr, err := NewTrade("POP", 1, Buy, 10, ts)
		var verr *ValidationError
		require.ErrorAs(t, err, &verr, "time %v", ts)
		assert.Equal(t, "time", verr.Field)
		assert.ErrorIs(t, err, ErrInvalidTrade)
		assert.ErrorIs(t, err, id.ErrTimeRange)
		assert.Zero(t, tr)
	}

	m := newGBCE(t)
	_, err := m.RecordTrade("POP", 1, Buy, 10, time.Date(1969, 12, 31, 0, 0, 0, 0, time.UTC))
	assert.ErrorIs(t, err, ErrInvalidTrade)
	l, err := m.Ledger("POP")
	require.NoError(t, err)
	assert.Equal(t, 0, l.Len())
}

func TestLedgerKeepsChronologicalOrder(t *testing.T) {
	l := NewLedger("POP")
	require.NoError(t, l.Append(mustTrade(t, 1, Buy, 10, t0.Add(2*time.Minute))))
	require.NoError(t, l.Append(mustTrade(t, 2, Buy, 10, t0)))
	require.NoError(t, l.Append(mustTrade(t, 3, Buy, 10, t0.Add(time.Minute))))
	require.NoError(t, l.Append(mustTrade(t, 4, Buy, 10, t0.Add(3*time.Minute))))

	var qty []int64
	for _, tr := range l.Trades() {
		qty = append(qty, tr.Quantity)
	}
	assert.Equal(t, []int64{2, 3, 1, 4}, qty)
}

func TestLedgerWindow(t *testing.T) {
	l := NewLedger("POP")
	for i := 0; i < 10; i++ {
		require.NoError(t, l.Append(mustTrade(t, int64(i+1), Buy, 10, t0.Add(time.Duration(i)*time.Minute))))
	}

	got := collect(l.Window(t0.Add(5 * time.Minute)))
	require.Len(t, got, 5)
	assert.Equal(t, int64(6), got[0].Quantity, "lower bound is inclusive")

	// Restartable: a second pass yields the same trades.
	assert.Equal(t, got, collect(l.Window(t0.Add(5*time.Minute))))

	between := collect(l.Between(t0.Add(2*time.Minute), t0.Add(4*time.Minute)))
	require.Len(t, between, 3)
	assert.Equal(t, int64(3), between[0].Quantity)
	assert.Equal(t, int64(5), between[2].Quantity)

	assert.Empty(t, collect(l.Window(t0.Add(time.Hour))))
}

func TestLedgerWindowStopsEarly(t *testing.T) {
	l := NewLedger("POP")
	for i := 0; i < 5; i++ {
		require.NoError(t, l.Append(mustTrade(t, 1, Buy, 10, t0.Add(time.Duration(i)*time.Second))))
	}
	n := 0
	for range l.Window(t0) {
		n++
		if n == 2 {
			break
		}
	}
	assert.Equal(t, 2, n)
}

func TestLedgerConcurrentAppendAndRead(t *testing.T) {
	l := NewLedger("POP")

	const writers, perWriter = 8, 200
	var wg sync.WaitGroup
	for w := 0; w < writers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			r := rand.New(rand.NewSource(int64(w)))
			for i := 0; i < perWriter; i++ {
				ts := t0.Add(time.Duration(r.Intn(3600)) * time.Second)
				tr, err := NewTrade("POP", 1, Buy, 10, ts)
				if err == nil {
					err = l.Append(tr)
				}
				assert.NoError(t, err)
			}
		}(w)
	}
	for r := 0; r < 4; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				prev := time.Time{}
				for tr := range l.Window(t0) {
					assert.False(t, tr.Time.Before(prev), "window out of order")
					prev = tr.Time
				}
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, writers*perWriter, l.Len())
	trades := l.Trades()
	for i := 1; i < len(trades); i++ {
		require.False(t, trades[i].Time.Before(trades[i-1].Time), fmt.Sprintf("index %d out of order", i))
	}
}
