package journal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/gbce/market"
)

var day = time.Date(2024, 4, 10, 0, 0, 0, 0, time.UTC)

func seed(t *testing.T, j *SQLite) []TradeRecord {
	t.Helper()
	trades := []TradeRecord{
		{TradeID: "T001", Symbol: "POP", Side: market.Buy, Quantity: 200, Price: 150, Time: day.Add(9 * time.Hour)},
		{TradeID: "T002", Symbol: "POP", Side: market.Sell, Quantity: 50, Price: 125, Time: day.Add(10 * time.Hour)},
		{TradeID: "T003", Symbol: "GIN", Side: market.Buy, Quantity: 200, Price: 150, Time: day.Add(11 * time.Hour)},
		{TradeID: "T004", Symbol: "POP", Side: market.Buy, Quantity: 10, Price: 149, Time: day.Add(30 * time.Hour)},
	}
	for _, tr := range trades {
		require.NoError(t, j.RecordTrade(tr))
	}
	return trades
}

func TestGetTrade(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	defer j.Close()
	trades := seed(t, j)

	got, err := j.GetTrade("T002")
	require.NoError(t, err)
	want := trades[1]
	assert.Equal(t, want.TradeID, got.TradeID)
	assert.Equal(t, want.Symbol, got.Symbol)
	assert.Equal(t, want.Side, got.Side)
	assert.Equal(t, want.Quantity, got.Quantity)
	assert.InDelta(t, want.Price, got.Price, 1e-9)
	assert.True(t, got.Time.Equal(want.Time))
}

func TestGetTradeNotFound(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	defer j.Close()

	_, err := j.GetTrade("nonexistent")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestListTradesBetween(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	defer j.Close()
	seed(t, j)

	got, err := j.ListTradesBetween(day, day.Add(24*time.Hour))
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "T001", got[0].TradeID)
	assert.Equal(t, "T003", got[2].TradeID)

	// End is exclusive.
	got, err = j.ListTradesBetween(day, day.Add(9*time.Hour))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestListTradesBySymbol(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	defer j.Close()
	seed(t, j)

	got, err := j.ListTradesBySymbol("POP")
	require.NoError(t, err)
	require.Len(t, got, 3)
	for _, r := range got {
		assert.Equal(t, "POP", r.Symbol)
	}
	assert.Equal(t, "T004", got[2].TradeID)

	got, err = j.ListTradesBySymbol("RUM")
	require.NoError(t, err)
	assert.Empty(t, got)
}
