package cmd

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/gbce/config"
	"github.com/rustyeddy/gbce/market"
)

// run executes the root command with args and returns stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cfgFile, logLevel = "", ""
	replayAt, indexAt = "", ""

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append(args, "--log-level", "error"))
	err := rootCmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestReadTrades(t *testing.T) {
	in := `symbol,quantity,side,price,time
# comment
POP,200,buy,150,2024-06-03T14:00:00Z
POP, 50, SELL, 125
`
	reqs, err := readTrades(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, reqs, 2)

	assert.Equal(t, "POP", reqs[0].Symbol)
	assert.Equal(t, int64(200), reqs[0].Quantity)
	assert.Equal(t, market.Buy, reqs[0].Side)
	assert.Equal(t, 150.0, reqs[0].Price)
	assert.True(t, reqs[0].Time.Equal(time.Date(2024, 6, 3, 14, 0, 0, 0, time.UTC)))

	assert.Equal(t, market.Sell, reqs[1].Side)
	assert.True(t, reqs[1].Time.IsZero())

	assert.True(t, latest(reqs).Equal(reqs[0].Time))
}

func TestReadTradesErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
		msg  string
	}{
		{"short row", "POP,1,BUY\n", "got 3 fields"},
		{"bad quantity", "POP,x,BUY,1\n", "quantity"},
		{"bad side", "POP,1,HOLD,1\n", "invalid trade"},
		{"bad price", "POP,1,BUY,cheap\n", "price"},
		{"bad time", "POP,1,BUY,1,yesterday\n", "time"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := readTrades(strings.NewReader(tt.in))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestFormatPE(t *testing.T) {
	assert.Equal(t, "unbounded", formatPE(math.Inf(1)))
	assert.Equal(t, "12.50", formatPE(12.5))
	assert.Equal(t, "n/a", formatVWSP(0))
}

func TestDemoCommand(t *testing.T) {
	out, err := run(t, "demo", "--price", "100")
	require.NoError(t, err)

	assert.Contains(t, out, "SYMBOL")
	assert.Contains(t, out, "unbounded")
	assert.Contains(t, out, "145.00")
	assert.Contains(t, out, "All Share Index")
	assert.Contains(t, out, "147.48")
}

func TestReplayCommand(t *testing.T) {
	path := writeFile(t, "trades.csv", `POP,200,BUY,150,2024-06-03T14:00:00Z
POP,50,SELL,125,2024-06-03T14:01:00Z
GIN,0,BUY,150,2024-06-03T14:01:00Z
ALE,10,BUY,60,2024-06-03T13:00:00Z
TEA,10,BUY,60,1969-12-31T23:59:00Z
`)
	out, err := run(t, "replay", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Recorded 3 of 5 trades")
	assert.Contains(t, out, "145.00")
	assert.Contains(t, out, "All Share Index at 2024-06-03 14:01:00: 145.00")
}

func TestIndexCommand(t *testing.T) {
	path := writeFile(t, "trades.csv", `A,10,BUY,120,2024-06-03T14:00:00Z
B,10,BUY,150,2024-06-03T14:00:00Z
`)
	cfg := &config.Config{
		Exchange: config.ExchangeConfig{Window: "5m"},
		Equities: []config.EquityConfig{
			{Symbol: "A", Type: "Common", LastDividend: 1, ParValue: 100},
			{Symbol: "B", Type: "Common", LastDividend: 1, ParValue: 100},
		},
	}
	cfgPath := filepath.Join(t.TempDir(), "gbce.yaml")
	require.NoError(t, cfg.SaveToFile(cfgPath))

	out, err := run(t, "index", path, "--config", cfgPath, "--at", "2024-06-03T14:05:00Z")
	require.NoError(t, err)
	assert.Equal(t, "134.1641\n", out)
}

func TestQuoteCommand(t *testing.T) {
	out, err := run(t, "quote", "GIN", "--price", "100")
	require.NoError(t, err)
	assert.Contains(t, out, "Dividend Yield: 0.0200")
	assert.Contains(t, out, "P/E Ratio:      12.50")

	_, err = run(t, "quote", "RUM", "--price", "100")
	assert.ErrorIs(t, err, market.ErrUnknownSymbol)
}

func TestConfigCommands(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gbce.yaml")
	out, err := run(t, "config", "init", "-o", path)
	require.NoError(t, err)
	assert.Contains(t, out, path)

	out, err = run(t, "config", "validate", "-f", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Equities: 5")
	assert.Contains(t, out, "window 5m0s")
}

func TestJournalCommands(t *testing.T) {
	db := filepath.Join(t.TempDir(), "gbce.sqlite")
	cfg := config.Default()
	cfg.Journal = config.JournalConfig{Type: "sqlite", DBPath: db}
	cfgPath := filepath.Join(t.TempDir(), "gbce.json")
	require.NoError(t, cfg.SaveToFile(cfgPath))

	_, err := run(t, "demo", "--config", cfgPath)
	require.NoError(t, err)

	out, err := run(t, "journal", "symbol", "POP", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "* Trades (2)")
	assert.Contains(t, out, ":SYMBOL: POP")

	out, err = run(t, "journal", "today", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "* Trades (3)")
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "gbce version 1.0.0\n", out)
}
