// journal/csv.go
package journal

import (
	"encoding/csv"
	"os"
	"strconv"
	"sync"
	"time"
)

var csvHeader = []string{"trade_id", "symbol", "side", "quantity", "price", "time"}

// CSV appends one row per trade to a file. Safe for concurrent use.
type CSV struct {
	mu     sync.Mutex
	trades *csv.Writer
	tf     *os.File
}

func NewCSV(tradesPath string) (*CSV, error) {
	tf, err := os.Create(tradesPath)
	if err != nil {
		return nil, err
	}

	tw := csv.NewWriter(tf)
	if err := tw.Write(csvHeader); err != nil {
		_ = tf.Close()
		return nil, err
	}
	tw.Flush()
	if err := tw.Error(); err != nil {
		_ = tf.Close()
		return nil, err
	}

	return &CSV{trades: tw, tf: tf}, nil
}

func (j *CSV) RecordTrade(t TradeRecord) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	err := j.trades.Write([]string{
		t.TradeID,
		t.Symbol,
		string(t.Side),
		strconv.FormatInt(t.Quantity, 10),
		f(t.Price),
		t.Time.UTC().Format(time.RFC3339Nano),
	})
	if err != nil {
		return err
	}
	j.trades.Flush()
	return j.trades.Error()
}

func (j *CSV) Close() error {
	j.mu.Lock()
	defer j.mu.Unlock()

	j.trades.Flush()
	if err := j.trades.Error(); err != nil {
		_ = j.tf.Close()
		return err
	}
	return j.tf.Close()
}

func f(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}
