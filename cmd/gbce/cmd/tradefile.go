package cmd

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rustyeddy/gbce/exchange"
	"github.com/rustyeddy/gbce/market"
)

// readTrades parses trade rows from CSV.
//
// Expected columns:
// symbol,quantity,side,price[,time]
// Header allowed. Time is RFC3339; an empty or missing time means now.
func readTrades(r io.Reader) ([]exchange.TradeRequest, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.Comment = '#'

	var out []exchange.TradeRequest
	for line := 1; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return nil, err
		}
		if line == 1 && strings.EqualFold(strings.TrimSpace(row[0]), "symbol") {
			continue
		}
		if len(row) < 4 {
			return nil, fmt.Errorf("line %d: want symbol,quantity,side,price[,time], got %d fields", line, len(row))
		}

		qty, err := strconv.ParseInt(strings.TrimSpace(row[1]), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: quantity: %w", line, err)
		}
		side, err := market.ParseSide(row[2])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		price, err := strconv.ParseFloat(strings.TrimSpace(row[3]), 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: price: %w", line, err)
		}

		req := exchange.TradeRequest{
			Symbol:   strings.TrimSpace(row[0]),
			Quantity: qty,
			Side:     side,
			Price:    price,
		}
		if len(row) > 4 && strings.TrimSpace(row[4]) != "" {
			req.Time, err = time.Parse(time.RFC3339, strings.TrimSpace(row[4]))
			if err != nil {
				return nil, fmt.Errorf("line %d: time: %w", line, err)
			}
		}
		out = append(out, req)
	}
}

func readTradesFile(path string) ([]exchange.TradeRequest, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return readTrades(f)
}

// latest returns the newest trade time, or zero when no row has one.
func latest(reqs []exchange.TradeRequest) time.Time {
	var t time.Time
	for _, r := range reqs {
		if r.Time.After(t) {
			t = r.Time
		}
	}
	return t
}

// parseAt parses the --at flag. An empty flag falls back to the newest
// trade in the file, then to the clock.
func parseAt(at string, reqs []exchange.TradeRequest) (time.Time, error) {
	if at != "" {
		return time.Parse(time.RFC3339, at)
	}
	return latest(reqs), nil
}
