package journal

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rustyeddy/gbce/market"
)

const selectTrades = `
		SELECT trade_id, symbol, side, quantity, price, time
		FROM trades`

type scanner interface {
	Scan(dest ...any) error
}

func scanTrade(s scanner) (TradeRecord, error) {
	var (
		rec  TradeRecord
		side string
	)
	if err := s.Scan(&rec.TradeID, &rec.Symbol, &side, &rec.Quantity, &rec.Price, &rec.Time); err != nil {
		return TradeRecord{}, err
	}
	rec.Side = market.Side(side)
	return rec, nil
}

// GetTrade returns a single trade record by ID.
func (j *SQLite) GetTrade(tradeID string) (TradeRecord, error) {
	row := j.db.QueryRow(selectTrades+`
		WHERE trade_id = ?`, tradeID)

	rec, err := scanTrade(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return TradeRecord{}, fmt.Errorf("trade %q not found", tradeID)
		}
		return TradeRecord{}, err
	}
	return rec, nil
}

// ListTradesBetween returns trades whose time is within [start, end),
// oldest first.
func (j *SQLite) ListTradesBetween(start, end time.Time) ([]TradeRecord, error) {
	return j.list(selectTrades+`
		WHERE time >= ? AND time < ?
		ORDER BY time ASC, trade_id ASC`, start.UTC(), end.UTC())
}

// ListTradesBySymbol returns every journaled trade of one symbol, oldest first.
func (j *SQLite) ListTradesBySymbol(symbol string) ([]TradeRecord, error) {
	return j.list(selectTrades+`
		WHERE symbol = ?
		ORDER BY time ASC, trade_id ASC`, symbol)
}

func (j *SQLite) list(query string, args ...any) ([]TradeRecord, error) {
	rows, err := j.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []TradeRecord
	for rows.Next() {
		rec, err := scanTrade(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
