// journal/schema.go
package journal

const Schema = `
CREATE TABLE IF NOT EXISTS trades (
	trade_id TEXT PRIMARY KEY,
	symbol TEXT NOT NULL,
	side TEXT NOT NULL CHECK (side IN ('BUY', 'SELL')),
	quantity INTEGER NOT NULL CHECK (quantity > 0),
	price REAL NOT NULL CHECK (price > 0),
	time DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_trades_symbol_time ON trades(symbol, time);
CREATE INDEX IF NOT EXISTS idx_trades_time ON trades(time);
`
