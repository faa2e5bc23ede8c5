package journal

// Prices are stored as TEXT so decimal amounts survive the round trip
// without float drift.
const Schema = `
CREATE TABLE IF NOT EXISTS transactions (
	tx_id TEXT PRIMARY KEY,
	side TEXT NOT NULL,
	symbol TEXT NOT NULL,
	price TEXT NOT NULL,
	placed_at DATETIME NOT NULL,
	settled_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_transactions_settled_at ON transactions(settled_at);
`
