package journal

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3"
)

type SQLite struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		return nil, err
	}

	return &SQLite{db: db}, nil
}

func (j *SQLite) RecordTransaction(rec TransactionRecord) error {
	_, err := j.db.Exec(`
		INSERT INTO transactions
		(tx_id, side, symbol, price, placed_at, settled_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		rec.TxID, string(rec.Side), rec.Symbol, rec.Price.String(),
		rec.PlacedAt, rec.SettledAt,
	)
	return err
}

func (j *SQLite) Close() error {
	return j.db.Close()
}
