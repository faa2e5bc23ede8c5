package journal

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rustyeddy/paperbroker/orders"
)

// GetTransaction returns a single transaction record by ID.
func (j *SQLite) GetTransaction(txID string) (TransactionRecord, error) {
	row := j.db.QueryRow(`
		SELECT tx_id, side, symbol, price, placed_at, settled_at
		FROM transactions
		WHERE tx_id = ?`, txID)

	rec, err := scanTransaction(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return TransactionRecord{}, fmt.Errorf("transaction %q not found", txID)
		}
		return TransactionRecord{}, err
	}
	return rec, nil
}

// ListSettledBetween returns transactions whose settled_at is within [start, end).
func (j *SQLite) ListSettledBetween(start, end time.Time) ([]TransactionRecord, error) {
	rows, err := j.db.Query(`
		SELECT tx_id, side, symbol, price, placed_at, settled_at
		FROM transactions
		WHERE settled_at >= ? AND settled_at < ?
		ORDER BY settled_at ASC`, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []TransactionRecord
	for rows.Next() {
		rec, err := scanTransaction(rows.Scan)
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

func scanTransaction(scan func(...any) error) (TransactionRecord, error) {
	var (
		rec   TransactionRecord
		side  string
		price string
	)
	if err := scan(&rec.TxID, &side, &rec.Symbol, &price, &rec.PlacedAt, &rec.SettledAt); err != nil {
		return TransactionRecord{}, err
	}

	p, err := decimal.NewFromString(price)
	if err != nil {
		return TransactionRecord{}, fmt.Errorf("parse price %q: %w", price, err)
	}
	rec.Side = orders.Side(side)
	rec.Price = p
	return rec, nil
}
