// Package journal records settled orders. The engine keeps the in-memory
// transaction log itself; a Journal is an optional sink that receives every
// settlement as it happens (CSV or SQLite for later review).
package journal

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/rustyeddy/paperbroker/orders"
)

// TransactionRecord is an immutable snapshot of a settled order plus its
// settlement timestamp. Records are append-only: insertion order is
// settlement order, and nothing is ever mutated or removed.
type TransactionRecord struct {
	TxID      string
	Side      orders.Side
	Symbol    string
	Price     decimal.Decimal
	PlacedAt  time.Time
	SettledAt time.Time
}

type Journal interface {
	RecordTransaction(TransactionRecord) error
	Close() error
}

// Discard is a Journal that drops every record. Useful when a session does
// not need a review sink.
type Discard struct{}

func (Discard) RecordTransaction(TransactionRecord) error { return nil }
func (Discard) Close() error                              { return nil }
