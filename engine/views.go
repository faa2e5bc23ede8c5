package engine

import (
	"github.com/shopspring/decimal"

	"github.com/rustyeddy/paperbroker/journal"
	"github.com/rustyeddy/paperbroker/orders"
)

// Read-only snapshots for the presentation layer. Each returns a copy, so
// callers cannot mutate engine state through them.

// Cash returns the current cash balance.
func (e *Engine) Cash() decimal.Decimal {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.ledger.Cash()
}

// Holdings returns the current non-zero holdings by symbol.
func (e *Engine) Holdings() map[string]int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.ledger.Holdings()
}

// PendingOrders returns pending orders in placement order.
func (e *Engine) PendingOrders() []orders.Order {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.queue.List()
}

// Transactions returns settled transactions in settlement order.
func (e *Engine) Transactions() []journal.TransactionRecord {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]journal.TransactionRecord, len(e.history))
	copy(out, e.history)
	return out
}
