// Package orders defines market orders and the queue of orders awaiting
// settlement.
package orders

import (
	"time"

	"github.com/shopspring/decimal"
)

// Side distinguishes buy orders from sell orders.
type Side string

const (
	Buy  Side = "buy"
	Sell Side = "sell"
)

// Status tracks the order lifecycle. Settled and Cancelled are terminal; an
// order never re-enters Pending.
type Status string

const (
	Pending   Status = "pending"
	Settled   Status = "settled"
	Cancelled Status = "cancelled"
)

// Order is a single-share market order. Price is captured when the order is
// placed and is the price applied at settlement — it is never re-read from
// the catalog, even if the market has moved.
type Order struct {
	ID       string
	Side     Side
	Symbol   string
	Price    decimal.Decimal
	Status   Status
	PlacedAt time.Time
}
