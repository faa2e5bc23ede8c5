// Package engine orchestrates the trading account: it validates intents,
// creates and settles orders, and is the sole mutator of the ledger, the
// order queue, and the transaction log.
package engine

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rustyeddy/paperbroker/internal/id"
	"github.com/rustyeddy/paperbroker/journal"
	"github.com/rustyeddy/paperbroker/ledger"
	"github.com/rustyeddy/paperbroker/market"
	"github.com/rustyeddy/paperbroker/orders"
)

type Engine struct {
	mu      sync.Mutex
	ledger  *ledger.Ledger
	queue   *orders.Queue
	prices  market.PriceSource
	journal journal.Journal
	history []journal.TransactionRecord
}

// New creates an engine over the given ledger and price source. Every
// settlement is appended to the in-memory transaction log and forwarded to j;
// pass journal.Discard{} when no sink is wanted.
func New(l *ledger.Ledger, prices market.PriceSource, j journal.Journal) *Engine {
	return &Engine{
		ledger:  l,
		queue:   orders.NewQueue(),
		prices:  prices,
		journal: j,
	}
}

// PlaceBuy creates a pending buy order for one share of symbol at the current
// catalog price. The cash pre-check is advisory: it gives early feedback, but
// settlement re-validates against the ledger as it stands then. A failed
// pre-check creates no order.
func (e *Engine) PlaceBuy(ctx context.Context, symbol string) (orders.Order, error) {
	_ = ctx // reserved for future cancellation checks

	e.mu.Lock()
	defer e.mu.Unlock()

	price, err := e.prices.GetPrice(symbol)
	if err != nil {
		return orders.Order{}, fmt.Errorf("place buy: %w", err)
	}
	if price.GreaterThan(e.ledger.Cash()) {
		return orders.Order{}, fmt.Errorf("place buy %s at %s with balance %s: %w",
			symbol, price, e.ledger.Cash(), ledger.ErrInsufficientFunds)
	}

	return e.enqueueLocked(orders.Buy, symbol, price), nil
}

// PlaceSell creates a pending sell order for one share of symbol at the
// current catalog price. The holdings pre-check is advisory, same as PlaceBuy:
// two sells of a single held share can both sit in the queue, and only the
// first to settle will succeed.
func (e *Engine) PlaceSell(ctx context.Context, symbol string) (orders.Order, error) {
	_ = ctx

	e.mu.Lock()
	defer e.mu.Unlock()

	price, err := e.prices.GetPrice(symbol)
	if err != nil {
		return orders.Order{}, fmt.Errorf("place sell: %w", err)
	}
	if e.ledger.Quantity(symbol) < 1 {
		return orders.Order{}, fmt.Errorf("place sell %s: %w", symbol, ledger.ErrNoHoldings)
	}

	return e.enqueueLocked(orders.Sell, symbol, price), nil
}

func (e *Engine) enqueueLocked(side orders.Side, symbol string, price decimal.Decimal) orders.Order {
	o := &orders.Order{
		ID:       id.New(),
		Side:     side,
		Symbol:   symbol,
		Price:    price,
		Status:   orders.Pending,
		PlacedAt: time.Now(),
	}
	e.queue.Enqueue(o)
	return *o
}

// Settle applies the pending order with the given id to the ledger at the
// order's captured price and records the transaction. The ledger is
// re-validated here regardless of the placement-time pre-check; if the
// validation fails the order is removed from the queue and the error is
// returned — it is not retried and does not return to pending.
func (e *Engine) Settle(ctx context.Context, orderID string) (journal.TransactionRecord, error) {
	_ = ctx

	e.mu.Lock()
	defer e.mu.Unlock()

	o, err := e.queue.TakeForSettlement(orderID)
	if err != nil {
		return journal.TransactionRecord{}, fmt.Errorf("settle: %w", err)
	}

	switch o.Side {
	case orders.Buy:
		err = e.ledger.ApplyBuy(o.Symbol, o.Price)
	case orders.Sell:
		err = e.ledger.ApplySell(o.Symbol, o.Price)
	default:
		err = fmt.Errorf("unknown order side %q", o.Side)
	}
	if err != nil {
		return journal.TransactionRecord{}, fmt.Errorf("settle %s: %w", o.ID, err)
	}

	o.Status = orders.Settled

	rec := journal.TransactionRecord{
		TxID:      o.ID,
		Side:      o.Side,
		Symbol:    o.Symbol,
		Price:     o.Price,
		PlacedAt:  o.PlacedAt,
		SettledAt: time.Now(),
	}
	e.history = append(e.history, rec)

	if err := e.journal.RecordTransaction(rec); err != nil {
		return rec, fmt.Errorf("settle %s: record transaction: %w", o.ID, err)
	}
	return rec, nil
}

// Cancel removes the pending order with the given id. Cancelling an unknown
// or already-settled order reports orders.ErrOrderNotFound and changes
// nothing; the ledger is never touched.
func (e *Engine) Cancel(ctx context.Context, orderID string) error {
	_ = ctx

	e.mu.Lock()
	defer e.mu.Unlock()

	if _, err := e.queue.Cancel(orderID); err != nil {
		return err
	}
	return nil
}

// Deposit adds cash to the account.
func (e *Engine) Deposit(amount decimal.Decimal) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.ledger.Deposit(amount)
}

// Withdraw removes cash from the account.
func (e *Engine) Withdraw(amount decimal.Decimal) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.ledger.Withdraw(amount)
}
