package engine

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/rustyeddy/paperbroker/journal"
	"github.com/rustyeddy/paperbroker/ledger"
	"github.com/rustyeddy/paperbroker/market"
	"github.com/rustyeddy/paperbroker/orders"
)

// stubPrices lets a test move the market after an order is placed, to prove
// that settlement uses the captured price.
type stubPrices struct {
	prices map[string]decimal.Decimal
}

func (s *stubPrices) GetPrice(symbol string) (decimal.Decimal, error) {
	p, ok := s.prices[symbol]
	if !ok {
		return decimal.Decimal{}, market.ErrUnknownSymbol
	}
	return p, nil
}

func d(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

func newTestEngine(t *testing.T, cash int64) (*Engine, *journal.Memory) {
	t.Helper()
	l, err := ledger.New(d(cash))
	if err != nil {
		t.Fatalf("new ledger: %v", err)
	}
	j := journal.NewMemory()
	return New(l, market.Default(), j), j
}

func placeBuy(t *testing.T, e *Engine, symbol string) orders.Order {
	t.Helper()
	o, err := e.PlaceBuy(context.Background(), symbol)
	if err != nil {
		t.Fatalf("place buy %s: %v", symbol, err)
	}
	return o
}

func placeSell(t *testing.T, e *Engine, symbol string) orders.Order {
	t.Helper()
	o, err := e.PlaceSell(context.Background(), symbol)
	if err != nil {
		t.Fatalf("place sell %s: %v", symbol, err)
	}
	return o
}

func settle(t *testing.T, e *Engine, id string) journal.TransactionRecord {
	t.Helper()
	rec, err := e.Settle(context.Background(), id)
	if err != nil {
		t.Fatalf("settle %s: %v", id, err)
	}
	return rec
}

func TestBuySettleUpdatesLedger(t *testing.T) {
	e, j := newTestEngine(t, 10000)

	o := placeBuy(t, e, "AAPL")
	if o.Status != orders.Pending {
		t.Fatalf("expected pending order, got %s", o.Status)
	}
	if len(e.PendingOrders()) != 1 {
		t.Fatalf("expected 1 pending order, got %d", len(e.PendingOrders()))
	}

	rec := settle(t, e, o.ID)

	if !e.Cash().Equal(d(9850)) {
		t.Fatalf("cash mismatch: got %s want 9850", e.Cash())
	}
	if e.Holdings()["AAPL"] != 1 {
		t.Fatalf("expected 1 AAPL held, got %d", e.Holdings()["AAPL"])
	}
	if len(e.PendingOrders()) != 0 {
		t.Fatalf("expected empty queue after settle")
	}
	if rec.TxID != o.ID || rec.Side != orders.Buy || !rec.Price.Equal(d(150)) {
		t.Fatalf("bad record: %+v", rec)
	}
	if rec.SettledAt.Before(rec.PlacedAt) {
		t.Fatalf("settlement time precedes placement time")
	}
	if len(j.List()) != 1 || len(e.Transactions()) != 1 {
		t.Fatalf("expected exactly one transaction record")
	}
}

func TestPlaceBuyRejectedWhenCashShort(t *testing.T) {
	e, _ := newTestEngine(t, 100)

	_, err := e.PlaceBuy(context.Background(), "GOOGL")
	if !errors.Is(err, ledger.ErrInsufficientFunds) {
		t.Fatalf("expected insufficient funds, got %v", err)
	}
	if len(e.PendingOrders()) != 0 {
		t.Fatalf("rejected intent must not create an order")
	}
	if !e.Cash().Equal(d(100)) {
		t.Fatalf("cash changed: %s", e.Cash())
	}
}

func TestPlaceSellRejectedWithoutHoldings(t *testing.T) {
	e, _ := newTestEngine(t, 10000)

	_, err := e.PlaceSell(context.Background(), "AMZN")
	if !errors.Is(err, ledger.ErrNoHoldings) {
		t.Fatalf("expected no holdings, got %v", err)
	}
	if len(e.PendingOrders()) != 0 {
		t.Fatalf("rejected intent must not create an order")
	}
}

func TestPlaceUnknownSymbol(t *testing.T) {
	e, _ := newTestEngine(t, 10000)

	_, err := e.PlaceBuy(context.Background(), "MSFT")
	if !errors.Is(err, market.ErrUnknownSymbol) {
		t.Fatalf("expected unknown symbol, got %v", err)
	}
}

func TestSecondSellOfSameShareFailsAtSettlement(t *testing.T) {
	e, j := newTestEngine(t, 10000)

	o := placeBuy(t, e, "AAPL")
	settle(t, e, o.ID)

	// Both sells pass the advisory pre-check while holdings=1.
	first := placeSell(t, e, "AAPL")
	second := placeSell(t, e, "AAPL")
	if len(e.PendingOrders()) != 2 {
		t.Fatalf("expected both sells pending, got %d", len(e.PendingOrders()))
	}

	settle(t, e, first.ID)
	if e.Holdings()["AAPL"] != 0 {
		t.Fatalf("expected holdings drained, got %d", e.Holdings()["AAPL"])
	}
	cashAfterFirst := e.Cash()

	_, err := e.Settle(context.Background(), second.ID)
	if !errors.Is(err, ledger.ErrNoHoldings) {
		t.Fatalf("expected no holdings at settlement, got %v", err)
	}
	if !e.Cash().Equal(cashAfterFirst) {
		t.Fatalf("failed settlement changed cash: %s", e.Cash())
	}
	if len(e.PendingOrders()) != 0 {
		t.Fatalf("failed order must be discarded, not returned to pending")
	}
	if len(j.List()) != 2 {
		t.Fatalf("expected 2 records (buy + first sell), got %d", len(j.List()))
	}

	// Settling the discarded order again reports not found.
	_, err = e.Settle(context.Background(), second.ID)
	if !errors.Is(err, orders.ErrOrderNotFound) {
		t.Fatalf("expected order not found, got %v", err)
	}
}

func TestDepositWithdrawRoundTrip(t *testing.T) {
	e, _ := newTestEngine(t, 10000)

	if err := e.Deposit(d(1000)); err != nil {
		t.Fatalf("deposit: %v", err)
	}
	if err := e.Withdraw(d(1000)); err != nil {
		t.Fatalf("withdraw: %v", err)
	}
	if !e.Cash().Equal(d(10000)) {
		t.Fatalf("round trip not exact: %s", e.Cash())
	}
}

func TestWithdrawValidationDelegated(t *testing.T) {
	e, _ := newTestEngine(t, 100)

	if err := e.Withdraw(d(101)); !errors.Is(err, ledger.ErrInsufficientFunds) {
		t.Fatalf("expected insufficient funds, got %v", err)
	}
	if err := e.Deposit(d(0)); !errors.Is(err, ledger.ErrInvalidAmount) {
		t.Fatalf("expected invalid amount, got %v", err)
	}
}

func TestCancelIsIdempotentlyReported(t *testing.T) {
	e, _ := newTestEngine(t, 10000)

	o := placeBuy(t, e, "AAPL")
	if err := e.Cancel(context.Background(), o.ID); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if !e.Cash().Equal(d(10000)) {
		t.Fatalf("cancel must not touch the ledger: %s", e.Cash())
	}
	if len(e.PendingOrders()) != 0 {
		t.Fatalf("cancelled order still pending")
	}

	// Cancelled, settled, or unknown ids all report the same recoverable error.
	if err := e.Cancel(context.Background(), o.ID); !errors.Is(err, orders.ErrOrderNotFound) {
		t.Fatalf("expected order not found, got %v", err)
	}

	settled := placeBuy(t, e, "AAPL")
	settle(t, e, settled.ID)
	if err := e.Cancel(context.Background(), settled.ID); !errors.Is(err, orders.ErrOrderNotFound) {
		t.Fatalf("expected order not found for settled id, got %v", err)
	}
}

func TestSettleUsesCapturedPriceNotCurrent(t *testing.T) {
	prices := &stubPrices{prices: map[string]decimal.Decimal{"AAPL": d(150)}}
	l, err := ledger.New(d(10000))
	if err != nil {
		t.Fatalf("new ledger: %v", err)
	}
	e := New(l, prices, journal.NewMemory())

	o := placeBuy(t, e, "AAPL")

	// Market moves after placement; settlement must ignore it.
	prices.prices["AAPL"] = d(200)

	rec := settle(t, e, o.ID)
	if !rec.Price.Equal(d(150)) {
		t.Fatalf("expected captured price 150, got %s", rec.Price)
	}
	if !e.Cash().Equal(d(9850)) {
		t.Fatalf("expected cash 9850, got %s", e.Cash())
	}
}

// Ledger conservation: settled buys minus settled sells, plus net deposits
// and withdrawals, must equal the change in cash.
func TestLedgerConservation(t *testing.T) {
	e, _ := newTestEngine(t, 10000)
	ctx := context.Background()

	if err := e.Deposit(d(2000)); err != nil {
		t.Fatalf("deposit: %v", err)
	}
	b1 := placeBuy(t, e, "AAPL")
	settle(t, e, b1.ID)
	b2 := placeBuy(t, e, "GOOGL")
	settle(t, e, b2.ID)
	s1 := placeSell(t, e, "AAPL")
	settle(t, e, s1.ID)
	if err := e.Withdraw(d(500)); err != nil {
		t.Fatalf("withdraw: %v", err)
	}

	// A cancelled order must not enter the books.
	c := placeBuy(t, e, "AAPL")
	if err := e.Cancel(ctx, c.ID); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	net := decimal.Zero
	for _, tx := range e.Transactions() {
		switch tx.Side {
		case orders.Buy:
			net = net.Sub(tx.Price)
		case orders.Sell:
			net = net.Add(tx.Price)
		}
	}
	netExternal := d(2000).Sub(d(500))

	want := d(10000).Add(netExternal).Add(net)
	if !e.Cash().Equal(want) {
		t.Fatalf("conservation violated: cash %s want %s", e.Cash(), want)
	}
	if e.Cash().IsNegative() {
		t.Fatalf("cash went negative: %s", e.Cash())
	}
	for sym, qty := range e.Holdings() {
		if qty < 0 {
			t.Fatalf("negative holding %s: %d", sym, qty)
		}
	}
}

func TestOrderIDsAreUnique(t *testing.T) {
	e, _ := newTestEngine(t, 1_000_000)

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		o := placeBuy(t, e, "AAPL")
		if seen[o.ID] {
			t.Fatalf("duplicate order id %s", o.ID)
		}
		seen[o.ID] = true
	}
}
