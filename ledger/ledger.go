// Package ledger holds the authoritative account state: the cash balance and
// the per-symbol share holdings. Every mutation validates before writing, so
// a failed call leaves the ledger untouched.
package ledger

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrNoHoldings        = errors.New("no holdings")
	ErrInvalidAmount     = errors.New("amount must be positive")
)

// Ledger tracks cash and holdings for a single account. Invariants: cash is
// never negative after a committed operation, and every holding quantity is
// at least zero. A symbol with quantity zero is removed from the map, so
// "absent" and "zero" read the same.
type Ledger struct {
	cash     decimal.Decimal
	holdings map[string]int
}

// New creates a ledger with the given opening cash balance.
func New(openingCash decimal.Decimal) (*Ledger, error) {
	if openingCash.IsNegative() {
		return nil, fmt.Errorf("opening cash %s: %w", openingCash, ErrInvalidAmount)
	}
	return &Ledger{
		cash:     openingCash,
		holdings: make(map[string]int),
	}, nil
}

// Cash returns the current cash balance.
func (l *Ledger) Cash() decimal.Decimal {
	return l.cash
}

// Quantity returns the number of shares held for symbol.
func (l *Ledger) Quantity(symbol string) int {
	return l.holdings[symbol]
}

// Holdings returns a copy of all non-zero holdings.
func (l *Ledger) Holdings() map[string]int {
	out := make(map[string]int, len(l.holdings))
	for sym, qty := range l.holdings {
		out[sym] = qty
	}
	return out
}

// Deposit adds amount to the cash balance. Amount must be positive.
func (l *Ledger) Deposit(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return fmt.Errorf("deposit %s: %w", amount, ErrInvalidAmount)
	}
	l.cash = l.cash.Add(amount)
	return nil
}

// Withdraw removes amount from the cash balance. Amount must be positive and
// no more than the current balance.
func (l *Ledger) Withdraw(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return fmt.Errorf("withdraw %s: %w", amount, ErrInvalidAmount)
	}
	if amount.GreaterThan(l.cash) {
		return fmt.Errorf("withdraw %s with balance %s: %w", amount, l.cash, ErrInsufficientFunds)
	}
	l.cash = l.cash.Sub(amount)
	return nil
}

// ApplyBuy settles a buy of one share of symbol at price: cash decreases by
// price, the holding increases by one. Fails with ErrInsufficientFunds if
// price exceeds the current balance.
func (l *Ledger) ApplyBuy(symbol string, price decimal.Decimal) error {
	if !price.IsPositive() {
		return fmt.Errorf("buy %s at %s: %w", symbol, price, ErrInvalidAmount)
	}
	if price.GreaterThan(l.cash) {
		return fmt.Errorf("buy %s at %s with balance %s: %w", symbol, price, l.cash, ErrInsufficientFunds)
	}
	l.cash = l.cash.Sub(price)
	l.holdings[symbol]++
	return nil
}

// ApplySell settles a sale of one share of symbol at price: cash increases by
// price, the holding decreases by one. Fails with ErrNoHoldings if no share
// of symbol is held.
func (l *Ledger) ApplySell(symbol string, price decimal.Decimal) error {
	if !price.IsPositive() {
		return fmt.Errorf("sell %s at %s: %w", symbol, price, ErrInvalidAmount)
	}
	if l.holdings[symbol] < 1 {
		return fmt.Errorf("sell %s: %w", symbol, ErrNoHoldings)
	}
	l.cash = l.cash.Add(price)
	l.holdings[symbol]--
	if l.holdings[symbol] == 0 {
		delete(l.holdings, symbol)
	}
	return nil
}
