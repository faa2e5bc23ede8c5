// Package market provides the read-only price catalog the trading engine
// quotes from. The catalog stands in for a live market-data feed: prices are
// loaded once and never change during a session.
package market

import (
	"errors"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

var ErrUnknownSymbol = errors.New("unknown symbol")

// Quote is a single catalog entry.
type Quote struct {
	Symbol string
	Price  decimal.Decimal
}

// Catalog maps instrument symbols to their current price. It is read-only
// after construction; the engine only ever calls GetPrice.
type Catalog struct {
	quotes map[string]decimal.Decimal
}

func NewCatalog(quotes []Quote) *Catalog {
	c := &Catalog{quotes: make(map[string]decimal.Decimal, len(quotes))}
	for _, q := range quotes {
		c.quotes[q.Symbol] = q.Price
	}
	return c
}

// GetPrice returns the catalog price for symbol, or ErrUnknownSymbol.
func (c *Catalog) GetPrice(symbol string) (decimal.Decimal, error) {
	p, ok := c.quotes[symbol]
	if !ok {
		return decimal.Decimal{}, fmt.Errorf("get price %q: %w", symbol, ErrUnknownSymbol)
	}
	return p, nil
}

// List returns all quotes sorted by symbol, for display.
func (c *Catalog) List() []Quote {
	out := make([]Quote, 0, len(c.quotes))
	for sym, p := range c.quotes {
		out = append(out, Quote{Symbol: sym, Price: p})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Symbol < out[j].Symbol })
	return out
}
