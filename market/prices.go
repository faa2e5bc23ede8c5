package market

import "github.com/shopspring/decimal"

// PriceSource is the engine's view of the catalog. The engine reads a price
// exactly once per order, at placement time.
type PriceSource interface {
	GetPrice(symbol string) (decimal.Decimal, error)
}

// Default returns the built-in demo catalog.
func Default() *Catalog {
	return NewCatalog([]Quote{
		{Symbol: "AAPL", Price: decimal.NewFromInt(150)},
		{Symbol: "GOOGL", Price: decimal.NewFromInt(2800)},
		{Symbol: "AMZN", Price: decimal.NewFromInt(3300)},
	})
}
