package journal

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/rustyeddy/paperbroker/orders"
)

func TestFormatTransactionOrg(t *testing.T) {
	t.Parallel()

	rec := TransactionRecord{
		TxID:      "01J8ZQ4X9GABCDEF12345678AB",
		Side:      orders.Buy,
		Symbol:    "AAPL",
		Price:     decimal.RequireFromString("150"),
		PlacedAt:  time.Date(2026, 8, 31, 10, 29, 0, 0, time.UTC),
		SettledAt: time.Date(2026, 8, 31, 10, 30, 0, 0, time.UTC),
	}

	out := FormatTransactionOrg(rec)

	assert.True(t, strings.HasPrefix(out, "** BUY: AAPL (01J8ZQ4X)"))
	assert.Contains(t, out, ":TX_ID: 01J8ZQ4X9GABCDEF12345678AB")
	assert.Contains(t, out, ":SYMBOL: AAPL")
	assert.Contains(t, out, ":PRICE: 150")
	assert.Contains(t, out, ":SETTLED_AT: 2026-08-31T10:30:00Z")
	assert.Contains(t, out, "*** Review")
}

func TestMemoryJournalAppendOnly(t *testing.T) {
	t.Parallel()

	m := NewMemory()
	assert.Empty(t, m.List())

	rec := TransactionRecord{TxID: "T1", Side: orders.Buy, Symbol: "AAPL", Price: decimal.NewFromInt(150)}
	assert.NoError(t, m.RecordTransaction(rec))

	got := m.List()
	assert.Len(t, got, 1)

	// List hands out copies; callers cannot rewrite history.
	got[0].Symbol = "HACK"
	assert.Equal(t, "AAPL", m.List()[0].Symbol)
}
