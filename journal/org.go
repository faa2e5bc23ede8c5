package journal

import (
	"fmt"
	"strings"
	"time"
)

// FormatTransactionOrg renders a TransactionRecord as an Org-mode block
// suitable for pasting into a trading journal. Structured facts live in a
// PROPERTIES drawer for easy search; the Review heading is left blank for
// narrative.
func FormatTransactionOrg(rec TransactionRecord) string {
	heading := fmt.Sprintf("** %s: %s (%s)", strings.ToUpper(string(rec.Side)), rec.Symbol, shortID(rec.TxID))
	placed := rec.PlacedAt.UTC().Format(time.RFC3339)
	settled := rec.SettledAt.UTC().Format(time.RFC3339)

	var b strings.Builder
	b.WriteString(heading)
	b.WriteString("\n")
	b.WriteString(":PROPERTIES:\n")
	b.WriteString(fmt.Sprintf(":TX_ID: %s\n", rec.TxID))
	b.WriteString(fmt.Sprintf(":SIDE: %s\n", rec.Side))
	b.WriteString(fmt.Sprintf(":SYMBOL: %s\n", rec.Symbol))
	b.WriteString(fmt.Sprintf(":PRICE: %s\n", rec.Price))
	b.WriteString(fmt.Sprintf(":PLACED_AT: %s\n", placed))
	b.WriteString(fmt.Sprintf(":SETTLED_AT: %s\n", settled))
	b.WriteString(":END:\n")
	b.WriteString("\n")
	b.WriteString("*** Review\n- \n")

	return b.String()
}

// FormatTransactionsOrg renders multiple records separated by blank lines.
func FormatTransactionsOrg(recs []TransactionRecord) string {
	var b strings.Builder
	for i, rec := range recs {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(FormatTransactionOrg(rec))
	}
	return b.String()
}

func shortID(full string) string {
	if len(full) <= 8 {
		return full
	}
	return full[:8]
}
