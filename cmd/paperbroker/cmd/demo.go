package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/rustyeddy/paperbroker/engine"
	"github.com/rustyeddy/paperbroker/journal"
	"github.com/rustyeddy/paperbroker/ledger"
	"github.com/rustyeddy/paperbroker/market"
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run example trading sessions",
	Long: `Run various example trading sessions to learn how the system works.

Available demos:
  basic  - Deposit, buy, settle, withdraw against the default catalog
  race   - Two sells of a single held share; only the first settles
  cancel - Place an order, cancel it, show the cancel is idempotent

Examples:
  paperbroker demo basic
  paperbroker demo race`,
}

var demoBasicCmd = &cobra.Command{
	Use:   "basic",
	Short: "Run a basic buy-and-settle demo",
	Long: `Demonstrates the basic account workflow:
  1. Opening the account with $10,000 cash
  2. Depositing and withdrawing cash
  3. Placing a buy order at the catalog price
  4. Settling the pending order
  5. Reading back the transaction history`,
	RunE: runDemoBasic,
}

var demoRaceCmd = &cobra.Command{
	Use:   "race",
	Short: "Run the two-sells-one-share demo",
	Long: `Demonstrates why settlement re-validates against the ledger.

Two sell orders for the same single held share both pass the advisory
placement pre-check. The first to settle succeeds; the second fails with
a no-holdings error and is discarded without touching the cash balance.`,
	RunE: runDemoRace,
}

var demoCancelCmd = &cobra.Command{
	Use:   "cancel",
	Short: "Run the order cancellation demo",
	Long: `Demonstrates order cancellation:
  - Cancelling a pending order discards it with no ledger effect
  - Cancelling the same order again reports order-not-found`,
	RunE: runDemoCancel,
}

func init() {
	rootCmd.AddCommand(demoCmd)
	demoCmd.AddCommand(demoBasicCmd)
	demoCmd.AddCommand(demoRaceCmd)
	demoCmd.AddCommand(demoCancelCmd)
}

func newDemoEngine(openingCash int64) (*engine.Engine, error) {
	l, err := ledger.New(decimal.NewFromInt(openingCash))
	if err != nil {
		return nil, err
	}
	return engine.New(l, market.Default(), journal.NewMemory()), nil
}

func runDemoBasic(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	fmt.Println("=== Basic Account Demo ===")
	fmt.Println()

	eng, err := newDemoEngine(10_000)
	if err != nil {
		return err
	}
	fmt.Printf("Opening cash: $%s\n\n", eng.Cash().StringFixed(2))

	if err := eng.Deposit(decimal.NewFromInt(1000)); err != nil {
		return err
	}
	fmt.Printf("Deposited $1000.00 -> cash $%s\n", eng.Cash().StringFixed(2))

	o, err := eng.PlaceBuy(ctx, "AAPL")
	if err != nil {
		return err
	}
	fmt.Printf("Placed BUY %s at $%s (order %s)\n", o.Symbol, o.Price.StringFixed(2), o.ID)
	fmt.Printf("Pending orders: %d\n\n", len(eng.PendingOrders()))

	rec, err := eng.Settle(ctx, o.ID)
	if err != nil {
		return err
	}
	fmt.Printf("Settled at %s\n", rec.SettledAt.Format("15:04:05"))
	fmt.Printf("  Cash: $%s\n", eng.Cash().StringFixed(2))
	for sym, qty := range eng.Holdings() {
		fmt.Printf("  Holding: %s x%d\n", sym, qty)
	}
	fmt.Println()

	if err := eng.Withdraw(decimal.NewFromInt(1000)); err != nil {
		return err
	}
	fmt.Printf("Withdrew $1000.00 -> cash $%s\n\n", eng.Cash().StringFixed(2))

	fmt.Println("Transaction history:")
	for _, tx := range eng.Transactions() {
		fmt.Printf("  %s %s $%s at %s\n", tx.Side, tx.Symbol, tx.Price.StringFixed(2),
			tx.SettledAt.Format("15:04:05"))
	}

	return nil
}

func runDemoRace(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	fmt.Println("=== Settlement Re-Validation Demo ===")
	fmt.Println()

	eng, err := newDemoEngine(10_000)
	if err != nil {
		return err
	}

	// Acquire one share of AAPL first.
	o, err := eng.PlaceBuy(ctx, "AAPL")
	if err != nil {
		return err
	}
	if _, err := eng.Settle(ctx, o.ID); err != nil {
		return err
	}
	fmt.Printf("Bought 1 AAPL, cash $%s\n\n", eng.Cash().StringFixed(2))

	first, err := eng.PlaceSell(ctx, "AAPL")
	if err != nil {
		return err
	}
	second, err := eng.PlaceSell(ctx, "AAPL")
	if err != nil {
		return err
	}
	fmt.Printf("Placed two SELL orders for the same share: %s, %s\n", first.ID, second.ID)
	fmt.Println("Both passed the advisory pre-check (holdings=1 at placement).")
	fmt.Println()

	if _, err := eng.Settle(ctx, first.ID); err != nil {
		return err
	}
	fmt.Printf("First settle succeeded: cash $%s, AAPL held: %d\n",
		eng.Cash().StringFixed(2), eng.Holdings()["AAPL"])

	_, err = eng.Settle(ctx, second.ID)
	if !errors.Is(err, ledger.ErrNoHoldings) {
		return fmt.Errorf("expected no-holdings failure, got: %v", err)
	}
	fmt.Printf("Second settle rejected: %v\n", err)
	fmt.Printf("Cash unchanged at $%s; order discarded (pending: %d)\n",
		eng.Cash().StringFixed(2), len(eng.PendingOrders()))

	return nil
}

func runDemoCancel(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	fmt.Println("=== Cancellation Demo ===")
	fmt.Println()

	eng, err := newDemoEngine(10_000)
	if err != nil {
		return err
	}

	o, err := eng.PlaceBuy(ctx, "GOOGL")
	if err != nil {
		return err
	}
	fmt.Printf("Placed BUY %s at $%s (order %s)\n", o.Symbol, o.Price.StringFixed(2), o.ID)

	if err := eng.Cancel(ctx, o.ID); err != nil {
		return err
	}
	fmt.Printf("Cancelled order; cash still $%s, pending: %d\n",
		eng.Cash().StringFixed(2), len(eng.PendingOrders()))

	err = eng.Cancel(ctx, o.ID)
	fmt.Printf("Cancelling again reports: %v\n", err)

	return nil
}
