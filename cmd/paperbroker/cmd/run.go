package cmd

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/rustyeddy/paperbroker/config"
	"github.com/rustyeddy/paperbroker/engine"
	"github.com/rustyeddy/paperbroker/journal"
	"github.com/rustyeddy/paperbroker/ledger"
	"github.com/rustyeddy/paperbroker/market"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a scripted trading session from a config file",
	Long: `Run a trading session using settings from a configuration file.

The config file specifies the account's opening cash, the price catalog, the
journal sink, and an ordered list of session steps (deposit, withdraw, buy,
sell, settle, cancel).

Example:
  paperbroker run --config session.yaml`,
	RunE: runRun,
}

var runConfigPath string

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&runConfigPath, "config", "f", "", "path to config file (YAML or JSON) (required)")
	runCmd.MarkFlagRequired("config")
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadFromFile(runConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	fmt.Printf("Running session with config: %s\n", runConfigPath)
	fmt.Printf("  Account: %s (Cash: $%.2f %s)\n", cfg.Account.ID, cfg.Account.OpeningCash, cfg.Account.Currency)
	fmt.Printf("  Journal: %s\n\n", cfg.Journal.Type)

	j, err := openJournal(cfg.Journal)
	if err != nil {
		return fmt.Errorf("create journal: %w", err)
	}
	defer j.Close()

	quotes := make([]market.Quote, 0, len(cfg.Catalog))
	for _, q := range cfg.Catalog {
		quotes = append(quotes, market.Quote{
			Symbol: q.Symbol,
			Price:  decimal.NewFromFloat(q.Price),
		})
	}

	l, err := ledger.New(decimal.NewFromFloat(cfg.Account.OpeningCash))
	if err != nil {
		return fmt.Errorf("open ledger: %w", err)
	}

	eng := engine.New(l, market.NewCatalog(quotes), j)

	ctx := context.Background()
	for i, step := range cfg.Session {
		if err := runStep(ctx, eng, step); err != nil {
			// Validation failures are part of a session, not a reason to
			// abort it. Report and continue.
			fmt.Printf("step %d (%s): %v\n", i+1, step.Action, err)
		}
	}

	fmt.Printf("\nFinal Results:\n")
	fmt.Printf("  Cash: $%s\n", eng.Cash().StringFixed(2))
	for sym, qty := range eng.Holdings() {
		fmt.Printf("  Holding: %s x%d\n", sym, qty)
	}
	fmt.Printf("  Pending orders: %d\n", len(eng.PendingOrders()))
	fmt.Printf("  Settled transactions: %d\n", len(eng.Transactions()))
	if cfg.Journal.Type == "csv" {
		fmt.Printf("\nResults saved to: %s\n", cfg.Journal.File)
	} else if cfg.Journal.Type == "sqlite" {
		fmt.Printf("\nResults saved to: %s\n", cfg.Journal.DBPath)
	}

	return nil
}

func runStep(ctx context.Context, eng *engine.Engine, step config.Step) error {
	switch step.Action {
	case "deposit":
		amt := decimal.NewFromFloat(step.Amount)
		if err := eng.Deposit(amt); err != nil {
			return err
		}
		fmt.Printf("DEPOSIT  $%s -> cash $%s\n", amt.StringFixed(2), eng.Cash().StringFixed(2))

	case "withdraw":
		amt := decimal.NewFromFloat(step.Amount)
		if err := eng.Withdraw(amt); err != nil {
			return err
		}
		fmt.Printf("WITHDRAW $%s -> cash $%s\n", amt.StringFixed(2), eng.Cash().StringFixed(2))

	case "buy":
		o, err := eng.PlaceBuy(ctx, step.Symbol)
		if err != nil {
			return err
		}
		fmt.Printf("BUY      %s at $%s pending order=%s\n", o.Symbol, o.Price.StringFixed(2), o.ID)

	case "sell":
		o, err := eng.PlaceSell(ctx, step.Symbol)
		if err != nil {
			return err
		}
		fmt.Printf("SELL     %s at $%s pending order=%s\n", o.Symbol, o.Price.StringFixed(2), o.ID)

	case "settle":
		id, err := oldestPending(eng, step.Symbol)
		if err != nil {
			return err
		}
		rec, err := eng.Settle(ctx, id)
		if err != nil {
			return err
		}
		fmt.Printf("SETTLE   %s %s at $%s -> cash $%s\n",
			rec.Side, rec.Symbol, rec.Price.StringFixed(2), eng.Cash().StringFixed(2))

	case "cancel":
		id, err := oldestPending(eng, step.Symbol)
		if err != nil {
			return err
		}
		if err := eng.Cancel(ctx, id); err != nil {
			return err
		}
		fmt.Printf("CANCEL   order=%s\n", id)
	}
	return nil
}

// oldestPending returns the id of the oldest pending order, narrowed to
// symbol when one is given.
func oldestPending(eng *engine.Engine, symbol string) (string, error) {
	for _, o := range eng.PendingOrders() {
		if symbol == "" || o.Symbol == symbol {
			return o.ID, nil
		}
	}
	if symbol != "" {
		return "", fmt.Errorf("no pending order for %s", symbol)
	}
	return "", fmt.Errorf("no pending orders")
}

func openJournal(cfg config.JournalConfig) (journal.Journal, error) {
	switch cfg.Type {
	case "csv":
		return journal.NewCSV(cfg.File)
	case "sqlite":
		return journal.NewSQLite(cfg.DBPath)
	default:
		return journal.NewMemory(), nil
	}
}
