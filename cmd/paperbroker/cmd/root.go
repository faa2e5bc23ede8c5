package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "paperbroker",
	Short: "A single-account paper trading simulator",
	Long: `Paperbroker simulates a single-user trading account in memory.

It provides tools for:
  - Placing deferred-settlement buy/sell orders against a static price catalog
  - Settling or cancelling pending orders
  - Depositing and withdrawing cash
  - Recording settled transactions to CSV or SQLite journals
  - Querying past transactions

Complete documentation is available at https://github.com/rustyeddy/paperbroker`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}
