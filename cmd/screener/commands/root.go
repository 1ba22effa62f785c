package commands

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	dataDir    string
	configPath string
	refPath    string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "screener",
	Short: "ETF screening pipeline over daily OHLCV snapshots",
	Long: `screener - configurable end-of-day screening for exchange-traded instruments.

Loads per-instrument CSV snapshots, runs the configured selectors against
a trade date, and reports the matching instruments.

Usage:
  go run ./cmd/screener [command]

Examples:
  go run ./cmd/screener screen
  go run ./cmd/screener screen --date 2026-08-24 --codes 510300,159915
  go run ./cmd/screener serve
  go run ./cmd/screener schedule`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "snapshot directory (default $DATA_DIR)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "selector config file (default $SELECTOR_CONFIG)")
	rootCmd.PersistentFlags().StringVar(&refPath, "info", "", "reference metadata CSV (default $REFERENCE_FILE)")
}
