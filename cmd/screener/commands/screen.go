package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ztrader/etfscreener/internal/screening"
	"github.com/ztrader/etfscreener/internal/selector"
	"github.com/ztrader/etfscreener/pkg/config"
	"github.com/ztrader/etfscreener/pkg/logger"
)

// screenCmd represents the screen command
var screenCmd = &cobra.Command{
	Use:   "screen",
	Short: "Run one screening pass",
	Long: `Runs the configured selectors against the snapshot directory once
and reports the matching instruments per selector.

With no --date the most recent bar date across the loaded series is used.
With no --codes every snapshot in the data directory is loaded.

Example:
  go run ./cmd/screener screen
  go run ./cmd/screener screen --date 2026-08-24
  go run ./cmd/screener screen --codes 510300,159915 --config configs.json`,
	RunE: runScreen,
}

var (
	screenDate  string
	screenCodes string
)

func init() {
	rootCmd.AddCommand(screenCmd)

	// Flags
	screenCmd.Flags().StringVar(&screenDate, "date", "", "trade date (YYYY-MM-DD, default most recent)")
	screenCmd.Flags().StringVar(&screenCodes, "codes", "", "comma-separated instrument codes (default all)")
}

func runScreen(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer log.Close()

	params := screeningParams(cfg)
	params.Date = screenDate
	params.Codes = screenCodes

	result, err := screening.Run(context.Background(), params, selector.Default(), log)
	if err != nil {
		log.WithError(err).Error("Screening run failed")
		return err
	}

	log.WithFields(map[string]interface{}{
		"trade_date": result.TradeDate.Format("2006-01-02"),
		"matches":    result.TotalMatches(),
	}).Info("Screening run completed")

	return nil
}

// setup loads the environment config and builds the process logger.
func setup() (*config.Config, *logger.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	log := logger.New(cfg)
	return cfg, log, nil
}

// screeningParams merges the environment config with the global flags.
func screeningParams(cfg *config.Config) screening.Params {
	params := screening.Params{
		DataDir:       cfg.DataDir,
		ConfigPath:    cfg.SelectorConfig,
		ReferencePath: cfg.ReferenceFile,
	}
	if dataDir != "" {
		params.DataDir = dataDir
	}
	if configPath != "" {
		params.ConfigPath = configPath
	}
	if refPath != "" {
		params.ReferencePath = refPath
	}
	return params
}
