package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rustyeddy/gbce/config"
	"github.com/rustyeddy/gbce/exchange"
)

var rootCmd = &cobra.Command{
	Use:   "gbce",
	Short: "Stock analytics for the Global Beverage Corporation Exchange",
	Long: `gbce records trades against a small listing of common and preferred
stocks and reports their market figures.

It provides:
  - Dividend yield and P/E ratio at a given price
  - Volume weighted stock price over a trailing window (5 minutes by default)
  - The All Share Index, the geometric mean of all volume weighted prices
  - A trade journal in CSV or SQLite

Without --config the GBCE sample listing is used.`,
	SilenceUsage: true,
}

var (
	cfgFile  string
	logLevel string
)

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (YAML or JSON, default: GBCE sample listing)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "override log level (debug, info, warn, error)")
}

func loadConfig() (*config.Config, error) {
	if cfgFile == "" {
		return config.Default(), nil
	}
	cfg, err := config.LoadFromFile(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// openExchange builds the exchange and logger from the config flags. The
// caller closes the exchange and syncs the logger.
func openExchange() (*exchange.Exchange, *zap.Logger, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	logger, err := cfg.Log.Build()
	if err != nil {
		return nil, nil, fmt.Errorf("build logger: %w", err)
	}
	ex, err := exchange.FromConfig(cfg, logger)
	if err != nil {
		_ = logger.Sync()
		return nil, nil, err
	}
	return ex, logger, nil
}
