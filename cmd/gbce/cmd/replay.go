package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rustyeddy/gbce/exchange"
)

var replayCmd = &cobra.Command{
	Use:   "replay <trades.csv>",
	Short: "Load trades from CSV and print the market report",
	Long: `Records every trade in a CSV file against a fresh market and prints the
report as of --at (default: the newest trade in the file).

CSV columns: symbol,quantity,side,price[,time]
  POP,200,BUY,150,2024-06-03T14:00:00Z

Rejected rows are logged and skipped.

Examples:
  gbce replay trades.csv
  gbce replay trades.csv --at 2024-06-03T14:05:00Z --price 120`,
	Args: cobra.ExactArgs(1),
	RunE: runReplay,
}

var (
	replayAt    string
	replayPrice float64
)

func init() {
	rootCmd.AddCommand(replayCmd)
	replayCmd.Flags().StringVar(&replayAt, "at", "", "report time, RFC3339")
	replayCmd.Flags().Float64VarP(&replayPrice, "price", "p", 100, "price to quote every stock at")
}

// replayTrades records reqs and returns how many were accepted.
func replayTrades(ctx context.Context, ex *exchange.Exchange, logger *zap.Logger, reqs []exchange.TradeRequest) int {
	n := 0
	for i, req := range reqs {
		if _, err := ex.RecordTrade(ctx, req); err != nil {
			logger.Warn("trade rejected", zap.Int("row", i+1), zap.String("symbol", req.Symbol), zap.Error(err))
			continue
		}
		n++
	}
	return n
}

func runReplay(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	reqs, err := readTradesFile(args[0])
	if err != nil {
		return fmt.Errorf("read trades: %w", err)
	}
	at, err := parseAt(replayAt, reqs)
	if err != nil {
		return fmt.Errorf("--at: %w", err)
	}

	ex, logger, err := openExchange()
	if err != nil {
		return err
	}
	defer logger.Sync()
	defer ex.Close()

	n := replayTrades(ctx, ex, logger, reqs)
	fmt.Fprintf(cmd.OutOrStdout(), "Recorded %d of %d trades\n\n", n, len(reqs))

	r, err := ex.Report(ctx, replayPrice, at)
	if err != nil {
		return err
	}
	return printReport(cmd.OutOrStdout(), r)
}
