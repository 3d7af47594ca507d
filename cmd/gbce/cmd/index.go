package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var indexCmd = &cobra.Command{
	Use:   "index <trades.csv>",
	Short: "Print the All Share Index for a file of trades",
	Long: `Records the trades in a CSV file and prints only the All Share Index,
the geometric mean of the volume weighted prices of all traded stocks.

Example:
  gbce index trades.csv --at 2024-06-03T14:05:00Z`,
	Args: cobra.ExactArgs(1),
	RunE: runIndex,
}

var indexAt string

func init() {
	rootCmd.AddCommand(indexCmd)
	indexCmd.Flags().StringVar(&indexAt, "at", "", "index time, RFC3339 (default: newest trade)")
}

func runIndex(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	reqs, err := readTradesFile(args[0])
	if err != nil {
		return fmt.Errorf("read trades: %w", err)
	}
	at, err := parseAt(indexAt, reqs)
	if err != nil {
		return fmt.Errorf("--at: %w", err)
	}

	ex, logger, err := openExchange()
	if err != nil {
		return err
	}
	defer logger.Sync()
	defer ex.Close()

	replayTrades(ctx, ex, logger, reqs)
	idx, err := ex.AllShareIndex(ctx, at)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%.4f\n", idx)
	return nil
}
