package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/rustyeddy/gbce/exchange"
	"github.com/rustyeddy/gbce/market"
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Record the sample trades and print the market report",
	Long: `Runs the GBCE walkthrough:
  1. List TEA, POP, ALE, GIN and JOE (or the configured equities)
  2. Record POP 200 BUY @ 150, POP 50 SELL @ 125 and GIN 200 BUY @ 150 concurrently
  3. Print dividend yield, P/E and volume weighted price for every stock
  4. Print the All Share Index

Example:
  gbce demo --price 100`,
	Args: cobra.NoArgs,
	RunE: runDemo,
}

var demoPrice float64

var demoTrades = []exchange.TradeRequest{
	{Symbol: "POP", Quantity: 200, Side: market.Buy, Price: 150},
	{Symbol: "POP", Quantity: 50, Side: market.Sell, Price: 125},
	{Symbol: "GIN", Quantity: 200, Side: market.Buy, Price: 150},
}

func init() {
	rootCmd.AddCommand(demoCmd)
	demoCmd.Flags().Float64VarP(&demoPrice, "price", "p", 100, "price to quote every stock at")
}

func runDemo(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	ex, logger, err := openExchange()
	if err != nil {
		return err
	}
	defer logger.Sync()
	defer ex.Close()

	g, gctx := errgroup.WithContext(ctx)
	for _, req := range demoTrades {
		g.Go(func() error {
			_, err := ex.RecordTrade(gctx, req)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	r, err := ex.Report(ctx, demoPrice, ex.Now())
	if err != nil {
		return err
	}
	return printReport(cmd.OutOrStdout(), r)
}
