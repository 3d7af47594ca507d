package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var quoteCmd = &cobra.Command{
	Use:   "quote <symbol>",
	Short: "Dividend yield and P/E ratio of one stock",
	Long: `Prints the dividend yield and P/E ratio of a listed stock at --price.

Example:
  gbce quote GIN --price 100`,
	Args: cobra.ExactArgs(1),
	RunE: runQuote,
}

var quotePrice float64

func init() {
	rootCmd.AddCommand(quoteCmd)
	quoteCmd.Flags().Float64VarP(&quotePrice, "price", "p", 0, "price to quote at (required)")
	quoteCmd.MarkFlagRequired("price")
}

func runQuote(cmd *cobra.Command, args []string) error {
	ex, logger, err := openExchange()
	if err != nil {
		return err
	}
	defer logger.Sync()
	defer ex.Close()

	sym := args[0]
	dy, err := ex.DividendYield(sym, quotePrice)
	if err != nil {
		return err
	}
	pe, err := ex.PERatio(sym, quotePrice)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s @ %.2f\n", sym, quotePrice)
	fmt.Fprintf(out, "  Dividend Yield: %.4f\n", dy)
	fmt.Fprintf(out, "  P/E Ratio:      %s\n", formatPE(pe))
	return nil
}
