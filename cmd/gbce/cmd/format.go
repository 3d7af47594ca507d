package cmd

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/rustyeddy/gbce/exchange"
	"github.com/rustyeddy/gbce/metrics"
)

func formatPE(pe float64) string {
	if metrics.IsUnbounded(pe) {
		return "unbounded"
	}
	return fmt.Sprintf("%.2f", pe)
}

func formatVWSP(v float64) string {
	if v == 0 {
		return "n/a"
	}
	return fmt.Sprintf("%.2f", v)
}

func printReport(w io.Writer, r exchange.Report) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "SYMBOL\tPRICE\tDIV YIELD\tP/E\tVWSP (%s)\n", r.Window)
	for _, row := range r.Rows {
		if row.Err != nil {
			fmt.Fprintf(tw, "%s\t%.2f\terror: %v\t\t%s\n", row.Symbol, row.Price, row.Err, formatVWSP(row.VWSP))
			continue
		}
		fmt.Fprintf(tw, "%s\t%.2f\t%.4f\t%s\t%s\n", row.Symbol, row.Price, row.DividendYield, formatPE(row.PERatio), formatVWSP(row.VWSP))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "\nAll Share Index at %s: %.2f\n", r.Time.Format("2006-01-02 15:04:05"), r.AllShareIndex)
	return err
}
