package journal

import (
	"fmt"
	"strings"
	"time"
)

// FormatTradeOrg renders a TradeRecord as an Org-mode entry with the trade
// facts in a PROPERTIES drawer, so journals stay searchable.
func FormatTradeOrg(t TradeRecord) string {
	var b strings.Builder
	fmt.Fprintf(&b, "** %s %s %d @ %.2f (%s)\n", t.Symbol, t.Side, t.Quantity, t.Price, shortID(t.TradeID))
	b.WriteString(":PROPERTIES:\n")
	fmt.Fprintf(&b, ":TRADE_ID: %s\n", t.TradeID)
	fmt.Fprintf(&b, ":SYMBOL: %s\n", t.Symbol)
	fmt.Fprintf(&b, ":SIDE: %s\n", t.Side)
	fmt.Fprintf(&b, ":QUANTITY: %d\n", t.Quantity)
	fmt.Fprintf(&b, ":PRICE: %.4f\n", t.Price)
	fmt.Fprintf(&b, ":NOTIONAL: %.2f\n", t.Trade().Notional())
	fmt.Fprintf(&b, ":TIME: %s\n", t.Time.UTC().Format(time.RFC3339))
	b.WriteString(":END:\n")
	return b.String()
}

// FormatTradesOrg renders multiple trades under a count heading.
func FormatTradesOrg(trades []TradeRecord) string {
	var b strings.Builder
	fmt.Fprintf(&b, "* Trades (%d)\n", len(trades))
	for _, t := range trades {
		b.WriteString(FormatTradeOrg(t))
	}
	return b.String()
}

// shortID keeps the random tail of a ULID; the time prefix is already in
// the drawer.
func shortID(full string) string {
	if len(full) <= 8 {
		return full
	}
	return full[len(full)-8:]
}
