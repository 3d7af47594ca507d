// market/instruments.go
package market

// Listing is the static description of one equity, as found in config
// files and the sample exchange below.
type Listing struct {
	Symbol        string
	Type          string
	LastDividend  float64
	ParValue      float64
	FixedDividend *float64
}

// Equity builds the validated equity for the listing.
func (l Listing) Equity() (Equity, error) {
	return CreateEquity(l.Symbol, l.Type, l.LastDividend, l.ParValue, l.FixedDividend)
}

func rate(f float64) *float64 { return &f }

// GBCE is the Global Beverage Corporation Exchange sample data.
func GBCE() []Listing {
	return []Listing{
		{Symbol: "TEA", Type: "Common", LastDividend: 0, ParValue: 100},
		{Symbol: "POP", Type: "Common", LastDividend: 8, ParValue: 100},
		{Symbol: "ALE", Type: "Common", LastDividend: 23, ParValue: 60},
		{Symbol: "GIN", Type: "Preferred", LastDividend: 8, ParValue: 100, FixedDividend: rate(0.02)},
		{Symbol: "JOE", Type: "Common", LastDividend: 13, ParValue: 250},
	}
}
