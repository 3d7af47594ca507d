package metrics

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"math"
	"runtime"
	"slices"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/rustyeddy/gbce/market"
)

// Snapshot computes the volume weighted price of every listed equity in
// parallel. A symbol that fails is left out of the map and its error joined
// into the returned error; the other symbols are unaffected.
func Snapshot(ctx context.Context, m *market.Market, now time.Time, window time.Duration) (map[string]float64, error) {
	return snapshot(ctx, m.Symbols(), func(sym string) (float64, error) {
		l, err := m.Ledger(sym)
		if err != nil {
			return 0, err
		}
		return VolumeWeightedPrice(l, now, window)
	})
}

func snapshot(ctx context.Context, symbols []string, price func(string) (float64, error)) (map[string]float64, error) {
	prices := make([]float64, len(symbols))
	errs := make([]error, len(symbols))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, sym := range symbols {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				errs[i] = err
				return nil
			}
			prices[i], errs[i] = price(sym)
			return nil
		})
	}
	_ = g.Wait()

	out := make(map[string]float64, len(symbols))
	var failed []error
	for i, sym := range symbols {
		if errs[i] != nil {
			failed = append(failed, fmt.Errorf("%s: %w", sym, errs[i]))
			continue
		}
		out[sym] = prices[i]
	}
	return out, errors.Join(failed...)
}

// AllShareIndex is the geometric mean of the positive volume weighted
// prices across the market. It returns 0 when no equity has traded within
// the window. Per-symbol failures are reported alongside the index computed
// from the remaining symbols.
func AllShareIndex(ctx context.Context, m *market.Market, now time.Time, window time.Duration) (float64, error) {
	snap, err := Snapshot(ctx, m, now, window)
	return indexOf(snap), err
}

func indexOf(snap map[string]float64) float64 {
	values := make([]float64, 0, len(snap))
	for _, sym := range slices.Sorted(maps.Keys(snap)) {
		values = append(values, snap[sym])
	}
	return GeometricMean(values)
}

// GeometricMean is the n-th root of the product of the positive values.
// Non-positive values are ignored; with none left the result is 0. The
// product is taken in log space so large listings cannot overflow.
func GeometricMean(values []float64) float64 {
	var sum float64
	n := 0
	for _, v := range values {
		if !(v > 0) || math.IsInf(v, 0) {
			continue
		}
		sum += math.Log(v)
		n++
	}
	if n == 0 {
		return 0
	}
	return math.Exp(sum / float64(n))
}
