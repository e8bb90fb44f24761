package updater

import (
	"context"

	"github.com/tanayv/lila/internal/domain/glicko"
	"github.com/tanayv/lila/internal/domain/rating"
)

// Factors maps categories to regulation factors in [0, 1]. A missing
// category regulates at full strength (factor 1).
type Factors map[rating.Category]float64

// Get returns the factor for a category, defaulting to 1.
func (f Factors) Get(c rating.Category) float64 {
	factor, ok := f[c]
	if !ok {
		return 1
	}
	return factor
}

// FactorSource supplies the current regulation factors. It is queried on
// every pipeline run; implementations may return time-varying values.
type FactorSource interface {
	Factors(ctx context.Context) Factors
}

// StaticFactors is a FactorSource returning a fixed map.
type StaticFactors Factors

// Factors implements FactorSource.
func (s StaticFactors) Factors(_ context.Context) Factors { return Factors(s) }

// FactorFunc adapts a function to FactorSource.
type FactorFunc func(ctx context.Context) Factors

// Factors implements FactorSource.
func (f FactorFunc) Factors(ctx context.Context) Factors { return f(ctx) }

// regulate scales the change from old to cur by factor: 0 restores old, 1
// keeps cur, intermediate values interpolate the rating components linearly.
// Records the game did not touch pass through unchanged.
func regulate(factor float64, old, cur rating.Perf) rating.Perf {
	if factor >= 1 || cur.Games == old.Games {
		return cur
	}
	if factor <= 0 {
		return old
	}
	return cur.WithGlicko(old, glicko.Rating{
		Value:      lerp(old.Glicko.Value, cur.Glicko.Value, factor),
		Deviation:  lerp(old.Glicko.Deviation, cur.Glicko.Deviation, factor),
		Volatility: lerp(old.Glicko.Volatility, cur.Glicko.Volatility, factor),
	})
}

func lerp(from, to, t float64) float64 {
	return from + t*(to-from)
}
