package updater

import "context"

// FarmingDetector decides whether a game looks like rating farming. The
// pipeline consults it after the synchronous gate and before any
// computation; a positive answer makes the game ineligible.
type FarmingDetector interface {
	Farmed(ctx context.Context, g Game) (bool, error)
}

// NoopDetector never flags a game.
type NoopDetector struct{}

// Farmed implements FarmingDetector.
func (NoopDetector) Farmed(_ context.Context, _ Game) (bool, error) { return false, nil }

// DetectorFunc adapts a function to FarmingDetector.
type DetectorFunc func(ctx context.Context, g Game) (bool, error)

// Farmed implements FarmingDetector.
func (f DetectorFunc) Farmed(ctx context.Context, g Game) (bool, error) { return f(ctx, g) }
