package updater

import (
	"github.com/tanayv/lila/internal/domain/glicko"
	"github.com/tanayv/lila/pkg/logger"
)

// Option applies a configuration option to the Updater.
type Option func(*Updater)

// WithCalculator sets the Glicko-2 calculator.
func WithCalculator(calc *glicko.Calculator) Option {
	return func(u *Updater) {
		if calc != nil {
			u.calc = calc
		}
	}
}

// WithFarmingDetector sets the farming detector consulted per game.
func WithFarmingDetector(d FarmingDetector) Option {
	return func(u *Updater) {
		if d != nil {
			u.farming = d
		}
	}
}

// WithFactorSource sets the regulation factor source.
func WithFactorSource(s FactorSource) Option {
	return func(u *Updater) {
		if s != nil {
			u.factors = s
		}
	}
}

// WithLogger sets a custom logger.
func WithLogger(l logger.Logger) Option {
	return func(u *Updater) {
		if l != nil {
			u.logger = l
		}
	}
}
