// Package glicko implements the Glicko-2 rating system for two-player games.
//
// Variable naming follows Professor Mark E. Glickman's paper
// (https://www.glicko.net/glicko/glicko2.pdf):
//   - Mu: the rating converted to the Glicko-2 internal scale.
//   - Phi: the rating deviation converted to the internal scale.
//   - Sigma: the rating volatility.
//   - Tau: the volatility change constraint.
//   - G: a weighting function reducing the influence of opponents with a
//     high rating deviation.
//   - E: the expected score against a given opponent.
//   - V: the estimated variance of the rating from game outcomes alone.
//   - Delta: the estimated rating improvement.
package glicko

import (
	"fmt"
	"math"
)

// Standard starting values and paper constants.
const (
	DefaultRating     = 1500.0
	DefaultDeviation  = 350.0
	DefaultVolatility = 0.09

	// scale converts between the public 1500-based scale and mu/phi.
	scale      = 173.7178
	baseRating = 1500.0

	defaultTau           = 0.75
	defaultEpsilon       = 1e-6
	defaultMaxIterations = 100
)

// Glicko-2 scores.
const (
	ScoreWin  = 1.0
	ScoreDraw = 0.5
	ScoreLoss = 0.0
)

// Rating is a player's skill estimate on the public scale.
type Rating struct {
	Value      float64
	Deviation  float64
	Volatility float64
}

// Default returns the rating assigned to a player with no games.
func Default() Rating {
	return Rating{
		Value:      DefaultRating,
		Deviation:  DefaultDeviation,
		Volatility: DefaultVolatility,
	}
}

// finite reports whether every component is a finite number.
func (r Rating) finite() bool {
	return !math.IsNaN(r.Value) && !math.IsInf(r.Value, 0) &&
		!math.IsNaN(r.Deviation) && !math.IsInf(r.Deviation, 0) &&
		!math.IsNaN(r.Volatility) && !math.IsInf(r.Volatility, 0)
}

// Game is one game of a rating period from a single player's perspective:
// the opponent's pre-period rating and the score achieved against them.
type Game struct {
	Opponent Rating
	Score    float64
}

// Calculator applies Glicko-2 updates. Its parameters are fixed at
// construction; a single instance is safe for unlimited concurrent use.
type Calculator struct {
	tau           float64
	epsilon       float64
	maxIterations int
}

// NewCalculator creates a Calculator with the standard parameters.
func NewCalculator(opts ...Option) *Calculator {
	c := &Calculator{
		tau:           defaultTau,
		epsilon:       defaultEpsilon,
		maxIterations: defaultMaxIterations,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Update jointly rates one finished game between two players. score is the
// first player's score (1 win, 0.5 draw, 0 loss); the second player scores
// the complement. Both new ratings are computed from the opponents'
// pre-update values. On failure neither rating is usable and the caller must
// keep the old values.
func (c *Calculator) Update(first, second Rating, score float64) (Rating, Rating, error) {
	newFirst, err := c.Rate(first, []Game{{Opponent: second, Score: score}})
	if err != nil {
		return Rating{}, Rating{}, err
	}
	newSecond, err := c.Rate(second, []Game{{Opponent: first, Score: 1 - score}})
	if err != nil {
		return Rating{}, Rating{}, err
	}
	return newFirst, newSecond, nil
}

// Rate computes a player's new rating after one rating period covering the
// given games. Opponent ratings must be their values at the start of the
// period.
func (c *Calculator) Rate(player Rating, games []Game) (Rating, error) {
	if err := validate(player); err != nil {
		return Rating{}, err
	}
	for _, g := range games {
		if err := validate(g.Opponent); err != nil {
			return Rating{}, err
		}
		if g.Score < 0 || g.Score > 1 || math.IsNaN(g.Score) {
			return Rating{}, fmt.Errorf("%w: score %v out of range", ErrCalculationFailed, g.Score)
		}
	}

	mu := toMu(player.Value)
	phi := toPhi(player.Deviation)

	// No games this period: deviation grows from volatility alone.
	if len(games) == 0 {
		phiStar := math.Sqrt(phi*phi + player.Volatility*player.Volatility)
		return Rating{
			Value:      player.Value,
			Deviation:  fromPhi(phiStar),
			Volatility: player.Volatility,
		}, nil
	}

	// Steps 3 and 4: estimated variance v and improvement delta.
	var vInv, improvement float64
	for _, game := range games {
		muJ := toMu(game.Opponent.Value)
		phiJ := toPhi(game.Opponent.Deviation)
		gJ := weight(phiJ)
		eJ := expected(mu, muJ, phiJ)
		vInv += gJ * gJ * eJ * (1 - eJ)
		improvement += gJ * (game.Score - eJ)
	}
	v := 1 / vInv
	delta := v * improvement

	// Step 5: solve for the new volatility.
	sigma, err := c.solveVolatility(player.Volatility, delta, phi, v)
	if err != nil {
		return Rating{}, err
	}

	// Steps 6 and 7: new deviation and rating.
	phiStar := math.Sqrt(phi*phi + sigma*sigma)
	phiNew := 1 / math.Sqrt(1/(phiStar*phiStar)+1/v)
	muNew := mu + phiNew*phiNew*improvement

	// Step 8: back to the public scale.
	updated := Rating{
		Value:      fromMu(muNew),
		Deviation:  fromPhi(phiNew),
		Volatility: sigma,
	}
	if !updated.finite() || updated.Deviation <= 0 {
		return Rating{}, fmt.Errorf("%w: non-finite result", ErrCalculationFailed)
	}
	return updated, nil
}

// solveVolatility finds sigma' as the root of the Glicko-2 volatility
// function using the Illinois variant of regula falsi.
func (c *Calculator) solveVolatility(sigma, delta, phi, v float64) (float64, error) {
	a := math.Log(sigma * sigma)
	f := func(x float64) float64 {
		ex := math.Exp(x)
		num := ex * (delta*delta - phi*phi - v - ex)
		den := 2 * (phi*phi + v + ex) * (phi*phi + v + ex)
		return num/den - (x-a)/(c.tau*c.tau)
	}

	upper := a
	var lower float64
	if delta*delta > phi*phi+v {
		lower = math.Log(delta*delta - phi*phi - v)
	} else {
		k := 1
		for f(a-float64(k)*c.tau) < 0 {
			k++
			if k > c.maxIterations {
				return 0, fmt.Errorf("%w: no bracket for volatility root", ErrCalculationFailed)
			}
		}
		lower = a - float64(k)*c.tau
	}

	fUpper := f(upper)
	fLower := f(lower)
	for i := 0; math.Abs(lower-upper) > c.epsilon; i++ {
		if i >= c.maxIterations {
			return 0, fmt.Errorf("%w: volatility solve did not converge in %d iterations", ErrCalculationFailed, c.maxIterations)
		}
		mid := upper + (upper-lower)*fUpper/(fLower-fUpper)
		fMid := f(mid)
		if math.IsNaN(fMid) || math.IsInf(fMid, 0) {
			return 0, fmt.Errorf("%w: non-finite volatility iterate", ErrCalculationFailed)
		}
		if fMid*fLower <= 0 {
			upper = lower
			fUpper = fLower
		} else {
			fUpper /= 2
		}
		lower = mid
		fLower = fMid
	}

	return math.Exp(upper / 2), nil
}

func validate(r Rating) error {
	if !r.finite() {
		return fmt.Errorf("%w: non-finite rating %+v", ErrCalculationFailed, r)
	}
	if r.Deviation <= 0 {
		return fmt.Errorf("%w: deviation %v must be positive", ErrCalculationFailed, r.Deviation)
	}
	if r.Volatility <= 0 {
		return fmt.Errorf("%w: volatility %v must be positive", ErrCalculationFailed, r.Volatility)
	}
	return nil
}

func toMu(value float64) float64      { return (value - baseRating) / scale }
func fromMu(mu float64) float64       { return mu*scale + baseRating }
func toPhi(deviation float64) float64 { return deviation / scale }
func fromPhi(phi float64) float64     { return phi * scale }

// weight is g(phi): it discounts games against uncertain opponents.
func weight(phi float64) float64 {
	return 1 / math.Sqrt(1+3*phi*phi/(math.Pi*math.Pi))
}

// expected is E(mu, muJ, phiJ): the expected score against the opponent.
func expected(mu, muJ, phiJ float64) float64 {
	return 1 / (1 + math.Exp(-weight(phiJ)*(mu-muJ)))
}
