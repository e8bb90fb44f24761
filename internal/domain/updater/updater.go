// Package updater orchestrates rating updates for finished games: it gates
// eligibility, runs the Glicko-2 calculator for the game's category, applies
// bot dampening and regulation, and produces both players' updated record
// sets plus the headline rating diffs.
package updater

import (
	"context"
	"time"

	"github.com/tanayv/lila/internal/domain/glicko"
	"github.com/tanayv/lila/internal/domain/rating"
	"github.com/tanayv/lila/pkg/logger"
	"github.com/tanayv/lila/pkg/metrics"
)

// Game describes a finished contest as far as rating is concerned.
type Game struct {
	ID          string
	Variant     rating.Variant
	Speed       rating.Speed
	Outcome     rating.Outcome
	Rated       bool
	Finished    bool
	Accountable bool
	PlayedAt    time.Time
	// Main is the category whose rating change is reported as the game's
	// headline diff. When CategoryNone, the rated category is used.
	Main rating.Category
}

// Player describes one participant.
type Player struct {
	ID    string
	Bot   bool
	Lame  bool
	Perfs rating.PerfSet
}

// Update is the outcome of a successful pipeline run.
type Update struct {
	White     rating.PerfSet
	Black     rating.PerfSet
	WhiteDiff int
	BlackDiff int
}

// Updater runs the rating update pipeline. It is immutable after
// construction and safe for concurrent use.
type Updater struct {
	calc    *glicko.Calculator
	farming FarmingDetector
	factors FactorSource
	logger  logger.Logger
}

// New constructs an Updater with default collaborators: standard calculator
// parameters, no farming detection, and full-strength regulation factors.
func New(opts ...Option) *Updater {
	u := &Updater{
		calc:    glicko.NewCalculator(),
		farming: NoopDetector{},
		factors: StaticFactors(nil),
		logger:  nil,
	}

	for _, opt := range opts {
		opt(u)
	}

	if u.logger == nil {
		u.logger = logger.Get().Named("updater")
	}

	return u
}

// Process rates a finished game between white and black. A nil Update with a
// nil error means the game was ineligible or rates into no category; nothing
// was computed and nothing must be persisted. The only returned errors are
// context cancellations surfaced by the farming detector.
func (u *Updater) Process(ctx context.Context, g Game, white, black Player) (*Update, error) {
	if reason, ok := u.eligible(g, white, black); !ok {
		metrics.RecordGameIneligible(reason)
		u.logger.Debug(ctx, "game not eligible for rating",
			logger.String("gameID", g.ID),
			logger.String("reason", reason),
		)
		return nil, nil
	}

	// The farming check is the one suspension point: it must complete
	// before any rating computation starts.
	farmed, err := u.farming.Farmed(ctx, g)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		u.logger.Warn(ctx, "farming detector failed; rating anyway",
			logger.String("gameID", g.ID),
			logger.Error(err),
		)
	} else if farmed {
		metrics.RecordGameIneligible("farming")
		u.logger.Info(ctx, "game flagged as farmed",
			logger.String("gameID", g.ID),
		)
		return nil, nil
	}

	category := rating.CategoryFor(g.Variant, g.Speed)
	if !category.Valid() {
		metrics.RecordGameIneligible("no_category")
		return nil, nil
	}

	whiteOld := white.Perfs.Get(category)
	blackOld := black.Perfs.Get(category)

	score := rating.EncodeResult(g.Outcome).Score()
	whiteNew, blackNew := u.compute(ctx, g, category, whiteOld, blackOld, score)

	// Bot dampening halves the human's change in a human-vs-bot pairing.
	if !white.Bot && black.Bot {
		whiteNew = dampen(whiteOld, whiteNew)
	}
	if !black.Bot && white.Bot {
		blackNew = dampen(blackOld, blackNew)
	}

	whiteSet := white.Perfs.With(category, whiteNew)
	blackSet := black.Perfs.With(category, blackNew)

	// Regulation factors are re-fetched every run; they may change over time.
	factors := u.factors.Factors(ctx)
	for _, c := range rating.Categories() {
		if !c.Regulable() {
			continue
		}
		f := factors.Get(c)
		whiteSet = whiteSet.With(c, regulate(f, white.Perfs.Get(c), whiteSet.Get(c)))
		blackSet = blackSet.With(c, regulate(f, black.Perfs.Get(c), blackSet.Get(c)))
	}

	if category.SpeedTier() {
		whiteSet = whiteSet.WithStandardAggregate()
		blackSet = blackSet.WithStandardAggregate()
	}

	main := g.Main
	if !main.Valid() {
		main = category
	}
	whiteDiff := whiteSet.Get(main).IntRating() - white.Perfs.Get(main).IntRating()
	blackDiff := blackSet.Get(main).IntRating() - black.Perfs.Get(main).IntRating()

	metrics.RecordGameRated()
	metrics.RecordRatingDiff(abs(whiteDiff))
	metrics.RecordRatingDiff(abs(blackDiff))

	return &Update{
		White:     whiteSet,
		Black:     blackSet,
		WhiteDiff: whiteDiff,
		BlackDiff: blackDiff,
	}, nil
}

// eligible applies the synchronous part of the eligibility gate and names
// the first failing condition.
func (u *Updater) eligible(g Game, white, black Player) (string, bool) {
	switch {
	case !g.Rated:
		return "unrated", false
	case !g.Finished:
		return "unfinished", false
	case !g.Accountable:
		return "unaccountable", false
	case white.Lame || black.Lame:
		return "lame", false
	}
	return "", true
}

// compute runs the joint Glicko-2 update. A calculation failure leaves both
// records at their pre-update values; the pipeline continues regardless.
func (u *Updater) compute(ctx context.Context, g Game, category rating.Category, whiteOld, blackOld rating.Perf, score float64) (rating.Perf, rating.Perf) {
	whiteRating, blackRating, err := u.calc.Update(whiteOld.Glicko, blackOld.Glicko, score)
	if err != nil {
		metrics.RecordCalculationFailure()
		u.logger.Error(ctx, "rating calculation failed; keeping old ratings",
			logger.String("gameID", g.ID),
			logger.String("category", category.String()),
			logger.Error(err),
		)
		return whiteOld, blackOld
	}
	return whiteOld.Add(whiteRating, g.PlayedAt), blackOld.Add(blackRating, g.PlayedAt)
}

// dampen replaces a freshly computed record with the arithmetic mean of the
// old and new rating components, halving the effective change.
func dampen(old, cur rating.Perf) rating.Perf {
	if cur.Games == old.Games {
		// Calculation failed upstream; nothing to dampen.
		return cur
	}
	return cur.WithGlicko(old, glicko.Rating{
		Value:      (old.Glicko.Value + cur.Glicko.Value) / 2,
		Deviation:  (old.Glicko.Deviation + cur.Glicko.Deviation) / 2,
		Volatility: (old.Glicko.Volatility + cur.Glicko.Volatility) / 2,
	})
}

func abs(n int) float64 {
	if n < 0 {
		return float64(-n)
	}
	return float64(n)
}
