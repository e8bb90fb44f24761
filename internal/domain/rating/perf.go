package rating

import (
	"math"
	"time"

	"github.com/tanayv/lila/internal/domain/glicko"
)

// maxRecentDiffs bounds the per-category history of rating deltas kept for
// anomaly detection.
const maxRecentDiffs = 12

// Perf is a player's performance record in one category.
type Perf struct {
	Glicko     glicko.Rating `json:"glicko"`
	Games      int           `json:"games"`
	LastPlayed time.Time     `json:"last_played,omitzero"`
	// Recent holds the latest rating deltas, newest first.
	Recent []int `json:"recent,omitempty"`
}

// NewPerf returns the record of a player with no games in a category.
func NewPerf() Perf {
	return Perf{Glicko: glicko.Default()}
}

// IntRating is the public integer rating of the record.
func (p Perf) IntRating() int {
	return int(math.Round(p.Glicko.Value))
}

// Add returns the record after one more game finishing with rating r.
// The realized integer delta is prepended to the bounded recent history.
func (p Perf) Add(r glicko.Rating, at time.Time) Perf {
	diff := int(math.Round(r.Value)) - p.IntRating()
	recent := make([]int, 0, maxRecentDiffs)
	recent = append(recent, diff)
	for _, d := range p.Recent {
		if len(recent) == maxRecentDiffs {
			break
		}
		recent = append(recent, d)
	}
	return Perf{
		Glicko:     r,
		Games:      p.Games + 1,
		LastPlayed: at,
		Recent:     recent,
	}
}

// WithGlicko returns p with its rating replaced by r and the newest recorded
// delta re-derived against prev. Post-processing steps (dampening,
// regulation) use it so the history matches the rating actually persisted.
func (p Perf) WithGlicko(prev Perf, r glicko.Rating) Perf {
	out := p
	out.Glicko = r
	if len(p.Recent) > 0 {
		recent := make([]int, len(p.Recent))
		copy(recent, p.Recent)
		recent[0] = out.IntRating() - prev.IntRating()
		out.Recent = recent
	}
	return out
}

// PerfSet holds one Perf per category.
type PerfSet struct {
	perfs [CategoryCount]Perf
}

// NewPerfSet returns a set with every category at the default rating.
func NewPerfSet() PerfSet {
	var s PerfSet
	for i := range s.perfs {
		s.perfs[i] = NewPerf()
	}
	return s
}

// Get returns the record for a category. Invalid categories yield the zero
// Perf.
func (s PerfSet) Get(c Category) Perf {
	if !c.Valid() {
		return Perf{}
	}
	return s.perfs[c-1]
}

// With returns a copy of the set with the category's record replaced.
// All other records are untouched.
func (s PerfSet) With(c Category, p Perf) PerfSet {
	if !c.Valid() {
		return s
	}
	out := s
	out.perfs[c-1] = p
	return out
}

// WithStandardAggregate returns the set with its standard record recomputed
// from the six speed tiers. The aggregate is the game-count-weighted mean of
// rating, deviation and volatility over tiers with at least one game; its
// game count is the tiers' sum and its last-played time their maximum.
func (s PerfSet) WithStandardAggregate() PerfSet {
	var (
		games      int
		value      float64
		deviation  float64
		volatility float64
		lastPlayed time.Time
	)
	for _, c := range SpeedTiers() {
		p := s.Get(c)
		if p.Games == 0 {
			continue
		}
		w := float64(p.Games)
		games += p.Games
		value += w * p.Glicko.Value
		deviation += w * p.Glicko.Deviation
		volatility += w * p.Glicko.Volatility
		if p.LastPlayed.After(lastPlayed) {
			lastPlayed = p.LastPlayed
		}
	}

	std := NewPerf()
	if games > 0 {
		w := float64(games)
		std = Perf{
			Glicko: glicko.Rating{
				Value:      value / w,
				Deviation:  deviation / w,
				Volatility: volatility / w,
			},
			Games:      games,
			LastPlayed: lastPlayed,
		}
	}
	return s.With(CategoryStandard, std)
}

// Map returns the set keyed by category name, for serialization.
func (s PerfSet) Map() map[string]Perf {
	out := make(map[string]Perf, CategoryCount)
	for _, c := range Categories() {
		out[c.String()] = s.Get(c)
	}
	return out
}
