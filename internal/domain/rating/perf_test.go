package rating_test

import (
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/tanayv/lila/internal/domain/glicko"
	"github.com/tanayv/lila/internal/domain/rating"
)

func TestPerf(t *testing.T) {
	Convey("Given a fresh performance record", t, func() {
		p := rating.NewPerf()

		Convey("It carries the default rating and no history", func() {
			So(p.Glicko, ShouldResemble, glicko.Default())
			So(p.Games, ShouldEqual, 0)
			So(p.Recent, ShouldBeEmpty)
			So(p.IntRating(), ShouldEqual, 1500)
		})

		Convey("When a game finishes at a new rating", func() {
			at := time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)
			next := p.Add(glicko.Rating{Value: 1531.4, Deviation: 290, Volatility: 0.09}, at)

			Convey("Then the game count, timestamp and history advance", func() {
				So(next.Games, ShouldEqual, 1)
				So(next.LastPlayed, ShouldEqual, at)
				So(next.IntRating(), ShouldEqual, 1531)
				So(next.Recent, ShouldResemble, []int{31})
			})

			Convey("And the original record is untouched", func() {
				So(p.Games, ShouldEqual, 0)
				So(p.Recent, ShouldBeEmpty)
			})
		})

		Convey("When many games are added", func() {
			at := time.Now().UTC()
			cur := p
			for i := 0; i < 20; i++ {
				cur = cur.Add(glicko.Rating{
					Value:      cur.Glicko.Value + 10,
					Deviation:  cur.Glicko.Deviation,
					Volatility: cur.Glicko.Volatility,
				}, at)
			}

			Convey("Then the history stays bounded while the count keeps growing", func() {
				So(cur.Games, ShouldEqual, 20)
				So(len(cur.Recent), ShouldEqual, 12)
				So(cur.Recent[0], ShouldEqual, 10)
			})
		})
	})

	Convey("Given a record whose rating is rewritten after the fact", t, func() {
		prev := rating.NewPerf()
		at := time.Now().UTC()
		raw := prev.Add(glicko.Rating{Value: 1540, Deviation: 290, Volatility: 0.09}, at)

		adjusted := raw.WithGlicko(prev, glicko.Rating{Value: 1520, Deviation: 290, Volatility: 0.09})

		Convey("Then the newest recorded delta matches the rating actually kept", func() {
			So(adjusted.IntRating(), ShouldEqual, 1520)
			So(adjusted.Recent, ShouldResemble, []int{20})
			So(adjusted.Games, ShouldEqual, raw.Games)
		})

		Convey("And the raw record's history is not aliased", func() {
			So(raw.Recent, ShouldResemble, []int{40})
		})
	})
}

func TestPerfSet(t *testing.T) {
	Convey("Given a fresh perf set", t, func() {
		s := rating.NewPerfSet()

		Convey("Every category starts at the default record", func() {
			for _, c := range rating.Categories() {
				So(s.Get(c), ShouldResemble, rating.NewPerf())
			}
			So(s.Get(rating.CategoryNone), ShouldResemble, rating.Perf{})
		})

		Convey("When one category's record is replaced", func() {
			at := time.Now().UTC()
			blitz := s.Get(rating.CategoryBlitz).Add(glicko.Rating{Value: 1620, Deviation: 120, Volatility: 0.06}, at)
			next := s.With(rating.CategoryBlitz, blitz)

			Convey("Then only that category changes", func() {
				So(next.Get(rating.CategoryBlitz), ShouldResemble, blitz)
				for _, c := range rating.Categories() {
					if c == rating.CategoryBlitz {
						continue
					}
					So(next.Get(c), ShouldResemble, s.Get(c))
				}
			})

			Convey("And the original set is untouched", func() {
				So(s.Get(rating.CategoryBlitz), ShouldResemble, rating.NewPerf())
			})
		})

		Convey("Replacing an invalid category is a no-op", func() {
			So(s.With(rating.CategoryNone, rating.Perf{Games: 9}), ShouldResemble, s)
		})
	})

	Convey("Given speed-tier records to aggregate", t, func() {
		earlier := time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)
		later := time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC)

		s := rating.NewPerfSet().
			With(rating.CategoryBullet, rating.Perf{
				Glicko:     glicko.Rating{Value: 1800, Deviation: 100, Volatility: 0.06},
				Games:      3,
				LastPlayed: earlier,
			}).
			With(rating.CategoryBlitz, rating.Perf{
				Glicko:     glicko.Rating{Value: 1600, Deviation: 200, Volatility: 0.08},
				Games:      1,
				LastPlayed: later,
			}).
			// Variant play never feeds the aggregate.
			With(rating.CategoryAtomic, rating.Perf{
				Glicko:     glicko.Rating{Value: 2200, Deviation: 60, Volatility: 0.06},
				Games:      50,
				LastPlayed: later,
			})

		Convey("When the standard aggregate is recomputed", func() {
			agg := s.WithStandardAggregate().Get(rating.CategoryStandard)

			Convey("Then it is the game-count-weighted mean of the active tiers", func() {
				So(agg.Games, ShouldEqual, 4)
				So(agg.Glicko.Value, ShouldAlmostEqual, 1750, 1e-9)
				So(agg.Glicko.Deviation, ShouldAlmostEqual, 125, 1e-9)
				So(agg.Glicko.Volatility, ShouldAlmostEqual, 0.065, 1e-9)
				So(agg.LastPlayed, ShouldEqual, later)
			})
		})

		Convey("When no speed tier has any games", func() {
			agg := rating.NewPerfSet().
				With(rating.CategoryAtomic, rating.Perf{Glicko: glicko.Default(), Games: 10}).
				WithStandardAggregate().
				Get(rating.CategoryStandard)

			Convey("Then the aggregate stays at the default record", func() {
				So(agg, ShouldResemble, rating.NewPerf())
			})
		})
	})

	Convey("Given a set serialized for the API", t, func() {
		m := rating.NewPerfSet().Map()

		Convey("Then every category appears under its name", func() {
			So(m, ShouldHaveLength, rating.CategoryCount)
			for _, c := range rating.Categories() {
				_, ok := m[c.String()]
				So(ok, ShouldBeTrue)
			}
		})
	})
}
