package rating_test

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/tanayv/lila/internal/domain/rating"
)

func TestCategoryFor(t *testing.T) {
	Convey("Given the variant and speed of a finished game", t, func() {
		Convey("Standard games map to their speed tier", func() {
			So(rating.CategoryFor(rating.VariantStandard, rating.SpeedUltraBullet), ShouldEqual, rating.CategoryUltraBullet)
			So(rating.CategoryFor(rating.VariantStandard, rating.SpeedBullet), ShouldEqual, rating.CategoryBullet)
			So(rating.CategoryFor(rating.VariantStandard, rating.SpeedBlitz), ShouldEqual, rating.CategoryBlitz)
			So(rating.CategoryFor(rating.VariantStandard, rating.SpeedRapid), ShouldEqual, rating.CategoryRapid)
			So(rating.CategoryFor(rating.VariantStandard, rating.SpeedClassical), ShouldEqual, rating.CategoryClassical)
			So(rating.CategoryFor(rating.VariantStandard, rating.SpeedCorrespondence), ShouldEqual, rating.CategoryCorrespondence)
		})

		Convey("Variant games map to the variant's category regardless of speed", func() {
			So(rating.CategoryFor(rating.VariantChess960, rating.SpeedBullet), ShouldEqual, rating.CategoryChess960)
			So(rating.CategoryFor(rating.VariantChess960, rating.SpeedCorrespondence), ShouldEqual, rating.CategoryChess960)
			So(rating.CategoryFor(rating.VariantAtomic, rating.SpeedBlitz), ShouldEqual, rating.CategoryAtomic)
			So(rating.CategoryFor(rating.VariantCrazyhouse, rating.SpeedRapid), ShouldEqual, rating.CategoryCrazyhouse)
			So(rating.CategoryFor(rating.VariantKingOfTheHill, rating.SpeedBlitz), ShouldEqual, rating.CategoryKingOfTheHill)
			So(rating.CategoryFor(rating.VariantThreeCheck, rating.SpeedBlitz), ShouldEqual, rating.CategoryThreeCheck)
			So(rating.CategoryFor(rating.VariantAntichess, rating.SpeedBlitz), ShouldEqual, rating.CategoryAntichess)
			So(rating.CategoryFor(rating.VariantHorde, rating.SpeedBlitz), ShouldEqual, rating.CategoryHorde)
		})

		Convey("No game ever rates into the derived standard aggregate", func() {
			for _, v := range []rating.Variant{
				rating.VariantStandard,
				rating.VariantCrazyhouse,
				rating.VariantChess960,
				rating.VariantKingOfTheHill,
				rating.VariantThreeCheck,
				rating.VariantAntichess,
				rating.VariantAtomic,
				rating.VariantHorde,
			} {
				for s := rating.SpeedUltraBullet; s <= rating.SpeedCorrespondence; s++ {
					So(rating.CategoryFor(v, s), ShouldNotEqual, rating.CategoryStandard)
				}
			}
		})

		Convey("Unrecognized combinations yield CategoryNone", func() {
			So(rating.CategoryFor(rating.VariantStandard, rating.Speed(42)), ShouldEqual, rating.CategoryNone)
			So(rating.CategoryFor(rating.Variant(42), rating.SpeedBlitz), ShouldEqual, rating.CategoryNone)
		})
	})
}

func TestCategory(t *testing.T) {
	Convey("Given the closed category set", t, func() {
		Convey("Every real category is valid, CategoryNone is not", func() {
			So(rating.CategoryNone.Valid(), ShouldBeFalse)
			So(rating.Category(99).Valid(), ShouldBeFalse)
			for _, c := range rating.Categories() {
				So(c.Valid(), ShouldBeTrue)
			}
		})

		Convey("Names round-trip through ParseCategory", func() {
			for _, c := range rating.Categories() {
				parsed, ok := rating.ParseCategory(c.String())
				So(ok, ShouldBeTrue)
				So(parsed, ShouldEqual, c)
			}
			_, ok := rating.ParseCategory("bughouse")
			So(ok, ShouldBeFalse)
		})

		Convey("Only the standard aggregate escapes regulation", func() {
			So(rating.CategoryStandard.Regulable(), ShouldBeFalse)
			So(rating.CategoryNone.Regulable(), ShouldBeFalse)
			So(rating.CategoryBlitz.Regulable(), ShouldBeTrue)
			So(rating.CategoryHorde.Regulable(), ShouldBeTrue)
		})

		Convey("Exactly six categories are speed tiers", func() {
			tiers := 0
			for _, c := range rating.Categories() {
				if c.SpeedTier() {
					tiers++
				}
			}
			So(tiers, ShouldEqual, 6)
			So(rating.SpeedTiers(), ShouldHaveLength, 6)
			So(rating.CategoryChess960.SpeedTier(), ShouldBeFalse)
			So(rating.CategoryStandard.SpeedTier(), ShouldBeFalse)
		})

		Convey("Categories lists every category exactly once", func() {
			all := rating.Categories()
			So(all, ShouldHaveLength, rating.CategoryCount)
			seen := make(map[rating.Category]bool, len(all))
			for _, c := range all {
				So(seen[c], ShouldBeFalse)
				seen[c] = true
			}
		})
	})
}

func TestResult(t *testing.T) {
	Convey("Given raw game outcomes", t, func() {
		Convey("EncodeResult expresses them from white's perspective", func() {
			So(rating.EncodeResult(rating.OutcomeWhiteWins), ShouldEqual, rating.ResultWin)
			So(rating.EncodeResult(rating.OutcomeBlackWins), ShouldEqual, rating.ResultLoss)
			So(rating.EncodeResult(rating.OutcomeDraw), ShouldEqual, rating.ResultDraw)
		})

		Convey("Invert flips to the opponent's perspective and is involutive", func() {
			So(rating.ResultWin.Invert(), ShouldEqual, rating.ResultLoss)
			So(rating.ResultLoss.Invert(), ShouldEqual, rating.ResultWin)
			So(rating.ResultDraw.Invert(), ShouldEqual, rating.ResultDraw)
			for _, r := range []rating.Result{rating.ResultWin, rating.ResultLoss, rating.ResultDraw} {
				So(r.Invert().Invert(), ShouldEqual, r)
			}
		})

		Convey("Scores sum to one across both perspectives", func() {
			for _, r := range []rating.Result{rating.ResultWin, rating.ResultLoss, rating.ResultDraw} {
				So(r.Score()+r.Invert().Score(), ShouldEqual, 1.0)
			}
		})

		Convey("Outcome names round-trip", func() {
			for _, o := range []rating.Outcome{rating.OutcomeWhiteWins, rating.OutcomeBlackWins, rating.OutcomeDraw} {
				parsed, ok := rating.ParseOutcome(o.String())
				So(ok, ShouldBeTrue)
				So(parsed, ShouldEqual, o)
			}
		})
	})
}
