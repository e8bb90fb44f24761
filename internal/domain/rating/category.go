// Package rating defines the closed sets of game variants, speed tiers and
// rating categories, and the per-category performance records players carry.
//
// Every player owns exactly one Perf per Category. Games in a non-standard
// variant rate into that variant's category regardless of speed; games in the
// standard variant rate into one of six speed-tier categories. The standard
// category itself is never rated directly: it is a derived aggregate of the
// six speed tiers.
package rating

// Variant enumerates the supported game variants.
type Variant int

const (
	VariantStandard Variant = iota
	VariantCrazyhouse
	VariantChess960
	VariantKingOfTheHill
	VariantThreeCheck
	VariantAntichess
	VariantAtomic
	VariantHorde
)

var variantNames = map[Variant]string{
	VariantStandard:      "standard",
	VariantCrazyhouse:    "crazyhouse",
	VariantChess960:      "chess960",
	VariantKingOfTheHill: "kingOfTheHill",
	VariantThreeCheck:    "threeCheck",
	VariantAntichess:     "antichess",
	VariantAtomic:        "atomic",
	VariantHorde:         "horde",
}

func (v Variant) String() string {
	if name, ok := variantNames[v]; ok {
		return name
	}
	return "unknown"
}

// ParseVariant maps a variant name to its Variant.
func ParseVariant(s string) (Variant, bool) {
	for v, name := range variantNames {
		if name == s {
			return v, true
		}
	}
	return VariantStandard, false
}

// Speed enumerates the recognized time-control tiers.
type Speed int

const (
	SpeedUltraBullet Speed = iota
	SpeedBullet
	SpeedBlitz
	SpeedRapid
	SpeedClassical
	SpeedCorrespondence
)

var speedNames = map[Speed]string{
	SpeedUltraBullet:    "ultraBullet",
	SpeedBullet:         "bullet",
	SpeedBlitz:          "blitz",
	SpeedRapid:          "rapid",
	SpeedClassical:      "classical",
	SpeedCorrespondence: "correspondence",
}

func (s Speed) String() string {
	if name, ok := speedNames[s]; ok {
		return name
	}
	return "unknown"
}

// ParseSpeed maps a speed name to its Speed.
func ParseSpeed(s string) (Speed, bool) {
	for sp, name := range speedNames {
		if name == s {
			return sp, true
		}
	}
	return SpeedUltraBullet, false
}

// Category enumerates the rating buckets a player maintains. CategoryNone is
// the explicit "this game rates nowhere" value so callers are forced to
// handle it.
type Category int

const (
	CategoryNone Category = iota
	CategoryUltraBullet
	CategoryBullet
	CategoryBlitz
	CategoryRapid
	CategoryClassical
	CategoryCorrespondence
	CategoryCrazyhouse
	CategoryChess960
	CategoryKingOfTheHill
	CategoryThreeCheck
	CategoryAntichess
	CategoryAtomic
	CategoryHorde
	CategoryStandard
)

// CategoryCount is the number of real categories (CategoryNone excluded).
const CategoryCount = int(CategoryStandard)

var categoryNames = map[Category]string{
	CategoryUltraBullet:    "ultraBullet",
	CategoryBullet:         "bullet",
	CategoryBlitz:          "blitz",
	CategoryRapid:          "rapid",
	CategoryClassical:      "classical",
	CategoryCorrespondence: "correspondence",
	CategoryCrazyhouse:     "crazyhouse",
	CategoryChess960:       "chess960",
	CategoryKingOfTheHill:  "kingOfTheHill",
	CategoryThreeCheck:     "threeCheck",
	CategoryAntichess:      "antichess",
	CategoryAtomic:         "atomic",
	CategoryHorde:          "horde",
	CategoryStandard:       "standard",
}

func (c Category) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return "none"
}

// ParseCategory maps a category name to its Category.
func ParseCategory(s string) (Category, bool) {
	for c, name := range categoryNames {
		if name == s {
			return c, true
		}
	}
	return CategoryNone, false
}

// Valid reports whether c names a real category.
func (c Category) Valid() bool {
	return c > CategoryNone && c <= CategoryStandard
}

// Regulable reports whether rating changes in c are subject to regulation.
// The derived standard aggregate is never regulated directly.
func (c Category) Regulable() bool {
	return c.Valid() && c != CategoryStandard
}

// SpeedTier reports whether c is one of the standard-variant speed tiers.
func (c Category) SpeedTier() bool {
	return c >= CategoryUltraBullet && c <= CategoryCorrespondence
}

// SpeedTiers lists the six standard-variant speed-tier categories.
func SpeedTiers() []Category {
	return []Category{
		CategoryUltraBullet,
		CategoryBullet,
		CategoryBlitz,
		CategoryRapid,
		CategoryClassical,
		CategoryCorrespondence,
	}
}

// Categories lists every real category, the standard aggregate last.
func Categories() []Category {
	out := make([]Category, 0, CategoryCount)
	for c := CategoryUltraBullet; c <= CategoryStandard; c++ {
		out = append(out, c)
	}
	return out
}

// CategoryFor maps a game's variant and speed to the category it rates into.
// Non-standard variants rate into their own category regardless of speed;
// standard games rate into the matching speed tier. Anything else yields
// CategoryNone.
func CategoryFor(v Variant, s Speed) Category {
	switch v {
	case VariantCrazyhouse:
		return CategoryCrazyhouse
	case VariantChess960:
		return CategoryChess960
	case VariantKingOfTheHill:
		return CategoryKingOfTheHill
	case VariantThreeCheck:
		return CategoryThreeCheck
	case VariantAntichess:
		return CategoryAntichess
	case VariantAtomic:
		return CategoryAtomic
	case VariantHorde:
		return CategoryHorde
	case VariantStandard:
		switch s {
		case SpeedUltraBullet:
			return CategoryUltraBullet
		case SpeedBullet:
			return CategoryBullet
		case SpeedBlitz:
			return CategoryBlitz
		case SpeedRapid:
			return CategoryRapid
		case SpeedClassical:
			return CategoryClassical
		case SpeedCorrespondence:
			return CategoryCorrespondence
		default:
			return CategoryNone
		}
	default:
		return CategoryNone
	}
}
