// Package loyalty maps accumulated loyalty points to a program level. Point
// accrual itself happens at the point of sale and is out of scope here; this
// package only answers "which level does this balance sit in".
package loyalty

// Level is a loyalty program tier.
type Level string

const (
	LevelBronze   Level = "bronze"
	LevelSilver   Level = "silver"
	LevelGold     Level = "gold"
	LevelPlatinum Level = "platinum"
)

// Level thresholds in points. A balance at or above a threshold reaches that
// level.
const (
	SilverThreshold   = 100
	GoldThreshold     = 250
	PlatinumThreshold = 500
)

// LevelFor returns the level for a point balance. Negative balances are
// treated as zero.
func LevelFor(points int) Level {
	switch {
	case points >= PlatinumThreshold:
		return LevelPlatinum
	case points >= GoldThreshold:
		return LevelGold
	case points >= SilverThreshold:
		return LevelSilver
	default:
		return LevelBronze
	}
}
