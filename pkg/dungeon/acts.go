// Package dungeon owns encounter generation: act scaling, enemy
// templates and spawn pools, the intent patterns that drive enemy turns,
// and the per-encounter cognitive deck rebalancing.
package dungeon

// ActConfig scales prices and enemies for one act of the climb.
type ActConfig struct {
	Index            int     `json:"index"`
	Name             string  `json:"name"`
	Description      string  `json:"description"`
	PriceMultiplier  float64 `json:"priceMultiplier"`
	EnemyHPMult      float64 `json:"enemyHpMultiplier"`
	EnemyDmgMult     float64 `json:"enemyDmgMultiplier"`
	AffixChanceBonus float64 `json:"affixChanceBonus"`
}

// Acts in climb order. Act lookups out of range fall back to act 1.
var Acts = []ActConfig{
	{
		Index:           1,
		Name:            "The Exiled Spire",
		Description:     "The base of the tower, where the weak and forgotten dwell.",
		PriceMultiplier: 1.0,
		EnemyHPMult:     1.0,
		EnemyDmgMult:    1.0,
	},
	{
		Index:            2,
		Name:             "The City of Tears",
		Description:      "A rain-swept metropolis within the Spire's mid-levels.",
		PriceMultiplier:  1.2,
		EnemyHPMult:      1.4,
		EnemyDmgMult:     1.2,
		AffixChanceBonus: 0.3,
	},
	{
		Index:            3,
		Name:             "The Cosmic Summit",
		Description:      "Reality bends near the top. The Source is close.",
		PriceMultiplier:  1.5,
		EnemyHPMult:      1.8,
		EnemyDmgMult:     1.5,
		AffixChanceBonus: 0.6,
	},
}

// FinalAct is the last act; clearing its boss wins the run.
const FinalAct = 3

// ActFor returns the act configuration for the given index.
func ActFor(index int) ActConfig {
	for _, a := range Acts {
		if a.Index == index {
			return a
		}
	}
	return Acts[0]
}
